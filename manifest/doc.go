// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package manifest declares option schemas in HCL instead of Go code.
//
// A manifest holds one or more `schema` blocks. Each block declares options
// with the same settings the Go API accepts, and may extend a schema
// declared earlier in the same load, in any of the loaded files:
//
//	schema "user" {
//	  option "name" {
//	    type   = string
//	    reader = true
//	  }
//	  option "admin" {
//	    allow   = [true, false]
//	    reader  = true
//	    default = false
//	  }
//	}
//
//	schema "admin_user" {
//	  extends = "user"
//	  option "level" {
//	    type    = number
//	    default = 1
//	  }
//	}
//
// Manifests only describe schemas. Values for those schemas are supplied in
// code, as an options.Bag.
package manifest
