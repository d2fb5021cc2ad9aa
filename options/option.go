// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Option descriptor, the immutable contract for one
// named configuration value, together with the two pieces it is built from:
// the type Constraint and the Default variant.
package options

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Constraint decides whether a value is acceptable for an option, before the
// allow-list is consulted.
type Constraint interface {
	Matches(v cty.Value) bool
	String() string
}

type typeConstraint struct {
	ty cty.Type
}

// Type returns a Constraint satisfied by values whose type conforms to ty.
// No conversion is attempted. cty.DynamicPseudoType accepts every type.
func Type(ty cty.Type) Constraint {
	return typeConstraint{ty: ty}
}

func (c typeConstraint) Matches(v cty.Value) bool {
	if v.Type() == cty.NilType {
		return false
	}
	return len(v.Type().TestConformance(c.ty)) == 0
}

func (c typeConstraint) String() string {
	return c.ty.FriendlyNameForConstraint()
}

// Any is the Constraint used when an option does not declare one.
var Any Constraint = Type(cty.DynamicPseudoType)

type predicateConstraint struct {
	name string
	fn   func(cty.Value) bool
}

// Predicate returns a Constraint backed by an arbitrary capability check.
// The name is used in error messages.
func Predicate(name string, fn func(cty.Value) bool) Constraint {
	if fn == nil {
		panic("options: Predicate requires a non-nil function")
	}
	return predicateConstraint{name: name, fn: fn}
}

func (c predicateConstraint) Matches(v cty.Value) bool {
	if v.Type() == cty.NilType {
		return false
	}
	return c.fn(unmarked(v))
}

func (c predicateConstraint) String() string { return c.name }

// Default is either a Literal value or a Computed function of the owner.
// A nil Default means the option has no default at all, which is different
// from a Literal null.
type Default interface {
	resolve(owner any) cty.Value
}

type literalDefault struct {
	val cty.Value
}

func (d literalDefault) resolve(any) cty.Value { return d.val }

type computedDefault struct {
	fn func(owner any) cty.Value
}

func (d computedDefault) resolve(owner any) cty.Value { return d.fn(owner) }

// Literal returns a Default that always yields v.
func Literal(v cty.Value) Default {
	return literalDefault{val: v}
}

// Computed returns a Default evaluated against the owner under construction.
// It is only called when the caller did not supply the option.
func Computed(fn func(owner any) cty.Value) Default {
	if fn == nil {
		panic("options: Computed requires a non-nil function")
	}
	return computedDefault{fn: fn}
}

// Settings are the recognized declaration settings of an option.
type Settings struct {
	// Type constrains accepted values. Nil means Any.
	Type Constraint

	// Reader exposes the bound value through Base.Reader, Read and tagged
	// struct fields.
	Reader bool

	// Allow is the ordered set of legal values. Empty means unrestricted.
	Allow []cty.Value

	// Default is used when the option is missing from the configuration bag.
	// Nil means no default.
	Default Default
}

// Option describes one declared option. It is immutable once built.
type Option struct {
	name       string
	constraint Constraint
	allow      []cty.Value
	def        Default
	reader     bool
}

// NewOption builds an Option from its name and settings.
func NewOption(name string, s Settings) *Option {
	constraint := s.Type
	if constraint == nil {
		constraint = Any
	}

	var allow []cty.Value
	if len(s.Allow) > 0 {
		allow = make([]cty.Value, len(s.Allow))
		copy(allow, s.Allow)
	}

	return &Option{
		name:       name,
		constraint: constraint,
		allow:      allow,
		def:        s.Default,
		reader:     s.Reader,
	}
}

func (o *Option) Name() string           { return o.name }
func (o *Option) Reader() bool           { return o.reader }
func (o *Option) Constraint() Constraint { return o.constraint }

// HasDefault reports whether a default was declared.
func (o *Option) HasDefault() bool {
	return o.def != nil
}

// ResolveDefault evaluates the default against owner. It panics when the
// option has no default.
func (o *Option) ResolveDefault(owner any) cty.Value {
	if o.def == nil {
		panic(fmt.Sprintf("options: option %q has no default", o.name))
	}
	return o.def.resolve(owner)
}

// MatchesType reports whether v satisfies the option's type constraint.
func (o *Option) MatchesType(v cty.Value) bool {
	return o.constraint.Matches(v)
}

// IsAllowed reports whether v is in the allow-list, or the list is empty.
func (o *Option) IsAllowed(v cty.Value) bool {
	if len(o.allow) == 0 {
		return true
	}
	if v.Type() == cty.NilType {
		return false
	}
	v = unmarked(v)
	for _, a := range o.allow {
		if a.Type() == cty.NilType {
			continue
		}
		eq := v.Equals(unmarked(a))
		if eq.IsKnown() && eq.True() {
			return true
		}
	}
	return false
}

// check runs both validations and returns the first failure.
func (o *Option) check(v cty.Value) error {
	if !o.MatchesType(v) {
		return &InvalidOptionValueError{
			Option:   o.name,
			Value:    v,
			Reason:   ReasonType,
			Expected: o.constraint.String(),
		}
	}
	if !o.IsAllowed(v) {
		return &InvalidOptionValueError{
			Option:   o.name,
			Value:    v,
			Reason:   ReasonNotAllowed,
			Expected: renderValues(o.allow),
		}
	}
	return nil
}

// unmarked strips every mark from v, nested ones included. Marks carry no
// meaning for validation or decoding.
func unmarked(v cty.Value) cty.Value {
	u, _ := v.UnmarkDeep()
	return u
}
