// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Owner is implemented by every type that embeds Base.
type Owner interface {
	optionsBase() *Base
}

// Base carries the option state of a constructed value. Embed it in a
// struct to make the struct an Owner:
//
//	type User struct {
//		options.Base
//		name string `option:"name"`
//	}
//
// A Base starts uninitialized and becomes initialized exactly once, through
// Schema.Init.
type Base struct {
	initialized bool
	snapshot    Snapshot
	readerNames map[string]struct{}
	readers     map[string]cty.Value
}

func (b *Base) optionsBase() *Base { return b }

// Initialized reports whether construction completed.
func (b *Base) Initialized() bool { return b.initialized }

// Options returns the frozen configuration the value was built with,
// defaults included.
func (b *Base) Options() Snapshot { return b.snapshot }

// Reader returns the bound value of a reader option. It reports false for
// options that are not readers or were left unset.
func (b *Base) Reader(name string) (cty.Value, bool) {
	v, ok := b.readers[name]
	return v, ok
}

func (b *Base) bindReaders(values Bag) {
	b.readers = make(map[string]cty.Value, len(values))
	for k, v := range values {
		b.readers[k] = v
	}
}

func (b *Base) markReaders(names map[string]bool) {
	b.readerNames = make(map[string]struct{}, len(names))
	for k := range names {
		b.readerNames[k] = struct{}{}
	}
}

func (b *Base) freeze(bag Bag) {
	b.snapshot = newSnapshot(bag)
	b.initialized = true
}

// Read returns the value of reader option name decoded into T. An option
// that was left unset, or bound to null, yields the zero T. It panics if
// name is not a reader of the owner's schema or the value cannot be decoded
// into T; both are programming errors.
func Read[T any](o Owner, name string) T {
	b := o.optionsBase()
	var out T

	if _, ok := b.readerNames[name]; !ok {
		panic(fmt.Sprintf("options: %q is not a reader option of this value", name))
	}

	v, ok := b.readers[name]
	if !ok || v.IsNull() {
		return out
	}

	if p, isCty := any(&out).(*cty.Value); isCty {
		*p = v
		return out
	}

	if err := gocty.FromCtyValue(unmarked(v), &out); err != nil {
		panic(fmt.Sprintf("options: cannot read option %q as %T: %s", name, out, err))
	}
	return out
}
