// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Snapshot is a read-only view of a resolved configuration bag. It has no
// mutating methods and never hands out its internal map.
type Snapshot struct {
	values map[string]cty.Value
}

func newSnapshot(bag Bag) Snapshot {
	values := make(map[string]cty.Value, len(bag))
	for k, v := range bag {
		values[k] = v
	}
	return Snapshot{values: values}
}

// Get returns the value stored under name.
func (s Snapshot) Get(name string) (cty.Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Has reports whether name is present.
func (s Snapshot) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Len returns the number of entries.
func (s Snapshot) Len() int { return len(s.values) }

// Names returns the keys in sorted order.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.values))
	for k := range s.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the entries. Changing it does not affect s.
func (s Snapshot) Map() Bag {
	out := make(Bag, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Value returns the entries as a cty object value.
func (s Snapshot) Value() cty.Value {
	if len(s.values) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(s.Map())
}
