// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Bag is a configuration bag: option names mapped to values.
type Bag map[string]cty.Value

// Clone returns a shallow copy of b. Cloning a nil Bag gives an empty one.
func (b Bag) Clone() Bag {
	out := make(Bag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// NewBag converts native Go values into a Bag. Each value keeps the cty type
// implied by its Go type; a nil entry becomes an untyped null.
func NewBag(values map[string]any) (Bag, error) {
	bag := make(Bag, len(values))
	for k, v := range values {
		if v == nil {
			bag[k] = cty.NullVal(cty.DynamicPseudoType)
			continue
		}
		if cv, ok := v.(cty.Value); ok {
			bag[k] = cv
			continue
		}

		ty, err := gocty.ImpliedType(v)
		if err != nil {
			return nil, errors.Wrapf(err, "option %q: cannot infer type of %T", k, v)
		}
		cv, err := gocty.ToCtyValue(v, ty)
		if err != nil {
			return nil, errors.Wrapf(err, "option %q: cannot convert %T", k, v)
		}
		bag[k] = cv
	}
	return bag, nil
}

// MustBag is like NewBag but panics on conversion errors.
func MustBag(values map[string]any) Bag {
	bag, err := NewBag(values)
	if err != nil {
		panic(err)
	}
	return bag
}
