// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Definitions, the per-schema registry of Option
// descriptors, and the three construction phases that run against it:
// default filling, validation and value binding.
package options

import (
	"context"
	"sort"
	"sync"

	"github.com/vk/optionkit/internal/ctxlog"
)

// Definitions is an ordered registry of options keyed by name. The zero
// value is an empty registry ready for use.
type Definitions struct {
	mu      sync.RWMutex
	order   []string
	options map[string]*Option
}

// NewDefinitions creates an empty registry.
func NewDefinitions() *Definitions {
	return &Definitions{
		options: make(map[string]*Option),
	}
}

// Define inserts o, replacing any option with the same name. A replaced
// option keeps its position in the declaration order.
func (d *Definitions) Define(o *Option) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.options == nil {
		d.options = make(map[string]*Option)
	}
	if _, exists := d.options[o.name]; !exists {
		d.order = append(d.order, o.name)
	}
	d.options[o.name] = o
}

// Copy returns an independent registry holding the same options. Options are
// shared since they are immutable; the containers are not.
func (d *Definitions) Copy() *Definitions {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cp := &Definitions{
		order:   make([]string, len(d.order)),
		options: make(map[string]*Option, len(d.options)),
	}
	copy(cp.order, d.order)
	for name, o := range d.options {
		cp.options[name] = o
	}
	return cp
}

// Lookup returns the option declared under name.
func (d *Definitions) Lookup(name string) (*Option, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	o, ok := d.options[name]
	return o, ok
}

// Len returns the number of declared options.
func (d *Definitions) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.order)
}

// list returns the options in declaration order.
func (d *Definitions) list() []*Option {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Option, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.options[name])
	}
	return out
}

// SetDefaults fills bag with the default of every option that is missing
// from it and has one. Options without a default stay unset.
func (d *Definitions) SetDefaults(ctx context.Context, owner any, bag Bag) {
	logger := ctxlog.FromContext(ctx)

	for _, o := range d.list() {
		if _, present := bag[o.name]; present || !o.HasDefault() {
			continue
		}
		bag[o.name] = o.ResolveDefault(owner)
		logger.Debug("Applied option default.", "option", o.name)
	}
}

// ValidateOptions checks every key present in bag against its option and
// returns the first failure. Keys are visited in sorted order.
func (d *Definitions) ValidateOptions(ctx context.Context, bag Bag) error {
	logger := ctxlog.FromContext(ctx)

	keys := make([]string, 0, len(bag))
	for k := range bag {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		o, ok := d.Lookup(k)
		if !ok {
			logger.Debug("Rejected unknown option.", "option", k)
			return &UnknownOptionError{Option: k}
		}
		if err := o.check(bag[k]); err != nil {
			logger.Debug("Rejected option value.", "option", k, "error", err)
			return err
		}
	}

	logger.Debug("Options validated.", "count", len(keys))
	return nil
}

// BindValues writes the value of every reader option onto owner: its Base
// reader table and any struct field tagged with the option's name. Options
// missing from bag bind nothing. Nothing is written when an error is
// returned.
func (d *Definitions) BindValues(ctx context.Context, owner Owner, bag Bag) error {
	logger := ctxlog.FromContext(ctx)

	readers := make(map[string]bool)
	values := make(Bag)
	for _, o := range d.list() {
		if !o.reader {
			continue
		}
		readers[o.name] = true
		if v, ok := bag[o.name]; ok {
			values[o.name] = v
		}
	}

	assign, err := prepareFields(owner, readers, values)
	if err != nil {
		return err
	}
	assign()

	base := owner.optionsBase()
	base.markReaders(readers)
	base.bindReaders(values)
	logger.Debug("Reader options bound.", "count", len(values))
	return nil
}
