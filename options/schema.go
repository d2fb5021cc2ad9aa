// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Schema, the capability a Go type adopts to accept a
// single configuration bag at construction.
//
// A Schema is declared once, usually in a package-level var, and then used
// by the type's constructor:
//
//	var userSchema = options.NewSchema("User").
//		Option("name", options.Settings{Type: options.Type(cty.String), Reader: true}).
//		Option("admin", options.Settings{
//			Allow:   []cty.Value{cty.True, cty.False},
//			Reader:  true,
//			Default: options.Literal(cty.False),
//		})
//
//	func NewUser(ctx context.Context, bag options.Bag) (*User, error) {
//		u := &User{}
//		if err := userSchema.Init(ctx, u, bag); err != nil {
//			return nil, err
//		}
//		return u, nil
//	}
//
// Derived types call Extend on the parent schema. The child receives a copy
// of the parent's options as they are at that moment; from then on the two
// schemas evolve independently.
package options

import (
	"context"
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"github.com/vk/optionkit/internal/ctxlog"
)

// Schema holds the option declarations of one type. The zero value is an
// anonymous schema ready for use.
type Schema struct {
	name   string
	parent *Schema

	once sync.Once
	defs *Definitions
}

// NewSchema creates an empty schema.
func NewSchema(name string) *Schema {
	return &Schema{name: name}
}

// Name returns the schema name given at creation.
func (s *Schema) Name() string { return s.name }

// Parent returns the schema s was extended from, or nil.
func (s *Schema) Parent() *Schema { return s.parent }

// Definitions returns the schema's registry, creating it on first use.
func (s *Schema) Definitions() *Definitions {
	s.once.Do(func() {
		if s.defs == nil {
			s.defs = NewDefinitions()
		}
	})
	return s.defs
}

// Option declares an option on s and returns s. Declaring a name twice
// replaces the earlier declaration. It panics on an empty name.
func (s *Schema) Option(name string, settings Settings) *Schema {
	if name == "" {
		panic("options: option name must not be empty")
	}
	s.Definitions().Define(NewOption(name, settings))
	return s
}

// Extend creates a child schema holding a copy of the options currently
// declared on s.
func (s *Schema) Extend(name string) *Schema {
	child := &Schema{
		name:   name,
		parent: s,
		defs:   s.Definitions().Copy(),
	}
	return child
}

// Init constructs owner from bag: defaults are filled into a private copy of
// bag, the result is validated, reader options are bound and the copy is
// frozen as owner's Options. Any error leaves owner uninitialized and
// untouched. bag itself is never modified; a nil bag is an empty one.
func (s *Schema) Init(ctx context.Context, owner Owner, bag Bag) error {
	if owner == nil || isNilPointer(owner) {
		return errors.Errorf("%s: owner must not be nil", s.label())
	}
	base := owner.optionsBase()
	if base == nil {
		return errors.Errorf("%s: owner embeds a nil *options.Base", s.label())
	}
	if base.initialized {
		return errors.Wrap(ErrAlreadyInitialized, s.label())
	}

	logger := ctxlog.FromContext(ctx).With("schema", s.label())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Initializing options.", "supplied", len(bag))

	defs := s.Definitions()
	work := bag.Clone()

	defs.SetDefaults(ctx, owner, work)

	if err := defs.ValidateOptions(ctx, work); err != nil {
		return errors.Wrap(err, s.label())
	}

	if err := defs.BindValues(ctx, owner, work); err != nil {
		return errors.Wrap(err, s.label())
	}

	base.freeze(work)
	logger.Debug("Options initialized.", "resolved", len(work))
	return nil
}

func (s *Schema) label() string {
	if s.name == "" {
		return "options"
	}
	return s.name
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
