// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"reflect"
	"strings"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// fieldTag is the struct tag naming the reader option a field backs.
const fieldTag = "option"

var (
	ctyValueType = reflect.TypeOf(cty.Value{})
	baseType     = reflect.TypeOf(Base{})
)

// prepareFields decodes every value destined for a tagged field of owner and
// returns a function that performs the assignments. Fields of embedded
// structs are included, so a type embedding its parent type receives the
// parent's readers. Decoding happens up front so a failure leaves owner
// untouched.
func prepareFields(owner Owner, readers map[string]bool, values Bag) (func(), error) {
	noop := func() {}

	rv := reflect.ValueOf(owner)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return noop, nil
	}
	sv := rv.Elem()
	if sv.Kind() != reflect.Struct {
		return noop, nil
	}

	var todo []pendingField
	if err := collectFields(sv, readers, values, &todo); err != nil {
		return nil, err
	}

	return func() {
		for _, p := range todo {
			p.field.Set(p.value)
		}
	}, nil
}

type pendingField struct {
	field reflect.Value
	value reflect.Value
}

func collectFields(sv reflect.Value, readers map[string]bool, values Bag, todo *[]pendingField) error {
	st := sv.Type()

	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		field := sv.Field(i)

		if sf.Anonymous {
			if embedded, ok := embeddedStruct(sf, field); ok {
				if err := collectFields(embedded, readers, values, todo); err != nil {
					return err
				}
				continue
			}
		}

		name := strings.Split(sf.Tag.Get(fieldTag), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if !readers[name] {
			return errors.Wrapf(ErrNotReader, "field %s.%s is tagged %q", st.Name(), sf.Name, name)
		}

		v, ok := values[name]
		if !ok || v.IsNull() {
			continue
		}

		decoded := reflect.New(sf.Type)
		if err := decodeValue(v, decoded); err != nil {
			return errors.Wrapf(err, "option %q: cannot bind to field %s.%s", name, st.Name(), sf.Name)
		}

		if !field.CanSet() {
			// Unexported backing fields keep the generated reader read-only.
			field = reflect.NewAt(sf.Type, unsafe.Pointer(field.UnsafeAddr())).Elem()
		}
		*todo = append(*todo, pendingField{field: field, value: decoded.Elem()})
	}
	return nil
}

// embeddedStruct returns the struct held by an anonymous field, following a
// non-nil pointer. Base itself is never descended into.
func embeddedStruct(sf reflect.StructField, field reflect.Value) (reflect.Value, bool) {
	t := sf.Type
	if t == baseType || t == reflect.PointerTo(baseType) {
		return reflect.Value{}, false
	}
	switch {
	case t.Kind() == reflect.Struct:
		return field, true
	case t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct && !field.IsNil():
		return field.Elem(), true
	}
	return reflect.Value{}, false
}

// decodeValue stores v into the value ptr points to. cty.Value fields keep
// the value's marks; Go-typed fields receive the unmarked value.
func decodeValue(v cty.Value, ptr reflect.Value) error {
	if ptr.Elem().Type() == ctyValueType {
		ptr.Elem().Set(reflect.ValueOf(v))
		return nil
	}
	return gocty.FromCtyValue(unmarked(v), ptr.Interface())
}
