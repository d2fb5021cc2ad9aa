// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

var (
	// ErrAlreadyInitialized is returned by Schema.Init when the owner has
	// already completed a construction.
	ErrAlreadyInitialized = errors.New("options already initialized")

	// ErrNotReader is returned when an `option` struct tag names an option
	// that is not declared with Reader set.
	ErrNotReader = errors.New("option is not declared as a reader")
)

// UnknownOptionError reports a configuration key with no declared option.
type UnknownOptionError struct {
	Option string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %q", e.Option)
}

// Reason distinguishes the two ways a value can be rejected.
type Reason int

const (
	// ReasonType means the value does not satisfy the option's type constraint.
	ReasonType Reason = iota + 1
	// ReasonNotAllowed means the value is outside the option's allow-list.
	ReasonNotAllowed
)

func (r Reason) String() string {
	switch r {
	case ReasonType:
		return "type mismatch"
	case ReasonNotAllowed:
		return "value not allowed"
	default:
		return "unknown reason"
	}
}

// InvalidOptionValueError reports a value rejected by an option's type
// constraint or allow-list.
type InvalidOptionValueError struct {
	Option   string
	Value    cty.Value
	Reason   Reason
	Expected string
}

func (e *InvalidOptionValueError) Error() string {
	switch e.Reason {
	case ReasonType:
		return fmt.Sprintf("invalid value %s for option %q: expected %s, got %s",
			renderValue(e.Value), e.Option, e.Expected, typeName(e.Value))
	case ReasonNotAllowed:
		return fmt.Sprintf("invalid value %s for option %q: must be one of %s",
			renderValue(e.Value), e.Option, e.Expected)
	default:
		return fmt.Sprintf("invalid value %s for option %q", renderValue(e.Value), e.Option)
	}
}

// IsUnknownOption reports whether err, or anything it wraps, is an
// *UnknownOptionError.
func IsUnknownOption(err error) bool {
	var target *UnknownOptionError
	return errors.As(err, &target)
}

// IsInvalidValue reports whether err, or anything it wraps, is an
// *InvalidOptionValueError with the given reason. A zero reason matches both.
func IsInvalidValue(err error, reason Reason) bool {
	var target *InvalidOptionValueError
	if !errors.As(err, &target) {
		return false
	}
	return reason == 0 || target.Reason == reason
}

func typeName(v cty.Value) string {
	if v.Type() == cty.NilType {
		return "nothing"
	}
	return v.Type().FriendlyName()
}

// renderValue formats a value for messages, preferring its JSON form.
func renderValue(v cty.Value) string {
	if v.Type() != cty.NilType {
		v = unmarked(v)
	}
	switch {
	case v.Type() == cty.NilType:
		return "<nil>"
	case !v.IsWhollyKnown():
		return "(unknown)"
	case v.IsNull():
		return "null"
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return v.GoString()
	}
	return string(b)
}

func renderValues(vs []cty.Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = renderValue(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
