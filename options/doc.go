// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package options lets a Go type accept a single configuration bag at
// construction instead of a long parameter list, with every entry checked
// against a declared option.
//
// # Core Concepts
//
//   - Option: the immutable description of one named value. It carries a
//     type Constraint, an optional allow-list, an optional Default and a flag
//     saying whether the value is exposed through a reader.
//
//   - Definitions: the ordered registry of options belonging to one schema.
//     It fills defaults, validates a bag and binds reader values.
//
//   - Schema: the capability a type adopts. Options are declared on it once,
//     derived types Extend it, and constructors call Init.
//
//   - Base: embedded in the constructed type. It records the frozen Snapshot
//     of the resolved bag and the bound reader values.
//
// # Construction
//
// Init works on a private copy of the caller's bag and runs three phases in
// order: defaults are filled in, every supplied or defaulted key is
// validated, and reader options are bound. A failure in any phase aborts the
// construction with nothing written to the owner. Defaults are validated like
// any other value, so a default that violates its own option is reported at
// construction time.
//
// Values are cty values. Type constraints are checked by conformance only;
// a string is never turned into a number.
//
// There is no notion of a required option: an option without a default that
// the caller leaves out is simply absent from the result.
package options
