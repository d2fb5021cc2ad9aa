// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package options

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vk/optionkit/internal/ctxlog"
)

// Lint checks every literal default of s against its own option's type and
// allow-list, the same checks Init applies, and returns each violation.
// Computed defaults need an owner and are not evaluated.
func (s *Schema) Lint(ctx context.Context) []error {
	logger := ctxlog.FromContext(ctx).With("schema", s.label())

	var errs []error
	for _, o := range s.Definitions().list() {
		lit, ok := o.def.(literalDefault)
		if !ok {
			continue
		}
		if err := o.check(lit.val); err != nil {
			logger.Debug("Default violates its own option.", "option", o.name, "error", err)
			errs = append(errs, errors.Wrapf(err, "%s: default", s.label()))
		}
	}
	return errs
}
