// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/optionkit/internal/ctxlog"
	"github.com/vk/optionkit/options"
)

// Catalog holds the schemas built from one or more manifests.
type Catalog struct {
	order   []string
	schemas map[string]*options.Schema
}

// Schema returns the schema declared under name.
func (c *Catalog) Schema(name string) (*options.Schema, bool) {
	s, ok := c.schemas[name]
	return s, ok
}

// Names returns the schema names in declaration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of schemas.
func (c *Catalog) Len() int { return len(c.order) }

// buildCatalog turns declarations into schemas. A schema that extends
// another is built after its parent, so it copies the parent's complete
// declaration.
func buildCatalog(ctx context.Context, decls []*schemaDecl) (*Catalog, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	var diags hcl.Diagnostics

	byName := make(map[string]*schemaDecl, len(decls))
	cat := &Catalog{schemas: make(map[string]*options.Schema, len(decls))}

	for _, d := range decls {
		if prev, exists := byName[d.Name]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate schema definition",
				Detail:   fmt.Sprintf("A schema named '%s' was already defined at %s.", d.Name, prev.DefRange),
				Subject:  d.DefRange.Ptr(),
			})
			continue
		}
		byName[d.Name] = d
		cat.order = append(cat.order, d.Name)
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(byName))

	var build func(d *schemaDecl) *options.Schema
	build = func(d *schemaDecl) *options.Schema {
		switch state[d.Name] {
		case done:
			return cat.schemas[d.Name]
		case visiting:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Schema inheritance cycle",
				Detail:   fmt.Sprintf("Schema '%s' extends itself through '%s'.", d.Name, d.Extends),
				Subject:  d.ExtendsRng.Ptr(),
			})
			return nil
		}
		state[d.Name] = visiting
		defer func() { state[d.Name] = done }()

		var s *options.Schema
		if d.Extends == "" {
			s = options.NewSchema(d.Name)
		} else {
			parentDecl, ok := byName[d.Extends]
			if !ok {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Unknown parent schema",
					Detail:   fmt.Sprintf("Schema '%s' extends '%s', which is not declared.", d.Name, d.Extends),
					Subject:  d.ExtendsRng.Ptr(),
				})
				return nil
			}
			parent := build(parentDecl)
			if parent == nil {
				return nil
			}
			s = parent.Extend(d.Name)
		}

		for _, o := range d.Options {
			s.Option(o.Name, o.Settings)
		}
		cat.schemas[d.Name] = s
		logger.Debug("Schema built.", "schema", d.Name, "extends", d.Extends, "options", len(d.Options))
		return s
	}

	for _, name := range cat.order {
		build(byName[name])
	}

	return cat, diags
}
