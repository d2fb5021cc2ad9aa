// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/optionkit/options"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// schemaDecl is one parsed `schema` block, before it is turned into an
// options.Schema.
type schemaDecl struct {
	Name       string
	Extends    string
	ExtendsRng hcl.Range
	DefRange   hcl.Range
	Options    []optionDecl
}

// optionDecl is one parsed `option` block.
type optionDecl struct {
	Name     string
	Settings options.Settings
}

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "schema", LabelNames: []string{"name"}},
	},
}

var schemaBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "extends"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "option", LabelNames: []string{"name"}},
	},
}

var optionBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type"},
		{Name: "reader"},
		{Name: "allow"},
		{Name: "default"},
	},
}

// parseBody decodes every `schema` block of a file body.
func parseBody(body hcl.Body) ([]*schemaDecl, hcl.Diagnostics) {
	content, diags := body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	decls := make([]*schemaDecl, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		decl, declDiags := parseSchemaBlock(block)
		diags = append(diags, declDiags...)
		if decl != nil {
			decls = append(decls, decl)
		}
	}
	return decls, diags
}

func parseSchemaBlock(block *hcl.Block) (*schemaDecl, hcl.Diagnostics) {
	content, diags := block.Body.Content(schemaBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	decl := &schemaDecl{
		Name:     block.Labels[0],
		DefRange: block.DefRange,
	}

	if attr, exists := content.Attributes["extends"]; exists {
		exprDiags := gohcl.DecodeExpression(attr.Expr, nil, &decl.Extends)
		diags = append(diags, exprDiags...)
		decl.ExtendsRng = attr.Expr.Range()
	}

	seen := make(map[string]hcl.Range)
	for _, optBlock := range content.Blocks.OfType("option") {
		name := optBlock.Labels[0]
		if prev, exists := seen[name]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate option definition",
				Detail:   fmt.Sprintf("An option named '%s' was already defined in this schema at %s.", name, prev),
				Subject:  optBlock.DefRange.Ptr(),
			})
			continue
		}
		seen[name] = optBlock.DefRange

		settings, optDiags := parseOptionBlock(optBlock)
		diags = append(diags, optDiags...)
		if optDiags.HasErrors() {
			continue
		}
		decl.Options = append(decl.Options, optionDecl{Name: name, Settings: settings})
	}

	return decl, diags
}

func parseOptionBlock(block *hcl.Block) (options.Settings, hcl.Diagnostics) {
	var settings options.Settings

	content, diags := block.Body.Content(optionBodySchema)
	if diags.HasErrors() {
		return settings, diags
	}

	ty := cty.DynamicPseudoType
	if attr, exists := content.Attributes["type"]; exists {
		var typeDiags hcl.Diagnostics
		ty, typeDiags = typeexpr.TypeConstraint(attr.Expr)
		diags = append(diags, typeDiags...)
		if typeDiags.HasErrors() {
			return settings, diags
		}
	}
	settings.Type = options.Type(ty)

	if attr, exists := content.Attributes["reader"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &settings.Reader)...)
	}

	if attr, exists := content.Attributes["allow"]; exists {
		allow, allowDiags := literalList(attr)
		diags = append(diags, allowDiags...)
		for i, v := range allow {
			allow[i] = shapeLiteral(v, ty)
		}
		settings.Allow = allow
	}

	if attr, exists := content.Attributes["default"]; exists {
		// Defaults must be literal values, so there is no eval context.
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() {
			settings.Default = options.Literal(shapeLiteral(val, ty))
		}
	}

	return settings, diags
}

// shapeLiteral gives a literal the declared type where HCL syntax cannot
// express it directly: `null` becomes a null of ty, and tuple or object
// literals become the declared collection or object type. Primitive values
// are never converted, and a literal that cannot take the shape is returned
// as written so construction reports it.
func shapeLiteral(val cty.Value, ty cty.Type) cty.Value {
	if ty.Equals(cty.DynamicPseudoType) {
		return val
	}
	if val.IsNull() {
		return cty.NullVal(ty)
	}
	vt := val.Type()
	if !vt.IsTupleType() && !vt.IsObjectType() {
		return val
	}
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return val
	}
	return converted
}

// literalList evaluates an `allow` attribute into its element values.
func literalList(attr *hcl.Attribute) ([]cty.Value, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	ty := val.Type()
	if val.IsNull() || !val.IsWhollyKnown() || !(ty.IsListType() || ty.IsTupleType() || ty.IsSetType()) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid allow list",
			Detail:   fmt.Sprintf("The 'allow' attribute must be a list of literal values, got %s.", ty.FriendlyName()),
			Subject:  attr.Expr.Range().Ptr(),
		})
		return nil, diags
	}

	out := make([]cty.Value, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		out = append(out, v)
	}
	return out, diags
}
