package options_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/optionkit/options"
	"github.com/zclconf/go-cty/cty"
)

func TestOption_Defaults(t *testing.T) {
	t.Parallel()

	t.Run("Success: No default declared", func(t *testing.T) {
		t.Parallel()
		o := options.NewOption("name", options.Settings{})
		require.False(t, o.HasDefault())
		require.Panics(t, func() { o.ResolveDefault(nil) })
	})

	t.Run("Success: Null literal is a real default", func(t *testing.T) {
		t.Parallel()
		o := options.NewOption("name", options.Settings{Default: options.Literal(cty.NullVal(cty.String))})
		require.True(t, o.HasDefault())
		v := o.ResolveDefault(nil)
		require.True(t, v.IsNull())
		require.True(t, v.Type().Equals(cty.String))
	})

	t.Run("Success: Computed default receives the owner", func(t *testing.T) {
		t.Parallel()
		var seen any
		o := options.NewOption("id", options.Settings{Default: options.Computed(func(owner any) cty.Value {
			seen = owner
			return cty.StringVal("generated")
		})})

		owner := &struct{ x int }{x: 7}
		v := o.ResolveDefault(owner)
		require.True(t, v.RawEquals(cty.StringVal("generated")))
		require.Same(t, owner, seen)
	})
}

func TestOption_MatchesType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		constraint options.Constraint
		value      cty.Value
		want       bool
	}{
		{"string accepts string", options.Type(cty.String), cty.StringVal("Piotr"), true},
		{"string rejects number", options.Type(cty.String), cty.NumberIntVal(42), false},
		{"string accepts typed null", options.Type(cty.String), cty.NullVal(cty.String), true},
		{"string rejects untyped null", options.Type(cty.String), cty.NullVal(cty.DynamicPseudoType), false},
		{"number does not convert strings", options.Type(cty.Number), cty.StringVal("1"), false},
		{"list of string", options.Type(cty.List(cty.String)), cty.ListVal([]cty.Value{cty.StringVal("a")}), true},
		{"list of string rejects list of number", options.Type(cty.List(cty.String)), cty.ListVal([]cty.Value{cty.NumberIntVal(1)}), false},
		{"any accepts bool", options.Any, cty.True, true},
		{"any accepts untyped null", options.Any, cty.NullVal(cty.DynamicPseudoType), true},
		{"any rejects the zero value", options.Any, cty.NilVal, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			o := options.NewOption("opt", options.Settings{Type: tc.constraint})
			require.Equal(t, tc.want, o.MatchesType(tc.value))
		})
	}

	t.Run("Success: Nil type means any", func(t *testing.T) {
		t.Parallel()
		o := options.NewOption("opt", options.Settings{})
		require.True(t, o.MatchesType(cty.NumberIntVal(1)))
		require.Equal(t, "any", o.Constraint().String())
	})

	t.Run("Success: Predicate constraint", func(t *testing.T) {
		t.Parallel()
		nonEmpty := options.Predicate("non-empty string", func(v cty.Value) bool {
			return v.Type().Equals(cty.String) && !v.IsNull() && v.AsString() != ""
		})
		o := options.NewOption("opt", options.Settings{Type: nonEmpty})
		require.True(t, o.MatchesType(cty.StringVal("x")))
		require.False(t, o.MatchesType(cty.StringVal("")))
		require.False(t, o.MatchesType(cty.True))
		require.Equal(t, "non-empty string", o.Constraint().String())
	})
}

func TestOption_IsAllowed(t *testing.T) {
	t.Parallel()

	color := options.NewOption("color", options.Settings{
		Allow: []cty.Value{cty.StringVal("red"), cty.StringVal("blue")},
	})
	require.True(t, color.IsAllowed(cty.StringVal("red")))
	require.False(t, color.IsAllowed(cty.StringVal("green")))
	require.False(t, color.IsAllowed(cty.NumberIntVal(1)))
	require.False(t, color.IsAllowed(cty.NilVal))

	unrestricted := options.NewOption("any", options.Settings{})
	require.True(t, unrestricted.IsAllowed(cty.StringVal("green")))

	numbers := options.NewOption("level", options.Settings{Allow: []cty.Value{cty.NumberIntVal(1)}})
	require.True(t, numbers.IsAllowed(cty.NumberFloatVal(1.0)), "numeric equality ignores representation")
}

func TestOption_AllowListIsCopied(t *testing.T) {
	t.Parallel()

	allow := []cty.Value{cty.StringVal("red")}
	o := options.NewOption("color", options.Settings{Allow: allow})
	allow[0] = cty.StringVal("green")

	require.True(t, o.IsAllowed(cty.StringVal("red")))
	require.False(t, o.IsAllowed(cty.StringVal("green")))
}
