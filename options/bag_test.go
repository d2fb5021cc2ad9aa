package options_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/optionkit/options"
	"github.com/zclconf/go-cty/cty"
)

func TestNewBag(t *testing.T) {
	t.Parallel()

	t.Run("Success: Converts native values without coercion", func(t *testing.T) {
		t.Parallel()
		bag, err := options.NewBag(map[string]any{
			"name":  "Piotr",
			"count": 3,
			"admin": true,
			"tags":  []string{"a"},
			"none":  nil,
			"raw":   cty.NumberIntVal(7),
		})
		require.NoError(t, err)
		require.True(t, bag["name"].RawEquals(cty.StringVal("Piotr")))
		require.True(t, bag["count"].Type().Equals(cty.Number))
		require.True(t, bag["admin"].RawEquals(cty.True))
		require.True(t, bag["tags"].Type().Equals(cty.List(cty.String)))
		require.True(t, bag["none"].IsNull())
		require.True(t, bag["raw"].RawEquals(cty.NumberIntVal(7)))
	})

	t.Run("Failure: Unsupported Go type", func(t *testing.T) {
		t.Parallel()
		_, err := options.NewBag(map[string]any{"fn": func() {}})
		require.Error(t, err)
		require.Contains(t, err.Error(), `"fn"`)
		require.Panics(t, func() { options.MustBag(map[string]any{"fn": func() {}}) })
	})
}

func TestBag_Clone(t *testing.T) {
	t.Parallel()

	var nilBag options.Bag
	require.NotNil(t, nilBag.Clone())

	orig := options.Bag{"a": cty.True}
	cp := orig.Clone()
	cp["b"] = cty.False
	require.Len(t, orig, 1)
}
