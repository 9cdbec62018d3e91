package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func TestStableVariantID(t *testing.T) {
	t.Run("independent of key order", func(t *testing.T) {
		a := StableVariantID(map[string]string{"Color": "Red", "Size": "M"})
		b := StableVariantID(map[string]string{"Size": "M", "Color": "Red"})
		assert.Equal(t, a, b)
	})

	t.Run("known fnv-1a digest", func(t *testing.T) {
		// FNV-1a over "Color:Red|Size:M"
		id := StableVariantID(map[string]string{"Color": "Red", "Size": "M"})
		assert.Equal(t, "7eae0b3f", id)
	})

	t.Run("eight lowercase hex digits", func(t *testing.T) {
		hexShape := regexp.MustCompile(`^[0-9a-f]{8}$`)
		for _, attrs := range []map[string]string{
			{},
			{"Color": "Red"},
			{"Color": "Red", "Size": "M", "Material": "Cotton"},
		} {
			assert.Regexp(t, hexShape, StableVariantID(attrs))
		}
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		attrs := map[string]string{"Color": "Blue", "Size": "XL"}
		first := StableVariantID(attrs)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, StableVariantID(attrs))
		}
	})

	t.Run("different assignments differ", func(t *testing.T) {
		red := StableVariantID(map[string]string{"Color": "Red"})
		blue := StableVariantID(map[string]string{"Color": "Blue"})
		assert.NotEqual(t, red, blue)
	})
}

func TestGenerateVariants(t *testing.T) {
	sets := []models.AttributeSet{
		{Name: "Color", Values: []string{"Red", "Blue"}, UseForVariants: true},
		{Name: "Size", Values: []string{"S", "M"}, UseForVariants: true},
	}

	t.Run("cartesian product with first set varying slowest", func(t *testing.T) {
		variants := GenerateVariants(sets, nil)
		require.Len(t, variants, 4)

		assert.Equal(t, "Color: Red · Size: S", variants[0].Name)
		assert.Equal(t, "Color: Red · Size: M", variants[1].Name)
		assert.Equal(t, "Color: Blue · Size: S", variants[2].Name)
		assert.Equal(t, "Color: Blue · Size: M", variants[3].Name)

		seen := map[string]bool{}
		for _, v := range variants {
			assert.False(t, seen[v.ID], "variant ids must be unique")
			seen[v.ID] = true
		}
	})

	t.Run("overrides carried forward by id", func(t *testing.T) {
		generated := GenerateVariants(sets, nil)
		price := 12.5
		stock := 7
		existing := []models.Variant{{
			ID:            generated[1].ID,
			SKU:           "RED-M-001",
			PriceOverride: &price,
			StockOverride: &stock,
		}}

		regenerated := GenerateVariants(sets, existing)
		require.Len(t, regenerated, 4)
		assert.Equal(t, "RED-M-001", regenerated[1].SKU)
		require.NotNil(t, regenerated[1].PriceOverride)
		assert.Equal(t, 12.5, *regenerated[1].PriceOverride)
		require.NotNil(t, regenerated[1].StockOverride)
		assert.Equal(t, 7, *regenerated[1].StockOverride)

		assert.Empty(t, regenerated[0].SKU)
		assert.Nil(t, regenerated[0].PriceOverride)
	})

	t.Run("stale overrides are dropped", func(t *testing.T) {
		price := 99.0
		existing := []models.Variant{{ID: "deadbeef", PriceOverride: &price}}
		variants := GenerateVariants(sets, existing)
		for _, v := range variants {
			assert.Nil(t, v.PriceOverride)
		}
	})

	t.Run("sets not flagged for variants are excluded", func(t *testing.T) {
		withExtra := append([]models.AttributeSet{}, sets...)
		withExtra = append(withExtra, models.AttributeSet{
			Name: "Material", Values: []string{"Cotton"}, UseForVariants: false,
		})
		variants := GenerateVariants(withExtra, nil)
		require.Len(t, variants, 4)
		for _, v := range variants {
			assert.NotContains(t, v.Attributes, "Material")
		}
	})

	t.Run("sets with only blank values are excluded", func(t *testing.T) {
		withBlank := append([]models.AttributeSet{}, sets...)
		withBlank = append(withBlank, models.AttributeSet{
			Name: "Fit", Values: []string{"", "   "}, UseForVariants: true,
		})
		variants := GenerateVariants(withBlank, nil)
		assert.Len(t, variants, 4)
	})

	t.Run("blank values inside a set are skipped", func(t *testing.T) {
		variants := GenerateVariants([]models.AttributeSet{
			{Name: "Color", Values: []string{"Red", "", " Blue "}, UseForVariants: true},
		}, nil)
		require.Len(t, variants, 2)
		assert.Equal(t, "Color: Red", variants[0].Name)
		assert.Equal(t, "Color: Blue", variants[1].Name)
	})

	t.Run("no qualifying sets means no variants", func(t *testing.T) {
		assert.Empty(t, GenerateVariants(nil, nil))
		assert.Empty(t, GenerateVariants([]models.AttributeSet{
			{Name: "Color", Values: []string{"Red"}, UseForVariants: false},
		}, nil))
	})
}
