package utils

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"storefront/models"
)

// StableVariantID hashes an attribute assignment into an 8-hex-digit id.
// Keys are sorted first, so logically equal assignments always hash the
// same regardless of map iteration order.
func StableVariantID(attributes map[string]string) string {
	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+":"+attributes[k])
	}
	h := fnv.New32a()
	h.Write([]byte(strings.Join(pairs, "|")))
	return fmt.Sprintf("%08x", h.Sum32())
}

// GenerateVariants expands the attribute sets flagged for variants into
// the cartesian product of their values. Each combination gets a stable
// hash id, and overrides from existing entries with a matching id are
// carried forward so admin-entered sku/price/stock survive regeneration.
func GenerateVariants(sets []models.AttributeSet, existing []models.Variant) []models.Variant {
	active := make([]models.AttributeSet, 0, len(sets))
	for _, set := range sets {
		if !set.UseForVariants {
			continue
		}
		values := make([]string, 0, len(set.Values))
		for _, v := range set.Values {
			if strings.TrimSpace(v) != "" {
				values = append(values, strings.TrimSpace(v))
			}
		}
		if len(values) == 0 {
			continue
		}
		set.Values = values
		active = append(active, set)
	}

	if len(active) == 0 {
		return []models.Variant{}
	}

	prior := make(map[string]models.Variant, len(existing))
	for _, v := range existing {
		prior[v.ID] = v
	}

	// Left fold over the sets: the first set varies slowest.
	combos := [][]string{{}}
	for _, set := range active {
		next := make([][]string, 0, len(combos)*len(set.Values))
		for _, combo := range combos {
			for _, value := range set.Values {
				extended := make([]string, len(combo), len(combo)+1)
				copy(extended, combo)
				next = append(next, append(extended, value))
			}
		}
		combos = next
	}

	variants := make([]models.Variant, 0, len(combos))
	for _, combo := range combos {
		attributes := make(map[string]string, len(active))
		parts := make([]string, 0, len(active))
		for i, set := range active {
			attributes[set.Name] = combo[i]
			parts = append(parts, set.Name+": "+combo[i])
		}

		variant := models.Variant{
			ID:         StableVariantID(attributes),
			Name:       strings.Join(parts, " · "),
			Attributes: attributes,
		}

		if old, ok := prior[variant.ID]; ok {
			variant.SKU = old.SKU
			variant.PriceOverride = old.PriceOverride
			variant.StockOverride = old.StockOverride
		}

		variants = append(variants, variant)
	}

	return variants
}
