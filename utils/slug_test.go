package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"apostrophes and punctuation", "  Men's T-Shirt!! ", "mens-t-shirt"},
		{"already a slug", "mens-t-shirt", "mens-t-shirt"},
		{"mixed case and spaces", "Cold Brew Coffee Maker", "cold-brew-coffee-maker"},
		{"symbols collapse to one hyphen", "50% Off -- Today", "50-off-today"},
		{"empty input", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		for _, input := range []string{"  Men's T-Shirt!! ", "Wide  Leg — Jeans", strings.Repeat("long product name ", 10)} {
			once := Slugify(input)
			assert.Equal(t, once, Slugify(once))
		}
	})

	t.Run("bounded length without trailing hyphen", func(t *testing.T) {
		slug := Slugify(strings.Repeat("word ", 40))
		assert.LessOrEqual(t, len(slug), 80)
		assert.False(t, strings.HasSuffix(slug, "-"))
	})
}

func TestComputeSeoScore(t *testing.T) {
	assert.Equal(t, 0, ComputeSeoScore(""))

	// 60 +20 (length) +15 (canonical) +5 (hyphen) = 100
	assert.Equal(t, 100, ComputeSeoScore("cold-brew-coffee-maker"))

	// 60 -10 (short) +15 (canonical) +0 (no hyphen) = 65
	assert.Equal(t, 65, ComputeSeoScore("mug"))

	// 60 +20 (length) -20 (uppercase breaks pattern) +5 = 65
	assert.Equal(t, 65, ComputeSeoScore("Cold-Brew-Maker"))

	for _, slug := range []string{"a", "some-very-reasonable-slug", strings.Repeat("x", 80)} {
		score := ComputeSeoScore(slug)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}
