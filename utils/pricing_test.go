package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDiscount(t *testing.T) {
	t.Run("typical sale price", func(t *testing.T) {
		d := ComputeDiscount(100, 40)
		assert.Equal(t, 60.0, d.Amount)
		assert.Equal(t, 60.0, d.Percent)
	})

	t.Run("zero prices", func(t *testing.T) {
		d := ComputeDiscount(0, 0)
		assert.Equal(t, 0.0, d.Amount)
		assert.Equal(t, 0.0, d.Percent)
	})

	t.Run("selling above original is not a negative discount", func(t *testing.T) {
		d := ComputeDiscount(40, 100)
		assert.Equal(t, 0.0, d.Amount)
		assert.Equal(t, 0.0, d.Percent)
	})

	t.Run("non-finite inputs behave as zero", func(t *testing.T) {
		d := ComputeDiscount(math.NaN(), 40)
		assert.Equal(t, 0.0, d.Amount)
		assert.Equal(t, 0.0, d.Percent)

		d = ComputeDiscount(100, math.Inf(1))
		assert.Equal(t, 100.0, d.Amount)
		assert.Equal(t, 100.0, d.Percent)

		d = ComputeDiscount(math.Inf(-1), math.NaN())
		assert.Equal(t, 0.0, d.Amount)
		assert.Equal(t, 0.0, d.Percent)
	})

	t.Run("percent stays within range for valid sales", func(t *testing.T) {
		for _, pair := range [][2]float64{{100, 0}, {100, 50}, {100, 100}, {19.99, 9.99}} {
			d := ComputeDiscount(pair[0], pair[1])
			assert.GreaterOrEqual(t, d.Amount, 0.0)
			assert.GreaterOrEqual(t, d.Percent, 0.0)
			assert.LessOrEqual(t, d.Percent, 100.0)
		}
	})
}

func TestGetTaxRate(t *testing.T) {
	assert.Equal(t, 0.18, GetTaxRate("gst"))
	assert.Equal(t, 0.20, GetTaxRate("vat"))
	assert.Equal(t, 0.0, GetTaxRate("none"))
	assert.Equal(t, 0.0, GetTaxRate("unknown"))
	assert.Equal(t, 0.0, GetTaxRate(""))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$19.99", FormatMoney(19.99, "USD"))
	assert.Equal(t, "€5.00", FormatMoney(5, "EUR"))
	assert.Equal(t, "12.50 AUD", FormatMoney(12.5, "AUD"))
	assert.Equal(t, "$19.99", FormatMoney(19.99, ""))
	assert.Equal(t, "$7.00", FormatMoney(7, "not-a-code"))
	assert.Equal(t, "$0.00", FormatMoney(math.NaN(), "USD"))
}
