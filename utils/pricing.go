package utils

import (
	"fmt"
	"math"
	"strings"

	"storefront/models"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"TRY": "₺",
}

// FormatMoney renders an amount with its currency symbol. Unknown but
// well-formed ISO codes are appended after the amount; anything else
// falls back to a plain dollar rendering. It never fails.
func FormatMoney(amount float64, currency string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "USD"
	}

	if symbol, ok := currencySymbols[code]; ok {
		return fmt.Sprintf("%s%.2f", symbol, amount)
	}

	if len(code) == 3 {
		return fmt.Sprintf("%.2f %s", amount, code)
	}

	return fmt.Sprintf("$%.2f", amount)
}

// GetTaxRate maps a tax class to its rate. Unrecognized classes are
// untaxed.
func GetTaxRate(taxClass string) float64 {
	switch taxClass {
	case "gst":
		return 0.18
	case "vat":
		return 0.20
	default:
		return 0
	}
}

// ComputeDiscount derives the discount between a regular and a sale
// price. Non-finite inputs count as zero, and the result is never
// negative.
func ComputeDiscount(original, selling float64) models.Discount {
	if math.IsNaN(original) || math.IsInf(original, 0) {
		original = 0
	}
	if math.IsNaN(selling) || math.IsInf(selling, 0) {
		selling = 0
	}

	amount := original - selling
	if amount < 0 {
		amount = 0
	}

	percent := 0.0
	if original > 0 {
		percent = amount / original * 100
	}

	return models.Discount{Amount: amount, Percent: percent}
}
