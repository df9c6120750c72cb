// Package format renders rupee amounts with Indian digit grouping.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

// indian groups the last three digits and then every two (12,34,567).
var indian = message.NewPrinter(language.Make("en-IN"))

// Currency returns a whole-rupee string with Indian grouping (e.g., "₹12,34,567", "-₹1,500").
func Currency(amount float64) string {
	formatted := indian.Sprintf("%.0f", math.Abs(amount))
	if amount < 0 && formatted != "0" {
		return "-₹" + formatted
	}
	return "₹" + formatted
}

// NumericCurrency returns an amount with paise and separators but no symbol (e.g., "-12,34,567.89").
func NumericCurrency(amount float64) string {
	result := indian.Sprintf("%.2f", math.Abs(amount))
	if amount < 0 && result != "0.00" {
		return "-" + result
	}
	return result
}

// Compact abbreviates large amounts to lakh (L) or crore (Cr) with two
// decimals; smaller amounts fall back to Currency.
func Compact(amount float64) string {
	abs := math.Abs(amount)
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	switch {
	case abs >= constants.Crore:
		return fmt.Sprintf("%s₹%.2f Cr", sign, abs/constants.Crore)
	case abs >= constants.Lakh:
		return fmt.Sprintf("%s₹%.2f L", sign, abs/constants.Lakh)
	default:
		return Currency(amount)
	}
}

// Percent renders a percent-unit value (9.5 -> "9.50%").
func Percent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}
