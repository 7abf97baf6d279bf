package utils

import (
	"fmt"
	"math"
)

// FormatCurrency renders a dollar amount with the largest applicable
// magnitude suffix: $999.00, $1.50K, $2.50M, $3.10B, $1.00T. Values
// that are not finite render as "N/A".
func FormatCurrency(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "N/A"
	}
	switch {
	case value >= 1e12:
		return fmt.Sprintf("$%.2fT", value/1e12)
	case value >= 1e9:
		return fmt.Sprintf("$%.2fB", value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("$%.2fM", value/1e6)
	case value >= 1e3:
		return fmt.Sprintf("$%.2fK", value/1e3)
	default:
		return fmt.Sprintf("$%.2f", value)
	}
}

// FormatMarketCap renders a market capitalization, treating zero and
// non-finite values as unknown.
func FormatMarketCap(value float64) string {
	if value == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return "N/A"
	}
	return FormatCurrency(value)
}

// FormatVolumeDollars renders the dollar volume of a trading day, the
// share volume times the close price.
func FormatVolumeDollars(volume, closePrice float64) string {
	product := volume * closePrice
	if math.IsNaN(product) || math.IsInf(product, 0) {
		return "N/A"
	}
	return FormatCurrency(product)
}
