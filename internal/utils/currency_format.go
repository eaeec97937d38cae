package utils

import (
	"github.com/shopspring/decimal"
)

// FormatAmount renders a price for display. Plan prices are stored in whole
// currency units, so the default precision is zero.
func FormatAmount(amount decimal.Decimal, currency string) string {
	return currency + " " + amount.Round(0).String()
}
