package util

import "fmt"

// CurrencySymbol prefixes every displayed amount.
const CurrencySymbol = "₹"

// FormatCurrency renders an amount with the fixed symbol and two decimals.
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol, amount)
}
