package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with the given precision
// Example: 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatAmount renders an amount for display: symbol, space-grouped thousands and a
// comma decimal separator, fixed to the currency precision.
// Example: 100000 with "FG" and precision 0 returns "FG 100 000"
// Example: 1234.5 with "$" and precision 2 returns "$ 1 234,50"
func FormatAmount(amount decimal.Decimal, symbol string, precision int) string {
	fixed := amount.Abs().StringFixed(int32(precision))
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(symbol)
	b.WriteByte(' ')
	if amount.Round(int32(precision)).IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}
