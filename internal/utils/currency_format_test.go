package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		symbol    string
		precision int
		want      string
	}{
		{"zero decimals grouped", "100000", "FG", 0, "FG 100 000"},
		{"two decimals", "1234.5", "$", 2, "$ 1 234,50"},
		{"three decimals rounds", "12.34567", "KD", 3, "KD 12,346"},
		{"small amount", "7", "€", 2, "€ 7,00"},
		{"negative", "-2500", "FG", 0, "FG -2 500"},
		{"million", "1000000", "FG", 0, "FG 1 000 000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(decimal.RequireFromString(tt.amount), tt.symbol, tt.precision)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "12.35", FormatWithPrecision(decimal.RequireFromString("12.3456"), 2))
	assert.Equal(t, "12", FormatWithPrecision(decimal.RequireFromString("12.3456"), 0))
}
