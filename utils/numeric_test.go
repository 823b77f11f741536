package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"PlainInteger", "100", 100},
		{"PlainDecimal", "29.33", 29.33},
		{"CommaDecimal", "29,33", 29.33},
		{"ThousandsWithCommaDecimal", "1.234,56", 1234.56},
		{"CurrencySymbolPrefix", "₺100", 100},
		{"TLSuffix", "29,33 TL", 29.33},
		{"EuroSymbol", "45,50 €", 45.5},
		{"InnerSpaces", " 1.250,00 TL ", 1250},
		{"Empty", "", 0},
		{"Whitespace", "   ", 0},
		{"NonNumeric", "YOK", 0},
		{"Garbage", "12ab", 0},
		{"Negative", "-15,5", -15.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParsePrice(tt.input), 1e-9)
		})
	}
}
