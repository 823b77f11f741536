// Package utils provides utility functions for the application.
package utils

import (
	"strconv"
	"strings"
)

// currency tokens stripped before numeric conversion
var currencyTokens = []string{"₺", "€", "TL"}

// ParsePrice converts a currency-formatted spreadsheet cell into a float.
// It tolerates Turkish/European formatting ("1.234,56", "29,33 TL", "₺100")
// and never fails: any input that cannot be converted yields 0.
func ParsePrice(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	for _, token := range currencyTokens {
		s = strings.ReplaceAll(s, token, "")
	}
	s = strings.ReplaceAll(s, " ", "")

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		// European convention: "." groups thousands, "," marks decimals
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return value
}
