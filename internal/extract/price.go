package extract

import (
	"strconv"
	"strings"
)

// ParsePrice converts a price string from receipt text to a float. Currency
// symbols and spacing are stripped first. When both comma and dot appear the
// string is read as European-style: the comma is the decimal separator and
// dots are thousands separators. A lone comma is treated as the decimal
// separator. Unparseable input yields 0.
func ParsePrice(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	switch {
	case strings.Contains(cleaned, ",") && strings.Contains(cleaned, "."):
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case strings.Contains(cleaned, ","):
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}
