package decode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var currencySuffixRe = regexp.MustCompile(`\s*(KN|KUNA|HRK|EUR|USD|DKK|SEK|NOK|KR|,-|\.-)\s*$`)

// ParseAmount parses a numeric string as sent by upstream feeds.
// Handles various formats: "12.99", "12,99", "1.299,00", "1 299,00 kr", "€12.99"
func ParseAmount(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount value")
	}

	// Remove currency symbols and space-like thousands separators
	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case '€', '$', '£', '¥', '¢', ' ', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, cleaned)

	cleaned = strings.ToUpper(cleaned)
	cleaned = currencySuffixRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("no numeric value found")
	}

	// The separator that appears last is the decimal separator:
	// "1.234,56" is European, "1,234.56" is US.
	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")

	if lastComma > lastDot {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else if lastDot > lastComma {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	result, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount format: %w", err)
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, fmt.Errorf("invalid amount %q", value)
	}

	return result, nil
}
