package sheet

import (
	"strconv"
	"strings"
)

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
// Integers written with leading zeros keep their text so codes like "007"
// survive the round trip.
func parseValue(s string) interface{} {
	if hasLeadingZero(s) {
		return s
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

func hasLeadingZero(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	return len(digits) > 1 && digits[0] == '0' && digits[1] != '.'
}

// formatValue renders a cell for text output. Empty cells become "".
func formatValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		if value {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}
