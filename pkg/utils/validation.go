package utils

import (
	"strconv"
	"strings"
)

// IsNumericValue checks if a string represents a valid numeric value.
// This uses strconv.ParseFloat to properly validate numeric formats,
// including integers, floats, and scientific notation.
//
// Examples:
//   - "123" -> true
//   - "-123.45" -> true
//   - "1.23e-4" -> true
//   - "abc" -> false
//   - "" -> false
func IsNumericValue(value string) bool {
	if value == "" {
		return false
	}

	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// UnquoteLiteral strips surrounding single quotes from a SQL string literal
// and collapses doubled quotes. Values that are not quoted are returned
// trimmed but otherwise unchanged.
//
// Examples:
//   - "'active'" -> "active"
//   - "'it''s'" -> "it's"
//   - "50" -> "50"
func UnquoteLiteral(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
		return strings.ReplaceAll(value[1:len(value)-1], "''", "'")
	}
	return value
}
