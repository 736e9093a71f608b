package core

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// numericPattern matches the first signed decimal number in a text blob.
var numericPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ParseNumericText extracts a numeric value from display text such as
// "1.5k", "42%", "~2,100 TPS" or "-3.2". Percent signs are dropped, and
// 'k' / 'm' suffixes scale the value by a thousand or a million.
// Returns false when no number can be found.
func ParseNumericText(text string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, false
	}

	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))

	multiplier := 1.0
	if strings.HasSuffix(s, "k") {
		multiplier = 1_000
		s = strings.TrimSuffix(s, "k")
	} else if strings.HasSuffix(s, "m") {
		multiplier = 1_000_000
		s = strings.TrimSuffix(s, "m")
	}

	match := numericPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return value * multiplier, true
}

// numericFromAny coerces a decoded JSON value into a float64. Strings go
// through ParseNumericText so formatted values like "1.5k" still resolve.
func numericFromAny(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		return ParseNumericText(n)
	default:
		return 0, false
	}
}

// stringFromAny returns a non-empty string value, or false for anything else.
func stringFromAny(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
