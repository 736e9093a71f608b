package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumericText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"plain integer", "1200", 1200, true},
		{"plain decimal", "72.5", 72.5, true},
		{"negative decimal", "-3.2", -3.2, true},
		{"thousands suffix", "1.5k", 1500, true},
		{"millions suffix", "2m", 2_000_000, true},
		{"uppercase suffix", "1.5K", 1500, true},
		{"percent sign", "42%", 42, true},
		{"percent with suffix", "1.2k%", 1200, true},
		{"embedded in text", "Current: 2,100 TPS", 2, true},
		{"title with number", "TSYS TPS 1850", 1850, true},
		{"whitespace padding", "  850  ", 850, true},
		{"no number", "no data", 0, false},
		{"empty string", "", 0, false},
		{"only symbols", "↗ %", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumericText(tt.input)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.InDelta(t, tt.expected, got, 0.0001)
			}
		})
	}
}

func TestNumericFromAny(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
		ok       bool
	}{
		{"float64", 1850.5, 1850.5, true},
		{"int", 42, 42, true},
		{"json number", json.Number("12.5"), 12.5, true},
		{"formatted string", "1.5k", 1500, true},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"map", map[string]any{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := numericFromAny(tt.input)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.InDelta(t, tt.expected, got, 0.0001)
			}
		})
	}
}

// FuzzParseNumericText fuzzes the display text parser with arbitrary input.
func FuzzParseNumericText(f *testing.F) {
	seeds := []string{
		"1.5k", "42%", "-3.2", "2m", "", "no data",
		"Current: 2,100 TPS", "1.2k%", "↗ 5.3%", "kkk", "%%%", "-",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, s string) {
		// Must never panic regardless of input shape
		_, _ = ParseNumericText(s)
	})
}
