package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpsops/tpsreport/schema"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		level    schema.StatusLevel
		expected string
	}{
		{"good", schema.GoodStatus, GoodValue},
		{"warning", schema.WarningStatus, WarningValue},
		{"critical", schema.CriticalStatus, CriticalValue},
		{"unknown falls back to critical", schema.StatusLevel("bogus"), CriticalValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.level))
		})
	}
}

func TestGetColorLabelContainsPlainText(t *testing.T) {
	for _, level := range []schema.StatusLevel{schema.GoodStatus, schema.WarningStatus, schema.CriticalStatus} {
		assert.Contains(t, GetColorLabel(level), GetPlainLabel(level))
	}
}

func TestTrendGlyph(t *testing.T) {
	assert.Equal(t, "▲", TrendGlyph(schema.UpTrend))
	assert.Equal(t, "▼", TrendGlyph(schema.DownTrend))
	assert.Equal(t, "–", TrendGlyph(schema.NeutralTrend))
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractSecretField(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		keys        []string
		expected    string
		expectError bool
	}{
		{
			name:     "plain string passthrough",
			payload:  "hooks.slack.com/services/T00/B00/XXX",
			keys:     []string{"webhook_url"},
			expected: "hooks.slack.com/services/T00/B00/XXX",
		},
		{
			name:     "first key wins",
			payload:  `{"api_key":"abc","apiKey":"def"}`,
			keys:     []string{"api_key", "apiKey"},
			expected: "abc",
		},
		{
			name:     "fallback key",
			payload:  `{"apiKey":"def"}`,
			keys:     []string{"api_key", "apiKey"},
			expected: "def",
		},
		{
			name:        "no matching key",
			payload:     `{"other":"x"}`,
			keys:        []string{"api_key"},
			expectError: true,
		},
		{
			name:        "malformed json",
			payload:     `{"api_key":`,
			keys:        []string{"api_key"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractSecretField(tt.payload, tt.keys...)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetSnapshotDBFilePath(t *testing.T) {
	path := GetSnapshotDBFilePath()
	assert.Contains(t, path, ".tpsreport_snapshot.db")
	assert.NotEqual(t, path, GetRunLogDBFilePath())
}
