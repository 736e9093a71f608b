package contract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/tpsops/tpsreport/schema"
)

// Status label constants.
const (
	GoodValue     = "Good"     // Healthy traffic or capacity
	WarningValue  = "Warning"  // Elevated but manageable
	CriticalValue = "Critical" // Needs attention now
)

// Color variables for console output.
var (
	GoodColor     = color.New(color.FgGreen)           // goodColor represents a healthy signal.
	WarningColor  = color.New(color.FgYellow)          // warningColor represents standard caution, not bold.
	CriticalColor = color.New(color.FgRed, color.Bold) // criticalColor represents standard danger.
)

// GetPlainLabel returns a plain text label for a status level. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(level schema.StatusLevel) string {
	switch level {
	case schema.GoodStatus:
		return GoodValue
	case schema.WarningStatus:
		return WarningValue
	default:
		return CriticalValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(level schema.StatusLevel) string {
	text := GetPlainLabel(level)

	switch text {
	case GoodValue:
		return GoodColor.Sprint(text)
	case WarningValue:
		return WarningColor.Sprint(text)
	default: // "Critical"
		return CriticalColor.Sprint(text)
	}
}

// TrendGlyph returns an arrow for a trend direction, used in table output.
func TrendGlyph(trend schema.Trend) string {
	switch trend {
	case schema.UpTrend:
		return "▲"
	case schema.DownTrend:
		return "▼"
	default:
		return "–"
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetSnapshotDBFilePath returns the path to the SQLite DB file for widget snapshots.
func GetSnapshotDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tpsreport_snapshot.db"
	}
	return filepath.Join(homeDir, ".tpsreport_snapshot.db")
}

// GetRunLogDBFilePath returns the path to the SQLite DB file for the run log.
func GetRunLogDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tpsreport_runlog.db"
	}
	return filepath.Join(homeDir, ".tpsreport_runlog.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ExtractSecretField pulls one field out of a JSON secret payload. When the
// payload is not JSON, the raw string is returned as-is. Candidate keys are
// checked in order and the first present non-empty value wins.
func ExtractSecretField(payload string, keys ...string) (string, error) {
	trimmed := strings.TrimSpace(payload)
	if !strings.HasPrefix(trimmed, "{") {
		return payload, nil
	}
	var fields map[string]string
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return "", fmt.Errorf("secret payload is not valid JSON: %w", err)
	}
	for _, key := range keys {
		if v, ok := fields[key]; ok && v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("secret payload has none of the expected keys: %s", strings.Join(keys, ", "))
}
