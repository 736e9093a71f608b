package core

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/tpsops/tpsreport/internal/contract"
)

// maxWalkDepth bounds the recursive walk over widget payloads so malformed
// or self-referential structures cannot blow the stack.
const maxWalkDepth = 32

// epochMillisCutoff distinguishes second from millisecond epoch timestamps.
const epochMillisCutoff = 1e12

// Candidate keys for time series points, checked in order.
var (
	peakValueKeys = []string{"tps", "y", "value", "rate", "count"}
	peakTimeKeys  = []string{"endTimeSeconds", "beginTimeSeconds", "x", "timestamp", "endTime", "time"}
)

// peakPoint is one candidate data point found in a widget payload.
type peakPoint struct {
	value   float64
	at      time.Time
	hasTime bool
}

// findPeak walks the raw and visualization payloads of a widget looking for
// time series points and returns the highest value with its formatted time.
// Returns nil when the payloads contain no recognizable points.
func findPeak(loc *time.Location, payloads ...any) (*float64, string) {
	var best *peakPoint
	for _, payload := range payloads {
		walkForPeak(payload, 0, &best)
	}
	if best == nil {
		return nil, ""
	}
	value := best.value
	return &value, formatPeakTime(best.at, loc)
}

func walkForPeak(node any, depth int, best **peakPoint) {
	if depth > maxWalkDepth {
		return
	}
	switch n := node.(type) {
	case map[string]any:
		if pt, ok := pointFromMap(n); ok {
			if *best == nil || pt.value > (*best).value {
				*best = &pt
			}
		}
		for _, child := range n {
			walkForPeak(child, depth+1, best)
		}
	case []any:
		for _, child := range n {
			walkForPeak(child, depth+1, best)
		}
	}
}

// pointFromMap interprets a map as a time series point. A point needs a
// numeric value under one of the known value keys and a parseable
// timestamp under one of the known time keys; a map with only one of the
// two is not a point.
func pointFromMap(m map[string]any) (peakPoint, bool) {
	var pt peakPoint

	found := false
	for _, key := range peakValueKeys {
		if raw, ok := m[key]; ok {
			if v, ok := numericFromAny(raw); ok {
				pt.value = v
				found = true
				break
			}
		}
	}
	if !found {
		return peakPoint{}, false
	}

	for _, key := range peakTimeKeys {
		raw, ok := m[key]
		if !ok {
			continue
		}
		if t, ok := parseTimestamp(raw); ok {
			pt.at = t
			pt.hasTime = true
			break
		}
	}
	if !pt.hasTime {
		return peakPoint{}, false
	}

	return pt, true
}

// parseTimestamp accepts epoch numbers (seconds or milliseconds) and
// ISO-8601 strings. Numeric strings are read as epoch values; datetime
// strings without a zone offset are read as UTC.
func parseTimestamp(v any) (time.Time, bool) {
	switch ts := v.(type) {
	case float64:
		return timeFromEpoch(ts), true
	case int:
		return timeFromEpoch(float64(ts)), true
	case int64:
		return timeFromEpoch(float64(ts)), true
	case json.Number:
		f, err := ts.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return timeFromEpoch(f), true
	case string:
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return t, true
		}
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", ts, time.UTC); err == nil {
			return t, true
		}
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", ts, time.UTC); err == nil {
			return t, true
		}
		if f, err := strconv.ParseFloat(ts, 64); err == nil {
			return timeFromEpoch(f), true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func timeFromEpoch(epoch float64) time.Time {
	if epoch > epochMillisCutoff {
		epoch /= 1000
	}
	return time.Unix(int64(epoch), 0).UTC()
}

// formatPeakTime renders a peak timestamp for the report body. The default
// Eastern zone keeps the "ET" shorthand readers expect; other zones use the
// standard abbreviation.
func formatPeakTime(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	if loc.String() == contract.DefaultTimezone {
		return local.Format("3:04 PM") + " ET on " + local.Format("Jan 02, 2006")
	}
	return local.Format("3:04 PM MST on Jan 02, 2006")
}
