// Package core has core logic for widget normalization, trend analysis and
// report assembly.
package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/tpsops/tpsreport/schema"
)

// Candidate keys for current and comparison values, checked in order.
// Dashboard payloads vary by widget visualization, so extraction tries each
// known location until one yields a number.

// Normalize converts raw dashboard widgets into the metric slots the report
// is built from. Widgets without a usable title or current value are dropped,
// and the first widget classified into a slot keeps it.
func Normalize(widgets []schema.Widget, loc *time.Location) map[schema.MetricSlot]schema.Metric {
	metrics := make(map[schema.MetricSlot]schema.Metric)
	for _, w := range widgets {
		metric, ok := parseWidget(w, loc)
		if !ok {
			continue
		}
		slot, ok := classifySlot(metric.Title)
		if !ok {
			continue
		}
		if _, taken := metrics[slot]; taken {
			continue
		}
		metrics[slot] = metric
	}
	return metrics
}

// parseWidget extracts one normalized metric from a raw widget. Returns
// false when the widget has no title or no parseable current value.
func parseWidget(w schema.Widget, loc *time.Location) (schema.Metric, bool) {
	title := widgetTitle(w)
	if title == "" {
		return schema.Metric{}, false
	}

	viz, _ := w.Data.Visualization.(map[string]any)
	raw, _ := w.Data.Raw.(map[string]any)

	current, ok := extractCurrentValue(w, viz, raw, title)
	if !ok {
		return schema.Metric{}, false
	}

	metric := schema.Metric{
		Title:         title,
		CurrentValue:  current,
		ComparisonPct: extractComparison(w, viz, raw),
		Trend:         extractTrend(w, viz, raw, title),
		DisplayValue:  extractDisplayValue(w, current),
	}
	metric.PeakValue, metric.PeakTime = findPeak(loc, w.Data.Raw, w.Data.Visualization)
	return metric, true
}

// widgetTitle prefers the widget's own title and falls back to the layout
// block, which some dashboard exports use instead.
func widgetTitle(w schema.Widget) string {
	if t := strings.TrimSpace(w.Title); t != "" {
		return t
	}
	if t, ok := stringFromAny(w.Layout["title"]); ok {
		return strings.TrimSpace(t)
	}
	return ""
}

// extractCurrentValue tries each known payload location for the widget's
// headline number, ending with the title text itself for billboard widgets
// that bake the value into the title.
func extractCurrentValue(w schema.Widget, viz, raw map[string]any, title string) (float64, bool) {
	if v, ok := numericFromAny(viz["currentValue"]); ok {
		return v, true
	}
	if v, ok := numericFromAny(firstNRQLValue(w.RawConfiguration)); ok {
		return v, true
	}
	if v, ok := numericFromAny(raw["current"]); ok {
		return v, true
	}
	if v, ok := numericFromAny(raw["value"]); ok {
		return v, true
	}
	return ParseNumericText(title)
}

// extractComparison finds the week-over-week delta percentage. Widgets
// without one report 0.0 (stable).
func extractComparison(w schema.Widget, viz, raw map[string]any) float64 {
	if v, ok := numericFromAny(viz["comparison"]); ok {
		return v
	}
	if v, ok := numericFromAny(raw["comparison"]); ok {
		return v
	}
	if v, ok := numericFromAny(firstThresholdValue(w.RawConfiguration)); ok {
		return v
	}
	return 0.0
}

// extractTrend resolves the trend direction. Explicit payload fields win,
// then directional arrows in the title or configured subtitle.
func extractTrend(w schema.Widget, viz, raw map[string]any, title string) schema.Trend {
	for _, candidate := range []any{viz["trend"], raw["trend"]} {
		if s, ok := stringFromAny(candidate); ok {
			trend := schema.Trend(strings.ToLower(strings.TrimSpace(s)))
			if _, valid := schema.ValidTrends[trend]; valid {
				return trend
			}
		}
	}
	if trend, ok := trendFromArrows(title); ok {
		return trend
	}
	if subtitle, ok := stringFromAny(w.RawConfiguration["subtitle"]); ok {
		if trend, ok := trendFromArrows(subtitle); ok {
			return trend
		}
	}
	return schema.NeutralTrend
}

// trendFromArrows scans text for directional arrow glyphs.
func trendFromArrows(text string) (schema.Trend, bool) {
	if strings.ContainsAny(text, "↗▲↑") {
		return schema.UpTrend, true
	}
	if strings.ContainsAny(text, "↘▼↓") {
		return schema.DownTrend, true
	}
	return schema.NeutralTrend, false
}

// extractDisplayValue keeps the human-facing label from the widget config
// when one exists, otherwise stringifies the parsed value.
func extractDisplayValue(w schema.Widget, current float64) string {
	if s, ok := stringFromAny(w.RawConfiguration["title"]); ok {
		return s
	}
	return strconv.FormatFloat(current, 'f', -1, 64)
}

// firstNRQLValue digs out rawConfiguration.nrqlQueries[0].value.
func firstNRQLValue(rawConfig map[string]any) any {
	queries, ok := rawConfig["nrqlQueries"].([]any)
	if !ok || len(queries) == 0 {
		return nil
	}
	first, ok := queries[0].(map[string]any)
	if !ok {
		return nil
	}
	return first["value"]
}

// firstThresholdValue digs out rawConfiguration.thresholds[0].value.
func firstThresholdValue(rawConfig map[string]any) any {
	thresholds, ok := rawConfig["thresholds"].([]any)
	if !ok || len(thresholds) == 0 {
		return nil
	}
	first, ok := thresholds[0].(map[string]any)
	if !ok {
		return nil
	}
	return first["value"]
}
