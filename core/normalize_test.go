package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpsops/tpsreport/schema"
)

func billboardWidget(title string, current, comparison float64) schema.Widget {
	return schema.Widget{
		Title: title,
		Data: schema.WidgetData{
			Visualization: map[string]any{
				"currentValue": current,
				"comparison":   comparison,
			},
		},
	}
}

func TestNormalizeClassifiesWidgets(t *testing.T) {
	loc := easternZone(t)
	widgets := []schema.Widget{
		billboardWidget("TSYS Total TPS", 2500, 4.2),
		billboardWidget("HPNS TPS", 900, -1.5),
		billboardWidget("TSYS Capacity", 62, 0),
		billboardWidget("HPNS Capacity", 48, 0),
		billboardWidget("HPNS Ratio", 32.5, 2.1),
		billboardWidget("Error Rate", 0.1, 0), // not a report slot
	}

	metrics := Normalize(widgets, loc)

	require.Len(t, metrics, 5)
	assert.InDelta(t, 2500.0, metrics[schema.TSYSTPSSlot].CurrentValue, 0.0001)
	assert.InDelta(t, -1.5, metrics[schema.HPNSTPSSlot].ComparisonPct, 0.0001)
	assert.InDelta(t, 32.5, metrics[schema.TPSRatioSlot].CurrentValue, 0.0001)
}

func TestNormalizeFirstWidgetWinsPerSlot(t *testing.T) {
	loc := easternZone(t)
	widgets := []schema.Widget{
		billboardWidget("TSYS Total TPS", 2500, 0),
		billboardWidget("Total Transactions", 9999, 0),
	}

	metrics := Normalize(widgets, loc)

	require.Len(t, metrics, 1)
	assert.InDelta(t, 2500.0, metrics[schema.TSYSTPSSlot].CurrentValue, 0.0001)
}

func TestNormalizeDropsWidgetsWithoutValue(t *testing.T) {
	loc := easternZone(t)
	widgets := []schema.Widget{
		{Title: "TSYS Total TPS"}, // no payload, no number in title
		{Title: ""},               // no title at all
	}

	assert.Empty(t, Normalize(widgets, loc))
}

func TestParseWidgetTitleFallbackToLayout(t *testing.T) {
	loc := easternZone(t)
	w := schema.Widget{
		Layout: map[string]any{"title": "HPNS TPS"},
		Data: schema.WidgetData{
			Raw: map[string]any{"current": 820.0},
		},
	}

	metric, ok := parseWidget(w, loc)
	require.True(t, ok)
	assert.Equal(t, "HPNS TPS", metric.Title)
	assert.InDelta(t, 820.0, metric.CurrentValue, 0.0001)
}

func TestExtractCurrentValueCandidateOrder(t *testing.T) {
	loc := easternZone(t)
	tests := []struct {
		name     string
		widget   schema.Widget
		expected float64
	}{
		{
			name: "visualization current value wins",
			widget: schema.Widget{
				Title: "TSYS Total TPS",
				RawConfiguration: map[string]any{
					"nrqlQueries": []any{map[string]any{"value": 2.0}},
				},
				Data: schema.WidgetData{
					Visualization: map[string]any{"currentValue": 1.0},
					Raw:           map[string]any{"current": 3.0, "value": 4.0},
				},
			},
			expected: 1.0,
		},
		{
			name: "nrql query value second",
			widget: schema.Widget{
				Title: "TSYS Total TPS",
				RawConfiguration: map[string]any{
					"nrqlQueries": []any{map[string]any{"value": 2.0}},
				},
				Data: schema.WidgetData{
					Raw: map[string]any{"current": 3.0, "value": 4.0},
				},
			},
			expected: 2.0,
		},
		{
			name: "raw current third",
			widget: schema.Widget{
				Title: "TSYS Total TPS",
				Data: schema.WidgetData{
					Raw: map[string]any{"current": 3.0, "value": 4.0},
				},
			},
			expected: 3.0,
		},
		{
			name: "raw value fourth",
			widget: schema.Widget{
				Title: "TSYS Total TPS",
				Data: schema.WidgetData{
					Raw: map[string]any{"value": 4.0},
				},
			},
			expected: 4.0,
		},
		{
			name:     "title text last",
			widget:   schema.Widget{Title: "TSYS Total TPS 1.5k"},
			expected: 1500.0,
		},
		{
			name: "formatted string value",
			widget: schema.Widget{
				Title: "TSYS Total TPS",
				Data: schema.WidgetData{
					Visualization: map[string]any{"currentValue": "2.1k"},
				},
			},
			expected: 2100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metric, ok := parseWidget(tt.widget, loc)
			require.True(t, ok)
			assert.InDelta(t, tt.expected, metric.CurrentValue, 0.0001)
		})
	}
}

func TestExtractComparisonFallbacks(t *testing.T) {
	loc := easternZone(t)

	w := billboardWidget("TSYS Total TPS", 2000, 5.5)
	metric, ok := parseWidget(w, loc)
	require.True(t, ok)
	assert.InDelta(t, 5.5, metric.ComparisonPct, 0.0001)

	// thresholds[0].value as last resort
	w = schema.Widget{
		Title: "TSYS Total TPS",
		RawConfiguration: map[string]any{
			"thresholds": []any{map[string]any{"value": -2.5}},
		},
		Data: schema.WidgetData{
			Raw: map[string]any{"current": 2000.0},
		},
	}
	metric, ok = parseWidget(w, loc)
	require.True(t, ok)
	assert.InDelta(t, -2.5, metric.ComparisonPct, 0.0001)

	// nothing anywhere defaults to stable
	w = billboardWidget("TSYS Total TPS", 2000, 0)
	delete(w.Data.Visualization.(map[string]any), "comparison")
	metric, ok = parseWidget(w, loc)
	require.True(t, ok)
	assert.Zero(t, metric.ComparisonPct)
}

func TestExtractTrend(t *testing.T) {
	loc := easternZone(t)
	tests := []struct {
		name     string
		widget   schema.Widget
		expected schema.Trend
	}{
		{
			name: "explicit visualization trend",
			widget: schema.Widget{
				Title: "TSYS Total TPS",
				Data: schema.WidgetData{
					Visualization: map[string]any{"currentValue": 1.0, "trend": "UP"},
				},
			},
			expected: schema.UpTrend,
		},
		{
			name: "explicit raw trend",
			widget: schema.Widget{
				Title: "TSYS Total TPS",
				Data: schema.WidgetData{
					Raw: map[string]any{"current": 1.0, "trend": "down"},
				},
			},
			expected: schema.DownTrend,
		},
		{
			name:     "up arrow in title",
			widget:   schema.Widget{Title: "TSYS Total TPS 1200 ↗"},
			expected: schema.UpTrend,
		},
		{
			name: "down arrow in subtitle",
			widget: schema.Widget{
				Title:            "TSYS Total TPS",
				RawConfiguration: map[string]any{"subtitle": "▼ 3.1% vs last week"},
				Data: schema.WidgetData{
					Raw: map[string]any{"current": 1.0},
				},
			},
			expected: schema.DownTrend,
		},
		{
			name: "bogus explicit trend falls through to neutral",
			widget: schema.Widget{
				Title: "TSYS Total TPS",
				Data: schema.WidgetData{
					Visualization: map[string]any{"currentValue": 1.0, "trend": "sideways"},
				},
			},
			expected: schema.NeutralTrend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metric, ok := parseWidget(tt.widget, loc)
			require.True(t, ok)
			assert.Equal(t, tt.expected, metric.Trend)
		})
	}
}

func TestExtractDisplayValue(t *testing.T) {
	loc := easternZone(t)

	w := schema.Widget{
		Title:            "TSYS Total TPS",
		RawConfiguration: map[string]any{"title": "~2.1k TPS"},
		Data: schema.WidgetData{
			Raw: map[string]any{"current": 2100.0},
		},
	}
	metric, ok := parseWidget(w, loc)
	require.True(t, ok)
	assert.Equal(t, "~2.1k TPS", metric.DisplayValue)

	w.RawConfiguration = nil
	metric, ok = parseWidget(w, loc)
	require.True(t, ok)
	assert.Equal(t, "2100", metric.DisplayValue)
}

func TestParseWidgetCarriesPeak(t *testing.T) {
	loc := easternZone(t)
	w := schema.Widget{
		Title: "HPNS TPS",
		Data: schema.WidgetData{
			Raw: map[string]any{
				"current": 900.0,
				"series": []any{
					map[string]any{"tps": 880.0, "endTimeSeconds": 1700000000.0},
					map[string]any{"tps": 1120.0, "endTimeSeconds": 1700003600.0},
				},
			},
		},
	}

	metric, ok := parseWidget(w, loc)
	require.True(t, ok)
	require.NotNil(t, metric.PeakValue)
	assert.InDelta(t, 1120.0, *metric.PeakValue, 0.0001)
	assert.Contains(t, metric.PeakTime, "ET on")
}
