// Package schema has configs, models and global variables for all parts of tpsreport.
package schema

// Widget is a single dashboard widget as returned by the data source.
// Only the title has a stable shape; everything else varies by visualization
// type and is kept loosely typed. Fields may be absent, renamed, or nested at
// unexpected depths, so all consumers must treat this as untrusted data.
type Widget struct {
	ID               string         `json:"id,omitempty"`
	Title            string         `json:"title,omitempty"`
	Layout           map[string]any `json:"layout,omitempty"`
	RawConfiguration map[string]any `json:"rawConfiguration,omitempty"`
	Data             WidgetData     `json:"data,omitempty"`
}

// WidgetData carries the widget's embedded data payloads. Both subtrees are
// free-form JSON: mappings, sequences, scalars, or absent.
type WidgetData struct {
	Raw           any `json:"raw,omitempty"`
	Visualization any `json:"visualization,omitempty"`
}

// Metric is the normalized representation of a dashboard widget.
// CurrentValue is always present when a Metric exists; widgets without an
// extractable numeric value produce no Metric at all.
type Metric struct {
	Title         string   `json:"title"`                // Human-readable widget label
	CurrentValue  float64  `json:"current_value"`        // Required numeric value
	ComparisonPct float64  `json:"comparison_pct"`       // Signed week-over-week percentage points
	Trend         Trend    `json:"trend"`                // up, down, or neutral
	DisplayValue  string   `json:"display_value"`        // Human-readable rendering of the value
	PeakValue     *float64 `json:"peak_value,omitempty"` // Max value among embedded time-series points
	PeakTime      string   `json:"peak_time,omitempty"`  // Formatted local timestamp of the peak
}
