package schema

import (
	"fmt"
	"strconv"
)

// Placeholder rendered for absent metric fields in the report context.
const AbsentField = "--"

// FormatMetricValue renders a metric value for report display, abbreviating
// thousands ("12.3k") the way the dashboard does.
func FormatMetricValue(value *float64) string {
	if value == nil {
		return AbsentField
	}
	v := *value
	if v >= 1000 {
		return fmt.Sprintf("%.1fk", v/1000)
	}
	return fmt.Sprintf("%.1f", v)
}

// FormatFloat renders a float with the given precision, trimming to a plain
// integer representation when the fraction is zero and precision is zero.
func FormatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// PeakDisplay renders a metric's peak fields for tabular output.
func (m *Metric) PeakDisplay() (value, at string) {
	if m.PeakValue == nil {
		return AbsentField, AbsentField
	}
	at = m.PeakTime
	if at == "" {
		at = AbsentField
	}
	return FormatMetricValue(m.PeakValue), at
}
