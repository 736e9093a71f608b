package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpsops/tpsreport/schema"
)

func sampleContext() schema.ReportContext {
	return schema.ReportContext{
		UserName:        "team",
		Timestamp:       "Jun 01 at 2:30 PM EDT",
		EventName:       "Weekend Event",
		ReportDate:      "June 01, 2024",
		ReportTime:      "2:30 PM EDT",
		DashboardURL:    "https://one.newrelic.com/dashboards/abc",
		TrafficStatus:   "🟢",
		CapacityStatus:  "🟡",
		Trends:          "• The TPS is stable for TSYS Mainframe\n• The TPS is stable for HPNS",
		TSYSAvgTPS:      "2.1k",
		TSYSPeakTPS:     "2.4k",
		TSYSPeakTime:    "1:15 PM ET on Jun 01, 2024",
		TSYSAvgCapacity: "64.0",
		HPNSAvgTPS:      "850.0",
		HPNSPeakTPS:     "--",
		HPNSPeakTime:    "--",
		HPNSAvgCapacity: "--",
	}
}

func TestRenderDefaultTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	ctx := sampleContext()
	report, err := r.Render(DefaultTemplateName, ctx.AsMap())
	require.NoError(t, err)

	assert.Contains(t, report, "*TPS Traffic Report: Weekend Event*")
	assert.Contains(t, report, "Hi team, here is the traffic summary as of Jun 01 at 2:30 PM EDT.")
	assert.Contains(t, report, "🟢 Traffic, 🟡 Capacity")
	assert.Contains(t, report, "• The TPS is stable for TSYS Mainframe")
	assert.Contains(t, report, "Avg TPS: 2.1k (peak 2.4k at 1:15 PM ET on Jun 01, 2024)")
	assert.Contains(t, report, "Avg TPS: 850.0 (peak -- at --)")
	assert.Contains(t, report, "Full dashboard: https://one.newrelic.com/dashboards/abc")
}

func TestRenderMissingField(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, err = r.Render(DefaultTemplateName, map[string]string{"user_name": "team"})
	assert.Error(t, err)
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, err = r.Render("nope.tmpl", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.tmpl")
}

func TestRenderCustomTemplateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("Report for {{.event_name}} by {{.user_name}}"), 0o644))

	r, err := NewRendererWithFile(path)
	require.NoError(t, err)

	ctx := sampleContext()
	report, err := r.Render(TemplateNameForFile(path), ctx.AsMap())
	require.NoError(t, err)
	assert.Equal(t, "Report for Weekend Event by team", report)

	// Embedded templates remain available alongside the custom one
	_, err = r.Render(DefaultTemplateName, ctx.AsMap())
	assert.NoError(t, err)
}
