package core

import (
	"strings"
	"time"

	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/schema"
)

// Time layouts used in the rendered report.
const (
	reportDateLayout = "January 02, 2006"
	reportTimeLayout = "Jan 02 at 3:04 PM MST"
	timestampLayout  = "3:04 PM MST"
)

// defaultUserName greets the channel when no recipient name is configured.
const defaultUserName = "team"

// BuildReportContext assembles the flat, pre-formatted field mapping that
// feeds the report template. Missing metrics render as the absent marker so
// the template never has to branch.
func BuildReportContext(cfg *contract.Config, metrics map[schema.MetricSlot]schema.Metric, analysis schema.AnalysisResult, now time.Time) schema.ReportContext {
	local := now.In(cfg.Location)

	rc := schema.ReportContext{
		UserName:     cfg.UserName,
		Timestamp:    local.Format(timestampLayout),
		EventName:    cfg.EventName,
		ReportDate:   local.Format(reportDateLayout),
		ReportTime:   local.Format(reportTimeLayout),
		DashboardURL: cfg.DashboardURL,
		Trends:       formatTrendLines(analysis.Trends),
	}
	if rc.UserName == "" {
		rc.UserName = defaultUserName
	}

	rc.TrafficStatus = statusField(cfg, analysis.TrafficStatus)
	rc.CapacityStatus = statusField(cfg, analysis.CapacityStatus)

	rc.TSYSAvgTPS = avgField(metrics, schema.TSYSTPSSlot)
	rc.TSYSPeakTPS, rc.TSYSPeakTime = peakFields(metrics, schema.TSYSTPSSlot)
	rc.TSYSAvgCapacity = avgField(metrics, schema.TSYSCapacitySlot)

	rc.HPNSAvgTPS = avgField(metrics, schema.HPNSTPSSlot)
	rc.HPNSPeakTPS, rc.HPNSPeakTime = peakFields(metrics, schema.HPNSTPSSlot)
	rc.HPNSAvgCapacity = avgField(metrics, schema.HPNSCapacitySlot)

	return rc
}

// statusField renders a status level as an emoji indicator, or the plain
// label when emojis are disabled.
func statusField(cfg *contract.Config, level schema.StatusLevel) string {
	if cfg.UseEmojis {
		return level.Symbol()
	}
	return contract.GetPlainLabel(level)
}

// formatTrendLines renders trend sentences as a bulleted block.
func formatTrendLines(trends []string) string {
	if len(trends) == 0 {
		return ""
	}
	lines := make([]string, 0, len(trends))
	for _, t := range trends {
		lines = append(lines, "• "+t)
	}
	return strings.Join(lines, "\n")
}

func avgField(metrics map[schema.MetricSlot]schema.Metric, slot schema.MetricSlot) string {
	m, ok := metrics[slot]
	if !ok {
		return schema.AbsentField
	}
	return schema.FormatMetricValue(&m.CurrentValue)
}

func peakFields(metrics map[schema.MetricSlot]schema.Metric, slot schema.MetricSlot) (value, at string) {
	m, ok := metrics[slot]
	if !ok {
		return schema.AbsentField, schema.AbsentField
	}
	return m.PeakDisplay()
}
