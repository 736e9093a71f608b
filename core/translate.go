package core

import (
	"fmt"
	"math"

	"github.com/tpsops/tpsreport/schema"
)

// Service display names used in trend narratives.
const (
	tsysServiceName = "TSYS Mainframe"
	hpnsServiceName = "HPNS"
)

// Traffic volume cutoffs, in average TPS. Both services above the healthy
// line means green; either above the elevated line means yellow.
const (
	tsysHealthyTPS  = 2000.0
	hpnsHealthyTPS  = 800.0
	tsysElevatedTPS = 1000.0
	hpnsElevatedTPS = 400.0
)

// Translate turns normalized metrics into the narrative trend sentences and
// categorical statuses that drive the report. Sentences whose input slots are
// missing are omitted rather than failing the run.
func Translate(metrics map[schema.MetricSlot]schema.Metric, thresholds schema.Thresholds) schema.AnalysisResult {
	trends := make([]string, 0, 3)

	if sentence := tpsTrendSentence(metrics); sentence != "" {
		trends = append(trends, sentence)
	}
	if sentence := ratioTrendSentence(metrics); sentence != "" {
		trends = append(trends, sentence)
	}
	if sentence := capacityTrendSentence(metrics, thresholds); sentence != "" {
		trends = append(trends, sentence)
	}

	return schema.AnalysisResult{
		Trends:         trends,
		TrafficStatus:  trafficStatus(metrics),
		CapacityStatus: capacityStatus(metrics, thresholds),
	}
}

// tpsTrendSentence describes week-over-week TPS movement per service.
// Emitted only when both TPS slots are present.
func tpsTrendSentence(metrics map[schema.MetricSlot]schema.Metric) string {
	tsys, tsysOK := metrics[schema.TSYSTPSSlot]
	hpns, hpnsOK := metrics[schema.HPNSTPSSlot]
	if !tsysOK || !hpnsOK {
		return ""
	}
	return tpsPhrase(tsys, tsysServiceName) + "; " + tpsPhrase(hpns, hpnsServiceName) + "."
}

// tpsPhrase renders one service's movement. The trend direction picks the
// wording; the comparison magnitude only qualifies it.
func tpsPhrase(m schema.Metric, service string) string {
	comparison := math.Abs(m.ComparisonPct)
	switch m.Trend {
	case schema.UpTrend:
		return fmt.Sprintf("The TPS is %.1f%% higher than last week for %s", comparison, service)
	case schema.DownTrend:
		return fmt.Sprintf("The TPS is %.1f%% lower than last week for %s", comparison, service)
	default:
		return fmt.Sprintf("The TPS is stable for %s", service)
	}
}

// ratioTrendSentence describes the share of traffic served from HPNS.
func ratioTrendSentence(metrics map[schema.MetricSlot]schema.Metric) string {
	m, ok := metrics[schema.TPSRatioSlot]
	if !ok {
		return ""
	}
	direction := "higher"
	if m.ComparisonPct < 0 {
		direction = "lower"
	}
	return fmt.Sprintf(
		"Requests that require data from HPNS have been approx. %.1f%% of total, which is %.1f%% %s than last week.",
		m.CurrentValue, math.Abs(m.ComparisonPct), direction)
}

// capacityTrendSentence describes capacity headroom. Emitted only when both
// capacity slots are present.
func capacityTrendSentence(metrics map[schema.MetricSlot]schema.Metric, thresholds schema.Thresholds) string {
	tsys, tsysOK := metrics[schema.TSYSCapacitySlot]
	hpns, hpnsOK := metrics[schema.HPNSCapacitySlot]
	if !tsysOK || !hpnsOK {
		return ""
	}
	tsysCap := tsys.CurrentValue
	hpnsCap := hpns.CurrentValue
	maxCap := math.Max(tsysCap, hpnsCap)

	switch {
	case maxCap >= thresholds.CapacityCritical:
		service := "HPNS"
		if tsysCap >= hpnsCap {
			service = "TSYS"
		}
		return fmt.Sprintf(
			"⚠️ Capacity utilization is elevated at %.1f%% for %s. Recommend monitoring closely.",
			maxCap, service)
	case maxCap >= thresholds.CapacityWarning:
		return fmt.Sprintf(
			"Capacity utilization is elevated but manageable (TSYS: %.1f%%, HPNS: %.1f%%). Monitoring trends.",
			tsysCap, hpnsCap)
	default:
		return "Growth is closely matching last week's behavior. There are no capacity concerns at this time."
	}
}

// trafficStatus grades traffic volume. Missing metrics count as zero so a
// sparse dashboard fails safe toward red.
func trafficStatus(metrics map[schema.MetricSlot]schema.Metric) schema.StatusLevel {
	tsysTPS := slotValue(metrics, schema.TSYSTPSSlot)
	hpnsTPS := slotValue(metrics, schema.HPNSTPSSlot)

	switch {
	case tsysTPS > tsysHealthyTPS && hpnsTPS > hpnsHealthyTPS:
		return schema.GoodStatus
	case tsysTPS > tsysElevatedTPS || hpnsTPS > hpnsElevatedTPS:
		return schema.WarningStatus
	default:
		return schema.CriticalStatus
	}
}

// capacityStatus grades headroom against the configured thresholds.
func capacityStatus(metrics map[schema.MetricSlot]schema.Metric, thresholds schema.Thresholds) schema.StatusLevel {
	maxCap := math.Max(
		slotValue(metrics, schema.TSYSCapacitySlot),
		slotValue(metrics, schema.HPNSCapacitySlot))

	switch {
	case maxCap >= thresholds.CapacityCritical:
		return schema.CriticalStatus
	case maxCap >= thresholds.CapacityWarning:
		return schema.WarningStatus
	default:
		return schema.GoodStatus
	}
}

func slotValue(metrics map[schema.MetricSlot]schema.Metric, slot schema.MetricSlot) float64 {
	if m, ok := metrics[slot]; ok {
		return m.CurrentValue
	}
	return 0.0
}
