package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpsops/tpsreport/schema"
)

func checkMetrics(tsysTPS, hpnsTPS, tsysCap, hpnsCap float64) map[schema.MetricSlot]schema.Metric {
	return map[schema.MetricSlot]schema.Metric{
		schema.TSYSTPSSlot:      {Title: "TSYS Total TPS", CurrentValue: tsysTPS},
		schema.HPNSTPSSlot:      {Title: "HPNS TPS", CurrentValue: hpnsTPS},
		schema.TSYSCapacitySlot: {Title: "TSYS Capacity", CurrentValue: tsysCap},
		schema.HPNSCapacitySlot: {Title: "HPNS Capacity", CurrentValue: hpnsCap},
	}
}

func TestBuildCheckResultPasses(t *testing.T) {
	cfg := testConfig(t)
	metrics := checkMetrics(2100, 850, 64, 52)
	analysis := Translate(metrics, cfg.Thresholds)

	result := buildCheckResult(cfg, metrics, analysis)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Violations)
	assert.Equal(t, schema.GoodStatus, result.TrafficStatus)
}

func TestBuildCheckResultWarningStillPasses(t *testing.T) {
	cfg := testConfig(t)
	metrics := checkMetrics(1500, 500, 75, 40)
	analysis := Translate(metrics, cfg.Thresholds)

	result := buildCheckResult(cfg, metrics, analysis)
	assert.Equal(t, schema.WarningStatus, result.TrafficStatus)
	assert.Equal(t, schema.WarningStatus, result.CapacityStatus)
	assert.True(t, result.Passed)
}

func TestBuildCheckResultTrafficViolation(t *testing.T) {
	cfg := testConfig(t)
	metrics := checkMetrics(400, 100, 50, 40)
	analysis := Translate(metrics, cfg.Thresholds)

	result := buildCheckResult(cfg, metrics, analysis)
	assert.False(t, result.Passed)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "traffic", result.Violations[0].Subject)
	assert.Contains(t, result.Violations[0].Detail, "TSYS 400.0 TPS")
}

func TestBuildCheckResultCapacityViolation(t *testing.T) {
	cfg := testConfig(t)
	metrics := checkMetrics(2100, 850, 91, 40)
	analysis := Translate(metrics, cfg.Thresholds)

	result := buildCheckResult(cfg, metrics, analysis)
	assert.False(t, result.Passed)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "capacity", result.Violations[0].Subject)
	assert.Contains(t, result.Violations[0].Detail, "max utilization 91.0% >= 85.0%")
}

func TestBuildCheckResultBothViolations(t *testing.T) {
	cfg := testConfig(t)
	metrics := checkMetrics(400, 100, 91, 88)
	analysis := Translate(metrics, cfg.Thresholds)

	result := buildCheckResult(cfg, metrics, analysis)
	assert.False(t, result.Passed)
	assert.Len(t, result.Violations, 2)
}
