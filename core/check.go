package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/schema"
)

// ExecuteCheck runs the check command for CI/CD gating.
// It normalizes the dashboard widgets, analyzes them against the configured
// thresholds, and returns a non-zero exit code on any critical status.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) error {
	start := time.Now()

	result, err := GetCheckResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	printCheckResult(result, time.Since(start))

	if !result.Passed {
		fmt.Printf("%d violation(s) found\n", len(result.Violations))
		os.Exit(1)
	}
	return nil
}

// GetCheckResults computes the gate outcome without printing or exiting.
// This is the data entry point shared by the CLI and the MCP server.
func GetCheckResults(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) (*schema.CheckResult, error) {
	metrics, err := GetMetricResults(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}

	analysis := Translate(metrics, cfg.Thresholds)
	return buildCheckResult(cfg, metrics, analysis), nil
}

// buildCheckResult derives the gate outcome from the analysis. Only critical
// statuses fail the gate; warnings pass with a visible note.
func buildCheckResult(cfg *contract.Config, metrics map[schema.MetricSlot]schema.Metric, analysis schema.AnalysisResult) *schema.CheckResult {
	result := &schema.CheckResult{
		DashboardGUID:  cfg.DashboardGUID,
		Thresholds:     cfg.Thresholds,
		TrafficStatus:  analysis.TrafficStatus,
		CapacityStatus: analysis.CapacityStatus,
		Metrics:        metrics,
	}

	if analysis.TrafficStatus == schema.CriticalStatus {
		result.Violations = append(result.Violations, schema.CheckViolation{
			Subject: "traffic",
			Status:  schema.CriticalStatus,
			Detail: fmt.Sprintf("TSYS %.1f TPS, HPNS %.1f TPS below critical floor",
				slotValue(metrics, schema.TSYSTPSSlot), slotValue(metrics, schema.HPNSTPSSlot)),
		})
	}

	if analysis.CapacityStatus == schema.CriticalStatus {
		maxCap := max(slotValue(metrics, schema.TSYSCapacitySlot), slotValue(metrics, schema.HPNSCapacitySlot))
		result.Violations = append(result.Violations, schema.CheckViolation{
			Subject: "capacity",
			Status:  schema.CriticalStatus,
			Detail:  fmt.Sprintf("max utilization %.1f%% >= %.1f%%", maxCap, cfg.Thresholds.CapacityCritical),
		})
	}

	result.Passed = len(result.Violations) == 0
	return result
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(result *schema.CheckResult, duration time.Duration) {
	printCheckHeader(result, duration)

	if result.Passed {
		printCheckSuccess(result)
	} else {
		printCheckFailure(result)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(result *schema.CheckResult, duration time.Duration) {
	fmt.Println("Traffic Policy Check:")

	// Define labels and values for dynamic padding
	labels := []string{"Dashboard:", "Thresholds:"}
	values := []any{
		result.DashboardGUID,
		fmt.Sprintf("warning=%.1f, critical=%.1f",
			result.Thresholds.CapacityWarning,
			result.Thresholds.CapacityCritical),
	}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}

	// Print each label-value pair with consistent padding
	for i, label := range labels {
		fmt.Printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	fmt.Println()

	fmt.Printf("Checked %d metric slots in %v\n\n", len(result.Metrics), duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(result *schema.CheckResult) {
	fmt.Printf("✅ Traffic and capacity within policy\n\n")
	fmt.Println("Statuses observed:")
	fmt.Printf("  traffic: %s (TSYS %.1f TPS, HPNS %.1f TPS)\n",
		contract.GetPlainLabel(result.TrafficStatus),
		slotValue(result.Metrics, schema.TSYSTPSSlot),
		slotValue(result.Metrics, schema.HPNSTPSSlot))
	fmt.Printf("  capacity: %s (TSYS %.1f%%, HPNS %.1f%%)\n",
		contract.GetPlainLabel(result.CapacityStatus),
		slotValue(result.Metrics, schema.TSYSCapacitySlot),
		slotValue(result.Metrics, schema.HPNSCapacitySlot))
}

// printCheckFailure prints the failure case output.
func printCheckFailure(result *schema.CheckResult) {
	fmt.Printf("❌ Policy check failed: %d violation(s)\n\n", len(result.Violations))
	for _, v := range result.Violations {
		fmt.Printf("  - %s: %s (%s)\n", v.Subject, contract.GetPlainLabel(v.Status), v.Detail)
	}
	fmt.Println()
}
