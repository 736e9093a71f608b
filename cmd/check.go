package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tpsops/tpsreport/core"
	"github.com/tpsops/tpsreport/internal/contract"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Enforce traffic and capacity thresholds (fails on violations)",
	Long: `Evaluate current dashboard metrics against traffic and capacity policy.

Designed for scheduled monitoring and CI/CD integration - fails with a non-zero
exit code when traffic drops to critical levels or capacity utilization crosses
the critical threshold.

Default thresholds: warning at 70% capacity, critical at 85%

Use cases:
- Scheduled checks during high-traffic events
- Pre-deployment gates on processing capacity
- Alerting pipelines that key off exit codes

Examples:
  # Check with default thresholds
  tpsreport check --dashboard-guid MTIzNDU2

  # Tighter capacity policy for a release window
  tpsreport check --thresholds-override "warning:60,critical:75"

  # Evaluate the cached snapshot
  tpsreport check --offline`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Violation handling is done in ExecuteCheck
		if err := core.ExecuteCheck(rootCtx, cfg, snapshotManager); err != nil {
			contract.LogFatal("Policy check failed", err)
		}
	},
}
