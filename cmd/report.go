package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tpsops/tpsreport/core"
	"github.com/tpsops/tpsreport/internal/contract"
)

// reportCmd renders and delivers the narrative traffic report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the TPS traffic report and deliver it",
	Long: `Fetch dashboard widgets, normalize TPS and capacity metrics, and render
the narrative traffic report.

The report covers:
- TSYS and HPNS transaction rates with week-over-week trends
- Peak TPS values and when they occurred
- Capacity utilization against warning/critical thresholds
- An overall traffic and capacity status line

Delivery modes:
  console - print the report to stdout (default)
  slack   - post to a Slack incoming webhook
  email   - send via Microsoft Graph (Office 365)
  both    - slack and email

Examples:
  # Print the report to the console
  tpsreport report --dashboard-guid MTIzNDU2

  # Post to Slack during a weekend event
  tpsreport report --delivery slack --event-name "Black Friday"

  # Render from the cached snapshot without hitting the API
  tpsreport report --offline

  # Validate channel wiring without sending anything
  tpsreport report --delivery both --dry-run`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, snapshotManager); err != nil {
			contract.LogFatal("Cannot generate report", err)
		}
	},
}
