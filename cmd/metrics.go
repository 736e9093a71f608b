package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tpsops/tpsreport/core"
	"github.com/tpsops/tpsreport/internal/contract"
)

// metricsCmd displays the normalized metric slots without rendering a report.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display normalized metric slots from the dashboard",
	Long: `Fetch dashboard widgets and print the normalized metric slots as a table.

Each slot shows:
- Current value and week-over-week change percentage
- Trend direction (up, down, flat)
- Peak value and the time it occurred

No report is rendered and nothing is delivered - this is purely informational.

Use this to:
- Verify the dashboard widgets map to the expected slots
- Debug classification when widget titles change
- Export raw metric values as CSV or JSON

Examples:
  # Show metrics as a table
  tpsreport metrics --dashboard-guid MTIzNDU2

  # Export as JSON for scripting
  tpsreport metrics --output json --output-file metrics.json

  # Inspect the cached snapshot
  tpsreport metrics --offline`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, snapshotManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
