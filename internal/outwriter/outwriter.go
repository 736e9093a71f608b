// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteMetrics prints normalized metrics using the configured output format.
func (ow *OutWriter) WriteMetrics(metrics map[schema.MetricSlot]schema.Metric, cfg *contract.Config, duration time.Duration) error {
	return WriteMetricResults(metrics, cfg, duration)
}

// WriteReport prints a full report cycle using the configured output format.
func (ow *OutWriter) WriteReport(output *schema.ReportOutput, cfg *contract.Config) error {
	return WriteReportOutput(output, cfg)
}

// getMaxTableTitleWidth calculates the maximum width for widget titles in
// table output based on terminal width.
func getMaxTableTitleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns with borders and padding
	baseWidth := 55 // Slot + Current + Change + Trend + Peak

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable title width
		return 12
	}
	if available > 50 {
		// Maximum title width to prevent overly wide tables
		return 50
	}
	return available
}

// truncateTitle shortens a widget title to fit in the table.
func truncateTitle(title string, maxWidth int) string {
	if len(title) <= maxWidth {
		return title
	}
	if maxWidth <= 3 {
		return title[:maxWidth]
	}
	return title[:maxWidth-3] + "..."
}
