package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/schema"
)

// WriteMetricResults outputs the normalized metrics, dispatching based on the output format configured.
func WriteMetricResults(metrics map[schema.MetricSlot]schema.Metric, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeMetricJSONResults(metrics, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeMetricCSVResults(metrics, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricTable(metrics, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeMetricJSONResults handles opening the file and calling the JSON writer.
func writeMetricJSONResults(metrics map[schema.MetricSlot]schema.Metric, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, metrics)
	}, "Wrote JSON")
}

// writeMetricCSVResults handles opening the file and calling the CSV writer.
func writeMetricCSVResults(metrics map[schema.MetricSlot]schema.Metric, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"slot", "title", "current_value", "comparison_pct", "trend", "peak_value", "peak_time"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, slot := range schema.AllMetricSlots {
				metric, ok := metrics[slot]
				if !ok {
					continue
				}
				peakValue, peakTime := metric.PeakDisplay()
				row := []string{
					string(slot),
					metric.Title,
					schema.FormatFloat(metric.CurrentValue, 1),
					schema.FormatFloat(metric.ComparisonPct, 1),
					string(metric.Trend),
					peakValue,
					peakTime,
				}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeMetricTable generates and writes the human-readable table.
func writeMetricTable(metrics map[schema.MetricSlot]schema.Metric, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Slot", "Title", "Current", "Change %", "Trend", "Peak"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows in canonical slot order
	maxTitleWidth := getMaxTableTitleWidth(cfg)
	var data [][]string
	for _, slot := range schema.AllMetricSlots {
		metric, ok := metrics[slot]
		if !ok {
			continue
		}
		current := metric.CurrentValue
		peakValue, _ := metric.PeakDisplay()
		row := []string{
			string(slot),
			truncateTitle(metric.Title, maxTitleWidth),
			schema.FormatMetricValue(&current),
			schema.FormatFloat(metric.ComparisonPct, 1),
			contract.TrendGlyph(metric.Trend),
			peakValue,
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d of %d metric slots\n", len(data), len(schema.AllMetricSlots)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Fetch completed in %v. Snapshot backend: %s\n", duration, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}
