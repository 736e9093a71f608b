package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/schema"
)

// reportFieldOrder keeps CSV output stable across runs.
var reportFieldOrder = []string{
	"user_name",
	"timestamp",
	"event_name",
	"report_date",
	"report_time",
	"dashboard_url",
	"traffic_status",
	"capacity_status",
	"trends",
	"tsys_avg_tps",
	"tsys_peak_tps",
	"tsys_peak_time",
	"tsys_avg_capacity",
	"hpns_avg_tps",
	"hpns_peak_tps",
	"hpns_peak_time",
	"hpns_avg_capacity",
}

// WriteReportOutput outputs a full report cycle, dispatching based on the output format configured.
func WriteReportOutput(output *schema.ReportOutput, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeReportJSON(output, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeReportCSV(output, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to the rendered report text with a status footer
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(output, cfg, w)
		}, "Wrote report")
	}
	return nil
}

// writeReportJSON emits the full report bundle: metrics, analysis, context and text.
func writeReportJSON(output *schema.ReportOutput, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeReportCSV emits the report context as field,value rows.
func writeReportCSV(output *schema.ReportOutput, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fields := output.Context.AsMap()
		return writeCSVWithHeader(w, []string{"field", "value"}, func(csvWriter *csv.Writer) error {
			for _, field := range reportFieldOrder {
				if err := csvWriter.Write([]string{field, fields[field]}); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeReportText writes the rendered report plus a short status footer.
func writeReportText(output *schema.ReportOutput, cfg *contract.Config, w io.Writer) error {
	if _, err := fmt.Fprintln(w, output.Report); err != nil {
		return err
	}

	trafficLabel := contract.GetPlainLabel(output.Analysis.TrafficStatus)
	capacityLabel := contract.GetPlainLabel(output.Analysis.CapacityStatus)
	if cfg.UseColors {
		trafficLabel = contract.GetColorLabel(output.Analysis.TrafficStatus)
		capacityLabel = contract.GetColorLabel(output.Analysis.CapacityStatus)
	}

	if _, err := fmt.Fprintf(w, "Traffic: %s | Capacity: %s | Trends: %d\n", trafficLabel, capacityLabel, len(output.Analysis.Trends)); err != nil {
		return err
	}
	return nil
}
