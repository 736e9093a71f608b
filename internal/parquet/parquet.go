// Package parquet provides data structures and functions for exporting run
// log data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/tpsops/tpsreport/schema"
)

// ReportRun represents a single report run with metadata.
// This struct maps to the tpsreport_runs database table.
type ReportRun struct {
	// RunID is the unique identifier for this report run
	RunID int64 `parquet:"run_id,snappy"`

	// DashboardGUID identifies the dashboard the report was built from
	DashboardGUID string `parquet:"dashboard_guid,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`

	// TrafficStatus is the categorical traffic grade for the run
	TrafficStatus string `parquet:"traffic_status,snappy"`

	// CapacityStatus is the categorical capacity grade for the run
	CapacityStatus string `parquet:"capacity_status,snappy"`

	// TrendCount is the number of narrative trend sentences produced
	TrendCount int32 `parquet:"trend_count,snappy"`
}

// DeliveryOutcome represents the result of one delivery attempt.
// This struct maps to the tpsreport_deliveries database table.
type DeliveryOutcome struct {
	// RunID references the parent report run
	RunID int64 `parquet:"run_id,snappy"`

	// Channel names the delivery channel (console, slack, email)
	Channel string `parquet:"channel,snappy"`

	// Success indicates whether the delivery went through
	Success bool `parquet:"success,snappy"`

	// Detail carries the failure reason when Success is false (nullable)
	Detail *string `parquet:"detail,optional,snappy"`

	// DeliveredAt is when the delivery attempt was made
	DeliveredAt time.Time `parquet:"delivered_at,snappy"`
}

// WriteReportRunsParquet writes a slice of ReportRun structs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ReportRun struct tags
	writer := parquet.NewGenericWriter[ReportRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteDeliveryOutcomesParquet writes a slice of DeliveryOutcome structs to a Parquet file.
func WriteDeliveryOutcomesParquet(data []DeliveryOutcome, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the DeliveryOutcome struct tags
	writer := parquet.NewGenericWriter[DeliveryOutcome](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertReportRunRecords converts schema.ReportRunRecord to ReportRun for Parquet export.
func ConvertReportRunRecords(records []schema.ReportRunRecord) []ReportRun {
	result := make([]ReportRun, len(records))
	for i, record := range records {
		result[i] = ReportRun{
			RunID:          record.RunID,
			DashboardGUID:  record.DashboardGUID,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			ConfigParams:   record.ConfigParams,
			TrafficStatus:  record.TrafficStatus,
			CapacityStatus: record.CapacityStatus,
			TrendCount:     record.TrendCount,
		}
	}
	return result
}

// ConvertDeliveryRecords converts schema.DeliveryRecord to DeliveryOutcome for Parquet export.
func ConvertDeliveryRecords(records []schema.DeliveryRecord) []DeliveryOutcome {
	result := make([]DeliveryOutcome, len(records))
	for i, record := range records {
		result[i] = DeliveryOutcome{
			RunID:       record.RunID,
			Channel:     record.Channel,
			Success:     record.Success,
			Detail:      record.Detail,
			DeliveredAt: record.DeliveredAt,
		}
	}
	return result
}
