package snapstore

import (
	"errors"
	"fmt"

	"github.com/tpsops/tpsreport/internal/parquet"
)

// ExecuteRunLogExport performs the actual export of run log data to Parquet files.
func ExecuteRunLogExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run log store
	store := Manager.GetRunLog()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run log status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run log data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total report runs: %d\n", status.TotalRuns)
	fmt.Printf("Total deliveries: %d\n", status.TotalDeliveries)

	// Retrieve all report runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve report runs: %w", err)
	}

	// Retrieve all delivery records
	deliveries, err := store.GetAllDeliveries()
	if err != nil {
		return fmt.Errorf("failed to retrieve delivery records: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertReportRunRecords(runs)
	parquetDeliveries := parquet.ConvertDeliveryRecords(deliveries)

	// Write report runs to Parquet
	runsFile := outputFile + ".report_runs.parquet"
	if err := parquet.WriteReportRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write report runs: %w", err)
	}
	fmt.Printf("Exported %d report runs to: %s\n", len(parquetRuns), runsFile)

	// Write delivery outcomes to Parquet
	deliveriesFile := outputFile + ".deliveries.parquet"
	if err := parquet.WriteDeliveryOutcomesParquet(parquetDeliveries, deliveriesFile); err != nil {
		return fmt.Errorf("failed to write delivery outcomes: %w", err)
	}
	fmt.Printf("Exported %d delivery records to: %s\n", len(parquetDeliveries), deliveriesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
