package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/internal/snapstore"
	"github.com/tpsops/tpsreport/schema"
)

// runlogSetup loads minimal configuration needed for run log operations.
// This is used by commands that need run log access without full shared setup.
func runlogSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get run log config values
	backendStr := viper.GetString("runlog-backend")
	connStr := viper.GetString("runlog-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize stores with the loaded config (no snapshot access for runlog commands)
	if err := snapstore.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run log: %w", err)
	}

	cfg.RunLogBackend = backend
	cfg.RunLogDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// runlogSetupWrapper wraps runlogSetup to provide PreRunE for runlog commands.
func runlogSetupWrapper(_ *cobra.Command, _ []string) error {
	return runlogSetup()
}

// runlogMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func runlogMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get run log config values
	backendStr := viper.GetString("runlog-backend")
	connStr := viper.GetString("runlog-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = snapstore.GetRunLogDBFilePath()
	}

	cfg.RunLogBackend = backend
	cfg.RunLogDBConnect = connStr

	return nil
}

// runlogMigrateSetupWrapper wraps runlogMigrateSetup to provide PreRunE for migrate command.
func runlogMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runlogMigrateSetup()
}

// runlogCmd focused on run history management.
//
// Note: Runlog subcommands use minimal initialization (runlogSetup) instead of
// the full sharedSetup used by dashboard commands. This avoids API key
// resolution and delivery validation for simple storage operations.
var runlogCmd = &cobra.Command{
	Use:   "runlog",
	Short: "Manage report run history and exports",
	Long: `Manage historical report run data used for auditing and delivery tracking.

When enabled, tpsreport records every report run, storing:
- Run metadata (timestamp, configuration, dashboard GUID)
- Traffic and capacity status at the end of each run
- Delivery attempts per channel with success and failure details

This enables auditing of who received what and when, plus data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run log statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all run history
  migrate - Run database schema migrations

Examples:
  # Check run log status
  tpsreport runlog status

  # Export for analysis in pandas/DuckDB
  tpsreport runlog export --output-file runlog-data.parquet`,
}

// runlogClearCmd clears the run log data.
var runlogClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all report run history",
	Long: `Delete all stored report runs and delivery records.

This removes:
- All run metadata and end-of-run statuses
- Delivery attempt history for every channel

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  tpsreport runlog export --output-file backup.parquet
  tpsreport runlog clear

  # Clear and start fresh
  tpsreport runlog clear`,
	PreRunE: runlogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapstore.ClearRunLog(cfg.RunLogBackend, snapstore.GetRunLogDBFilePath(), cfg.RunLogDBConnect); err != nil {
			contract.LogFatal("Failed to clear run log", err)
		}
		fmt.Println("Run log cleared successfully.")
	},
}

// runlogStatusCmd shows run log status.
var runlogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run log statistics and connection details",
	Long: `Show detailed information about report run tracking.

Displays:
- Backend type and connection status
- Total number of runs and deliveries stored
- Last run identifier and timestamps
- Database table sizes

Use this to:
- Verify run logging is enabled and working
- Monitor data accumulation over time
- Check database connection health

Examples:
  # Check run log status
  tpsreport runlog status`,
	PreRunE: runlogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := snapstore.Manager.GetRunLog().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run log status", err)
		}
		snapstore.PrintRunLogStatus(status)
	},
}

// runlogExportCmd exports run log data to Parquet files.
var runlogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored run history to Parquet format for use with analytics tools.

Exports two datasets:
- Report runs - metadata and end-of-run status per execution
- Deliveries - per-channel delivery attempts and outcomes

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  tpsreport runlog export --output-file tpsreport-data.parquet

  # Use with DuckDB for analysis
  tpsreport runlog export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet/runs.parquet') LIMIT 10"`,
	PreRunE: runlogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapstore.ExecuteRunLogExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run log", err)
		}
	},
}

// runlogMigrateCmd runs database migrations for the run log store.
var runlogMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run log store.

Migrations allow:
- Upgrading to new schema versions when tpsreport is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  tpsreport runlog migrate

  # Migrate to specific version
  tpsreport runlog migrate --target-version 1

  # Rollback to previous version
  tpsreport runlog migrate --target-version 0`,
	PreRunE: runlogMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := snapstore.MigrateRunLog(cfg.RunLogBackend, cfg.RunLogDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
