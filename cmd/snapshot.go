package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/internal/snapstore"
	"github.com/tpsops/tpsreport/schema"
)

// snapshotSetup loads minimal configuration needed for snapshot operations.
// This is used by commands that need snapshot access without full shared setup.
func snapshotSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backend := schema.DatabaseBackend(viper.GetString("snapshot-backend"))
	connStr := viper.GetString("snapshot-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize storage with the loaded config (no run logging for snapshot commands)
	if err := snapstore.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize snapshot storage: %w", err)
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr

	return nil
}

// snapshotSetupWrapper wraps snapshotSetup to provide PreRunE for snapshot commands.
func snapshotSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotSetup()
}

// snapshotCmd focused on widget snapshot management.
//
// Note: Snapshot subcommands use minimal initialization (snapshotSetup) instead
// of the full sharedSetup used by dashboard commands. This avoids API key
// resolution and delivery validation for simple storage operations.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage cached widget snapshots (enables offline reports)",
	Long: `Manage the widget snapshot cache that backs offline report runs.

Tpsreport stores the most recent dashboard payload per GUID so reports can be
rendered when the API is unreachable or rate limited.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show snapshot statistics and connection info
  clear  - Remove all cached snapshots

Examples:
  # Check snapshot status
  tpsreport snapshot status

  # Clear snapshots after a dashboard redesign
  tpsreport snapshot clear`,
}

// snapshotClearCmd clears the snapshot cache.
var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached widget snapshots",
	Long: `Delete all cached dashboard payloads from the configured backend.

Use this when:
- The dashboard layout or widget titles changed
- Snapshots may be stale or corrupted
- Testing online fetch behavior

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the snapshot table

Examples:
  # Clear SQLite snapshots (default)
  tpsreport snapshot clear

  # Clear MySQL snapshots (set connection string via env variable)
  TPSREPORT_SNAPSHOT_BACKEND=mysql TPSREPORT_SNAPSHOT_DB_CONNECT="..." tpsreport snapshot clear`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapstore.ClearSnapshots(cfg.SnapshotBackend, snapstore.GetSnapshotDBFilePath(), cfg.SnapshotDBConnect); err != nil {
			contract.LogFatal("Failed to clear snapshots", err)
		}
		fmt.Println("Snapshots cleared successfully.")
	},
}

// snapshotStatusCmd shows snapshot status.
var snapshotStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot statistics and connection details",
	Long: `Show detailed information about the widget snapshot cache.

Displays:
- Backend type and connection status
- Total number of cached dashboards
- Last and oldest snapshot timestamps
- Snapshot table size

Use this to:
- Verify offline reports have a snapshot to fall back on
- Check when the snapshot was last refreshed
- Debug storage connection issues

Examples:
  # Check snapshot status
  tpsreport snapshot status`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := snapstore.Manager.GetSnapshotStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
		snapstore.PrintSnapshotStatus(status)
	},
}
