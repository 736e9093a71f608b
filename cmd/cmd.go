// Package cmd defines the command-line interface for tpsreport.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(runlogCmd)

	// Add the snapshot subcommands to the parent snapshot command
	snapshotCmd.AddCommand(snapshotClearCmd)
	snapshotCmd.AddCommand(snapshotStatusCmd)

	// Add the runlog subcommands to the parent runlog command
	runlogCmd.AddCommand(runlogClearCmd)
	runlogCmd.AddCommand(runlogStatusCmd)
	runlogCmd.AddCommand(runlogExportCmd)
	runlogCmd.AddCommand(runlogMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("dashboard-guid", "g", "", "Entity GUID of the New Relic dashboard to read")
	rootCmd.PersistentFlags().String("dashboard-url", "", "Public dashboard URL included at the bottom of reports")
	rootCmd.PersistentFlags().String("timezone", contract.DefaultTimezone, "IANA timezone for peak times and report timestamps")
	rootCmd.PersistentFlags().String("user-name", "", "Name used in the report greeting")
	rootCmd.PersistentFlags().String("event-name", contract.DefaultEventName, "Event name used in the report headline")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("api-key", "", "New Relic API key (prefer TPSREPORT_API_KEY or a secret)")
	rootCmd.PersistentFlags().String("api-key-secret-id", "", "AWS Secrets Manager secret holding the New Relic API key")
	rootCmd.PersistentFlags().String("secrets-region", "", "AWS region for Secrets Manager lookups")
	rootCmd.PersistentFlags().String("snapshot-backend", string(schema.SQLiteBackend), "Snapshot backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("snapshot-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("runlog-backend", "", "Run log backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runlog-db-connect", "", "Database connection string for run logging (must differ from snapshot-db-connect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("delivery", string(schema.ConsoleDelivery), "Delivery mode: console or slack or email or both")
	reportCmd.Flags().Bool("dry-run", false, "Render the report but skip external delivery")
	reportCmd.Flags().Bool("offline", false, "Use the cached widget snapshot instead of the dashboard API")
	reportCmd.Flags().String("template-file", "", "Path to a custom report template")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of metricsCmd to Viper
	metricsCmd.Flags().Bool("offline", false, "Use the cached widget snapshot instead of the dashboard API")
	if err := viper.BindPFlags(metricsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding metrics flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().String("thresholds-override", "", "Capacity thresholds for CI/CD gating (format: 'warning:70,critical:85')")
	checkCmd.Flags().Bool("offline", false, "Use the cached widget snapshot instead of the dashboard API")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of runlogMigrateCmd to Viper
	runlogMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runlogMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runlog migrate flags", err)
	}
}
