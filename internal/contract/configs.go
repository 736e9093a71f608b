package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tpsops/tpsreport/schema"
)

// Default values for configuration.
const (
	DefaultCapacityWarning  = 70.0
	DefaultCapacityCritical = 85.0
	DefaultTimezone         = "America/New_York"
	DefaultEventName        = "Weekend Event"
	DefaultEmailSubject     = "TPS Traffic Report"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a report run.
// This struct remains the "final, validated" config.
type Config struct {
	DashboardGUID string
	DashboardURL  string

	Location     *time.Location
	TimezoneName string

	Thresholds schema.Thresholds

	UserName  string
	EventName string

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	Delivery schema.DeliveryMode
	DryRun   bool

	// Offline renders a report from the cached widget snapshot instead of
	// calling the dashboard API.
	Offline bool

	TemplateFile string

	APIKey         string
	APIKeySecretID string
	SecretsRegion  string

	SlackWebhookURL      string
	SlackWebhookSecretID string

	GraphTenantID           string
	GraphClientID           string
	GraphClientSecret       string
	GraphClientSecretNameID string
	EmailSender             string
	EmailRecipients         []string
	EmailSubject            string

	SnapshotBackend   schema.DatabaseBackend
	SnapshotDBConnect string // Please use env var as this is plaintext

	RunLogBackend   schema.DatabaseBackend
	RunLogDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// Clone returns a copy of the config that is safe to mutate per request.
func (c *Config) Clone() *Config {
	clone := *c
	clone.EmailRecipients = append([]string(nil), c.EmailRecipients...)
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	DashboardGUID     string `mapstructure:"dashboard-guid"`
	DashboardURL      string `mapstructure:"dashboard-url"`
	Timezone          string `mapstructure:"timezone"`
	UserName          string `mapstructure:"user-name"`
	EventName         string `mapstructure:"event-name"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	APIKey            string `mapstructure:"api-key"`
	APIKeySecretID    string `mapstructure:"api-key-secret-id"`
	SecretsRegion     string `mapstructure:"secrets-region"`
	SnapshotBackend   string `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string `mapstructure:"snapshot-db-connect"`
	RunLogBackend     string `mapstructure:"runlog-backend"`
	RunLogDBConnect   string `mapstructure:"runlog-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`

	// --- Fields from reportCmd.Flags() ---
	Delivery     string `mapstructure:"delivery"`
	DryRun       bool   `mapstructure:"dry-run"`
	Offline      bool   `mapstructure:"offline"`
	TemplateFile string `mapstructure:"template-file"`

	// --- Fields from checkCmd.Flags() ---
	ThresholdsStr string `mapstructure:"thresholds-override"`

	// --- Slack settings from config file ---
	Slack SlackRawInput `mapstructure:"slack"`

	// --- Email settings from config file ---
	Email EmailRawInput `mapstructure:"email"`

	// --- Capacity thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// SlackRawInput holds Slack delivery settings from the YAML config file.
type SlackRawInput struct {
	WebhookURL      string `mapstructure:"webhook-url"`
	WebhookSecretID string `mapstructure:"webhook-secret-id"`
}

// EmailRawInput holds Office 365 delivery settings from the YAML config file.
type EmailRawInput struct {
	TenantID           string   `mapstructure:"tenant-id"`
	ClientID           string   `mapstructure:"client-id"`
	ClientSecret       string   `mapstructure:"client-secret"`
	ClientSecretNameID string   `mapstructure:"client-secret-id"`
	Sender             string   `mapstructure:"sender"`
	Recipients         []string `mapstructure:"recipients"`
	Subject            string   `mapstructure:"subject"`
}

// ThresholdsRawInput holds capacity threshold definitions from the YAML config file.
// Use float64 pointers so absent fields fall back to defaults.
type ThresholdsRawInput struct {
	Warning  *float64 `mapstructure:"warning"`
	Critical *float64 `mapstructure:"critical"`
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimezone(cfg, input); err != nil {
		return err
	}
	if err := processCapacityThresholds(cfg, input); err != nil {
		return err
	}
	if err := processDeliveryConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db connect string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db connect string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates snapshot and run log backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Snapshot Backend Validation ---
	cfg.SnapshotBackend = schema.DatabaseBackend(strings.ToLower(input.SnapshotBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.SnapshotBackend]; !ok {
		return fmt.Errorf("invalid snapshot backend '%s'. must be sqlite, mysql, postgresql, none", input.SnapshotBackend)
	}
	cfg.SnapshotDBConnect = input.SnapshotDBConnect
	if err := ValidateDatabaseConnectionString(cfg.SnapshotBackend, cfg.SnapshotDBConnect); err != nil {
		return err
	}

	// --- Run Log Backend Validation ---
	cfg.RunLogBackend = schema.DatabaseBackend(strings.ToLower(input.RunLogBackend))
	if cfg.RunLogBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.RunLogBackend]; !ok {
			return fmt.Errorf("invalid runlog backend '%s'. must be sqlite, mysql, postgresql, none", input.RunLogBackend)
		}
		cfg.RunLogDBConnect = input.RunLogDBConnect
		if err := ValidateDatabaseConnectionString(cfg.RunLogBackend, cfg.RunLogDBConnect); err != nil {
			return err
		}

		// Validate that snapshot and run log use different databases
		if cfg.SnapshotBackend == cfg.RunLogBackend && cfg.SnapshotBackend == schema.SQLiteBackend {
			// Resolve to actual file paths to catch default path conflicts
			snapshotDBPath := cfg.SnapshotDBConnect
			if snapshotDBPath == "" {
				snapshotDBPath = GetSnapshotDBFilePath()
			}
			runLogDBPath := cfg.RunLogDBConnect
			if runLogDBPath == "" {
				runLogDBPath = GetRunLogDBFilePath()
			}
			if snapshotDBPath == runLogDBPath {
				return fmt.Errorf("snapshot and run log storage must use different SQLite database files. Both resolve to %q", snapshotDBPath)
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-delivery fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.DashboardGUID = strings.TrimSpace(input.DashboardGUID)
	cfg.DashboardURL = strings.TrimSpace(input.DashboardURL)
	cfg.UserName = input.UserName
	cfg.EventName = input.EventName
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.DryRun = input.DryRun
	cfg.Offline = input.Offline
	cfg.TemplateFile = input.TemplateFile
	cfg.APIKey = input.APIKey
	cfg.APIKeySecretID = input.APIKeySecretID
	cfg.SecretsRegion = input.SecretsRegion

	if cfg.EventName == "" {
		cfg.EventName = DefaultEventName
	}

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 2. Delivery Validation ---
	cfg.Delivery = schema.DeliveryMode(strings.ToLower(input.Delivery))
	if _, ok := schema.ValidDeliveryModes[cfg.Delivery]; !ok {
		return fmt.Errorf("invalid delivery mode '%s'. must be console, slack, email, both", input.Delivery)
	}

	// --- 3. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processTimezone resolves the display timezone used for peak times and
// report timestamps.
func processTimezone(cfg *Config, input *ConfigRawInput) error {
	name := strings.TrimSpace(input.Timezone)
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", name, err)
	}
	cfg.TimezoneName = name
	cfg.Location = loc
	return nil
}

// processCapacityThresholds converts the raw threshold input into the final
// cfg.Thresholds. Command-line --thresholds-override takes precedence over
// config file settings.
func processCapacityThresholds(cfg *Config, input *ConfigRawInput) error {
	// Set defaults first
	cfg.Thresholds = schema.Thresholds{
		CapacityWarning:  DefaultCapacityWarning,
		CapacityCritical: DefaultCapacityCritical,
	}

	// Override with config file values if provided
	if input.Thresholds.Warning != nil {
		cfg.Thresholds.CapacityWarning = *input.Thresholds.Warning
	}
	if input.Thresholds.Critical != nil {
		cfg.Thresholds.CapacityCritical = *input.Thresholds.Critical
	}

	// Override with command-line flag if provided (takes precedence)
	if input.ThresholdsStr != "" {
		parsed, err := parseCapacityThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		if warning, ok := parsed["warning"]; ok {
			cfg.Thresholds.CapacityWarning = warning
		}
		if critical, ok := parsed["critical"]; ok {
			cfg.Thresholds.CapacityCritical = critical
		}
	}

	// Validate thresholds
	if cfg.Thresholds.CapacityWarning < 0.0 || cfg.Thresholds.CapacityWarning > 100.0 {
		return fmt.Errorf("capacity warning threshold must be between 0.0 and 100.0 (received %.2f)", cfg.Thresholds.CapacityWarning)
	}
	if cfg.Thresholds.CapacityCritical < 0.0 || cfg.Thresholds.CapacityCritical > 100.0 {
		return fmt.Errorf("capacity critical threshold must be between 0.0 and 100.0 (received %.2f)", cfg.Thresholds.CapacityCritical)
	}
	if cfg.Thresholds.CapacityWarning > cfg.Thresholds.CapacityCritical {
		return fmt.Errorf("capacity warning threshold (%.1f) cannot exceed critical threshold (%.1f)",
			cfg.Thresholds.CapacityWarning, cfg.Thresholds.CapacityCritical)
	}

	return nil
}

// processDeliveryConfigs validates settings for the configured delivery channels.
func processDeliveryConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.SlackWebhookURL = strings.TrimSpace(input.Slack.WebhookURL)
	cfg.SlackWebhookSecretID = strings.TrimSpace(input.Slack.WebhookSecretID)
	cfg.GraphTenantID = strings.TrimSpace(input.Email.TenantID)
	cfg.GraphClientID = strings.TrimSpace(input.Email.ClientID)
	cfg.GraphClientSecret = input.Email.ClientSecret
	cfg.GraphClientSecretNameID = strings.TrimSpace(input.Email.ClientSecretNameID)
	cfg.EmailSender = strings.TrimSpace(input.Email.Sender)
	cfg.EmailRecipients = make([]string, 0, len(input.Email.Recipients))
	for _, r := range input.Email.Recipients {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			cfg.EmailRecipients = append(cfg.EmailRecipients, trimmed)
		}
	}
	cfg.EmailSubject = input.Email.Subject
	if cfg.EmailSubject == "" {
		cfg.EmailSubject = DefaultEmailSubject
	}

	// Dry runs render channels to the console, so credentials are not needed.
	if cfg.DryRun {
		return nil
	}

	if cfg.Delivery == schema.SlackDelivery || cfg.Delivery == schema.BothDelivery {
		if cfg.SlackWebhookURL == "" && cfg.SlackWebhookSecretID == "" {
			return fmt.Errorf("slack delivery requires slack.webhook-url or slack.webhook-secret-id")
		}
	}

	if cfg.Delivery == schema.EmailDelivery || cfg.Delivery == schema.BothDelivery {
		if cfg.GraphTenantID == "" || cfg.GraphClientID == "" {
			return fmt.Errorf("email delivery requires email.tenant-id and email.client-id")
		}
		if cfg.GraphClientSecret == "" && cfg.GraphClientSecretNameID == "" {
			return fmt.Errorf("email delivery requires email.client-secret or email.client-secret-id")
		}
		if cfg.EmailSender == "" {
			return fmt.Errorf("email delivery requires email.sender")
		}
		if len(cfg.EmailRecipients) == 0 {
			return fmt.Errorf("email delivery requires at least one recipient")
		}
	}

	return nil
}

// parseCapacityThresholdsString parses a string like "warning:70,critical:85"
// into a map of threshold name to float64.
func parseCapacityThresholdsString(s string) (map[string]float64, error) {
	thresholds := make(map[string]float64)

	if s == "" {
		return thresholds, nil
	}

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'name:value'", part)
		}

		name := strings.ToLower(strings.TrimSpace(keyValue[0]))
		valueStr := strings.TrimSpace(keyValue[1])

		if name != "warning" && name != "critical" {
			return nil, fmt.Errorf("invalid threshold name '%s', must be warning or critical", name)
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for %s: %w", valueStr, name, err)
		}

		thresholds[name] = value
	}

	return thresholds, nil
}
