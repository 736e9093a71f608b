package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tpsops/tpsreport/internal/contract"
	"github.com/tpsops/tpsreport/internal/delivery"
	"github.com/tpsops/tpsreport/internal/newrelic"
	"github.com/tpsops/tpsreport/internal/outwriter"
	"github.com/tpsops/tpsreport/internal/render"
	"github.com/tpsops/tpsreport/internal/secrets"
	"github.com/tpsops/tpsreport/schema"
)

// ExecutorFunc defines the function signature for executing different report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ErrNoMetrics is returned when the dashboard response yields no usable widgets.
var ErrNoMetrics = errors.New("no metrics could be parsed from the dashboard response")

// ExecuteReport runs the full report cycle: fetch, normalize, analyze, render
// and deliver. It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) error {
	client, err := buildDashboardClient(ctx, cfg)
	if err != nil {
		return err
	}

	renderer, err := buildRenderer(cfg)
	if err != nil {
		return err
	}

	var channels []contract.Delivery
	switch {
	case cfg.Delivery == schema.ConsoleDelivery:
		// The rendered report reaches the console through the output writer.
	case cfg.DryRun:
		fmt.Printf("Dry run: skipping %s delivery\n", cfg.Delivery)
	default:
		provider, err := secrets.NewAWSProvider(ctx, cfg.SecretsRegion)
		if err != nil {
			return err
		}
		channels, err = delivery.BuildChannels(ctx, cfg, provider)
		if err != nil {
			return err
		}
	}

	output, err := runReportCore(ctx, cfg, mgr, client, renderer, channels)
	if err != nil {
		return err
	}

	return outwriter.NewOutWriter().WriteReport(output, cfg)
}

// ExecuteMetrics fetches and normalizes widgets, then prints the metric slots.
// It serves as the main entry point for the 'metrics' command.
func ExecuteMetrics(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) error {
	start := time.Now()

	metrics, err := GetMetricResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteMetrics(metrics, cfg, duration)
}

// GetMetricResults fetches and normalizes widgets without printing anything.
// This is the data entry point shared by the CLI and the MCP server.
func GetMetricResults(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) (map[schema.MetricSlot]schema.Metric, error) {
	client, err := buildDashboardClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	widgets, err := obtainWidgets(ctx, cfg, mgr, client)
	if err != nil {
		return nil, err
	}

	metrics := Normalize(widgets, cfg.Location)
	if len(metrics) == 0 {
		return nil, ErrNoMetrics
	}
	return metrics, nil
}

// GetReportResults runs a full report cycle without delivering to any
// external channel. The run is still recorded in the run log.
func GetReportResults(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) (*schema.ReportOutput, error) {
	client, err := buildDashboardClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := buildRenderer(cfg)
	if err != nil {
		return nil, err
	}

	return runReportCore(ctx, cfg, mgr, client, renderer, nil)
}

// runReportCore executes one report cycle against the given collaborators and
// records it in the run log. Delivery failures are recorded and logged but do
// not abort the cycle.
func runReportCore(
	ctx context.Context,
	cfg *contract.Config,
	mgr contract.SnapshotManager,
	client contract.DashboardClient,
	renderer contract.Renderer,
	channels []contract.Delivery,
) (*schema.ReportOutput, error) {
	// Run logging is optional; a nil store means the backend is disabled.
	runLog := mgr.GetRunLog()

	var runID int64
	if runLog != nil {
		var err error
		runID, err = runLog.BeginRun(time.Now(), cfg.DashboardGUID, runParams(cfg))
		if err != nil {
			contract.LogWarn("run log unavailable", err)
		}
	}

	widgets, err := obtainWidgets(ctx, cfg, mgr, client)
	if err != nil {
		return nil, err
	}

	metrics := Normalize(widgets, cfg.Location)
	if len(metrics) == 0 {
		return nil, ErrNoMetrics
	}

	analysis := Translate(metrics, cfg.Thresholds)
	reportCtx := BuildReportContext(cfg, metrics, analysis, time.Now().In(cfg.Location))

	report, err := renderer.Render(templateNameFor(cfg), reportCtx.AsMap())
	if err != nil {
		return nil, err
	}

	subject := cfg.EmailSubject
	if subject == "" {
		subject = fmt.Sprintf("TPS Report: %s", reportCtx.EventName)
	}

	for _, channel := range channels {
		sendErr := channel.Send(ctx, subject, report)
		if sendErr != nil {
			contract.LogWarn(fmt.Sprintf("%s delivery failed", channel.Name()), sendErr)
		}
		detail := ""
		if sendErr != nil {
			detail = sendErr.Error()
		}
		if runLog != nil {
			if err := runLog.RecordDelivery(runID, channel.Name(), sendErr == nil, detail); err != nil {
				contract.LogWarn("delivery record failed", err)
			}
		}
	}

	if runLog != nil {
		if err := runLog.EndRun(runID, time.Now(), analysis.TrafficStatus, analysis.CapacityStatus, len(analysis.Trends)); err != nil {
			contract.LogWarn("run log update failed", err)
		}
	}

	return &schema.ReportOutput{
		Metrics:  metrics,
		Analysis: analysis,
		Context:  reportCtx,
		Report:   report,
	}, nil
}

// obtainWidgets returns the dashboard widgets, either from a live fetch or
// from the snapshot store when running offline. Live fetches refresh the
// snapshot; a failed snapshot write is not fatal.
func obtainWidgets(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager, client contract.DashboardClient) ([]schema.Widget, error) {
	snapshots := mgr.GetSnapshotStore()

	if cfg.Offline {
		payload, fetchedAt, err := snapshots.Get(cfg.DashboardGUID)
		if err != nil {
			return nil, fmt.Errorf("no snapshot available for dashboard %s: %w. Run once without --offline to seed it", cfg.DashboardGUID, err)
		}
		fmt.Printf("Using widget snapshot from %s\n", fetchedAt.In(cfg.Location).Format(contract.DateTimeFormat))
		return newrelic.DecodeWidgets(payload)
	}

	payload, err := client.FetchPayload(ctx, cfg.DashboardGUID)
	if err != nil {
		return nil, err
	}

	if err := snapshots.Put(cfg.DashboardGUID, payload, time.Now()); err != nil {
		contract.LogWarn("snapshot save failed", err)
	}

	return newrelic.DecodeWidgets(payload)
}

// buildDashboardClient resolves the API key and builds the NerdGraph client.
// Offline runs never touch the API, so no client or key is needed.
func buildDashboardClient(ctx context.Context, cfg *contract.Config) (contract.DashboardClient, error) {
	if cfg.Offline {
		return nil, nil
	}

	apiKey, err := resolveAPIKey(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newrelic.NewClient(apiKey), nil
}

// resolveAPIKey returns the configured API key, consulting the secrets
// provider when only a secret ID is configured.
func resolveAPIKey(ctx context.Context, cfg *contract.Config) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}
	if cfg.APIKeySecretID == "" {
		return "", errors.New("no API key configured. Set --api-key or --api-key-secret-id")
	}

	provider, err := secrets.NewAWSProvider(ctx, cfg.SecretsRegion)
	if err != nil {
		return "", err
	}
	payload, err := provider.GetSecret(ctx, cfg.APIKeySecretID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve API key: %w", err)
	}

	apiKey, err := contract.ExtractSecretField(payload, "api_key", "key")
	if err != nil {
		return "", fmt.Errorf("secret %s did not contain an API key: %w", cfg.APIKeySecretID, err)
	}
	return apiKey, nil
}

// buildRenderer returns the template renderer, with the configured template
// file layered over the embedded templates when present.
func buildRenderer(cfg *contract.Config) (contract.Renderer, error) {
	if cfg.TemplateFile != "" {
		return render.NewRendererWithFile(cfg.TemplateFile)
	}
	return render.NewRenderer()
}

// templateNameFor selects the template executed for this run.
func templateNameFor(cfg *contract.Config) string {
	if cfg.TemplateFile != "" {
		return render.TemplateNameForFile(cfg.TemplateFile)
	}
	return render.DefaultTemplateName
}

// runParams captures the settings worth auditing alongside a run record.
func runParams(cfg *contract.Config) map[string]any {
	return map[string]any{
		"output":     string(cfg.Output),
		"delivery":   string(cfg.Delivery),
		"offline":    cfg.Offline,
		"dry_run":    cfg.DryRun,
		"event_name": cfg.EventName,
		"timezone":   cfg.TimezoneName,
	}
}
