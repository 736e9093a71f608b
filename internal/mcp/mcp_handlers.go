package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tpsops/tpsreport/core"
	"github.com/tpsops/tpsreport/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.SnapshotManager
}

// requestConfig clones the base config and applies the request overrides
// shared by all tools.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if guid := request.GetString("dashboard_guid", ""); guid != "" {
		cfg.DashboardGUID = guid
	}
	cfg.Offline = request.GetBool("offline", cfg.Offline)
	return cfg
}

func (h *toolHandler) handleGetDashboardMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)

	metrics, err := core.GetMetricResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("metric fetch failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(metrics, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGenerateReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)
	if event := request.GetString("event_name", ""); event != "" {
		cfg.EventName = event
	}

	output, err := core.GetReportResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report generation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.requestConfig(request)
	if warning := request.GetFloat("warning", 0); warning > 0 {
		cfg.Thresholds.CapacityWarning = warning
	}
	if critical := request.GetFloat("critical", 0); critical > 0 {
		cfg.Thresholds.CapacityCritical = critical
	}
	if cfg.Thresholds.CapacityWarning >= cfg.Thresholds.CapacityCritical {
		return mcp.NewToolResultError("invalid thresholds: warning must be below critical"), nil
	}

	result, err := core.GetCheckResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status check failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
