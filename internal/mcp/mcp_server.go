// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tpsops/tpsreport/internal/contract"
)

// NewMCPServer initializes and configures the TPS report MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.SnapshotManager) *server.MCPServer {
	s := server.NewMCPServer(
		"TPS Report Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_dashboard_metrics ---
	s.AddTool(mcp.NewTool("get_dashboard_metrics",
		mcp.WithDescription("Fetch dashboard widgets and return the normalized TPS and capacity metrics."),
		mcp.WithString("dashboard_guid", mcp.Description("Dashboard GUID to query (defaults to the configured dashboard).")),
		mcp.WithBoolean("offline", mcp.Description("Use the cached widget snapshot instead of calling the dashboard API.")),
	), h.handleGetDashboardMetrics)

	// --- 2. Tool: generate_report ---
	s.AddTool(mcp.NewTool("generate_report",
		mcp.WithDescription("Generate the narrative TPS report. The report is returned, not delivered to Slack or email."),
		mcp.WithString("dashboard_guid", mcp.Description("Dashboard GUID to query.")),
		mcp.WithString("event_name", mcp.Description("Event name used in the report heading.")),
		mcp.WithBoolean("offline", mcp.Description("Use the cached widget snapshot instead of calling the dashboard API.")),
	), h.handleGenerateReport)

	// --- 3. Tool: check_status ---
	s.AddTool(mcp.NewTool("check_status",
		mcp.WithDescription("Check traffic and capacity against policy thresholds. Fails only on critical status."),
		mcp.WithString("dashboard_guid", mcp.Description("Dashboard GUID to query.")),
		mcp.WithNumber("warning", mcp.Description("Capacity warning threshold percentage override.")),
		mcp.WithNumber("critical", mcp.Description("Capacity critical threshold percentage override.")),
		mcp.WithBoolean("offline", mcp.Description("Use the cached widget snapshot instead of calling the dashboard API.")),
	), h.handleCheckStatus)

	return s
}

// StartMCPServer starts the TPS report MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.SnapshotManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
