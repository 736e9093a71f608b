package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tpsops/tpsreport/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the tpsreport MCP server",
	Long:  `Launch an MCP server that allows AI agents to fetch metrics, generate reports, and run policy checks via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// The dashboard GUID can arrive per tool call, so it is not
		// required up front like it is for the other commands.
		return sharedSetup(false)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, snapshotManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
