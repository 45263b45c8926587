package cmd

import (
	"github.com/rebuylabs/rebuy/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [data-path]",
	Short: "Start the Rebuy MCP server",
	Long:  `Launch an MCP server that allows AI agents to query repurchase statuses, benchmarks, and product comparisons via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The data path is optional here; tools may pass data_path per request.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
