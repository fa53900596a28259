package cmd

import (
	"github.com/plantops/capaimpact/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the capaimpact MCP server",
	Long:  `Launch an MCP server that allows AI agents to query action KPIs, impact scores and champion rankings via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		cfg.UseEmojis = false
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, newSnapshotSource())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
