package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	inboundmcp "github.com/berise/openscap/internal/adapter/inbound/mcp"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Expose the configured benchmark/profile as an MCP evaluate_policy tool over stdio",
	RunE:  runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	r, _, err := buildRun()
	if err != nil {
		return err
	}

	server := inboundmcp.NewServer(r.policy, r.evaluator, r.log)
	r.log.Info("mcp-serve: listening on stdio", "tool", inboundmcp.ToolName)
	return server.Serve(context.Background(), os.Stdin, os.Stdout)
}
