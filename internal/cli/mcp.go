package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mark3labs/swagger2snippet/internal/mcpserver"
)

var mcpRunner = runMCP

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve snippet generation as MCP tools over stdio",
		Long: "Start a Model Context Protocol server on stdin/stdout exposing the tools " +
			"generate_code, format_shell_command, list_languages and synthesize_example.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcpRunner(cmd.Context())
		},
	}
}

func runMCP(ctx context.Context) error {
	return mcpserver.Run(ctx, Version)
}
