// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/wiktersproj/wikters/internal/tool"
)

// version is set at build time via -ldflags.
var version = "dev"

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the entry-structure analysis as an MCP tool over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcp.NewServer(&mcp.Implementation{
				Name:    "wikters",
				Version: version,
			}, nil)
			mcp.AddTool(server, tool.MetadataAnalyzeEntryStructure, tool.AnalyzeEntryStructure)

			slog.Info("serving MCP over stdio", "tool", tool.MetadataAnalyzeEntryStructure.Name)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
