package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grimoire/internal/adapters/driving/mcp"
	"github.com/custodia-labs/grimoire/internal/core/domain"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the catalog over the Model Context Protocol",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Load the catalog and serve it to MCP clients.

Tools: query_catalog, catalog_facets, get_record.
Resources: grimoire://taxonomy, grimoire://load-report and
grimoire://records/{recordId}.

The server speaks JSON-RPC over stdio unless --port is given, in which
case it serves the streamable HTTP transport on that port.`,
	Example: `  grimoire mcp serve --data ~/rules/data
  grimoire mcp serve --github owner/rules-data --port 8765 --watch`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("watch", false, "reload the catalog when the source changes")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return err
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("%w: port %d", domain.ErrInvalidInput, port)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := ensureLoaded(ctx); err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Catalog: catalogService})
	if err != nil {
		return err
	}

	return runWithWatch(ctx, watch, nil, func(ctx context.Context) error {
		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}
		return server.Run(ctx)
	})
}
