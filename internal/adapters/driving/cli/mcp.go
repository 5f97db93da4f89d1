package cli

import (
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tashri/internal/adapters/driving/mcp"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve legislation tools to MCP clients",
	Long: `Starts an MCP server exposing search, provision lookup, document
resolution, definitions and citation checking over the local database.

Without --port the server speaks JSON-RPC on stdin/stdout, which is what
desktop clients expect:

  {
    "mcpServers": {
      "tashri": {"command": "tashri", "args": ["mcp", "serve"]}
    }
  }

With --port it serves the streamable HTTP transport instead, which is
convenient for the MCP Inspector:

  tashri mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "interface to bind with --port")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Search:   searchService,
		Document: documentService,
		Resolver: resolverService,
		Citation: citationService,
	})
	if err != nil {
		return err
	}

	if mcpPort <= 0 {
		return server.Run(cmd.Context())
	}
	return server.RunHTTP(cmd.Context(), mcpAddr(mcpHost, mcpPort))
}

func mcpAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
