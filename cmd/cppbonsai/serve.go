package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/cppbonsai/cppbonsai/internal/tools"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the tree store over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(".", nil)
			if err != nil {
				return err
			}
			defer s.Close()

			srv := tools.NewServer(s)
			return srv.MCPServer().Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
