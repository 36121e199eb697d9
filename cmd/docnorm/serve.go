package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func serveMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve-mcp",
		Short: "Serve the extraction tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pipe, logger, err := a.pipeline()
			if err != nil {
				return err
			}

			srv := mcp.NewServer(&mcp.Implementation{
				Name:    "docnorm",
				Version: version,
			}, nil)
			pipe.RegisterMCP(srv)

			logger.Info("MCP stdio starting", "ocr", pipe.OCRAvailable())
			return srv.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
