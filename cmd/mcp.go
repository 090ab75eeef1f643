package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/json-mapper/internal/mcp"
)

var mcpMapping string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing field inspection, the mapping document and record transformation as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mappingPath := resolveMappingPath(cfg, mcpMapping)
		store, err := loadStore(mappingPath)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "jsonmapper MCP server started on stdio (mapping=%s)\n", mappingPath)

		srv := mcpserver.NewServer(store)
		return srv.Serve()
	},
}

func init() {
	mcpCmd.Flags().StringVarP(&mcpMapping, "mapping", "m", "", "mapping document to serve")
	rootCmd.AddCommand(mcpCmd)
}
