package main

import (
	"github.com/spf13/cobra"

	"spawner/internal/logging"
	"spawner/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the spawner MCP server over stdio",
	Long: `Serve the installed skill library to MCP clients over stdio. Host
applications launch this command themselves; it is not meant for
interactive use.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return mcp.NewServer(cfg, logging.GetDefault()).Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
