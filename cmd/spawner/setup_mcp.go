package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spawner/internal/logging"
	"spawner/internal/mcpconfig"
	"spawner/internal/ui"
)

var setupMCPCmd = &cobra.Command{
	Use:     "setup-mcp",
	Aliases: []string{"mcp"},
	Short:   "Configure the spawner MCP server in host applications",
	Long: `Write the spawner MCP server entry into every detected host-application
config file (Claude Desktop, Claude Code). Existing entries and unrelated
configuration are preserved; re-running is a no-op.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetupMCP()
	},
}

// runSetupMCP upserts the server descriptor into every detected location.
// Shared with 'install --mcp'.
func runSetupMCP() error {
	logger := logging.GetDefault()

	locations := mcpconfig.DetectLocations()
	if len(locations) == 0 {
		return fmt.Errorf("no MCP config locations detected on this platform")
	}

	var failures int
	for _, loc := range locations {
		changed, err := mcpconfig.Setup(loc.Path, logger)
		switch {
		case err != nil:
			fmt.Println(ui.Error(fmt.Sprintf("%s: %v", loc.Host, err)))
			failures++
		case changed:
			fmt.Println(ui.Success(fmt.Sprintf("%s configured (%s)", loc.Host, loc.Path)))
		default:
			fmt.Printf("%s already configured (%s)\n", loc.Host, loc.Path)
		}
	}

	if failures == len(locations) {
		return fmt.Errorf("failed to configure any MCP location")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(setupMCPCmd)
}
