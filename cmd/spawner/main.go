package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spawner/internal/config"
	"spawner/internal/logging"
	"spawner/internal/skills"
	"spawner/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "spawner",
	Short: "Install and manage the spawner skills library",
	Long: `Spawner distributes a library of skill documents (YAML/Markdown domain
expertise for AI assistants). The CLI clones the skills repository into a
local directory, keeps it updated, configures the spawner MCP server entry
in host applications, and renders the installed content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		os.Exit(1)
	}
}

// loadConfig loads the user configuration, falling back to defaults when no
// config file exists.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newLibrary builds the skill library view for the configured install dir.
func newLibrary(cfg *config.Config) *skills.Library {
	return skills.NewLibrary(cfg.ExpandedInstallDir(), logging.GetDefault())
}
