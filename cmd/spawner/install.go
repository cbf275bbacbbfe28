package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"spawner/internal/config"
	"spawner/internal/logging"
	"spawner/internal/repository"
	"spawner/internal/ui"
)

var installMCP bool

var installCmd = &cobra.Command{
	Use:     "install",
	Aliases: []string{"i"},
	Short:   "Install the skills library",
	Long: `Clone the skills repository into the configured install directory.
Running install when skills are already present is a no-op.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := logging.GetDefault()

		source := repository.NewGitSource(cfg.RepoURL, cfg.Branch, cfg.InstallDir)
		switch err := source.Clone(logger); {
		case err == nil:
			fmt.Println(ui.Success("Skills installed to " + cfg.ExpandedInstallDir()))
			printSkillCount(cfg)
		case errors.Is(err, repository.ErrAlreadyInstalled):
			fmt.Println("Skills are already installed at " + cfg.ExpandedInstallDir())
		default:
			return err
		}

		if installMCP {
			fmt.Println()
			return runSetupMCP()
		}
		return nil
	},
}

func printSkillCount(cfg *config.Config) {
	if count, err := newLibrary(cfg).Count(); err == nil {
		fmt.Println(ui.Fact("Skills", fmt.Sprintf("%d", count)))
	}
}

func init() {
	installCmd.Flags().BoolVar(&installMCP, "mcp", false, "also configure the MCP server entry after installing")
	rootCmd.AddCommand(installCmd)
}
