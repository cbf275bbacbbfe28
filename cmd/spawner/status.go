package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spawner/internal/mcpconfig"
	"spawner/internal/repository"
	"spawner/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"s"},
	Short:   "Show installation and MCP configuration status",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Println(ui.Title("Spawner status"))
		fmt.Println(ui.Fact("Install path", cfg.ExpandedInstallDir()))
		fmt.Println(ui.Fact("Repository", cfg.RepoURL))

		lib := newLibrary(cfg)
		if !lib.Installed() {
			fmt.Println(ui.Warning("Skills are not installed - run 'spawner install'"))
		} else {
			if count, err := lib.Count(); err == nil {
				categories, _ := lib.Categories()
				fmt.Println(ui.Fact("Skills", fmt.Sprintf("%d in %d categories", count, len(categories))))
			}

			if info, err := repository.Describe(cfg.ExpandedInstallDir()); err == nil {
				fmt.Println(ui.Fact("Branch", info.Branch))
				commit := fmt.Sprintf("%s %s (%s)", info.CommitHash, info.CommitSummary, info.CommitTime.Format("2006-01-02"))
				fmt.Println(ui.Fact("Last commit", commit))
				if info.Dirty {
					fmt.Println(ui.Warning("Install directory has local changes"))
				}
			}
		}

		fmt.Println()
		fmt.Println(ui.Title("MCP configuration"))
		for _, loc := range mcpconfig.DetectLocations() {
			if mcpconfig.Configured(loc.Path) {
				fmt.Println(ui.Success(loc.Host + " configured"))
			} else {
				fmt.Printf("%s not configured (run 'spawner setup-mcp')\n", loc.Host)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
