package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"spawner/internal/logging"
	"spawner/internal/repository"
	"spawner/internal/ui"
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"u", "upgrade"},
	Short:   "Update the installed skills library",
	Long: `Pull the latest skills from the repository. Fails when skills are not
installed yet; local changes in the install directory cause the update to
be skipped rather than overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		source := repository.NewGitSource(cfg.RepoURL, cfg.Branch, cfg.InstallDir)
		result, err := source.Pull(logging.GetDefault())
		if err != nil {
			if errors.Is(err, repository.ErrNotInstalled) {
				return fmt.Errorf("skills are not installed - run 'spawner install' first")
			}
			return err
		}

		switch result.Status {
		case repository.UpdateStatusSuccess:
			fmt.Println(ui.Success(result.Message()))
			printSkillCount(cfg)
		case repository.UpdateStatusSkipped:
			fmt.Println(ui.Warning(result.Message()))
		default:
			fmt.Println(result.Message())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
