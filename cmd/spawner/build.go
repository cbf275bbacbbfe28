package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spawner/internal/distbuild"
	"spawner/internal/logging"
	"spawner/internal/ui"
)

var buildOutDir string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Flatten installed skills into consolidated Markdown documents",
	Long: `Walk the installed skill library and write one consolidated Markdown
document per skill into the output directory, mirroring the category
layout. Output is regenerated in full on every run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib := newLibrary(cfg)

		if !lib.Installed() {
			return fmt.Errorf("skills are not installed - run 'spawner install' first")
		}

		builder := distbuild.NewBuilder(lib, buildOutDir, logging.GetDefault())
		result, err := builder.Build()
		if err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("Built %d skill documents in %s", result.Built, buildOutDir)))
		if result.Skipped > 0 {
			fmt.Println(ui.Warning(fmt.Sprintf("Skipped %d skills without a manifest", result.Skipped)))
		}
		if result.Failed > 0 {
			return fmt.Errorf("%d skills failed to build", result.Failed)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildOutDir, "out", "dist", "output directory for consolidated documents")
	rootCmd.AddCommand(buildCmd)
}
