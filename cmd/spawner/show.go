package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spawner/internal/distbuild"
	"spawner/internal/logging"
	"spawner/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <category>/<skill>",
	Short: "Render a skill's consolidated document in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib := newLibrary(cfg)

		if !lib.Installed() {
			return fmt.Errorf("skills are not installed - run 'spawner install' first")
		}

		s, err := lib.Skill(args[0])
		if err != nil {
			return err
		}

		doc, err := distbuild.ComposeDocument(lib, s, logging.GetDefault())
		if err != nil {
			return err
		}

		fmt.Print(ui.RenderMarkdown(doc))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
