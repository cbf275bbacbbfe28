package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spawner/internal/export"
	"spawner/internal/logging"
	"spawner/internal/ui"
)

var (
	exportAssistant string
	exportDir       string
	exportForce     bool
)

var exportCmd = &cobra.Command{
	Use:   "export <category>/<skill>",
	Short: "Export a skill document into an assistant's prompt directory",
	Long: fmt.Sprintf(`Compose a skill's consolidated document and copy it into the prompt
directory of an AI assistant. Supported assistants: %v. Use --dir to write
somewhere else entirely.`, export.Assistants()),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportAssistant == "" && exportDir == "" {
			return fmt.Errorf("either --assistant or --dir is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib := newLibrary(cfg)

		if !lib.Installed() {
			return fmt.Errorf("skills are not installed - run 'spawner install' first")
		}

		opts := export.Options{
			Assistant: exportAssistant,
			Dir:       exportDir,
			Force:     exportForce,
		}
		path, err := export.Skill(lib, args[0], opts, logging.GetDefault())
		if err != nil {
			return err
		}

		fmt.Println(ui.Success("Exported to " + path))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportAssistant, "assistant", "", "target assistant (claude, cursor, copilot, gemini-cli, opencode)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "export to this directory instead of the assistant's default")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "overwrite an existing exported file")
	rootCmd.AddCommand(exportCmd)
}
