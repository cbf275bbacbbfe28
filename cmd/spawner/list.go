package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spawner/internal/skills"
	"spawner/internal/ui"
)

// descriptionLimit truncates listed skill descriptions to one line.
const descriptionLimit = 72

var listAll bool

var listCmd = &cobra.Command{
	Use:     "list [category]",
	Aliases: []string{"ls", "l"},
	Short:   "List installed categories and skills",
	Long: `Without arguments, list the installed categories. With a category name,
list that category's skills. With --all, list every skill grouped by
category.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib := newLibrary(cfg)

		if !lib.Installed() {
			return fmt.Errorf("skills are not installed - run 'spawner install' first")
		}

		switch {
		case len(args) == 1:
			return listCategory(lib, args[0])
		case listAll:
			return listEverything(lib)
		default:
			return listCategories(lib)
		}
	},
}

func listCategories(lib *skills.Library) error {
	categories, err := lib.Categories()
	if err != nil {
		return err
	}

	fmt.Println(ui.Title("Categories"))
	for _, category := range categories {
		skillsInCategory, err := lib.Skills(category)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%d skills)\n", category, len(skillsInCategory))
	}
	fmt.Println()
	fmt.Println(ui.FaintStyle.Render("Use 'spawner list <category>' to see skills, or 'spawner list --all'"))
	return nil
}

func listCategory(lib *skills.Library, category string) error {
	categorySkills, err := lib.Skills(category)
	if err != nil {
		return err
	}

	fmt.Println(ui.Title(category))
	printSkills(categorySkills)
	return nil
}

func listEverything(lib *skills.Library) error {
	categories, err := lib.Categories()
	if err != nil {
		return err
	}

	for _, category := range categories {
		categorySkills, err := lib.Skills(category)
		if err != nil {
			return err
		}
		fmt.Println(ui.Title(category))
		printSkills(categorySkills)
		fmt.Println()
	}
	return nil
}

func printSkills(list []skills.Skill) {
	for _, s := range list {
		if s.Description != "" {
			fmt.Printf("  %s - %s\n", s.Name, truncate(s.Description, descriptionLimit))
		} else {
			fmt.Printf("  %s\n", s.Name)
		}
	}
}

// truncate cuts s to max runes and appends an ellipsis. Multi-line
// descriptions keep only their first line.
func truncate(s string, max int) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "list every skill grouped by category")
	rootCmd.AddCommand(listCmd)
}
