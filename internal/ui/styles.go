// Package ui holds the CLI's terminal output styling: Lip Gloss styles for
// headers and status accents, and the glamour Markdown renderer used by
// skill display.
package ui

import "github.com/charmbracelet/lipgloss"

// Centralized Lip Gloss styles for spawner's CLI output.
// All colors are specified using hex codes.

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff5fd2"))

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff005f")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff5f")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaf00")).
			Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5fd7ff"))

	FaintStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#a8a8a8"))
)

// Title renders a section title.
func Title(text string) string {
	return TitleStyle.Render(text)
}

// Success renders a success message with a check mark.
func Success(text string) string {
	return SuccessStyle.Render("✓ " + text)
}

// Error renders an error message with a cross mark.
func Error(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

// Warning renders a warning message.
func Warning(text string) string {
	return WarningStyle.Render("! " + text)
}
