package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// defaultWrapWidth keeps rendered skill documents readable in wide terminals.
const defaultWrapWidth = 100

// RenderMarkdown renders a Markdown document for terminal display using
// glamour's automatic light/dark styling. The raw document is returned
// unchanged when a renderer cannot be constructed (e.g. no TTY detection),
// so callers always have something to print.
func RenderMarkdown(markdown string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(defaultWrapWidth),
	)
	if err != nil {
		return markdown
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

// Fact formats a labeled value line for status-style output.
func Fact(label, value string) string {
	return fmt.Sprintf("%s %s", FaintStyle.Render(label+":"), value)
}
