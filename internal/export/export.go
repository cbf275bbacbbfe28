// Package export copies consolidated skill documents into the prompt
// directories of AI assistants, so installed skills can be used by tools
// that read instruction files from disk rather than MCP.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"spawner/internal/distbuild"
	"spawner/internal/logging"
	"spawner/internal/skills"
	"spawner/pkg/fileops"
)

// Supported assistants
const (
	AssistantCopilot   = "copilot"
	AssistantCursor    = "cursor"
	AssistantClaude    = "claude"
	AssistantGeminiCLI = "gemini-cli"
	AssistantOpencode  = "opencode"
)

// assistantPromptDirs maps assistant names to their default prompt file
// locations.
var assistantPromptDirs = map[string]string{
	AssistantCopilot:   "~/.config/Code/User/prompts/",
	AssistantCursor:    "~/.cursor/prompts/",
	AssistantClaude:    "~/.claude/prompts/",
	AssistantGeminiCLI: "~/.gemini/prompts/",
	AssistantOpencode:  "~/.opencode/prompts/",
}

// Assistants returns the supported assistant names sorted for display.
func Assistants() []string {
	names := make([]string, 0, len(assistantPromptDirs))
	for name := range assistantPromptDirs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Destination resolves the target directory for an assistant. A custom
// directory takes precedence over the built-in mapping.
func Destination(assistant, customDir string) (string, error) {
	if customDir != "" {
		return fileops.ExpandPath(customDir), nil
	}
	dir, ok := assistantPromptDirs[assistant]
	if !ok {
		return "", fmt.Errorf("unsupported assistant %q (supported: %v)", assistant, Assistants())
	}
	return fileops.ExpandPath(dir), nil
}

// Options controls one export.
type Options struct {
	// Assistant selects the destination mapping; ignored when Dir is set.
	Assistant string
	// Dir overrides the assistant's default prompt directory.
	Dir string
	// Force overwrites an existing destination file.
	Force bool
}

// Skill composes the consolidated document for ref and writes it into the
// destination directory as <category>-<skill>.md. The written path is
// returned. Without Force an existing destination file is an error.
func Skill(lib *skills.Library, ref string, opts Options, logger *logging.AppLogger) (string, error) {
	s, err := lib.Skill(ref)
	if err != nil {
		return "", err
	}

	doc, err := distbuild.ComposeDocument(lib, s, logger)
	if err != nil {
		return "", err
	}

	destDir, err := Destination(opts.Assistant, opts.Dir)
	if err != nil {
		return "", err
	}
	if err := fileops.EnsureDirectoryExists(destDir); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}

	// Category-qualified name avoids collisions between categories
	destPath := filepath.Join(destDir, s.Category+"-"+s.Name+".md")
	if _, err := os.Stat(destPath); err == nil && !opts.Force {
		return "", fmt.Errorf("destination file already exists: %s (use --force to overwrite)", destPath)
	}

	if err := fileops.AtomicWriteFile(destPath, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", destPath, err)
	}

	if logger != nil {
		logger.Info("Exported skill", "skill", s.Ref(), "dest", destPath)
	}
	return destPath, nil
}
