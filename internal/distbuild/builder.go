// Package distbuild flattens deep multi-file skills (skill.yaml plus
// auxiliary YAML and Markdown fragments) into single consolidated Markdown
// documents for marketplace display. Output is derived and disposable:
// every run regenerates documents in full, nothing is patched in place.
package distbuild

import (
	"errors"
	"fmt"
	"path/filepath"

	"spawner/internal/logging"
	"spawner/internal/skills"
	"spawner/pkg/fileops"
)

// Builder walks the skill library and writes one consolidated document per
// skill into the output directory, mirroring the category layout.
type Builder struct {
	lib    *skills.Library
	outDir string
	logger *logging.AppLogger
}

// Result summarizes a build run for CLI reporting.
type Result struct {
	Built   int
	Skipped int
	Failed  int
}

// NewBuilder creates a builder writing to outDir.
func NewBuilder(lib *skills.Library, outDir string, logger *logging.AppLogger) *Builder {
	return &Builder{
		lib:    lib,
		outDir: fileops.ExpandPath(outDir),
		logger: logger,
	}
}

// Build processes every skill in the library.
//
// Per-skill failure policy: a skill directory without a manifest is skipped
// with a warning and produces no output file; any other per-skill failure
// is counted but never stops the run. The returned error covers only
// library-level problems (missing installation, unreadable root).
func (b *Builder) Build() (Result, error) {
	var result Result

	all, err := b.lib.All()
	if err != nil {
		return result, err
	}

	for _, categorySkills := range all {
		for _, s := range categorySkills {
			switch err := b.buildSkill(s); {
			case err == nil:
				result.Built++
			case errors.Is(err, skills.ErrNoSkillManifest):
				if b.logger != nil {
					b.logger.Warn("Skipping skill without manifest", "skill", s.Ref())
				}
				result.Skipped++
			default:
				if b.logger != nil {
					b.logger.Error("Failed to build skill", "skill", s.Ref(), "error", err)
				}
				result.Failed++
			}
		}
	}

	if b.logger != nil {
		b.logger.Info("Dist build finished",
			"built", result.Built,
			"skipped", result.Skipped,
			"failed", result.Failed)
	}
	return result, nil
}

// buildSkill composes and writes one skill's consolidated document to
// <out>/<category>/<skill>.md.
func (b *Builder) buildSkill(s skills.Skill) error {
	doc, err := ComposeDocument(b.lib, s, b.logger)
	if err != nil {
		return err
	}

	outPath := filepath.Join(b.outDir, s.Category, s.Name+".md")
	if err := fileops.EnsureDirectoryExists(filepath.Dir(outPath)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := fileops.AtomicWriteFile(outPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}
