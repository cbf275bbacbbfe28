package distbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spawner/internal/skills"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// buildTestTree creates a library with one complete deep skill, one skill
// that only strict-parse-fails, and one skill directory with no manifest.
func buildTestTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	deep := filepath.Join(root, "web", "react-state")
	writeFile(t, filepath.Join(deep, "skill.yaml"), `name: react-state
description: Managing state in React applications
version: "1.2"
tags:
  - react
patterns:
  - name: lift state up
    description: Move shared state to the nearest common ancestor.
`)
	writeFile(t, filepath.Join(deep, "sharp-edges.yaml"), `sharp_edges:
  - id: stale-closure
    summary: Stale closures in effect hooks
    severity: high
    solution: List every dependency in the effect's dependency array.
`)
	writeFile(t, filepath.Join(deep, "collaboration.yaml"), `collaboration:
  works_with:
    - web/css-layout
  handoffs:
    - to: web/css-layout
      when: styling questions come up
`)
	writeFile(t, filepath.Join(deep, "validations.yaml"), `validations:
  - name: no setState in render
    check: grep for setState calls outside handlers and effects
    expect: none
`)
	writeFile(t, filepath.Join(deep, "hooks.md"), `---
title: hooks notes
---
# Hook Notes

Prefer useReducer for complex transitions.
`)

	// Unquoted colon in the description defeats strict YAML parsing
	broken := filepath.Join(root, "web", "go-errors")
	writeFile(t, filepath.Join(broken, "skill.yaml"), `name: go-errors
description: Error handling: the practical guide
`)

	// No manifest at all
	require.NoError(t, os.MkdirAll(filepath.Join(root, "web", "empty-skill"), 0o755))

	return root
}

func TestBuild_FullTree(t *testing.T) {
	root := buildTestTree(t)
	outDir := t.TempDir()

	builder := NewBuilder(skills.NewLibrary(root, nil), outDir, nil)
	result, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, 2, result.Built)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	// Skipped skill produced no output file
	_, err = os.Stat(filepath.Join(outDir, "web", "empty-skill.md"))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(outDir, "web", "react-state.md"))
	require.NoError(t, err)
	doc := string(data)

	assert.Contains(t, doc, "# react-state")
	assert.Contains(t, doc, "Managing state in React applications")
	assert.Contains(t, doc, "**Version:** 1.2")
	assert.Contains(t, doc, "## Patterns")
	assert.Contains(t, doc, "lift state up")
	assert.Contains(t, doc, "## Sharp Edges")
	assert.Contains(t, doc, "Stale closures in effect hooks")
	assert.Contains(t, doc, "## Collaboration")
	assert.Contains(t, doc, "## Validations")
	assert.Contains(t, doc, "no setState in render")
	// Fragment included, frontmatter stripped
	assert.Contains(t, doc, "Prefer useReducer for complex transitions.")
	assert.NotContains(t, doc, "title: hooks notes")
}

// A manifest that fails strict parsing but has clean name/description lines
// must still produce a document carrying both.
func TestBuild_FallbackExtractionStillProducesOutput(t *testing.T) {
	root := buildTestTree(t)
	outDir := t.TempDir()

	builder := NewBuilder(skills.NewLibrary(root, nil), outDir, nil)
	_, err := builder.Build()
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "web", "go-errors.md"))
	require.NoError(t, err)
	doc := string(data)

	assert.NotEmpty(t, doc)
	assert.Contains(t, doc, "go-errors")
	assert.Contains(t, doc, "Error handling: the practical guide")
}

func TestBuild_NotInstalled(t *testing.T) {
	lib := skills.NewLibrary(filepath.Join(t.TempDir(), "missing"), nil)
	builder := NewBuilder(lib, t.TempDir(), nil)

	_, err := builder.Build()
	assert.ErrorIs(t, err, skills.ErrNotInstalled)
}

func TestBuild_RegeneratesInFull(t *testing.T) {
	root := buildTestTree(t)
	outDir := t.TempDir()
	builder := NewBuilder(skills.NewLibrary(root, nil), outDir, nil)

	_, err := builder.Build()
	require.NoError(t, err)

	outPath := filepath.Join(outDir, "web", "react-state.md")
	require.NoError(t, os.WriteFile(outPath, []byte("stale"), 0o644))

	_, err = builder.Build()
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(data))
}
