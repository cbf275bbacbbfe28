package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, dir, manifest string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(manifest), 0o644))
	return dir
}

func TestLoadMeta_StrictParse(t *testing.T) {
	dir := writeSkill(t, filepath.Join(t.TempDir(), "react-state"), `name: react-state
description: Managing state in React applications
version: "1.2"
identity: You are a React state expert.
tags:
  - react
  - frontend
owns:
  - component state architecture
patterns:
  - name: lift state up
    description: Move shared state to the nearest common ancestor.
anti_patterns:
  - name: prop drilling
handoffs:
  - to: web/css-layout
    when: styling questions come up
`)

	meta, degraded, err := LoadMeta(dir)
	require.NoError(t, err)
	assert.False(t, degraded)

	assert.Equal(t, "react-state", meta.Name)
	assert.Equal(t, "1.2", meta.Version)
	assert.Equal(t, []string{"react", "frontend"}, meta.Tags)
	require.Len(t, meta.Patterns, 1)
	assert.Equal(t, "lift state up", meta.Patterns[0].Name)
	require.Len(t, meta.Handoffs, 1)
	assert.Equal(t, "web/css-layout", meta.Handoffs[0].To)
	assert.Empty(t, meta.UnparsedSections)
}

func TestLoadMeta_FallsBackOnInvalidYAML(t *testing.T) {
	// The unquoted colon in the description breaks strict parsing
	dir := writeSkill(t, filepath.Join(t.TempDir(), "go-errors"), `name: go-errors
description: Error handling: the practical guide
tags:
  - go
`)

	meta, degraded, err := LoadMeta(dir)
	require.NoError(t, err)
	assert.True(t, degraded)

	assert.Equal(t, "go-errors", meta.Name)
	assert.Equal(t, "Error handling: the practical guide", meta.Description)
	assert.Equal(t, []string{"go"}, meta.Tags)
}

func TestLoadMeta_MissingManifest(t *testing.T) {
	dir := t.TempDir()

	_, _, err := LoadMeta(dir)
	assert.ErrorIs(t, err, ErrNoSkillManifest)
}

func TestSkillRef(t *testing.T) {
	s := Skill{Category: "web", Name: "react-state"}
	assert.Equal(t, "web/react-state", s.Ref())
}
