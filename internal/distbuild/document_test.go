package distbuild

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spawner/internal/skills"
)

func TestComposeDocument_OmitsEmptySections(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "web", "minimal", "skill.yaml"), `name: minimal
description: Bare minimum skill
`)

	lib := skills.NewLibrary(root, nil)
	s, err := lib.Skill("web/minimal")
	require.NoError(t, err)

	doc, err := ComposeDocument(lib, s, nil)
	require.NoError(t, err)

	assert.Contains(t, doc, "# minimal")
	assert.Contains(t, doc, "Bare minimum skill")
	assert.NotContains(t, doc, "## Patterns")
	assert.NotContains(t, doc, "## Sharp Edges")
	assert.NotContains(t, doc, "## Validations")
	assert.NotContains(t, doc, "**Version:**")
}

func TestComposeDocument_UnparsedSectionPlaceholder(t *testing.T) {
	root := t.TempDir()
	// The unquoted colon forces fallback extraction; the patterns section
	// is then detected but not parsed.
	writeFile(t, filepath.Join(root, "web", "api", "skill.yaml"), `name: api
description: API design: principles and practice
patterns:
  - name: versioned endpoints
`)

	lib := skills.NewLibrary(root, nil)
	s, err := lib.Skill("web/api")
	require.NoError(t, err)

	doc, err := ComposeDocument(lib, s, nil)
	require.NoError(t, err)

	assert.Contains(t, doc, "## Patterns")
	assert.Contains(t, doc, unparsedSectionNote)
	assert.NotContains(t, doc, "versioned endpoints")
}

func TestComposeDocument_TitleFallsBackToDirectoryName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "web", "unnamed", "skill.yaml"), `description: No name field here
`)

	lib := skills.NewLibrary(root, nil)
	s, err := lib.Skill("web/unnamed")
	require.NoError(t, err)

	doc, err := ComposeDocument(lib, s, nil)
	require.NoError(t, err)
	assert.Contains(t, doc, "# unnamed")
}

func TestComposeDocument_NoManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "web", "real", "skill.yaml"), "name: real\n")

	lib := skills.NewLibrary(root, nil)
	s := skills.Skill{Category: "web", Name: "ghost", Path: filepath.Join(root, "web", "ghost")}

	_, err := ComposeDocument(lib, s, nil)
	assert.ErrorIs(t, err, skills.ErrNoSkillManifest)
}
