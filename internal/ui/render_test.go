package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("# Title\n\nSome body text.\n")
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Some body text")
}

func TestStatusHelpers(t *testing.T) {
	assert.Contains(t, Success("installed"), "installed")
	assert.Contains(t, Error("failed"), "failed")
	assert.Contains(t, Warning("dirty"), "dirty")
	assert.True(t, strings.Contains(Fact("Path", "/tmp/x"), "/tmp/x"))
}
