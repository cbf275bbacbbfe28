package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-te...", truncate("exactly-ten!", 10))
	assert.Equal(t, "first line", truncate("first line\nsecond line", 72))
}

func TestCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"install", "update", "setup-mcp", "status", "list", "show", "build", "export", "serve", "auth", "version"} {
		assert.True(t, names[want], "command %s not registered", want)
	}
}
