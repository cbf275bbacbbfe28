package mcpconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Claude", "claude_desktop_config.json")

	changed, err := Setup(path, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, Configured(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]map[string]ServerDescriptor
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, DefaultDescriptor(), doc["mcpServers"]["spawner"])
}

func TestSetup_SecondRunIsByteStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	changed, err := Setup(path, nil)
	require.NoError(t, err)
	require.True(t, changed)

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	changed, err = Setup(path, nil)
	require.NoError(t, err)
	assert.False(t, changed)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSetup_PreservesOtherServers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	existing := `{"mcpServers": {"other": {"command": "other-bin", "args": ["--x"], "env": {"KEY": "v"}}}}`
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	changed, err := Setup(path, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	var other map[string]any
	require.NoError(t, json.Unmarshal(doc["mcpServers"]["other"], &other))
	assert.Equal(t, "other-bin", other["command"])
	assert.Equal(t, map[string]any{"KEY": "v"}, other["env"])

	assert.Contains(t, doc["mcpServers"], "spawner")
}

func TestSetup_PreservesUnrelatedTopLevelKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude.json")
	existing := `{"numStartups": 42, "projects": {"/home/user/app": {"history": ["x"]}}}`
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	_, err := Setup(path, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, float64(42), doc["numStartups"])
	assert.Contains(t, doc["projects"], "/home/user/app")
	assert.Contains(t, doc, "mcpServers")
}

func TestSetup_ToleratesInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	changed, err := Setup(path, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, Configured(path))
}

func TestConfigured(t *testing.T) {
	dir := t.TempDir()

	assert.False(t, Configured(filepath.Join(dir, "missing.json")))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	assert.False(t, Configured(bad))

	unrelated := filepath.Join(dir, "unrelated.json")
	require.NoError(t, os.WriteFile(unrelated, []byte(`{"mcpServers": {"other": {}}}`), 0o644))
	assert.False(t, Configured(unrelated))
}

func TestDetectLocationsFor(t *testing.T) {
	locations := detectLocationsFor("linux")
	require.NotEmpty(t, locations)

	hosts := make([]string, 0, len(locations))
	for _, loc := range locations {
		hosts = append(hosts, loc.Host)
		assert.NotEmpty(t, loc.Path)
	}
	assert.Contains(t, hosts, HostClaudeCode)
	assert.Contains(t, hosts, HostClaudeDesktop)

	for _, loc := range detectLocationsFor("darwin") {
		if loc.Host == HostClaudeDesktop {
			assert.Contains(t, loc.Path, "Application Support")
		}
	}
}
