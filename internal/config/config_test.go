package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultInstallDir, cfg.InstallDir)
	assert.Equal(t, DefaultRepoURL, cfg.RepoURL)
	assert.Empty(t, cfg.Branch)
	assert.Equal(t, "1.0", cfg.Version)
	assert.Zero(t, cfg.InitTime)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Config{
		InstallDir: "/tmp/spawner-skills",
		RepoURL:    "https://github.com/example/skills.git",
		Branch:     "main",
		Version:    "1.0",
	}

	require.NoError(t, cfg.SaveTo(path))

	// First save stamps init_time
	assert.NotZero(t, cfg.InitTime)

	// Config files are written with restrictive permissions
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.InstallDir, loaded.InstallDir)
	assert.Equal(t, cfg.RepoURL, loaded.RepoURL)
	assert.Equal(t, cfg.Branch, loaded.Branch)
	assert.Equal(t, cfg.InitTime, loaded.InitTime)
}

func TestLoadFrom_PartialConfigGetsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte("branch: dev\n"), 0o600))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "dev", loaded.Branch)
	assert.Equal(t, DefaultInstallDir, loaded.InstallDir)
	assert.Equal(t, DefaultRepoURL, loaded.RepoURL)
}

func TestLoadFrom_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte("install_dir: [unclosed\n"), 0o600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestLoadFrom_Missing(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_NoConfigReturnsDefaults(t *testing.T) {
	// Point XDG at an empty directory so no real config is picked up
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	defer xdg.Reload()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultRepoURL, cfg.RepoURL)
}

func TestExpandedInstallDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := Config{InstallDir: "~/.spawner/skills"}
	assert.Equal(t, filepath.Join(home, ".spawner", "skills"), cfg.ExpandedInstallDir())

	cfg.InstallDir = "/opt/skills"
	assert.Equal(t, "/opt/skills", cfg.ExpandedInstallDir())
}
