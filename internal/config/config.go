package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"spawner/internal/logging"
	"spawner/pkg/fileops"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "spawner" // application name used for config directory

// Defaults applied when no config file exists. The CLI is usable with zero
// setup; the config file only exists to override these.
const (
	DefaultRepoURL    = "https://github.com/spawner-skills/skills.git"
	DefaultInstallDir = "~/.spawner/skills"
)

// Config holds user configuration for the spawner CLI.
type Config struct {
	// InstallDir is the directory where the skills repository is cloned.
	InstallDir string `yaml:"install_dir"`
	// RepoURL is the git repository the skill library is installed from.
	RepoURL string `yaml:"repo_url"`
	// Branch pins a specific branch; empty uses the remote's default.
	Branch   string `yaml:"branch,omitempty"`
	Version  string `yaml:"version"`   // Track config version
	InitTime int64  `yaml:"init_time"` // Unix timestamp of first setup
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// Load loads the config from the standard location.
// When no config file exists the defaults are returned, so every command
// works without prior setup.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	logging.Debug("Loading config from", "path", configPath)
	if !exists {
		cfg := DefaultConfig()
		return &cfg, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Fill gaps so a hand-edited partial config still behaves
	defaults := DefaultConfig()
	if cfg.InstallDir == "" {
		cfg.InstallDir = defaults.InstallDir
	}
	if cfg.RepoURL == "" {
		cfg.RepoURL = defaults.RepoURL
	}

	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		InstallDir: DefaultInstallDir,
		RepoURL:    DefaultRepoURL,
		Version:    "1.0",
		InitTime:   0, // Will be set during first save
	}
}

// ExpandedInstallDir returns the install dir with "~/" expanded.
func (c *Config) ExpandedInstallDir() string {
	return fileops.ExpandPath(c.InstallDir)
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600) for security
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
