package mcpconfig

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// Host names used in CLI output.
const (
	HostClaudeDesktop = "Claude Desktop"
	HostClaudeCode    = "Claude Code"
)

// HostConfig identifies one host application's MCP config file location.
type HostConfig struct {
	Host string
	Path string
}

// DetectLocations returns the MCP config file locations for the known host
// applications on the current platform. The files may or may not exist yet;
// Setup creates missing ones.
func DetectLocations() []HostConfig {
	return detectLocationsFor(runtime.GOOS)
}

func detectLocationsFor(goos string) []HostConfig {
	var locations []HostConfig

	if path := claudeDesktopPath(goos); path != "" {
		locations = append(locations, HostConfig{Host: HostClaudeDesktop, Path: path})
	}

	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, HostConfig{
			Host: HostClaudeCode,
			Path: filepath.Join(home, ".claude.json"),
		})
	}

	return locations
}

// claudeDesktopPath returns the Claude Desktop config path for the given
// platform, or "" when it cannot be determined.
func claudeDesktopPath(goos string) string {
	switch goos {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return ""
		}
		return filepath.Join(appData, "Claude", "claude_desktop_config.json")
	default:
		return filepath.Join(xdg.ConfigHome, "Claude", "claude_desktop_config.json")
	}
}
