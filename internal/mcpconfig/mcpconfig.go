// Package mcpconfig manages the spawner MCP server entry in host-application
// JSON config files (Claude Desktop, Claude Code).
//
// The config files belong to the user, so everything except the one entry
// this tool owns is treated as an opaque pass-through blob: unrelated
// top-level keys and sibling server entries round-trip as raw JSON and are
// never normalized.
package mcpconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"spawner/internal/logging"
	"spawner/pkg/fileops"
)

// ServerName is the key this tool owns inside the mcpServers object.
const ServerName = "spawner"

// mcpServersKey is the top-level object holding server descriptors.
const mcpServersKey = "mcpServers"

// ServerDescriptor is the client-side MCP server entry written into host
// configs.
type ServerDescriptor struct {
	Command     string   `json:"command"`
	Args        []string `json:"args"`
	Description string   `json:"description,omitempty"`
}

// DefaultDescriptor returns the descriptor for the hosted spawner MCP
// endpoint, reached through the mcp-remote stdio bridge.
func DefaultDescriptor() ServerDescriptor {
	return ServerDescriptor{
		Command:     "npx",
		Args:        []string{"-y", "mcp-remote", "https://mcp.spawner.dev/sse"},
		Description: "Spawner skills: searchable domain expertise for AI assistants",
	}
}

// Setup upserts the spawner server descriptor into the config file at path,
// creating the file (and parent directories) when missing. A file that
// fails to parse as JSON is treated as empty with a warning, matching the
// "user config is never a fatal error" policy.
//
// Setup is idempotent: a second run writes byte-for-byte identical content
// and reports changed=false.
func Setup(path string, logger *logging.AppLogger) (changed bool, err error) {
	doc := readDocument(path, logger)

	servers := make(map[string]json.RawMessage)
	if raw, ok := doc[mcpServersKey]; ok {
		if err := json.Unmarshal(raw, &servers); err != nil {
			if logger != nil {
				logger.Warn("Existing mcpServers entry is not an object, replacing it", "path", path)
			}
			servers = make(map[string]json.RawMessage)
		}
	}

	entry, err := json.Marshal(DefaultDescriptor())
	if err != nil {
		return false, fmt.Errorf("failed to marshal server descriptor: %w", err)
	}

	if existing, ok := servers[ServerName]; ok && jsonEqual(existing, entry) {
		return false, nil
	}

	servers[ServerName] = entry

	serversRaw, err := json.Marshal(servers)
	if err != nil {
		return false, fmt.Errorf("failed to marshal mcpServers: %w", err)
	}
	doc[mcpServersKey] = serversRaw

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to marshal config: %w", err)
	}
	out = append(out, '\n')

	if err := fileops.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := fileops.AtomicWriteFile(path, out, 0o644); err != nil {
		return false, fmt.Errorf("failed to write config %s: %w", path, err)
	}

	if logger != nil {
		logger.Info("Configured MCP server entry", "path", path)
	}
	return true, nil
}

// Configured reports whether the config file at path already carries the
// spawner entry. Missing or unparsable files count as not configured.
func Configured(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}

	raw, ok := doc[mcpServersKey]
	if !ok {
		return false
	}

	var servers map[string]json.RawMessage
	if err := json.Unmarshal(raw, &servers); err != nil {
		return false
	}

	_, ok = servers[ServerName]
	return ok
}

// readDocument loads the config file as a key-to-raw-JSON map. Missing and
// malformed files both yield an empty document; malformed ones additionally
// warn, since proceeding will rewrite the file.
func readDocument(path string, logger *logging.AppLogger) map[string]json.RawMessage {
	doc := make(map[string]json.RawMessage)

	data, err := os.ReadFile(path)
	if err != nil {
		return doc
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		if logger != nil {
			logger.Warn("Config file is not valid JSON, treating as empty", "path", path, "error", err)
		}
		return make(map[string]json.RawMessage)
	}
	return doc
}

// jsonEqual compares two JSON values ignoring whitespace.
func jsonEqual(a, b json.RawMessage) bool {
	var bufA, bufB bytes.Buffer
	if err := json.Compact(&bufA, a); err != nil {
		return false
	}
	if err := json.Compact(&bufB, b); err != nil {
		return false
	}
	return bytes.Equal(bufA.Bytes(), bufB.Bytes())
}
