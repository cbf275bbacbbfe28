package skills

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the manifest every skill directory must contain.
const ManifestFileName = "skill.yaml"

// Auxiliary files a deep skill may carry next to its manifest.
const (
	SharpEdgesFileName    = "sharp-edges.yaml"
	CollaborationFileName = "collaboration.yaml"
	ValidationsFileName   = "validations.yaml"
)

// Pattern describes one recommended (or discouraged) practice inside a
// skill manifest.
type Pattern struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	When        string `yaml:"when,omitempty"`
	Example     string `yaml:"example,omitempty"`
}

// Handoff describes when a skill defers to another skill.
type Handoff struct {
	To     string `yaml:"to"`
	When   string `yaml:"when,omitempty"`
	Reason string `yaml:"reason,omitempty"`
}

// Meta is the typed view of a skill.yaml manifest.
//
// When strict YAML parsing fails (manifests sometimes embed code-block
// literals that break parsers), Meta is produced by the fallback extractor
// instead; in that case the structured sections below are empty and their
// presence in the source is reported via UnparsedSections.
type Meta struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Version     string   `yaml:"version,omitempty"`
	Identity    string   `yaml:"identity,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Owns        []string `yaml:"owns,omitempty"`
	Triggers    []string `yaml:"triggers,omitempty"`
	Provides    []string `yaml:"provides,omitempty"`
	References  []string `yaml:"references,omitempty"`

	Patterns     []Pattern `yaml:"patterns,omitempty"`
	AntiPatterns []Pattern `yaml:"anti_patterns,omitempty"`
	Handoffs     []Handoff `yaml:"handoffs,omitempty"`

	// UnparsedSections lists structured sections the fallback extractor
	// detected but could not parse. Empty after a strict parse.
	UnparsedSections []string `yaml:"-"`
}

// Skill identifies one installed skill directory.
type Skill struct {
	Category string
	Name     string
	Path     string

	// Description is loaded best-effort for listings; empty when the
	// manifest could not be read at all.
	Description string
}

// Ref returns the category-qualified skill reference, e.g. "web/react-state".
func (s Skill) Ref() string {
	return s.Category + "/" + s.Name
}

// LoadMeta reads and parses the skill.yaml in dir.
//
// The strict yaml.v3 parse is attempted first; when it fails the fallback
// extractor scrapes what it can and the returned degraded flag is true.
// A missing manifest returns ErrNoSkillManifest.
func LoadMeta(dir string) (*Meta, bool, error) {
	manifestPath := filepath.Join(dir, ManifestFileName)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, fmt.Errorf("%w: %s", ErrNoSkillManifest, dir)
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	var meta Meta
	if err := yaml.Unmarshal(data, &meta); err == nil {
		return &meta, false, nil
	}

	// Manifests with embedded code-block literals routinely break strict
	// parsing; scrape the simple fields instead of failing the skill.
	return ExtractMeta(data), true, nil
}
