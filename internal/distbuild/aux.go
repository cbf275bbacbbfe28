package distbuild

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"spawner/internal/logging"
	"spawner/internal/skills"
)

// SharpEdge is one entry of a skill's sharp-edges.yaml: a known pitfall and
// how to get out of it.
type SharpEdge struct {
	ID        string `yaml:"id,omitempty"`
	Summary   string `yaml:"summary"`
	Severity  string `yaml:"severity,omitempty"`
	Situation string `yaml:"situation,omitempty"`
	Why       string `yaml:"why,omitempty"`
	Solution  string `yaml:"solution,omitempty"`
}

type sharpEdgesFile struct {
	SharpEdges []SharpEdge `yaml:"sharp_edges"`
}

// Collaboration describes how a skill works with its neighbors.
type Collaboration struct {
	WorksWith []string         `yaml:"works_with,omitempty"`
	Handoffs  []skills.Handoff `yaml:"handoffs,omitempty"`
}

type collaborationFile struct {
	Collaboration Collaboration `yaml:"collaboration"`
}

// Validation is one entry of validations.yaml: a concrete check a reviewer
// can run against work produced with the skill.
type Validation struct {
	Name   string `yaml:"name"`
	Check  string `yaml:"check,omitempty"`
	Expect string `yaml:"expect,omitempty"`
}

type validationsFile struct {
	Validations []Validation `yaml:"validations"`
}

// auxData aggregates the optional auxiliary files of a deep skill. Each
// file is independent: a missing or unparsable one leaves its section empty
// and never fails the skill.
type auxData struct {
	SharpEdges    []SharpEdge
	Collaboration Collaboration
	Validations   []Validation
}

// loadAux reads the optional auxiliary YAML files of a skill directory.
func loadAux(skillDir string, logger *logging.AppLogger) auxData {
	var aux auxData

	var edges sharpEdgesFile
	if loadYAML(filepath.Join(skillDir, skills.SharpEdgesFileName), &edges, logger) {
		aux.SharpEdges = edges.SharpEdges
	}

	var collab collaborationFile
	if loadYAML(filepath.Join(skillDir, skills.CollaborationFileName), &collab, logger) {
		aux.Collaboration = collab.Collaboration
	}

	var vals validationsFile
	if loadYAML(filepath.Join(skillDir, skills.ValidationsFileName), &vals, logger) {
		aux.Validations = vals.Validations
	}

	return aux
}

// loadYAML parses one optional YAML file into out. Missing files are
// silent; parse failures warn. Either way the section is simply omitted.
func loadYAML(path string, out any, logger *logging.AppLogger) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		if logger != nil {
			logger.Warn("Skipping unparsable auxiliary file", "path", path, "error", err)
		}
		return false
	}
	return true
}
