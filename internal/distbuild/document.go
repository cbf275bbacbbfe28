package distbuild

import (
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"

	"spawner/internal/logging"
	"spawner/internal/skills"
)

// unparsedSectionNote is the placeholder rendered for structured manifest
// sections the fallback extractor detected but could not parse. The source
// skill.yaml remains the authoritative copy for those.
const unparsedSectionNote = "_This section exists in the source skill.yaml but could not be parsed; consult the source file._"

// ComposeDocument flattens one skill into a single consolidated Markdown
// document: manifest fields, auxiliary YAML sections, then the free-form
// Markdown fragments with their frontmatter stripped. Sections without data
// are omitted; a document is always produced when a manifest exists.
func ComposeDocument(lib *skills.Library, s skills.Skill, logger *logging.AppLogger) (string, error) {
	meta, degraded, err := skills.LoadMeta(s.Path)
	if err != nil {
		return "", err
	}
	if degraded && logger != nil {
		logger.Warn("Manifest required fallback extraction", "skill", s.Ref())
	}

	aux := loadAux(s.Path, logger)

	var doc strings.Builder

	title := meta.Name
	if title == "" {
		title = s.Name
	}
	fmt.Fprintf(&doc, "# %s\n\n", title)

	if meta.Description != "" {
		doc.WriteString(meta.Description)
		doc.WriteString("\n\n")
	}

	writeFacts(&doc, meta)

	if meta.Identity != "" {
		writeSection(&doc, "Identity", meta.Identity)
	}
	writeList(&doc, "Capability Areas", meta.Owns)
	writeList(&doc, "Triggers", meta.Triggers)
	writeList(&doc, "Provides", meta.Provides)

	writePatterns(&doc, "Patterns", meta.Patterns, sectionUnparsed(meta, "patterns"))
	writePatterns(&doc, "Anti-patterns", meta.AntiPatterns, sectionUnparsed(meta, "anti_patterns"))
	writeHandoffs(&doc, meta.Handoffs, sectionUnparsed(meta, "handoffs"))

	writeSharpEdges(&doc, aux.SharpEdges)
	writeCollaboration(&doc, aux.Collaboration)
	writeValidations(&doc, aux.Validations)

	writeList(&doc, "References", meta.References)
	writeFragments(&doc, lib, s, logger)

	return doc.String(), nil
}

func sectionUnparsed(meta *skills.Meta, name string) bool {
	for _, s := range meta.UnparsedSections {
		if s == name {
			return true
		}
	}
	return false
}

// writeFacts emits the version/tags fact line under the title.
func writeFacts(doc *strings.Builder, meta *skills.Meta) {
	var facts []string
	if meta.Version != "" {
		facts = append(facts, "**Version:** "+meta.Version)
	}
	if len(meta.Tags) > 0 {
		facts = append(facts, "**Tags:** "+strings.Join(meta.Tags, ", "))
	}
	if len(facts) > 0 {
		doc.WriteString(strings.Join(facts, "  \n"))
		doc.WriteString("\n\n")
	}
}

func writeSection(doc *strings.Builder, heading, body string) {
	fmt.Fprintf(doc, "## %s\n\n%s\n\n", heading, strings.TrimSpace(body))
}

func writeList(doc *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(doc, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(doc, "- %s\n", item)
	}
	doc.WriteString("\n")
}

func writePatterns(doc *strings.Builder, heading string, patterns []skills.Pattern, unparsed bool) {
	if len(patterns) == 0 && !unparsed {
		return
	}
	fmt.Fprintf(doc, "## %s\n\n", heading)

	if unparsed {
		doc.WriteString(unparsedSectionNote)
		doc.WriteString("\n\n")
		return
	}

	for _, p := range patterns {
		fmt.Fprintf(doc, "### %s\n\n", p.Name)
		if p.Description != "" {
			doc.WriteString(strings.TrimSpace(p.Description))
			doc.WriteString("\n\n")
		}
		if p.When != "" {
			fmt.Fprintf(doc, "**When:** %s\n\n", p.When)
		}
		if p.Example != "" {
			fmt.Fprintf(doc, "```\n%s\n```\n\n", strings.TrimRight(p.Example, "\n"))
		}
	}
}

func writeHandoffs(doc *strings.Builder, handoffs []skills.Handoff, unparsed bool) {
	if len(handoffs) == 0 && !unparsed {
		return
	}
	doc.WriteString("## Handoffs\n\n")

	if unparsed {
		doc.WriteString(unparsedSectionNote)
		doc.WriteString("\n\n")
		return
	}

	for _, h := range handoffs {
		line := "- **" + h.To + "**"
		if h.When != "" {
			line += " — " + h.When
		}
		if h.Reason != "" {
			line += " (" + h.Reason + ")"
		}
		doc.WriteString(line + "\n")
	}
	doc.WriteString("\n")
}

func writeSharpEdges(doc *strings.Builder, edges []SharpEdge) {
	if len(edges) == 0 {
		return
	}
	doc.WriteString("## Sharp Edges\n\n")

	for _, e := range edges {
		heading := e.Summary
		if heading == "" {
			heading = e.ID
		}
		if e.Severity != "" {
			fmt.Fprintf(doc, "### %s (%s)\n\n", heading, e.Severity)
		} else {
			fmt.Fprintf(doc, "### %s\n\n", heading)
		}
		if e.Situation != "" {
			fmt.Fprintf(doc, "**Situation:** %s\n\n", e.Situation)
		}
		if e.Why != "" {
			fmt.Fprintf(doc, "**Why:** %s\n\n", e.Why)
		}
		if e.Solution != "" {
			fmt.Fprintf(doc, "**Solution:** %s\n\n", e.Solution)
		}
	}
}

func writeCollaboration(doc *strings.Builder, collab Collaboration) {
	if len(collab.WorksWith) == 0 && len(collab.Handoffs) == 0 {
		return
	}
	doc.WriteString("## Collaboration\n\n")

	if len(collab.WorksWith) > 0 {
		doc.WriteString("Works with: " + strings.Join(collab.WorksWith, ", ") + "\n\n")
	}
	for _, h := range collab.Handoffs {
		line := "- **" + h.To + "**"
		if h.When != "" {
			line += " — " + h.When
		}
		doc.WriteString(line + "\n")
	}
	if len(collab.Handoffs) > 0 {
		doc.WriteString("\n")
	}
}

func writeValidations(doc *strings.Builder, validations []Validation) {
	if len(validations) == 0 {
		return
	}
	doc.WriteString("## Validations\n\n")

	for _, v := range validations {
		fmt.Fprintf(doc, "### %s\n\n", v.Name)
		if v.Check != "" {
			fmt.Fprintf(doc, "**Check:** %s\n\n", v.Check)
		}
		if v.Expect != "" {
			fmt.Fprintf(doc, "**Expect:** %s\n\n", v.Expect)
		}
	}
}

// writeFragments appends the skill's free-form Markdown fragments in sorted
// order, stripping any YAML frontmatter each may carry. Unreadable
// fragments warn and are skipped.
func writeFragments(doc *strings.Builder, lib *skills.Library, s skills.Skill, logger *logging.AppLogger) {
	fragments, err := lib.Fragments(s)
	if err != nil {
		if logger != nil {
			logger.Warn("Failed to scan fragments", "skill", s.Ref(), "error", err)
		}
		return
	}

	for _, path := range fragments {
		data, err := os.ReadFile(path)
		if err != nil {
			if logger != nil {
				logger.Warn("Failed to read fragment", "path", path, "error", err)
			}
			continue
		}

		var matter map[string]any
		body, err := frontmatter.Parse(strings.NewReader(string(data)), &matter)
		if err != nil {
			// Malformed frontmatter: keep the fragment as-is
			body = data
		}

		content := strings.TrimSpace(string(body))
		if content == "" {
			continue
		}
		doc.WriteString(content)
		doc.WriteString("\n\n")
	}
}
