package skills

import (
	"regexp"
	"strings"
)

// The fallback extractor scrapes fields out of a skill.yaml that the strict
// parser rejected. It is best-effort by nature: simple scalars, the
// description block, and flat lists are recovered; nested structured
// sections are only detected and reported as unparsed. Fields the text does
// not yield stay absent rather than zeroed.

var (
	// A key at column zero. Nested keys are indented and never match.
	topLevelKeyRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_-]*):[ \t]*(.*)$`)

	// A "- item" list entry, indented or not.
	listItemRe = regexp.MustCompile(`^[ \t]*-[ \t]*(.*?)[ \t]*$`)
)

// fallbackListFields are the flat list fields the extractor recovers.
var fallbackListFields = map[string]bool{
	"tags":       true,
	"owns":       true,
	"triggers":   true,
	"provides":   true,
	"references": true,
}

// fallbackNestedSections are structured sections too ambiguous to scrape;
// their presence is recorded in Meta.UnparsedSections instead.
var fallbackNestedSections = map[string]bool{
	"patterns":      true,
	"anti_patterns": true,
	"handoffs":      true,
}

// ExtractMeta scrapes a Meta from manifest text that failed strict YAML
// parsing. It never fails; an unrecognizable input yields an empty Meta.
func ExtractMeta(data []byte) *Meta {
	meta := &Meta{}
	lines := strings.Split(string(data), "\n")

	for i := 0; i < len(lines); i++ {
		m := topLevelKeyRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		key, value := m[1], strings.TrimSpace(m[2])
		value = stripTrailingComment(value)

		switch {
		case key == "name":
			meta.Name = unquoteScalar(value)
		case key == "version":
			meta.Version = unquoteScalar(value)
		case key == "identity":
			meta.Identity, i = scalarOrBlock(lines, i, value)
		case key == "description":
			meta.Description, i = scalarOrBlock(lines, i, value)
		case fallbackListFields[key]:
			var items []string
			if strings.HasPrefix(value, "[") {
				items = parseFlowList(value)
			} else {
				var next int
				items, next = collectListItems(lines, i+1)
				i = next - 1
			}
			meta.setList(key, items)
		case fallbackNestedSections[key]:
			meta.UnparsedSections = append(meta.UnparsedSections, key)
		}
	}

	return meta
}

func (m *Meta) setList(key string, items []string) {
	switch key {
	case "tags":
		m.Tags = items
	case "owns":
		m.Owns = items
	case "triggers":
		m.Triggers = items
	case "provides":
		m.Provides = items
	case "references":
		m.References = items
	}
}

// scalarOrBlock returns the value of a key that may be a single-line scalar
// or a block scalar ("|" / ">"). The returned index points at the last line
// consumed.
func scalarOrBlock(lines []string, i int, value string) (string, int) {
	if value == "" || isBlockScalarIndicator(value) {
		block, next := collectBlock(lines, i+1)
		return block, next - 1
	}
	return unquoteScalar(value), i
}

func isBlockScalarIndicator(value string) bool {
	switch value {
	case "|", ">", "|-", ">-", "|+", ">+":
		return true
	}
	return false
}

// collectBlock gathers the indented lines following a block-scalar
// indicator until the next top-level key, dedents them by the minimum
// indentation, and returns the joined text plus the index of the first line
// not consumed.
func collectBlock(lines []string, start int) (string, int) {
	var block []string
	i := start
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			block = append(block, "")
			continue
		}
		if topLevelKeyRe.MatchString(line) {
			break
		}
		block = append(block, line)
	}

	// Trim trailing blank lines
	for len(block) > 0 && block[len(block)-1] == "" {
		block = block[:len(block)-1]
	}
	if len(block) == 0 {
		return "", i
	}

	indent := -1
	for _, line := range block {
		if line == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent == -1 || n < indent {
			indent = n
		}
	}

	for j, line := range block {
		if len(line) >= indent {
			block[j] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(block, "\n")), i
}

// collectListItems gathers "- item" entries following a list key until the
// next top-level key. Indented continuation lines inside an item are
// ignored; the extractor only needs the item heads.
func collectListItems(lines []string, start int) ([]string, int) {
	var items []string
	i := start
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if topLevelKeyRe.MatchString(line) {
			break
		}
		if m := listItemRe.FindStringSubmatch(line); m != nil {
			item := unquoteScalar(stripTrailingComment(m[1]))
			if item != "" {
				items = append(items, item)
			}
		}
	}
	return items, i
}

// parseFlowList parses a single-line flow sequence like "[a, b, c]".
func parseFlowList(value string) []string {
	value = strings.TrimPrefix(value, "[")
	value = strings.TrimSuffix(value, "]")

	var items []string
	for _, part := range strings.Split(value, ",") {
		item := unquoteScalar(strings.TrimSpace(part))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// stripTrailingComment removes a trailing "# ..." comment. For quoted
// values everything after the closing quote goes.
func stripTrailingComment(value string) string {
	if len(value) > 0 && (value[0] == '"' || value[0] == '\'') {
		if end := strings.IndexByte(value[1:], value[0]); end >= 0 {
			return value[:end+2]
		}
		return value
	}
	if idx := strings.Index(value, " #"); idx >= 0 {
		return strings.TrimSpace(value[:idx])
	}
	return value
}

// unquoteScalar strips matched surrounding quotes from a scalar value.
func unquoteScalar(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
