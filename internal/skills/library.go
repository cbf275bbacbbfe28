package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"spawner/internal/logging"
	"spawner/pkg/fileops"
)

// Library provides read access to the installed skill tree.
//
// Layout: <root>/<category>/<skill>/ where each skill directory carries a
// skill.yaml manifest plus optional auxiliary YAML and Markdown fragments.
// The tree is cloned wholesale via git and treated as read-only here.
type Library struct {
	root   string
	logger *logging.AppLogger
}

// NewLibrary creates a library rooted at the given install directory.
// The path may use a leading "~/".
func NewLibrary(root string, logger *logging.AppLogger) *Library {
	return &Library{
		root:   fileops.ExpandPath(root),
		logger: logger,
	}
}

// Root returns the expanded library root path.
func (l *Library) Root() string {
	return l.root
}

// Installed reports whether the library root exists and contains anything.
func (l *Library) Installed() bool {
	empty, err := fileops.IsDirEmpty(l.root)
	return err == nil && !empty
}

// Categories returns the sorted category names. Hidden directories and the
// git metadata directory are excluded.
func (l *Library) Categories() ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInstalled
		}
		return nil, fmt.Errorf("failed to read library root %s: %w", l.root, err)
	}

	var categories []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		categories = append(categories, entry.Name())
	}
	sort.Strings(categories)
	return categories, nil
}

// Skills returns the skills within a category, sorted by name. Descriptions
// are loaded best-effort; a skill whose manifest cannot be read at all still
// appears, with an empty description.
//
// An unknown category returns an *UnknownCategoryError carrying the valid
// category names.
func (l *Library) Skills(category string) ([]Skill, error) {
	categories, err := l.Categories()
	if err != nil {
		return nil, err
	}

	if !slices.Contains(categories, category) {
		return nil, &UnknownCategoryError{Category: category, Valid: categories}
	}

	names, err := l.skillDirs(category)
	if err != nil {
		return nil, err
	}

	skills := make([]Skill, 0, len(names))
	for _, name := range names {
		skills = append(skills, l.loadSkill(category, name))
	}
	return skills, nil
}

// All returns every skill keyed by category.
func (l *Library) All() (map[string][]Skill, error) {
	categories, err := l.Categories()
	if err != nil {
		return nil, err
	}

	all := make(map[string][]Skill, len(categories))
	for _, category := range categories {
		skills, err := l.Skills(category)
		if err != nil {
			return nil, err
		}
		all[category] = skills
	}
	return all, nil
}

// Count returns the total number of skill directories across categories.
func (l *Library) Count() (int, error) {
	categories, err := l.Categories()
	if err != nil {
		return 0, err
	}

	total := 0
	for _, category := range categories {
		names, err := l.skillDirs(category)
		if err != nil {
			return 0, err
		}
		total += len(names)
	}
	return total, nil
}

// Skill resolves a single "<category>/<skill>" reference.
func (l *Library) Skill(ref string) (Skill, error) {
	category, name, ok := strings.Cut(ref, "/")
	if !ok || category == "" || name == "" {
		return Skill{}, fmt.Errorf("invalid skill reference %q (expected <category>/<skill>)", ref)
	}

	skills, err := l.Skills(category)
	if err != nil {
		return Skill{}, err
	}
	for _, s := range skills {
		if s.Name == name {
			return s, nil
		}
	}
	return Skill{}, fmt.Errorf("skill %q not found in category %q", name, category)
}

// Fragments returns the skill's free-form Markdown fragment paths in sorted
// order, scanned with the symlink-safe directory scanner.
func (l *Library) Fragments(s Skill) ([]string, error) {
	opts := &fileops.DirectoryScanOptions{
		SkipUnreadableDirs: true,
		MaxDepth:           3,
		SkipPatterns:       []string{".git"},
		FileFilter: func(name string) bool {
			return strings.EqualFold(filepath.Ext(name), ".md")
		},
	}

	scanner, err := fileops.NewDirectoryScanner(s.Path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create fragment scanner: %w", err)
	}
	defer scanner.Close()

	files, err := scanner.ScanDirectory()
	if err != nil {
		return nil, fmt.Errorf("failed to scan skill fragments: %w", err)
	}

	var fragments []string
	for _, file := range files {
		if !file.IsDir {
			// Scanner paths are relative to the skill directory
			fragments = append(fragments, filepath.Join(s.Path, file.Path))
		}
	}
	sort.Strings(fragments)

	if l.logger != nil {
		l.logger.Debug("Scanned skill fragments", "skill", s.Ref(), "count", len(fragments))
	}
	return fragments, nil
}

// skillDirs lists the skill directory names within a known-valid category.
func (l *Library) skillDirs(category string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(l.root, category))
	if err != nil {
		return nil, fmt.Errorf("failed to read category %s: %w", category, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// loadSkill builds a Skill with a best-effort description.
func (l *Library) loadSkill(category, name string) Skill {
	skill := Skill{
		Category: category,
		Name:     name,
		Path:     filepath.Join(l.root, category, name),
	}

	meta, degraded, err := LoadMeta(skill.Path)
	if err != nil {
		if l.logger != nil {
			l.logger.Debug("Skill has no readable manifest", "skill", skill.Ref(), "error", err)
		}
		return skill
	}
	if degraded && l.logger != nil {
		l.logger.Debug("Skill manifest required fallback extraction", "skill", skill.Ref())
	}

	skill.Description = meta.Description
	return skill
}
