package skills

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSkillManifest indicates a skill directory without a skill.yaml file.
var ErrNoSkillManifest = errors.New("skill directory has no skill.yaml")

// ErrNotInstalled indicates the library root does not exist yet.
var ErrNotInstalled = errors.New("skills are not installed")

// ErrUnknownCategory is the sentinel matched by errors.Is for category
// lookup failures. The concrete error carries the valid category names so
// the CLI can print them.
var ErrUnknownCategory = errors.New("unknown category")

// UnknownCategoryError reports a category lookup failure together with the
// categories that do exist.
type UnknownCategoryError struct {
	Category string
	Valid    []string
}

func (e *UnknownCategoryError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("unknown category %q (no categories installed)", e.Category)
	}
	return fmt.Sprintf("unknown category %q, valid categories: %s", e.Category, strings.Join(e.Valid, ", "))
}

func (e *UnknownCategoryError) Unwrap() error {
	return ErrUnknownCategory
}
