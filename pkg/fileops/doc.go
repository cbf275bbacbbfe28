// Package fileops provides secure, atomic file operations shared across the
// spawner CLI. It implements path validation, atomic writes, and bounded
// directory scanning with protection against path traversal and symlink loops.
package fileops
