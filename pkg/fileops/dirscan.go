package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// DirectoryScanOptions configures the behavior of directory scanning.
type DirectoryScanOptions struct {
	// SkipUnreadableDirs determines whether to skip directories that cannot
	// be read or to return an error. Setting to true makes scanning more
	// resilient.
	SkipUnreadableDirs bool

	// MaxDepth limits the maximum recursion depth for directory traversal.
	MaxDepth int

	// IncludeHidden determines whether to include files and directories that
	// start with '.'.
	IncludeHidden bool

	// SkipPatterns contains directory names that should be skipped during
	// scanning. These are exact matches against directory names.
	SkipPatterns []string

	// FileFilter is an optional function that determines whether a file
	// should be included. If nil, all files are included.
	FileFilter func(filename string) bool
}

// FileInfo represents information about a discovered file during scanning.
type FileInfo struct {
	// Name is the base filename without path components
	Name string

	// Path is the relative path from the scan root to this file
	Path string

	// IsDir indicates whether this entry represents a directory
	IsDir bool

	// Size is the file size in bytes (0 for directories)
	Size int64

	// ModTime is the last modification time
	ModTime time.Time
}

// SecureDirectoryScanner provides configurable directory scanning with
// built-in protection against directory traversal and symlink loops.
//
// The scanner operates within a security boundary defined by an os.Root,
// preventing access to files outside the designated scan area.
type SecureDirectoryScanner struct {
	root     *os.Root
	opts     *DirectoryScanOptions
	results  []FileInfo
	visited  map[string]bool
	scanRoot string
}

// NewDirectoryScanner creates a new secure directory scanner for the given
// path. If opts is nil, sensible defaults are used (depth 20, hidden files
// included, common build/VCS directories skipped).
func NewDirectoryScanner(scanPath string, opts *DirectoryScanOptions) (*SecureDirectoryScanner, error) {
	if opts == nil {
		opts = defaultScanOptions()
	}

	if strings.TrimSpace(scanPath) == "" {
		return nil, fmt.Errorf("scan path cannot be empty")
	}

	expandedPath := ExpandPath(scanPath)
	absPath, err := filepath.Abs(expandedPath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve scan path: %w", err)
	}

	if err := ValidatePathSecurity(absPath); err != nil {
		return nil, fmt.Errorf("scan path security validation failed: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access scan path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan path is not a directory: %s", absPath)
	}

	// Secure root prevents escapes via symlinks pointing outside the tree
	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot create secure scan root: %w", err)
	}

	return &SecureDirectoryScanner{
		root:     root,
		opts:     opts,
		results:  []FileInfo{},
		visited:  make(map[string]bool),
		scanRoot: absPath,
	}, nil
}

func defaultScanOptions() *DirectoryScanOptions {
	return &DirectoryScanOptions{
		SkipUnreadableDirs: true,
		MaxDepth:           20,
		IncludeHidden:      true,
		SkipPatterns:       defaultSkipPatterns(),
	}
}

func defaultSkipPatterns() []string {
	return []string{
		"node_modules",
		".git",
		"vendor",
		"target",
		"build",
		".next",
		"dist",
		".cache",
		"__pycache__",
		".vscode",
		".idea",
	}
}

// Close releases resources associated with the scanner.
func (s *SecureDirectoryScanner) Close() error {
	if s.root != nil {
		err := s.root.Close()
		s.root = nil
		return err
	}
	return nil
}

// ScanDirectory performs a recursive scan of the configured directory.
// The scan respects all configured options including depth limits, skip
// patterns, and file filters, and is performed within the root boundary.
func (s *SecureDirectoryScanner) ScanDirectory() ([]FileInfo, error) {
	if s.root == nil {
		return nil, fmt.Errorf("scanner has been closed")
	}

	// Reset state for new scan
	s.results = []FileInfo{}
	s.visited = make(map[string]bool)

	if err := s.scanRecursive(".", 1); err != nil {
		return nil, fmt.Errorf("directory scan failed: %w", err)
	}

	resultsCopy := make([]FileInfo, len(s.results))
	copy(resultsCopy, s.results)
	return resultsCopy, nil
}

func (s *SecureDirectoryScanner) scanRecursive(relativePath string, depth int) error {
	if depth > s.opts.MaxDepth {
		return nil // Silently stop at max depth
	}

	// Loop detection prevents symlink cycles
	cleanPath := filepath.Clean(relativePath)
	if s.visited[cleanPath] {
		return nil
	}
	s.visited[cleanPath] = true

	dirName := filepath.Base(relativePath)
	if s.shouldSkipDirectory(dirName) {
		return nil
	}

	dir, err := s.root.Open(relativePath)
	if err != nil {
		if s.opts.SkipUnreadableDirs {
			return nil
		}
		return fmt.Errorf("failed to open directory %s: %w", relativePath, err)
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		if s.opts.SkipUnreadableDirs {
			return nil
		}
		return fmt.Errorf("failed to read directory %s: %w", relativePath, err)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(relativePath, entry.Name())

		if entry.IsDir() {
			if err := s.scanRecursive(entryPath, depth+1); err != nil {
				return err
			}
			continue
		}

		if !s.shouldIncludeFile(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			if s.opts.SkipUnreadableDirs {
				continue
			}
			return fmt.Errorf("failed to get file info for %s: %w", entryPath, err)
		}

		s.results = append(s.results, FileInfo{
			Name:    entry.Name(),
			Path:    entryPath,
			IsDir:   false,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return nil
}

func (s *SecureDirectoryScanner) shouldSkipDirectory(dirName string) bool {
	// Never skip current or parent directory references
	if dirName == "." || dirName == ".." {
		return false
	}

	if !s.opts.IncludeHidden && strings.HasPrefix(dirName, ".") {
		return true
	}

	return slices.Contains(s.opts.SkipPatterns, dirName)
}

func (s *SecureDirectoryScanner) shouldIncludeFile(fileName string) bool {
	if !s.opts.IncludeHidden && strings.HasPrefix(fileName, ".") {
		return false
	}

	if s.opts.FileFilter != nil {
		return s.opts.FileFilter(fileName)
	}

	return true
}

// ScanWithFilter is a convenience function that creates a scanner with a file
// filter and immediately performs a scan.
//
// Usage example:
//
//	manifests, err := fileops.ScanWithFilter(dir, func(name string) bool {
//	    return name == "skill.yaml"
//	}, 5)
func ScanWithFilter(scanPath string, fileFilter func(string) bool, maxDepth int) ([]FileInfo, error) {
	opts := &DirectoryScanOptions{
		SkipUnreadableDirs: true,
		MaxDepth:           maxDepth,
		IncludeHidden:      false,
		SkipPatterns:       defaultSkipPatterns(),
		FileFilter:         fileFilter,
	}

	scanner, err := NewDirectoryScanner(scanPath, opts)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	return scanner.ScanDirectory()
}
