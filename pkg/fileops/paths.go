package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExpandPath expands a leading "~/" to the user's home directory.
// Paths without the prefix are returned unchanged, as is the input when the
// home directory cannot be determined.
//
// Usage example:
//
//	expanded := fileops.ExpandPath("~/.spawner/skills")
//	// Returns something like "/home/user/.spawner/skills"
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ValidatePathSecurity performs static security validation on a file path.
//
// The function validates:
//   - Path traversal attempts using ".." sequences
//   - Empty or whitespace-only paths
//   - Absolute paths that resolve into reserved system directories
//
// It performs static analysis only and does not access the filesystem;
// symlink resolution must be performed separately if needed.
func ValidatePathSecurity(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// Check for path traversal in raw input
	if strings.Contains(path, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	// Clean and re-check for traversal
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	if filepath.IsAbs(path) && IsReservedDirectory(cleanPath) {
		return fmt.Errorf("reserved system directory not allowed: %s", cleanPath)
	}

	return nil
}

// IsReservedDirectory reports whether the path is a system or otherwise
// reserved directory that should never be used for application data.
//
// The check covers system directories (like /etc, /bin, C:\Windows), critical
// user directories (like ~/.ssh, ~/.gnupg), and platform-specific reserved
// locations. The path is compared after cleaning; the home directory itself
// is also rejected since cloning directly into $HOME would be destructive.
func IsReservedDirectory(path string) bool {
	cleanPath := filepath.Clean(path)

	for _, reserved := range reservedDirectories() {
		if cleanPath == reserved || strings.HasPrefix(cleanPath, reserved+string(filepath.Separator)) {
			return true
		}
	}

	// The home directory itself is reserved, its children are not
	if home, err := os.UserHomeDir(); err == nil {
		if cleanPath == filepath.Clean(home) {
			return true
		}
		for _, sub := range []string{".ssh", ".gnupg", ".aws", ".kube"} {
			critical := filepath.Join(home, sub)
			if cleanPath == critical || strings.HasPrefix(cleanPath, critical+string(filepath.Separator)) {
				return true
			}
		}
	}

	return false
}

// reservedDirectories returns the platform-specific list of directories that
// must never be written to.
func reservedDirectories() []string {
	if runtime.GOOS == "windows" {
		return []string{
			`C:\Windows`,
			`C:\Program Files`,
			`C:\Program Files (x86)`,
		}
	}

	return []string{
		"/bin", "/sbin", "/usr/bin", "/usr/sbin", "/usr/lib",
		"/etc", "/boot", "/dev", "/proc", "/sys", "/var/log",
		"/root", "/lib", "/lib64",
	}
}

// IsDirEmpty reports whether the directory at path contains no entries.
// A directory that does not exist is considered empty.
func IsDirEmpty(path string) (bool, error) {
	dir, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("cannot open directory: %w", err)
	}
	defer dir.Close()

	_, err = dir.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot read directory: %w", err)
	}
	return false, nil
}

// ValidateDirectoryWritable verifies that the directory exists and that a
// file can actually be created inside it. The probe file is removed before
// returning.
func ValidateDirectoryWritable(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dirPath)
	}

	probe := filepath.Join(dirPath, ".spawner-write-check")
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("directory is not writable: %w", err)
	}
	f.Close()
	os.Remove(probe)
	return nil
}
