package fileops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("cannot determine home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde prefix", "~/skills", filepath.Join(home, "skills")},
		{"absolute path unchanged", "/tmp/skills", "/tmp/skills"},
		{"relative path unchanged", "skills/web", "skills/web"},
		{"bare tilde unchanged", "~", "~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidatePathSecurity(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty path", "", true},
		{"whitespace only", "   ", true},
		{"path traversal", "../../etc/passwd", true},
		{"embedded traversal", "/tmp/a/../../etc", true},
		{"system directory", "/etc/spawner", true},
		{"normal tmp path", "/tmp/spawner-test", false},
		{"relative path", "skills/web", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathSecurity(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePathSecurity(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestIsReservedDirectory(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("cannot determine home dir: %v", err)
	}

	if !IsReservedDirectory("/etc") {
		t.Error("expected /etc to be reserved")
	}
	if !IsReservedDirectory("/etc/nested/path") {
		t.Error("expected paths under /etc to be reserved")
	}
	if !IsReservedDirectory(home) {
		t.Error("expected the home directory itself to be reserved")
	}
	if !IsReservedDirectory(filepath.Join(home, ".ssh")) {
		t.Error("expected ~/.ssh to be reserved")
	}
	if IsReservedDirectory(filepath.Join(home, ".spawner", "skills")) {
		t.Error("expected ~/.spawner/skills to be allowed")
	}
}

func TestIsDirEmpty(t *testing.T) {
	dir := t.TempDir()

	empty, err := IsDirEmpty(dir)
	if err != nil {
		t.Fatalf("IsDirEmpty failed: %v", err)
	}
	if !empty {
		t.Error("expected fresh temp dir to be empty")
	}

	if err := os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	empty, err = IsDirEmpty(dir)
	if err != nil {
		t.Fatalf("IsDirEmpty failed: %v", err)
	}
	if empty {
		t.Error("expected dir with a file to be non-empty")
	}

	// Missing directories count as empty
	empty, err = IsDirEmpty(filepath.Join(dir, "does-not-exist"))
	if err != nil {
		t.Fatalf("IsDirEmpty failed: %v", err)
	}
	if !empty {
		t.Error("expected missing dir to be reported as empty")
	}
}

func TestValidateDirectoryWritable(t *testing.T) {
	dir := t.TempDir()
	if err := ValidateDirectoryWritable(dir); err != nil {
		t.Errorf("expected temp dir to be writable: %v", err)
	}

	// Probe file must not be left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected probe file to be removed, found %d entries", len(entries))
	}

	if err := ValidateDirectoryWritable(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
