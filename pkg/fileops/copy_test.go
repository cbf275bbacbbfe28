package fileops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dst := filepath.Join(dir, "dst.md")

	content := []byte("# Skill\n\nSome content\n")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := AtomicCopy(src, dst); err != nil {
		t.Fatalf("AtomicCopy failed: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("destination content = %q, want %q", got, content)
	}

	// No temp file should remain
	if _, err := os.Stat(dst + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected temporary file to be cleaned up")
	}
}

func TestAtomicCopy_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := AtomicCopy(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "dst")); !os.IsNotExist(statErr) {
		t.Error("destination must not exist after failed copy")
	}
}

func TestAtomicCopy_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := AtomicCopy(src, dst); err != nil {
		t.Fatalf("AtomicCopy failed: %v", err)
	}

	got, _ := os.ReadFile(dst)
	if string(got) != "new" {
		t.Errorf("expected destination to be overwritten, got %q", got)
	}
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.json")

	if err := AtomicWriteFile(dst, []byte(`{"a":1}`), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("content = %q", got)
	}
	if _, err := os.Stat(dst + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected temporary file to be cleaned up")
	}
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")

	if err := EnsureDirectoryExists(nested); err != nil {
		t.Fatalf("EnsureDirectoryExists failed: %v", err)
	}

	info, err := os.Stat(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}

	// Idempotent on existing directories
	if err := EnsureDirectoryExists(nested); err != nil {
		t.Errorf("second call failed: %v", err)
	}
}
