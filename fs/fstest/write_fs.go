package fstest

import (
	"bytes"
	"testing"

	"github.com/jmgilman/go/fstree/fs/core"
)

// TestWriteFS tests write operations: WriteFile, MkdirAll.
// Uses POSIXTestConfig() by default.
func TestWriteFS(t *testing.T, filesystem core.FS) {
	TestWriteFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestWriteFSWithConfig tests write operations with behavior configuration.
func TestWriteFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	config.run(t, "WriteFS", "WriteFile", func(t *testing.T) {
		want := []byte("hello")
		if err := filesystem.WriteFile("write.txt", want, 0o644); err != nil {
			t.Fatalf("WriteFile(write.txt): got error %v, want nil", err)
		}
		got, err := filesystem.ReadFile("write.txt")
		if err != nil {
			t.Fatalf("ReadFile(write.txt): got error %v, want nil", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("ReadFile(write.txt): got %q, want %q", got, want)
		}
	})

	config.run(t, "WriteFS", "WriteFileTruncates", func(t *testing.T) {
		if err := filesystem.WriteFile("trunc.txt", []byte("a longer value"), 0o644); err != nil {
			t.Fatalf("WriteFile(trunc.txt): setup failed: %v", err)
		}
		if err := filesystem.WriteFile("trunc.txt", []byte("short"), 0o644); err != nil {
			t.Fatalf("WriteFile(trunc.txt): got error %v, want nil", err)
		}
		got, err := filesystem.ReadFile("trunc.txt")
		if err != nil {
			t.Fatalf("ReadFile(trunc.txt): got error %v, want nil", err)
		}
		if string(got) != "short" {
			t.Errorf("ReadFile(trunc.txt): got %q, want %q", got, "short")
		}
	})

	config.run(t, "WriteFS", "WriteFileEmpty", func(t *testing.T) {
		if err := filesystem.WriteFile("unit", nil, 0o644); err != nil {
			t.Fatalf("WriteFile(unit): got error %v, want nil", err)
		}
		info, err := filesystem.Lstat("unit")
		if err != nil {
			t.Fatalf("Lstat(unit): got error %v, want nil", err)
		}
		if info.IsDir() {
			t.Errorf("Lstat(unit): IsDir() = true, want false")
		}
	})

	config.run(t, "WriteFS", "MkdirAllThenWrite", func(t *testing.T) {
		if err := filesystem.MkdirAll("a/b/c", 0o755); err != nil {
			t.Fatalf("MkdirAll(a/b/c): got error %v, want nil", err)
		}
		if err := filesystem.WriteFile("a/b/c/leaf", []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(a/b/c/leaf): got error %v, want nil", err)
		}
		for _, dir := range []string{"a", "a/b", "a/b/c"} {
			info, err := filesystem.Lstat(dir)
			if err != nil {
				t.Errorf("Lstat(%q): got error %v, want nil", dir, err)
				continue
			}
			if !info.IsDir() {
				t.Errorf("Lstat(%q): IsDir() = false, want true", dir)
			}
		}
	})

	config.run(t, "WriteFS", "MkdirAllExisting", func(t *testing.T) {
		if err := filesystem.MkdirAll("exists", 0o755); err != nil {
			t.Fatalf("MkdirAll(exists): setup failed: %v", err)
		}
		if err := filesystem.MkdirAll("exists", 0o755); err != nil {
			t.Errorf("MkdirAll(exists) twice: got error %v, want nil", err)
		}
	})

	config.run(t, "WriteFS", "MkdirAllEmptyListed", func(t *testing.T) {
		if config.VirtualDirectories {
			t.Skip("empty directories are not materialised")
		}
		if err := filesystem.MkdirAll("parent/empty", 0o755); err != nil {
			t.Fatalf("MkdirAll(parent/empty): got error %v, want nil", err)
		}
		entries, err := filesystem.ReadDir("parent/empty")
		if err != nil {
			t.Fatalf("ReadDir(parent/empty): got error %v, want nil", err)
		}
		if len(entries) != 0 {
			t.Errorf("ReadDir(parent/empty): got %d entries, want 0", len(entries))
		}
	})
}
