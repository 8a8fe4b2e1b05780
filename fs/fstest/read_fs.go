package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"sort"
	"testing"

	"github.com/jmgilman/go/fstree/fs/core"
)

// TestReadFS tests read-only operations: ReadFile, ReadDir, Lstat, Exists.
// Uses POSIXTestConfig() by default.
func TestReadFS(t *testing.T, filesystem core.FS) {
	TestReadFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestReadFSWithConfig tests read-only operations with behavior configuration.
func TestReadFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	testContent := []byte("test file content")

	if err := filesystem.MkdirAll("testdir/sub", 0o755); err != nil {
		t.Fatalf("MkdirAll(testdir/sub): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("testdir/testfile.txt", testContent, 0o644); err != nil {
		t.Fatalf("WriteFile(testdir/testfile.txt): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("testdir/sub/0", []byte("1"), 0o644); err != nil {
		t.Fatalf("WriteFile(testdir/sub/0): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("testdir/empty", nil, 0o644); err != nil {
		t.Fatalf("WriteFile(testdir/empty): setup failed: %v", err)
	}

	config.run(t, "ReadFS", "ReadFile", func(t *testing.T) {
		data, err := filesystem.ReadFile("testdir/testfile.txt")
		if err != nil {
			t.Fatalf("ReadFile(testdir/testfile.txt): got error %v, want nil", err)
		}
		if !bytes.Equal(data, testContent) {
			t.Errorf("ReadFile(testdir/testfile.txt): got %q, want %q", data, testContent)
		}
	})

	config.run(t, "ReadFS", "ReadFileEmpty", func(t *testing.T) {
		data, err := filesystem.ReadFile("testdir/empty")
		if err != nil {
			t.Fatalf("ReadFile(testdir/empty): got error %v, want nil", err)
		}
		if len(data) != 0 {
			t.Errorf("ReadFile(testdir/empty): got %d bytes, want 0", len(data))
		}
	})

	config.run(t, "ReadFS", "ReadFileNotExist", func(t *testing.T) {
		_, err := filesystem.ReadFile("testdir/missing")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("ReadFile(testdir/missing): got error %v, want fs.ErrNotExist", err)
		}
	})

	config.run(t, "ReadFS", "ReadDir", func(t *testing.T) {
		entries, err := filesystem.ReadDir("testdir")
		if err != nil {
			t.Fatalf("ReadDir(testdir): got error %v, want nil", err)
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
			if e.Name() == "sub" && !e.IsDir() {
				t.Errorf("ReadDir(testdir): entry %q IsDir() = false, want true", e.Name())
			}
		}
		sort.Strings(names)
		want := []string{"empty", "sub", "testfile.txt"}
		if len(names) != len(want) {
			t.Fatalf("ReadDir(testdir): got entries %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("ReadDir(testdir): got entries %v, want %v", names, want)
				break
			}
		}
	})

	config.run(t, "ReadFS", "LstatFile", func(t *testing.T) {
		info, err := filesystem.Lstat("testdir/testfile.txt")
		if err != nil {
			t.Fatalf("Lstat(testdir/testfile.txt): got error %v, want nil", err)
		}
		if !info.Mode().IsRegular() {
			t.Errorf("Lstat(testdir/testfile.txt): mode %v, want regular file", info.Mode())
		}
	})

	config.run(t, "ReadFS", "LstatDir", func(t *testing.T) {
		info, err := filesystem.Lstat("testdir/sub")
		if err != nil {
			t.Fatalf("Lstat(testdir/sub): got error %v, want nil", err)
		}
		if !info.IsDir() {
			t.Errorf("Lstat(testdir/sub): IsDir() = false, want true")
		}
	})

	config.run(t, "ReadFS", "LstatNotExist", func(t *testing.T) {
		_, err := filesystem.Lstat("testdir/missing")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Lstat(testdir/missing): got error %v, want fs.ErrNotExist", err)
		}
	})

	config.run(t, "ReadFS", "Exists", func(t *testing.T) {
		for name, want := range map[string]bool{
			"testdir/testfile.txt": true,
			"testdir/sub":          true,
			"testdir/missing":      false,
		} {
			got, err := filesystem.Exists(name)
			if err != nil {
				t.Errorf("Exists(%q): got error %v, want nil", name, err)
				continue
			}
			if got != want {
				t.Errorf("Exists(%q): got %v, want %v", name, got, want)
			}
		}
	})
}
