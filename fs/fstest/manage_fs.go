package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fstree/fs/core"
)

// TestManageFS tests removal operations: Remove, RemoveAll.
// Uses POSIXTestConfig() by default.
func TestManageFS(t *testing.T, filesystem core.FS) {
	TestManageFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestManageFSWithConfig tests removal operations with behavior configuration.
func TestManageFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	config.run(t, "ManageFS", "Remove", func(t *testing.T) {
		if err := filesystem.WriteFile("remove.txt", []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(remove.txt): setup failed: %v", err)
		}
		if err := filesystem.Remove("remove.txt"); err != nil {
			t.Fatalf("Remove(remove.txt): got error %v, want nil", err)
		}
		if ok, _ := filesystem.Exists("remove.txt"); ok {
			t.Errorf("Exists(remove.txt) after Remove: got true, want false")
		}
	})

	config.run(t, "ManageFS", "RemoveNotExist", func(t *testing.T) {
		err := filesystem.Remove("never-existed")
		if config.IdempotentDelete {
			if err != nil {
				t.Errorf("Remove(never-existed): got error %v, want nil", err)
			}
			return
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove(never-existed): got error %v, want fs.ErrNotExist", err)
		}
	})

	config.run(t, "ManageFS", "RemoveAll", func(t *testing.T) {
		for _, name := range []string{"tree/a", "tree/b/0", "tree/b/1"} {
			if err := filesystem.MkdirAll(parentOf(name), 0o755); err != nil {
				t.Fatalf("MkdirAll(%q): setup failed: %v", parentOf(name), err)
			}
			if err := filesystem.WriteFile(name, []byte("x"), 0o644); err != nil {
				t.Fatalf("WriteFile(%q): setup failed: %v", name, err)
			}
		}
		if err := filesystem.RemoveAll("tree"); err != nil {
			t.Fatalf("RemoveAll(tree): got error %v, want nil", err)
		}
		for _, name := range []string{"tree", "tree/a", "tree/b/1"} {
			if ok, _ := filesystem.Exists(name); ok {
				t.Errorf("Exists(%q) after RemoveAll: got true, want false", name)
			}
		}
	})

	config.run(t, "ManageFS", "RemoveAllNotExist", func(t *testing.T) {
		if err := filesystem.RemoveAll("nothing-here"); err != nil {
			t.Errorf("RemoveAll(nothing-here): got error %v, want nil", err)
		}
	})
}

func parentOf(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[:i]
		}
	}
	return "."
}
