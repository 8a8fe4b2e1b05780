package fstest

import (
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fstree/fs/core"
)

// TestSymlinkFS tests symlink operations (Symlink, Readlink) and that Lstat
// reports links without following them.
// Uses type assertion - skips if fs doesn't implement core.SymlinkFS.
func TestSymlinkFS(t *testing.T, filesystem core.FS) {
	TestSymlinkFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestSymlinkFSWithConfig tests symlink operations with behavior configuration.
func TestSymlinkFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	sfs, ok := filesystem.(core.SymlinkFS)
	if !ok {
		t.Skip("SymlinkFS not supported")
		return
	}

	if err := filesystem.WriteFile("target.txt", []byte("target"), 0o644); err != nil {
		t.Fatalf("WriteFile(target.txt): setup failed: %v", err)
	}
	if err := filesystem.MkdirAll("targetdir", 0o755); err != nil {
		t.Fatalf("MkdirAll(targetdir): setup failed: %v", err)
	}

	config.run(t, "SymlinkFS", "Readlink", func(t *testing.T) {
		if err := sfs.Symlink("target.txt", "link.txt"); err != nil {
			t.Fatalf("Symlink(target.txt, link.txt): got error %v, want nil", err)
		}
		target, err := sfs.Readlink("link.txt")
		if err != nil {
			t.Fatalf("Readlink(link.txt): got error %v, want nil", err)
		}
		if target != "target.txt" {
			t.Errorf("Readlink(link.txt): got %q, want %q", target, "target.txt")
		}
	})

	config.run(t, "SymlinkFS", "LstatFileLink", func(t *testing.T) {
		if err := sfs.Symlink("target.txt", "filelink"); err != nil {
			t.Fatalf("Symlink(target.txt, filelink): setup failed: %v", err)
		}
		info, err := filesystem.Lstat("filelink")
		if err != nil {
			t.Fatalf("Lstat(filelink): got error %v, want nil", err)
		}
		if info.Mode().Type()&fs.ModeSymlink == 0 {
			t.Errorf("Lstat(filelink): mode %v, want symlink", info.Mode())
		}
	})

	config.run(t, "SymlinkFS", "LstatDirLink", func(t *testing.T) {
		if err := sfs.Symlink("targetdir", "dirlink"); err != nil {
			t.Fatalf("Symlink(targetdir, dirlink): setup failed: %v", err)
		}
		info, err := filesystem.Lstat("dirlink")
		if err != nil {
			t.Fatalf("Lstat(dirlink): got error %v, want nil", err)
		}
		if info.IsDir() {
			t.Errorf("Lstat(dirlink): IsDir() = true, want false")
		}
		if info.Mode().Type()&fs.ModeSymlink == 0 {
			t.Errorf("Lstat(dirlink): mode %v, want symlink", info.Mode())
		}
	})

	config.run(t, "SymlinkFS", "BrokenLinkExists", func(t *testing.T) {
		if err := sfs.Symlink("nowhere", "broken"); err != nil {
			t.Fatalf("Symlink(nowhere, broken): setup failed: %v", err)
		}
		ok, err := filesystem.Exists("broken")
		if err != nil {
			t.Fatalf("Exists(broken): got error %v, want nil", err)
		}
		if !ok {
			t.Errorf("Exists(broken): got false, want true")
		}
	})
}
