package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jmgilman/go/fstree/fs/core"
)

// FS adapts a billy.Filesystem to core.FS and core.SymlinkFS.
type FS struct {
	bfs    billy.Filesystem
	fsType core.FSType
	root   string // host directory of a local filesystem
}

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	boundOS bool
}

// WithBoundOS makes a local filesystem refuse to resolve paths outside its
// root, including through symlinks. It has no effect on memory filesystems.
func WithBoundOS() Option {
	return func(c *config) {
		c.boundOS = true
	}
}

// NewLocal creates a go-billy-backed local filesystem rooted at root.
// All names passed to the returned filesystem are relative to root.
func NewLocal(root string, opts ...Option) *FS {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	var osOpts []osfs.Option
	if cfg.boundOS {
		osOpts = append(osOpts, osfs.WithBoundOS())
	}

	return &FS{
		bfs:    osfs.New(root, osOpts...),
		fsType: core.FSTypeLocal,
		root:   root,
	}
}

// NewMemory creates a go-billy-backed in-memory filesystem.
// The filesystem is initially empty.
func NewMemory() *FS {
	return &FS{
		bfs:    memfs.New(),
		fsType: core.FSTypeMemory,
	}
}

// Unwrap returns the underlying billy.Filesystem.
func (b *FS) Unwrap() billy.Filesystem {
	return b.bfs
}

// Type returns the filesystem type.
func (b *FS) Type() core.FSType {
	return b.fsType
}

// normalize converts paths to use forward slashes consistently.
// This is a simplified path normalization since billy handles security.
func normalize(name string) string {
	return filepath.ToSlash(filepath.Clean(name))
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (d *dirEntry) Name() string               { return d.info.Name() }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// ReadFile reads the named file and returns its contents.
func (b *FS) ReadFile(name string) ([]byte, error) {
	f, err := b.bfs.Open(normalize(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// ReadDir reads the named directory and returns its entries sorted by name.
func (b *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	// Billy's ReadDir returns []fs.FileInfo, we need to convert to []fs.DirEntry
	infos, err := b.bfs.ReadDir(normalize(name))
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	return entries, nil
}

// Lstat returns file info without following symbolic links.
func (b *FS) Lstat(name string) (fs.FileInfo, error) {
	return b.bfs.Lstat(normalize(name))
}

// Exists reports whether the named file, directory or symlink exists.
// Symlinks are not followed, so a dangling link still exists.
func (b *FS) Exists(name string) (bool, error) {
	_, err := b.bfs.Lstat(normalize(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// WriteFile writes data to the named file, creating it if necessary.
func (b *FS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f, err := b.bfs.OpenFile(normalize(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// MkdirAll creates a directory named path, along with any necessary parents.
// Every directory it creates gets perm. The local backend creates
// directories with a fixed mode, so perm is applied to them afterwards.
func (b *FS) MkdirAll(name string, perm fs.FileMode) error {
	name = normalize(name)
	missing, err := b.missingDirs(name)
	if err != nil {
		return err
	}
	if err := b.bfs.MkdirAll(name, perm); err != nil {
		return err
	}
	if b.fsType != core.FSTypeLocal {
		return nil
	}

	for _, dir := range missing {
		if err := os.Chmod(filepath.Join(b.root, filepath.FromSlash(dir)), perm.Perm()); err != nil {
			return err
		}
	}
	return nil
}

// missingDirs lists name and those of its parents that do not exist yet,
// deepest first.
func (b *FS) missingDirs(name string) ([]string, error) {
	var missing []string
	for dir := name; dir != "." && dir != "/" && dir != ""; dir = path.Dir(dir) {
		_, err := b.bfs.Lstat(dir)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		missing = append(missing, dir)
	}
	return missing, nil
}

// Remove removes the named file or empty directory.
func (b *FS) Remove(name string) error {
	return b.bfs.Remove(normalize(name))
}

// RemoveAll removes path and any children it contains.
// Symlinks are removed, never followed.
func (b *FS) RemoveAll(name string) error {
	name = normalize(name)
	// Billy doesn't have RemoveAll, implement via recursive removal
	info, err := b.bfs.Lstat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	if !info.IsDir() {
		return b.bfs.Remove(name)
	}

	entries, err := b.bfs.ReadDir(name)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := b.RemoveAll(path.Join(name, entry.Name())); err != nil {
			return err
		}
	}

	return b.bfs.Remove(name)
}

// Symlink creates a symbolic link named newname pointing to oldname.
func (b *FS) Symlink(oldname, newname string) error {
	return b.bfs.Symlink(oldname, normalize(newname))
}

// Readlink returns the destination of the named symbolic link.
func (b *FS) Readlink(name string) (string, error) {
	return b.bfs.Readlink(normalize(name))
}

// Compile-time interface checks.
var (
	_ core.FS        = (*FS)(nil)
	_ core.SymlinkFS = (*FS)(nil)
)
