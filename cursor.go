package fstree

import (
	stderrors "errors"
	"io/fs"
	"path"
	"strings"

	"github.com/jmgilman/go/fstree/errors"
	"github.com/jmgilman/go/fstree/fs/core"
)

// TreeFS is the storage an Encoder writes through. Reads are needed to check
// the tree for symbolic links before writing.
type TreeFS interface {
	core.ReadFS
	core.WriteFS
}

// meta describes what is stored at the cursor position.
type meta struct {
	exists    bool
	isFile    bool
	isDir     bool
	isSymlink bool
}

// cursor tracks the current location in the tree as a stack of path
// segments below a trusted root.
//
// Every pushed segment is checked with Lstat before anything is read or
// written through it. Segments that were seen to exist are remembered until
// they are popped, so each level is checked once per visit.
type cursor struct {
	rfs  core.ReadFS
	wfs  core.WriteFS
	root string
	segs []string

	// infos[i] is the Lstat result for segs[:i+1]; it covers the prefix of
	// segs known to exist.
	infos []fs.FileInfo

	// dirty is set when a file is written and cleared when a segment is
	// popped. A second write while dirty means a value was written twice to
	// the same location.
	dirty bool

	fileMode fs.FileMode
	dirMode  fs.FileMode
}

func newCursor(rfs core.ReadFS, wfs core.WriteFS, root string, cfg *config) *cursor {
	return &cursor{
		rfs:      rfs,
		wfs:      wfs,
		root:     root,
		fileMode: cfg.fileMode,
		dirMode:  cfg.dirMode,
	}
}

// descend pushes seg onto the path.
func (c *cursor) descend(seg string) error {
	if err := validSegment(seg); err != nil {
		return errors.WithPath(err, path.Join(c.path(), seg))
	}
	c.segs = append(c.segs, seg)
	return nil
}

// ascend pops the last segment and clears the dirty flag.
func (c *cursor) ascend() {
	if len(c.segs) == 0 {
		return
	}
	c.segs = c.segs[:len(c.segs)-1]
	if len(c.infos) > len(c.segs) {
		c.infos = c.infos[:len(c.segs)]
	}
	c.dirty = false
}

// within runs fn one level below the current location and records that
// location on the error fn returns.
func (c *cursor) within(seg string, fn func() error) error {
	if err := c.descend(seg); err != nil {
		return err
	}
	err := fn()
	p := c.path()
	c.ascend()
	return errors.WithPath(err, p)
}

func (c *cursor) depth() int {
	return len(c.segs)
}

// path returns the storage path of the current location.
func (c *cursor) path() string {
	return c.pathOf(len(c.segs))
}

func (c *cursor) pathOf(n int) string {
	if n == 0 {
		if c.root == "" {
			return "."
		}
		return c.root
	}
	return path.Join(c.root, path.Join(c.segs[:n]...))
}

// verify checks every pushed segment not yet known to exist. It stops at the
// first missing segment and fails on the first symlink.
func (c *cursor) verify() error {
	for n := len(c.infos) + 1; n <= len(c.segs); n++ {
		p := c.pathOf(n)
		info, err := c.rfs.Lstat(p)
		if err != nil {
			if stderrors.Is(err, core.ErrNotExist) {
				return nil
			}
			return ioError(err, "failed to inspect entry", p)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return errors.NewAt(errors.CodeSymlink, "encountered a symbolic link", p)
		}
		c.infos = append(c.infos, info)
	}
	return nil
}

// probe reports what is stored at the current location.
func (c *cursor) probe() (meta, error) {
	if len(c.segs) == 0 {
		return c.probeRoot()
	}
	if err := c.verify(); err != nil {
		return meta{}, err
	}
	if len(c.infos) < len(c.segs) {
		return meta{}, nil
	}

	info := c.infos[len(c.segs)-1]
	return meta{
		exists: true,
		isFile: info.Mode().IsRegular(),
		isDir:  info.IsDir(),
	}, nil
}

// probeRoot inspects the root. The root is trusted, so a link there is
// treated as the directory it points to.
func (c *cursor) probeRoot() (meta, error) {
	p := c.path()
	info, err := c.rfs.Lstat(p)
	if err != nil {
		if stderrors.Is(err, core.ErrNotExist) {
			return meta{}, nil
		}
		return meta{}, ioError(err, "failed to inspect root", p)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return meta{exists: true, isDir: true, isSymlink: true}, nil
	}
	return meta{
		exists: true,
		isFile: info.Mode().IsRegular(),
		isDir:  info.IsDir(),
	}, nil
}

// list returns the names of the entries below the current location in
// storage order.
func (c *cursor) list() ([]string, error) {
	if err := c.verify(); err != nil {
		return nil, err
	}
	p := c.path()
	entries, err := c.rfs.ReadDir(p)
	if err != nil {
		return nil, ioError(err, "failed to list directory", p)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// read returns the content of the file at the current location.
func (c *cursor) read() ([]byte, error) {
	if err := c.verify(); err != nil {
		return nil, err
	}
	p := c.path()
	data, err := c.rfs.ReadFile(p)
	if err != nil {
		return nil, ioError(err, "failed to read file", p)
	}
	return data, nil
}

// write stores data as a file at the current location, creating missing
// parent directories.
func (c *cursor) write(data []byte) error {
	p := c.path()
	if len(c.segs) == 0 {
		return errors.NewAt(errors.CodeUnsupportedAtRoot, "a leaf cannot be written at the root of the tree", p)
	}
	if c.dirty {
		return errors.NewAt(errors.CodeContractViolation, "a value was already written at this location", p)
	}
	if err := c.verify(); err != nil {
		return err
	}
	if err := c.wfs.MkdirAll(c.pathOf(len(c.segs)-1), c.dirMode); err != nil {
		return ioError(err, "failed to create directory", p)
	}
	if err := c.wfs.WriteFile(p, data, c.fileMode); err != nil {
		return ioError(err, "failed to write file", p)
	}
	c.dirty = true
	return nil
}

// mkdir creates the directory at the current location.
func (c *cursor) mkdir() error {
	if err := c.verify(); err != nil {
		return err
	}
	p := c.path()
	if err := c.wfs.MkdirAll(p, c.dirMode); err != nil {
		return ioError(err, "failed to create directory", p)
	}
	return nil
}

// ioError wraps a storage failure at p. Storage errors are retryable unless
// the provider denied access.
func ioError(err error, message, p string) error {
	wrapped := errors.WrapAt(err, errors.CodeIO, message, p)
	if stderrors.Is(err, core.ErrPermission) {
		return errors.WithClassification(wrapped, errors.ClassificationPermanent)
	}
	return wrapped
}

// validSegment rejects names that would not address a single child entry.
func validSegment(seg string) error {
	switch {
	case seg == "":
		return errors.New(errors.CodeInvalidInput, "empty path segment")
	case seg == "." || seg == "..":
		return errors.Newf(errors.CodeInvalidInput, "path segment %q is reserved", seg)
	case strings.ContainsAny(seg, "/\x00"):
		return errors.Newf(errors.CodeInvalidInput, "path segment %q contains a separator", seg)
	}
	return nil
}
