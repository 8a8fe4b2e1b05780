package core

import (
	"io/fs"
)

// FSType identifies the kind of storage behind an FS.
type FSType int

const (
	// FSTypeUnknown is the zero value.
	FSTypeUnknown FSType = iota
	// FSTypeLocal is a directory on local disk.
	FSTypeLocal
	// FSTypeMemory is an in-process filesystem, mostly used by tests.
	FSTypeMemory
	// FSTypeRemote is an object store such as S3 or MinIO.
	FSTypeRemote
)

// String returns the lower-case name of the type.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// FS is a hierarchical byte store a tree can be encoded into and decoded
// from. Names are slash separated and relative to the provider's root.
type FS interface {
	ReadFS
	WriteFS
	ManageFS

	// Type reports the kind of storage.
	Type() FSType
}

// ReadFS is the part of the contract a decoder uses.
type ReadFS interface {
	// ReadFile returns the whole content of the named file.
	ReadFile(name string) ([]byte, error)

	// ReadDir lists the entries of the named directory.
	//
	// Order is whatever the provider lists in. Variant decoding takes the
	// first entry as the case name, so that choice inherits this order.
	ReadDir(name string) ([]fs.DirEntry, error)

	// Lstat describes the named entry without following a final symbolic
	// link. Providers without links report virtual directories as
	// directories and objects as regular files.
	Lstat(name string) (fs.FileInfo, error)

	// Exists reports whether the named entry exists. A missing entry is
	// (false, nil); any other failure is returned.
	Exists(name string) (bool, error)
}

// WriteFS is the part of the contract an encoder uses.
type WriteFS interface {
	// WriteFile creates or truncates the named file and writes data to it.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// MkdirAll creates path and any missing parents. An existing directory
	// is not an error.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS removes entries. Callers clear a tree with it before encoding
// over an old one.
type ManageFS interface {
	// Remove deletes a file or an empty directory.
	Remove(name string) error

	// RemoveAll deletes path and everything below it. A missing path is not
	// an error.
	RemoveAll(path string) error
}

// SymlinkFS is implemented by providers that can store symbolic links.
// Tests use it to plant links that a codec must refuse to follow:
//
//	if sfs, ok := fsys.(core.SymlinkFS); ok {
//		_ = sfs.Symlink("../outside", "tree/port")
//	}
type SymlinkFS interface {
	// Symlink creates newname as a link to oldname. The target is stored
	// as given and may dangle.
	Symlink(oldname, newname string) error

	// Readlink returns the target of the named link.
	Readlink(name string) (string, error)
}
