// Package core defines the storage contract used by fstree.
//
// The codec needs only a handful of operations on a hierarchical byte store.
// They are grouped into small interfaces that compose into FS:
//
//   - ReadFS: ReadFile, ReadDir, Lstat, Exists
//   - WriteFS: WriteFile, MkdirAll
//   - ManageFS: Remove, RemoveAll
//
// SymlinkFS is optional and discovered by type assertion. Object stores do
// not implement it.
//
// # Providers
//
// Concrete implementations live in sibling packages:
//
//   - github.com/jmgilman/go/fstree/fs/billy - local disk and in-memory (go-billy)
//   - github.com/jmgilman/go/fstree/fs/minio - MinIO / S3 object storage
//
// # Fixtures
//
// CopyFrom seeds a writable FS from any fs.FS, which makes embed.FS fixtures
// usable against every provider:
//
//	err := core.CopyFrom(fixtures, billy.NewMemory(), "testdata/tree")
package core
