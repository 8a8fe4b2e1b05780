// Package billy provides go-billy-backed implementations of core.FS.
//
// NewLocal wraps go-billy's osfs rooted at a directory on disk; NewMemory
// wraps memfs. Both support symbolic links through core.SymlinkFS, which the
// tree codec relies on to detect and reject links it must not follow.
//
// Usage:
//
//	fsys := billy.NewLocal("/var/lib/trees")
//	err := fstree.Encode(fsys, "config", v)
//
// # Memory Filesystem
//
// For testing or temporary storage, use the in-memory filesystem:
//
//	fsys := billy.NewMemory()
//	err := fsys.WriteFile("temp.txt", []byte("data"), 0644)
//
// # Thread Safety
//
// FS instances are safe for concurrent use by multiple goroutines to the
// extent the underlying billy filesystem is.
package billy
