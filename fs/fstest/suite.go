// Package fstest provides a conformance test suite for validating storage
// providers against the core.FS contract the tree codec depends on.
//
// The suite checks the behaviours the codec relies on rather than every
// corner of a POSIX filesystem: whole-file reads and writes, directory
// listings, Lstat that reports directories and never follows links,
// MkdirAll creating parents, recursive removal, and (when supported)
// symbolic links that are visible to Lstat.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func() core.FS {
//	        return myprovider.New()
//	    })
//	}
package fstest

import (
	"testing"

	"github.com/jmgilman/go/fstree/fs/core"
)

// FSTestConfig configures the test suite to match filesystem behavior characteristics.
type FSTestConfig struct {
	// VirtualDirectories indicates directories are virtual (e.g., S3 prefixes).
	// When true, an empty directory created with MkdirAll may not be listed
	// or reported by Lstat.
	VirtualDirectories bool

	// IdempotentDelete indicates delete operations succeed on non-existent files.
	// When true, Remove() on non-existent files returns nil instead of fs.ErrNotExist.
	IdempotentDelete bool

	// SkipTests lists specific test names to skip (for edge cases).
	// Format: "TestGroup" or "TestGroup/SubTest" (e.g., "ManageFS/RemoveNotExist").
	SkipTests []string
}

// POSIXTestConfig returns configuration for POSIX-like filesystems (local, memory).
func POSIXTestConfig() FSTestConfig {
	return FSTestConfig{}
}

// S3TestConfig returns configuration for S3-like filesystems (MinIO, S3).
func S3TestConfig() FSTestConfig {
	return FSTestConfig{
		VirtualDirectories: true,
		IdempotentDelete:   true,
	}
}

// shouldSkip reports whether name is listed in SkipTests.
func (c FSTestConfig) shouldSkip(name string) bool {
	for _, skip := range c.SkipTests {
		if skip == name {
			return true
		}
	}
	return false
}

// run runs fn as a subtest unless it is skipped by configuration.
func (c FSTestConfig) run(t *testing.T, group, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if c.shouldSkip(group + "/" + name) {
			t.Skip("Skipped by provider configuration")
		}
		fn(t)
	})
}

// TestSuite runs all applicable conformance tests against a filesystem.
// The newFS function should return a fresh, empty filesystem for each test.
// Uses POSIXTestConfig() by default.
func TestSuite(t *testing.T, newFS func() core.FS) {
	TestSuiteWithConfig(t, newFS, POSIXTestConfig())
}

// TestSuiteWithConfig runs conformance tests with behavior configuration.
func TestSuiteWithConfig(t *testing.T, newFS func() core.FS, config FSTestConfig) {
	groups := []struct {
		name string
		fn   func(*testing.T, core.FS, FSTestConfig)
	}{
		{"ReadFS", TestReadFSWithConfig},
		{"WriteFS", TestWriteFSWithConfig},
		{"ManageFS", TestManageFSWithConfig},
		{"SymlinkFS", TestSymlinkFSWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if config.shouldSkip(g.name) {
				t.Skip("Skipped by provider configuration")
			}
			g.fn(t, newFS(), config)
		})
	}
}
