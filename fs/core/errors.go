package core

import "io/fs"

// Providers report missing entries and denied access with the io/fs
// sentinels, wrapped in *fs.PathError. Codecs test for them with errors.Is.
var (
	// ErrNotExist is returned when a file or directory does not exist.
	ErrNotExist = fs.ErrNotExist

	// ErrPermission is returned when the provider denies access.
	ErrPermission = fs.ErrPermission
)
