package core

import (
	"io/fs"
	"path"
	"strings"
)

// CopyFrom copies every regular file below srcRoot in a read-only filesystem
// (typically embed.FS or testing/fstest.MapFS) into dst, preserving the
// directory structure. Empty directories are recreated as well, so fixtures
// may contain empty variant directories.
//
// Use "." as srcRoot to copy the entire source filesystem.
//
// Example:
//
//	//go:embed testdata/scenario
//	var fixtures embed.FS
//
//	mem := billy.NewMemory()
//	err := core.CopyFrom(fixtures, mem, "testdata/scenario")
func CopyFrom(src fs.FS, dst FS, srcRoot string) error {
	return fs.WalkDir(src, srcRoot, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		dstPath := relativeTo(srcRoot, filePath)

		if d.IsDir() {
			if dstPath == "" {
				return nil
			}
			return dst.MkdirAll(dstPath, 0o755)
		}

		data, err := fs.ReadFile(src, filePath)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		if dir := path.Dir(dstPath); dir != "." && dir != "" {
			if err := dst.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}

		perm := info.Mode().Perm()
		if perm == 0 {
			perm = 0o644
		}
		return dst.WriteFile(dstPath, data, perm)
	})
}

// relativeTo strips srcRoot from p. It returns "" for srcRoot itself.
func relativeTo(srcRoot, p string) string {
	if srcRoot == "." || srcRoot == "" {
		if p == "." {
			return ""
		}
		return p
	}
	rel := strings.TrimPrefix(p, srcRoot)
	return strings.TrimPrefix(rel, "/")
}
