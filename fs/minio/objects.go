package minio

import (
	"io/fs"
	"time"
)

const (
	objectMode = fs.FileMode(0o644)
	prefixMode = fs.ModeDir | 0o755
)

// objectInfo describes an object or a virtual directory.
type objectInfo struct {
	name    string
	size    int64
	modTime time.Time
	mode    fs.FileMode
}

func fileInfo(name string, size int64, modTime time.Time) *objectInfo {
	return &objectInfo{name: name, size: size, modTime: modTime, mode: objectMode}
}

func dirInfo(name string) *objectInfo {
	return &objectInfo{name: name, mode: prefixMode}
}

func (i *objectInfo) Name() string       { return i.name }
func (i *objectInfo) Size() int64        { return i.size }
func (i *objectInfo) Mode() fs.FileMode  { return i.mode }
func (i *objectInfo) ModTime() time.Time { return i.modTime }
func (i *objectInfo) IsDir() bool        { return i.mode.IsDir() }
func (i *objectInfo) Sys() any           { return nil }

// objectEntry is a directory listing entry backed by its info.
type objectEntry struct {
	info *objectInfo
}

func (e objectEntry) Name() string               { return e.info.name }
func (e objectEntry) IsDir() bool                { return e.info.IsDir() }
func (e objectEntry) Type() fs.FileMode          { return e.info.mode.Type() }
func (e objectEntry) Info() (fs.FileInfo, error) { return e.info, nil }

var (
	_ fs.FileInfo = (*objectInfo)(nil)
	_ fs.DirEntry = objectEntry{}
)
