package minio

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jmgilman/go/fstree/errors"
	"github.com/jmgilman/go/fstree/fs/core"
)

// FS implements core.FS for MinIO/S3-compatible storage.
//
// Directories are virtual: a prefix with at least one object under it is a
// directory. MkdirAll stores a zero-length "dir/" marker object so that empty
// directories survive. Object stores have no symbolic links, so Lstat never
// reports one.
type FS struct {
	client             *minio.Client
	bucket             string
	prefix             string // Optional prefix for all keys
	multipartThreshold int64  // Part size for multipart uploads
}

// NewMinIO creates a MinIO-backed filesystem.
// Returns error if configuration is invalid or the client cannot be created.
func NewMinIO(cfg Config) (*FS, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "invalid config")
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to create minio client")
		}
	}

	multipartThreshold := cfg.MultipartThreshold
	if multipartThreshold == 0 {
		multipartThreshold = minPartSize
	}

	return &FS{
		client:             client,
		bucket:             cfg.Bucket,
		prefix:             cleanPrefix(cfg.Prefix),
		multipartThreshold: multipartThreshold,
	}, nil
}

// Type returns core.FSTypeRemote.
func (m *FS) Type() core.FSType {
	return core.FSTypeRemote
}

// joinPath joins the filesystem prefix with the given name.
func (m *FS) joinPath(name string) string {
	return joinKey(m.prefix, name)
}

// ReadFile reads the named file and returns the contents.
func (m *FS) ReadFile(name string) ([]byte, error) {
	key := m.joinPath(name)
	ctx := context.Background()

	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, opError("readfile", name, err)
	}
	defer func() {
		_ = obj.Close()
	}()

	// GetObject is lazy; Stat surfaces a missing key before reading.
	info, err := obj.Stat()
	if err != nil {
		return nil, opError("readfile", name, err)
	}

	buf := make([]byte, info.Size)
	if _, err := io.ReadFull(obj, buf); err != nil {
		return nil, opError("readfile", name, err)
	}

	return buf, nil
}

// ReadDir lists the immediate children of the named directory, sorted by name.
func (m *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	key := dirKey(m.joinPath(name))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		entries []fs.DirEntry
		marker  bool
	)
	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    key,
		Recursive: false,
	}) {
		if object.Err != nil {
			return nil, opError("readdir", name, object.Err)
		}

		if object.Key == key {
			marker = true
			continue
		}

		relName := strings.TrimPrefix(object.Key, key)
		isDir := strings.HasSuffix(relName, "/")
		relName = strings.TrimSuffix(relName, "/")
		if relName == "" {
			continue
		}

		info := fileInfo(relName, object.Size, object.LastModified)
		if isDir {
			info = dirInfo(relName)
		}
		entries = append(entries, objectEntry{info: info})
	}

	if len(entries) == 0 && !marker && key != "" {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

// Lstat returns file information for the named object or virtual directory.
func (m *FS) Lstat(name string) (fs.FileInfo, error) {
	key := m.joinPath(name)
	base := path.Base(cleanKey(name))
	if key == "" {
		return dirInfo(base), nil
	}

	ctx := context.Background()
	info, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return fileInfo(base, info.Size, info.LastModified), nil
	}
	if err := translate(err); !errors.Is(err, fs.ErrNotExist) {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: err}
	}

	ok, err := m.dirExists(ctx, key)
	if err != nil {
		return nil, opError("lstat", name, err)
	}
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}
	return dirInfo(base), nil
}

// dirExists reports whether any object, including a directory marker,
// lives under key.
func (m *FS) dirExists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	object, ok := <-m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:  dirKey(key),
		MaxKeys: 1,
	})
	if !ok {
		return false, nil
	}
	if object.Err != nil {
		return false, object.Err
	}
	return true, nil
}

// Exists reports whether the named file or directory exists.
func (m *FS) Exists(name string) (bool, error) {
	_, err := m.Lstat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// WriteFile uploads data as the named object, replacing any previous
// content. Parent directories need not exist. The permission bits are
// ignored.
func (m *FS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	key := m.joinPath(name)
	if key == "" {
		return &fs.PathError{Op: "writefile", Path: name, Err: fs.ErrInvalid}
	}

	_, err := m.client.PutObject(
		context.Background(),
		m.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: "application/octet-stream",
			PartSize:    uint64(m.multipartThreshold),
		},
	)
	if err != nil {
		return opError("writefile", name, err)
	}
	return nil
}

// MkdirAll stores a directory marker for path. Parents are implied by the
// marker's key and need no objects of their own.
func (m *FS) MkdirAll(name string, _ fs.FileMode) error {
	key := m.joinPath(name)
	if key == "" {
		return nil
	}

	_, err := m.client.PutObject(
		context.Background(),
		m.bucket,
		dirKey(key),
		bytes.NewReader(nil),
		0,
		minio.PutObjectOptions{ContentType: "application/x-directory"},
	)
	if err != nil {
		return opError("mkdirall", name, err)
	}
	return nil
}

// Remove removes the named object and its directory marker, if any.
// Removing a missing object succeeds, as it does in S3.
func (m *FS) Remove(name string) error {
	key := m.joinPath(name)
	ctx := context.Background()

	for _, k := range []string{key, dirKey(key)} {
		if k == "" {
			continue
		}
		if err := m.client.RemoveObject(ctx, m.bucket, k, minio.RemoveObjectOptions{}); err != nil {
			return opError("remove", name, err)
		}
	}

	return nil
}

// RemoveAll removes path and any children it contains.
func (m *FS) RemoveAll(name string) error {
	key := m.joinPath(name)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if key != "" {
		if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return opError("removeall", name, err)
		}
	}

	objectsCh := make(chan minio.ObjectInfo, 100)

	var listErr error
	go func() {
		defer close(objectsCh)
		for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
			Prefix:    dirKey(key),
			Recursive: true,
		}) {
			if object.Err != nil {
				listErr = object.Err
				return
			}
			objectsCh <- object
		}
	}()

	var firstErr error
	for result := range m.client.RemoveObjects(ctx, m.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if result.Err != nil && firstErr == nil {
			firstErr = result.Err
		}
	}

	if listErr != nil {
		return opError("removeall", name, listErr)
	}
	if firstErr != nil {
		return opError("removeall", name, firstErr)
	}

	return nil
}

// Compile-time interface check.
var _ core.FS = (*FS)(nil)
