package minio

import (
	"context"
	"fmt"
	"io/fs"
	"sync/atomic"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jmgilman/go/fstree"
	"github.com/jmgilman/go/fstree/fs/core"
	"github.com/jmgilman/go/fstree/fs/fstest"
	"github.com/jmgilman/go/fstree/value"
	"github.com/jmgilman/go/fstree/value/shape"
)

const testBucket = "fstree-test"

// setupMinIOContainer starts a MinIO container and returns a client for it.
func setupMinIOContainer(t *testing.T) *minio.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     "minioadmin",
			"MINIO_ROOT_PASSWORD": "minioadmin",
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
	}

	minioC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start MinIO container")
	t.Cleanup(func() {
		_ = minioC.Terminate(ctx)
	})

	endpoint, err := minioC.Endpoint(ctx, "")
	require.NoError(t, err, "failed to get container endpoint")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err, "failed to create MinIO client")
	require.NoError(t, client.MakeBucket(ctx, testBucket, minio.MakeBucketOptions{}), "failed to create test bucket")

	return client
}

var fsCounter atomic.Int64

// newTestFS returns a filesystem isolated from every other one by its prefix.
func newTestFS(t *testing.T, client *minio.Client) *FS {
	t.Helper()

	fsys, err := NewMinIO(Config{
		Client: client,
		Bucket: testBucket,
		Prefix: fmt.Sprintf("run-%d", fsCounter.Add(1)),
	})
	require.NoError(t, err, "failed to create FS")
	return fsys
}

func TestMinioConformance(t *testing.T) {
	client := setupMinIOContainer(t)

	// Directory markers materialise empty directories, so only deletes
	// differ from POSIX.
	fstest.TestSuiteWithConfig(t, func() core.FS {
		return newTestFS(t, client)
	}, fstest.FSTestConfig{IdempotentDelete: true})
}

func TestMinioDirectories(t *testing.T) {
	client := setupMinIOContainer(t)
	fsys := newTestFS(t, client)

	require.NoError(t, fsys.WriteFile("svc/tags/0", []byte("web"), 0o644))
	require.NoError(t, fsys.MkdirAll("svc/empty", 0o755))

	t.Run("implied parents are directories", func(t *testing.T) {
		for _, dir := range []string{".", "svc", "svc/tags", "svc/empty"} {
			info, err := fsys.Lstat(dir)
			require.NoError(t, err, "Lstat(%q)", dir)
			assert.True(t, info.IsDir(), "Lstat(%q) should be a directory", dir)
		}
	})

	t.Run("objects are regular files", func(t *testing.T) {
		info, err := fsys.Lstat("svc/tags/0")
		require.NoError(t, err)
		assert.True(t, info.Mode().IsRegular())
		assert.Equal(t, int64(3), info.Size())
	})

	t.Run("listing hides the directory marker", func(t *testing.T) {
		entries, err := fsys.ReadDir("svc")
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
			assert.True(t, e.IsDir(), "%s should be a directory", e.Name())
		}
		assert.Equal(t, []string{"empty", "tags"}, names)

		entries, err = fsys.ReadDir("svc/empty")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := fsys.ReadDir("nope")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("remove all", func(t *testing.T) {
		require.NoError(t, fsys.RemoveAll("svc"))
		ok, err := fsys.Exists("svc")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestMinioRoundTrip(t *testing.T) {
	client := setupMinIOContainer(t)
	fsys := newTestFS(t, client)

	s := shape.Record(
		shape.Field("name", shape.String()),
		shape.Field("port", shape.Option(shape.Uint(16))),
		shape.Field("tags", shape.Seq(shape.String())),
		shape.Field("limits", shape.Map(shape.String(), shape.Int(64))),
		shape.Field("empty", shape.Seq(shape.Bool())),
		shape.Subdoc("labels", shape.Map(shape.String(), shape.String())),
	)
	v := value.NewRecord(
		"name", value.String("api"),
		"port", value.Some(value.Uint(8080)),
		"tags", value.Seq{value.String("web"), value.String("public")},
		"limits", value.Map{{Key: value.String("cpu"), Value: value.Int(2)}},
		"empty", value.Seq{},
		"labels", value.Map{{Key: value.String("team"), Value: value.String("core")}},
	)

	require.NoError(t, fstree.Encode(fsys, "service", v, fstree.WithShape(s)))

	data, err := fsys.ReadFile("service/labels")
	require.NoError(t, err)
	assert.JSONEq(t, `{"team":"core"}`, string(data))

	got, err := fstree.Decode(fsys, "service", s)
	require.NoError(t, err)
	assert.True(t, value.Equal(v, got), "round trip mismatch: got %v", got)
}
