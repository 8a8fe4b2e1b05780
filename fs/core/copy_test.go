package core_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fstree/fs/billy"
	"github.com/jmgilman/go/fstree/fs/core"
)

func TestCopyFrom(t *testing.T) {
	src := fstest.MapFS{
		"fixtures/tree/a":        {Data: []byte("true")},
		"fixtures/tree/b/0":      {Data: []byte("1")},
		"fixtures/tree/b/1":      {Data: []byte("2")},
		"fixtures/tree/empty":    {Mode: fs.ModeDir | 0o755},
		"fixtures/other/ignored": {Data: []byte("x")},
	}

	dst := billy.NewMemory()
	require.NoError(t, core.CopyFrom(src, dst, "fixtures/tree"))

	data, err := dst.ReadFile("a")
	require.NoError(t, err)
	assert.Equal(t, "true", string(data))

	data, err = dst.ReadFile("b/1")
	require.NoError(t, err)
	assert.Equal(t, "2", string(data))

	info, err := dst.Lstat("empty")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	exists, err := dst.Exists("ignored")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCopyFrom_WholeSource(t *testing.T) {
	src := fstest.MapFS{
		"x/y": {Data: []byte("z")},
	}

	dst := billy.NewMemory()
	require.NoError(t, core.CopyFrom(src, dst, "."))

	data, err := dst.ReadFile("x/y")
	require.NoError(t, err)
	assert.Equal(t, "z", string(data))
}

func TestCopyFrom_MissingRoot(t *testing.T) {
	err := core.CopyFrom(fstest.MapFS{}, billy.NewMemory(), "nope")
	assert.ErrorIs(t, err, core.ErrNotExist)
}
