package core_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmgilman/go/fstree/fs/core"
)

func TestSentinelsMatchStdlib(t *testing.T) {
	tests := []struct {
		name      string
		coreErr   error
		stdlibErr error
	}{
		{"ErrNotExist", core.ErrNotExist, fs.ErrNotExist},
		{"ErrPermission", core.ErrPermission, fs.ErrPermission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.coreErr, tt.stdlibErr)
			assert.ErrorIs(t, &fs.PathError{Op: "lstat", Path: "svc", Err: tt.stdlibErr}, tt.coreErr)
		})
	}

	assert.False(t, errors.Is(core.ErrNotExist, core.ErrPermission))
}
