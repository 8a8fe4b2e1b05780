package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"

	fscue "github.com/jmgilman/go/fstree/cue"
	"github.com/jmgilman/go/fstree/errors"
	"github.com/jmgilman/go/fstree/fs/billy"
	"github.com/jmgilman/go/fstree/fs/core"
	"github.com/jmgilman/go/fstree/fs/minio"
	"github.com/jmgilman/go/fstree/value"
)

const s3Scheme = "s3://"

// openTree resolves a tree location to storage and the root inside it.
// Local paths are opened relative to their parent directory; s3://BUCKET/PATH
// locations use the bucket configured from the environment.
func (a *app) openTree(location string) (core.FS, string, error) {
	if rest, ok := strings.CutPrefix(location, s3Scheme); ok {
		bucket, key, _ := strings.Cut(rest, "/")
		key = strings.Trim(key, "/")
		if bucket == "" || key == "" {
			return nil, "", usagef("invalid location %q: want %sBUCKET/PATH", location, s3Scheme)
		}

		fsys, err := minio.NewMinIO(minio.Config{
			Endpoint:  a.getenv("FSTREE_S3_ENDPOINT"),
			Bucket:    bucket,
			AccessKey: a.getenv("FSTREE_S3_ACCESS_KEY"),
			SecretKey: a.getenv("FSTREE_S3_SECRET_KEY"),
			UseSSL:    a.getenv("FSTREE_S3_INSECURE") == "",
		})
		if err != nil {
			return nil, "", errors.WrapWithContext(err, errors.CodeInvalidConfig,
				"cannot configure S3 storage", map[string]interface{}{"bucket": bucket})
		}
		return fsys, key, nil
	}

	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.CodeInvalidInput, "cannot resolve tree location")
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return nil, "", usagef("invalid location %q: the filesystem root cannot hold a tree", location)
	}
	return billy.NewLocal(parent), filepath.Base(abs), nil
}

// loadSchema compiles a CUE file, or every CUE file of a directory as one
// package, selects a definition when one is named and derives the shape it
// describes.
func loadSchema(ctx context.Context, path, definition string) (cue.Value, *value.Shape, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return cue.Value{}, nil, errors.Wrap(err, errors.CodeInvalidInput, "cannot resolve schema path")
	}
	info, err := os.Stat(abs)
	if err != nil {
		return cue.Value{}, nil, errors.WrapWithContext(err, errors.CodeIO, "cannot read schema", map[string]interface{}{"schema": path})
	}

	var schema cue.Value
	if info.IsDir() {
		schema, err = fscue.NewLoader(billy.NewLocal(abs)).LoadPackage(ctx, ".")
	} else {
		schema, err = fscue.NewLoader(billy.NewLocal(filepath.Dir(abs))).LoadFile(ctx, filepath.Base(abs))
	}
	if err != nil {
		return cue.Value{}, nil, err
	}

	if definition != "" {
		schema, err = fscue.LookupDefinition(schema, definition)
		if err != nil {
			return cue.Value{}, nil, err
		}
	}

	s, err := fscue.Shape(schema)
	if err != nil {
		return cue.Value{}, nil, err
	}
	return schema, s, nil
}

// readInput reads a whole document from a file, or from stdin for "-".
func (a *app) readInput(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeIO, "cannot read input", map[string]interface{}{"input": path})
	}
	return data, nil
}

// writeOutput writes a whole document to a file, or to stdout for "-".
func (a *app) writeOutput(path string, data []byte) error {
	var err error
	if path == "-" {
		if len(data) > 0 && data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = a.stdout.Write(data)
	} else {
		err = os.WriteFile(path, data, 0o644)
	}
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeIO, "cannot write output", map[string]interface{}{"output": path})
	}
	return nil
}

// formatFromPath guesses a document format from a file extension.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".cue":
		return "cue"
	case ".cbor":
		return "cbor"
	default:
		return "json"
	}
}
