package cue

import (
	"context"
	"fmt"
	"path"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/build"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/jmgilman/go/fstree/fs/core"
)

// Loader compiles CUE schemas read from a filesystem.
// Every value it returns shares one CUE context, so they can be unified.
type Loader struct {
	fs     core.ReadFS
	cueCtx *cue.Context
}

// NewLoader creates a loader reading from filesystem.
func NewLoader(filesystem core.ReadFS) *Loader {
	return &Loader{
		fs:     filesystem,
		cueCtx: cuecontext.New(),
	}
}

// LoadFile compiles a single CUE file. The path is relative to the
// filesystem root.
//
// Returns CodeIO when the file cannot be read and CodeSchemaFailed when it
// does not compile.
func (l *Loader) LoadFile(ctx context.Context, filePath string) (cue.Value, error) {
	return l.load(ctx, "file_path", filePath, []string{filePath}, "/", filePath)
}

// LoadPackage compiles the .cue files directly inside a directory as one
// package. Subdirectories are not read.
//
// Returns CodeIO when the directory cannot be read and CodeSchemaFailed when
// it holds no CUE files or they do not compile.
func (l *Loader) LoadPackage(ctx context.Context, packagePath string) (cue.Value, error) {
	if err := ctx.Err(); err != nil {
		return cue.Value{}, wrapLoadErrorWithContext(err, "context cancelled", makeContext("package_path", packagePath))
	}

	entries, err := l.fs.ReadDir(packagePath)
	if err != nil {
		return cue.Value{}, wrapLoadErrorWithContext(err, "failed to read package directory",
			makeContext("package_path", packagePath))
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ".cue" {
			files = append(files, path.Join(packagePath, entry.Name()))
		}
	}
	if len(files) == 0 {
		return cue.Value{}, wrapSchemaErrorWithContext(fmt.Errorf("no CUE files found"),
			"package contains no .cue files", makeContext("package_path", packagePath))
	}

	return l.load(ctx, "package_path", packagePath, files, overlayPath(packagePath), ".")
}

// load reads files into an overlay rooted at "/" and builds the instance
// named by arg, resolved from dir.
func (l *Loader) load(ctx context.Context, key, name string, files []string, dir, arg string) (cue.Value, error) {
	if err := ctx.Err(); err != nil {
		return cue.Value{}, wrapLoadErrorWithContext(err, "context cancelled", makeContext(key, name))
	}

	overlay := make(map[string]load.Source, len(files))
	for _, f := range files {
		data, err := l.fs.ReadFile(f)
		if err != nil {
			return cue.Value{}, wrapLoadErrorWithContext(err, "failed to read CUE file", makeContext(key, name, "file", f))
		}
		overlay[overlayPath(f)] = load.FromBytes(data)
	}

	insts := load.Instances([]string{arg}, &load.Config{Dir: dir, Overlay: overlay})
	return l.build(insts, key, name)
}

// build turns the first loaded instance into a validated value. Schemas need
// not be concrete.
func (l *Loader) build(insts []*build.Instance, key, name string) (cue.Value, error) {
	fail := func(err error, msg string) (cue.Value, error) {
		return cue.Value{}, wrapSchemaErrorWithContext(err, msg, makeContext(key, name))
	}

	if len(insts) == 0 {
		return fail(fmt.Errorf("no instances loaded"), "failed to load CUE schema")
	}
	if err := insts[0].Err; err != nil {
		return fail(err, "failed to load CUE schema")
	}

	val := l.cueCtx.BuildInstance(insts[0])
	if err := val.Err(); err != nil {
		return fail(err, "failed to build CUE schema")
	}
	if err := val.Validate(); err != nil {
		return fail(err, "CUE validation failed")
	}
	return val, nil
}

// overlayPath maps a filesystem name to its absolute overlay path.
func overlayPath(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return path.Clean("/" + name)
}
