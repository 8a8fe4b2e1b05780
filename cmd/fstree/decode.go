package main

import (
	"context"
	"log/slog"

	"cuelang.org/go/cue"
	"github.com/spf13/pflag"

	"github.com/jmgilman/go/fstree"
	fscue "github.com/jmgilman/go/fstree/cue"
	"github.com/jmgilman/go/fstree/subdoc"
	"github.com/jmgilman/go/fstree/value"
	"github.com/jmgilman/go/fstree/value/shape"
)

type decodeCmd struct {
	format     string
	out        string
	marker     string
	subdoc     string
	schema     string
	definition string
}

func (c *decodeCmd) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&c.format, "format", "f", "json", "output format: json, yaml, cue or cbor")
	flagSet.StringVarP(&c.out, "out", "o", "-", "output document, - for stdout")
	flagSet.StringVar(&c.marker, "marker", fstree.DefaultSubdocMarker, "name prefix stored as a sub-document, empty to disable")
	flagSet.StringVar(&c.subdoc, "subdoc", "json", "sub-document format: json, yaml, cue or cbor")
	flagSet.StringVar(&c.schema, "schema", "", "CUE schema typing and validating the tree (default: untyped)")
	flagSet.StringVar(&c.definition, "definition", "", "definition in --schema describing the tree, e.g. #Service")
}

func (c *decodeCmd) run(ctx context.Context, a *app, logger *slog.Logger, args []string) error {
	if len(args) != 1 {
		return usagef("decode takes exactly one tree location, got %d", len(args))
	}
	if c.definition != "" && c.schema == "" {
		return usagef("--definition requires --schema")
	}

	codec, err := subdoc.ByName(c.format)
	if err != nil {
		return usageError{err: err}
	}
	sub, err := subdoc.ByName(c.subdoc)
	if err != nil {
		return usageError{err: err}
	}

	var (
		schema cue.Value
		s      = shape.Any()
	)
	if c.schema != "" {
		schema, s, err = loadSchema(ctx, c.schema, c.definition)
		if err != nil {
			return err
		}
		logger.Debug("derived shape", "schema", c.schema, "shape", s.String())
	}

	fsys, root, err := a.openTree(args[0])
	if err != nil {
		return err
	}

	logger.Debug("opened tree", "storage", fsys.Type().String(), "root", root)
	logger.Info("decoding tree", "tree", args[0])
	v, err := fstree.Decode(fsys, root, s,
		fstree.WithLogger(logger),
		fstree.WithSubdocMarker(c.marker),
		fstree.WithSubdocCodec(sub),
	)
	if err != nil {
		return err
	}

	if c.schema != "" {
		if err := fscue.Validate(ctx, schema, v); err != nil {
			return err
		}
	}

	return c.write(a, codec, v)
}

func (c *decodeCmd) write(a *app, codec subdoc.Codec, v value.Value) error {
	data, err := codec.Encode(v)
	if err != nil {
		return err
	}
	return a.writeOutput(c.out, data)
}
