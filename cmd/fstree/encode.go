package main

import (
	"context"
	"log/slog"

	"cuelang.org/go/cue"
	"github.com/spf13/pflag"

	"github.com/jmgilman/go/fstree"
	fscue "github.com/jmgilman/go/fstree/cue"
	"github.com/jmgilman/go/fstree/errors"
	"github.com/jmgilman/go/fstree/subdoc"
	"github.com/jmgilman/go/fstree/value"
)

type encodeCmd struct {
	format     string
	in         string
	out        string
	marker     string
	subdoc     string
	schema     string
	definition string
	clean      bool
}

func (c *encodeCmd) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&c.format, "format", "f", "", "input format: json, yaml, cue or cbor (default: from --in extension, else json)")
	flagSet.StringVarP(&c.in, "in", "i", "-", "input document, - for stdin")
	flagSet.StringVarP(&c.out, "out", "o", "", "tree to write: a directory or s3://BUCKET/PATH (required)")
	flagSet.StringVar(&c.marker, "marker", fstree.DefaultSubdocMarker, "name prefix stored as a sub-document, empty to disable")
	flagSet.StringVar(&c.subdoc, "subdoc", "json", "sub-document format: json, yaml, cue or cbor")
	flagSet.StringVar(&c.schema, "schema", "", "CUE schema typing and validating the input")
	flagSet.StringVar(&c.definition, "definition", "", "definition in --schema describing the document, e.g. #Service")
	flagSet.BoolVar(&c.clean, "clean", false, "remove an existing tree at --out before writing")
}

func (c *encodeCmd) run(ctx context.Context, a *app, logger *slog.Logger, args []string) error {
	if len(args) > 0 {
		return usagef("unexpected argument: %s", args[0])
	}
	if c.out == "" {
		return usagef("--out is required")
	}
	if c.definition != "" && c.schema == "" {
		return usagef("--definition requires --schema")
	}

	format := c.format
	if format == "" {
		format = formatFromPath(c.in)
	}
	codec, err := subdoc.ByName(format)
	if err != nil {
		return usageError{err: err}
	}
	sub, err := subdoc.ByName(c.subdoc)
	if err != nil {
		return usageError{err: err}
	}

	data, err := a.readInput(c.in)
	if err != nil {
		return err
	}

	var (
		schema cue.Value
		s      *value.Shape
	)
	if c.schema != "" {
		schema, s, err = loadSchema(ctx, c.schema, c.definition)
		if err != nil {
			return err
		}
		logger.Debug("derived shape", "schema", c.schema, "shape", s.String())
	}

	v, err := codec.Decode(data, s)
	if err != nil {
		return err
	}
	if c.schema != "" {
		if err := fscue.Validate(ctx, schema, v); err != nil {
			return err
		}
	}
	return c.encode(a, logger, v, s, sub)
}

func (c *encodeCmd) encode(a *app, logger *slog.Logger, v value.Value, s *value.Shape, sub subdoc.Codec) error {
	fsys, root, err := a.openTree(c.out)
	if err != nil {
		return err
	}

	logger.Debug("opened tree", "storage", fsys.Type().String(), "root", root)

	if c.clean {
		logger.Info("removing existing tree", "out", c.out)
		if err := fsys.RemoveAll(root); err != nil {
			return errors.WrapAt(err, errors.CodeIO, "failed to remove existing tree", root)
		}
	}

	logger.Info("encoding tree", "out", c.out, "kind", v.Kind().String())
	return fstree.Encode(fsys, root, v,
		fstree.WithLogger(logger),
		fstree.WithShape(s),
		fstree.WithSubdocMarker(c.marker),
		fstree.WithSubdocCodec(sub),
	)
}
