package fstree

import (
	"io/fs"
	"log/slog"
	"strings"

	"github.com/jmgilman/go/fstree/subdoc"
	"github.com/jmgilman/go/fstree/value"
)

// DefaultSubdocMarker is the name prefix that routes a record field or map
// key through the sub-document codec.
const DefaultSubdocMarker = "json"

// Option configures an Encoder or Decoder.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	marker   string
	codec    subdoc.Codec
	shape    *value.Shape
	fileMode fs.FileMode
	dirMode  fs.FileMode
}

func newConfig(opts []Option) *config {
	cfg := &config{
		logger:   slog.New(slog.DiscardHandler),
		marker:   DefaultSubdocMarker,
		codec:    subdoc.JSON(),
		fileMode: 0o644,
		dirMode:  0o755,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger used for debug output. Nothing is logged by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSubdocMarker sets the name prefix that routes record fields and map
// keys through the sub-document codec. An empty prefix disables routing by
// name; fields declared with shape.Subdoc are still routed.
func WithSubdocMarker(prefix string) Option {
	return func(c *config) {
		c.marker = prefix
	}
}

// WithSubdocCodec sets the codec used for sub-documents. The default is
// subdoc.JSON.
func WithSubdocCodec(codec subdoc.Codec) Option {
	return func(c *config) {
		if codec != nil {
			c.codec = codec
		}
	}
}

// WithShape makes Encode check values against s and route the fields s
// declares as sub-documents through the sub-document codec.
func WithShape(s *value.Shape) Option {
	return func(c *config) {
		c.shape = s
	}
}

// WithFileMode sets the permission bits of written files. The default is
// 0644.
func WithFileMode(mode fs.FileMode) Option {
	return func(c *config) {
		c.fileMode = mode
	}
}

// WithDirMode sets the permission bits of created directories. The default
// is 0755.
func WithDirMode(mode fs.FileMode) Option {
	return func(c *config) {
		c.dirMode = mode
	}
}

// isSubdoc reports whether a field or key name is routed through the
// sub-document codec.
func (c *config) isSubdoc(name string) bool {
	return c.marker != "" && strings.HasPrefix(name, c.marker)
}
