package subdoc

import (
	"sort"
	"strings"

	"github.com/jmgilman/go/fstree/errors"
	"github.com/jmgilman/go/fstree/value"
)

// Codec renders a complete value as a single document and parses it back.
type Codec interface {
	// Name returns the short name of the format, e.g. "json".
	Name() string

	// Encode renders v as a document.
	Encode(v value.Value) ([]byte, error)

	// Decode parses data into a value of shape s. A nil shape infers the
	// value from the document.
	Decode(data []byte, s *value.Shape) (value.Value, error)
}

var registry = map[string]func() Codec{
	"json": JSON,
	"yaml": YAML,
	"cbor": CBOR,
	"cue":  CUE,
}

// ByName returns the codec registered under name. Names are case-insensitive
// and "yml" is accepted for YAML.
func ByName(name string) (Codec, error) {
	key := strings.ToLower(name)
	if key == "yml" {
		key = "yaml"
	}

	ctor, ok := registry[key]
	if !ok {
		return nil, errors.WithContext(
			errors.Newf(errors.CodeInvalidInput, "unknown sub-document format %q", name),
			"known", Names(),
		)
	}
	return ctor(), nil
}

// Names lists the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fromNative converts decoded document data to a value of shape s.
func fromNative(codec string, x any, s *value.Shape) (value.Value, error) {
	var (
		v   value.Value
		err error
	)
	if s == nil {
		v, err = value.Infer(x)
	} else {
		v, err = value.FromNative(x, s)
	}
	if err != nil {
		return nil, wrapf(err, codec, "document does not match %s", describe(s))
	}
	return v, nil
}

func describe(s *value.Shape) string {
	if s == nil {
		return "any"
	}
	return s.String()
}

func wrap(err error, codec, msg string) error {
	return errors.WithContext(errors.Wrap(err, errors.CodeSubdocument, msg), "format", codec)
}

func wrapf(err error, codec, format string, args ...interface{}) error {
	return errors.WithContext(errors.Wrapf(err, errors.CodeSubdocument, format, args...), "format", codec)
}

func fail(codec, msg string) error {
	return errors.WithContext(errors.New(errors.CodeSubdocument, msg), "format", codec)
}
