package fstree

import (
	"unicode/utf8"

	"github.com/jmgilman/go/fstree/errors"
	"github.com/jmgilman/go/fstree/value"
)

// encodeScalar renders a scalar as file content. Unit is an empty file and
// bytes are stored raw; every other scalar is stored as UTF-8 text.
func encodeScalar(v value.Value) ([]byte, error) {
	switch v := v.(type) {
	case value.Unit:
		return []byte{}, nil
	case value.Bytes:
		return []byte(v), nil
	}

	text, err := value.FormatText(v)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// decodeScalar parses file content as a scalar of shape s. Content read as
// text must be valid UTF-8.
func decodeScalar(data []byte, s *value.Shape) (value.Value, error) {
	switch s.Kind {
	case value.KindUnit:
		return value.Unit{}, nil
	case value.KindBytes:
		return value.Bytes(data), nil
	}

	if !utf8.Valid(data) {
		return nil, errors.Newf(errors.CodeInvalidUnicode, "content of %s is not valid UTF-8", s)
	}
	return value.ParseText(string(data), s)
}

// decodeUntyped returns file content as a string, or as bytes when it is not
// valid UTF-8.
func decodeUntyped(data []byte) value.Value {
	if utf8.Valid(data) {
		return value.String(data)
	}
	return value.Bytes(data)
}
