package value

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/jmgilman/go/fstree/errors"
)

// FormatText renders a scalar as text: booleans as "true"/"false", integers
// in decimal, floats in the shortest 'g' form that parses back to the same
// float64, and characters and strings as their UTF-8 text. Unit renders as
// the empty string. Bytes must hold valid UTF-8.
func FormatText(v Value) (string, error) {
	switch v := v.(type) {
	case Unit:
		return "", nil
	case Bool:
		return strconv.FormatBool(bool(v)), nil
	case Int:
		return strconv.FormatInt(int64(v), 10), nil
	case Uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case Float:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), nil
	case Char:
		if !utf8.ValidRune(rune(v)) {
			return "", errors.Newf(errors.CodeInvalidUnicode, "invalid character %U", rune(v))
		}
		return string(rune(v)), nil
	case String:
		return string(v), nil
	case Bytes:
		if !utf8.Valid(v) {
			return "", errors.New(errors.CodeInvalidUnicode, "bytes are not valid UTF-8 text")
		}
		return string(v), nil
	case nil:
		return "", errors.New(errors.CodeUnsupportedType, "cannot format a nil value")
	default:
		return "", errors.Newf(errors.CodeUnsupportedType, "%s is not a scalar", v.Kind())
	}
}

// ParseText parses text produced by FormatText back into a scalar of shape s.
//
// Integers are range-checked against the shape's width. A character is the
// first rune of the text; trailing text is ignored.
func ParseText(text string, s *Shape) (Value, error) {
	switch s.Kind {
	case KindUnit:
		return Unit{}, nil
	case KindBool:
		switch text {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		default:
			return nil, errors.Newf(errors.CodeInvalidBool, "invalid bool %q", text)
		}
	case KindInt:
		i, err := strconv.ParseInt(text, 10, s.IntBits())
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeParse, "invalid %s %q", s, text)
		}
		return Int(i), nil
	case KindUint:
		u, err := strconv.ParseUint(text, 10, s.IntBits())
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeParse, "invalid %s %q", s, text)
		}
		return Uint(u), nil
	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeParse, "invalid float %q", text)
		}
		return Float(f), nil
	case KindChar:
		if text == "" {
			return nil, errors.New(errors.CodeEmptyFile, "no character in empty content")
		}
		r, size := utf8.DecodeRuneInString(text)
		if r == utf8.RuneError && size <= 1 {
			return nil, errors.New(errors.CodeInvalidUnicode, "character is not valid UTF-8")
		}
		return Char(r), nil
	case KindString:
		if !utf8.ValidString(text) {
			return nil, errors.New(errors.CodeInvalidUnicode, "string is not valid UTF-8")
		}
		return String(text), nil
	case KindBytes:
		return Bytes(text), nil
	default:
		return nil, errors.Newf(errors.CodeUnsupportedType, "%s is not a scalar shape", s)
	}
}

// FitsInt reports whether i is representable as a signed integer of the
// given width.
func FitsInt(i int64, bits int) bool {
	if bits >= 64 {
		return true
	}
	limit := int64(1) << (bits - 1)
	return i >= -limit && i < limit
}

// FitsUint reports whether u is representable as an unsigned integer of the
// given width.
func FitsUint(u uint64, bits int) bool {
	if bits >= 64 {
		return true
	}
	return u <= uint64(math.MaxUint64)>>(64-bits)
}
