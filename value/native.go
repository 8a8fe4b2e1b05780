package value

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"sort"
	"time"

	"github.com/jmgilman/go/fstree/errors"
)

// NativeOption configures conversion to and from plain Go data.
type NativeOption func(*nativeConfig)

type nativeConfig struct {
	rawBytes bool
}

// WithRawBytes keeps Bytes as []byte instead of base64 text. Binary formats
// such as CBOR use it.
func WithRawBytes() NativeOption {
	return func(c *nativeConfig) {
		c.rawBytes = true
	}
}

func newNativeConfig(opts []NativeOption) *nativeConfig {
	cfg := &nativeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ToNative renders v as plain Go data of the kind produced by JSON, YAML and
// CBOR decoders: nil, bool, int64, uint64, float64, string, []byte,
// []any and map[string]any.
//
// Unit and None render as nil and Some as its inner value. Records and maps
// become map[string]any with map keys rendered by FormatText. Variants are
// externally tagged: a case without payload renders as its name, a case with
// payload as a single-entry map from name to payload.
func ToNative(v Value, opts ...NativeOption) (any, error) {
	return toNative(v, newNativeConfig(opts))
}

func toNative(v Value, cfg *nativeConfig) (any, error) {
	switch v := v.(type) {
	case nil, Unit:
		return nil, nil
	case Bool:
		return bool(v), nil
	case Int:
		return int64(v), nil
	case Uint:
		return uint64(v), nil
	case Float:
		return float64(v), nil
	case Char:
		return string(rune(v)), nil
	case String:
		return string(v), nil
	case Bytes:
		if cfg.rawBytes {
			return []byte(v), nil
		}
		return base64.StdEncoding.EncodeToString(v), nil
	case Option:
		return toNative(v.Value, cfg)
	case Seq:
		return listToNative(v, cfg)
	case Tuple:
		return listToNative(v, cfg)
	case Map:
		out := make(map[string]any, len(v))
		for _, e := range v {
			k, err := FormatText(e.Key)
			if err != nil {
				return nil, err
			}
			n, err := toNative(e.Value, cfg)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case Record:
		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			n, err := toNative(f.Value, cfg)
			if err != nil {
				return nil, err
			}
			out[f.Name] = n
		}
		return out, nil
	case Variant:
		if v.Payload == nil {
			return v.Name, nil
		}
		n, err := toNative(v.Payload, cfg)
		if err != nil {
			return nil, err
		}
		return map[string]any{v.Name: n}, nil
	default:
		return nil, errors.Newf(errors.CodeUnsupportedType, "unsupported value type %T", v)
	}
}

func listToNative(vs []Value, cfg *nativeConfig) ([]any, error) {
	out := make([]any, len(vs))
	for i, e := range vs {
		n, err := toNative(e, cfg)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// FromNative converts plain Go data into a value of shape s. It is the
// shape-directed inverse of ToNative and accepts every numeric type the
// supported document libraries produce.
func FromNative(x any, s *Shape) (Value, error) {
	switch s.Kind {
	case KindAny:
		return Infer(x)
	case KindUnit:
		if x != nil {
			return nil, nativeMismatch(s, x)
		}
		return Unit{}, nil
	case KindBool:
		b, ok := x.(bool)
		if !ok {
			return nil, nativeMismatch(s, x)
		}
		return Bool(b), nil
	case KindInt:
		i, err := toInt64(x)
		if err != nil {
			return nil, err
		}
		if !FitsInt(i, s.IntBits()) {
			return nil, parseErrorf("%d overflows %s", i, s)
		}
		return Int(i), nil
	case KindUint:
		u, err := toUint64(x)
		if err != nil {
			return nil, err
		}
		if !FitsUint(u, s.IntBits()) {
			return nil, parseErrorf("%d overflows %s", u, s)
		}
		return Uint(u), nil
	case KindFloat:
		f, err := toFloat64(x)
		if err != nil {
			return nil, err
		}
		return Float(f), nil
	case KindChar, KindString:
		str, ok := x.(string)
		if !ok {
			return nil, nativeMismatch(s, x)
		}
		return ParseText(str, s)
	case KindBytes:
		switch b := x.(type) {
		case []byte:
			return Bytes(b), nil
		case string:
			data, err := base64.StdEncoding.DecodeString(b)
			if err != nil {
				return nil, errors.Wrap(err, errors.CodeParse, "invalid base64 bytes")
			}
			return Bytes(data), nil
		default:
			return nil, nativeMismatch(s, x)
		}
	case KindOption:
		if x == nil {
			return None(), nil
		}
		v, err := FromNative(x, s.Elem)
		if err != nil {
			return nil, err
		}
		return Some(v), nil
	case KindSeq:
		list, ok := x.([]any)
		if !ok {
			return nil, nativeMismatch(s, x)
		}
		out := make(Seq, 0, len(list))
		for _, e := range list {
			v, err := FromNative(e, s.Elem)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case KindTuple:
		list, ok := x.([]any)
		if !ok {
			return nil, nativeMismatch(s, x)
		}
		if len(list) != len(s.Elems) {
			return nil, parseErrorf("tuple arity: expected %d elements, found %d", len(s.Elems), len(list))
		}
		out := make(Tuple, len(list))
		for i, e := range list {
			v, err := FromNative(e, s.Elems[i])
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case KindMap:
		return mapFromNative(x, s)
	case KindRecord:
		obj, ok := asObject(x)
		if !ok {
			return nil, nativeMismatch(s, x)
		}
		out := Record{Fields: make([]Field, 0, len(s.Fields))}
		for _, f := range s.Fields {
			raw, present := obj[f.Name]
			if !present && f.Shape.Kind != KindOption {
				return nil, parseErrorf("missing field %q", f.Name)
			}
			v, err := FromNative(raw, f.Shape)
			if err != nil {
				return nil, errors.WithContext(err, "field", f.Name)
			}
			out.Fields = append(out.Fields, Field{Name: f.Name, Value: v})
		}
		return out, nil
	case KindVariant:
		return variantFromNative(x, s)
	default:
		return nil, errors.Newf(errors.CodeUnsupportedType, "cannot convert to shape %s", s)
	}
}

func mapFromNative(x any, s *Shape) (Value, error) {
	type pair struct {
		key any
		val any
	}
	var pairs []pair
	switch m := x.(type) {
	case map[string]any:
		for k, v := range m {
			pairs = append(pairs, pair{k, v})
		}
	case map[any]any:
		for k, v := range m {
			pairs = append(pairs, pair{k, v})
		}
	default:
		return nil, nativeMismatch(s, x)
	}
	sort.Slice(pairs, func(i, j int) bool {
		return fmt.Sprint(pairs[i].key) < fmt.Sprint(pairs[j].key)
	})

	out := make(Map, 0, len(pairs))
	for _, p := range pairs {
		var (
			k   Value
			err error
		)
		if text, ok := p.key.(string); ok {
			k, err = ParseText(text, s.Key)
		} else {
			k, err = FromNative(p.key, s.Key)
		}
		if err != nil {
			return nil, err
		}
		v, err := FromNative(p.val, s.Elem)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: k, Value: v})
	}
	return out, nil
}

func variantFromNative(x any, s *Shape) (Value, error) {
	if name, ok := x.(string); ok {
		c, ok := s.Case(name)
		if !ok {
			return nil, parseErrorf("unknown variant %q, expected one of %s", name, s)
		}
		if c.Payload != nil {
			return nil, parseErrorf("variant %q requires a payload", name)
		}
		return Variant{Name: name}, nil
	}

	obj, ok := asObject(x)
	if !ok || len(obj) != 1 {
		return nil, nativeMismatch(s, x)
	}
	for name, raw := range obj {
		c, ok := s.Case(name)
		if !ok {
			return nil, parseErrorf("unknown variant %q, expected one of %s", name, s)
		}
		if c.Payload == nil {
			return nil, parseErrorf("variant %q carries no payload", name)
		}
		payload, err := FromNative(raw, c.Payload)
		if err != nil {
			return nil, err
		}
		return Variant{Name: name, Payload: payload}, nil
	}
	return nil, nativeMismatch(s, x)
}

// Infer builds a value from untyped Go data. Objects with string keys become
// records with fields sorted by name; objects with other keys become maps.
func Infer(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Unit{}, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case []byte:
		return Bytes(x), nil
	case float32:
		return Float(x), nil
	case float64:
		return Float(x), nil
	case int, int8, int16, int32, int64:
		i, err := toInt64(x)
		return Int(i), err
	case uint, uint8, uint16, uint32, uint64:
		u, err := toUint64(x)
		return Uint(u), err
	case *big.Int:
		if x.IsInt64() {
			return Int(x.Int64()), nil
		}
		if x.IsUint64() {
			return Uint(x.Uint64()), nil
		}
		return nil, errors.Newf(errors.CodeUnsupportedType, "integer %s does not fit in 64 bits", x)
	case number:
		if i, err := x.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeParse, "invalid number %q", x.String())
		}
		return Float(f), nil
	case time.Time:
		return String(x.Format(time.RFC3339Nano)), nil
	case []any:
		out := make(Seq, 0, len(x))
		for _, e := range x {
			v, err := Infer(e)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case map[string]any:
		names := make([]string, 0, len(x))
		for k := range x {
			names = append(names, k)
		}
		sort.Strings(names)
		out := Record{Fields: make([]Field, 0, len(names))}
		for _, name := range names {
			v, err := Infer(x[name])
			if err != nil {
				return nil, err
			}
			out.Fields = append(out.Fields, Field{Name: name, Value: v})
		}
		return out, nil
	case map[any]any:
		out := make(Map, 0, len(x))
		for k, e := range x {
			kv, err := Infer(k)
			if err != nil {
				return nil, err
			}
			if !kv.Kind().IsScalar() {
				return nil, errors.New(errors.CodeUnsupportedType, "map keys must be scalar values")
			}
			v, err := Infer(e)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{Key: kv, Value: v})
		}
		sort.Slice(out, func(i, j int) bool {
			return fmt.Sprint(out[i].Key) < fmt.Sprint(out[j].Key)
		})
		return out, nil
	default:
		return nil, errors.Newf(errors.CodeUnsupportedType, "cannot infer a value from %T", x)
	}
}

// number matches json.Number and compatible decimal number types.
type number interface {
	String() string
	Int64() (int64, error)
	Float64() (float64, error)
}

func asObject(x any) (map[string]any, bool) {
	switch m := x.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func toInt64(x any) (int64, error) {
	switch n := x.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint, uint8, uint16, uint32, uint64:
		u, _ := toUint64(n)
		if u > math.MaxInt64 {
			return 0, parseErrorf("%d overflows int64", u)
		}
		return int64(u), nil
	case float32:
		return toInt64(float64(n))
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, parseErrorf("%v is not an integer", n)
		}
		return int64(n), nil
	case *big.Int:
		if !n.IsInt64() {
			return 0, parseErrorf("%s overflows int64", n)
		}
		return n.Int64(), nil
	case number:
		i, err := n.Int64()
		if err != nil {
			return 0, errors.Wrapf(err, errors.CodeParse, "invalid integer %q", n.String())
		}
		return i, nil
	default:
		return 0, errors.Newf(errors.CodeUnsupportedType, "expected integer, got %T", x)
	}
}

func toUint64(x any) (uint64, error) {
	switch n := x.(type) {
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case int, int8, int16, int32, int64:
		i, _ := toInt64(n)
		if i < 0 {
			return 0, parseErrorf("%d is negative", i)
		}
		return uint64(i), nil
	case float32:
		return toUint64(float64(n))
	case float64:
		if n != math.Trunc(n) || n < 0 || n >= math.MaxUint64 {
			return 0, parseErrorf("%v is not an unsigned integer", n)
		}
		return uint64(n), nil
	case *big.Int:
		if !n.IsUint64() {
			return 0, parseErrorf("%s overflows uint64", n)
		}
		return n.Uint64(), nil
	case number:
		var b big.Int
		if _, ok := b.SetString(n.String(), 10); !ok || !b.IsUint64() {
			return 0, parseErrorf("invalid unsigned integer %q", n.String())
		}
		return b.Uint64(), nil
	default:
		return 0, errors.Newf(errors.CodeUnsupportedType, "expected unsigned integer, got %T", x)
	}
}

func toFloat64(x any) (float64, error) {
	switch n := x.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int, int8, int16, int32, int64:
		i, _ := toInt64(n)
		return float64(i), nil
	case uint, uint8, uint16, uint32, uint64:
		u, _ := toUint64(n)
		return float64(u), nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, nil
	case number:
		f, err := n.Float64()
		if err != nil {
			return 0, errors.Wrapf(err, errors.CodeParse, "invalid float %q", n.String())
		}
		return f, nil
	case string:
		// YAML and CUE spell non-finite floats as text.
		switch n {
		case "NaN", ".nan", ".NaN":
			return math.NaN(), nil
		case "+Inf", "Inf", ".inf", "+.inf":
			return math.Inf(1), nil
		case "-Inf", "-.inf":
			return math.Inf(-1), nil
		}
		return 0, errors.Newf(errors.CodeUnsupportedType, "expected float, got %q", n)
	default:
		return 0, errors.Newf(errors.CodeUnsupportedType, "expected float, got %T", x)
	}
}

func nativeMismatch(s *Shape, x any) errors.Error {
	return errors.Newf(errors.CodeUnsupportedType, "expected %s, got %T", s, x)
}
