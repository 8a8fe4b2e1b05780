package value

import "fmt"

// Kind identifies the abstract shape of a value.
type Kind int

// Kinds, one per concrete value type.
const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindUint
	KindFloat
	KindChar
	KindString
	KindBytes
	KindOption
	KindSeq
	KindTuple
	KindMap
	KindRecord
	KindVariant
	// KindAny only appears in shapes. It asks the decoder to infer the value
	// from whatever is stored.
	KindAny
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindUnit:    "unit",
	KindBool:    "bool",
	KindInt:     "int",
	KindUint:    "uint",
	KindFloat:   "float",
	KindChar:    "char",
	KindString:  "string",
	KindBytes:   "bytes",
	KindOption:  "option",
	KindSeq:     "seq",
	KindTuple:   "tuple",
	KindMap:     "map",
	KindRecord:  "record",
	KindVariant: "variant",
	KindAny:     "any",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsScalar reports whether values of this kind are stored as a single leaf.
func (k Kind) IsScalar() bool {
	switch k {
	case KindUnit, KindBool, KindInt, KindUint, KindFloat, KindChar, KindString, KindBytes:
		return true
	default:
		return false
	}
}

// Value is a node of a value tree. Each composite owns its children; values
// never share structure.
//
// The concrete types are Unit, Bool, Int, Uint, Float, Char, String, Bytes,
// Option, Seq, Tuple, Map, Record and Variant.
type Value interface {
	Kind() Kind
	isValue()
}

// Unit is the empty value.
type Unit struct{}

// Bool is a boolean leaf.
type Bool bool

// Int is a signed integer leaf. Narrower widths are carried by the shape.
type Int int64

// Uint is an unsigned integer leaf.
type Uint uint64

// Float is a floating point leaf.
type Float float64

// Char is a single Unicode scalar value.
type Char rune

// String is a UTF-8 text leaf.
type String string

// Bytes is a raw byte leaf.
type Bytes []byte

// Option is an optional value. A nil Value is None.
type Option struct {
	Value Value
}

// None returns an empty Option.
func None() Option { return Option{} }

// Some wraps v in an Option.
func Some(v Value) Option { return Option{Value: v} }

// IsNone reports whether the option is empty.
func (o Option) IsNone() bool { return o.Value == nil }

// Seq is a variable-length ordered sequence.
type Seq []Value

// Tuple is a fixed-length ordered sequence.
type Tuple []Value

// Entry is a single map entry.
type Entry struct {
	Key   Value
	Value Value
}

// Map is a keyed collection. The slice order is the iteration order used when
// encoding; decoding yields entries in storage listing order.
type Map []Entry

// Get returns the value stored under key, comparing keys with Equal.
func (m Map) Get(key Value) (Value, bool) {
	for _, e := range m {
		if Equal(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// Field is a named record member.
type Field struct {
	Name  string
	Value Value
}

// Record is a value with a fixed, ordered set of named fields.
type Record struct {
	Fields []Field
}

// NewRecord builds a record from alternating name/value pairs.
// It panics if the arguments are not name/value pairs.
func NewRecord(pairs ...any) Record {
	if len(pairs)%2 != 0 {
		panic("value: NewRecord requires name/value pairs")
	}
	r := Record{Fields: make([]Field, 0, len(pairs)/2)}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("value: NewRecord field name %v is not a string", pairs[i]))
		}
		v, ok := pairs[i+1].(Value)
		if !ok {
			panic(fmt.Sprintf("value: NewRecord field %q is not a Value", name))
		}
		r.Fields = append(r.Fields, Field{Name: name, Value: v})
	}
	return r
}

// Get returns the value of the named field.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Variant is a tagged union case. A nil Payload means the case carries no
// data; otherwise Payload is a single value, a Tuple or a Record.
type Variant struct {
	Name    string
	Payload Value
}

func (Unit) Kind() Kind    { return KindUnit }
func (Bool) Kind() Kind    { return KindBool }
func (Int) Kind() Kind     { return KindInt }
func (Uint) Kind() Kind    { return KindUint }
func (Float) Kind() Kind   { return KindFloat }
func (Char) Kind() Kind    { return KindChar }
func (String) Kind() Kind  { return KindString }
func (Bytes) Kind() Kind   { return KindBytes }
func (Option) Kind() Kind  { return KindOption }
func (Seq) Kind() Kind     { return KindSeq }
func (Tuple) Kind() Kind   { return KindTuple }
func (Map) Kind() Kind     { return KindMap }
func (Record) Kind() Kind  { return KindRecord }
func (Variant) Kind() Kind { return KindVariant }

func (Unit) isValue()    {}
func (Bool) isValue()    {}
func (Int) isValue()     {}
func (Uint) isValue()    {}
func (Float) isValue()   {}
func (Char) isValue()    {}
func (String) isValue()  {}
func (Bytes) isValue()   {}
func (Option) isValue()  {}
func (Seq) isValue()     {}
func (Tuple) isValue()   {}
func (Map) isValue()     {}
func (Record) isValue()  {}
func (Variant) isValue() {}
