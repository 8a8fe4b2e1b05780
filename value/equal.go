package value

import (
	"bytes"
	"math"
)

// Equal reports whether a and b are structurally equal.
//
// Maps compare as sets of entries, so entry order is ignored. Records
// compare field by field in order. NaN equals NaN. Empty and nil
// collections are equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch a := a.(type) {
	case Unit:
		return true
	case Bool, Int, Uint, Char, String:
		return a == b
	case Float:
		bf := float64(b.(Float))
		af := float64(a)
		return af == bf || (math.IsNaN(af) && math.IsNaN(bf))
	case Bytes:
		return bytes.Equal(a, b.(Bytes))
	case Option:
		return Equal(a.Value, b.(Option).Value)
	case Seq:
		return equalList(a, b.(Seq))
	case Tuple:
		return equalList(a, b.(Tuple))
	case Map:
		bm := b.(Map)
		if len(a) != len(bm) {
			return false
		}
		for _, e := range a {
			other, ok := bm.Get(e.Key)
			if !ok || !Equal(e.Value, other) {
				return false
			}
		}
		return true
	case Record:
		br := b.(Record)
		if len(a.Fields) != len(br.Fields) {
			return false
		}
		for i, f := range a.Fields {
			if f.Name != br.Fields[i].Name || !Equal(f.Value, br.Fields[i].Value) {
				return false
			}
		}
		return true
	case Variant:
		bv := b.(Variant)
		return a.Name == bv.Name && Equal(a.Payload, bv.Payload)
	default:
		return false
	}
}

func equalList(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
