// Package value defines the abstract value model encoded by fstree and the
// callback interfaces that connect it to a traversal.
//
// A value tree is built from Unit, Bool, Int, Uint, Float, Char, String,
// Bytes, Option, Seq, Tuple, Map, Record and Variant. A Shape describes the
// structure a decoder should expect.
//
// Encoders implement Sink and decoders implement Source. Walk drives a Sink
// from a value; Read drives a Source against a shape. Builder and Reader are
// the in-memory implementations: a Builder captures whatever is written to
// it, and a Reader serves an existing value. Either side may also be driven
// by hand, which is how generated or reflective bindings plug in.
//
// ToNative, FromNative and Infer convert between values and the plain Go
// data used by document libraries.
package value
