package subdoc

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/jmgilman/go/fstree/value"
)

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error

	// Core deterministic encoding (RFC 8949 section 4.2) sorts map keys and
	// uses the shortest form for every head, so equal values always produce
	// equal documents.
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("subdoc: cbor encoder mode: " + err.Error())
	}

	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("subdoc: cbor decoder mode: " + err.Error())
	}
}

type cborCodec struct{}

// CBOR returns the CBOR codec. Bytes are stored as CBOR byte strings.
func CBOR() Codec {
	return cborCodec{}
}

func (cborCodec) Name() string { return "cbor" }

func (c cborCodec) Encode(v value.Value) ([]byte, error) {
	native, err := value.ToNative(v, value.WithRawBytes())
	if err != nil {
		return nil, wrap(err, c.Name(), "failed to prepare value for CBOR")
	}

	data, err := cborEnc.Marshal(native)
	if err != nil {
		return nil, wrap(err, c.Name(), "failed to encode CBOR document")
	}
	return data, nil
}

func (c cborCodec) Decode(data []byte, s *value.Shape) (value.Value, error) {
	var x any
	if err := cborDec.Unmarshal(data, &x); err != nil {
		return nil, wrap(err, c.Name(), "failed to parse CBOR document")
	}
	return fromNative(c.Name(), x, s)
}
