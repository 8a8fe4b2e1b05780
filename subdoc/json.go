package subdoc

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/jmgilman/go/fstree/value"
)

type jsonCodec struct{}

// JSON returns the JSON codec. Documents are compact with object keys in
// sorted order. Numbers are decoded without loss of precision.
func JSON() Codec {
	return jsonCodec{}
}

func (jsonCodec) Name() string { return "json" }

func (c jsonCodec) Encode(v value.Value) ([]byte, error) {
	native, err := value.ToNative(v)
	if err != nil {
		return nil, wrap(err, c.Name(), "failed to prepare value for JSON")
	}

	data, err := json.Marshal(native)
	if err != nil {
		return nil, wrap(err, c.Name(), "failed to encode JSON document")
	}
	return data, nil
}

func (c jsonCodec) Decode(data []byte, s *value.Shape) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var x any
	if err := dec.Decode(&x); err != nil {
		return nil, wrap(err, c.Name(), "failed to parse JSON document")
	}
	if dec.More() {
		return nil, fail(c.Name(), "trailing data after JSON document")
	}
	return fromNative(c.Name(), x, s)
}
