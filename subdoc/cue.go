package subdoc

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"

	"github.com/jmgilman/go/fstree/value"
)

type cueCodec struct{}

// CUE returns the CUE codec. Documents are concrete CUE values formatted
// with the canonical CUE formatter. Bytes are stored as CUE byte literals.
//
// A fresh CUE context is created for every call.
func CUE() Codec {
	return cueCodec{}
}

func (cueCodec) Name() string { return "cue" }

func (c cueCodec) Encode(v value.Value) ([]byte, error) {
	native, err := value.ToNative(v, value.WithRawBytes())
	if err != nil {
		return nil, wrap(err, c.Name(), "failed to prepare value for CUE")
	}

	cv := cuecontext.New().Encode(native)
	if err := cv.Err(); err != nil {
		return nil, wrap(err, c.Name(), "failed to encode CUE value")
	}

	data, err := format.Node(cv.Syntax(cue.Final(), cue.Concrete(true)))
	if err != nil {
		return nil, wrap(err, c.Name(), "failed to format CUE document")
	}
	return data, nil
}

func (c cueCodec) Decode(data []byte, s *value.Shape) (value.Value, error) {
	cv := cuecontext.New().CompileBytes(data, cue.Filename("subdoc.cue"))
	if err := cv.Err(); err != nil {
		return nil, wrap(err, c.Name(), "failed to compile CUE document")
	}
	if err := cv.Validate(cue.Concrete(true)); err != nil {
		return nil, wrap(err, c.Name(), "CUE document is not concrete")
	}

	var x any
	if err := cv.Decode(&x); err != nil {
		return nil, wrap(err, c.Name(), "failed to decode CUE document")
	}
	return fromNative(c.Name(), x, s)
}
