package subdoc

import (
	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/fstree/value"
)

type yamlCodec struct{}

// YAML returns the YAML codec. Bytes are stored as base64 text.
func YAML() Codec {
	return yamlCodec{}
}

func (yamlCodec) Name() string { return "yaml" }

func (c yamlCodec) Encode(v value.Value) ([]byte, error) {
	native, err := value.ToNative(v)
	if err != nil {
		return nil, wrap(err, c.Name(), "failed to prepare value for YAML")
	}

	data, err := yaml.Marshal(native)
	if err != nil {
		return nil, wrap(err, c.Name(), "failed to encode YAML document")
	}
	return data, nil
}

func (c yamlCodec) Decode(data []byte, s *value.Shape) (value.Value, error) {
	var x any
	if err := yaml.Unmarshal(data, &x); err != nil {
		return nil, wrap(err, c.Name(), "failed to parse YAML document")
	}
	return fromNative(c.Name(), x, s)
}
