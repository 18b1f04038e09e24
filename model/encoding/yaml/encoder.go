package yaml

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/moveup-labs/moveup-go-sdk/model/encoding"
)

var _ encoding.Encoder = (*Encoder)(nil)

// Encoder renders values as YAML. Struct fields use their yaml tags.
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Encode(val interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if err := enc.Encode(val); err != nil {
		return nil, fmt.Errorf("could not encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("could not encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Encoder) Decode(b []byte, val interface{}) error {
	if err := yaml.UnmarshalStrict(b, val); err != nil {
		return fmt.Errorf("could not decode yaml: %w", err)
	}
	return nil
}
