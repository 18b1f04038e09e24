package json

import (
	"encoding/json"
	"fmt"

	"github.com/moveup-labs/moveup-go-sdk/model/encoding"
)

var _ encoding.Encoder = (*Encoder)(nil)

// Encoder renders values as indented JSON for humans.
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Encode(val interface{}) ([]byte, error) {
	b, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not encode json: %w", err)
	}
	return b, nil
}

func (e *Encoder) Decode(b []byte, val interface{}) error {
	if err := json.Unmarshal(b, val); err != nil {
		return fmt.Errorf("could not decode json: %w", err)
	}
	return nil
}
