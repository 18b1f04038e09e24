package cbor

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/moveup-labs/moveup-go-sdk/model/encoding"
)

var _ encoding.Encoder = (*Encoder)(nil)

// EncMode is the canonical CBOR mode: sorted map keys and shortest integer forms,
// so equal values always encode to equal bytes.
var EncMode = func() cbor.EncMode {
	options := cbor.CoreDetEncOptions()
	encMode, err := options.EncMode()
	if err != nil {
		panic(err)
	}
	return encMode
}()

// Encoder encodes values as deterministic CBOR.
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Encode(val interface{}) ([]byte, error) {
	b, err := EncMode.Marshal(val)
	if err != nil {
		return nil, fmt.Errorf("could not encode cbor: %w", err)
	}
	return b, nil
}

func (e *Encoder) Decode(b []byte, val interface{}) error {
	if err := cbor.Unmarshal(b, val); err != nil {
		return fmt.Errorf("could not decode cbor: %w", err)
	}
	return nil
}
