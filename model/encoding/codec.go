package encoding

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Encoder renders decoded transactions, typed data and command results in one
// output format, and reads them back.
type Encoder interface {
	// Encode returns an error if the value type is not supported by the format.
	Encode(interface{}) ([]byte, error)

	Decode([]byte, interface{}) error
}

// Format names an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatCBOR is binary, Render prints it as hex.
	FormatCBOR Format = "cbor"
)

var Formats = []Format{FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat is case insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q, expected one of %v", s, Formats)
}

func (f Format) Binary() bool {
	return f == FormatCBOR
}

// Render turns encoded output into printable text.
func (f Format) Render(b []byte) string {
	if f.Binary() {
		return hex.EncodeToString(b)
	}
	return strings.TrimRight(string(b), "\n")
}
