package bcs

import (
	"errors"
)

var (
	// ErrOutOfBounds is returned when a read would move past the end of the input, including
	// when a length prefix declares more elements or bytes than remain in the buffer.
	ErrOutOfBounds = errors.New("bcs: read out of bounds")

	// ErrNonCanonicalUleb128 is returned when a ULEB128 value carries redundant zero groups.
	ErrNonCanonicalUleb128 = errors.New("bcs: non-canonical uleb128 encoding")

	// ErrUleb128Overflow is returned when a ULEB128 value does not fit into 32 bits.
	ErrUleb128Overflow = errors.New("bcs: uleb128 value overflows u32")

	// ErrInvalidBool is returned when a boolean byte is neither 0 nor 1.
	ErrInvalidBool = errors.New("bcs: invalid boolean byte")

	// ErrInvalidUTF8 is returned when a string payload is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("bcs: invalid utf-8 string")

	// ErrTrailingBytes is returned by Finish when input remains after decoding a value.
	ErrTrailingBytes = errors.New("bcs: trailing bytes after value")

	// ErrValueOutOfRange is recorded by the Serializer when a value does not fit its wire width.
	ErrValueOutOfRange = errors.New("bcs: value out of range")
)

// IsEncodingError returns true if err is one of the canonical encoding failures
// raised while decoding malformed bytes.
func IsEncodingError(err error) bool {
	return errors.Is(err, ErrOutOfBounds) ||
		errors.Is(err, ErrNonCanonicalUleb128) ||
		errors.Is(err, ErrUleb128Overflow) ||
		errors.Is(err, ErrInvalidBool) ||
		errors.Is(err, ErrInvalidUTF8) ||
		errors.Is(err, ErrTrailingBytes)
}
