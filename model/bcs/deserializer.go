package bcs

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

const maxUleb128 = math.MaxUint32

// Deserializer reads canonical values from a fixed buffer, tracking its position.
type Deserializer struct {
	buf []byte
	pos int
}

// NewDeserializer returns a Deserializer positioned at the start of b.
func NewDeserializer(b []byte) *Deserializer {
	return &Deserializer{buf: b}
}

// Remaining returns the number of unread bytes.
func (d *Deserializer) Remaining() int {
	return len(d.buf) - d.pos
}

// Finish returns ErrTrailingBytes if any input is left unread.
func (d *Deserializer) Finish() error {
	if d.Remaining() != 0 {
		return fmt.Errorf("%w: %d bytes left at offset %d", ErrTrailingBytes, d.Remaining(), d.pos)
	}
	return nil
}

func (d *Deserializer) read(n int) ([]byte, error) {
	if n < 0 || n > d.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrOutOfBounds, n, d.pos, d.Remaining())
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *Deserializer) U8() (uint8, error) {
	b, err := d.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Deserializer) U16() (uint16, error) {
	b, err := d.read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *Deserializer) U32() (uint32, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *Deserializer) U64() (uint64, error) {
	b, err := d.read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *Deserializer) U128() (uint256.Int, error) {
	var v uint256.Int
	b, err := d.read(16)
	if err != nil {
		return v, err
	}
	v[0] = binary.LittleEndian.Uint64(b[0:8])
	v[1] = binary.LittleEndian.Uint64(b[8:16])
	return v, nil
}

func (d *Deserializer) U256() (uint256.Int, error) {
	var v uint256.Int
	b, err := d.read(32)
	if err != nil {
		return v, err
	}
	for i := 0; i < 4; i++ {
		v[i] = binary.LittleEndian.Uint64(b[i*8 : i*8+8])
	}
	return v, nil
}

func (d *Deserializer) Bool() (bool, error) {
	start := d.pos
	b, err := d.U8()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: 0x%02x at offset %d", ErrInvalidBool, b, start)
	}
}

// Uleb128 reads a minimally encoded ULEB128 value that fits into 32 bits.
func (d *Deserializer) Uleb128() (uint32, error) {
	start := d.pos
	var value uint64
	for shift := uint(0); shift < 35; shift += 7 {
		b, err := d.U8()
		if err != nil {
			return 0, err
		}
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			if shift > 0 && b == 0 {
				return 0, fmt.Errorf("%w at offset %d", ErrNonCanonicalUleb128, start)
			}
			if value > maxUleb128 {
				return 0, fmt.Errorf("%w at offset %d", ErrUleb128Overflow, start)
			}
			return uint32(value), nil
		}
	}
	return 0, fmt.Errorf("%w at offset %d", ErrUleb128Overflow, start)
}

// Length reads a sequence length prefix and rejects lengths that exceed the
// remaining input, since every element occupies at least one byte.
func (d *Deserializer) Length() (int, error) {
	n, err := d.Uleb128()
	if err != nil {
		return 0, err
	}
	if uint64(n) > uint64(d.Remaining()) {
		return 0, fmt.Errorf("%w: length %d exceeds %d remaining bytes", ErrOutOfBounds, n, d.Remaining())
	}
	return int(n), nil
}

// FixedBytes reads exactly n bytes. The returned slice is a copy.
func (d *Deserializer) FixedBytes(n int) ([]byte, error) {
	b, err := d.read(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Bytes reads a length-prefixed byte string.
func (d *Deserializer) Bytes() ([]byte, error) {
	n, err := d.Length()
	if err != nil {
		return nil, err
	}
	return d.FixedBytes(n)
}

// Str reads a length-prefixed UTF-8 string.
func (d *Deserializer) Str() (string, error) {
	start := d.pos
	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w at offset %d", ErrInvalidUTF8, start)
	}
	return string(b), nil
}

// DeserializeSeq reads a length prefix followed by that many elements.
func DeserializeSeq[T any](d *Deserializer, fn func(*Deserializer) (T, error)) ([]T, error) {
	n, err := d.Length()
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, n)
	for i := 0; i < n; i++ {
		item, err := fn(d)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// DeserializeOption reads a presence flag followed by the value if present.
func DeserializeOption[T any](d *Deserializer, fn func(*Deserializer) (T, error)) (*T, error) {
	present, err := d.Bool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := fn(d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FromBytes decodes a single value from b with fn and requires that all of b is consumed.
func FromBytes[T any](b []byte, fn func(*Deserializer) (T, error)) (T, error) {
	d := NewDeserializer(b)
	v, err := fn(d)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := d.Finish(); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
