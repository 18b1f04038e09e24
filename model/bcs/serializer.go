package bcs

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// Serializable is implemented by every value with a canonical BCS form.
type Serializable interface {
	Serialize(s *Serializer)
}

// Serializer accumulates the canonical encoding of a value. Encoding a value
// that does not fit its wire width records an error which sticks: every later
// write is ignored and Err returns the first failure.
type Serializer struct {
	buf []byte
	err error
}

// NewSerializer returns an empty Serializer.
func NewSerializer() *Serializer {
	return &Serializer{buf: make([]byte, 0, 64)}
}

// Output returns the bytes written so far.
func (s *Serializer) Output() []byte {
	return s.buf
}

// Err returns the first error recorded while serializing.
func (s *Serializer) Err() error {
	return s.err
}

// SetError records err unless an earlier error is already recorded.
func (s *Serializer) SetError(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *Serializer) U8(v uint8) {
	if s.err != nil {
		return
	}
	s.buf = append(s.buf, v)
}

func (s *Serializer) U16(v uint16) {
	if s.err != nil {
		return
	}
	s.buf = binary.LittleEndian.AppendUint16(s.buf, v)
}

func (s *Serializer) U32(v uint32) {
	if s.err != nil {
		return
	}
	s.buf = binary.LittleEndian.AppendUint32(s.buf, v)
}

func (s *Serializer) U64(v uint64) {
	if s.err != nil {
		return
	}
	s.buf = binary.LittleEndian.AppendUint64(s.buf, v)
}

// U128 writes the low 16 bytes of v little-endian. v must fit into 128 bits.
func (s *Serializer) U128(v uint256.Int) {
	if s.err != nil {
		return
	}
	if v.BitLen() > 128 {
		s.SetError(fmt.Errorf("%w: %s does not fit u128", ErrValueOutOfRange, v.Dec()))
		return
	}
	s.buf = binary.LittleEndian.AppendUint64(s.buf, v[0])
	s.buf = binary.LittleEndian.AppendUint64(s.buf, v[1])
}

// U256 writes v as 32 little-endian bytes.
func (s *Serializer) U256(v uint256.Int) {
	if s.err != nil {
		return
	}
	for i := 0; i < 4; i++ {
		s.buf = binary.LittleEndian.AppendUint64(s.buf, v[i])
	}
}

func (s *Serializer) Bool(v bool) {
	if v {
		s.U8(1)
		return
	}
	s.U8(0)
}

// Uleb128 writes v using the minimal ULEB128 encoding.
func (s *Serializer) Uleb128(v uint32) {
	if s.err != nil {
		return
	}
	for v >= 0x80 {
		s.buf = append(s.buf, byte(v&0x7f)|0x80)
		v >>= 7
	}
	s.buf = append(s.buf, byte(v))
}

// Length writes a sequence or byte-string length prefix.
func (s *Serializer) Length(n int) {
	if n < 0 || uint64(n) > maxUleb128 {
		s.SetError(fmt.Errorf("%w: length %d", ErrValueOutOfRange, n))
		return
	}
	s.Uleb128(uint32(n))
}

// FixedBytes writes b as is, without a length prefix.
func (s *Serializer) FixedBytes(b []byte) {
	if s.err != nil {
		return
	}
	s.buf = append(s.buf, b...)
}

// Bytes writes a ULEB128 length prefix followed by b.
func (s *Serializer) Bytes(b []byte) {
	s.Length(len(b))
	s.FixedBytes(b)
}

// Str writes the UTF-8 bytes of v, prefixed by their byte length.
func (s *Serializer) Str(v string) {
	s.Bytes([]byte(v))
}

// Struct serializes a nested value in place.
func (s *Serializer) Struct(v Serializable) {
	if s.err != nil {
		return
	}
	v.Serialize(s)
}

// SerializeSeq writes the length of items followed by every item in order.
func SerializeSeq[T any](s *Serializer, items []T, fn func(*Serializer, T)) {
	s.Length(len(items))
	for _, item := range items {
		if s.err != nil {
			return
		}
		fn(s, item)
	}
}

// SerializeOption writes a presence flag followed by the value if v is set.
func SerializeOption[T any](s *Serializer, v *T, fn func(*Serializer, T)) {
	if v == nil {
		s.Bool(false)
		return
	}
	s.Bool(true)
	fn(s, *v)
}

// ToBytes returns the canonical encoding of v.
func ToBytes(v Serializable) ([]byte, error) {
	s := NewSerializer()
	v.Serialize(s)
	if err := s.Err(); err != nil {
		return nil, err
	}
	return s.Output(), nil
}
