package bcs_test

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
)

func encode(t *testing.T, fn func(s *bcs.Serializer)) []byte {
	s := bcs.NewSerializer()
	fn(s)
	require.NoError(t, s.Err())
	return s.Output()
}

func TestFixedWidthIntegers(t *testing.T) {
	t.Run("u8", func(t *testing.T) {
		for _, v := range []uint8{0, 1, math.MaxUint8 - 1, math.MaxUint8} {
			b := encode(t, func(s *bcs.Serializer) { s.U8(v) })
			require.Len(t, b, 1)
			got, err := bcs.NewDeserializer(b).U8()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("u16", func(t *testing.T) {
		assert.Equal(t, []byte{0x11, 0xf1}, encode(t, func(s *bcs.Serializer) { s.U16(0xf111) }))
		for _, v := range []uint16{0, 1, math.MaxUint16 - 1, math.MaxUint16} {
			b := encode(t, func(s *bcs.Serializer) { s.U16(v) })
			require.Len(t, b, 2)
			got, err := bcs.NewDeserializer(b).U16()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("u32", func(t *testing.T) {
		assert.Equal(t, []byte{0x11, 0x11, 0x11, 0xf1}, encode(t, func(s *bcs.Serializer) { s.U32(0xf1111111) }))
		for _, v := range []uint32{0, 1, math.MaxUint32 - 1, math.MaxUint32} {
			b := encode(t, func(s *bcs.Serializer) { s.U32(v) })
			got, err := bcs.NewDeserializer(b).U32()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("u64", func(t *testing.T) {
		assert.Equal(t, "d007000000000000", hex.EncodeToString(encode(t, func(s *bcs.Serializer) { s.U64(2000) })))
		for _, v := range []uint64{0, 1, math.MaxUint64 - 1, math.MaxUint64} {
			b := encode(t, func(s *bcs.Serializer) { s.U64(v) })
			got, err := bcs.NewDeserializer(b).U64()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("u128", func(t *testing.T) {
		one := *uint256.NewInt(1)
		assert.Equal(t, "01000000000000000000000000000000", hex.EncodeToString(encode(t, func(s *bcs.Serializer) { s.U128(one) })))

		maxU128 := new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
		maxMinusOne := new(uint256.Int).Sub(maxU128, uint256.NewInt(1))
		for _, v := range []uint256.Int{{}, one, *maxMinusOne, *maxU128} {
			b := encode(t, func(s *bcs.Serializer) { s.U128(v) })
			require.Len(t, b, 16)
			got, err := bcs.NewDeserializer(b).U128()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("u128 overflow is recorded", func(t *testing.T) {
		s := bcs.NewSerializer()
		s.U128(*new(uint256.Int).Lsh(uint256.NewInt(1), 128))
		s.U8(1)
		require.ErrorIs(t, s.Err(), bcs.ErrValueOutOfRange)
		assert.Empty(t, s.Output())
	})

	t.Run("u256", func(t *testing.T) {
		v, err := uint256.FromHex("0xf111111111111111111111111111111111111111111111111111111111111111")
		require.NoError(t, err)
		b := encode(t, func(s *bcs.Serializer) { s.U256(*v) })
		assert.Equal(t, "11111111111111111111111111111111111111111111111111111111111111f1", hex.EncodeToString(b))

		maxU256 := new(uint256.Int).SetAllOne()
		maxMinusOne := new(uint256.Int).Sub(maxU256, uint256.NewInt(1))
		for _, v := range []uint256.Int{{}, *uint256.NewInt(1), *maxMinusOne, *maxU256} {
			b := encode(t, func(s *bcs.Serializer) { s.U256(v) })
			require.Len(t, b, 32)
			got, err := bcs.NewDeserializer(b).U256()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})
}

func TestUleb128(t *testing.T) {
	cases := map[uint32]string{
		0:              "00",
		1:              "01",
		127:            "7f",
		128:            "8001",
		16383:          "ff7f",
		16384:          "808001",
		math.MaxUint32: "ffffffff0f",
	}
	for v, expected := range cases {
		b := encode(t, func(s *bcs.Serializer) { s.Uleb128(v) })
		assert.Equal(t, expected, hex.EncodeToString(b), "value %d", v)

		got, err := bcs.NewDeserializer(b).Uleb128()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	t.Run("non-canonical encodings are rejected", func(t *testing.T) {
		for _, in := range []string{"8000", "ff00", "808000", "8080808000"} {
			b, _ := hex.DecodeString(in)
			_, err := bcs.NewDeserializer(b).Uleb128()
			assert.ErrorIs(t, err, bcs.ErrNonCanonicalUleb128, in)
		}
	})

	t.Run("values above u32 are rejected", func(t *testing.T) {
		for _, in := range []string{"8080808010", "ffffffff1f", "ffffffffff01"} {
			b, _ := hex.DecodeString(in)
			_, err := bcs.NewDeserializer(b).Uleb128()
			assert.ErrorIs(t, err, bcs.ErrUleb128Overflow, in)
		}
	})

	t.Run("truncated input is out of bounds", func(t *testing.T) {
		_, err := bcs.NewDeserializer([]byte{0x80}).Uleb128()
		assert.ErrorIs(t, err, bcs.ErrOutOfBounds)
	})
}

func TestBool(t *testing.T) {
	assert.Equal(t, []byte{1}, encode(t, func(s *bcs.Serializer) { s.Bool(true) }))
	assert.Equal(t, []byte{0}, encode(t, func(s *bcs.Serializer) { s.Bool(false) }))

	v, err := bcs.NewDeserializer([]byte{1}).Bool()
	require.NoError(t, err)
	assert.True(t, v)

	_, err = bcs.NewDeserializer([]byte{2}).Bool()
	assert.ErrorIs(t, err, bcs.ErrInvalidBool)
	assert.True(t, bcs.IsEncodingError(err))
}

func TestBytesAndStrings(t *testing.T) {
	t.Run("bytes are length prefixed", func(t *testing.T) {
		b := encode(t, func(s *bcs.Serializer) { s.Bytes([]byte{0x77, 0x77}) })
		assert.Equal(t, []byte{2, 0x77, 0x77}, b)
	})

	t.Run("string length counts bytes", func(t *testing.T) {
		b := encode(t, func(s *bcs.Serializer) { s.Str("çå∞") })
		assert.Equal(t, byte(7), b[0])
		got, err := bcs.NewDeserializer(b).Str()
		require.NoError(t, err)
		assert.Equal(t, "çå∞", got)
	})

	t.Run("invalid utf-8 is rejected", func(t *testing.T) {
		_, err := bcs.NewDeserializer([]byte{2, 0xc3, 0x28}).Str()
		assert.ErrorIs(t, err, bcs.ErrInvalidUTF8)
	})

	t.Run("declared length longer than input", func(t *testing.T) {
		_, err := bcs.NewDeserializer([]byte{3, 1, 2}).Bytes()
		assert.ErrorIs(t, err, bcs.ErrOutOfBounds)
	})

	t.Run("fixed bytes past the end", func(t *testing.T) {
		_, err := bcs.NewDeserializer(make([]byte, 19)).FixedBytes(20)
		assert.ErrorIs(t, err, bcs.ErrOutOfBounds)
	})
}

func TestSequencesAndOptions(t *testing.T) {
	writeU16 := func(s *bcs.Serializer, v uint16) { s.U16(v) }
	readU16 := func(d *bcs.Deserializer) (uint16, error) { return d.U16() }

	t.Run("empty sequence is a single zero byte", func(t *testing.T) {
		b := encode(t, func(s *bcs.Serializer) { bcs.SerializeSeq(s, []uint16{}, writeU16) })
		assert.Equal(t, []byte{0}, b)
	})

	t.Run("absent option is a single zero byte", func(t *testing.T) {
		b := encode(t, func(s *bcs.Serializer) { bcs.SerializeOption(s, nil, writeU16) })
		assert.Equal(t, []byte{0}, b)

		got, err := bcs.FromBytes(b, func(d *bcs.Deserializer) (*uint16, error) {
			return bcs.DeserializeOption(d, readU16)
		})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("present option", func(t *testing.T) {
		v := uint16(0x0102)
		b := encode(t, func(s *bcs.Serializer) { bcs.SerializeOption(s, &v, writeU16) })
		assert.Equal(t, []byte{1, 2, 1}, b)
	})

	t.Run("sequence length implying truncated input", func(t *testing.T) {
		_, err := bcs.NewDeserializer([]byte{5, 1, 0}).Length()
		assert.ErrorIs(t, err, bcs.ErrOutOfBounds)

		_, err = bcs.DeserializeSeq(bcs.NewDeserializer([]byte{2, 1, 0, 1}), readU16)
		assert.ErrorIs(t, err, bcs.ErrOutOfBounds)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := bcs.FromBytes([]byte{1, 0, 9}, readU16)
		assert.ErrorIs(t, err, bcs.ErrTrailingBytes)
	})
}

func TestRoundTripProperties(t *testing.T) {
	rapid.Check(t, func(tt *rapid.T) {
		a := rapid.Uint8().Draw(tt, "u8")
		b := rapid.Uint16().Draw(tt, "u16")
		c := rapid.Uint32().Draw(tt, "u32")
		d := rapid.Uint64().Draw(tt, "u64")
		e := rapid.Bool().Draw(tt, "bool")
		f := rapid.SliceOf(rapid.Byte()).Draw(tt, "bytes")
		g := rapid.String().Draw(tt, "str")
		h := uint256.Int{rapid.Uint64().Draw(tt, "lo"), rapid.Uint64().Draw(tt, "hi"), 0, 0}
		l := rapid.Uint32().Draw(tt, "uleb")

		s := bcs.NewSerializer()
		s.U8(a)
		s.U16(b)
		s.U32(c)
		s.U64(d)
		s.Bool(e)
		s.Bytes(f)
		s.Str(g)
		s.U128(h)
		s.U256(h)
		s.Uleb128(l)
		if s.Err() != nil {
			tt.Fatalf("serialize: %v", s.Err())
		}

		de := bcs.NewDeserializer(s.Output())
		ga, _ := de.U8()
		gb, _ := de.U16()
		gc, _ := de.U32()
		gd, _ := de.U64()
		ge, _ := de.Bool()
		gf, _ := de.Bytes()
		gg, _ := de.Str()
		gh, _ := de.U128()
		gi, _ := de.U256()
		gl, err := de.Uleb128()
		if err != nil {
			tt.Fatalf("deserialize: %v", err)
		}
		if err := de.Finish(); err != nil {
			tt.Fatalf("finish: %v", err)
		}
		if ga != a || gb != b || gc != c || gd != d || ge != e || string(gf) != string(f) || gg != g || gh != h || gi != h || gl != l {
			tt.Fatalf("round trip mismatch")
		}
	})
}
