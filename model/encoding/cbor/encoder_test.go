package cbor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moveup-labs/moveup-go-sdk/model/encoding/cbor"
)

func TestEncoderDeterministic(t *testing.T) {
	e := cbor.NewEncoder()

	a, err := e.Encode(map[string]uint64{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	b, err := e.Encode(map[string]uint64{"c": 3, "a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	var out map[string]uint64
	require.NoError(t, e.Decode(a, &out))
	assert.Equal(t, map[string]uint64{"a": 1, "b": 2, "c": 3}, out)
}

func TestEncoderShortestIntegers(t *testing.T) {
	b, err := cbor.NewEncoder().Encode(uint64(1))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, b)
}

func TestEncoderDecodeError(t *testing.T) {
	var out string
	assert.Error(t, cbor.NewEncoder().Decode([]byte{0xff}, &out))
}
