package moveup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
)

func TestAuthenticationKeyFromSecp256k1PublicKey(t *testing.T) {
	key := moveup.AuthenticationKeyFromSecp256k1PublicKey(publicKeyFromHex(t, testPublicKey))
	assert.Equal(t, "0x000000000000000000000000daa27e14c3c801389746ca06f4729c24c9802990", key.Hex())
	assert.Equal(t, moveup.MustHexToAddress("0xdaa27e14c3c801389746ca06f4729c24c9802990"), key.DerivedAddress())
}

func TestAuthenticationKeyFromMultiSecp256k1PublicKey(t *testing.T) {
	multi, err := moveup.NewMultiSecp256k1PublicKey([]moveup.Secp256k1PublicKey{
		publicKeyFromHex(t, testPublicKey),
		publicKeyFromHex(t, secondPublicKey),
	}, 2)
	require.NoError(t, err)

	key := moveup.AuthenticationKeyFromMultiSecp256k1PublicKey(multi)
	assert.Equal(t, "0x000000000000000000000000bfa4b0999529b2a8216e7aa0c744dee1bbf4524e", key.String())
	assert.Equal(t, "0xbfa4b0999529b2a8216e7aa0c744dee1bbf4524e", key.DerivedAddress().Hex())
}

func TestResourceAccountAddress(t *testing.T) {
	source := moveup.MustHexToAddress("0xca843279e3427144cead5e4d5999a3d0")
	addr := moveup.ResourceAccountAddress(source, []byte{1})
	assert.Equal(t, "0xcba10a3ad62d835442c344f2564dc500824c5ee8", addr.Hex())

	assert.NotEqual(t, addr, moveup.ResourceAccountAddress(source, []byte{2}))
}
