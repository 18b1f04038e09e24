package moveup

import (
	"encoding/hex"

	"github.com/moveup-labs/moveup-go-sdk/crypto/hash"
)

const (
	AuthenticationKeyLength = 32

	multiSecp256k1Scheme        byte = 3
	deriveResourceAccountScheme byte = 0xFF
)

// AuthenticationKey is stored with every account. It lets owners rotate their
// keys without changing the address the account lives at.
type AuthenticationKey [AuthenticationKeyLength]byte

// AuthenticationKeyFromSecp256k1PublicKey derives keccak256(X || Y) with the first 12 bytes zeroed.
func AuthenticationKeyFromSecp256k1PublicKey(pk Secp256k1PublicKey) AuthenticationKey {
	return authKeyFromDigest(hash.SumKeccak256(pk[1:]))
}

// AuthenticationKeyFromMultiSecp256k1PublicKey derives sha3-256(p1 || ... || pn || K || 0x03)
// with the first 12 bytes zeroed.
func AuthenticationKeyFromMultiSecp256k1PublicKey(pk MultiSecp256k1PublicKey) AuthenticationKey {
	return authKeyFromDigest(hash.SumSHA3_256(pk.Bytes(), []byte{multiSecp256k1Scheme}))
}

func authKeyFromDigest(digest hash.Hash) AuthenticationKey {
	var k AuthenticationKey
	copy(k[AuthenticationKeyLength-AddressLength:], digest[AuthenticationKeyLength-AddressLength:])
	return k
}

// DerivedAddress returns the address of an account created with this key.
func (k AuthenticationKey) DerivedAddress() AccountAddress {
	var a AccountAddress
	copy(a[:], k[AuthenticationKeyLength-AddressLength:])
	return a
}

func (k AuthenticationKey) Hex() string {
	return "0x" + hex.EncodeToString(k[:])
}

func (k AuthenticationKey) String() string {
	return k.Hex()
}

// ResourceAccountAddress derives the address of a resource account created by source with seed.
func ResourceAccountAddress(source AccountAddress, seed []byte) AccountAddress {
	digest := hash.SumKeccak256(source[:], seed, []byte{deriveResourceAccountScheme})
	var a AccountAddress
	copy(a[:], digest[len(digest)-AddressLength:])
	return a
}
