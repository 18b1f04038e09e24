package moveup

import (
	"encoding/hex"

	"github.com/moveup-labs/moveup-go-sdk/crypto"
	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
)

const (
	Secp256k1PublicKeyLength = crypto.PubKeyLenECDSA_Secp256k1
	Secp256k1SignatureLength = crypto.SignatureLenECDSA_Secp256k1
)

// Secp256k1PublicKey is an uncompressed secp256k1 public key (0x04 || X || Y).
type Secp256k1PublicKey [Secp256k1PublicKeyLength]byte

// Secp256k1Signature is a compact R || S signature.
type Secp256k1Signature [Secp256k1SignatureLength]byte

func NewSecp256k1PublicKey(b []byte) (Secp256k1PublicKey, error) {
	var pk Secp256k1PublicKey
	if len(b) != Secp256k1PublicKeyLength {
		return pk, NewValidationErr(InvalidKeyLength, "secp256k1 public key must be %d bytes, got %d", Secp256k1PublicKeyLength, len(b))
	}
	copy(pk[:], b)
	return pk, nil
}

func NewSecp256k1Signature(b []byte) (Secp256k1Signature, error) {
	var sig Secp256k1Signature
	if len(b) != Secp256k1SignatureLength {
		return sig, NewValidationErr(InvalidSignatureLength, "secp256k1 signature must be %d bytes, got %d", Secp256k1SignatureLength, len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

func (pk Secp256k1PublicKey) Bytes() []byte { return pk[:] }
func (pk Secp256k1PublicKey) Hex() string   { return "0x" + hex.EncodeToString(pk[:]) }

func (pk Secp256k1PublicKey) Serialize(s *bcs.Serializer) {
	s.Bytes(pk[:])
}

func (sig Secp256k1Signature) Bytes() []byte { return sig[:] }
func (sig Secp256k1Signature) Hex() string   { return "0x" + hex.EncodeToString(sig[:]) }

func (sig Secp256k1Signature) Serialize(s *bcs.Serializer) {
	s.Bytes(sig[:])
}

func DeserializeSecp256k1PublicKey(d *bcs.Deserializer) (Secp256k1PublicKey, error) {
	b, err := d.Bytes()
	if err != nil {
		return Secp256k1PublicKey{}, err
	}
	return NewSecp256k1PublicKey(b)
}

func DeserializeSecp256k1Signature(d *bcs.Deserializer) (Secp256k1Signature, error) {
	b, err := d.Bytes()
	if err != nil {
		return Secp256k1Signature{}, err
	}
	return NewSecp256k1Signature(b)
}
