package crypto

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/moveup-labs/moveup-go-sdk/crypto/hash"
)

// PrivateKey is a secp256k1 signing key.
type PrivateKey struct {
	key *ecdsa.PrivateKey
}

// PublicKey is a secp256k1 verification key.
type PublicKey struct {
	key *ecdsa.PublicKey
}

// GeneratePrivateKey creates a fresh random key.
func GeneratePrivateKey() (*PrivateKey, error) {
	k, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key: k}, nil
}

// DecodePrivateKey decodes a 32 byte big-endian secp256k1 scalar.
func DecodePrivateKey(b []byte) (*PrivateKey, error) {
	if len(b) != PrKeyLenECDSA_Secp256k1 {
		return nil, invalidInputsErrorf("private key must be %d bytes, got %d", PrKeyLenECDSA_Secp256k1, len(b))
	}
	k, err := ethcrypto.ToECDSA(b)
	if err != nil {
		return nil, invalidInputsErrorf("invalid private key: %w", err)
	}
	return &PrivateKey{key: k}, nil
}

// DecodePrivateKeyHex decodes a hex private key with or without 0x prefix.
func DecodePrivateKeyHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, invalidInputsErrorf("invalid private key hex: %w", err)
	}
	return DecodePrivateKey(b)
}

func (sk *PrivateKey) Algorithm() SigningAlgorithm {
	return ECDSA_Secp256k1
}

// Encode returns the 32 byte scalar.
func (sk *PrivateKey) Encode() []byte {
	return ethcrypto.FromECDSA(sk.key)
}

func (sk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{key: &sk.key.PublicKey}
}

// ECDSA exposes the underlying key for interop with go-ethereum.
func (sk *PrivateKey) ECDSA() *ecdsa.PrivateKey {
	return sk.key
}

// SignDigest signs a 32 byte digest deterministically (RFC6979) and returns
// the low-S compact R || S form.
func (sk *PrivateKey) SignDigest(digest []byte) (Signature, error) {
	if len(digest) != DigestLen {
		return nil, invalidInputsErrorf("digest must be %d bytes, got %d", DigestLen, len(digest))
	}
	sig, err := ethcrypto.Sign(digest, sk.key)
	if err != nil {
		return nil, err
	}
	return Signature(sig[:SignatureLenECDSA_Secp256k1]), nil
}

// Sign hashes message with Keccak-256 and signs the digest.
func (sk *PrivateKey) Sign(message []byte) (Signature, error) {
	return sk.SignDigest(hash.SumKeccak256(message))
}

// DecodePublicKey decodes a 65 byte uncompressed public key.
func DecodePublicKey(b []byte) (*PublicKey, error) {
	if len(b) != PubKeyLenECDSA_Secp256k1 {
		return nil, invalidInputsErrorf("public key must be %d bytes, got %d", PubKeyLenECDSA_Secp256k1, len(b))
	}
	k, err := ethcrypto.UnmarshalPubkey(b)
	if err != nil {
		return nil, invalidInputsErrorf("invalid public key: %w", err)
	}
	return &PublicKey{key: k}, nil
}

// Encode returns the 65 byte uncompressed form 0x04 || X || Y.
func (pk *PublicKey) Encode() []byte {
	return ethcrypto.FromECDSAPub(pk.key)
}

func (pk *PublicKey) Equals(other *PublicKey) bool {
	return pk.key.Equal(other.key)
}

// VerifyDigest checks a compact signature over a 32 byte digest. High-S signatures are rejected.
func (pk *PublicKey) VerifyDigest(sig Signature, digest []byte) bool {
	if len(sig) != SignatureLenECDSA_Secp256k1 || len(digest) != DigestLen {
		return false
	}
	return ethcrypto.VerifySignature(pk.Encode(), digest, sig)
}

// Verify checks a signature produced by PrivateKey.Sign over message.
func (pk *PublicKey) Verify(sig Signature, message []byte) bool {
	return pk.VerifyDigest(sig, hash.SumKeccak256(message))
}
