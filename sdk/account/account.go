// Package account holds a secp256k1 signing key together with the address
// of the account it controls.
package account

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/moveup-labs/moveup-go-sdk/crypto"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
)

var derivationPathRegex = regexp.MustCompile(`^m/44'/60'/[0-9]+'/[0-9]+'/[0-9]+'+$`)

// IsValidPath reports whether path is a hardened BIP44 path under coin type 60,
// e.g. m/44'/60'/0'/0'/0'.
func IsValidPath(path string) bool {
	return derivationPathRegex.MatchString(path)
}

// Account signs on behalf of an on-chain account.
//
// The address defaults to the one derived from the authentication key. After a
// key rotation the two differ and the address must be given explicitly.
type Account struct {
	privateKey *crypto.PrivateKey
	publicKey  moveup.Secp256k1PublicKey
	address    moveup.AccountAddress

	authKeyOnce sync.Once
	authKey     moveup.AuthenticationKey
}

// NewAccount creates an account for the given key. A nil address means the
// address derived from the key.
func NewAccount(privateKey *crypto.PrivateKey, address *moveup.AccountAddress) (*Account, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("private key required")
	}
	publicKey, err := moveup.NewSecp256k1PublicKey(privateKey.PublicKey().Encode())
	if err != nil {
		return nil, err
	}

	a := &Account{
		privateKey: privateKey,
		publicKey:  publicKey,
	}
	if address != nil {
		a.address = *address
	} else {
		a.address = a.AuthKey().DerivedAddress()
	}
	return a, nil
}

// GenerateAccount creates an account with a fresh random key.
func GenerateAccount() (*Account, error) {
	sk, err := crypto.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("could not generate key: %w", err)
	}
	return NewAccount(sk, nil)
}

// FromDerivePath derives the account key at path from a BIP39 mnemonic.
func FromDerivePath(path string, mnemonic string) (*Account, error) {
	if !IsValidPath(path) {
		return nil, moveup.NewValidationErr(moveup.InvalidDerivationPath, "%q", path)
	}
	sk, err := crypto.DeriveFromMnemonic(crypto.NormalizeMnemonic(mnemonic), path)
	if err != nil {
		return nil, fmt.Errorf("could not derive key at %s: %w", path, err)
	}
	return NewAccount(sk, nil)
}

func (a *Account) Address() moveup.AccountAddress {
	return a.address
}

func (a *Account) PubKey() moveup.Secp256k1PublicKey {
	return a.publicKey
}

func (a *Account) PrivateKey() *crypto.PrivateKey {
	return a.privateKey
}

// AuthKey returns the authentication key of the account's public key.
func (a *Account) AuthKey() moveup.AuthenticationKey {
	a.authKeyOnce.Do(func() {
		a.authKey = moveup.AuthenticationKeyFromSecp256k1PublicKey(a.publicKey)
	})
	return a.authKey
}

// SignBuffer signs keccak256(buf).
func (a *Account) SignBuffer(buf []byte) (moveup.Secp256k1Signature, error) {
	sig, err := a.privateKey.Sign(buf)
	if err != nil {
		return moveup.Secp256k1Signature{}, err
	}
	return moveup.NewSecp256k1Signature(sig)
}

// SignHexString signs the bytes encoded by a hex string, with or without 0x prefix.
func (a *Account) SignHexString(s string) (moveup.Secp256k1Signature, error) {
	buf, err := decodeHex(s)
	if err != nil {
		return moveup.Secp256k1Signature{}, err
	}
	return a.SignBuffer(buf)
}

// SignDigest signs a precomputed 32 byte digest, such as an EIP-712 hash.
func (a *Account) SignDigest(digest []byte) (moveup.Secp256k1Signature, error) {
	sig, err := a.privateKey.SignDigest(digest)
	if err != nil {
		return moveup.Secp256k1Signature{}, err
	}
	return moveup.NewSecp256k1Signature(sig)
}

// VerifySignature checks sig against keccak256(message) and the account's public key.
func (a *Account) VerifySignature(message []byte, sig moveup.Secp256k1Signature) bool {
	return a.privateKey.PublicKey().Verify(sig.Bytes(), message)
}

// PrivateKeyObject is the JSON form an account is exported to and imported from.
type PrivateKeyObject struct {
	Address       string `json:"address,omitempty"`
	PublicKeyHex  string `json:"publicKeyHex,omitempty"`
	PrivateKeyHex string `json:"privateKeyHex"`
}

func (a *Account) ToPrivateKeyObject() PrivateKeyObject {
	return PrivateKeyObject{
		Address:       a.address.Hex(),
		PublicKeyHex:  a.publicKey.Hex(),
		PrivateKeyHex: "0x" + hex.EncodeToString(a.privateKey.Encode()),
	}
}

// FromPrivateKeyObject restores an account. The public key is always recomputed
// from the private key; a missing address falls back to the derived one.
func FromPrivateKeyObject(obj PrivateKeyObject) (*Account, error) {
	sk, err := crypto.DecodePrivateKeyHex(obj.PrivateKeyHex)
	if err != nil {
		return nil, err
	}
	if obj.Address == "" {
		return NewAccount(sk, nil)
	}
	addr, err := moveup.HexToAddress(obj.Address)
	if err != nil {
		return nil, err
	}
	return NewAccount(sk, &addr)
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, moveup.NewValidationErr(moveup.InvalidArgument, "hex string %q: %v", s, err)
	}
	return b, nil
}
