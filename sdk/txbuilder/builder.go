// Package txbuilder turns raw transactions into signed ones. Signing is delegated
// to a pluggable function so keys can live in wallets, HSMs or remote signers.
package txbuilder

import (
	"sort"

	"github.com/moveup-labs/moveup-go-sdk/crypto"
	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/sdk/account"
)

// SigningFunc signs a 32 byte digest.
type SigningFunc func(digest []byte) (moveup.Secp256k1Signature, error)

// MultiSigningFunc signs a digest with every participating key. The signatures
// must be ordered by ascending signer index, the builder rejects any other order.
type MultiSigningFunc func(digest []byte) ([]moveup.Secp256k1Signature, error)

// AccountSigningFunc signs with a local account.
func AccountSigningFunc(a *account.Account) SigningFunc {
	return a.SignDigest
}

// AccountsSigningFunc signs with each account in turn.
func AccountsSigningFunc(accounts ...*account.Account) MultiSigningFunc {
	return func(digest []byte) ([]moveup.Secp256k1Signature, error) {
		sigs := make([]moveup.Secp256k1Signature, 0, len(accounts))
		for _, a := range accounts {
			sig, err := a.SignDigest(digest)
			if err != nil {
				return nil, err
			}
			sigs = append(sigs, sig)
		}
		return sigs, nil
	}
}

// AccountSigner produces the authenticator of one account over a transaction.
// Both builders implement it, which lets them act as multi-agent participants.
type AccountSigner interface {
	AccountAuthenticator(tx interface{}) (moveup.AccountAuthenticator, error)
}

type Option func(*options)

type options struct {
	scheme Scheme
}

// WithScheme selects the digest derivation. The default is SchemeNative.
func WithScheme(s Scheme) Option {
	return func(o *options) {
		o.scheme = s
	}
}

func applyOptions(opts []Option) options {
	o := options{scheme: SchemeNative}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// Secp256k1Builder signs with a single key.
type Secp256k1Builder struct {
	sign      SigningFunc
	publicKey moveup.Secp256k1PublicKey
	scheme    Scheme
}

var _ AccountSigner = (*Secp256k1Builder)(nil)

func NewSecp256k1Builder(sign SigningFunc, publicKey moveup.Secp256k1PublicKey, opts ...Option) *Secp256k1Builder {
	o := applyOptions(opts)
	return &Secp256k1Builder{
		sign:      sign,
		publicKey: publicKey,
		scheme:    o.scheme,
	}
}

func (b *Secp256k1Builder) signature(tx interface{}) (moveup.Secp256k1Signature, error) {
	digest, err := b.scheme.Digest(tx)
	if err != nil {
		return moveup.Secp256k1Signature{}, err
	}
	return b.sign(digest)
}

// RawToSigned signs tx and attaches a single key authenticator.
func (b *Secp256k1Builder) RawToSigned(tx moveup.RawTransaction) (moveup.SignedTransaction, error) {
	sig, err := b.signature(tx)
	if err != nil {
		return moveup.SignedTransaction{}, err
	}
	return moveup.SignedTransaction{
		RawTxn:        tx,
		Authenticator: moveup.TransactionAuthenticatorSecp256k1{PublicKey: b.publicKey, Signature: sig},
	}, nil
}

// Sign returns the encoded signed transaction, ready for submission.
func (b *Secp256k1Builder) Sign(tx moveup.RawTransaction) ([]byte, error) {
	signed, err := b.RawToSigned(tx)
	if err != nil {
		return nil, err
	}
	return bcs.ToBytes(signed)
}

func (b *Secp256k1Builder) AccountAuthenticator(tx interface{}) (moveup.AccountAuthenticator, error) {
	sig, err := b.signature(tx)
	if err != nil {
		return nil, err
	}
	return moveup.AccountAuthenticatorSecp256k1{PublicKey: b.publicKey, Signature: sig}, nil
}

// MultiSecp256k1Builder signs with a subset of the keys of a K-of-N public key.
type MultiSecp256k1Builder struct {
	sign      MultiSigningFunc
	publicKey moveup.MultiSecp256k1PublicKey
	signers   []uint8
	scheme    Scheme
}

var _ AccountSigner = (*MultiSecp256k1Builder)(nil)

// NewMultiSecp256k1Builder creates a builder for the keys at the signer indices.
func NewMultiSecp256k1Builder(sign MultiSigningFunc, publicKey moveup.MultiSecp256k1PublicKey, signers []uint8, opts ...Option) *MultiSecp256k1Builder {
	o := applyOptions(opts)
	sorted := append([]uint8(nil), signers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return &MultiSecp256k1Builder{
		sign:      sign,
		publicKey: publicKey,
		signers:   sorted,
		scheme:    o.scheme,
	}
}

// bitmap validates the signer set against the public key.
func (b *MultiSecp256k1Builder) bitmap() ([moveup.BitmapLength]byte, error) {
	for _, i := range b.signers {
		if int(i) >= len(b.publicKey.PublicKeys) {
			return [moveup.BitmapLength]byte{}, moveup.NewValidationErr(moveup.InvalidBitmap,
				"signer index %d out of range for %d keys", i, len(b.publicKey.PublicKeys))
		}
	}
	bitmap, err := moveup.CreateBitmap(b.signers)
	if err != nil {
		return bitmap, err
	}
	if len(b.signers) < int(b.publicKey.Threshold) {
		return bitmap, moveup.NewValidationErr(moveup.InvalidBitmap,
			"%d signers do not meet threshold %d", len(b.signers), b.publicKey.Threshold)
	}
	return bitmap, nil
}

func (b *MultiSecp256k1Builder) signature(tx interface{}) (moveup.MultiSecp256k1Signature, error) {
	bitmap, err := b.bitmap()
	if err != nil {
		return moveup.MultiSecp256k1Signature{}, err
	}
	digest, err := b.scheme.Digest(tx)
	if err != nil {
		return moveup.MultiSecp256k1Signature{}, err
	}
	sigs, err := b.sign(digest)
	if err != nil {
		return moveup.MultiSecp256k1Signature{}, err
	}
	if err := b.verify(digest, sigs); err != nil {
		return moveup.MultiSecp256k1Signature{}, err
	}
	return moveup.NewMultiSecp256k1Signature(sigs, bitmap)
}

// verify checks that the i-th signature was made by the key of the i-th lowest signer
// index, which is the order the bitmap assigns signatures to keys.
func (b *MultiSecp256k1Builder) verify(digest []byte, sigs []moveup.Secp256k1Signature) error {
	if len(sigs) != len(b.signers) {
		return moveup.NewValidationErr(moveup.InvalidBitmap,
			"bitmap marks %d signers but %d signatures given", len(b.signers), len(sigs))
	}
	for i, index := range b.signers {
		pk, err := crypto.DecodePublicKey(b.publicKey.PublicKeys[index].Bytes())
		if err != nil {
			return err
		}
		if !pk.VerifyDigest(sigs[i].Bytes(), digest) {
			return moveup.NewValidationErr(moveup.InvalidSignature,
				"signature %d was not made by signer %d, signatures must follow ascending signer index", i, index)
		}
	}
	return nil
}

// RawToSigned signs tx and attaches a multi key authenticator.
func (b *MultiSecp256k1Builder) RawToSigned(tx moveup.RawTransaction) (moveup.SignedTransaction, error) {
	sig, err := b.signature(tx)
	if err != nil {
		return moveup.SignedTransaction{}, err
	}
	return moveup.SignedTransaction{
		RawTxn:        tx,
		Authenticator: moveup.TransactionAuthenticatorMultiSecp256k1{PublicKey: b.publicKey, Signature: sig},
	}, nil
}

func (b *MultiSecp256k1Builder) Sign(tx moveup.RawTransaction) ([]byte, error) {
	signed, err := b.RawToSigned(tx)
	if err != nil {
		return nil, err
	}
	return bcs.ToBytes(signed)
}

func (b *MultiSecp256k1Builder) AccountAuthenticator(tx interface{}) (moveup.AccountAuthenticator, error) {
	sig, err := b.signature(tx)
	if err != nil {
		return nil, err
	}
	return moveup.AccountAuthenticatorMultiSecp256k1{PublicKey: b.publicKey, Signature: sig}, nil
}

// SignMultiAgent collects the sender's and every secondary signer's approval of tx.
// Secondary signers are matched to tx.SecondarySignerAddresses by position.
func SignMultiAgent(tx moveup.MultiAgentRawTransaction, sender AccountSigner, secondary ...AccountSigner) (moveup.SignedTransaction, error) {
	if len(secondary) != len(tx.SecondarySignerAddresses) {
		return moveup.SignedTransaction{}, moveup.NewValidationErr(moveup.WrongArgumentCount,
			"%d secondary signers for %d secondary addresses", len(secondary), len(tx.SecondarySignerAddresses))
	}

	senderAuth, err := sender.AccountAuthenticator(tx)
	if err != nil {
		return moveup.SignedTransaction{}, err
	}
	auths := make([]moveup.AccountAuthenticator, len(secondary))
	for i, s := range secondary {
		auths[i], err = s.AccountAuthenticator(tx)
		if err != nil {
			return moveup.SignedTransaction{}, err
		}
	}

	addrs := tx.SecondarySignerAddresses
	if addrs == nil {
		addrs = []moveup.AccountAddress{}
	}
	return moveup.SignedTransaction{
		RawTxn: tx.RawTxn,
		Authenticator: moveup.TransactionAuthenticatorMultiAgent{
			Sender:                   senderAuth,
			SecondarySignerAddresses: addrs,
			SecondarySigners:         auths,
		},
	}, nil
}
