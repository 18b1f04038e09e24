package moveup

import (
	"fmt"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
)

// TransactionAuthenticator proves that the sender, and for multi-agent
// transactions every secondary signer, approved a raw transaction.
type TransactionAuthenticator interface {
	bcs.Serializable
	isTransactionAuthenticator()
}

// AccountAuthenticator proves the approval of a single account.
type AccountAuthenticator interface {
	bcs.Serializable
	isAccountAuthenticator()
}

const (
	authenticatorMultiAgent     uint32 = 2
	authenticatorSecp256k1      uint32 = 3
	authenticatorMultiSecp256k1 uint32 = 4
)

type TransactionAuthenticatorSecp256k1 struct {
	PublicKey Secp256k1PublicKey
	Signature Secp256k1Signature
}

type TransactionAuthenticatorMultiSecp256k1 struct {
	PublicKey MultiSecp256k1PublicKey
	Signature MultiSecp256k1Signature
}

type TransactionAuthenticatorMultiAgent struct {
	Sender                   AccountAuthenticator
	SecondarySignerAddresses []AccountAddress
	SecondarySigners         []AccountAuthenticator
}

type AccountAuthenticatorSecp256k1 struct {
	PublicKey Secp256k1PublicKey
	Signature Secp256k1Signature
}

type AccountAuthenticatorMultiSecp256k1 struct {
	PublicKey MultiSecp256k1PublicKey
	Signature MultiSecp256k1Signature
}

func (TransactionAuthenticatorSecp256k1) isTransactionAuthenticator()      {}
func (TransactionAuthenticatorMultiSecp256k1) isTransactionAuthenticator() {}
func (TransactionAuthenticatorMultiAgent) isTransactionAuthenticator()     {}
func (AccountAuthenticatorSecp256k1) isAccountAuthenticator()              {}
func (AccountAuthenticatorMultiSecp256k1) isAccountAuthenticator()         {}

func (a TransactionAuthenticatorSecp256k1) Serialize(s *bcs.Serializer) {
	s.Uleb128(authenticatorSecp256k1)
	a.PublicKey.Serialize(s)
	a.Signature.Serialize(s)
}

func (a TransactionAuthenticatorMultiSecp256k1) Serialize(s *bcs.Serializer) {
	s.Uleb128(authenticatorMultiSecp256k1)
	a.PublicKey.Serialize(s)
	a.Signature.Serialize(s)
}

func (a TransactionAuthenticatorMultiAgent) Serialize(s *bcs.Serializer) {
	s.Uleb128(authenticatorMultiAgent)
	a.Sender.Serialize(s)
	bcs.SerializeSeq(s, a.SecondarySignerAddresses, func(s *bcs.Serializer, addr AccountAddress) { addr.Serialize(s) })
	bcs.SerializeSeq(s, a.SecondarySigners, func(s *bcs.Serializer, auth AccountAuthenticator) { auth.Serialize(s) })
}

func (a AccountAuthenticatorSecp256k1) Serialize(s *bcs.Serializer) {
	s.Uleb128(authenticatorSecp256k1)
	a.PublicKey.Serialize(s)
	a.Signature.Serialize(s)
}

func (a AccountAuthenticatorMultiSecp256k1) Serialize(s *bcs.Serializer) {
	s.Uleb128(authenticatorMultiSecp256k1)
	a.PublicKey.Serialize(s)
	a.Signature.Serialize(s)
}

func DeserializeTransactionAuthenticator(d *bcs.Deserializer) (TransactionAuthenticator, error) {
	tag, err := d.Uleb128()
	if err != nil {
		return nil, err
	}
	switch tag {
	case authenticatorSecp256k1:
		pk, sig, err := deserializeSingleKey(d)
		if err != nil {
			return nil, err
		}
		return TransactionAuthenticatorSecp256k1{PublicKey: pk, Signature: sig}, nil
	case authenticatorMultiSecp256k1:
		pk, sig, err := deserializeMultiKey(d)
		if err != nil {
			return nil, err
		}
		return TransactionAuthenticatorMultiSecp256k1{PublicKey: pk, Signature: sig}, nil
	case authenticatorMultiAgent:
		sender, err := DeserializeAccountAuthenticator(d)
		if err != nil {
			return nil, fmt.Errorf("sender authenticator: %w", err)
		}
		addrs, err := bcs.DeserializeSeq(d, DeserializeAccountAddress)
		if err != nil {
			return nil, fmt.Errorf("secondary signer addresses: %w", err)
		}
		signers, err := bcs.DeserializeSeq(d, DeserializeAccountAuthenticator)
		if err != nil {
			return nil, fmt.Errorf("secondary signers: %w", err)
		}
		return TransactionAuthenticatorMultiAgent{Sender: sender, SecondarySignerAddresses: addrs, SecondarySigners: signers}, nil
	default:
		return nil, NewUnknownVariantErr("TransactionAuthenticator", tag)
	}
}

func DeserializeAccountAuthenticator(d *bcs.Deserializer) (AccountAuthenticator, error) {
	tag, err := d.Uleb128()
	if err != nil {
		return nil, err
	}
	switch tag {
	case authenticatorSecp256k1:
		pk, sig, err := deserializeSingleKey(d)
		if err != nil {
			return nil, err
		}
		return AccountAuthenticatorSecp256k1{PublicKey: pk, Signature: sig}, nil
	case authenticatorMultiSecp256k1:
		pk, sig, err := deserializeMultiKey(d)
		if err != nil {
			return nil, err
		}
		return AccountAuthenticatorMultiSecp256k1{PublicKey: pk, Signature: sig}, nil
	default:
		return nil, NewUnknownVariantErr("AccountAuthenticator", tag)
	}
}

func deserializeSingleKey(d *bcs.Deserializer) (Secp256k1PublicKey, Secp256k1Signature, error) {
	pk, err := DeserializeSecp256k1PublicKey(d)
	if err != nil {
		return pk, Secp256k1Signature{}, err
	}
	sig, err := DeserializeSecp256k1Signature(d)
	return pk, sig, err
}

func deserializeMultiKey(d *bcs.Deserializer) (MultiSecp256k1PublicKey, MultiSecp256k1Signature, error) {
	pk, err := DeserializeMultiSecp256k1PublicKey(d)
	if err != nil {
		return pk, MultiSecp256k1Signature{}, err
	}
	sig, err := DeserializeMultiSecp256k1Signature(d)
	return pk, sig, err
}
