package txbuilder

import (
	"errors"
	"fmt"

	"github.com/moveup-labs/moveup-go-sdk/crypto/hash"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/sdk/eip712"
)

// Scheme selects how the digest handed to a signing function is derived.
type Scheme string

const (
	// SchemeNative signs keccak256(sha3-256(salt) || bcs(tx)).
	SchemeNative Scheme = "native"
	// SchemeEIP712 signs the EIP-712 typed-data hash of the transaction.
	SchemeEIP712 Scheme = "eip712"
)

// ErrUnsupportedTransactionType is returned for anything but a RawTransaction
// or a MultiAgentRawTransaction.
var ErrUnsupportedTransactionType = errors.New("unsupported transaction type")

func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeNative, SchemeEIP712:
		return Scheme(s), nil
	default:
		return "", fmt.Errorf("unknown signing scheme %q", s)
	}
}

func (s Scheme) String() string {
	return string(s)
}

// SigningMessage returns the native signing message of tx.
func SigningMessage(tx interface{}) ([]byte, error) {
	switch t := tx.(type) {
	case moveup.RawTransaction:
		return t.SigningMessage()
	case *moveup.RawTransaction:
		return t.SigningMessage()
	case moveup.MultiAgentRawTransaction:
		return t.SigningMessage()
	case *moveup.MultiAgentRawTransaction:
		return t.SigningMessage()
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTransactionType, tx)
	}
}

// Digest returns the 32 byte digest of tx under the scheme.
func (s Scheme) Digest(tx interface{}) ([]byte, error) {
	switch s {
	case SchemeNative, "":
		msg, err := SigningMessage(tx)
		if err != nil {
			return nil, err
		}
		return hash.SumKeccak256(msg), nil
	case SchemeEIP712:
		switch t := tx.(type) {
		case moveup.RawTransaction:
			return eip712.RawTransactionDigest(t)
		case *moveup.RawTransaction:
			return eip712.RawTransactionDigest(*t)
		case moveup.MultiAgentRawTransaction:
			return eip712.MultiAgentRawTransactionDigest(t)
		case *moveup.MultiAgentRawTransaction:
			return eip712.MultiAgentRawTransactionDigest(*t)
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedTransactionType, tx)
		}
	default:
		return nil, fmt.Errorf("unknown signing scheme %q", string(s))
	}
}
