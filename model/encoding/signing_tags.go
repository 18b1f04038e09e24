package encoding

import (
	"github.com/moveup-labs/moveup-go-sdk/crypto/hash"
)

// List of domain separation tags for transaction signatures and hashes.
//
// Every signed or hashed object is prefixed with the hash of a tag naming
// its type, so a signature over one kind of object can never be replayed
// as a signature over another.

func tag(domain string) string {
	return protocolPrefix + domain
}

// Moveup protocol prefix
const protocolPrefix = "MOVEUP::"

var (
	// RawTransactionTag is used for single-sender transaction signatures
	RawTransactionTag = tag("RawTransaction")
	// RawTransactionWithDataTag is used for multi-agent transaction signatures
	RawTransactionWithDataTag = tag("RawTransactionWithData")
	// TransactionTag is used for transaction hashes
	TransactionTag = tag("Transaction")
)

var (
	rawTransactionSalt         = hash.SumSHA3_256([]byte(RawTransactionTag))
	rawTransactionWithDataSalt = hash.SumSHA3_256([]byte(RawTransactionWithDataTag))
	transactionHashSalt        = hash.SumKeccak256([]byte(TransactionTag))
)

// RawTransactionSalt returns the signing prefix of a RawTransaction.
func RawTransactionSalt() []byte {
	return append([]byte(nil), rawTransactionSalt...)
}

// RawTransactionWithDataSalt returns the signing prefix of a RawTransactionWithData.
func RawTransactionWithDataSalt() []byte {
	return append([]byte(nil), rawTransactionWithDataSalt...)
}

// TransactionHashSalt returns the prefix hashed together with a transaction to compute its hash.
func TransactionHashSalt() []byte {
	return append([]byte(nil), transactionHashSalt...)
}
