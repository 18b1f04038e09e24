package hash

import (
	"encoding/hex"
	"hash"
)

// Hash is the output of a hashing algorithm.
type Hash []byte

func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h)
}

func (h Hash) String() string {
	return h.Hex()
}

// Equal checks if a hash is equal to a given hash
func (h Hash) Equal(input Hash) bool {
	if len(h) != len(input) {
		return false
	}
	for i := 0; i < len(h); i++ {
		if h[i] != input[i] {
			return false
		}
	}
	return true
}

// HashingAlgorithm is an identifier for a hashing algorithm.
type HashingAlgorithm int

const (
	UnknownHashingAlgorithm HashingAlgorithm = iota
	SHA3_256
	Keccak_256
)

func (a HashingAlgorithm) String() string {
	return [...]string{"UNKNOWN", "SHA3_256", "KECCAK_256"}[a]
}

// HashLen is the output size in bytes of every supported algorithm.
const HashLen = 32

// Hasher interface
type Hasher interface {
	// Algorithm returns the hashing algorithm of the hasher.
	Algorithm() HashingAlgorithm
	// Size returns the hash output length
	Size() int
	// ComputeHash returns the hash output of data.
	// The hash state is reset before hashing.
	ComputeHash(data []byte) Hash
	// Write adds bytes to the hash state
	Write([]byte) (int, error)
	// SumHash returns the hash output of the bytes written so far.
	SumHash() Hash
	// Reset resets the hash state
	Reset()
}

type commonHasher struct {
	algo HashingAlgorithm
	hash.Hash
}

func (h *commonHasher) Algorithm() HashingAlgorithm {
	return h.algo
}

func (h *commonHasher) ComputeHash(data []byte) Hash {
	h.Reset()
	_, _ = h.Write(data)
	return h.Sum(nil)
}

func (h *commonHasher) SumHash() Hash {
	return h.Sum(nil)
}
