package hash

import (
	"golang.org/x/crypto/sha3"
)

// NewSHA3_256 returns a new instance of a SHA3-256 hasher.
func NewSHA3_256() Hasher {
	return &commonHasher{algo: SHA3_256, Hash: sha3.New256()}
}

// NewKeccak_256 returns a new instance of the legacy Keccak-256 hasher used by Ethereum.
func NewKeccak_256() Hasher {
	return &commonHasher{algo: Keccak_256, Hash: sha3.NewLegacyKeccak256()}
}

// SumSHA3_256 hashes the concatenation of data.
func SumSHA3_256(data ...[]byte) Hash {
	return sum(NewSHA3_256(), data)
}

// SumKeccak256 hashes the concatenation of data.
func SumKeccak256(data ...[]byte) Hash {
	return sum(NewKeccak_256(), data)
}

func sum(h Hasher, data [][]byte) Hash {
	for _, d := range data {
		_, _ = h.Write(d)
	}
	return h.SumHash()
}
