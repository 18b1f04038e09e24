package moveup

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
)

// AddressLength is the size of an account address.
const AddressLength = 20

// AccountAddress represents the 20 byte address of an account.
type AccountAddress [AddressLength]byte

var (
	// CoreAddress hosts the framework modules (0x1).
	CoreAddress = AccountAddress{AddressLength - 1: 1}
)

// HexToAddress parses a hex string, with or without 0x prefix, into an address.
// Shorter inputs are padded with zeroes at the front.
func HexToAddress(h string) (AccountAddress, error) {
	var a AccountAddress
	s := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(h), "0x"), "0X")
	if len(s) == 0 || len(s) > 2*AddressLength {
		return a, NewValidationErr(InvalidAddress, "%q", h)
	}
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, NewValidationErr(InvalidAddress, "%q: %v", h, err)
	}
	copy(a[AddressLength-len(b):], b)
	return a, nil
}

// MustHexToAddress is HexToAddress for compile-time constants. It panics on malformed input.
func MustHexToAddress(h string) AccountAddress {
	a, err := HexToAddress(h)
	if err != nil {
		panic(err)
	}
	return a
}

// BytesToAddress returns Address with value b.
//
// If b is smaller than 20 bytes, b will be appended by zeroes at the front.
func BytesToAddress(b []byte) (AccountAddress, error) {
	var a AccountAddress
	if len(b) > AddressLength {
		return a, NewValidationErr(InvalidAddress, "%d bytes", len(b))
	}
	copy(a[AddressLength-len(b):], b)
	return a, nil
}

// Bytes returns the byte representation of the address.
func (a AccountAddress) Bytes() []byte { return a[:] }

// Hex returns the full 0x-prefixed lowercase hex form of the address.
func (a AccountAddress) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// String returns the string representation of the address.
func (a AccountAddress) String() string {
	return a.Hex()
}

// ShortHex returns the 0x-prefixed hex form with leading zeros removed.
func (a AccountAddress) ShortHex() string {
	trimmed := strings.TrimLeft(hex.EncodeToString(a[:]), "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return "0x" + trimmed
}

// ChecksumHex returns the mixed-case checksummed form used by EIP-55.
func (a AccountAddress) ChecksumHex() string {
	return common.Address(a).Hex()
}

func (a AccountAddress) IsZero() bool {
	return a == AccountAddress{}
}

func (a AccountAddress) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.Hex())), nil
}

func (a *AccountAddress) UnmarshalJSON(data []byte) error {
	addr, err := HexToAddress(strings.Trim(string(data), "\""))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Serialize writes the raw 20 bytes, without a length prefix.
func (a AccountAddress) Serialize(s *bcs.Serializer) {
	s.FixedBytes(a[:])
}

func DeserializeAccountAddress(d *bcs.Deserializer) (AccountAddress, error) {
	var a AccountAddress
	b, err := d.FixedBytes(AddressLength)
	if err != nil {
		return a, err
	}
	copy(a[:], b)
	return a, nil
}
