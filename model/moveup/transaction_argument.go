package moveup

import (
	"strconv"
	"strings"

	"github.com/holiman/uint256"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
)

// TransactionArgument is an argument of a script payload.
type TransactionArgument interface {
	bcs.Serializable
	// String renders the argument the way script arguments are displayed, e.g. 2u8 or vector[1u8, 2u8].
	String() string
	isTransactionArgument()
}

const (
	txnArgU8       uint32 = 0
	txnArgU64      uint32 = 1
	txnArgU128     uint32 = 2
	txnArgAddress  uint32 = 3
	txnArgU8Vector uint32 = 4
	txnArgBool     uint32 = 5
	txnArgU16      uint32 = 6
	txnArgU32      uint32 = 7
	txnArgU256     uint32 = 8
)

type (
	TransactionArgumentU8 struct {
		Value uint8
	}
	TransactionArgumentU16 struct {
		Value uint16
	}
	TransactionArgumentU32 struct {
		Value uint32
	}
	TransactionArgumentU64 struct {
		Value uint64
	}
	TransactionArgumentU128 struct {
		Value uint256.Int
	}
	TransactionArgumentU256 struct {
		Value uint256.Int
	}
	TransactionArgumentAddress struct {
		Value AccountAddress
	}
	TransactionArgumentU8Vector struct {
		Value []byte
	}
	TransactionArgumentBool struct {
		Value bool
	}
)

func (TransactionArgumentU8) isTransactionArgument()       {}
func (TransactionArgumentU16) isTransactionArgument()      {}
func (TransactionArgumentU32) isTransactionArgument()      {}
func (TransactionArgumentU64) isTransactionArgument()      {}
func (TransactionArgumentU128) isTransactionArgument()     {}
func (TransactionArgumentU256) isTransactionArgument()     {}
func (TransactionArgumentAddress) isTransactionArgument()  {}
func (TransactionArgumentU8Vector) isTransactionArgument() {}
func (TransactionArgumentBool) isTransactionArgument()     {}

func (a TransactionArgumentU8) Serialize(s *bcs.Serializer) {
	s.Uleb128(txnArgU8)
	s.U8(a.Value)
}

func (a TransactionArgumentU16) Serialize(s *bcs.Serializer) {
	s.Uleb128(txnArgU16)
	s.U16(a.Value)
}

func (a TransactionArgumentU32) Serialize(s *bcs.Serializer) {
	s.Uleb128(txnArgU32)
	s.U32(a.Value)
}

func (a TransactionArgumentU64) Serialize(s *bcs.Serializer) {
	s.Uleb128(txnArgU64)
	s.U64(a.Value)
}

func (a TransactionArgumentU128) Serialize(s *bcs.Serializer) {
	s.Uleb128(txnArgU128)
	s.U128(a.Value)
}

func (a TransactionArgumentU256) Serialize(s *bcs.Serializer) {
	s.Uleb128(txnArgU256)
	s.U256(a.Value)
}

func (a TransactionArgumentAddress) Serialize(s *bcs.Serializer) {
	s.Uleb128(txnArgAddress)
	a.Value.Serialize(s)
}

func (a TransactionArgumentU8Vector) Serialize(s *bcs.Serializer) {
	s.Uleb128(txnArgU8Vector)
	s.Bytes(a.Value)
}

func (a TransactionArgumentBool) Serialize(s *bcs.Serializer) {
	s.Uleb128(txnArgBool)
	s.Bool(a.Value)
}

func (a TransactionArgumentU8) String() string  { return strconv.FormatUint(uint64(a.Value), 10) + "u8" }
func (a TransactionArgumentU16) String() string { return strconv.FormatUint(uint64(a.Value), 10) + "u16" }
func (a TransactionArgumentU32) String() string { return strconv.FormatUint(uint64(a.Value), 10) + "u32" }
func (a TransactionArgumentU64) String() string { return strconv.FormatUint(a.Value, 10) + "u64" }
func (a TransactionArgumentU128) String() string {
	return a.Value.Dec() + "u128"
}
func (a TransactionArgumentU256) String() string {
	return a.Value.Dec() + "u256"
}
func (a TransactionArgumentAddress) String() string { return a.Value.ShortHex() }
func (a TransactionArgumentBool) String() string    { return strconv.FormatBool(a.Value) }

func (a TransactionArgumentU8Vector) String() string {
	parts := make([]string, len(a.Value))
	for i, b := range a.Value {
		parts[i] = strconv.FormatUint(uint64(b), 10) + "u8"
	}
	return "vector[" + strings.Join(parts, ", ") + "]"
}

// TransactionArgumentStrings renders every argument with its String form.
func TransactionArgumentStrings(args []TransactionArgument) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = arg.String()
	}
	return out
}

func DeserializeTransactionArgument(d *bcs.Deserializer) (TransactionArgument, error) {
	tag, err := d.Uleb128()
	if err != nil {
		return nil, err
	}

	var arg TransactionArgument
	switch tag {
	case txnArgU8:
		var v uint8
		v, err = d.U8()
		arg = TransactionArgumentU8{Value: v}
	case txnArgU16:
		var v uint16
		v, err = d.U16()
		arg = TransactionArgumentU16{Value: v}
	case txnArgU32:
		var v uint32
		v, err = d.U32()
		arg = TransactionArgumentU32{Value: v}
	case txnArgU64:
		var v uint64
		v, err = d.U64()
		arg = TransactionArgumentU64{Value: v}
	case txnArgU128:
		var v uint256.Int
		v, err = d.U128()
		arg = TransactionArgumentU128{Value: v}
	case txnArgU256:
		var v uint256.Int
		v, err = d.U256()
		arg = TransactionArgumentU256{Value: v}
	case txnArgAddress:
		var v AccountAddress
		v, err = DeserializeAccountAddress(d)
		arg = TransactionArgumentAddress{Value: v}
	case txnArgU8Vector:
		var v []byte
		v, err = d.Bytes()
		arg = TransactionArgumentU8Vector{Value: v}
	case txnArgBool:
		var v bool
		v, err = d.Bool()
		arg = TransactionArgumentBool{Value: v}
	default:
		return nil, NewUnknownVariantErr("TransactionArgument", tag)
	}
	if err != nil {
		return nil, err
	}
	return arg, nil
}
