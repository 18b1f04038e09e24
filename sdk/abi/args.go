package abi

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
)

// EntryFunctionArguments converts loosely typed values into entry function arguments,
// following the parameter types of the ABI. The first value that cannot be converted
// stops the conversion.
func EntryFunctionArguments(params []moveup.ArgumentABI, vals []interface{}) ([]moveup.EntryFunctionArgument, error) {
	if len(params) != len(vals) {
		return nil, moveup.NewValidationErr(moveup.WrongArgumentCount, "expected %d, got %d", len(params), len(vals))
	}
	args := make([]moveup.EntryFunctionArgument, 0, len(vals))
	for i, param := range params {
		arg, err := ToEntryFunctionArgument(vals[i], param.TypeTag)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", param.Name, err)
		}
		args = append(args, arg)
	}
	return args, nil
}

// TransactionArguments is EntryFunctionArguments for script arguments.
func TransactionArguments(params []moveup.ArgumentABI, vals []interface{}) ([]moveup.TransactionArgument, error) {
	if len(params) != len(vals) {
		return nil, moveup.NewValidationErr(moveup.WrongArgumentCount, "expected %d, got %d", len(params), len(vals))
	}
	args := make([]moveup.TransactionArgument, 0, len(vals))
	for i, param := range params {
		arg, err := ToTransactionArgument(vals[i], param.TypeTag)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", param.Name, err)
		}
		args = append(args, arg)
	}
	return args, nil
}

// ToEntryFunctionArgument converts val into an argument of the given type.
// A val that already is an EntryFunctionArgument is returned unchanged.
func ToEntryFunctionArgument(val interface{}, tag moveup.TypeTag) (moveup.EntryFunctionArgument, error) {
	if arg, ok := val.(moveup.EntryFunctionArgument); ok {
		return arg, nil
	}

	switch t := tag.(type) {
	case moveup.TypeTagBool:
		b, err := toBool(val)
		if err != nil {
			return nil, err
		}
		return moveup.EntryFunctionArgumentBool{Value: b}, nil
	case moveup.TypeTagU8:
		n, err := toUint(val, 8)
		if err != nil {
			return nil, err
		}
		return moveup.EntryFunctionArgumentU8{Value: uint8(n.Uint64())}, nil
	case moveup.TypeTagU16:
		n, err := toUint(val, 16)
		if err != nil {
			return nil, err
		}
		return moveup.EntryFunctionArgumentU16{Value: uint16(n.Uint64())}, nil
	case moveup.TypeTagU32:
		n, err := toUint(val, 32)
		if err != nil {
			return nil, err
		}
		return moveup.EntryFunctionArgumentU32{Value: uint32(n.Uint64())}, nil
	case moveup.TypeTagU64:
		n, err := toUint(val, 64)
		if err != nil {
			return nil, err
		}
		return moveup.EntryFunctionArgumentU64{Value: n.Uint64()}, nil
	case moveup.TypeTagU128:
		n, err := toUint(val, 128)
		if err != nil {
			return nil, err
		}
		return moveup.EntryFunctionArgumentU128{Value: *n}, nil
	case moveup.TypeTagU256:
		n, err := toUint(val, 256)
		if err != nil {
			return nil, err
		}
		return moveup.EntryFunctionArgumentU256{Value: *n}, nil
	case moveup.TypeTagAddress:
		addr, err := toAddress(val)
		if err != nil {
			return nil, err
		}
		return moveup.EntryFunctionArgumentAddress{Value: addr}, nil
	case moveup.TypeTagVector:
		return toVector(val, t.Elem)
	case moveup.TypeTagStruct:
		return toStruct(val, t.Value)
	default:
		return nil, moveup.NewValidationErr(moveup.InvalidArgument, "unsupported argument type %s", tag)
	}
}

func toVector(val interface{}, elem moveup.TypeTag) (moveup.EntryFunctionArgument, error) {
	if _, ok := elem.(moveup.TypeTagU8); ok {
		switch v := val.(type) {
		case []byte:
			elements := make([]moveup.EntryFunctionArgument, len(v))
			for i, b := range v {
				elements[i] = moveup.EntryFunctionArgumentU8{Value: b}
			}
			return moveup.EntryFunctionArgumentVector{Elements: elements}, nil
		case string:
			return toVector([]byte(v), elem)
		}
	}

	rv := reflect.ValueOf(val)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, moveup.NewValidationErr(moveup.InvalidArgument, "vector<%s> expects a slice, got %T", elem, val)
	}
	elements := make([]moveup.EntryFunctionArgument, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		arg, err := ToEntryFunctionArgument(rv.Index(i).Interface(), elem)
		if err != nil {
			return nil, fmt.Errorf("vector element %d: %w", i, err)
		}
		elements = append(elements, arg)
	}
	return moveup.EntryFunctionArgumentVector{Elements: elements}, nil
}

func toStruct(val interface{}, tag moveup.StructTag) (moveup.EntryFunctionArgument, error) {
	switch {
	case tag.IsString():
		s, ok := val.(string)
		if !ok {
			return nil, moveup.NewValidationErr(moveup.InvalidArgument, "%s expects a string, got %T", tag, val)
		}
		return moveup.EntryFunctionArgumentString{Value: s}, nil
	case tag.IsOption():
		if val == nil {
			return moveup.EntryFunctionArgumentOption{}, nil
		}
		if len(tag.TypeArgs) != 1 {
			return nil, moveup.NewValidationErr(moveup.InvalidArgument, "%s needs exactly one type argument", tag)
		}
		inner, err := ToEntryFunctionArgument(val, tag.TypeArgs[0])
		if err != nil {
			return nil, fmt.Errorf("option value: %w", err)
		}
		return moveup.EntryFunctionArgumentOption{Value: inner}, nil
	case tag.IsObject():
		addr, err := toAddress(val)
		if err != nil {
			return nil, err
		}
		return moveup.EntryFunctionArgumentObject{Value: addr}, nil
	case tag.IsFixedPoint32():
		n, err := toUint(val, 64)
		if err != nil {
			return nil, err
		}
		return moveup.EntryFunctionArgumentFixedPoint32{Value: n.Uint64()}, nil
	case tag.IsFixedPoint64():
		n, err := toUint(val, 128)
		if err != nil {
			return nil, err
		}
		return moveup.EntryFunctionArgumentFixedPoint64{Value: *n}, nil
	default:
		// field names and order come from the module, so the caller builds the value
		return nil, moveup.NewValidationErr(moveup.InvalidArgument, "%s requires an explicit struct argument, got %T", tag, val)
	}
}

// ToTransactionArgument converts val into a script argument of the given type.
// Script arguments only cover primitives, addresses and byte vectors.
func ToTransactionArgument(val interface{}, tag moveup.TypeTag) (moveup.TransactionArgument, error) {
	if arg, ok := val.(moveup.TransactionArgument); ok {
		return arg, nil
	}

	switch t := tag.(type) {
	case moveup.TypeTagBool:
		b, err := toBool(val)
		if err != nil {
			return nil, err
		}
		return moveup.TransactionArgumentBool{Value: b}, nil
	case moveup.TypeTagU8:
		n, err := toUint(val, 8)
		if err != nil {
			return nil, err
		}
		return moveup.TransactionArgumentU8{Value: uint8(n.Uint64())}, nil
	case moveup.TypeTagU16:
		n, err := toUint(val, 16)
		if err != nil {
			return nil, err
		}
		return moveup.TransactionArgumentU16{Value: uint16(n.Uint64())}, nil
	case moveup.TypeTagU32:
		n, err := toUint(val, 32)
		if err != nil {
			return nil, err
		}
		return moveup.TransactionArgumentU32{Value: uint32(n.Uint64())}, nil
	case moveup.TypeTagU64:
		n, err := toUint(val, 64)
		if err != nil {
			return nil, err
		}
		return moveup.TransactionArgumentU64{Value: n.Uint64()}, nil
	case moveup.TypeTagU128:
		n, err := toUint(val, 128)
		if err != nil {
			return nil, err
		}
		return moveup.TransactionArgumentU128{Value: *n}, nil
	case moveup.TypeTagU256:
		n, err := toUint(val, 256)
		if err != nil {
			return nil, err
		}
		return moveup.TransactionArgumentU256{Value: *n}, nil
	case moveup.TypeTagAddress:
		addr, err := toAddress(val)
		if err != nil {
			return nil, err
		}
		return moveup.TransactionArgumentAddress{Value: addr}, nil
	case moveup.TypeTagVector:
		if _, ok := t.Elem.(moveup.TypeTagU8); ok {
			switch v := val.(type) {
			case []byte:
				return moveup.TransactionArgumentU8Vector{Value: v}, nil
			case string:
				return moveup.TransactionArgumentU8Vector{Value: []byte(v)}, nil
			}
			return nil, moveup.NewValidationErr(moveup.InvalidArgument, "vector<u8> expects bytes, got %T", val)
		}
	}
	return nil, moveup.NewValidationErr(moveup.InvalidArgument, "%s is not a valid script argument type", tag)
}

func toBool(val interface{}) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		switch v {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, moveup.NewValidationErr(moveup.InvalidArgument, "invalid boolean %v", val)
}

func toAddress(val interface{}) (moveup.AccountAddress, error) {
	switch v := val.(type) {
	case moveup.AccountAddress:
		return v, nil
	case *moveup.AccountAddress:
		if v != nil {
			return *v, nil
		}
	case common.Address:
		return moveup.AccountAddress(v), nil
	case string:
		return moveup.HexToAddress(v)
	}
	return moveup.AccountAddress{}, moveup.NewValidationErr(moveup.InvalidAddress, "cannot use %T as an address", val)
}

// toUint converts val into an unsigned integer that fits in the given number of bits.
func toUint(val interface{}, bits int) (*uint256.Int, error) {
	n, err := parseUint(val)
	if err != nil {
		return nil, err
	}
	if n.BitLen() > bits {
		return nil, moveup.NewValidationErr(moveup.InvalidArgument, "%s does not fit in u%d", n.Dec(), bits)
	}
	return n, nil
}

func parseUint(val interface{}) (*uint256.Int, error) {
	switch v := val.(type) {
	case uint8:
		return uint256.NewInt(uint64(v)), nil
	case uint16:
		return uint256.NewInt(uint64(v)), nil
	case uint32:
		return uint256.NewInt(uint64(v)), nil
	case uint64:
		return uint256.NewInt(v), nil
	case uint:
		return uint256.NewInt(uint64(v)), nil
	case int8:
		return fromInt64(int64(v))
	case int16:
		return fromInt64(int64(v))
	case int32:
		return fromInt64(int64(v))
	case int64:
		return fromInt64(v)
	case int:
		return fromInt64(int64(v))
	case float64:
		// encoding/json decodes every number into a float64
		if v < 0 || v != math.Trunc(v) || v > 1<<53 {
			return nil, moveup.NewValidationErr(moveup.InvalidArgument, "%v is not an unsigned integer", v)
		}
		return uint256.NewInt(uint64(v)), nil
	case json.Number:
		return parseUintString(v.String())
	case *big.Int:
		if v == nil {
			break
		}
		return fromBig(v)
	case big.Int:
		return fromBig(&v)
	case *uint256.Int:
		if v == nil {
			break
		}
		return new(uint256.Int).Set(v), nil
	case uint256.Int:
		return &v, nil
	case string:
		return parseUintString(v)
	}
	return nil, moveup.NewValidationErr(moveup.InvalidArgument, "cannot use %T as a number", val)
}

func fromInt64(v int64) (*uint256.Int, error) {
	if v < 0 {
		return nil, moveup.NewValidationErr(moveup.InvalidArgument, "negative value %d", v)
	}
	return uint256.NewInt(uint64(v)), nil
}

func fromBig(v *big.Int) (*uint256.Int, error) {
	if v.Sign() < 0 {
		return nil, moveup.NewValidationErr(moveup.InvalidArgument, "negative value %s", v)
	}
	n, overflow := uint256.FromBig(v)
	if overflow {
		return nil, moveup.NewValidationErr(moveup.InvalidArgument, "%s does not fit in u256", v)
	}
	return n, nil
}

// parseUintString accepts decimal and 0x-prefixed hex strings.
func parseUintString(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, ok := new(big.Int).SetString(s[2:], 16)
		if !ok {
			return nil, moveup.NewValidationErr(moveup.InvalidArgument, "invalid hex number %q", s)
		}
		return fromBig(b)
	}
	n, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, moveup.NewValidationErr(moveup.InvalidArgument, "invalid number %q: %v", s, err)
	}
	return n, nil
}
