package moveup

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
)

// EntryFunctionArgument is a self-describing argument of an entry function call.
// Composite variants nest arbitrarily.
type EntryFunctionArgument interface {
	bcs.Serializable
	isEntryFunctionArgument()
}

const (
	entryArgU8           uint32 = 0
	entryArgU16          uint32 = 1
	entryArgU32          uint32 = 2
	entryArgU64          uint32 = 3
	entryArgU128         uint32 = 4
	entryArgU256         uint32 = 5
	entryArgBool         uint32 = 6
	entryArgAddress      uint32 = 7
	entryArgString       uint32 = 8
	entryArgVector       uint32 = 9
	entryArgStruct       uint32 = 10
	entryArgBcsBytes     uint32 = 11
	entryArgOption       uint32 = 12
	entryArgFixedPoint32 uint32 = 13
	entryArgFixedPoint64 uint32 = 14
	entryArgObject       uint32 = 15
)

type (
	EntryFunctionArgumentU8 struct {
		Value uint8
	}
	EntryFunctionArgumentU16 struct {
		Value uint16
	}
	EntryFunctionArgumentU32 struct {
		Value uint32
	}
	EntryFunctionArgumentU64 struct {
		Value uint64
	}
	EntryFunctionArgumentU128 struct {
		Value uint256.Int
	}
	EntryFunctionArgumentU256 struct {
		Value uint256.Int
	}
	EntryFunctionArgumentBool struct {
		Value bool
	}
	EntryFunctionArgumentAddress struct {
		Value AccountAddress
	}
	EntryFunctionArgumentString struct {
		Value string
	}
	EntryFunctionArgumentVector struct {
		Elements []EntryFunctionArgument
	}
	// EntryFunctionArgumentStruct carries a struct value as its tag and an ordered list of fields.
	EntryFunctionArgumentStruct struct {
		Tag    StructTag
		Fields []StructField
	}
	// EntryFunctionArgumentBcsBytes passes an already encoded value through untouched.
	EntryFunctionArgumentBcsBytes struct {
		Value []byte
	}
	// EntryFunctionArgumentOption holds an optional value. A nil Value is none.
	EntryFunctionArgumentOption struct {
		Value EntryFunctionArgument
	}
	// EntryFunctionArgumentFixedPoint32 holds the raw 32.32 fixed point bits.
	EntryFunctionArgumentFixedPoint32 struct {
		Value uint64
	}
	// EntryFunctionArgumentFixedPoint64 holds the raw 64.64 fixed point bits.
	EntryFunctionArgumentFixedPoint64 struct {
		Value uint256.Int
	}
	EntryFunctionArgumentObject struct {
		Value AccountAddress
	}
)

// StructField is a named field of a struct argument.
type StructField struct {
	Name  Identifier
	Value EntryFunctionArgument
}

func (EntryFunctionArgumentU8) isEntryFunctionArgument()           {}
func (EntryFunctionArgumentU16) isEntryFunctionArgument()          {}
func (EntryFunctionArgumentU32) isEntryFunctionArgument()          {}
func (EntryFunctionArgumentU64) isEntryFunctionArgument()          {}
func (EntryFunctionArgumentU128) isEntryFunctionArgument()         {}
func (EntryFunctionArgumentU256) isEntryFunctionArgument()         {}
func (EntryFunctionArgumentBool) isEntryFunctionArgument()         {}
func (EntryFunctionArgumentAddress) isEntryFunctionArgument()      {}
func (EntryFunctionArgumentString) isEntryFunctionArgument()       {}
func (EntryFunctionArgumentVector) isEntryFunctionArgument()       {}
func (EntryFunctionArgumentStruct) isEntryFunctionArgument()       {}
func (EntryFunctionArgumentBcsBytes) isEntryFunctionArgument()     {}
func (EntryFunctionArgumentOption) isEntryFunctionArgument()       {}
func (EntryFunctionArgumentFixedPoint32) isEntryFunctionArgument() {}
func (EntryFunctionArgumentFixedPoint64) isEntryFunctionArgument() {}
func (EntryFunctionArgumentObject) isEntryFunctionArgument()       {}

func (a EntryFunctionArgumentU8) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgU8)
	s.U8(a.Value)
}

func (a EntryFunctionArgumentU16) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgU16)
	s.U16(a.Value)
}

func (a EntryFunctionArgumentU32) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgU32)
	s.U32(a.Value)
}

func (a EntryFunctionArgumentU64) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgU64)
	s.U64(a.Value)
}

func (a EntryFunctionArgumentU128) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgU128)
	s.U128(a.Value)
}

func (a EntryFunctionArgumentU256) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgU256)
	s.U256(a.Value)
}

func (a EntryFunctionArgumentBool) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgBool)
	s.Bool(a.Value)
}

func (a EntryFunctionArgumentAddress) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgAddress)
	a.Value.Serialize(s)
}

func (a EntryFunctionArgumentString) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgString)
	s.Str(a.Value)
}

func (a EntryFunctionArgumentVector) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgVector)
	bcs.SerializeSeq(s, a.Elements, serializeEntryFunctionArgument)
}

func (a EntryFunctionArgumentStruct) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgStruct)
	a.Tag.Serialize(s)
	bcs.SerializeSeq(s, a.Fields, func(s *bcs.Serializer, f StructField) {
		f.Name.Serialize(s)
		f.Value.Serialize(s)
	})
}

func (a EntryFunctionArgumentBcsBytes) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgBcsBytes)
	s.Bytes(a.Value)
}

func (a EntryFunctionArgumentOption) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgOption)
	if a.Value == nil {
		s.Bool(false)
		return
	}
	s.Bool(true)
	a.Value.Serialize(s)
}

func (a EntryFunctionArgumentFixedPoint32) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgFixedPoint32)
	s.U64(a.Value)
}

func (a EntryFunctionArgumentFixedPoint64) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgFixedPoint64)
	s.U128(a.Value)
}

func (a EntryFunctionArgumentObject) Serialize(s *bcs.Serializer) {
	s.Uleb128(entryArgObject)
	a.Value.Serialize(s)
}

func serializeEntryFunctionArgument(s *bcs.Serializer, arg EntryFunctionArgument) {
	arg.Serialize(s)
}

// DeserializeEntryFunctionArgument reads one argument, recursing into composite variants.
func DeserializeEntryFunctionArgument(d *bcs.Deserializer) (EntryFunctionArgument, error) {
	tag, err := d.Uleb128()
	if err != nil {
		return nil, err
	}

	var arg EntryFunctionArgument
	switch tag {
	case entryArgU8:
		var v uint8
		v, err = d.U8()
		arg = EntryFunctionArgumentU8{Value: v}
	case entryArgU16:
		var v uint16
		v, err = d.U16()
		arg = EntryFunctionArgumentU16{Value: v}
	case entryArgU32:
		var v uint32
		v, err = d.U32()
		arg = EntryFunctionArgumentU32{Value: v}
	case entryArgU64:
		var v uint64
		v, err = d.U64()
		arg = EntryFunctionArgumentU64{Value: v}
	case entryArgU128:
		var v uint256.Int
		v, err = d.U128()
		arg = EntryFunctionArgumentU128{Value: v}
	case entryArgU256:
		var v uint256.Int
		v, err = d.U256()
		arg = EntryFunctionArgumentU256{Value: v}
	case entryArgBool:
		var v bool
		v, err = d.Bool()
		arg = EntryFunctionArgumentBool{Value: v}
	case entryArgAddress:
		var v AccountAddress
		v, err = DeserializeAccountAddress(d)
		arg = EntryFunctionArgumentAddress{Value: v}
	case entryArgString:
		var v string
		v, err = d.Str()
		arg = EntryFunctionArgumentString{Value: v}
	case entryArgVector:
		var elems []EntryFunctionArgument
		elems, err = bcs.DeserializeSeq(d, DeserializeEntryFunctionArgument)
		arg = EntryFunctionArgumentVector{Elements: elems}
	case entryArgStruct:
		arg, err = deserializeStructArgument(d)
	case entryArgBcsBytes:
		var v []byte
		v, err = d.Bytes()
		arg = EntryFunctionArgumentBcsBytes{Value: v}
	case entryArgOption:
		var present bool
		present, err = d.Bool()
		if err == nil && present {
			var inner EntryFunctionArgument
			inner, err = DeserializeEntryFunctionArgument(d)
			arg = EntryFunctionArgumentOption{Value: inner}
		} else {
			arg = EntryFunctionArgumentOption{}
		}
	case entryArgFixedPoint32:
		var v uint64
		v, err = d.U64()
		arg = EntryFunctionArgumentFixedPoint32{Value: v}
	case entryArgFixedPoint64:
		var v uint256.Int
		v, err = d.U128()
		arg = EntryFunctionArgumentFixedPoint64{Value: v}
	case entryArgObject:
		var v AccountAddress
		v, err = DeserializeAccountAddress(d)
		arg = EntryFunctionArgumentObject{Value: v}
	default:
		return nil, NewUnknownVariantErr("EntryFunctionArgument", tag)
	}
	if err != nil {
		return nil, err
	}
	return arg, nil
}

func deserializeStructArgument(d *bcs.Deserializer) (EntryFunctionArgument, error) {
	tag, err := DeserializeStructTag(d)
	if err != nil {
		return nil, err
	}
	fields, err := bcs.DeserializeSeq(d, func(d *bcs.Deserializer) (StructField, error) {
		name, err := DeserializeIdentifier(d)
		if err != nil {
			return StructField{}, err
		}
		value, err := DeserializeEntryFunctionArgument(d)
		if err != nil {
			return StructField{}, fmt.Errorf("field %s: %w", name, err)
		}
		return StructField{Name: name, Value: value}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("struct %s: %w", tag, err)
	}
	return EntryFunctionArgumentStruct{Tag: tag, Fields: fields}, nil
}

// EntryFunctionArgumentValue projects an argument into a JSON friendly value.
// Integers wider than 32 bits become decimal strings, addresses full hex.
// Struct and raw arguments keep their encoded bytes as hex.
func EntryFunctionArgumentValue(arg EntryFunctionArgument) interface{} {
	switch a := arg.(type) {
	case EntryFunctionArgumentU8:
		return a.Value
	case EntryFunctionArgumentU16:
		return a.Value
	case EntryFunctionArgumentU32:
		return a.Value
	case EntryFunctionArgumentU64:
		return strconv.FormatUint(a.Value, 10)
	case EntryFunctionArgumentU128:
		return a.Value.Dec()
	case EntryFunctionArgumentU256:
		return a.Value.Dec()
	case EntryFunctionArgumentBool:
		return a.Value
	case EntryFunctionArgumentAddress:
		return a.Value.Hex()
	case EntryFunctionArgumentString:
		return a.Value
	case EntryFunctionArgumentVector:
		out := make([]interface{}, len(a.Elements))
		for i, e := range a.Elements {
			out[i] = EntryFunctionArgumentValue(e)
		}
		return out
	case EntryFunctionArgumentStruct:
		s := bcs.NewSerializer()
		for _, f := range a.Fields {
			f.Name.Serialize(s)
			f.Value.Serialize(s)
		}
		return "struct " + a.Tag.String() + ": 0x" + hex.EncodeToString(s.Output())
	case EntryFunctionArgumentBcsBytes:
		return "raw 0x" + hex.EncodeToString(a.Value)
	case EntryFunctionArgumentOption:
		if a.Value == nil {
			return nil
		}
		return EntryFunctionArgumentValue(a.Value)
	case EntryFunctionArgumentFixedPoint32:
		return strconv.FormatUint(a.Value, 10)
	case EntryFunctionArgumentFixedPoint64:
		return a.Value.Dec()
	case EntryFunctionArgumentObject:
		return a.Value.Hex()
	default:
		return nil
	}
}

// EntryFunctionArgumentValues projects args into an object keyed by position.
func EntryFunctionArgumentValues(args []EntryFunctionArgument) map[string]interface{} {
	out := make(map[string]interface{}, len(args))
	for i, arg := range args {
		out[strconv.Itoa(i)] = EntryFunctionArgumentValue(arg)
	}
	return out
}
