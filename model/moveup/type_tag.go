package moveup

import (
	"fmt"
	"strings"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
)

// TypeTag describes the type of an on-chain Move value. It is a closed set:
// every variant is declared in this file.
type TypeTag interface {
	bcs.Serializable
	fmt.Stringer
	isTypeTag()
}

// wire discriminants of TypeTag
const (
	typeTagBool    uint32 = 0
	typeTagU8      uint32 = 1
	typeTagU64     uint32 = 2
	typeTagU128    uint32 = 3
	typeTagAddress uint32 = 4
	typeTagSigner  uint32 = 5
	typeTagVector  uint32 = 6
	typeTagStruct  uint32 = 7
	typeTagU16     uint32 = 8
	typeTagU32     uint32 = 9
	typeTagU256    uint32 = 10
)

type (
	TypeTagBool    struct{}
	TypeTagU8      struct{}
	TypeTagU16     struct{}
	TypeTagU32     struct{}
	TypeTagU64     struct{}
	TypeTagU128    struct{}
	TypeTagU256    struct{}
	TypeTagAddress struct{}
	TypeTagSigner  struct{}

	TypeTagVector struct {
		Elem TypeTag
	}

	TypeTagStruct struct {
		Value StructTag
	}
)

func (TypeTagBool) isTypeTag()    {}
func (TypeTagU8) isTypeTag()      {}
func (TypeTagU16) isTypeTag()     {}
func (TypeTagU32) isTypeTag()     {}
func (TypeTagU64) isTypeTag()     {}
func (TypeTagU128) isTypeTag()    {}
func (TypeTagU256) isTypeTag()    {}
func (TypeTagAddress) isTypeTag() {}
func (TypeTagSigner) isTypeTag()  {}
func (TypeTagVector) isTypeTag()  {}
func (TypeTagStruct) isTypeTag()  {}

func (TypeTagBool) Serialize(s *bcs.Serializer)    { s.Uleb128(typeTagBool) }
func (TypeTagU8) Serialize(s *bcs.Serializer)      { s.Uleb128(typeTagU8) }
func (TypeTagU16) Serialize(s *bcs.Serializer)     { s.Uleb128(typeTagU16) }
func (TypeTagU32) Serialize(s *bcs.Serializer)     { s.Uleb128(typeTagU32) }
func (TypeTagU64) Serialize(s *bcs.Serializer)     { s.Uleb128(typeTagU64) }
func (TypeTagU128) Serialize(s *bcs.Serializer)    { s.Uleb128(typeTagU128) }
func (TypeTagU256) Serialize(s *bcs.Serializer)    { s.Uleb128(typeTagU256) }
func (TypeTagAddress) Serialize(s *bcs.Serializer) { s.Uleb128(typeTagAddress) }
func (TypeTagSigner) Serialize(s *bcs.Serializer)  { s.Uleb128(typeTagSigner) }

func (t TypeTagVector) Serialize(s *bcs.Serializer) {
	s.Uleb128(typeTagVector)
	t.Elem.Serialize(s)
}

func (t TypeTagStruct) Serialize(s *bcs.Serializer) {
	s.Uleb128(typeTagStruct)
	t.Value.Serialize(s)
}

func (TypeTagBool) String() string    { return "bool" }
func (TypeTagU8) String() string      { return "u8" }
func (TypeTagU16) String() string     { return "u16" }
func (TypeTagU32) String() string     { return "u32" }
func (TypeTagU64) String() string     { return "u64" }
func (TypeTagU128) String() string    { return "u128" }
func (TypeTagU256) String() string    { return "u256" }
func (TypeTagAddress) String() string { return "address" }
func (TypeTagSigner) String() string  { return "signer" }

func (t TypeTagVector) String() string {
	return "vector<" + t.Elem.String() + ">"
}

func (t TypeTagStruct) String() string {
	return t.Value.String()
}

// DeserializeTypeTag reads a TypeTag, recursing into vector elements and struct type arguments.
func DeserializeTypeTag(d *bcs.Deserializer) (TypeTag, error) {
	tag, err := d.Uleb128()
	if err != nil {
		return nil, err
	}
	switch tag {
	case typeTagBool:
		return TypeTagBool{}, nil
	case typeTagU8:
		return TypeTagU8{}, nil
	case typeTagU16:
		return TypeTagU16{}, nil
	case typeTagU32:
		return TypeTagU32{}, nil
	case typeTagU64:
		return TypeTagU64{}, nil
	case typeTagU128:
		return TypeTagU128{}, nil
	case typeTagU256:
		return TypeTagU256{}, nil
	case typeTagAddress:
		return TypeTagAddress{}, nil
	case typeTagSigner:
		return TypeTagSigner{}, nil
	case typeTagVector:
		elem, err := DeserializeTypeTag(d)
		if err != nil {
			return nil, fmt.Errorf("vector element: %w", err)
		}
		return TypeTagVector{Elem: elem}, nil
	case typeTagStruct:
		st, err := DeserializeStructTag(d)
		if err != nil {
			return nil, err
		}
		return TypeTagStruct{Value: st}, nil
	default:
		return nil, NewUnknownVariantErr("TypeTag", tag)
	}
}

// StructTag names a struct type: address::module::name<type_args>.
type StructTag struct {
	Address  AccountAddress
	Module   Identifier
	Name     Identifier
	TypeArgs []TypeTag
}

// NewStructTag builds a tag for a struct declared at addr::module::name.
func NewStructTag(addr AccountAddress, module string, name string, typeArgs ...TypeTag) (StructTag, error) {
	m, err := NewIdentifier(module)
	if err != nil {
		return StructTag{}, err
	}
	n, err := NewIdentifier(name)
	if err != nil {
		return StructTag{}, err
	}
	if typeArgs == nil {
		typeArgs = []TypeTag{}
	}
	return StructTag{Address: addr, Module: m, Name: n, TypeArgs: typeArgs}, nil
}

// StructTagFromString parses "addr::module::name<type_args>". Generic placeholders are not allowed.
func StructTagFromString(s string) (StructTag, error) {
	tag, err := ParseTypeTag(s)
	if err != nil {
		return StructTag{}, err
	}
	st, ok := tag.(TypeTagStruct)
	if !ok {
		return StructTag{}, NewValidationErr(InvalidTypeTag, "%q is not a struct type", s)
	}
	return st.Value, nil
}

func (t StructTag) Serialize(s *bcs.Serializer) {
	t.Address.Serialize(s)
	t.Module.Serialize(s)
	t.Name.Serialize(s)
	bcs.SerializeSeq(s, t.TypeArgs, func(s *bcs.Serializer, tag TypeTag) { tag.Serialize(s) })
}

func DeserializeStructTag(d *bcs.Deserializer) (StructTag, error) {
	addr, err := DeserializeAccountAddress(d)
	if err != nil {
		return StructTag{}, err
	}
	module, err := DeserializeIdentifier(d)
	if err != nil {
		return StructTag{}, err
	}
	name, err := DeserializeIdentifier(d)
	if err != nil {
		return StructTag{}, err
	}
	typeArgs, err := bcs.DeserializeSeq(d, DeserializeTypeTag)
	if err != nil {
		return StructTag{}, fmt.Errorf("struct %s::%s type arguments: %w", module, name, err)
	}
	return StructTag{Address: addr, Module: module, Name: name, TypeArgs: typeArgs}, nil
}

// String renders the tag with the short address form, e.g. 0x1::coin::Coin<0x1::eth::ETH>.
func (t StructTag) String() string {
	var b strings.Builder
	b.WriteString(t.Address.ShortHex())
	b.WriteString("::")
	b.WriteString(string(t.Module))
	b.WriteString("::")
	b.WriteString(string(t.Name))
	if len(t.TypeArgs) > 0 {
		b.WriteString("<")
		for i, arg := range t.TypeArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.String())
		}
		b.WriteString(">")
	}
	return b.String()
}

// Is reports whether the tag names addr::module::name, ignoring type arguments.
func (t StructTag) Is(addr AccountAddress, module, name string) bool {
	return t.Address == addr && string(t.Module) == module && string(t.Name) == name
}

// IsString reports whether the tag is 0x1::string::String.
func (t StructTag) IsString() bool {
	return t.Is(CoreAddress, "string", "String")
}

// IsOption reports whether the tag is 0x1::option::Option.
func (t StructTag) IsOption() bool {
	return t.Is(CoreAddress, "option", "Option")
}

// IsObject reports whether the tag is 0x1::object::Object.
func (t StructTag) IsObject() bool {
	return t.Is(CoreAddress, "object", "Object")
}

func (t StructTag) IsFixedPoint32() bool {
	return t.Is(CoreAddress, "fixed_point32", "FixedPoint32")
}

func (t StructTag) IsFixedPoint64() bool {
	return t.Is(CoreAddress, "fixed_point64", "FixedPoint64")
}
