package moveup

import (
	"strings"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
)

// ModuleId is the fully qualified name of a module: the account it is published under and its name.
type ModuleId struct {
	Address AccountAddress
	Name    Identifier
}

func NewModuleId(addr AccountAddress, name string) (ModuleId, error) {
	id, err := NewIdentifier(name)
	if err != nil {
		return ModuleId{}, err
	}
	return ModuleId{Address: addr, Name: id}, nil
}

// ParseModuleId parses a module id of the form "0x1::coin".
func ParseModuleId(s string) (ModuleId, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 2 {
		return ModuleId{}, NewValidationErr(InvalidModuleIdString, "%q", s)
	}
	addr, err := HexToAddress(parts[0])
	if err != nil {
		return ModuleId{}, NewValidationErr(InvalidModuleIdString, "%q: %v", s, err)
	}
	return NewModuleId(addr, parts[1])
}

// String returns the module id with the short address form, e.g. 0x1::coin.
func (m ModuleId) String() string {
	return m.Address.ShortHex() + "::" + string(m.Name)
}

func (m ModuleId) Serialize(s *bcs.Serializer) {
	m.Address.Serialize(s)
	m.Name.Serialize(s)
}

func DeserializeModuleId(d *bcs.Deserializer) (ModuleId, error) {
	addr, err := DeserializeAccountAddress(d)
	if err != nil {
		return ModuleId{}, err
	}
	name, err := DeserializeIdentifier(d)
	if err != nil {
		return ModuleId{}, err
	}
	return ModuleId{Address: addr, Name: name}, nil
}

// Module is the bytecode of a Move module to be published.
type Module struct {
	Code []byte
}

func (m Module) Serialize(s *bcs.Serializer) {
	s.Bytes(m.Code)
}

func DeserializeModule(d *bcs.Deserializer) (Module, error) {
	code, err := d.Bytes()
	if err != nil {
		return Module{}, err
	}
	return Module{Code: code}, nil
}
