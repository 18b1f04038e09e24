package moveup

import (
	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
)

// ScriptABI describes the callable interface of a script or an entry function.
type ScriptABI interface {
	bcs.Serializable
	// Name is the script or function name.
	Name() string
	// Arguments lists the parameters the caller supplies.
	Arguments() []ArgumentABI
	TypeArguments() []TypeArgumentABI
	isScriptABI()
}

const (
	scriptABITransactionScript uint32 = 0
	scriptABIEntryFunction     uint32 = 1
)

type TypeArgumentABI struct {
	Name string
}

type ArgumentABI struct {
	Name    string
	TypeTag TypeTag
}

// TransactionScriptABI describes a script shipped together with its bytecode.
type TransactionScriptABI struct {
	ScriptName string
	Doc        string
	Code       []byte
	TypeArgs   []TypeArgumentABI
	Args       []ArgumentABI
}

// EntryFunctionABI describes an entry function of a published module.
type EntryFunctionABI struct {
	FunctionName string
	Module       ModuleId
	Doc          string
	TypeArgs     []TypeArgumentABI
	Args         []ArgumentABI
}

func (TransactionScriptABI) isScriptABI() {}
func (EntryFunctionABI) isScriptABI()     {}

func (a TransactionScriptABI) Name() string                     { return a.ScriptName }
func (a TransactionScriptABI) Arguments() []ArgumentABI         { return a.Args }
func (a TransactionScriptABI) TypeArguments() []TypeArgumentABI { return a.TypeArgs }
func (a EntryFunctionABI) Name() string                         { return a.FunctionName }
func (a EntryFunctionABI) Arguments() []ArgumentABI             { return a.Args }
func (a EntryFunctionABI) TypeArguments() []TypeArgumentABI     { return a.TypeArgs }

func (a TypeArgumentABI) Serialize(s *bcs.Serializer) {
	s.Str(a.Name)
}

func (a ArgumentABI) Serialize(s *bcs.Serializer) {
	s.Str(a.Name)
	a.TypeTag.Serialize(s)
}

func (a TransactionScriptABI) Serialize(s *bcs.Serializer) {
	s.Uleb128(scriptABITransactionScript)
	s.Str(a.ScriptName)
	s.Str(a.Doc)
	s.Bytes(a.Code)
	serializeABIParams(s, a.TypeArgs, a.Args)
}

func (a EntryFunctionABI) Serialize(s *bcs.Serializer) {
	s.Uleb128(scriptABIEntryFunction)
	s.Str(a.FunctionName)
	a.Module.Serialize(s)
	s.Str(a.Doc)
	serializeABIParams(s, a.TypeArgs, a.Args)
}

func serializeABIParams(s *bcs.Serializer, typeArgs []TypeArgumentABI, args []ArgumentABI) {
	bcs.SerializeSeq(s, typeArgs, func(s *bcs.Serializer, a TypeArgumentABI) { a.Serialize(s) })
	bcs.SerializeSeq(s, args, func(s *bcs.Serializer, a ArgumentABI) { a.Serialize(s) })
}

func DeserializeScriptABI(d *bcs.Deserializer) (ScriptABI, error) {
	tag, err := d.Uleb128()
	if err != nil {
		return nil, err
	}
	switch tag {
	case scriptABITransactionScript:
		var a TransactionScriptABI
		if a.ScriptName, err = d.Str(); err != nil {
			return nil, err
		}
		if a.Doc, err = d.Str(); err != nil {
			return nil, err
		}
		if a.Code, err = d.Bytes(); err != nil {
			return nil, err
		}
		if a.TypeArgs, a.Args, err = deserializeABIParams(d); err != nil {
			return nil, err
		}
		return a, nil
	case scriptABIEntryFunction:
		var a EntryFunctionABI
		if a.FunctionName, err = d.Str(); err != nil {
			return nil, err
		}
		if a.Module, err = DeserializeModuleId(d); err != nil {
			return nil, err
		}
		if a.Doc, err = d.Str(); err != nil {
			return nil, err
		}
		if a.TypeArgs, a.Args, err = deserializeABIParams(d); err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, NewUnknownVariantErr("ScriptABI", tag)
	}
}

func deserializeABIParams(d *bcs.Deserializer) ([]TypeArgumentABI, []ArgumentABI, error) {
	typeArgs, err := bcs.DeserializeSeq(d, func(d *bcs.Deserializer) (TypeArgumentABI, error) {
		name, err := d.Str()
		return TypeArgumentABI{Name: name}, err
	})
	if err != nil {
		return nil, nil, err
	}
	args, err := bcs.DeserializeSeq(d, func(d *bcs.Deserializer) (ArgumentABI, error) {
		name, err := d.Str()
		if err != nil {
			return ArgumentABI{}, err
		}
		tag, err := DeserializeTypeTag(d)
		if err != nil {
			return ArgumentABI{}, err
		}
		return ArgumentABI{Name: name, TypeTag: tag}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return typeArgs, args, nil
}
