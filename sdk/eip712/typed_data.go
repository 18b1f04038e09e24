// Package eip712 derives the EIP-712 typed-data document and digest of a
// transaction, so browser and hardware wallets can show what they approve.
package eip712

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
)

const (
	DomainName    = "Moveup"
	DomainVersion = "1"

	domainType         = "EIP712Domain"
	rawTransactionType = "RawTransaction"
	multiAgentType     = "MultiAgentRawTransaction"
	entryFunctionType  = "EntryFunctionPayload"
	scriptType         = "ScriptPayload"
	multisigType       = "MultisigPayload"
	argumentsType      = "Arguments"
)

// RawTransaction returns the typed-data document of a single signer transaction.
func RawTransaction(tx moveup.RawTransaction) (apitypes.TypedData, error) {
	types := baseTypes()
	message, err := rawTransactionMessage(types, tx)
	if err != nil {
		return apitypes.TypedData{}, err
	}
	return apitypes.TypedData{
		Types:       types,
		PrimaryType: rawTransactionType,
		Domain:      domain(tx.ChainID),
		Message:     message,
	}, nil
}

// MultiAgentRawTransaction returns the typed-data document of a transaction that
// needs secondary signers. The raw transaction is nested under raw_txn.
func MultiAgentRawTransaction(tx moveup.MultiAgentRawTransaction) (apitypes.TypedData, error) {
	types := baseTypes()
	raw, err := rawTransactionMessage(types, tx.RawTxn)
	if err != nil {
		return apitypes.TypedData{}, err
	}
	types[multiAgentType] = []apitypes.Type{
		{Name: "raw_txn", Type: rawTransactionType},
		{Name: "secondary_signer_addresses", Type: "address[]"},
	}

	secondary := make([]interface{}, len(tx.SecondarySignerAddresses))
	for i, addr := range tx.SecondarySignerAddresses {
		secondary[i] = addr.ChecksumHex()
	}
	return apitypes.TypedData{
		Types:       types,
		PrimaryType: multiAgentType,
		Domain:      domain(tx.RawTxn.ChainID),
		Message: apitypes.TypedDataMessage{
			"raw_txn":                    map[string]interface{}(raw),
			"secondary_signer_addresses": secondary,
		},
	}, nil
}

// Hash returns keccak256(0x19 || 0x01 || domainSeparator || hashStruct(message)).
func Hash(td apitypes.TypedData) ([]byte, error) {
	digest, _, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return nil, fmt.Errorf("could not hash typed data: %w", err)
	}
	return digest, nil
}

// RawTransactionDigest is RawTransaction followed by Hash.
func RawTransactionDigest(tx moveup.RawTransaction) ([]byte, error) {
	td, err := RawTransaction(tx)
	if err != nil {
		return nil, err
	}
	return Hash(td)
}

// MultiAgentRawTransactionDigest is MultiAgentRawTransaction followed by Hash.
func MultiAgentRawTransactionDigest(tx moveup.MultiAgentRawTransaction) ([]byte, error) {
	td, err := MultiAgentRawTransaction(tx)
	if err != nil {
		return nil, err
	}
	return Hash(td)
}

func domain(chainID moveup.ChainID) apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:    DomainName,
		Version: DomainVersion,
		ChainId: math.NewHexOrDecimal256(int64(chainID)),
	}
}

func baseTypes() apitypes.Types {
	return apitypes.Types{
		domainType: {
			{Name: "name", Type: "string"},
			{Name: "version", Type: "string"},
			{Name: "chainId", Type: "uint256"},
		},
	}
}

func rawTransactionMessage(types apitypes.Types, tx moveup.RawTransaction) (apitypes.TypedDataMessage, error) {
	payloadType, payload, err := payloadMessage(types, tx.Payload)
	if err != nil {
		return nil, err
	}
	types[rawTransactionType] = []apitypes.Type{
		{Name: "sender", Type: "address"},
		{Name: "sequence_number", Type: "uint64"},
		{Name: "payload", Type: payloadType},
		{Name: "max_gas_amount", Type: "uint64"},
		{Name: "gas_unit_price", Type: "uint64"},
		{Name: "expiration_timestamp_secs", Type: "uint64"},
		{Name: "chain_id", Type: "uint8"},
	}
	return apitypes.TypedDataMessage{
		"sender":                    tx.Sender.ChecksumHex(),
		"sequence_number":           strconv.FormatUint(tx.SequenceNumber, 10),
		"payload":                   payload,
		"max_gas_amount":            strconv.FormatUint(tx.MaxGasAmount, 10),
		"gas_unit_price":            strconv.FormatUint(tx.GasUnitPrice, 10),
		"expiration_timestamp_secs": strconv.FormatUint(tx.ExpirationTimestampSecs, 10),
		"chain_id":                  strconv.FormatUint(uint64(tx.ChainID), 10),
	}, nil
}

func payloadMessage(types apitypes.Types, payload moveup.TransactionPayload) (string, map[string]interface{}, error) {
	switch p := payload.(type) {
	case moveup.TransactionPayloadEntryFunction:
		msg, err := entryFunctionMessage(types, argumentsType, p.EntryFunction)
		if err != nil {
			return "", nil, err
		}
		types[entryFunctionType] = entryFunctionFields(argumentsType)
		return entryFunctionType, msg, nil

	case moveup.TransactionPayloadScript:
		types[scriptType] = []apitypes.Type{
			{Name: "code", Type: "bytes"},
			{Name: "type_arguments", Type: "string[]"},
			{Name: "arguments", Type: "string[]"},
		}
		args := make([]interface{}, len(p.Script.Args))
		for i, arg := range p.Script.Args {
			args[i] = arg.String()
		}
		return scriptType, map[string]interface{}{
			"code":           hexBytes(p.Script.Code),
			"type_arguments": typeArgStrings(p.Script.TypeArgs),
			"arguments":      args,
		}, nil

	case moveup.TransactionPayloadMultisig:
		fields := []apitypes.Type{{Name: "multisig_address", Type: "address"}}
		msg := map[string]interface{}{"multisig_address": p.MultiSig.MultisigAddress.ChecksumHex()}
		if p.MultiSig.Payload != nil {
			inner, err := entryFunctionMessage(types, argumentsType, p.MultiSig.Payload.EntryFunction)
			if err != nil {
				return "", nil, err
			}
			types[entryFunctionType] = entryFunctionFields(argumentsType)
			fields = append(fields, apitypes.Type{Name: "entry_function", Type: entryFunctionType})
			msg["entry_function"] = inner
		}
		types[multisigType] = fields
		return multisigType, msg, nil

	default:
		return "", nil, fmt.Errorf("unsupported payload %T", payload)
	}
}

func entryFunctionFields(argsType string) []apitypes.Type {
	return []apitypes.Type{
		{Name: "module_address", Type: "address"},
		{Name: "module_name", Type: "string"},
		{Name: "function_name", Type: "string"},
		{Name: "type_arguments", Type: "string[]"},
		{Name: "arguments", Type: argsType},
	}
}

func entryFunctionMessage(types apitypes.Types, argsType string, ef moveup.EntryFunction) (map[string]interface{}, error) {
	p := projector{types: types}
	fields := make([]apitypes.Type, len(ef.Args))
	values := make(map[string]interface{}, len(ef.Args))
	for i, arg := range ef.Args {
		typ, value, err := p.argument(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		name := "arg" + strconv.Itoa(i)
		fields[i] = apitypes.Type{Name: name, Type: typ}
		values[name] = value
	}
	types[argsType] = fields

	return map[string]interface{}{
		"module_address": ef.Module.Address.ChecksumHex(),
		"module_name":    string(ef.Module.Name),
		"function_name":  string(ef.Function),
		"type_arguments": typeArgStrings(ef.TypeArgs),
		"arguments":      values,
	}, nil
}

const (
	emptyArrayType = "string[]"
	elementsField  = "elements"
)

// projector maps entry function arguments onto EIP-712 types and values. The
// struct and wrapper types it needs are registered in types as it goes.
type projector struct {
	types apitypes.Types
}

// argument projects an entry function argument onto an EIP-712 type and value.
// Integers are decimal strings. Vectors become arrays, vector<u8> becomes bytes,
// options are arrays of zero or one element and structs get a named type with
// one member per field.
func (p projector) argument(arg moveup.EntryFunctionArgument) (string, interface{}, error) {
	switch a := arg.(type) {
	case moveup.EntryFunctionArgumentU8:
		return "uint8", strconv.FormatUint(uint64(a.Value), 10), nil
	case moveup.EntryFunctionArgumentU16:
		return "uint16", strconv.FormatUint(uint64(a.Value), 10), nil
	case moveup.EntryFunctionArgumentU32:
		return "uint32", strconv.FormatUint(uint64(a.Value), 10), nil
	case moveup.EntryFunctionArgumentU64:
		return "uint64", strconv.FormatUint(a.Value, 10), nil
	case moveup.EntryFunctionArgumentU128:
		return "uint128", a.Value.Dec(), nil
	case moveup.EntryFunctionArgumentU256:
		return "uint256", a.Value.Dec(), nil
	case moveup.EntryFunctionArgumentBool:
		return "bool", a.Value, nil
	case moveup.EntryFunctionArgumentAddress:
		return "address", a.Value.ChecksumHex(), nil
	case moveup.EntryFunctionArgumentString:
		return "string", a.Value, nil
	case moveup.EntryFunctionArgumentFixedPoint32:
		return "uint64", strconv.FormatUint(a.Value, 10), nil
	case moveup.EntryFunctionArgumentFixedPoint64:
		return "uint128", a.Value.Dec(), nil
	case moveup.EntryFunctionArgumentObject:
		return "address", a.Value.ChecksumHex(), nil
	case moveup.EntryFunctionArgumentVector:
		if b, ok := u8Vector(a.Elements); ok {
			return "bytes", hexBytes(b), nil
		}
		return p.array(a.Elements)
	case moveup.EntryFunctionArgumentOption:
		if a.Value == nil {
			return p.array(nil)
		}
		return p.array([]moveup.EntryFunctionArgument{a.Value})
	case moveup.EntryFunctionArgumentStruct:
		return p.structValue(a)
	case moveup.EntryFunctionArgumentBcsBytes:
		// already encoded, the wallet can only show the bytes
		return "bytes", hexBytes(a.Value), nil
	default:
		return "", nil, fmt.Errorf("unsupported argument %T", arg)
	}
}

// array projects a homogeneous list. EIP-712 has no multi-dimensional arrays, so
// elements that are arrays themselves are wrapped in a Vector_<elem> struct with a
// single elements member.
func (p projector) array(elems []moveup.EntryFunctionArgument) (string, interface{}, error) {
	if len(elems) == 0 {
		return emptyArrayType, []interface{}{}, nil
	}

	var elemType string
	types := make([]string, len(elems))
	values := make([]interface{}, len(elems))
	for i, e := range elems {
		typ, value, err := p.argument(e)
		if err != nil {
			return "", nil, fmt.Errorf("element %d: %w", i, err)
		}
		types[i], values[i] = typ, value
		// an empty element takes the type of its siblings
		if emptyArray(typ, value) {
			continue
		}
		if elemType != "" && typ != elemType {
			return "", nil, fmt.Errorf("element %d projects to %s, previous elements to %s", i, typ, elemType)
		}
		elemType = typ
	}
	if elemType == "" {
		elemType = types[0]
	}

	for i := range values {
		if elemType == "bytes" && emptyArray(types[i], values[i]) {
			values[i] = "0x"
		}
	}

	if strings.HasSuffix(elemType, "[]") {
		wrapper := "Vector_" + strings.TrimSuffix(elemType, "[]")
		p.types[wrapper] = []apitypes.Type{{Name: elementsField, Type: elemType}}
		for i, value := range values {
			values[i] = map[string]interface{}{elementsField: value}
		}
		elemType = wrapper
	}
	return elemType + "[]", values, nil
}

func (p projector) structValue(s moveup.EntryFunctionArgumentStruct) (string, interface{}, error) {
	fields := make([]apitypes.Type, len(s.Fields))
	values := make(map[string]interface{}, len(s.Fields))
	for i, f := range s.Fields {
		name := string(f.Name)
		if _, ok := values[name]; ok {
			return "", nil, fmt.Errorf("%s: duplicate field %s", s.Tag, name)
		}
		typ, value, err := p.argument(f.Value)
		if err != nil {
			return "", nil, fmt.Errorf("%s.%s: %w", s.Tag, name, err)
		}
		fields[i] = apitypes.Type{Name: name, Type: typ}
		values[name] = value
	}

	name := structTypeName(s.Tag, fields)
	p.types[name] = fields
	return name, values, nil
}

// structTypeName names the EIP-712 type of a struct value. The suffix hashes the
// full tag and the projected members, so values whose projections differ (an empty
// vector field, a none option) never share a type.
func structTypeName(tag moveup.StructTag, fields []apitypes.Type) string {
	var sig strings.Builder
	sig.WriteString(tag.String())
	for _, f := range fields {
		sig.WriteString("," + f.Type + " " + f.Name)
	}
	h := ethcrypto.Keccak256([]byte(sig.String()))
	return fmt.Sprintf("Struct_%s_%s_%x", tag.Module, tag.Name, h[:4])
}

func emptyArray(typ string, value interface{}) bool {
	v, ok := value.([]interface{})
	return ok && len(v) == 0 && typ == emptyArrayType
}

func u8Vector(elems []moveup.EntryFunctionArgument) ([]byte, bool) {
	if len(elems) == 0 {
		return nil, false
	}
	b := make([]byte, len(elems))
	for i, e := range elems {
		u, ok := e.(moveup.EntryFunctionArgumentU8)
		if !ok {
			return nil, false
		}
		b[i] = u.Value
	}
	return b, true
}

func typeArgStrings(tags []moveup.TypeTag) []interface{} {
	out := make([]interface{}, len(tags))
	for i, tag := range tags {
		out[i] = tag.String()
	}
	return out
}

func hexBytes(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
