package moveup

import (
	"fmt"

	"github.com/moveup-labs/moveup-go-sdk/crypto/hash"
	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
	"github.com/moveup-labs/moveup-go-sdk/model/encoding"
)

// ChainID identifies the network a transaction is meant for. It is a single byte on the wire.
type ChainID uint8

// Script runs Move bytecode with the given type arguments and arguments.
type Script struct {
	Code     []byte
	TypeArgs []TypeTag
	Args     []TransactionArgument
}

func (sc Script) Serialize(s *bcs.Serializer) {
	s.Bytes(sc.Code)
	bcs.SerializeSeq(s, sc.TypeArgs, serializeTypeTag)
	bcs.SerializeSeq(s, sc.Args, func(s *bcs.Serializer, arg TransactionArgument) { arg.Serialize(s) })
}

func DeserializeScript(d *bcs.Deserializer) (Script, error) {
	code, err := d.Bytes()
	if err != nil {
		return Script{}, err
	}
	typeArgs, err := bcs.DeserializeSeq(d, DeserializeTypeTag)
	if err != nil {
		return Script{}, fmt.Errorf("script type arguments: %w", err)
	}
	args, err := bcs.DeserializeSeq(d, DeserializeTransactionArgument)
	if err != nil {
		return Script{}, fmt.Errorf("script arguments: %w", err)
	}
	return Script{Code: code, TypeArgs: typeArgs, Args: args}, nil
}

// EntryFunction calls a function of a published module.
type EntryFunction struct {
	Module   ModuleId
	Function Identifier
	TypeArgs []TypeTag
	Args     []EntryFunctionArgument
}

// NaturalEntryFunction builds an entry function call from a module id such as "0x1::coin"
// and a function name. The arguments are not checked against any ABI.
func NaturalEntryFunction(module string, function string, typeArgs []TypeTag, args []EntryFunctionArgument) (EntryFunction, error) {
	moduleID, err := ParseModuleId(module)
	if err != nil {
		return EntryFunction{}, err
	}
	fn, err := NewIdentifier(function)
	if err != nil {
		return EntryFunction{}, err
	}
	if typeArgs == nil {
		typeArgs = []TypeTag{}
	}
	if args == nil {
		args = []EntryFunctionArgument{}
	}
	return EntryFunction{Module: moduleID, Function: fn, TypeArgs: typeArgs, Args: args}, nil
}

// FunctionID returns the fully qualified function name, e.g. 0x1::coin::transfer.
func (ef EntryFunction) FunctionID() string {
	return ef.Module.String() + "::" + string(ef.Function)
}

func (ef EntryFunction) Serialize(s *bcs.Serializer) {
	ef.Module.Serialize(s)
	ef.Function.Serialize(s)
	bcs.SerializeSeq(s, ef.TypeArgs, serializeTypeTag)
	bcs.SerializeSeq(s, ef.Args, serializeEntryFunctionArgument)
}

func DeserializeEntryFunction(d *bcs.Deserializer) (EntryFunction, error) {
	module, err := DeserializeModuleId(d)
	if err != nil {
		return EntryFunction{}, err
	}
	fn, err := DeserializeIdentifier(d)
	if err != nil {
		return EntryFunction{}, err
	}
	typeArgs, err := bcs.DeserializeSeq(d, DeserializeTypeTag)
	if err != nil {
		return EntryFunction{}, fmt.Errorf("%s::%s type arguments: %w", module, fn, err)
	}
	args, err := bcs.DeserializeSeq(d, DeserializeEntryFunctionArgument)
	if err != nil {
		return EntryFunction{}, fmt.Errorf("%s::%s arguments: %w", module, fn, err)
	}
	return EntryFunction{Module: module, Function: fn, TypeArgs: typeArgs, Args: args}, nil
}

// MultiSigTransactionPayload is the call a multisig account executes. Only entry
// functions are supported, as variant 0.
type MultiSigTransactionPayload struct {
	EntryFunction EntryFunction
}

const multiSigPayloadEntryFunction uint32 = 0

func (p MultiSigTransactionPayload) Serialize(s *bcs.Serializer) {
	s.Uleb128(multiSigPayloadEntryFunction)
	p.EntryFunction.Serialize(s)
}

func DeserializeMultiSigTransactionPayload(d *bcs.Deserializer) (MultiSigTransactionPayload, error) {
	tag, err := d.Uleb128()
	if err != nil {
		return MultiSigTransactionPayload{}, err
	}
	if tag != multiSigPayloadEntryFunction {
		return MultiSigTransactionPayload{}, NewUnknownVariantErr("MultiSigTransactionPayload", tag)
	}
	ef, err := DeserializeEntryFunction(d)
	if err != nil {
		return MultiSigTransactionPayload{}, err
	}
	return MultiSigTransactionPayload{EntryFunction: ef}, nil
}

// MultiSig executes a transaction as a multisig account. Payload may be nil when
// the transaction payload is already stored on chain.
type MultiSig struct {
	MultisigAddress AccountAddress
	Payload         *MultiSigTransactionPayload
}

func (m MultiSig) Serialize(s *bcs.Serializer) {
	m.MultisigAddress.Serialize(s)
	bcs.SerializeOption(s, m.Payload, func(s *bcs.Serializer, p MultiSigTransactionPayload) { p.Serialize(s) })
}

func DeserializeMultiSig(d *bcs.Deserializer) (MultiSig, error) {
	addr, err := DeserializeAccountAddress(d)
	if err != nil {
		return MultiSig{}, err
	}
	payload, err := bcs.DeserializeOption(d, DeserializeMultiSigTransactionPayload)
	if err != nil {
		return MultiSig{}, fmt.Errorf("multisig payload: %w", err)
	}
	return MultiSig{MultisigAddress: addr, Payload: payload}, nil
}

// TransactionPayload is the instruction a transaction carries.
type TransactionPayload interface {
	bcs.Serializable
	isTransactionPayload()
}

const (
	payloadScript        uint32 = 0
	payloadEntryFunction uint32 = 2
	payloadMultisig      uint32 = 3
)

type TransactionPayloadScript struct {
	Script Script
}

type TransactionPayloadEntryFunction struct {
	EntryFunction EntryFunction
}

type TransactionPayloadMultisig struct {
	MultiSig MultiSig
}

func (TransactionPayloadScript) isTransactionPayload()        {}
func (TransactionPayloadEntryFunction) isTransactionPayload() {}
func (TransactionPayloadMultisig) isTransactionPayload()      {}

func (p TransactionPayloadScript) Serialize(s *bcs.Serializer) {
	s.Uleb128(payloadScript)
	p.Script.Serialize(s)
}

func (p TransactionPayloadEntryFunction) Serialize(s *bcs.Serializer) {
	s.Uleb128(payloadEntryFunction)
	p.EntryFunction.Serialize(s)
}

func (p TransactionPayloadMultisig) Serialize(s *bcs.Serializer) {
	s.Uleb128(payloadMultisig)
	p.MultiSig.Serialize(s)
}

// DeserializeTransactionPayload reads a payload. Variant 1 is retired and is rejected
// like any other unknown variant.
func DeserializeTransactionPayload(d *bcs.Deserializer) (TransactionPayload, error) {
	tag, err := d.Uleb128()
	if err != nil {
		return nil, err
	}
	switch tag {
	case payloadScript:
		sc, err := DeserializeScript(d)
		if err != nil {
			return nil, err
		}
		return TransactionPayloadScript{Script: sc}, nil
	case payloadEntryFunction:
		ef, err := DeserializeEntryFunction(d)
		if err != nil {
			return nil, err
		}
		return TransactionPayloadEntryFunction{EntryFunction: ef}, nil
	case payloadMultisig:
		ms, err := DeserializeMultiSig(d)
		if err != nil {
			return nil, err
		}
		return TransactionPayloadMultisig{MultiSig: ms}, nil
	default:
		return nil, NewUnknownVariantErr("TransactionPayload", tag)
	}
}

// RawTransaction is an unsigned transaction. The field order is the wire order.
type RawTransaction struct {
	Sender                  AccountAddress
	SequenceNumber          uint64
	Payload                 TransactionPayload
	MaxGasAmount            uint64
	GasUnitPrice            uint64
	ExpirationTimestampSecs uint64
	ChainID                 ChainID
}

func (tx RawTransaction) Serialize(s *bcs.Serializer) {
	tx.Sender.Serialize(s)
	s.U64(tx.SequenceNumber)
	tx.Payload.Serialize(s)
	s.U64(tx.MaxGasAmount)
	s.U64(tx.GasUnitPrice)
	s.U64(tx.ExpirationTimestampSecs)
	s.U8(uint8(tx.ChainID))
}

func DeserializeRawTransaction(d *bcs.Deserializer) (RawTransaction, error) {
	var (
		tx  RawTransaction
		err error
	)
	if tx.Sender, err = DeserializeAccountAddress(d); err != nil {
		return tx, fmt.Errorf("sender: %w", err)
	}
	if tx.SequenceNumber, err = d.U64(); err != nil {
		return tx, fmt.Errorf("sequence number: %w", err)
	}
	if tx.Payload, err = DeserializeTransactionPayload(d); err != nil {
		return tx, fmt.Errorf("payload: %w", err)
	}
	if tx.MaxGasAmount, err = d.U64(); err != nil {
		return tx, fmt.Errorf("max gas amount: %w", err)
	}
	if tx.GasUnitPrice, err = d.U64(); err != nil {
		return tx, fmt.Errorf("gas unit price: %w", err)
	}
	if tx.ExpirationTimestampSecs, err = d.U64(); err != nil {
		return tx, fmt.Errorf("expiration: %w", err)
	}
	chainID, err := d.U8()
	if err != nil {
		return tx, fmt.Errorf("chain id: %w", err)
	}
	tx.ChainID = ChainID(chainID)
	return tx, nil
}

// SigningMessage returns sha3-256("MOVEUP::RawTransaction") || bcs(tx).
func (tx RawTransaction) SigningMessage() ([]byte, error) {
	b, err := bcs.ToBytes(tx)
	if err != nil {
		return nil, err
	}
	return append(encoding.RawTransactionSalt(), b...), nil
}

// RawTransactionWithData is a raw transaction bundled with extra data that is signed along with it.
type RawTransactionWithData interface {
	bcs.Serializable
	// SigningMessage returns sha3-256("MOVEUP::RawTransactionWithData") || bcs(self).
	SigningMessage() ([]byte, error)
	isRawTransactionWithData()
}

const rawTransactionWithDataMultiAgent uint32 = 0

// MultiAgentRawTransaction is a transaction that also needs the approval of secondary signers.
type MultiAgentRawTransaction struct {
	RawTxn                   RawTransaction
	SecondarySignerAddresses []AccountAddress
}

func (MultiAgentRawTransaction) isRawTransactionWithData() {}

func (tx MultiAgentRawTransaction) Serialize(s *bcs.Serializer) {
	s.Uleb128(rawTransactionWithDataMultiAgent)
	tx.RawTxn.Serialize(s)
	bcs.SerializeSeq(s, tx.SecondarySignerAddresses, func(s *bcs.Serializer, a AccountAddress) { a.Serialize(s) })
}

func (tx MultiAgentRawTransaction) SigningMessage() ([]byte, error) {
	b, err := bcs.ToBytes(tx)
	if err != nil {
		return nil, err
	}
	return append(encoding.RawTransactionWithDataSalt(), b...), nil
}

func DeserializeRawTransactionWithData(d *bcs.Deserializer) (RawTransactionWithData, error) {
	tag, err := d.Uleb128()
	if err != nil {
		return nil, err
	}
	if tag != rawTransactionWithDataMultiAgent {
		return nil, NewUnknownVariantErr("RawTransactionWithData", tag)
	}
	raw, err := DeserializeRawTransaction(d)
	if err != nil {
		return nil, err
	}
	addrs, err := bcs.DeserializeSeq(d, DeserializeAccountAddress)
	if err != nil {
		return nil, fmt.Errorf("secondary signer addresses: %w", err)
	}
	return MultiAgentRawTransaction{RawTxn: raw, SecondarySignerAddresses: addrs}, nil
}

// SignedTransaction is a raw transaction together with the proof that it was approved.
type SignedTransaction struct {
	RawTxn        RawTransaction
	Authenticator TransactionAuthenticator
}

func (tx SignedTransaction) Serialize(s *bcs.Serializer) {
	tx.RawTxn.Serialize(s)
	tx.Authenticator.Serialize(s)
}

func DeserializeSignedTransaction(d *bcs.Deserializer) (SignedTransaction, error) {
	raw, err := DeserializeRawTransaction(d)
	if err != nil {
		return SignedTransaction{}, err
	}
	auth, err := DeserializeTransactionAuthenticator(d)
	if err != nil {
		return SignedTransaction{}, fmt.Errorf("authenticator: %w", err)
	}
	return SignedTransaction{RawTxn: raw, Authenticator: auth}, nil
}

// Hash returns the hash the chain assigns to the transaction once submitted.
func (tx SignedTransaction) Hash() (hash.Hash, error) {
	return UserTransaction{Signed: tx}.Hash()
}

const transactionUser uint32 = 0

// UserTransaction is the transaction enum variant for transactions submitted by accounts.
type UserTransaction struct {
	Signed SignedTransaction
}

func (tx UserTransaction) Serialize(s *bcs.Serializer) {
	s.Uleb128(transactionUser)
	tx.Signed.Serialize(s)
}

// Hash returns keccak256(keccak256("MOVEUP::Transaction") || bcs(tx)).
func (tx UserTransaction) Hash() (hash.Hash, error) {
	b, err := bcs.ToBytes(tx)
	if err != nil {
		return nil, err
	}
	return hash.SumKeccak256(encoding.TransactionHashSalt(), b), nil
}

func serializeTypeTag(s *bcs.Serializer, tag TypeTag) {
	tag.Serialize(s)
}
