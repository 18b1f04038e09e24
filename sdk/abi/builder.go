package abi

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
)

const (
	DefaultMaxGasAmount   uint64 = 200000
	DefaultExpirationSecs uint64 = 20
)

// BuilderConfig holds the transaction fields the ABI does not determine.
// Nil pointers are unset. The remote builder fills them from the node.
type BuilderConfig struct {
	Sender         moveup.AccountAddress
	SequenceNumber *uint64
	GasUnitPrice   *uint64
	MaxGasAmount   uint64
	ExpirationSecs uint64
	ChainID        *moveup.ChainID
}

func (c BuilderConfig) withDefaults() BuilderConfig {
	if c.MaxGasAmount == 0 {
		c.MaxGasAmount = DefaultMaxGasAmount
	}
	if c.ExpirationSecs == 0 {
		c.ExpirationSecs = DefaultExpirationSecs
	}
	return c
}

type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock overrides the clock used to compute expiration timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func defaultOptions() *options {
	return &options{clock: time.Now}
}

// TransactionBuilderABI builds transactions for a fixed set of binary ABIs.
// Entry functions are keyed by "0x1::module::function", scripts by their name.
type TransactionBuilderABI struct {
	abis   map[string]moveup.ScriptABI
	config BuilderConfig
	clock  func() time.Time
}

// NewTransactionBuilderABI decodes the given BCS encoded ABIs. Every ABI that fails to
// decode is reported in the returned error.
func NewTransactionBuilderABI(abis [][]byte, cfg BuilderConfig, opts ...Option) (*TransactionBuilderABI, error) {
	o := defaultOptions()
	for _, apply := range opts {
		apply(o)
	}

	b := &TransactionBuilderABI{
		abis:   make(map[string]moveup.ScriptABI, len(abis)),
		config: cfg.withDefaults(),
		clock:  o.clock,
	}

	var errs *multierror.Error
	for i, raw := range abis {
		decoded, err := bcs.FromBytes(raw, moveup.DeserializeScriptABI)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("abi %d: %w", i, err))
			continue
		}
		key := abiKey(decoded)
		if _, ok := b.abis[key]; ok {
			return nil, NewLookupErr(ConflictingABIInterfaces, key)
		}
		b.abis[key] = decoded
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return b, nil
}

func abiKey(a moveup.ScriptABI) string {
	if ef, ok := a.(moveup.EntryFunctionABI); ok {
		return ef.Module.String() + "::" + ef.FunctionName
	}
	return a.Name()
}

// SetSequenceNumber sets the sequence number used by subsequent builds.
func (b *TransactionBuilderABI) SetSequenceNumber(seq uint64) {
	b.config.SequenceNumber = &seq
}

// BuildTransactionPayload resolves fn against the known ABIs and converts the arguments.
func (b *TransactionBuilderABI) BuildTransactionPayload(fn string, typeArgs []string, args []interface{}) (moveup.TransactionPayload, error) {
	tags := make([]moveup.TypeTag, 0, len(typeArgs))
	for _, ty := range typeArgs {
		tag, err := moveup.ParseTypeTag(ty)
		if err != nil {
			return nil, fmt.Errorf("type argument %q: %w", ty, err)
		}
		tags = append(tags, tag)
	}

	found, ok := b.abis[fn]
	if !ok {
		return nil, NewLookupErr(FunctionNotFound, fn)
	}

	switch a := found.(type) {
	case moveup.EntryFunctionABI:
		converted, err := EntryFunctionArguments(a.Args, args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn, err)
		}
		return moveup.TransactionPayloadEntryFunction{EntryFunction: moveup.EntryFunction{
			Module:   a.Module,
			Function: moveup.Identifier(a.FunctionName),
			TypeArgs: tags,
			Args:     converted,
		}}, nil
	case moveup.TransactionScriptABI:
		converted, err := TransactionArguments(a.Args, args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn, err)
		}
		return moveup.TransactionPayloadScript{Script: moveup.Script{
			Code:     a.Code,
			TypeArgs: tags,
			Args:     converted,
		}}, nil
	default:
		return nil, NewLookupErr(FunctionNotFound, fn)
	}
}

// Build assembles a raw transaction calling fn. The gas unit price, sequence number and
// chain id must be configured.
func (b *TransactionBuilderABI) Build(fn string, typeArgs []string, args []interface{}) (moveup.RawTransaction, error) {
	cfg := b.config
	if cfg.GasUnitPrice == nil {
		return moveup.RawTransaction{}, moveup.NewValidationErr(moveup.InvalidArgument, "no gas unit price provided")
	}
	if cfg.SequenceNumber == nil {
		return moveup.RawTransaction{}, moveup.NewValidationErr(moveup.InvalidArgument, "no sequence number provided")
	}
	if cfg.ChainID == nil {
		return moveup.RawTransaction{}, moveup.NewValidationErr(moveup.InvalidArgument, "no chain id provided")
	}

	payload, err := b.BuildTransactionPayload(fn, typeArgs, args)
	if err != nil {
		return moveup.RawTransaction{}, err
	}

	return moveup.RawTransaction{
		Sender:                  cfg.Sender,
		SequenceNumber:          *cfg.SequenceNumber,
		Payload:                 payload,
		MaxGasAmount:            cfg.MaxGasAmount,
		GasUnitPrice:            *cfg.GasUnitPrice,
		ExpirationTimestampSecs: uint64(b.clock().Unix()) + cfg.ExpirationSecs,
		ChainID:                 *cfg.ChainID,
	}, nil
}
