package abi

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/model/rest"
	"github.com/moveup-labs/moveup-go-sdk/module"
	"github.com/moveup-labs/moveup-go-sdk/module/metrics"
)

// Node is the part of the node API the remote builder reads from.
type Node interface {
	GetAccountModules(ctx context.Context, addr moveup.AccountAddress) ([]rest.MoveModuleBytecode, error)
	GetAccount(ctx context.Context, addr moveup.AccountAddress) (*rest.AccountData, error)
	GetChainID(ctx context.Context) (uint8, error)
	EstimateGasPrice(ctx context.Context) (*rest.GasEstimation, error)
}

var leadingZeros = regexp.MustCompile(`^0[xX]0*([0-9a-fA-F])`)

// RemoteABIBuilder builds transactions for entry functions whose ABI is fetched from the node.
type RemoteABIBuilder struct {
	log     zerolog.Logger
	node    Node
	config  BuilderConfig
	cache   *Cache
	metrics module.CacheMetrics
	clock   func() time.Time
}

type RemoteOption func(*RemoteABIBuilder)

// WithCache replaces the default ABI cache.
func WithCache(cache *Cache) RemoteOption {
	return func(b *RemoteABIBuilder) {
		b.cache = cache
	}
}

func WithCacheMetrics(m module.CacheMetrics) RemoteOption {
	return func(b *RemoteABIBuilder) {
		b.metrics = m
	}
}

// WithRemoteClock overrides the clock used for expiration timestamps and cache entries.
func WithRemoteClock(clock func() time.Time) RemoteOption {
	return func(b *RemoteABIBuilder) {
		b.clock = clock
	}
}

func NewRemoteABIBuilder(log zerolog.Logger, node Node, cfg BuilderConfig, opts ...RemoteOption) (*RemoteABIBuilder, error) {
	b := &RemoteABIBuilder{
		log:     log.With().Str("component", "remote_abi_builder").Logger(),
		node:    node,
		config:  cfg,
		metrics: metrics.NewNoopCollector(),
		clock:   time.Now,
	}
	for _, apply := range opts {
		apply(b)
	}
	if b.cache == nil {
		cache, err := NewCache(DefaultCacheSize, DefaultCacheTTL, b.clock)
		if err != nil {
			return nil, fmt.Errorf("could not create abi cache: %w", err)
		}
		b.cache = cache
	}
	return b, nil
}

// NormalizeFunctionID strips the leading zeros of the address part, e.g. 0x0001::coin::transfer
// becomes 0x1::coin::transfer. At least one digit is kept, so 0x0::m::f stays as is.
func NormalizeFunctionID(fn string) string {
	return leadingZeros.ReplaceAllString(fn, "0x$1")
}

// FetchABI returns the entry functions published under addr. Results are cached.
// Modules the node could not provide an ABI for are skipped.
func (b *RemoteABIBuilder) FetchABI(ctx context.Context, addr moveup.AccountAddress) (ModuleFunctions, error) {
	if functions, ok := b.cache.Get(addr); ok {
		b.metrics.CacheHit(metrics.ResourceABI)
		b.log.Debug().Str("address", addr.ShortHex()).Msg("abi cache hit")
		return functions, nil
	}
	b.metrics.CacheMiss(metrics.ResourceABI)
	b.log.Debug().Str("address", addr.ShortHex()).Msg("abi cache miss")

	modules, err := b.node.GetAccountModules(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("could not get modules of %s: %w", addr.ShortHex(), err)
	}

	functions := make(ModuleFunctions)
	for i, m := range modules {
		if m.ABI == nil {
			b.log.Warn().
				Str("address", addr.ShortHex()).
				Int("module_index", i).
				Msg("skipping module without abi")
			continue
		}
		for _, fn := range m.ABI.EntryFunctions() {
			functions[m.ABI.Address.ShortHex()+"::"+m.ABI.Name+"::"+fn.Name] = fn
		}
	}

	b.cache.Add(addr, functions)
	b.metrics.CacheEntries(metrics.ResourceABI, uint(b.cache.Len()))
	return functions, nil
}

// Build resolves fn on the node and assembles a raw transaction. The sequence number,
// chain id and gas unit price are fetched concurrently unless configured.
func (b *RemoteABIBuilder) Build(ctx context.Context, fn string, typeArgs []string, args []interface{}) (moveup.RawTransaction, error) {
	fn = NormalizeFunctionID(fn)
	parts := strings.Split(fn, "::")
	if len(parts) != 3 {
		return moveup.RawTransaction{}, NewLookupErr(InvalidFunctionIdFormat, fn)
	}
	addr, err := moveup.HexToAddress(parts[0])
	if err != nil {
		return moveup.RawTransaction{}, NewLookupErr(InvalidFunctionIdFormat, fn)
	}
	moduleID, err := moveup.NewModuleId(addr, parts[1])
	if err != nil {
		return moveup.RawTransaction{}, fmt.Errorf("%s: %w", fn, err)
	}
	key := moduleID.String() + "::" + parts[2]

	functions, err := b.FetchABI(ctx, addr)
	if err != nil {
		return moveup.RawTransaction{}, err
	}
	found, ok := functions[key]
	if !ok {
		return moveup.RawTransaction{}, NewLookupErr(FunctionNotFound, fn)
	}

	entryABI, err := entryFunctionABI(moduleID, found, typeArgs)
	if err != nil {
		return moveup.RawTransaction{}, fmt.Errorf("%s: %w", fn, err)
	}
	encoded, err := bcs.ToBytes(entryABI)
	if err != nil {
		return moveup.RawTransaction{}, err
	}

	cfg, err := b.resolveConfig(ctx)
	if err != nil {
		return moveup.RawTransaction{}, err
	}

	builder, err := NewTransactionBuilderABI([][]byte{encoded}, cfg, WithClock(b.clock))
	if err != nil {
		return moveup.RawTransaction{}, err
	}
	return builder.Build(key, typeArgs, args)
}

// entryFunctionABI turns the JSON ABI of a function into its binary form. Signer parameters
// are supplied by the authenticator and are dropped.
func entryFunctionABI(moduleID moveup.ModuleId, fn rest.MoveFunction, typeArgs []string) (moveup.EntryFunctionABI, error) {
	typeArgABIs := make([]moveup.TypeArgumentABI, len(fn.GenericTypeParams))
	for i := range fn.GenericTypeParams {
		typeArgABIs[i] = moveup.TypeArgumentABI{Name: strconv.Itoa(i)}
	}

	var argABIs []moveup.ArgumentABI
	for _, param := range fn.Params {
		if param == "signer" || param == "&signer" {
			continue
		}
		tag, err := moveup.NewTypeTagParser(param, typeArgs...).Parse()
		if err != nil {
			return moveup.EntryFunctionABI{}, fmt.Errorf("parameter %q: %w", param, err)
		}
		argABIs = append(argABIs, moveup.ArgumentABI{
			Name:    "var" + strconv.Itoa(len(argABIs)),
			TypeTag: tag,
		})
	}
	if argABIs == nil {
		argABIs = []moveup.ArgumentABI{}
	}

	return moveup.EntryFunctionABI{
		FunctionName: fn.Name,
		Module:       moduleID,
		TypeArgs:     typeArgABIs,
		Args:         argABIs,
	}, nil
}

func (b *RemoteABIBuilder) resolveConfig(ctx context.Context) (BuilderConfig, error) {
	cfg := b.config
	g, ctx := errgroup.WithContext(ctx)

	if cfg.SequenceNumber == nil {
		g.Go(func() error {
			account, err := b.node.GetAccount(ctx, cfg.Sender)
			if err != nil {
				return fmt.Errorf("could not get sequence number of %s: %w", cfg.Sender.ShortHex(), err)
			}
			seq := uint64(account.SequenceNumber)
			cfg.SequenceNumber = &seq
			return nil
		})
	}
	if cfg.ChainID == nil {
		g.Go(func() error {
			id, err := b.node.GetChainID(ctx)
			if err != nil {
				return fmt.Errorf("could not get chain id: %w", err)
			}
			chainID := moveup.ChainID(id)
			cfg.ChainID = &chainID
			return nil
		})
	}
	if cfg.GasUnitPrice == nil {
		g.Go(func() error {
			estimate, err := b.node.EstimateGasPrice(ctx)
			if err != nil {
				return fmt.Errorf("could not estimate gas price: %w", err)
			}
			price := uint64(estimate.GasEstimate)
			cfg.GasUnitPrice = &price
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return BuilderConfig{}, err
	}
	return cfg, nil
}
