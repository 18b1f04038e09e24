package client

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/model/rest"
	"github.com/moveup-labs/moveup-go-sdk/module"
	"github.com/moveup-labs/moveup-go-sdk/module/metrics"
	"github.com/moveup-labs/moveup-go-sdk/sdk/abi"
	"github.com/moveup-labs/moveup-go-sdk/sdk/account"
	"github.com/moveup-labs/moveup-go-sdk/sdk/txbuilder"
)

// GenerateSignedBCSTransaction signs raw with the account and returns the bytes to submit.
func GenerateSignedBCSTransaction(a *account.Account, raw moveup.RawTransaction, scheme txbuilder.Scheme) ([]byte, error) {
	builder := txbuilder.NewSecp256k1Builder(txbuilder.AccountSigningFunc(a), a.PubKey(), txbuilder.WithScheme(scheme))
	return builder.Sign(raw)
}

// Provider composes a node client with the remote ABI builder. Every builder it creates
// shares one ABI cache.
type Provider struct {
	*Client
	log          zerolog.Logger
	cache        *abi.Cache
	cacheMetrics module.CacheMetrics
	defaults     abi.BuilderConfig
	scheme       txbuilder.Scheme
}

type ProviderOption func(*Provider)

// WithBuilderDefaults sets the gas and expiration fields of every transaction built.
// The sender and sequence number are always taken from the signing account.
func WithBuilderDefaults(cfg abi.BuilderConfig) ProviderOption {
	return func(p *Provider) {
		p.defaults = cfg
	}
}

func WithScheme(scheme txbuilder.Scheme) ProviderOption {
	return func(p *Provider) {
		p.scheme = scheme
	}
}

func WithABICache(cache *abi.Cache) ProviderOption {
	return func(p *Provider) {
		p.cache = cache
	}
}

func WithABICacheMetrics(m module.CacheMetrics) ProviderOption {
	return func(p *Provider) {
		p.cacheMetrics = m
	}
}

func NewProvider(log zerolog.Logger, c *Client, opts ...ProviderOption) (*Provider, error) {
	p := &Provider{
		Client:       c,
		log:          log.With().Str("component", "provider").Logger(),
		cacheMetrics: metrics.NewNoopCollector(),
		scheme:       txbuilder.SchemeNative,
	}
	for _, apply := range opts {
		apply(p)
	}
	if p.cache == nil {
		cache, err := abi.NewCache(abi.DefaultCacheSize, abi.DefaultCacheTTL, nil)
		if err != nil {
			return nil, fmt.Errorf("could not create abi cache: %w", err)
		}
		p.cache = cache
	}
	return p, nil
}

// Builder returns a remote ABI builder for transactions sent by sender.
func (p *Provider) Builder(sender moveup.AccountAddress) (*abi.RemoteABIBuilder, error) {
	cfg := p.defaults
	cfg.Sender = sender
	cfg.SequenceNumber = nil
	return abi.NewRemoteABIBuilder(p.log, p.Client, cfg,
		abi.WithCache(p.cache),
		abi.WithCacheMetrics(p.cacheMetrics),
	)
}

// BuildAndSign builds a call of fn sent by the account and signs it.
func (p *Provider) BuildAndSign(ctx context.Context, a *account.Account, fn string, typeArgs []string, args []interface{}) (moveup.RawTransaction, []byte, error) {
	builder, err := p.Builder(a.Address())
	if err != nil {
		return moveup.RawTransaction{}, nil, err
	}
	raw, err := builder.Build(ctx, fn, typeArgs, args)
	if err != nil {
		return moveup.RawTransaction{}, nil, fmt.Errorf("could not build %s: %w", fn, err)
	}
	signed, err := GenerateSignedBCSTransaction(a, raw, p.scheme)
	if err != nil {
		return moveup.RawTransaction{}, nil, fmt.Errorf("could not sign %s: %w", fn, err)
	}
	return raw, signed, nil
}

// BuildSignSubmit builds, signs and submits a call of fn, then waits for it to be committed.
func (p *Provider) BuildSignSubmit(ctx context.Context, a *account.Account, fn string, typeArgs []string, args []interface{}) (*rest.Transaction, error) {
	raw, signed, err := p.BuildAndSign(ctx, a, fn, typeArgs, args)
	if err != nil {
		return nil, err
	}

	pending, err := p.SubmitSignedBCSTransaction(ctx, signed)
	if err != nil {
		return nil, fmt.Errorf("could not submit %s: %w", fn, err)
	}
	p.log.Info().
		Str("function", fn).
		Str("sender", raw.Sender.ShortHex()).
		Uint64("sequence_number", raw.SequenceNumber).
		Str("tx_hash", pending.Hash).
		Msg("transaction submitted")

	return p.WaitForTransaction(ctx, pending.Hash)
}
