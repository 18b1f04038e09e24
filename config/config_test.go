package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moveup-labs/moveup-go-sdk/sdk/client"
	"github.com/moveup-labs/moveup-go-sdk/sdk/txbuilder"
	"github.com/moveup-labs/moveup-go-sdk/utils/unittest"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	InitializeFlags(flags, DefaultConfig())
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestAllFlagNames(t *testing.T) {
	flags := newFlags(t)
	for _, name := range AllFlagNames() {
		assert.NotNil(t, flags.Lookup(name), name)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	url, err := cfg.URL()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/v1", url)

	scheme, err := cfg.Scheme()
	require.NoError(t, err)
	assert.Equal(t, txbuilder.SchemeNative, scheme)

	assert.Nil(t, cfg.BuilderDefaults().GasUnitPrice, "gas unit price is estimated by default")
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load(newFlags(t,
		"--node-url", "https://node.example.com/v1",
		"--signing-scheme", "eip712",
		"--retry-max", "7",
		"--wait-timeout", "1m",
		"--gas-unit-price", "120",
		"--circuit-breaker-enabled",
		"--rate-limit", "2.5",
	))
	require.NoError(t, err)

	clientCfg, err := cfg.ClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://node.example.com/v1", clientCfg.URL)
	assert.Equal(t, uint64(7), clientCfg.RetryMax)
	assert.Equal(t, time.Minute, clientCfg.WaitTimeout)
	assert.True(t, clientCfg.CircuitBreaker.Enabled)
	assert.Equal(t, 2.5, clientCfg.RateLimit)
	assert.Equal(t, client.DefaultConfig().RateBurst, clientCfg.RateBurst)

	builder := cfg.BuilderDefaults()
	require.NotNil(t, builder.GasUnitPrice)
	assert.Equal(t, uint64(120), *builder.GasUnitPrice)

	scheme, err := cfg.Scheme()
	require.NoError(t, err)
	assert.Equal(t, txbuilder.SchemeEIP712, scheme)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("MOVEUP_NETWORK", "testnet")
	t.Setenv("MOVEUP_ABI_CACHE_TTL", "30s")

	cfg, err := Load(newFlags(t, "--abi-cache-size", "8"))
	require.NoError(t, err)
	assert.Equal(t, NetworkTestnet, cfg.Network)
	assert.Equal(t, 30*time.Second, cfg.Cache.ABICacheTTL)
	assert.Equal(t, 8, cfg.Cache.ABICacheSize)

	t.Run("flags take precedence", func(t *testing.T) {
		cfg, err := Load(newFlags(t, "--network", "mainnet"))
		require.NoError(t, err)
		assert.Equal(t, NetworkMainnet, cfg.Network)
	})
}

func TestLoadConfigFile(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		path := filepath.Join(dir, "moveup.yaml")
		content := "network: local\nmax-gas-amount: 4000\nrequest-timeout: 3s\nloglevel: debug\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(newFlags(t, "--config", path, "--loglevel", "warn"))
		require.NoError(t, err)
		assert.Equal(t, NetworkLocal, cfg.Network)
		assert.Equal(t, uint64(4000), cfg.Builder.MaxGasAmount)
		assert.Equal(t, 3*time.Second, cfg.Client.RequestTimeout)
		assert.Equal(t, "warn", cfg.LogLevel)

		_, err = Load(newFlags(t, "--config", filepath.Join(dir, "missing.yaml")))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	_, err := Load(newFlags(t,
		"--network", "moon",
		"--signing-scheme", "ed25519",
		"--max-gas-amount", "0",
		"--node-url", "not a url",
	))
	require.Error(t, err)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "every invalid field is reported")
	assert.Len(t, merr.Errors, 4)
	assert.Contains(t, err.Error(), "Config.Network")
	assert.Contains(t, err.Error(), "Config.Builder.MaxGasAmount")
}

func TestNodeURL(t *testing.T) {
	for _, network := range Networks() {
		url, err := NodeURL(network)
		require.NoError(t, err)
		assert.NotEmpty(t, url)
	}
	_, err := NodeURL("moon")
	assert.Error(t, err)
}
