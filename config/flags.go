package config

import (
	"github.com/spf13/pflag"
)

const (
	// All constant strings are used for CLI flag names and corresponding keys for config values.
	configFile    = "config"
	network       = "network"
	nodeURL       = "node-url"
	signingScheme = "signing-scheme"
	logLevel      = "loglevel"
	// node client
	requestTimeout               = "request-timeout"
	retryMax                     = "retry-max"
	retryBase                    = "retry-base"
	waitTimeout                  = "wait-timeout"
	pollInterval                 = "poll-interval"
	circuitBreakerEnabled        = "circuit-breaker-enabled"
	circuitBreakerMaxFailures    = "circuit-breaker-max-failures"
	circuitBreakerRestoreTimeout = "circuit-breaker-restore-timeout"
	rateLimit                    = "rate-limit"
	rateBurst                    = "rate-burst"
	// transaction builder
	maxGasAmount   = "max-gas-amount"
	expirationSecs = "expiration-secs"
	gasUnitPrice   = "gas-unit-price"
	// abi cache
	abiCacheTTL  = "abi-cache-ttl"
	abiCacheSize = "abi-cache-size"
)

func AllFlagNames() []string {
	return []string{
		configFile, network, nodeURL, signingScheme, logLevel, requestTimeout, retryMax, retryBase, waitTimeout, pollInterval,
		circuitBreakerEnabled, circuitBreakerMaxFailures, circuitBreakerRestoreTimeout, rateLimit, rateBurst, maxGasAmount,
		expirationSecs, gasUnitPrice, abiCacheTTL, abiCacheSize,
	}
}

// InitializeFlags initializes all CLI flags of the SDK configuration on the provided pflag set.
// Args:
//
//	*pflag.FlagSet: the pflag set of the command.
//	*Config: the default config used to set default values on the flags
func InitializeFlags(flags *pflag.FlagSet, config *Config) {
	flags.String(configFile, config.ConfigFile, "path of a yaml, json or toml config file")
	flags.String(network, config.Network, "network to connect to, one of mainnet, testnet, devnet, local")
	flags.String(nodeURL, config.NodeURL, "node REST API url, overrides the url of the network")
	flags.String(signingScheme, config.SigningScheme, "signing message derivation, native or eip712")
	flags.String(logLevel, config.LogLevel, "level for logging output")
	// node client
	flags.Duration(requestTimeout, config.Client.RequestTimeout, "timeout of a single node request")
	flags.Uint64(retryMax, config.Client.RetryMax, "maximum number of retries of an idempotent node request")
	flags.Duration(retryBase, config.Client.RetryBase, "initial delay between retries, doubled after each retry")
	flags.Duration(waitTimeout, config.Client.WaitTimeout, "how long to wait for a submitted transaction to be committed")
	flags.Duration(pollInterval, config.Client.PollInterval, "interval between lookups of a submitted transaction")
	flags.Bool(circuitBreakerEnabled, config.Client.CircuitBreakerEnabled, "stop sending requests to a failing node for a while")
	flags.Uint32(circuitBreakerMaxFailures, config.Client.CircuitBreakerMaxFailures, "consecutive node failures that open the circuit breaker")
	flags.Duration(circuitBreakerRestoreTimeout, config.Client.CircuitBreakerRestoreTimeout, "how long the circuit breaker stays open")
	flags.Float64(rateLimit, config.Client.RateLimit, "maximum node requests per second, 0 for no limit")
	flags.Int(rateBurst, config.Client.RateBurst, "node requests allowed at once when rate limited")
	// transaction builder
	flags.Uint64(maxGasAmount, config.Builder.MaxGasAmount, "maximum gas units a transaction may use")
	flags.Uint64(expirationSecs, config.Builder.ExpirationSecs, "seconds from now until a built transaction expires")
	flags.Uint64(gasUnitPrice, config.Builder.GasUnitPrice, "gas unit price, estimated by the node when 0")
	// abi cache
	flags.Duration(abiCacheTTL, config.Cache.ABICacheTTL, "time-to-live of fetched module abis")
	flags.Int(abiCacheSize, config.Cache.ABICacheSize, "number of accounts whose module abis are cached")
}
