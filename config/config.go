package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/moveup-labs/moveup-go-sdk/sdk/abi"
	"github.com/moveup-labs/moveup-go-sdk/sdk/client"
	"github.com/moveup-labs/moveup-go-sdk/sdk/txbuilder"
)

// EnvPrefix prefixes the environment variable of every flag, e.g. MOVEUP_NODE_URL for --node-url.
const EnvPrefix = "MOVEUP"

var validate = validator.New()

// Config is the configuration of the SDK tooling. Every field can be set with a flag,
// an environment variable or a config file entry of the same name.
type Config struct {
	ConfigFile    string        `mapstructure:"config"`
	Network       string        `validate:"required,oneof=mainnet testnet devnet local" mapstructure:"network"`
	NodeURL       string        `validate:"omitempty,url" mapstructure:"node-url"`
	SigningScheme string        `validate:"oneof=native eip712" mapstructure:"signing-scheme"`
	LogLevel      string        `validate:"oneof=trace debug info warn error" mapstructure:"loglevel"`
	Client        ClientConfig  `mapstructure:",squash"`
	Builder       BuilderConfig `mapstructure:",squash"`
	Cache         CacheConfig   `mapstructure:",squash"`
}

// ClientConfig configures requests to the node.
type ClientConfig struct {
	RequestTimeout               time.Duration `validate:"gt=0" mapstructure:"request-timeout"`
	RetryMax                     uint64        `validate:"lte=20" mapstructure:"retry-max"`
	RetryBase                    time.Duration `validate:"gt=0" mapstructure:"retry-base"`
	WaitTimeout                  time.Duration `validate:"gt=0" mapstructure:"wait-timeout"`
	PollInterval                 time.Duration `validate:"gt=0" mapstructure:"poll-interval"`
	CircuitBreakerEnabled        bool          `mapstructure:"circuit-breaker-enabled"`
	CircuitBreakerMaxFailures    uint32        `validate:"gt=0" mapstructure:"circuit-breaker-max-failures"`
	CircuitBreakerRestoreTimeout time.Duration `validate:"gt=0" mapstructure:"circuit-breaker-restore-timeout"`
	RateLimit                    float64       `validate:"gte=0" mapstructure:"rate-limit"`
	RateBurst                    int           `validate:"gt=0" mapstructure:"rate-burst"`
}

// BuilderConfig holds the defaults of every transaction built.
type BuilderConfig struct {
	MaxGasAmount   uint64 `validate:"gt=0" mapstructure:"max-gas-amount"`
	ExpirationSecs uint64 `validate:"gt=0" mapstructure:"expiration-secs"`
	// GasUnitPrice overrides the node's estimate when set.
	GasUnitPrice uint64 `mapstructure:"gas-unit-price"`
}

type CacheConfig struct {
	ABICacheTTL  time.Duration `validate:"gt=0" mapstructure:"abi-cache-ttl"`
	ABICacheSize int           `validate:"gt=0" mapstructure:"abi-cache-size"`
}

func DefaultConfig() *Config {
	clientDefaults := client.DefaultConfig()
	return &Config{
		Network:       NetworkDevnet,
		SigningScheme: txbuilder.SchemeNative.String(),
		LogLevel:      "info",
		Client: ClientConfig{
			RequestTimeout:               clientDefaults.Timeout,
			RetryMax:                     clientDefaults.RetryMax,
			RetryBase:                    clientDefaults.RetryBase,
			WaitTimeout:                  clientDefaults.WaitTimeout,
			PollInterval:                 clientDefaults.PollInterval,
			CircuitBreakerEnabled:        clientDefaults.CircuitBreaker.Enabled,
			CircuitBreakerMaxFailures:    clientDefaults.CircuitBreaker.MaxFailures,
			CircuitBreakerRestoreTimeout: clientDefaults.CircuitBreaker.RestoreTimeout,
			RateLimit:                    clientDefaults.RateLimit,
			RateBurst:                    clientDefaults.RateBurst,
		},
		Builder: BuilderConfig{
			MaxGasAmount:   abi.DefaultMaxGasAmount,
			ExpirationSecs: abi.DefaultExpirationSecs,
		},
		Cache: CacheConfig{
			ABICacheTTL:  abi.DefaultCacheTTL,
			ABICacheSize: abi.DefaultCacheSize,
		},
	}
}

// Load reads the configuration from the parsed flags, the environment and the config file
// named by the config flag, in decreasing order of precedence.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if file := v.GetString(configFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := DefaultConfig()
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and reports all invalid ones together.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	var result *multierror.Error
	for _, fe := range fieldErrs {
		result = multierror.Append(result, fmt.Errorf("invalid %s %v: failed %q validation", fe.Namespace(), fe.Value(), fe.Tag()))
	}
	return result.ErrorOrNil()
}

// URL returns the node url, falling back to the node of the configured network.
func (c *Config) URL() (string, error) {
	if c.NodeURL != "" {
		return c.NodeURL, nil
	}
	return NodeURL(c.Network)
}

// ClientConfig returns the node client configuration.
func (c *Config) ClientConfig() (client.Config, error) {
	url, err := c.URL()
	if err != nil {
		return client.Config{}, err
	}
	return client.Config{
		URL:       url,
		Timeout:   c.Client.RequestTimeout,
		RetryMax:  c.Client.RetryMax,
		RetryBase: c.Client.RetryBase,
		CircuitBreaker: client.CircuitBreakerConfig{
			Enabled:        c.Client.CircuitBreakerEnabled,
			MaxFailures:    c.Client.CircuitBreakerMaxFailures,
			RestoreTimeout: c.Client.CircuitBreakerRestoreTimeout,
			MaxRequests:    1,
		},
		WaitTimeout:  c.Client.WaitTimeout,
		PollInterval: c.Client.PollInterval,
		RateLimit:    c.Client.RateLimit,
		RateBurst:    c.Client.RateBurst,
	}, nil
}

// BuilderDefaults returns the builder configuration shared by every sender. The gas unit
// price is left unset unless overridden so that it is estimated by the node.
func (c *Config) BuilderDefaults() abi.BuilderConfig {
	cfg := abi.BuilderConfig{
		MaxGasAmount:   c.Builder.MaxGasAmount,
		ExpirationSecs: c.Builder.ExpirationSecs,
	}
	if c.Builder.GasUnitPrice > 0 {
		price := c.Builder.GasUnitPrice
		cfg.GasUnitPrice = &price
	}
	return cfg
}

func (c *Config) Scheme() (txbuilder.Scheme, error) {
	return txbuilder.ParseScheme(c.SigningScheme)
}

func (c *Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.LogLevel)
}
