package api

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "VOYAGER"

// Config contains the runtime parameters of the connection layer.
// Endpoint lists are comma-separated; empty lists fall back to the built-in sets.
type Config struct {
	EthereumRPCURLs []string      `envconfig:"ETHEREUM_RPC_URLS" validate:"min=1,max=5,dive,url"`
	BSCRPCURLs      []string      `envconfig:"BSC_RPC_URLS" validate:"min=1,max=5,dive,url"`
	SolanaRPCURLs   []string      `envconfig:"SOLANA_RPC_URLS" validate:"min=1,max=5,dive,url"`
	ProbeTimeout    time.Duration `envconfig:"PROBE_TIMEOUT" default:"7s" validate:"gt=0"`
	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"30s" validate:"gt=0"`
	CallTimeout     time.Duration `envconfig:"CALL_TIMEOUT" default:"20s" validate:"gt=0"`
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() Config {
	return Config{
		EthereumRPCURLs: append([]string(nil), EthereumRPCs...),
		BSCRPCURLs:      append([]string(nil), BSCRPCs...),
		SolanaRPCURLs:   append([]string(nil), SolanaRPCs...),
		ProbeTimeout:    7 * time.Second,
		CacheTTL:        30 * time.Second,
		CallTimeout:     20 * time.Second,
	}
}

// LoadConfig reads the configuration from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process config: %w", err)
	}

	defaults := DefaultConfig()
	if len(cfg.EthereumRPCURLs) == 0 {
		cfg.EthereumRPCURLs = defaults.EthereumRPCURLs
	}
	if len(cfg.BSCRPCURLs) == 0 {
		cfg.BSCRPCURLs = defaults.BSCRPCURLs
	}
	if len(cfg.SolanaRPCURLs) == 0 {
		cfg.SolanaRPCURLs = defaults.SolanaRPCURLs
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks endpoint lists and timeouts.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Endpoints returns the ordered endpoint set of every network.
func (c Config) Endpoints() map[Network][]string {
	return map[Network][]string{
		NetworkEthereum: c.EthereumRPCURLs,
		NetworkBSC:      c.BSCRPCURLs,
		NetworkSolana:   c.SolanaRPCURLs,
	}
}
