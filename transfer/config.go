package transfer

import (
	"time"
)

// DefaultConfig is the default configuration for the transfer dispatcher.
var DefaultConfig = Config{
	CallTimeout: 20 * time.Second,
}

// Config is the configuration of a transfer dispatcher.
type Config struct {
	CallTimeout time.Duration
}

// WithCallTimeout bounds every call made to a node during a dispatch.
func WithCallTimeout(timeout time.Duration) func(*Config) {
	return func(cfg *Config) {
		cfg.CallTimeout = timeout
	}
}
