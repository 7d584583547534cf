package balance

import (
	"time"

	"github.com/chinmay1088/voyager/api"
)

// DefaultConfig is the default configuration for the balance aggregator.
var DefaultConfig = Config{
	CallTimeout: 20 * time.Second,
	Progress:    func(api.Network) {},
}

// Config is the configuration of a balance aggregator.
type Config struct {
	CallTimeout time.Duration
	Progress    func(api.Network)
}

// WithCallTimeout bounds every balance call made after a connection is acquired.
func WithCallTimeout(timeout time.Duration) func(*Config) {
	return func(cfg *Config) {
		cfg.CallTimeout = timeout
	}
}

// WithProgress sets a hook invoked once per network when its figures have
// settled, successfully or not.
func WithProgress(progress func(api.Network)) func(*Config) {
	return func(cfg *Config) {
		cfg.Progress = progress
	}
}
