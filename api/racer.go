package api

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// Conn is a connection handle bound to one endpoint.
type Conn interface {
	Endpoint() string
	Probe(ctx context.Context) error
}

// Dialer builds a connection handle for an endpoint without touching the network.
type Dialer[C Conn] func(endpoint string) C

// Provider hands out connection handles per network.
type Provider[C Conn] interface {
	Acquire(ctx context.Context, network Network) C
	Invalidate(network Network)
}

// Racer finds a responsive endpoint by probing all of them at once.
type Racer[C Conn] struct {
	log       zerolog.Logger
	dial      Dialer[C]
	endpoints map[Network][]string
	cache     *Cache[C]
	timeout   time.Duration
}

// NewRacer creates a racer over the given endpoint sets. Each probe is
// bounded by timeout.
func NewRacer[C Conn](log zerolog.Logger, dial Dialer[C], endpoints map[Network][]string, cache *Cache[C], timeout time.Duration) *Racer[C] {
	return &Racer[C]{
		log:       log.With().Str("component", "racer").Logger(),
		dial:      dial,
		endpoints: endpoints,
		cache:     cache,
		timeout:   timeout,
	}
}

// Acquire returns a connection handle for network. A cached handle is
// returned as is; otherwise every endpoint is probed and the first to
// answer wins. When no endpoint answers, the handle of the first endpoint
// is returned unverified, so callers must tolerate failing calls.
func (r *Racer[C]) Acquire(ctx context.Context, network Network) C {
	conn, ok := r.cache.Get(network)
	if ok {
		return conn
	}

	endpoints := r.endpoints[network]
	if len(endpoints) == 0 {
		r.log.Error().Str("network", string(network)).Msg("no endpoints configured")
		var zero C
		return zero
	}

	conn, err := r.race(ctx, endpoints)
	if err != nil {
		r.log.Warn().
			Str("network", string(network)).
			Str("endpoint", endpoints[0]).
			Err(err).
			Msg("no endpoint answered, falling back to first endpoint")
		conn = r.dial(endpoints[0])
	} else {
		r.log.Debug().
			Str("network", string(network)).
			Str("endpoint", conn.Endpoint()).
			Msg("endpoint acquired")
	}

	r.cache.Put(network, conn)
	return conn
}

// Invalidate forgets the cached handle of network so the next Acquire races again.
func (r *Racer[C]) Invalidate(network Network) {
	r.cache.Invalidate(network)
}

type probeResult[C Conn] struct {
	conn C
	err  error
}

// race probes all endpoints concurrently and returns the first live handle.
// Losing probes are left running; their results land in the buffered channel.
func (r *Racer[C]) race(ctx context.Context, endpoints []string) (C, error) {
	results := make(chan probeResult[C], len(endpoints))
	for _, endpoint := range endpoints {
		go func(endpoint string) {
			results <- r.probe(ctx, endpoint)
		}(endpoint)
	}

	var errs *multierror.Error
	for range endpoints {
		result := <-results
		if result.err == nil {
			return result.conn, nil
		}
		errs = multierror.Append(errs, result.err)
	}

	var zero C
	return zero, errs.ErrorOrNil()
}

// probe checks one endpoint and rejects it once the timeout elapses, even
// if the underlying call does not return.
func (r *Racer[C]) probe(ctx context.Context, endpoint string) probeResult[C] {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	conn := r.dial(endpoint)
	done := make(chan error, 1)
	go func() {
		done <- conn.Probe(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			return probeResult[C]{err: fmt.Errorf("probe %s failed: %w", endpoint, err)}
		}
		return probeResult[C]{conn: conn}
	case <-ctx.Done():
		return probeResult[C]{err: fmt.Errorf("probe %s timed out: %w", endpoint, ctx.Err())}
	}
}
