package api

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

type cacheEntry[C any] struct {
	conn     C
	acquired time.Time
}

// Cache keeps at most one connection per network for a fixed TTL.
// Writes are last-write-wins; expired entries are replaced lazily.
type Cache[C any] struct {
	mu      sync.Mutex
	clock   clock.Clock
	ttl     time.Duration
	entries map[Network]cacheEntry[C]
}

// NewCache creates an empty cache reading time from clk.
func NewCache[C any](clk clock.Clock, ttl time.Duration) *Cache[C] {
	return &Cache[C]{
		clock:   clk,
		ttl:     ttl,
		entries: make(map[Network]cacheEntry[C]),
	}
}

// Get returns the cached connection if it is younger than the TTL.
func (c *Cache[C]) Get(network Network) (C, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[network]
	if !ok || c.clock.Since(entry.acquired) >= c.ttl {
		var zero C
		return zero, false
	}
	return entry.conn, true
}

// Put stores conn for network, overwriting any previous entry.
func (c *Cache[C]) Put(network Network, conn C) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[network] = cacheEntry[C]{
		conn:     conn,
		acquired: c.clock.Now(),
	}
}

// Invalidate drops the entry of network.
func (c *Cache[C]) Invalidate(network Network) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, network)
}
