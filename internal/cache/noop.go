package cache

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// noopCache stores nothing. Every Get misses and every Set succeeds.
type noopCache struct {
	log    zerolog.Logger
	closed atomic.Bool
}

func newNoopCache() *noopCache {
	log := logger().With().Str("backend", "noop").Logger()
	log.Debug().Str("note", "caching is disabled").Msg("noop cache created")
	return &noopCache{log: log}
}

// Get always returns ErrNotFound.
func (c *noopCache) Get(_ context.Context, _ string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	return nil, ErrNotFound
}

// Set is a no-op.
func (c *noopCache) Set(_ context.Context, _ string, _ []byte) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Close marks the cache as closed. It is idempotent.
func (c *noopCache) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.log.Debug().Msg("noop cache closed")
	return nil
}

// Stats returns zeroed cache statistics.
func (c *noopCache) Stats() Stats {
	return Stats{}
}

var (
	_ Cache         = (*noopCache)(nil)
	_ StatsProvider = (*noopCache)(nil)
)
