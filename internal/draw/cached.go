package draw

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/omarluq/fairdraw/internal/cache"
)

// CachedSelector memoises draws so repeated (poolSize, entropy) pairs skip
// hashing. Cache failures never change the result; they fall through to a
// fresh draw.
type CachedSelector struct {
	sel   *Selector
	cache cache.Cache
}

// NewCached wraps sel with the given cache backend.
func NewCached(sel *Selector, c cache.Cache) *CachedSelector {
	return &CachedSelector{sel: sel, cache: c}
}

// Select returns the same winner as the wrapped Selector.
func (c *CachedSelector) Select(ctx context.Context, poolSize int, entropy string) (int, error) {
	if poolSize < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPoolSize, poolSize)
	}

	key := c.key(poolSize, entropy)

	data, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		if winner, convErr := strconv.Atoi(string(data)); convErr == nil && checkRange(winner, poolSize) == nil {
			return winner, nil
		}
		c.sel.log.Warn().Str("key", key).Msg("discarding corrupt cached draw")
	case !errors.Is(err, cache.ErrNotFound):
		c.sel.log.Debug().Err(err).Msg("draw cache unavailable")
	}

	winner, err := c.sel.Select(poolSize, entropy)
	if err != nil {
		return 0, err
	}

	if err := c.cache.Set(ctx, key, []byte(strconv.Itoa(winner))); err != nil {
		c.sel.log.Debug().Err(err).Msg("draw cache set failed")
	}

	return winner, nil
}

// Name returns the wrapped reducer strategy name.
func (c *CachedSelector) Name() string {
	return c.sel.Name()
}

func (c *CachedSelector) key(poolSize int, entropy string) string {
	return c.sel.Name() + ":" + strconv.Itoa(poolSize) + ":" + entropy
}
