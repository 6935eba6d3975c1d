package draw_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarluq/fairdraw/internal/cache"
	"github.com/omarluq/fairdraw/internal/draw"
)

// mapCache is a synchronous cache.Cache for deterministic hit/miss assertions.
type mapCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	gets   int
	hits   int
	closed bool
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, cache.ErrClosed
	}
	m.gets++
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrNotFound
	}
	m.hits++
	return v, nil
}

func (m *mapCache) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return cache.ErrClosed
	}
	m.data[key] = value
	return nil
}

func (m *mapCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func TestCachedSelector_MatchesUncached(t *testing.T) {
	t.Parallel()

	mc := newMapCache()
	cs := draw.NewCached(draw.New(), mc)
	ctx := context.Background()

	for range 3 {
		got, err := cs.Select(ctx, 150333, documentedEntropy)
		require.NoError(t, err)
		assert.Equal(t, 34463, got)
	}

	assert.Equal(t, 3, mc.gets)
	assert.Equal(t, 2, mc.hits)
	assert.Equal(t, []byte("34463"), mc.data[cs.CacheKey(150333, documentedEntropy)])
}

func TestCachedSelector_KeyIncludesReducerAndPool(t *testing.T) {
	t.Parallel()

	mc := newMapCache()
	bigint := draw.NewCached(draw.New(), mc)
	fold := draw.NewCached(draw.New(draw.WithReducer(draw.FoldReducer{})), mc)

	assert.Equal(t, "bigint:22:abc", bigint.CacheKey(22, "abc"))
	assert.Equal(t, "fold:22:abc", fold.CacheKey(22, "abc"))
	assert.NotEqual(t, bigint.CacheKey(22, "abc"), bigint.CacheKey(23, "abc"))
}

func TestCachedSelector_CorruptEntryRecomputed(t *testing.T) {
	t.Parallel()

	mc := newMapCache()
	cs := draw.NewCached(draw.New(), mc)
	ctx := context.Background()

	for _, bad := range []string{"999", "0", "not-a-number"} {
		mc.data[cs.CacheKey(22, documentedEntropy)] = []byte(bad)

		got, err := cs.Select(ctx, 22, documentedEntropy)
		require.NoError(t, err)
		assert.Equal(t, 6, got)
		assert.Equal(t, []byte("6"), mc.data[cs.CacheKey(22, documentedEntropy)])
	}
}

func TestCachedSelector_ClosedCacheFallsThrough(t *testing.T) {
	t.Parallel()

	mc := newMapCache()
	require.NoError(t, mc.Close())
	cs := draw.NewCached(draw.New(), mc)

	got, err := cs.Select(context.Background(), 3489, documentedEntropy)
	require.NoError(t, err)
	assert.Equal(t, 284, got)
}

func TestCachedSelector_InvalidPool(t *testing.T) {
	t.Parallel()

	mc := newMapCache()
	cs := draw.NewCached(draw.New(), mc)

	_, err := cs.Select(context.Background(), -5, "x")
	require.ErrorIs(t, err, draw.ErrInvalidPoolSize)
	assert.Zero(t, mc.gets, "invalid pools never reach the cache")
}

func TestCachedSelector_Ristretto(t *testing.T) {
	t.Parallel()

	c, err := cache.New(&cache.Config{Mode: cache.ModeSingle, Ristretto: cache.DefaultRistrettoConfig()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	cs := draw.NewCached(draw.New(draw.WithReducer(draw.FoldReducer{})), c)
	for range 10 {
		got, err := cs.Select(context.Background(), 22, documentedEntropy)
		require.NoError(t, err)
		assert.Equal(t, 6, got)
	}
	assert.Equal(t, draw.ReducerFold, cs.Name())
}
