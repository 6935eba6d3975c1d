// Package draw deterministically selects a winner from a pool of candidates.
//
// A draw hashes the caller's entropy string with SHA-512, reads the 64-byte
// digest as an unsigned big-endian integer and reduces it modulo the pool
// size. Winners are 1-based:
//
//	entropy -> SHA-512 -> D -> D mod poolSize -> +1
//
// The same (poolSize, entropy) pair yields the same winner on every platform.
// Entropy is hashed as its UTF-8 bytes with no salt. Sourcing entropy is the
// caller's responsibility.
//
// Available reducers:
//   - bigint: math/big remainder (default)
//   - fold: machine-word folding, no big-integer type
package draw

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Selector draws winners using a fixed Reducer. It is immutable and safe for
// concurrent use.
type Selector struct {
	reducer Reducer
	log     zerolog.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithReducer sets the reduction strategy. A nil reducer is ignored.
func WithReducer(r Reducer) Option {
	return func(s *Selector) {
		if r != nil {
			s.reducer = r
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Selector) {
		s.log = l.With().Str("component", "draw").Logger()
	}
}

// New creates a Selector. Defaults to BigIntReducer and a no-op logger.
func New(opts ...Option) *Selector {
	s := &Selector{
		reducer: BigIntReducer{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSelector = New()

// SelectWinner returns the 1-based winner for a pool of poolSize candidates.
// It fails with ErrInvalidPoolSize when poolSize < 1. Empty entropy is legal.
func SelectWinner(poolSize int, entropy string) (int, error) {
	return defaultSelector.Select(poolSize, entropy)
}

// Select returns the 1-based winner in [1, poolSize].
// Returns ErrInvalidPoolSize if poolSize < 1, or an error matching
// ErrInvariantViolated if the reduction escaped the pool.
func (s *Selector) Select(poolSize int, entropy string) (int, error) {
	if poolSize < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPoolSize, poolSize)
	}

	// well it can only be this one
	if poolSize == 1 {
		return 1, nil
	}

	sum := Digest(entropy)
	winner := int(s.reducer.Reduce(sum[:], uint64(poolSize))) + 1

	if err := checkRange(winner, poolSize); err != nil {
		s.log.Error().
			Err(err).
			Str("reducer", s.reducer.Name()).
			Int("pool_size", poolSize).
			Msg("reduction produced out-of-range winner")
		return 0, err
	}

	s.log.Debug().
		Str("reducer", s.reducer.Name()).
		Int("pool_size", poolSize).
		Int("winner", winner).
		Msg("winner selected")

	return winner, nil
}

// Name returns the reducer strategy name.
func (s *Selector) Name() string {
	return s.reducer.Name()
}
