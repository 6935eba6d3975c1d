package draw

import (
	"errors"
	"fmt"
)

// Common errors returned by the selector.
var (
	// ErrInvalidPoolSize is returned when the pool has fewer than one candidate.
	ErrInvalidPoolSize = errors.New("draw: cannot select from an empty or negative-size pool")

	// ErrInvariantViolated is returned when a reduction produced a winner outside
	// [1, poolSize]. It always indicates a bug, never bad input.
	ErrInvariantViolated = errors.New("draw: internal invariant violated")

	// ErrUnknownReducer is returned by NewReducer for unrecognized strategy names.
	ErrUnknownReducer = errors.New("draw: unknown reducer")
)

// RangeError reports a winner that fell outside the pool after reduction.
// It matches ErrInvariantViolated with errors.Is.
type RangeError struct {
	Winner   int
	PoolSize int
}

func (e *RangeError) Error() string {
	side := "above"
	if e.Winner < 1 {
		side = "below"
	}
	return fmt.Sprintf("draw: result %s range: %d / %d", side, e.Winner, e.PoolSize)
}

// Unwrap lets errors.Is match ErrInvariantViolated.
func (e *RangeError) Unwrap() error {
	return ErrInvariantViolated
}

// checkRange asserts 1 <= winner <= poolSize.
func checkRange(winner, poolSize int) error {
	if winner < 1 || winner > poolSize {
		return &RangeError{Winner: winner, PoolSize: poolSize}
	}
	return nil
}
