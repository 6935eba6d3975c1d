package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarluq/fairdraw/internal/audit"
	"github.com/omarluq/fairdraw/internal/draw"
)

func TestRun_TenCandidatesWithinFivePercent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping million-draw audit in short mode")
	}
	t.Parallel()

	report, err := audit.Run(context.Background(), draw.New(), audit.Options{
		PoolSize:  10,
		Draws:     1_000_000,
		Tolerance: 0.05,
	})
	require.NoError(t, err)

	assert.True(t, report.Pass)
	assert.Equal(t, "bigint", report.Reducer)
	assert.InDelta(t, 100_000, report.Expected, 0)
	assert.Len(t, report.Counts, 10)
	assert.GreaterOrEqual(t, report.Min, 95_000)
	assert.LessOrEqual(t, report.Max, 105_000)

	total := 0
	for _, n := range report.Counts {
		total += n
	}
	assert.Equal(t, 1_000_000, total)
}

func TestRun_SequenceSourceIsReplayable(t *testing.T) {
	t.Parallel()

	opts := audit.Options{PoolSize: 7, Draws: 7000, Tolerance: 0.2}

	opts.Source = audit.SequenceSource("replay")
	first, err := audit.Run(context.Background(), draw.New(), opts)
	require.NoError(t, err)

	opts.Source = audit.SequenceSource("replay")
	second, err := audit.Run(context.Background(), draw.New(draw.WithReducer(draw.FoldReducer{})), opts)
	require.NoError(t, err)

	assert.Equal(t, first.Counts, second.Counts)
	assert.Equal(t, "fold", second.Reducer)
}

func TestRun_SingleCandidate(t *testing.T) {
	t.Parallel()

	report, err := audit.Run(context.Background(), draw.New(), audit.Options{PoolSize: 1, Draws: 50})
	require.NoError(t, err)
	assert.Equal(t, []int{50}, report.Counts)
	assert.Zero(t, report.MaxDeviation)
	assert.Zero(t, report.ChiSquare)
}

func TestRun_InvalidOptions(t *testing.T) {
	t.Parallel()

	tests := map[string]audit.Options{
		"zero pool":      {PoolSize: 0, Draws: 10},
		"zero draws":     {PoolSize: 3, Draws: 0},
		"negative tol":   {PoolSize: 3, Draws: 10, Tolerance: -0.1},
		"tolerance of 1": {PoolSize: 3, Draws: 10, Tolerance: 1},
	}

	for name, opts := range tests {
		_, err := audit.Run(context.Background(), draw.New(), opts)
		assert.ErrorIs(t, err, audit.ErrInvalidOptions, name)
	}
}

// constPicker always picks the same winner.
type constPicker struct{ winner int }

func (c constPicker) Select(_ int, _ string) (int, error) { return c.winner, nil }
func (c constPicker) Name() string                         { return "const" }

func TestRun_DetectsBias(t *testing.T) {
	t.Parallel()

	report, err := audit.Run(context.Background(), constPicker{winner: 1}, audit.Options{
		PoolSize:  4,
		Draws:     400,
		Tolerance: 0.2,
		Source:    audit.SequenceSource("bias"),
	})
	require.ErrorIs(t, err, audit.ErrNotUniform)
	assert.False(t, report.Pass)
	assert.Equal(t, []int{400, 0, 0, 0}, report.Counts)
	assert.InDelta(t, 3.0, report.MaxDeviation, 1e-9)
	assert.InDelta(t, 1200.0, report.ChiSquare, 1e-9)
}

func TestRun_DetectsOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := audit.Run(context.Background(), constPicker{winner: 9}, audit.Options{PoolSize: 4, Draws: 10})
	require.ErrorIs(t, err, audit.ErrOutOfRange)
}

// failingPicker always returns err.
type failingPicker struct{ err error }

func (f failingPicker) Select(_ int, _ string) (int, error) { return 0, f.err }
func (f failingPicker) Name() string                         { return "failing" }

func TestRun_PropagatesSelectError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := audit.Run(context.Background(), failingPicker{err: boom}, audit.Options{PoolSize: 4, Draws: 10})
	require.ErrorIs(t, err, boom)
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := audit.Run(ctx, draw.New(), audit.Options{PoolSize: 10, Draws: 1_000_000})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDeterminism(t *testing.T) {
	t.Parallel()

	winner, err := audit.Determinism(draw.New(), 22, "35751.07/8.19.32.41.42.9.12/15455.36/17.33.38.43.49.80/21", 100)
	require.NoError(t, err)
	assert.Equal(t, 6, winner)

	_, err = audit.Determinism(draw.New(), 0, "x", 3)
	require.ErrorIs(t, err, draw.ErrInvalidPoolSize)
}

// alternatingPicker flips between two winners.
type alternatingPicker struct{ n int }

func (a *alternatingPicker) Select(_ int, _ string) (int, error) {
	a.n++
	return a.n%2 + 1, nil
}
func (a *alternatingPicker) Name() string { return "alternating" }

func TestDeterminism_Detects(t *testing.T) {
	t.Parallel()

	_, err := audit.Determinism(&alternatingPicker{}, 2, "x", 5)
	require.ErrorIs(t, err, audit.ErrNondeterministic)
	assert.Contains(t, err.Error(), "repeat 2")
}

func TestSweep_VaryingPools(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping sweep in short mode")
	}
	t.Parallel()

	pools := []int{1, 2, 3, 5, 9, 20, 77, 150}
	reports, err := audit.Sweep(context.Background(), draw.New(), pools, 1000, 0.2, nil)
	require.NoError(t, err)
	require.Len(t, reports, len(pools))

	for i, r := range reports {
		assert.Equal(t, pools[i], r.PoolSize)
		assert.Equal(t, pools[i]*1000, r.Draws)
		assert.True(t, r.Pass, "pool %d", r.PoolSize)
	}
}

func TestSweep_CollectsFailures(t *testing.T) {
	t.Parallel()

	reports, err := audit.Sweep(context.Background(), constPicker{winner: 1}, []int{1, 2, 3}, 10, 0.1, nil)
	require.ErrorIs(t, err, audit.ErrNotUniform)
	require.Len(t, reports, 3)
	assert.True(t, reports[0].Pass)
	assert.False(t, reports[1].Pass)
	assert.Contains(t, err.Error(), "pool 2")
	assert.Contains(t, err.Error(), "pool 3")

	_, err = audit.Sweep(context.Background(), draw.New(), []int{2}, 0, 0.1, nil)
	require.ErrorIs(t, err, audit.ErrInvalidOptions)
}
