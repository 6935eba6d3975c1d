// Package audit measures how evenly a selector spreads wins across a pool.
//
// Run draws many winners with fresh entropy and compares each candidate's
// count against the expected share. Determinism repeats one draw and checks
// that the winner never changes.
package audit

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/ro"
)

// Errors returned by audits.
var (
	ErrNotUniform       = errors.New("audit: distribution outside tolerance")
	ErrNondeterministic = errors.New("audit: repeated draw changed winner")
	ErrInvalidOptions   = errors.New("audit: invalid options")
	ErrOutOfRange       = errors.New("audit: winner outside pool")
)

// ctxCheckInterval is how many draws run between context checks.
const ctxCheckInterval = 1024

// Picker draws a winner. *draw.Selector satisfies it.
type Picker interface {
	Select(poolSize int, entropy string) (int, error)
	Name() string
}

// Options configures a distribution audit.
type Options struct {
	// Source returns the entropy for each draw. Defaults to random UUIDs.
	Source    func() string
	PoolSize  int
	Draws     int
	Tolerance float64
}

func (o Options) validate() error {
	switch {
	case o.PoolSize < 1:
		return fmt.Errorf("%w: pool must be >= 1 (got %d)", ErrInvalidOptions, o.PoolSize)
	case o.Draws < 1:
		return fmt.Errorf("%w: draws must be >= 1 (got %d)", ErrInvalidOptions, o.Draws)
	case o.Tolerance < 0 || o.Tolerance >= 1:
		return fmt.Errorf("%w: tolerance must be in [0, 1) (got %g)", ErrInvalidOptions, o.Tolerance)
	}
	return nil
}

// Report summarizes a distribution audit.
type Report struct {
	Reducer      string  `json:"reducer"`
	Counts       []int   `json:"counts"`
	Expected     float64 `json:"expected"`
	MaxDeviation float64 `json:"max_deviation"`
	ChiSquare    float64 `json:"chi_square"`
	Tolerance    float64 `json:"tolerance"`
	PoolSize     int     `json:"pool"`
	Draws        int     `json:"draws"`
	Min          int     `json:"min"`
	Max          int     `json:"max"`
	Pass         bool    `json:"pass"`
}

// Run draws opts.Draws winners and reports their spread. The report is
// returned together with ErrNotUniform when any candidate's count deviates
// from the expected share by more than opts.Tolerance.
func Run(ctx context.Context, p Picker, opts Options) (Report, error) {
	if err := opts.validate(); err != nil {
		return Report{}, err
	}
	if opts.Source == nil {
		opts.Source = uuid.NewString
	}

	counts := make([]int, opts.PoolSize)
	winners := draws(p, opts)

	escaped, _, err := ro.CollectWithContext(ctx, ro.Pipe2(
		winners,
		ro.DoOnNext(func(w int) {
			if w >= 1 && w <= opts.PoolSize {
				counts[w-1]++
			}
		}),
		ro.Filter(func(w int) bool { return w < 1 || w > opts.PoolSize }),
	))
	if err != nil {
		return Report{}, err
	}
	if len(escaped) > 0 {
		return Report{}, fmt.Errorf("%w: %d draws, first %d of %d", ErrOutOfRange, len(escaped), escaped[0], opts.PoolSize)
	}

	report := summarize(counts, opts)
	report.Reducer = p.Name()

	logger().Debug().
		Str("reducer", report.Reducer).
		Int("pool", report.PoolSize).
		Int("draws", report.Draws).
		Float64("max_deviation", report.MaxDeviation).
		Float64("chi_square", report.ChiSquare).
		Bool("pass", report.Pass).
		Msg("audit finished")

	if !report.Pass {
		return report, fmt.Errorf("%w: max deviation %.4f > %.4f", ErrNotUniform, report.MaxDeviation, report.Tolerance)
	}
	return report, nil
}

// draws emits one winner per draw and stops early when the subscriber's
// context is canceled.
func draws(p Picker, opts Options) ro.Observable[int] {
	return ro.NewObservableWithContext(func(ctx context.Context, observer ro.Observer[int]) ro.Teardown {
		for i := 0; i < opts.Draws; i++ {
			if i%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					observer.ErrorWithContext(ctx, err)
					return func() {}
				}
			}

			w, err := p.Select(opts.PoolSize, opts.Source())
			if err != nil {
				observer.ErrorWithContext(ctx, fmt.Errorf("audit: draw %d: %w", i, err))
				return func() {}
			}
			observer.NextWithContext(ctx, w)
		}

		observer.CompleteWithContext(ctx)
		return func() {}
	})
}

func summarize(counts []int, opts Options) Report {
	expected := float64(opts.Draws) / float64(opts.PoolSize)

	deviations := lo.Map(counts, func(n int, _ int) float64 {
		return math.Abs(float64(n)-expected) / expected
	})
	chi := lo.SumBy(counts, func(n int) float64 {
		d := float64(n) - expected
		return d * d / expected
	})
	maxDev := lo.Max(deviations)

	return Report{
		Counts:       counts,
		Expected:     expected,
		MaxDeviation: maxDev,
		ChiSquare:    chi,
		Tolerance:    opts.Tolerance,
		PoolSize:     opts.PoolSize,
		Draws:        opts.Draws,
		Min:          lo.Min(counts),
		Max:          lo.Max(counts),
		Pass:         maxDev <= opts.Tolerance,
	}
}

// Determinism draws (poolSize, entropy) repeat times and returns the winner.
// It fails with ErrNondeterministic if any repetition disagrees with the first.
func Determinism(p Picker, poolSize int, entropy string, repeat int) (int, error) {
	if repeat < 1 {
		repeat = 1
	}

	first, err := p.Select(poolSize, entropy)
	if err != nil {
		return 0, err
	}
	for i := 1; i < repeat; i++ {
		got, err := p.Select(poolSize, entropy)
		if err != nil {
			return 0, err
		}
		if got != first {
			return first, fmt.Errorf("%w: repeat %d got %d, first %d", ErrNondeterministic, i+1, got, first)
		}
	}
	return first, nil
}

// SequenceSource returns a Source yielding "prefix/0", "prefix/1", ... so an
// audit can be replayed exactly.
func SequenceSource(prefix string) func() string {
	var i uint64
	return func() string {
		s := fmt.Sprintf("%s/%d", prefix, i)
		i++
		return s
	}
}
