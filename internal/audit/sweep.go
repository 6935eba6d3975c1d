package audit

import (
	"context"
	"errors"
	"fmt"
)

// Sweep audits each pool size with perCandidate expected wins per index.
// Every pool is audited even after a failure; the returned error joins the
// individual failures.
func Sweep(ctx context.Context, p Picker, pools []int, perCandidate int, tolerance float64, source func() string) ([]Report, error) {
	if perCandidate < 1 {
		return nil, fmt.Errorf("%w: per-candidate draws must be >= 1 (got %d)", ErrInvalidOptions, perCandidate)
	}

	reports := make([]Report, 0, len(pools))
	var errs []error

	for _, pool := range pools {
		report, err := Run(ctx, p, Options{
			PoolSize:  pool,
			Draws:     pool * perCandidate,
			Tolerance: tolerance,
			Source:    source,
		})
		if err != nil && !errors.Is(err, ErrNotUniform) {
			return reports, fmt.Errorf("audit: pool %d: %w", pool, err)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("pool %d: %w", pool, err))
		}
		reports = append(reports, report)
	}

	return reports, errors.Join(errs...)
}
