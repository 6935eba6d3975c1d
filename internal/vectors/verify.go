package vectors

import (
	"errors"
	"fmt"
)

// Picker draws a winner. *draw.Selector satisfies it.
type Picker interface {
	Select(poolSize int, entropy string) (int, error)
	Name() string
}

// Result is the outcome of verifying one vector with one picker.
type Result struct {
	Err     error
	Reducer string
	Vector
	Got     int
	Repeats int
}

// OK reports whether every repetition reproduced the expected winner.
func (r Result) OK() bool {
	return r.Err == nil
}

// Verify draws each vector repeat times with p. The returned error joins every
// failure and matches ErrMismatch when any winner differed.
func Verify(p Picker, vs []Vector, repeat int) ([]Result, error) {
	if repeat < 1 {
		repeat = 1
	}

	results := make([]Result, 0, len(vs))
	var errs []error

	for _, v := range vs {
		res := verifyOne(p, v, repeat)
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
		results = append(results, res)
	}

	return results, errors.Join(errs...)
}

func verifyOne(p Picker, v Vector, repeat int) Result {
	res := Result{Vector: v, Reducer: p.Name()}

	for i := 0; i < repeat; i++ {
		got, err := p.Select(v.PoolSize, v.Entropy)
		res.Repeats = i + 1
		if err != nil {
			res.Err = fmt.Errorf("vector %s (%s): %w", v.Name, p.Name(), err)
			return res
		}
		if i == 0 {
			res.Got = got
		}
		if got != v.Want {
			res.Got = got
			res.Err = fmt.Errorf("%w: vector %s (%s) pool %d: got %d, want %d (repeat %d)",
				ErrMismatch, v.Name, p.Name(), v.PoolSize, got, v.Want, i+1)
			return res
		}
	}

	return res
}
