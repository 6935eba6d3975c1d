// Package vectors holds known-answer draws and verifies selectors against them.
//
// A vector pins the winner for a (pool, entropy) pair. Because the digest and
// reduction are fixed, every conforming implementation must reproduce every
// vector exactly, on every run.
package vectors

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// DocumentedEntropy is the entropy string published with the reference draws.
const DocumentedEntropy = "35751.07/8.19.32.41.42.9.12/15455.36/17.33.38.43.49.80/21"

// Errors returned by vector parsing and verification.
var (
	ErrMismatch     = errors.New("vectors: winner mismatch")
	ErrInvalidInput = errors.New("vectors: invalid vector file")
)

// Vector is a known-answer draw.
type Vector struct {
	Name     string `json:"name"`
	Entropy  string `json:"entropy"`
	PoolSize int    `json:"pool"`
	Want     int    `json:"want"`
}

// Documented returns the published reference vectors.
func Documented() []Vector {
	return []Vector{
		{Name: "documented-22", PoolSize: 22, Entropy: DocumentedEntropy, Want: 6},
		{Name: "documented-3489", PoolSize: 3489, Entropy: DocumentedEntropy, Want: 284},
		{Name: "documented-150333", PoolSize: 150333, Entropy: DocumentedEntropy, Want: 34463},
	}
}

// ParseJSON reads a JSON array of {"name", "pool", "entropy", "want"} objects.
// Unnamed vectors are named by position.
func ParseJSON(data []byte) ([]Vector, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidInput)
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidInput)
	}

	var (
		out []Vector
		err error
		idx int
	)
	root.ForEach(func(_, value gjson.Result) bool {
		defer func() { idx++ }()
		for _, field := range []string{"pool", "entropy", "want"} {
			if !value.Get(field).Exists() {
				err = fmt.Errorf("%w: vector %d missing %q", ErrInvalidInput, idx, field)
				return false
			}
		}

		v := Vector{
			Name:     value.Get("name").String(),
			Entropy:  value.Get("entropy").String(),
			PoolSize: int(value.Get("pool").Int()),
			Want:     int(value.Get("want").Int()),
		}
		if v.Name == "" {
			v.Name = fmt.Sprintf("vector-%d", idx)
		}
		out = append(out, v)
		return true
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Dedupe drops later vectors whose name repeats an earlier one.
func Dedupe(vs []Vector) []Vector {
	return lo.UniqBy(vs, func(v Vector) string { return v.Name })
}
