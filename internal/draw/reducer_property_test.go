package draw_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/omarluq/fairdraw/internal/draw"
)

// Property-based tests for reducers and the selector

func TestReducers_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	// Property 1: fold and bigint agree on arbitrary digests and moduli
	properties.Property("fold matches bigint", prop.ForAll(
		func(digest []byte, modulus uint64) bool {
			want := draw.BigIntReducer{}.Reduce(digest, modulus)
			got := draw.FoldReducer{}.Reduce(digest, modulus)
			return want == got
		},
		gen.SliceOf(gen.UInt8()),
		gen.UInt64Range(1, math.MaxUint64),
	))

	// Property 2: fold and bigint agree on real SHA-512 digests with small pools
	properties.Property("fold matches bigint on entropy digests", prop.ForAll(
		func(entropy string, poolSize uint64) bool {
			sum := draw.Digest(entropy)
			return draw.BigIntReducer{}.Reduce(sum[:], poolSize) == draw.FoldReducer{}.Reduce(sum[:], poolSize)
		},
		gen.AnyString(),
		gen.UInt64Range(1, 1_000_000),
	))

	// Property 3: remainder is always below the modulus
	properties.Property("remainder below modulus", prop.ForAll(
		func(digest []byte, modulus uint64) bool {
			return draw.FoldReducer{}.Reduce(digest, modulus) < modulus
		},
		gen.SliceOf(gen.UInt8()),
		gen.UInt64Range(1, math.MaxUint64),
	))

	// Property 4: hex rendering parsed base 16 equals raw big-endian bytes
	properties.Property("hex path equals byte path", prop.ForAll(
		func(entropy string) bool {
			fromHex, ok := new(big.Int).SetString(draw.DigestHex(entropy), 16)
			if !ok {
				return false
			}
			sum := draw.Digest(entropy)
			return fromHex.Cmp(new(big.Int).SetBytes(sum[:])) == 0 && fromHex.Sign() >= 0
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestSelector_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Property 1: winner is always within [1, poolSize]
	properties.Property("winner within pool", prop.ForAll(
		func(poolSize int, entropy string) bool {
			got, err := draw.SelectWinner(poolSize, entropy)
			return err == nil && got >= 1 && got <= poolSize
		},
		gen.IntRange(1, 1_000_000),
		gen.AnyString(),
	))

	// Property 2: repeated draws return the same winner
	properties.Property("deterministic", prop.ForAll(
		func(poolSize int, entropy string) bool {
			first, err := draw.SelectWinner(poolSize, entropy)
			if err != nil {
				return false
			}
			for range 100 {
				again, err := draw.SelectWinner(poolSize, entropy)
				if err != nil || again != first {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 999_999),
		gen.Identifier(),
	))

	// Property 3: single-candidate pools always pick 1
	properties.Property("trivial pool picks 1", prop.ForAll(
		func(entropy string) bool {
			got, err := draw.SelectWinner(1, entropy)
			return err == nil && got == 1
		},
		gen.AnyString(),
	))

	// Property 4: winner equals digest mod poolSize plus one
	properties.Property("winner is remainder plus one", prop.ForAll(
		func(poolSize int, entropy string) bool {
			got, err := draw.SelectWinner(poolSize, entropy)
			if err != nil {
				return false
			}
			sum := draw.Digest(entropy)
			d := new(big.Int).SetBytes(sum[:])
			r := d.Mod(d, big.NewInt(int64(poolSize)))
			return int64(got) == r.Int64()+1
		},
		gen.IntRange(2, 1<<30),
		gen.AnyString(),
	))

	// Property 5: non-positive pools are rejected
	properties.Property("non-positive pool rejected", prop.ForAll(
		func(poolSize int) bool {
			_, err := draw.SelectWinner(poolSize, "x")
			return err != nil
		},
		gen.IntRange(-1_000_000, 0),
	))

	properties.TestingRun(t)
}
