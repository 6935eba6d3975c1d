package draw

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"math/bits"
)

// Reducer strategy constants for configuration.
const (
	ReducerBigInt = "bigint"
	ReducerFold   = "fold"
)

// Reducer maps a digest, read as an unsigned big-endian integer, onto
// [0, modulus). Implementations must agree bit-for-bit with each other.
type Reducer interface {
	// Reduce returns digest mod modulus. modulus must be positive.
	Reduce(digest []byte, modulus uint64) uint64

	// Name returns the strategy name for logging and configuration.
	Name() string
}

// Reducers returns the names of all supported reducers.
func Reducers() []string {
	return []string{ReducerBigInt, ReducerFold}
}

// NewReducer returns the Reducer registered under name.
// An empty name selects ReducerBigInt.
func NewReducer(name string) (Reducer, error) {
	switch name {
	case ReducerBigInt, "":
		return BigIntReducer{}, nil
	case ReducerFold:
		return FoldReducer{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownReducer, name)
	}
}

// BigIntReducer reduces with arbitrary-precision arithmetic.
type BigIntReducer struct{}

// Reduce interprets the digest as a math/big integer and takes the remainder.
func (BigIntReducer) Reduce(digest []byte, modulus uint64) uint64 {
	d := new(big.Int).SetBytes(digest)
	m := new(big.Int).SetUint64(modulus)
	return d.Mod(d, m).Uint64()
}

// Name returns the strategy name.
func (BigIntReducer) Name() string {
	return ReducerBigInt
}

// FoldReducer reduces using only machine words. The digest is consumed as
// big-endian 64-bit words, folding r = (r*2^64 + w) mod n with a 128-by-64
// division; trailing bytes are folded one at a time the same way.
type FoldReducer struct{}

// Reduce folds the digest through the modulus without a big-integer type.
func (FoldReducer) Reduce(digest []byte, modulus uint64) uint64 {
	var r uint64
	i := 0
	for ; i+8 <= len(digest); i += 8 {
		// r < modulus, so the 128-bit dividend never overflows the quotient.
		_, r = bits.Div64(r, binary.BigEndian.Uint64(digest[i:]), modulus)
	}
	for ; i < len(digest); i++ {
		_, r = bits.Div64(r>>56, r<<8|uint64(digest[i]), modulus)
	}
	return r
}

// Name returns the strategy name.
func (FoldReducer) Name() string {
	return ReducerFold
}
