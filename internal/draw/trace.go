package draw

import (
	"encoding/hex"
	"math/big"
)

// Trace records every intermediate value of a draw so a third party can
// recompute it by hand.
type Trace struct {
	Entropy   string `json:"entropy"`
	Digest    string `json:"digest"`
	Decimal   string `json:"decimal"`
	Reducer   string `json:"reducer"`
	PoolSize  int    `json:"pool_size"`
	Remainder uint64 `json:"remainder"`
	Winner    int    `json:"winner"`
}

// Explain performs the draw and returns its Trace. A single-candidate pool
// still reports the digest even though Select skips hashing it.
func (s *Selector) Explain(poolSize int, entropy string) (Trace, error) {
	winner, err := s.Select(poolSize, entropy)
	if err != nil {
		return Trace{}, err
	}

	sum := Digest(entropy)

	return Trace{
		Entropy:   entropy,
		Digest:    hex.EncodeToString(sum[:]),
		Decimal:   new(big.Int).SetBytes(sum[:]).String(),
		Reducer:   s.reducer.Name(),
		PoolSize:  poolSize,
		Remainder: uint64(winner - 1),
		Winner:    winner,
	}, nil
}
