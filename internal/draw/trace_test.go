package draw_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarluq/fairdraw/internal/draw"
)

func TestExplain(t *testing.T) {
	t.Parallel()

	for _, sel := range allSelectors() {
		tr, err := sel.Explain(3489, documentedEntropy)
		require.NoError(t, err)

		assert.Equal(t, 284, tr.Winner)
		assert.Equal(t, uint64(283), tr.Remainder)
		assert.Equal(t, 3489, tr.PoolSize)
		assert.Equal(t, documentedEntropy, tr.Entropy)
		assert.Equal(t, sel.Name(), tr.Reducer)
		assert.Len(t, tr.Digest, 128)
		assert.Equal(t, draw.DigestHex(documentedEntropy), tr.Digest)

		dec, ok := new(big.Int).SetString(tr.Decimal, 10)
		require.True(t, ok)
		hex, ok := new(big.Int).SetString(tr.Digest, 16)
		require.True(t, ok)
		assert.Equal(t, 0, dec.Cmp(hex))

		mod := new(big.Int).Mod(dec, big.NewInt(int64(tr.PoolSize)))
		assert.Equal(t, tr.Remainder, mod.Uint64())
	}
}

func TestExplain_TrivialPool(t *testing.T) {
	t.Parallel()

	tr, err := draw.New().Explain(1, "")
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Winner)
	assert.Equal(t, uint64(0), tr.Remainder)
	assert.Equal(t, draw.DigestHex(""), tr.Digest)
}

func TestExplain_InvalidPool(t *testing.T) {
	t.Parallel()

	_, err := draw.New().Explain(0, "x")
	assert.ErrorIs(t, err, draw.ErrInvalidPoolSize)
}
