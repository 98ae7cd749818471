package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom_Ranges(t *testing.T) {
	r := newRandom(3)

	for range 500 {
		n := r.uint64n(5)
		assert.GreaterOrEqual(t, n, uint64(1))
		assert.LessOrEqual(t, n, uint64(5))

		i := r.int64n(10)
		assert.GreaterOrEqual(t, i, int64(0))
		assert.Less(t, i, int64(10))

		fr := r.fraction()
		assert.GreaterOrEqual(t, fr, 0.0)
		assert.Less(t, fr, 1.0)
	}
}

func TestRandom_SameSeedSameStream(t *testing.T) {
	a, b := newRandom(11), newRandom(11)

	pa, pb := make([]byte, 16), make([]byte, 16)

	n, err := a.Read(pa)
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	_, err = b.Read(pb)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)

	assert.Equal(t, a.uint64n(1<<40), b.uint64n(1<<40))
	assert.Equal(t, a.bool(), b.bool())
}

func TestRandom_BoolsVary(t *testing.T) {
	r := newRandom(5)

	seen := map[bool]bool{}
	for range 64 {
		seen[r.bool()] = true
	}

	assert.Len(t, seen, 2)
}
