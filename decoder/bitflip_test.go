package decoder

import (
	"testing"

	"github.com/Time0o/ldpc/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The row weights of WBF are the least reliable sample of each check; the
// per-edge weights of IMWBF exclude the target column from the minimum.
func TestBitFlipWeights(t *testing.T) {
	m := mlgCode(t)
	in := repeat(1.0, m.N())
	in[3] = -0.9

	wbf := NewWeightedBitFlip(m, 10)
	wbf.initWeights(in)
	for i := 0; i < m.K(); i++ {
		want := 1.0
		if contains(m.Rows(i), 3) {
			want = 0.9
		}
		assert.Equal(t, want, wbf.w[i], "row %d", i)
	}

	imwbf := NewImprovedBitFlip(m, 10, 0.2)
	imwbf.initWeights(in)
	for i := 0; i < m.K(); i++ {
		for _, j := range m.Rows(i) {
			// Excluding the sole weak column from its own check restores the
			// full reliability; every other edge of such a check sees it.
			want := 1.0
			if j != 3 && contains(m.Rows(i), 3) {
				want = 0.9
			}
			assert.Equal(t, want, imwbf.we[i][j], "row %d, column %d", i, j)
		}
	}
}

// The plain variant flips on exact ties of the integer metric; the weighted
// variants flip everything within flipEps of the maximum.
func TestBitFlipTies(t *testing.T) {
	m, err := code.New([][]uint8{{1, 1, 1, 1}})
	require.NoError(t, err)

	bf := NewBitFlip(m, 10)
	copy(bf.e, []float64{2, 1, 2, 0})
	bf.flip()
	assert.Equal(t, []uint8{1, 0, 1, 0}, bf.out)

	wbf := NewWeightedBitFlip(m, 10)
	copy(wbf.e, []float64{1.0, 0.9995, 0.99, 0.5})
	wbf.flip()
	assert.Equal(t, []uint8{1, 1, 0, 0}, wbf.out)
}

func contains(s []int, x int) bool {
	for _, v := range s {
		if v == x {
			return true
		}
	}
	return false
}
