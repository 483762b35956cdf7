package code_test

import (
	"testing"

	"github.com/Time0o/ldpc/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPoly(t *testing.T) {
	m, err := code.FromPoly(15, 15, []int{0, 4, 6, 7, 8})
	require.NoError(t, err)

	if m.N() != 15 {
		t.Errorf("code length mismatch; expected 15, got %d", m.N())
	}
	if m.K() != 15 {
		t.Errorf("parity check count mismatch; expected 15, got %d", m.K())
	}
	if m.Gamma() != 5 {
		t.Errorf("row weight mismatch; expected 5, got %d", m.Gamma())
	}
	if !m.Regular() {
		t.Errorf("cyclic control matrix must be regular")
	}

	// The polynomial x^8+x^7+x^6+x^4+1 expands to taps {0, 1, 2, 4, 8} and
	// every further row is the previous one rotated right by one.
	golden := []struct {
		i    int
		cols []int
	}{
		{i: 0, cols: []int{0, 1, 2, 4, 8}},
		{i: 1, cols: []int{1, 2, 3, 5, 9}},
		{i: 7, cols: []int{0, 7, 8, 9, 11}},
		{i: 14, cols: []int{0, 1, 3, 7, 14}},
	}
	for _, g := range golden {
		assert.Equal(t, g.cols, m.Rows(g.i), "row %d", g.i)
	}
	assert.Equal(t, []int{1, 2, 3, 10, 14}, m.Cols(3))
}

// Row and column adjacency must describe the same matrix: j ∈ Rows(i) iff
// i ∈ Cols(j).
func TestAdjacencyDuality(t *testing.T) {
	m, err := code.FromPoly(15, 15, []int{0, 4, 6, 7, 8})
	require.NoError(t, err)

	for i := 0; i < m.K(); i++ {
		for j := 0; j < m.N(); j++ {
			inRow := contains(m.Rows(i), j)
			inCol := contains(m.Cols(j), i)
			if inRow != inCol {
				t.Fatalf("adjacency mismatch at row %d, column %d; row says %t, column says %t", i, j, inRow, inCol)
			}
			if inRow != (m.Bit(i, j) == 1) {
				t.Fatalf("Bit mismatch at row %d, column %d", i, j)
			}
		}
	}
}

func TestNewIrregular(t *testing.T) {
	m, err := code.New([][]uint8{
		{1, 1, 0, 1},
		{0, 1, 1, 0},
		{1, 0, 1, 1},
	})
	require.NoError(t, err)

	assert.False(t, m.Regular())
	assert.Equal(t, 3, m.Gamma())
	assert.Equal(t, []int{0, 2}, m.Cols(0))
}

func TestNewInvalid(t *testing.T) {
	golden := []struct {
		name string
		rows [][]uint8
	}{
		{name: "no rows", rows: nil},
		{name: "no columns", rows: [][]uint8{{}}},
		{name: "ragged row", rows: [][]uint8{{1, 0, 1}, {1, 1}}},
		{name: "non-binary entry", rows: [][]uint8{{1, 2, 0}}},
		{name: "all-zero row", rows: [][]uint8{{1, 0, 1}, {0, 0, 0}}},
	}
	for _, g := range golden {
		t.Run(g.name, func(t *testing.T) {
			_, err := code.New(g.rows)
			require.Error(t, err)
		})
	}
}

func TestFromPolyInvalid(t *testing.T) {
	golden := []struct {
		name string
		n, k int
		exps []int
	}{
		{name: "bad length", n: 0, k: 5, exps: []int{0, 1}},
		{name: "bad row count", n: 15, k: 0, exps: []int{0, 1}},
		{name: "no exponents", n: 15, k: 15, exps: nil},
		{name: "negative exponent", n: 15, k: 15, exps: []int{0, -2}},
		{name: "exponent out of range", n: 15, k: 15, exps: []int{0, 15}},
		{name: "duplicate exponent", n: 15, k: 15, exps: []int{0, 4, 4}},
	}
	for _, g := range golden {
		t.Run(g.name, func(t *testing.T) {
			_, err := code.FromPoly(g.n, g.k, g.exps)
			require.Error(t, err)
		})
	}
}

func contains(s []int, x int) bool {
	for _, v := range s {
		if v == x {
			return true
		}
	}
	return false
}
