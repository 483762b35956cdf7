package decoder

import (
	"fmt"
	"math"

	"github.com/Time0o/ldpc/code"
)

// A MinSum decoder propagates variable-to-check messages Q and
// check-to-variable messages R along the edges of the control matrix,
// approximating each check's belief by the two smallest incoming magnitudes
// and the parity of the incoming signs. The normalized variant scales the
// magnitudes by 1/α, the offset variant lowers them by α with a floor at
// zero.
type MinSum struct {
	mat     *code.Matrix
	maxIter int
	alpha   float64
	// Variant flags, mutually exclusive.
	normalized bool
	offset     bool

	out []uint8
	s   []uint8
	// Message matrices, k×n. Entries outside the sparsity pattern stay NaN
	// and are never read; NaN makes a stray access visible.
	q [][]float64
	r [][]float64
	// Per-row summaries: the two smallest |Q| and the XOR of the sign bits.
	min1 []float64
	min2 []float64
	sgn  []uint8
}

// NewMinSum returns a min-sum decoder. normalized and offset select the
// scaling of the check-to-variable magnitudes and are mutually exclusive;
// alpha is the normalization factor respectively the offset, unused by the
// plain variant.
func NewMinSum(m *code.Matrix, maxIter int, alpha float64, normalized, offset bool) (*MinSum, error) {
	if normalized && offset {
		return nil, fmt.Errorf("decoder.NewMinSum: normalized and offset min-sum are mutually exclusive")
	}
	if normalized && alpha == 0 {
		return nil, fmt.Errorf("decoder.NewMinSum: normalization factor must be nonzero")
	}
	return &MinSum{
		mat:        m,
		maxIter:    maxIter,
		alpha:      alpha,
		normalized: normalized,
		offset:     offset,
		out:        make([]uint8, m.N()),
		s:          make([]uint8, m.K()),
		q:          nanMatrix(m.K(), m.N()),
		r:          nanMatrix(m.K(), m.N()),
		min1:       make([]float64, m.K()),
		min2:       make([]float64, m.K()),
		sgn:        make([]uint8, m.K()),
	}, nil
}

// nanMatrix returns a k×n matrix with every entry set to NaN.
func nanMatrix(k, n int) [][]float64 {
	m := make([][]float64, k)
	for i := range m {
		row := make([]float64, n)
		for j := range row {
			row[j] = math.NaN()
		}
		m[i] = row
	}
	return m
}

// Decode runs the two-phase message passing iteration on the received
// samples. It returns the hard decisions together with a flag reporting
// whether they satisfy all parity checks; on a false flag the bits are the
// last iterate.
func (d *MinSum) Decode(in []float64) (out []uint8, ok bool) {
	checkInput(in, d.mat.N())

	hardDecision(in, d.out)

	for it := 0; ; it++ {
		syndrome(d.mat, d.out, d.s)
		if isCodeword(d.s) {
			return result(d.out), true
		}
		if it >= d.maxIter {
			return result(d.out), false
		}

		// The first variable-to-check messages are the channel samples.
		if it == 0 {
			for i := 0; i < d.mat.K(); i++ {
				for _, j := range d.mat.Rows(i) {
					d.q[i][j] = in[j]
				}
			}
		}

		d.checkPass()
		d.variablePass(in)
	}
}

// checkPass summarizes each row of Q and writes the check-to-variable
// messages R. Each message carries the smallest magnitude among the other
// edges of the check (the second smallest if the target edge holds the
// minimum) and the product of the other edges' signs.
func (d *MinSum) checkPass() {
	for i := 0; i < d.mat.K(); i++ {
		row := d.mat.Rows(i)

		min1, min2 := math.Inf(1), math.Inf(1)
		var sgn uint8
		for _, j := range row {
			a := math.Abs(d.q[i][j])
			if a < min1 {
				min2 = min1
				min1 = a
			} else if a < min2 {
				min2 = a
			}
			if math.Signbit(d.q[i][j]) {
				sgn ^= 1
			}
		}
		d.min1[i], d.min2[i], d.sgn[i] = min1, min2, sgn

		for _, j := range row {
			r := min1
			if math.Abs(d.q[i][j]) == min1 {
				r = min2
			}
			switch {
			case d.normalized:
				r /= d.alpha
			case d.offset:
				r = math.Max(r-d.alpha, 0)
			}
			sigma := d.sgn[i]
			if math.Signbit(d.q[i][j]) {
				sigma ^= 1
			}
			if sigma == 1 {
				r = -r
			}
			d.r[i][j] = r
		}
	}
}

// variablePass sums the extrinsic information of each bit, re-derives the
// hard decisions from the posterior and writes the next variable-to-check
// messages.
func (d *MinSum) variablePass(in []float64) {
	for j := 0; j < d.mat.N(); j++ {
		var le float64
		for _, i := range d.mat.Cols(j) {
			le += d.r[i][j]
		}
		if in[j]+le < 0 {
			d.out[j] = 1
		} else {
			d.out[j] = 0
		}
		for _, i := range d.mat.Cols(j) {
			d.q[i][j] = in[j] + le - d.r[i][j]
		}
	}
}
