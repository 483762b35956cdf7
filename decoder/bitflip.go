package decoder

import (
	"math"

	"github.com/Time0o/ldpc/code"
)

// flipEps is the tie tolerance of the weighted bit-flipping variants: all
// columns whose decision metric lies within flipEps of the maximum flip
// simultaneously. The plain variant's metric is integer valued and compared
// exactly.
const flipEps = 1e-3

// A BitFlip decoder flips, once per iteration, the bits that most disagree
// with the parity checks. The weighted variants (WBF, MWBF, IMWBF) scale
// each check's vote by the reliability of its least reliable sample; the
// modified variants additionally penalize flipping reliable bits by
// -α·|in[j]|.
type BitFlip struct {
	mat     *code.Matrix
	maxIter int
	alpha   float64
	// Variant flags; modified implies weighted, improved implies modified.
	weighted bool
	modified bool
	improved bool

	out []uint8
	s   []uint8
	e   []float64
	w   []float64   // per-row reliability weights (WBF, MWBF)
	we  [][]float64 // per-edge reliability weights (IMWBF)
}

// NewBitFlip returns a plain bit-flipping (BF) decoder.
func NewBitFlip(m *code.Matrix, maxIter int) *BitFlip {
	return newBitFlip(m, maxIter, 0, false, false, false)
}

// NewWeightedBitFlip returns a weighted bit-flipping (WBF) decoder.
func NewWeightedBitFlip(m *code.Matrix, maxIter int) *BitFlip {
	return newBitFlip(m, maxIter, 0, true, false, false)
}

// NewModifiedBitFlip returns a modified weighted bit-flipping (MWBF)
// decoder. alpha weighs the reliability of the target bit against the check
// votes.
func NewModifiedBitFlip(m *code.Matrix, maxIter int, alpha float64) *BitFlip {
	return newBitFlip(m, maxIter, alpha, true, true, false)
}

// NewImprovedBitFlip returns an improved modified weighted bit-flipping
// (IMWBF) decoder, whose check weights exclude the target column from each
// check's reliability minimum.
func NewImprovedBitFlip(m *code.Matrix, maxIter int, alpha float64) *BitFlip {
	return newBitFlip(m, maxIter, alpha, true, true, true)
}

func newBitFlip(m *code.Matrix, maxIter int, alpha float64, weighted, modified, improved bool) *BitFlip {
	d := &BitFlip{
		mat:      m,
		maxIter:  maxIter,
		alpha:    alpha,
		weighted: weighted,
		modified: modified,
		improved: improved,
		out:      make([]uint8, m.N()),
		s:        make([]uint8, m.K()),
		e:        make([]float64, m.N()),
	}
	switch {
	case improved:
		d.we = make([][]float64, m.K())
		for i := range d.we {
			d.we[i] = make([]float64, m.N())
		}
	case weighted:
		d.w = make([]float64, m.K())
	}
	return d
}

// Decode runs the bit-flipping iteration on the received samples. It returns
// the hard decisions together with a flag reporting whether they satisfy all
// parity checks; on a false flag the bits are the last iterate.
func (d *BitFlip) Decode(in []float64) (out []uint8, ok bool) {
	checkInput(in, d.mat.N())

	hardDecision(in, d.out)
	if d.weighted {
		d.initWeights(in)
	}

	for it := 0; ; it++ {
		syndrome(d.mat, d.out, d.s)
		if isCodeword(d.s) {
			return result(d.out), true
		}
		if it >= d.maxIter {
			return result(d.out), false
		}

		d.metrics(in)
		d.flip()
	}
}

// initWeights computes the reliability weights from the received samples,
// once per Decode call. WBF and MWBF use the least reliable sample of each
// check; IMWBF takes each check's minimum excluding the target column.
func (d *BitFlip) initWeights(in []float64) {
	for i := 0; i < d.mat.K(); i++ {
		row := d.mat.Rows(i)
		if !d.improved {
			min := math.Inf(1)
			for _, j := range row {
				if a := math.Abs(in[j]); a < min {
					min = a
				}
			}
			d.w[i] = min
			continue
		}
		for _, j := range row {
			min := math.Inf(1)
			for _, jj := range row {
				if jj == j {
					continue
				}
				if a := math.Abs(in[jj]); a < min {
					min = a
				}
			}
			d.we[i][j] = min
		}
	}
}

// metrics computes the per-column decision metric e. A large e[j] marks bit
// j as the most likely to be in error.
func (d *BitFlip) metrics(in []float64) {
	for j := 0; j < d.mat.N(); j++ {
		var e float64
		if d.modified {
			e = -d.alpha * math.Abs(in[j])
		}
		for _, i := range d.mat.Cols(j) {
			if !d.weighted {
				e += float64(d.s[i])
				continue
			}
			var w float64
			if d.improved {
				w = d.we[i][j]
			} else {
				w = d.w[i]
			}
			if d.s[i] == 1 {
				e += w
			} else {
				e -= w
			}
		}
		d.e[j] = e
	}
}

// flip flips every column whose metric ties with the maximum. Multiple
// simultaneous flips per iteration are intentional.
func (d *BitFlip) flip() {
	max := d.e[0]
	for _, e := range d.e[1:] {
		if e > max {
			max = e
		}
	}
	for j, e := range d.e {
		if d.weighted {
			if math.Abs(e-max) < flipEps {
				d.out[j] ^= 1
			}
		} else if e == max {
			d.out[j] ^= 1
		}
	}
}
