package decoder

import (
	"fmt"
	"math"

	"github.com/Time0o/ldpc/code"
	"github.com/Time0o/ldpc/internal/bits"
)

// registerWidth is the bit width x of the soft reliability register. The
// soft variants saturate at ±(2^(x-1)-1); the hard variant saturates at ±γ.
const registerWidth = 3

// A OneStepMLG decoder corrects, in a single non-iterative pass, every bit
// whose failed check count clears the majority threshold ⌊γ/2⌋. By contract
// it always reports success; the output may still violate parity, and a
// caller wanting a guarantee must re-check.
type OneStepMLG struct {
	mat *code.Matrix
	out []uint8
	s   []uint8
}

// NewOneStepMLG returns a one-step majority-logic decoder. The control
// matrix must be regular.
func NewOneStepMLG(m *code.Matrix) (*OneStepMLG, error) {
	if !m.Regular() {
		return nil, fmt.Errorf("decoder.NewOneStepMLG: majority-logic decoding requires a regular control matrix")
	}
	return &OneStepMLG{
		mat: m,
		out: make([]uint8, m.N()),
		s:   make([]uint8, m.K()),
	}, nil
}

// Decode hard-decides the received samples and applies one majority-logic
// correction pass. The success flag is always true.
func (d *OneStepMLG) Decode(in []float64) (out []uint8, ok bool) {
	checkInput(in, d.mat.N())

	hardDecision(in, d.out)
	syndrome(d.mat, d.out, d.s)

	threshold := d.mat.Gamma() / 2
	for j := range d.out {
		e := 0
		for _, i := range d.mat.Cols(j) {
			e += int(d.s[i])
		}
		if e > threshold {
			d.out[j] ^= 1
		}
	}

	return result(d.out), true
}

// An MLG decoder iteratively updates a saturating per-bit reliability
// register from the check results and re-derives the hard decisions from the
// register's sign. The soft variants seed the register from the channel
// samples; the hard variant from the hard decisions alone. The adaptive soft
// variant weighs each check vote by a per-edge reliability minimum and
// applies the gain α.
type MLG struct {
	mat     *code.Matrix
	maxIter int
	alpha   float64
	// Variant flags; adaptive implies soft.
	soft     bool
	adaptive bool
	// Saturation bounds of the reliability register.
	rmin, rmax int

	out []uint8
	s   []uint8
	r   []int       // reliability register (hard, soft)
	rf  []float64   // reliability register (adaptive soft)
	w   [][]float64 // per-edge weights (adaptive soft)
}

// NewHardMLG returns an iterative hard-reliability majority-logic decoder.
// The control matrix must be regular.
func NewHardMLG(m *code.Matrix, maxIter int) (*MLG, error) {
	return newMLG(m, maxIter, 0, false, false, "NewHardMLG")
}

// NewSoftMLG returns an iterative soft-reliability majority-logic decoder.
// The control matrix must be regular.
func NewSoftMLG(m *code.Matrix, maxIter int) (*MLG, error) {
	return newMLG(m, maxIter, 0, true, false, "NewSoftMLG")
}

// NewAdaptiveSoftMLG returns an iterative soft-reliability majority-logic
// decoder with per-edge check weights and update gain alpha. The control
// matrix must be regular.
func NewAdaptiveSoftMLG(m *code.Matrix, maxIter int, alpha float64) (*MLG, error) {
	return newMLG(m, maxIter, alpha, true, true, "NewAdaptiveSoftMLG")
}

func newMLG(m *code.Matrix, maxIter int, alpha float64, soft, adaptive bool, name string) (*MLG, error) {
	if !m.Regular() {
		return nil, fmt.Errorf("decoder.%s: majority-logic decoding requires a regular control matrix", name)
	}
	d := &MLG{
		mat:      m,
		maxIter:  maxIter,
		alpha:    alpha,
		soft:     soft,
		adaptive: adaptive,
		out:      make([]uint8, m.N()),
		s:        make([]uint8, m.K()),
	}
	if soft {
		d.rmin, d.rmax = bits.SatRange(registerWidth)
	} else {
		d.rmin, d.rmax = -m.Gamma(), m.Gamma()
	}
	if adaptive {
		d.rf = make([]float64, m.N())
		d.w = make([][]float64, m.K())
		for i := range d.w {
			d.w[i] = make([]float64, m.N())
		}
	} else {
		d.r = make([]int, m.N())
	}
	return d, nil
}

// Decode runs the majority-logic iteration on the received samples. It
// returns the hard decisions together with a flag reporting whether they
// satisfy all parity checks; on a false flag the bits are the last iterate.
func (d *MLG) Decode(in []float64) (out []uint8, ok bool) {
	checkInput(in, d.mat.N())

	hardDecision(in, d.out)
	d.initRegister(in)
	if d.adaptive {
		d.initWeights()
	}

	for it := 0; ; it++ {
		syndrome(d.mat, d.out, d.s)
		if isCodeword(d.s) {
			return result(d.out), true
		}
		if it >= d.maxIter {
			return result(d.out), false
		}

		if d.adaptive {
			d.updateAdaptive()
		} else {
			d.update()
		}

		// Re-derive the hard decisions from the register's sign.
		for j := range d.out {
			if d.negative(j) {
				d.out[j] = 1
			} else {
				d.out[j] = 0
			}
		}
	}
}

// initRegister seeds the reliability register: the soft variants quantize
// the channel samples to the register range, the hard variant assigns full
// confidence to the hard decisions.
func (d *MLG) initRegister(in []float64) {
	for j := range in {
		var r int
		if d.soft {
			r = bits.Clamp(int(math.Round(in[j]*float64(d.rmax))), d.rmin, d.rmax)
		} else if d.out[j] == 0 {
			r = d.rmax
		} else {
			r = d.rmin
		}
		if d.adaptive {
			d.rf[j] = float64(r)
		} else {
			d.r[j] = r
		}
	}
}

// initWeights computes the adaptive per-edge check weights from the initial
// register values, once per Decode call: w[i][j] is the smallest register
// magnitude of row i excluding the target column j.
func (d *MLG) initWeights() {
	for i := 0; i < d.mat.K(); i++ {
		row := d.mat.Rows(i)
		for _, j := range row {
			min := math.Inf(1)
			for _, jj := range row {
				if jj == j {
					continue
				}
				if a := math.Abs(d.rf[jj]); a < min {
					min = a
				}
			}
			d.w[i][j] = min
		}
	}
}

// update applies one integer register update: each check votes ±1 depending
// on whether it disagrees with the current decision of bit j.
func (d *MLG) update() {
	for j := range d.r {
		e := 0
		for _, i := range d.mat.Cols(j) {
			if d.s[i]^d.out[j] == 1 {
				e++
			} else {
				e--
			}
		}
		d.r[j] = bits.Clamp(d.r[j]-e, d.rmin, d.rmax)
	}
}

// updateAdaptive applies one weighted register update with gain alpha.
func (d *MLG) updateAdaptive() {
	for j := range d.rf {
		var e float64
		for _, i := range d.mat.Cols(j) {
			w := d.w[i][j]
			if d.s[i]^d.out[j] == 1 {
				e += w
			} else {
				e -= w
			}
		}
		d.rf[j] = bits.ClampFloat(d.rf[j]-d.alpha*e, float64(d.rmin), float64(d.rmax))
	}
}

// negative reports whether the register of bit j is negative, marking the
// bit as a 1.
func (d *MLG) negative(j int) bool {
	if d.adaptive {
		return d.rf[j] < 0
	}
	return d.r[j] < 0
}
