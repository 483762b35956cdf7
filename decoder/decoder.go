// Package decoder implements the iterative soft-input hard-output decoding
// algorithms of the LDPC core: the bit-flipping family (BF, WBF, MWBF,
// IMWBF), the majority-logic family (one-step, hard, soft, adaptive soft)
// and the min-sum family (plain, normalized, offset).
//
// Every decoder borrows a *code.Matrix and never mutates it, so any number
// of decoders may share one matrix. Scratch buffers are allocated at
// construction and reused across Decode calls; a single decoder instance
// must therefore not decode from multiple goroutines at once.
package decoder

import (
	"fmt"

	"github.com/Time0o/ldpc/code"
	"github.com/Time0o/ldpc/internal/bits"
)

// hardDecision writes the hard decision of the received samples to out:
// out[j] = 1 iff in[j] < 0.
func hardDecision(in []float64, out []uint8) {
	for j, v := range in {
		if v < 0 {
			out[j] = 1
		} else {
			out[j] = 0
		}
	}
}

// syndrome writes the syndrome of out to s: s[i] is the parity of out over
// the columns of row i. out is a codeword iff s is all-zero.
func syndrome(m *code.Matrix, out []uint8, s []uint8) {
	for i := range s {
		s[i] = bits.Parity(out, m.Rows(i))
	}
}

// isCodeword reports whether the syndrome is all-zero.
func isCodeword(s []uint8) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// checkInput panics if the received vector does not match the code length.
// A length mismatch is a caller error, not a channel condition.
func checkInput(in []float64, n int) {
	if len(in) != n {
		panic(fmt.Sprintf("decoder: received vector has length %d, code length is %d", len(in), n))
	}
}

// result returns a copy of the hard decisions, detached from the decoder's
// scratch buffers.
func result(out []uint8) []uint8 {
	return append([]uint8(nil), out...)
}
