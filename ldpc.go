// Package ldpc implements iterative soft-input hard-output decoding of LDPC
// (low-density parity-check) block codes.
//
// A decoder takes a received vector of real-valued channel samples and
// attempts to recover the transmitted binary codeword by exploiting the
// structure of a sparse control matrix H, represented by code.Matrix. Eleven
// decoder variants from three algorithmic families are provided; New
// constructs any of them by name.
package ldpc

import (
	"fmt"

	"github.com/Time0o/ldpc/code"
	"github.com/Time0o/ldpc/decoder"
)

// A Decoder attempts to recover the transmitted codeword from a received
// vector of channel samples. Decode returns the hard-decision output bits
// together with a success flag reporting that they satisfy all parity
// checks; on a false flag the bits are the last iterate. The one-step
// majority-logic decoder is the deliberate exception: its flag is always
// true and its output may still violate parity.
//
// A Decoder instance is not safe for concurrent Decode calls; distinct
// instances sharing one control matrix are.
type Decoder interface {
	Decode(in []float64) (out []uint8, ok bool)
}

// Decoder names recognized by New.
const (
	BF               = "bf"
	WBF              = "wbf"
	MWBF             = "mwbf"
	IMWBF            = "imwbf"
	OneStepMLG       = "one-step-mlg"
	HardMLG          = "hard-mlg"
	SoftMLG          = "soft-mlg"
	AdaptiveSoftMLG  = "adaptive-soft-mlg"
	MinSum           = "min-sum"
	NormalizedMinSum = "normalized-min-sum"
	OffsetMinSum     = "offset-min-sum"
)

// Names returns the decoder names recognized by New, in a stable order.
func Names() []string {
	return []string{
		BF, WBF, MWBF, IMWBF,
		OneStepMLG, HardMLG, SoftMLG, AdaptiveSoftMLG,
		MinSum, NormalizedMinSum, OffsetMinSum,
	}
}

// UsesAlpha reports whether the named decoder is tuned by the scalar α.
func UsesAlpha(name string) bool {
	switch name {
	case MWBF, IMWBF, AdaptiveSoftMLG, NormalizedMinSum, OffsetMinSum:
		return true
	}
	return false
}

// New constructs the named decoder on the provided control matrix. maxIter
// bounds the number of iterations of the iterative decoders; alpha tunes the
// decoders for which UsesAlpha reports true and is ignored by the others.
func New(name string, m *code.Matrix, maxIter int, alpha float64) (Decoder, error) {
	if m == nil {
		return nil, fmt.Errorf("ldpc.New: missing control matrix")
	}
	if maxIter < 0 {
		return nil, fmt.Errorf("ldpc.New: invalid iteration budget %d", maxIter)
	}

	var d Decoder
	var err error
	switch name {
	case BF:
		d = decoder.NewBitFlip(m, maxIter)
	case WBF:
		d = decoder.NewWeightedBitFlip(m, maxIter)
	case MWBF:
		d = decoder.NewModifiedBitFlip(m, maxIter, alpha)
	case IMWBF:
		d = decoder.NewImprovedBitFlip(m, maxIter, alpha)
	case OneStepMLG:
		d, err = decoder.NewOneStepMLG(m)
	case HardMLG:
		d, err = decoder.NewHardMLG(m, maxIter)
	case SoftMLG:
		d, err = decoder.NewSoftMLG(m, maxIter)
	case AdaptiveSoftMLG:
		d, err = decoder.NewAdaptiveSoftMLG(m, maxIter, alpha)
	case MinSum:
		d, err = decoder.NewMinSum(m, maxIter, 0, false, false)
	case NormalizedMinSum:
		d, err = decoder.NewMinSum(m, maxIter, alpha, true, false)
	case OffsetMinSum:
		d, err = decoder.NewMinSum(m, maxIter, alpha, false, true)
	default:
		return nil, fmt.Errorf("ldpc.New: unknown decoder %q", name)
	}
	if err != nil {
		return nil, err
	}

	return d, nil
}

// LoadCodes reads the provided control file and returns the codes described
// by it.
func LoadCodes(path string) ([]*code.Code, error) {
	return code.ParseFile(path)
}
