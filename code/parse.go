package code

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Code is one entry of a control file: the parsed control matrix together
// with the metadata of its control line.
type Code struct {
	// Minimum distance of the code, as stated by the control line.
	DMin int
	// Ortho is true if the control line marks the parity checks as
	// orthogonal (one-step majority-logic decodable).
	Ortho bool
	// Exponents of the row polynomial the matrix was expanded from. Nil if
	// the matrix was not constructed from a control line.
	Exps []int
	// Sparse control matrix.
	Matrix *Matrix
}

// Parse reads a control file and returns the codes described by it, one per
// control line.
//
// Control line format (one line per code):
//
//	<n> <k> <d_min> : <e1> <e2> ... <eR> <ortho|nonortho>
//
// where the e_i are the exponents of the row polynomial of the control
// matrix. Blank lines and lines starting with '#' are ignored.
func Parse(r io.Reader) (codes []*Code, err error) {
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if len(text) == 0 || strings.HasPrefix(text, "#") {
			continue
		}
		c, err := parseLine(text)
		if err != nil {
			return nil, errors.Wrapf(err, "code.Parse: invalid control line %d", line)
		}
		codes = append(codes, c)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "code.Parse")
	}
	return codes, nil
}

// ParseFile reads the provided control file and returns the codes described
// by it.
func ParseFile(path string) (codes []*Code, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// parseLine parses a single control line.
func parseLine(text string) (c *Code, err error) {
	head, tail, ok := strings.Cut(text, ":")
	if !ok {
		return nil, fmt.Errorf("missing ':' separator")
	}

	dims := strings.Fields(head)
	if len(dims) != 3 {
		return nil, fmt.Errorf("invalid number of dimension fields; expected 3, got %d", len(dims))
	}
	n, err := strconv.Atoi(dims[0])
	if err != nil {
		return nil, fmt.Errorf("invalid code length %q", dims[0])
	}
	k, err := strconv.Atoi(dims[1])
	if err != nil {
		return nil, fmt.Errorf("invalid parity check count %q", dims[1])
	}
	dmin, err := strconv.Atoi(dims[2])
	if err != nil {
		return nil, fmt.Errorf("invalid minimum distance %q", dims[2])
	}

	fields := strings.Fields(tail)
	if len(fields) < 2 {
		return nil, fmt.Errorf("invalid number of polynomial fields; expected at least 2, got %d", len(fields))
	}

	var ortho bool
	switch last := fields[len(fields)-1]; last {
	case "ortho":
		ortho = true
	case "nonortho":
		ortho = false
	default:
		return nil, fmt.Errorf("invalid orthogonality marker %q; expected \"ortho\" or \"nonortho\"", last)
	}

	exps := make([]int, len(fields)-1)
	for i, f := range fields[:len(fields)-1] {
		e, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid exponent %q", f)
		}
		exps[i] = e
	}

	m, err := FromPoly(n, k, exps)
	if err != nil {
		return nil, err
	}

	return &Code{DMin: dmin, Ortho: ortho, Exps: exps, Matrix: m}, nil
}
