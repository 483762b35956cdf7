// Package code contains functions for parsing and representing the control
// matrices of LDPC block codes.
//
// A control matrix (parity-check matrix) H is a sparse binary k×n matrix; a
// length-n bit vector x is a codeword iff Hx = 0 (mod 2). Decoders never walk
// H itself but its adjacency lists, so only those are stored.
package code

import "fmt"

// A Matrix is the sparse representation of a control matrix, holding the row
// and column adjacency lists of H. It is immutable after construction and may
// be shared by reference between any number of decoders.
type Matrix struct {
	// Code length (number of columns of H).
	n int
	// Number of parity checks (rows of H).
	k int
	// rows[i] lists the column indices j with H[i][j] = 1, in ascending order.
	rows [][]int
	// cols[j] lists the row indices i with H[i][j] = 1, in ascending order.
	cols [][]int
}

// New returns the sparse representation of the control matrix given as
// explicit bit rows. All rows must have the same length and at least one
// nonzero entry.
func New(rows [][]uint8) (m *Matrix, err error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("code.New: control matrix has no rows")
	}
	n := len(rows[0])
	if n < 1 {
		return nil, fmt.Errorf("code.New: control matrix has no columns")
	}

	m = &Matrix{
		n:    n,
		k:    len(rows),
		rows: make([][]int, len(rows)),
		cols: make([][]int, n),
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("code.New: invalid length of row %d; expected %d, got %d", i, n, len(row))
		}
		for j, bit := range row {
			switch bit {
			case 0:
				// not adjacent.
			case 1:
				m.rows[i] = append(m.rows[i], j)
				m.cols[j] = append(m.cols[j], i)
			default:
				return nil, fmt.Errorf("code.New: invalid entry at row %d, column %d; expected 0 or 1, got %d", i, j, bit)
			}
		}
		if len(m.rows[i]) == 0 {
			return nil, fmt.Errorf("code.New: row %d of control matrix is all-zero", i)
		}
	}

	return m, nil
}

// FromPoly returns the sparse representation of the k×n control matrix of a
// cyclic code whose first row is given by the exponents of its row polynomial.
//
// The exponents are the nonzero coefficient positions of a single polynomial;
// they are expanded, from the highest exponent down to zero, into a bit
// string which is padded to length n and rotated right by i to form row i.
func FromPoly(n, k int, exps []int) (m *Matrix, err error) {
	if n < 1 {
		return nil, fmt.Errorf("code.FromPoly: invalid code length %d", n)
	}
	if k < 1 {
		return nil, fmt.Errorf("code.FromPoly: invalid parity check count %d", k)
	}
	if len(exps) < 1 {
		return nil, fmt.Errorf("code.FromPoly: row polynomial has no exponents")
	}

	deg := 0
	for _, e := range exps {
		if e < 0 || e >= n {
			return nil, fmt.Errorf("code.FromPoly: exponent %d outside of [0, %d)", e, n)
		}
		if e > deg {
			deg = e
		}
	}

	// Expand the polynomial into the first row, leading coefficient first.
	row0 := make([]uint8, n)
	for _, e := range exps {
		if row0[deg-e] == 1 {
			return nil, fmt.Errorf("code.FromPoly: duplicate exponent %d", e)
		}
		row0[deg-e] = 1
	}

	// The remaining rows are cyclic shifts of the first.
	rows := make([][]uint8, k)
	for i := range rows {
		row := make([]uint8, n)
		for j := range row {
			row[j] = row0[((j-i)%n+n)%n]
		}
		rows[i] = row
	}

	return New(rows)
}

// N returns the code length (number of columns of H).
func (m *Matrix) N() int {
	return m.n
}

// K returns the number of parity checks (rows of H).
func (m *Matrix) K() int {
	return m.k
}

// Rows returns the column indices with a 1 in row i. The returned slice is
// shared and must not be modified.
func (m *Matrix) Rows(i int) []int {
	return m.rows[i]
}

// Cols returns the row indices with a 1 in column j. The returned slice is
// shared and must not be modified.
func (m *Matrix) Cols(j int) []int {
	return m.cols[j]
}

// Gamma returns the row weight γ of the first row of H. For a regular
// control matrix this is the weight of every row.
func (m *Matrix) Gamma() int {
	return len(m.rows[0])
}

// Regular reports whether all rows of H have identical weight. The
// majority-logic decoders require a regular control matrix.
func (m *Matrix) Regular() bool {
	gamma := m.Gamma()
	for _, row := range m.rows[1:] {
		if len(row) != gamma {
			return false
		}
	}
	return true
}

// Bit returns the entry H[i][j].
func (m *Matrix) Bit(i, j int) uint8 {
	for _, jj := range m.rows[i] {
		if jj == j {
			return 1
		}
	}
	return 0
}
