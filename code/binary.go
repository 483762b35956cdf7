package code

import (
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// BinarySignature is present at the beginning of each packed control matrix.
const BinarySignature = "ldpc"

// WriteBinary writes the packed binary representation of the provided code to
// w. The format is the four byte signature "ldpc", a header holding n (32
// bits), k (32 bits), d_min (16 bits) and an orthogonality flag (8 bits),
// followed by the k×n matrix bits in row-major order, most significant bit
// first, padded with zero bits to a byte boundary.
//
// The row polynomial exponents of a code parsed from a control line are not
// part of the packed format; a round trip retains the matrix and its
// metadata, not its textual origin.
func WriteBinary(w io.Writer, c *Code) (err error) {
	bw := bitio.NewWriter(w)

	for i := 0; i < len(BinarySignature); i++ {
		bw.TryWriteBits(uint64(BinarySignature[i]), 8)
	}
	m := c.Matrix
	bw.TryWriteBits(uint64(m.N()), 32)
	bw.TryWriteBits(uint64(m.K()), 32)
	bw.TryWriteBits(uint64(c.DMin), 16)
	var flags uint64
	if c.Ortho {
		flags = 1
	}
	bw.TryWriteBits(flags, 8)

	for i := 0; i < m.K(); i++ {
		for j := 0; j < m.N(); j++ {
			bw.TryWriteBool(m.Bit(i, j) == 1)
		}
	}
	if bw.TryError != nil {
		return bw.TryError
	}

	return bw.Close()
}

// ReadBinary reads a packed control matrix from r and returns the code it
// describes.
func ReadBinary(r io.Reader) (c *Code, err error) {
	br := bitio.NewReader(r)

	for i := 0; i < len(BinarySignature); i++ {
		b := br.TryReadBits(8)
		if br.TryError == nil && byte(b) != BinarySignature[i] {
			return nil, fmt.Errorf("code.ReadBinary: invalid signature byte %d; expected %#02x, got %#02x", i, BinarySignature[i], b)
		}
	}
	n := int(br.TryReadBits(32))
	k := int(br.TryReadBits(32))
	dmin := int(br.TryReadBits(16))
	flags := br.TryReadBits(8)
	if br.TryError != nil {
		return nil, br.TryError
	}
	if n < 1 || k < 1 {
		return nil, fmt.Errorf("code.ReadBinary: invalid control matrix dimensions %dx%d", k, n)
	}

	rows := make([][]uint8, k)
	for i := range rows {
		row := make([]uint8, n)
		for j := range row {
			if br.TryReadBool() {
				row[j] = 1
			}
		}
		rows[i] = row
	}
	if br.TryError != nil {
		return nil, br.TryError
	}

	m, err := New(rows)
	if err != nil {
		return nil, err
	}

	return &Code{DMin: dmin, Ortho: flags&1 == 1, Matrix: m}, nil
}
