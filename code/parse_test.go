package code_test

import (
	"strings"
	"testing"

	"github.com/Time0o/ldpc/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const controlFile = `
# Cyclic LDPC control matrices.

15 15 5 : 0 4 6 7 8 ortho
12 12 4 : 0 1 3 7 nonortho
`

func TestParse(t *testing.T) {
	codes, err := code.Parse(strings.NewReader(controlFile))
	require.NoError(t, err)
	require.Len(t, codes, 2)

	c := codes[0]
	assert.Equal(t, 5, c.DMin)
	assert.True(t, c.Ortho)
	assert.Equal(t, []int{0, 4, 6, 7, 8}, c.Exps)
	assert.Equal(t, 15, c.Matrix.N())
	assert.Equal(t, 15, c.Matrix.K())
	assert.Equal(t, 5, c.Matrix.Gamma())

	c = codes[1]
	assert.Equal(t, 4, c.DMin)
	assert.False(t, c.Ortho)
	assert.Equal(t, 12, c.Matrix.N())
	assert.Equal(t, 4, c.Matrix.Gamma())
}

func TestParseFile(t *testing.T) {
	codes, err := code.ParseFile("testdata/codes.txt")
	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, 15, codes[0].Matrix.N())
}

func TestParseInvalid(t *testing.T) {
	golden := []struct {
		name string
		line string
	}{
		{name: "missing separator", line: "15 15 5 0 4 6 7 8 ortho"},
		{name: "too few dimensions", line: "15 15 : 0 4 6 7 8 ortho"},
		{name: "bad code length", line: "x 15 5 : 0 4 6 7 8 ortho"},
		{name: "bad parity count", line: "15 x 5 : 0 4 6 7 8 ortho"},
		{name: "bad distance", line: "15 15 x : 0 4 6 7 8 ortho"},
		{name: "missing polynomial", line: "15 15 5 : ortho"},
		{name: "bad exponent", line: "15 15 5 : 0 x 8 ortho"},
		{name: "bad marker", line: "15 15 5 : 0 4 6 7 8 maybe"},
		{name: "exponent out of range", line: "15 15 5 : 0 4 6 7 15 ortho"},
	}
	for _, g := range golden {
		t.Run(g.name, func(t *testing.T) {
			_, err := code.Parse(strings.NewReader(g.line))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "control line 1")
		})
	}
}
