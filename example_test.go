package ldpc_test

import (
	"fmt"
	"log"

	"github.com/Time0o/ldpc"
	"github.com/Time0o/ldpc/code"
)

func ExampleNew() {
	// The (15,7) cyclic code with row polynomial x^8+x^7+x^6+x^4+1.
	m, err := code.FromPoly(15, 15, []int{0, 4, 6, 7, 8})
	if err != nil {
		log.Fatal(err)
	}

	d, err := ldpc.New(ldpc.MinSum, m, 50, 0)
	if err != nil {
		log.Fatal(err)
	}

	// BPSK samples of the zero codeword, with one bit received in error.
	in := make([]float64, m.N())
	for j := range in {
		in[j] = 1.0
	}
	in[3] = -0.9

	out, ok := d.Decode(in)
	fmt.Println(ok, out)
	// Output: true [0 0 0 0 0 0 0 0 0 0 0 0 0 0 0]
}
