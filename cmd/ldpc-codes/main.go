// ldpc-codes is a tool which lists the codes described by LDPC control
// files.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/Time0o/ldpc"
)

func main() {
	pflag.Parse()
	if pflag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s FILE...\n", os.Args[0])
		os.Exit(2)
	}

	for _, path := range pflag.Args() {
		codes, err := ldpc.LoadCodes(path)
		if err != nil {
			log.Fatal("unable to parse control file", "path", path, "err", err)
		}

		fmt.Printf("%s:\n", path)
		for i, c := range codes {
			m := c.Matrix
			ortho := "nonortho"
			if c.Ortho {
				ortho = "ortho"
			}
			fmt.Printf("  [%d] n=%d k=%d gamma=%d d_min=%d %s", i, m.N(), m.K(), m.Gamma(), c.DMin, ortho)
			if c.Exps != nil {
				fmt.Printf(" poly=%v", c.Exps)
			}
			fmt.Println()
		}
	}
}
