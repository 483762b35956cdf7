// ldpc-decode is a tool which decodes received sample vectors with the LDPC
// decoders.
//
// A sample file holds one real-valued channel sample per whitespace
// separated token, code length many in total; the path "-" reads from
// standard input. The decoded hard decisions are printed to standard output
// and, for file inputs when exactly one decoder run is configured, written
// next to the input file with a ".bits" extension (or to the path given with
// -o).
//
// Instead of a single decoder, a YAML job file may be given with -j:
//
//	jobs:
//	  - decoder: min-sum
//	    max_iter: 50
//	  - decoder: normalized-min-sum
//	    max_iter: 50
//	    alpha: 1.25
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/Time0o/ldpc"
	"github.com/Time0o/ldpc/code"
)

var (
	// flagCodes is the path of the control file holding the code definitions.
	flagCodes string
	// flagCode selects a code within the control file.
	flagCode int
	// flagDecoder, flagMaxIter and flagAlpha configure a single decoder run.
	flagDecoder string
	flagMaxIter int
	flagAlpha   float64
	// flagJobs is the path of a YAML file listing decoder runs.
	flagJobs string
	// flagOut overrides the derived output path.
	flagOut string
	// flagForce specifies if file overwriting should be forced, when an
	// output file of the same name already exists.
	flagForce bool
)

func init() {
	pflag.StringVarP(&flagCodes, "codes", "c", "", "control file holding the code definitions")
	pflag.IntVar(&flagCode, "code", 0, "index of the code within the control file")
	pflag.StringVarP(&flagDecoder, "decoder", "d", ldpc.MinSum, "decoder name, one of: "+strings.Join(ldpc.Names(), ", "))
	pflag.IntVarP(&flagMaxIter, "max-iter", "i", 50, "iteration budget")
	pflag.Float64VarP(&flagAlpha, "alpha", "a", 0, "tuning scalar of the weighted decoder variants")
	pflag.StringVarP(&flagJobs, "jobs", "j", "", "YAML file listing decoder runs")
	pflag.StringVarP(&flagOut, "out", "o", "", "output path for the decoded bits")
	pflag.BoolVarP(&flagForce, "force", "f", false, "force overwrite of output files")
}

// A job is one decoder run over the input vector.
type job struct {
	Decoder string  `yaml:"decoder"`
	MaxIter int     `yaml:"max_iter"`
	Alpha   float64 `yaml:"alpha"`
}

func main() {
	pflag.Parse()
	if flagCodes == "" || pflag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s -c FILE [OPTION]... SAMPLES...\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(2)
	}

	codes, err := ldpc.LoadCodes(flagCodes)
	if err != nil {
		log.Fatal("unable to parse control file", "path", flagCodes, "err", err)
	}
	if flagCode < 0 || flagCode >= len(codes) {
		log.Fatal("code index out of range", "index", flagCode, "codes", len(codes))
	}
	c := codes[flagCode]
	log.Debug("code selected", "n", c.Matrix.N(), "k", c.Matrix.K(), "gamma", c.Matrix.Gamma())

	jobs := []job{{Decoder: flagDecoder, MaxIter: flagMaxIter, Alpha: flagAlpha}}
	if flagJobs != "" {
		jobs, err = parseJobs(flagJobs)
		if err != nil {
			log.Fatal("unable to parse job file", "path", flagJobs, "err", err)
		}
	}

	for _, path := range pflag.Args() {
		if err := decode(c, jobs, path); err != nil {
			log.Fatal("decoding failed", "path", path, "err", err)
		}
	}
}

// parseJobs reads the decoder runs from the provided YAML job file.
func parseJobs(path string) (jobs []job, err error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f struct {
		Jobs []job `yaml:"jobs"`
	}
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return nil, err
	}
	if len(f.Jobs) == 0 {
		return nil, fmt.Errorf("job file %q lists no jobs", path)
	}
	return f.Jobs, nil
}

// decode runs each job on the sample vector read from path.
func decode(c *code.Code, jobs []job, path string) error {
	in, err := readSamples(path, c.Matrix.N())
	if err != nil {
		return err
	}

	for _, j := range jobs {
		d, err := ldpc.New(j.Decoder, c.Matrix, j.MaxIter, j.Alpha)
		if err != nil {
			return err
		}

		out, ok := d.Decode(in)
		log.Info("decoded", "decoder", j.Decoder, "ok", ok)
		fmt.Println(bitString(out))

		// In single-run mode the bits also go to a file, flac2wav style.
		if len(jobs) == 1 && path != "-" {
			if err := writeBits(path, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// readSamples reads a whitespace separated sample vector of length n from
// the provided file, or from standard input for the path "-".
func readSamples(path string, n int) (in []float64, err error) {
	var buf []byte
	if path == "-" {
		buf, err = io.ReadAll(os.Stdin)
	} else {
		buf, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	fields := strings.Fields(string(buf))
	if len(fields) != n {
		return nil, fmt.Errorf("invalid number of samples; expected %d, got %d", n, len(fields))
	}
	in = make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sample %q", f)
		}
		in[i] = v
	}
	return in, nil
}

// writeBits stores the decoded bits next to the input file.
func writeBits(path string, out []uint8) error {
	bitsPath := flagOut
	if bitsPath == "" {
		bitsPath = pathutil.TrimExt(path) + ".bits"
	}
	if !flagForce {
		if osutil.Exists(bitsPath) {
			return fmt.Errorf("the file %q exists already", bitsPath)
		}
	}
	return os.WriteFile(bitsPath, []byte(bitString(out)+"\n"), 0644)
}

// bitString formats the hard decisions as a string of '0' and '1'.
func bitString(out []uint8) string {
	var sb strings.Builder
	for _, b := range out {
		sb.WriteByte('0' + b)
	}
	return sb.String()
}
