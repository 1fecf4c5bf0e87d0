// Command qmfinfo prints the derived filters, the frequency response and
// an impulse round trip of a two-band QMF prototype.
//
// Usage:
//
//	qmfinfo [flags] [prototype-name]
//
// Without arguments it analyzes the Haar prototype.
//
// Examples:
//
//	qmfinfo haar
//	qmfinfo -parity even identity
//	qmfinfo -taps 4096,12288,12288,4096 -rows 8
//	qmfinfo -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-qmf/dsp/core"
	"github.com/cwbudde/algo-qmf/dsp/filter/qmf"
	"github.com/cwbudde/algo-qmf/dsp/stream"
	"github.com/cwbudde/algo-qmf/measure/subband"
)

type prototypeEntry struct {
	name   string
	taps   []int16
	parity qmf.Parity
}

var registry = []prototypeEntry{
	{"haar", []int16{16384, 16384}, qmf.ParityOdd},
	{"identity", []int16{23170}, qmf.ParityEven},
	{"binomial4", []int16{4096, 12288, 12288, 4096}, qmf.ParityOdd},
}

var errUnknownPrototype = errors.New("unknown prototype")

func main() {
	tapsFlag := flag.String("taps", "", "comma-separated Q15 prototype taps (overrides the name)")
	parityFlag := flag.String("parity", "", "analysis highpass parity: odd or even (default: prototype's own)")
	latency := flag.Int("latency", 2, "convolution latency in ticks")
	fftSize := flag.Int("fft", 512, "FFT size for the response (power of two)")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	rows := flag.Int("rows", 9, "number of response rows to print")
	impulse := flag.Int("impulse", 8, "length of the impulse round trip (0 to skip)")
	list := flag.Bool("list", false, "list built-in prototypes")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qmfinfo [flags] [prototype-name]\n\n")
		fmt.Fprintf(os.Stderr, "Prints derived filters, frequency response and round trip of a QMF prototype.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  qmfinfo haar\n")
		fmt.Fprintf(os.Stderr, "  qmfinfo -parity even identity\n")
		fmt.Fprintf(os.Stderr, "  qmfinfo -taps 4096,12288,12288,4096 -rows 8\n")
		fmt.Fprintf(os.Stderr, "  qmfinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList(os.Stdout)
		return
	}

	entry, err := resolve(flag.Arg(0), *tapsFlag, *parityFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printCoefficients(os.Stdout, entry)

	resp, err := subband.Analyze(entry.taps, entry.parity,
		core.WithFFTSize(*fftSize), core.WithSampleRate(*rate))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	printResponse(os.Stdout, resp, *rows)

	if *impulse > 0 {
		if err := printRoundTrip(os.Stdout, entry, *latency, *impulse); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printList(w io.Writer) {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	sort.Strings(names)
	for _, n := range names {
		_, _ = fmt.Fprintln(w, n)
	}
}

// resolve picks the prototype from an explicit tap list or a registry
// name and applies a parity override.
func resolve(name, taps, parity string) (prototypeEntry, error) {
	var entry prototypeEntry
	switch {
	case taps != "":
		h0, err := parseTaps(taps)
		if err != nil {
			return entry, err
		}
		entry = prototypeEntry{name: "custom", taps: h0, parity: qmf.ParityOdd}
	default:
		if name == "" {
			name = "haar"
		}
		name = strings.ToLower(strings.TrimSpace(name))
		found := false
		for _, e := range registry {
			if e.name == name {
				entry, found = e, true
				break
			}
		}
		if !found {
			return entry, fmt.Errorf("%w %q (use -list to see available)", errUnknownPrototype, name)
		}
	}

	switch strings.ToLower(parity) {
	case "":
	case "odd":
		entry.parity = qmf.ParityOdd
	case "even":
		entry.parity = qmf.ParityEven
	default:
		return entry, fmt.Errorf("invalid parity %q (want odd or even)", parity)
	}
	return entry, nil
}

// parseTaps parses a comma-separated list of signed 16-bit taps.
func parseTaps(s string) ([]int16, error) {
	fields := strings.Split(s, ",")
	taps := make([]int16, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseInt(f, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid tap %q: %w", f, err)
		}
		taps = append(taps, int16(v))
	}
	if len(taps) == 0 {
		return nil, errors.New("no taps given")
	}
	return taps, nil
}

func printCoefficients(w io.Writer, e prototypeEntry) {
	_, _ = fmt.Fprintf(w, "Prototype %s, %d taps, %s parity\n\n", e.name, len(e.taps), e.parity)

	h1 := qmf.AnalysisMirror(e.taps, e.parity)
	f1 := qmf.SynthesisMirror(e.taps)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "n\th0\th1\tf1\th0 (float)\n")
	_, _ = fmt.Fprintf(tw, "-\t--\t--\t--\t----------\n")
	for n, c := range e.taps {
		_, _ = fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.6f\n", n, c, h1[n], f1[n], core.Q15ToFloat(c))
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
	_, _ = fmt.Fprintln(w)
}

func printResponse(w io.Writer, r *subband.Response, rows int) {
	if rows < 2 {
		rows = 2
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Freq [Hz]\tLow [dB]\tHigh [dB]\tPower sum\tTransfer [dB]\n")
	_, _ = fmt.Fprintf(tw, "---------\t--------\t---------\t---------\t-------------\n")
	last := len(r.Freqs) - 1
	for i := range rows {
		k := i * last / (rows - 1)
		_, _ = fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\t%.4f\t%.2f\n",
			r.Freqs[k], r.LowDB[k], r.HighDB[k], r.PowerSum[k], r.ReconstructionDB[k])
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}

	if k := r.CrossoverBin(); k >= 0 {
		_, _ = fmt.Fprintf(w, "\nCrossover: %.1f Hz\n", r.Freqs[k])
	}
	_, _ = fmt.Fprintf(w, "Transfer ripple: %.4f dB\n\n", r.RippleDB())
}

// printRoundTrip streams a half-scale impulse on the left channel through
// an analysis/synthesis chain and prints what comes out.
func printRoundTrip(w io.Writer, e prototypeEntry, latency, length int) error {
	cfg, err := qmf.NewConfig(len(e.taps))
	if err != nil {
		return err
	}
	if err := cfg.SetCoefficients(e.taps); err != nil {
		return err
	}
	cfg.SetEnable(true)

	chain, err := qmf.NewLoopback(cfg, nil, qmf.WithLatency(latency), qmf.WithParity(e.parity))
	if err != nil {
		return err
	}

	in := make([]uint32, length)
	in[0] = stream.Pack(16384, 0)
	out, err := chain.ProcessBlock(in)
	if err != nil {
		return err
	}
	out = append(out, chain.Drain()...)

	left := make([]string, len(out))
	for i, word := range out {
		l, _ := stream.Unpack(word)
		left[i] = strconv.Itoa(int(l))
	}
	_, err = fmt.Fprintf(w, "Impulse round trip (latency %d ticks): %s\n", chain.Latency(), strings.Join(left, " "))
	return err
}
