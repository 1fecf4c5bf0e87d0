package subband

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-qmf/dsp/core"
	"github.com/cwbudde/algo-qmf/dsp/filter/qmf"
)

// Errors returned by Analyze.
var (
	ErrEmptyPrototype   = errors.New("subband: empty prototype")
	ErrPrototypeTooLong = errors.New("subband: prototype longer than FFT size")
)

// Response is the measured frequency response of one prototype. All
// slices have FFTSize/2+1 entries, bin 0 at DC.
type Response struct {
	SampleRate float64
	FFTSize    int
	Parity     qmf.Parity

	Freqs            []float64 // bin centre in Hz
	LowDB            []float64 // |H0| in dB
	HighDB           []float64 // |H1| in dB
	PowerSum         []float64 // |H0|^2 + |H1|^2, linear
	ReconstructionDB []float64 // |H0*F0 + H1*F1| in dB
}

// Analyze measures h0 with the given highpass parity. Sample rate and FFT
// size come from opts (defaults 48 kHz and 512).
func Analyze(h0 []int16, parity qmf.Parity, opts ...core.ProcessorOption) (*Response, error) {
	if len(h0) == 0 {
		return nil, ErrEmptyPrototype
	}
	cfg := core.ApplyProcessorOptions(opts...)
	n := cfg.FFTSize
	if len(h0) > n {
		return nil, fmt.Errorf("%w: %d taps, FFT size %d", ErrPrototypeTooLong, len(h0), n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("subband: failed to create FFT plan: %w", err)
	}

	H0, err := spectrum(plan, h0, n)
	if err != nil {
		return nil, err
	}
	H1, err := spectrum(plan, qmf.AnalysisMirror(h0, parity), n)
	if err != nil {
		return nil, err
	}
	F1, err := spectrum(plan, qmf.SynthesisMirror(h0), n)
	if err != nil {
		return nil, err
	}

	bins := n/2 + 1
	resp := &Response{
		SampleRate:       cfg.SampleRate,
		FFTSize:          n,
		Parity:           parity,
		Freqs:            make([]float64, bins),
		LowDB:            make([]float64, bins),
		HighDB:           make([]float64, bins),
		PowerSum:         make([]float64, bins),
		ReconstructionDB: make([]float64, bins),
	}
	for k := range resp.Freqs {
		resp.Freqs[k] = float64(k) * cfg.SampleRate / float64(n)
	}

	re := make([]float64, bins)
	im := make([]float64, bins)
	power := make([]float64, bins)

	split(H0, re, im)
	vecmath.Magnitude(resp.LowDB, re, im)
	vecmath.Power(resp.PowerSum, re, im)

	split(H1, re, im)
	vecmath.Magnitude(resp.HighDB, re, im)
	vecmath.Power(power, re, im)
	for k := range resp.PowerSum {
		resp.PowerSum[k] += power[k]
	}

	// T = H0*F0 + H1*F1 with F0 = H0.
	T := make([]complex128, bins)
	for k := range T {
		T[k] = H0[k]*H0[k] + H1[k]*F1[k]
	}
	split(T, re, im)
	vecmath.Magnitude(resp.ReconstructionDB, re, im)

	toDB(resp.LowDB)
	toDB(resp.HighDB)
	toDB(resp.ReconstructionDB)
	return resp, nil
}

// spectrum returns the FFT of the zero-padded taps.
func spectrum(plan *algofft.Plan[complex128], taps []int16, n int) ([]complex128, error) {
	in := make([]complex128, n)
	for i, c := range taps {
		in[i] = complex(core.Q15ToFloat(c), 0)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("subband: FFT failed: %w", err)
	}
	return out, nil
}

// split copies the first len(re) bins of x into re and im.
func split(x []complex128, re, im []float64) {
	for k := range re {
		re[k] = real(x[k])
		im[k] = imag(x[k])
	}
}

func toDB(buf []float64) {
	for i, v := range buf {
		buf[i] = core.LinearToDB(v)
	}
}

// CrossoverBin returns the bin where the lowpass and highpass magnitudes
// are closest, ignoring bins where either is -Inf.
func (r *Response) CrossoverBin() int {
	best, bestDiff := -1, math.Inf(1)
	for k := range r.LowDB {
		lo, hi := r.LowDB[k], r.HighDB[k]
		if math.IsInf(lo, -1) || math.IsInf(hi, -1) {
			continue
		}
		if d := math.Abs(lo - hi); d < bestDiff {
			best, bestDiff = k, d
		}
	}
	return best
}

// RippleDB returns the peak-to-peak variation of the reconstruction
// transfer over all bins where it is finite. A perfect-reconstruction
// prototype gives 0.
func (r *Response) RippleDB() float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range r.ReconstructionDB {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return math.Inf(1)
	}
	return hi - lo
}
