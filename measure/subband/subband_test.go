package subband

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-qmf/dsp/core"
	"github.com/cwbudde/algo-qmf/dsp/filter/fir"
	"github.com/cwbudde/algo-qmf/dsp/filter/qmf"
)

var haar = []int16{16384, 16384}

func TestAnalyze_Errors(t *testing.T) {
	if _, err := Analyze(nil, qmf.ParityOdd); !errors.Is(err, ErrEmptyPrototype) {
		t.Fatalf("empty: got %v, want ErrEmptyPrototype", err)
	}
	long := make([]int16, 17)
	if _, err := Analyze(long, qmf.ParityOdd, core.WithFFTSize(16)); !errors.Is(err, ErrPrototypeTooLong) {
		t.Fatalf("long: got %v, want ErrPrototypeTooLong", err)
	}
}

func TestAnalyze_Bins(t *testing.T) {
	r, err := Analyze(haar, qmf.ParityOdd, core.WithFFTSize(64), core.WithSampleRate(32000))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Freqs) != 33 || r.FFTSize != 64 {
		t.Fatalf("got %d bins, FFT %d", len(r.Freqs), r.FFTSize)
	}
	if r.Freqs[32] != 16000 {
		t.Fatalf("last bin = %v Hz, want Nyquist", r.Freqs[32])
	}
}

func TestAnalyze_HaarIsPerfect(t *testing.T) {
	r, err := Analyze(haar, qmf.ParityOdd)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.LowDB[0]) > 1e-9 {
		t.Errorf("lowpass DC = %.3f dB, want 0", r.LowDB[0])
	}
	last := len(r.HighDB) - 1
	if math.Abs(r.HighDB[last]) > 1e-9 {
		t.Errorf("highpass Nyquist = %.3f dB, want 0", r.HighDB[last])
	}
	if r.LowDB[last] > -200 || r.HighDB[0] > -200 {
		t.Errorf("stopband nulls missing: low@Nyq %.1f dB, high@DC %.1f dB", r.LowDB[last], r.HighDB[0])
	}
	for k, p := range r.PowerSum {
		if math.Abs(p-1) > 1e-9 {
			t.Fatalf("bin %d: power sum %v, want 1", k, p)
		}
	}
	if ripple := r.RippleDB(); ripple > 1e-9 {
		t.Errorf("ripple = %v dB, want 0", ripple)
	}
	if got, want := r.CrossoverBin(), r.FFTSize/4; got != want {
		t.Errorf("crossover bin = %d, want %d", got, want)
	}
}

func TestAnalyze_MatchesDirectResponse(t *testing.T) {
	h0 := []int16{1200, 5400, 11800, 11800, 5400, 1200}
	r, err := Analyze(h0, qmf.ParityEven, core.WithFFTSize(128))
	if err != nil {
		t.Fatal(err)
	}
	h1 := qmf.AnalysisMirror(h0, qmf.ParityEven)
	for _, k := range []int{5, 17, 40, 50} {
		f := r.Freqs[k]
		wantLow := fir.MagnitudeDB(h0, f, r.SampleRate)
		wantHigh := fir.MagnitudeDB(h1, f, r.SampleRate)
		if !nearDB(r.LowDB[k], wantLow) || !nearDB(r.HighDB[k], wantHigh) {
			t.Errorf("bin %d: got (%.6f, %.6f) dB, want (%.6f, %.6f)", k, r.LowDB[k], r.HighDB[k], wantLow, wantHigh)
		}
		p0 := cmplx.Abs(fir.Response(h0, f, r.SampleRate))
		p1 := cmplx.Abs(fir.Response(h1, f, r.SampleRate))
		if math.Abs(r.PowerSum[k]-(p0*p0+p1*p1)) > 1e-9 {
			t.Errorf("bin %d: power sum %v, want %v", k, r.PowerSum[k], p0*p0+p1*p1)
		}
	}
}

func TestAnalyze_SingleTapOddParityCancels(t *testing.T) {
	r, err := Analyze([]int16{23170}, qmf.ParityOdd, core.WithFFTSize(32))
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range r.ReconstructionDB {
		if !math.IsInf(v, -1) && v > -200 {
			t.Fatalf("bin %d: transfer %.1f dB, want a null", k, v)
		}
	}
	if !math.IsInf(r.RippleDB(), 1) {
		t.Fatalf("ripple of an all-null transfer should be +Inf, got %v", r.RippleDB())
	}
}

// nearDB compares two dB values, treating deep nulls as equal.
func nearDB(a, b float64) bool {
	if a < -200 && b < -200 {
		return true
	}
	return math.Abs(a-b) < 1e-6
}
