package qmf

import (
	"testing"

	"github.com/cwbudde/algo-qmf/dsp/core"
	"github.com/cwbudde/algo-qmf/dsp/stream"
)

// enabledConfig returns an enabled Config holding h0.
func enabledConfig(t *testing.T, h0 []int16) *Config {
	t.Helper()
	cfg, err := NewConfig(len(h0))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if err := cfg.SetCoefficients(h0); err != nil {
		t.Fatalf("SetCoefficients: %v", err)
	}
	cfg.SetEnable(true)
	return cfg
}

func mustAnalyzer(t *testing.T, cfg *Config, opts ...Option) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(cfg, opts...)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	return a
}

func mustSynthesizer(t *testing.T, cfg *Config, opts ...Option) *Synthesizer {
	t.Helper()
	s, err := NewSynthesizer(cfg, opts...)
	if err != nil {
		t.Fatalf("NewSynthesizer: %v", err)
	}
	return s
}

// q15mul is one rounded Q15 product, before saturation.
func q15mul(c, x int16) int64 {
	return core.RoundShift(int64(c)*int64(x), core.Q15Shift)
}

// refFilter is the zero-latency Q15 FIR reference.
func refFilter(h, x []int16) []int16 {
	y := make([]int16, len(x))
	for n := range x {
		var acc int64
		for k, c := range h {
			if n-k >= 0 {
				acc += int64(c) * int64(x[n-k])
			}
		}
		y[n] = core.Saturate16(core.RoundShift(acc, core.Q15Shift))
	}
	return y
}

// channel unpacks one channel of a word slice.
func channel(words []uint32, ch int) []int16 {
	out := make([]int16, len(words))
	for i, w := range words {
		out[i] = stream.Split(w)[ch]
	}
	return out
}

// expectPanic runs fn and returns the recovered error.
func expectPanic(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		var ok bool
		if err, ok = r.(error); !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
	}()
	fn()
	return nil
}
