package qmf

import "github.com/cwbudde/algo-qmf/dsp/core"

// Parity selects which taps of the prototype are negated to form the
// analysis highpass.
type Parity int

const (
	// ParityOdd negates odd taps: h1[n] = (-1)^n * h0[n].
	ParityOdd Parity = iota
	// ParityEven negates even taps: h1[n] = -(-1)^n * h0[n].
	ParityEven
)

// String returns the parity name.
func (p Parity) String() string {
	switch p {
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	default:
		return "unknown"
	}
}

// AnalysisMirror returns the analysis highpass derived from h0.
func AnalysisMirror(h0 []int16, p Parity) []int16 {
	h1 := make([]int16, len(h0))
	AnalysisMirrorInto(h1, h0, p)
	return h1
}

// AnalysisMirrorInto writes the analysis highpass derived from h0 into
// dst, which must be at least as long as h0.
func AnalysisMirrorInto(dst, h0 []int16, p Parity) {
	flip := 1
	if p == ParityEven {
		flip = 0
	}
	mirrorInto(dst, h0, flip)
}

// SynthesisMirror returns the synthesis highpass f1 derived from h0:
// even taps negated, odd taps kept.
func SynthesisMirror(h0 []int16) []int16 {
	f1 := make([]int16, len(h0))
	SynthesisMirrorInto(f1, h0)
	return f1
}

// SynthesisMirrorInto writes the synthesis highpass derived from h0 into
// dst, which must be at least as long as h0.
func SynthesisMirrorInto(dst, h0 []int16) {
	mirrorInto(dst, h0, 0)
}

// mirrorInto negates the taps whose index parity equals flip. The
// negation saturates, so -32768 maps to 32767.
func mirrorInto(dst, h0 []int16, flip int) {
	if len(h0) == 0 {
		return
	}
	_ = dst[len(h0)-1] // bounds check hint
	for n, c := range h0 {
		if n&1 == flip {
			c = core.Negate16(c)
		}
		dst[n] = c
	}
}
