package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-qmf/dsp/core"
	"github.com/cwbudde/algo-qmf/dsp/stream"
)

// DeterministicSine generates a Q15 sine wave; amplitude is in [0, 1].
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []int16 {
	out := make([]int16, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = core.Q15FromFloat(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// DeterministicNoise generates uniform Q15 noise in [-peak, peak] with a
// fixed seed for reproducibility.
func DeterministicNoise(seed int64, peak int16, length int) []int16 {
	out := make([]int16, length)
	rng := rand.New(rand.NewSource(seed))
	span := 2*int(peak) + 1
	for i := range out {
		out[i] = int16(rng.Intn(span) - int(peak))
	}
	return out
}

// Impulse generates an impulse of the given height at pos.
func Impulse(length, pos int, height int16) []int16 {
	out := make([]int16, length)
	if pos >= 0 && pos < length {
		out[pos] = height
	}
	return out
}

// Interleave packs two channels into stereo words. The shorter channel is
// zero-extended.
func Interleave(left, right []int16) []uint32 {
	n := max(len(left), len(right))
	out := make([]uint32, n)
	for i := range out {
		var l, r int16
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		out[i] = stream.Pack(l, r)
	}
	return out
}

// Deinterleave splits stereo words into two channels.
func Deinterleave(words []uint32) (left, right []int16) {
	left = make([]int16, len(words))
	right = make([]int16, len(words))
	for i, w := range words {
		left[i], right[i] = stream.Unpack(w)
	}
	return left, right
}
