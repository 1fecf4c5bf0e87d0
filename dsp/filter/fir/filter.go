package fir

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-qmf/dsp/core"
	"github.com/cwbudde/algo-qmf/dsp/delay"
)

// Errors returned by New.
var (
	ErrInvalidTaps    = errors.New("fir: tap count must be positive")
	ErrInvalidLatency = errors.New("fir: latency must be positive")
)

// Engine is a Q15 FIR convolution engine with a circular delay line and
// a fixed output latency.
type Engine struct {
	delay []int16
	pos   int
	pipe  *delay.Line[int16]
}

// New creates an engine with the given tap count and latency in steps.
func New(taps, latency int) (*Engine, error) {
	if taps <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTaps, taps)
	}
	if latency <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLatency, latency)
	}
	pipe, err := delay.New[int16](latency)
	if err != nil {
		return nil, fmt.Errorf("fir: %w", err)
	}
	return &Engine{
		delay: make([]int16, taps),
		pipe:  pipe,
	}, nil
}

// Step applies one clock step. A set clear zeroes the delay line and the
// latency pipeline before anything else happens. When enable is set the
// sample x is shifted in and the output of the sample accepted Latency()
// enabled steps earlier is returned; otherwise the state is frozen and
// the current output is returned unchanged.
//
// coeffs must hold at least Taps() values when enable is set; extra
// values are ignored. A disabled step never reads coeffs, so a clearing
// step may pass nil.
func (e *Engine) Step(x int16, coeffs []int16, enable, clear bool) int16 {
	if clear {
		e.Reset()
	}
	if !enable {
		return e.pipe.Peek()
	}
	return e.pipe.Shift(e.convolve(x, coeffs))
}

func (e *Engine) convolve(x int16, coeffs []int16) int16 {
	e.delay[e.pos] = x
	n := len(e.delay)
	_ = coeffs[n-1] // bounds check hint
	var acc int64
	p := e.pos
	for k := range n {
		acc += int64(coeffs[k]) * int64(e.delay[p])
		p--
		if p < 0 {
			p = n - 1
		}
	}
	e.pos++
	if e.pos >= n {
		e.pos = 0
	}
	return core.Saturate16(core.RoundShift(acc, core.Q15Shift))
}

// Out returns the current output, the value the next enabled step will
// return. It is stable while the engine is disabled.
func (e *Engine) Out() int16 {
	return e.pipe.Peek()
}

// Reset clears the delay line and the latency pipeline to zero.
func (e *Engine) Reset() {
	for i := range e.delay {
		e.delay[i] = 0
	}
	e.pos = 0
	e.pipe.Reset()
}

// Taps returns the number of taps.
func (e *Engine) Taps() int {
	return len(e.delay)
}

// Latency returns the fixed processing latency in enabled steps.
func (e *Engine) Latency() int {
	return e.pipe.Len()
}

// Response computes the complex frequency response H(e^{-jw}) of Q15
// coefficients at the given frequency (Hz) and sample rate (Hz).
func Response(coeffs []int16, freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range coeffs {
		h += complex(core.Q15ToFloat(c), 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// MagnitudeDB returns the magnitude response of Q15 coefficients in dB at
// the given frequency.
func MagnitudeDB(coeffs []int16, freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(Response(coeffs, freqHz, sampleRate)))
}
