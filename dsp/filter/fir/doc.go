// Package fir provides a fixed-point direct-form FIR convolution engine.
//
// An [Engine] runs a Q15 tap-delay-line multiply-accumulate with a fixed
// processing latency. Every enabled step shifts one sample into the
// delay line, forms
//
//	y[n] = sat16(round(sum_{k=0}^{N-1} h[k] * x[n-k] / 2^15))
//
// and pushes y into a latency pipeline, so the result of the sample
// accepted at step T is returned by step T+L. A disabled step freezes
// both the delay line and the pipeline.
//
// Coefficients are passed on every step rather than stored, so a caller
// can share one mutable coefficient vector between many engines. A
// coefficient change takes effect on the next step and applies to
// samples already in the delay line.
//
// This package provides the processing runtime only. Coefficient design
// is a separate concern.
package fir
