// Package qmf implements a two-band Q15 quadrature mirror filter bank for
// packed stereo streams.
//
// The bank is built from one prototype lowpass h0. The complementary
// filters are pure functions of it:
//
//	h1[n] = (-1)^n * h0[n]     analysis highpass ([ParityOdd], default)
//	h1[n] = -(-1)^n * h0[n]    analysis highpass ([ParityEven])
//	f1[n] = -(-1)^n * h0[n]    synthesis highpass (fixed)
//
// The synthesis lowpass is h0 itself. There is no decimation: every
// cycle one stereo word enters and one word of each subband leaves.
//
// Components:
//
//   - [Config] is the shared register state: the prototype taps and the
//     enable flag. Every engine built on the same Config reads it each
//     tick, so a write takes effect on the next tick, including for
//     samples already inside a delay line. [RegisterFile] exposes the
//     same state as a 32-bit memory map.
//   - [Analyzer] splits a stereo stream into low and high subband
//     streams. Latency is L ticks, where L is the convolution latency.
//   - [Synthesizer] filters both subbands, sums them with one bit of
//     headroom, saturates and registers the result. Latency is L+1.
//   - [Loopback] wires an Analyzer to a Synthesizer through an optional
//     per-band hook.
//
// Flow control is lockstep. The Analyzer accepts input only on a tick
// where the bank is enabled and both subband consumers are ready; the
// Synthesizer accepts both subband inputs together only when the bank is
// enabled and its consumer is ready. On any other tick nothing moves:
// delay lines, the valid/last pipeline and the presented data are held,
// and no output is marked valid. A token held by a stall is emitted
// exactly once, on the tick the stall releases.
//
// Basic usage:
//
//	cfg, _ := qmf.NewConfig(4)
//	_ = cfg.SetCoefficients([]int16{16384, 16384, 0, 0})
//	cfg.SetEnable(true)
//	ana, _ := qmf.NewAnalyzer(cfg)
//	low, high, accepted := ana.Tick(stream.Token{Data: word, Valid: true}, true, true)
package qmf
