// Package subband measures the frequency behaviour of a QMF prototype.
//
// [Analyze] transforms the prototype h0, the analysis highpass h1 and the
// synthesis highpass f1 with an FFT and reports, per bin from DC to
// Nyquist:
//
//   - the analysis lowpass and highpass magnitudes |H0| and |H1| in dB,
//   - the power sum |H0|^2 + |H1|^2 (1 for a power-complementary pair),
//   - the end-to-end transfer |H0*F0 + H1*F1| of a full-rate
//     analysis/synthesis chain in dB, with F0 = H0.
//
// A flat transfer means the chain reconstructs its input up to a delay.
// The measurement runs on the exact Q15 taps, so it reflects coefficient
// quantization but not the rounding inside the convolution engine.
package subband
