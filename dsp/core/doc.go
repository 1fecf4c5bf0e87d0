// Package core holds the shared numeric plumbing of the filter bank:
// Q15 saturation and rounding, float conversions, and the processor
// option set used by the measurement code.
package core
