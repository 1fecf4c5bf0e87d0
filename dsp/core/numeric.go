package core

import "math"

// Q15 sample range and scale.
const (
	MaxSample int16 = math.MaxInt16
	MinSample int16 = math.MinInt16

	// Q15Shift is the number of fractional bits of a Q15 value.
	Q15Shift = 15
	// Q15One is the integer representation of 1.0, which itself is not
	// representable; the largest coefficient is Q15One-1.
	Q15One = 1 << Q15Shift
)

// Saturate16 clamps v to the signed 16-bit range.
func Saturate16(v int64) int16 {
	if v > int64(MaxSample) {
		return MaxSample
	}

	if v < int64(MinSample) {
		return MinSample
	}

	return int16(v)
}

// SaturatingAdd returns a+b clamped to the signed 16-bit range. The sum is
// formed with one bit of headroom, which is exact for any two int16 operands.
func SaturatingAdd(a, b int16) int16 {
	sum := int32(a) + int32(b)
	return Saturate16(int64(sum))
}

// Negate16 returns -v. MinSample has no positive counterpart and
// saturates to MaxSample.
func Negate16(v int16) int16 {
	if v == MinSample {
		return MaxSample
	}

	return -v
}

// RoundShift divides acc by 2^shift, rounding half toward positive infinity.
func RoundShift(acc int64, shift uint) int64 {
	if shift == 0 {
		return acc
	}

	return (acc + 1<<(shift-1)) >> shift
}

// Q15FromFloat converts a value in [-1, 1) to Q15 with rounding and
// saturation. NaN maps to zero.
func Q15FromFloat(f float64) int16 {
	if math.IsNaN(f) {
		return 0
	}

	scaled := math.Round(f * Q15One)
	if scaled >= float64(MaxSample) {
		return MaxSample
	}

	if scaled <= float64(MinSample) {
		return MinSample
	}

	return int16(scaled)
}

// Q15ToFloat converts a Q15 value to a float in [-1, 1).
func Q15ToFloat(v int16) float64 {
	return float64(v) / Q15One
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
