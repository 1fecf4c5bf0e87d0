package core

import (
	"math"
	"testing"
)

func TestSaturate16(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		expected int16
	}{
		{name: "inside", value: 1234, expected: 1234},
		{name: "max", value: 32767, expected: 32767},
		{name: "min", value: -32768, expected: -32768},
		{name: "above", value: 32768, expected: 32767},
		{name: "below", value: -32769, expected: -32768},
		{name: "far above", value: 1 << 40, expected: 32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Saturate16(tt.value)
			if got != tt.expected {
				t.Fatalf("Saturate16(%d) = %d, want %d", tt.value, got, tt.expected)
			}
		})
	}
}

func TestSaturatingAdd(t *testing.T) {
	if got := SaturatingAdd(30000, 30000); got != MaxSample {
		t.Fatalf("positive overflow = %d, want %d", got, MaxSample)
	}
	if got := SaturatingAdd(-30000, -30000); got != MinSample {
		t.Fatalf("negative overflow = %d, want %d", got, MinSample)
	}
	if got := SaturatingAdd(1000, -250); got != 750 {
		t.Fatalf("in range = %d, want 750", got)
	}
	if got := SaturatingAdd(MinSample, MinSample); got != MinSample {
		t.Fatalf("extreme = %d, want %d", got, MinSample)
	}
}

func TestNegate16(t *testing.T) {
	if got := Negate16(5); got != -5 {
		t.Fatalf("Negate16(5) = %d", got)
	}
	if got := Negate16(MaxSample); got != -MaxSample {
		t.Fatalf("Negate16(max) = %d", got)
	}
	if got := Negate16(MinSample); got != MaxSample {
		t.Fatalf("Negate16(min) = %d, want %d", got, MaxSample)
	}
}

func TestRoundShift(t *testing.T) {
	tests := []struct {
		acc   int64
		shift uint
		want  int64
	}{
		{acc: 3, shift: 1, want: 2},
		{acc: 2, shift: 1, want: 1},
		{acc: -3, shift: 1, want: -1},
		{acc: 16384 * 32767, shift: 15, want: 16384},
		{acc: 7, shift: 0, want: 7},
	}
	for _, tt := range tests {
		if got := RoundShift(tt.acc, tt.shift); got != tt.want {
			t.Errorf("RoundShift(%d, %d) = %d, want %d", tt.acc, tt.shift, got, tt.want)
		}
	}
}

func TestQ15Conversions(t *testing.T) {
	if got := Q15FromFloat(0.5); got != 16384 {
		t.Fatalf("Q15FromFloat(0.5) = %d, want 16384", got)
	}
	if got := Q15FromFloat(1); got != MaxSample {
		t.Fatalf("Q15FromFloat(1) = %d, want %d", got, MaxSample)
	}
	if got := Q15FromFloat(-2); got != MinSample {
		t.Fatalf("Q15FromFloat(-2) = %d, want %d", got, MinSample)
	}
	if got := Q15FromFloat(math.NaN()); got != 0 {
		t.Fatalf("Q15FromFloat(NaN) = %d, want 0", got)
	}
	if got := Q15ToFloat(-16384); got != -0.5 {
		t.Fatalf("Q15ToFloat(-16384) = %v, want -0.5", got)
	}
}

func TestDBConversions(t *testing.T) {
	if got := LinearToDB(1); got != 0 {
		t.Fatalf("LinearToDB(1) = %v, want 0", got)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}
