package qmf

import (
	"math/rand"
	"testing"
)

func TestSynthesisMirror_Relation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := range 50 {
		h0 := make([]int16, 1+rng.Intn(32))
		for i := range h0 {
			h0[i] = int16(rng.Intn(65535) - 32767)
		}
		f1 := SynthesisMirror(h0)
		for n := range h0 {
			want := h0[n]
			if n%2 == 0 {
				want = -h0[n]
			}
			if f1[n] != want {
				t.Fatalf("trial %d tap %d: f1 = %d, want %d", trial, n, f1[n], want)
			}
		}
	}
}

func TestAnalysisMirror_Parity(t *testing.T) {
	h0 := []int16{100, 200, -300, 400, 500}
	tests := []struct {
		parity Parity
		want   []int16
	}{
		{ParityOdd, []int16{100, -200, -300, -400, 500}},
		{ParityEven, []int16{-100, 200, 300, 400, -500}},
	}
	for _, tt := range tests {
		got := AnalysisMirror(h0, tt.parity)
		for n := range got {
			if got[n] != tt.want[n] {
				t.Errorf("%v tap %d: got %d, want %d", tt.parity, n, got[n], tt.want[n])
			}
		}
	}
}

func TestMirror_SynthesisIsNegatedAnalysis(t *testing.T) {
	// With the odd convention f1 = -h1 holds tap by tap.
	h0 := []int16{1, -2, 3, -4, 5, -6, 7}
	h1 := AnalysisMirror(h0, ParityOdd)
	f1 := SynthesisMirror(h0)
	for n := range h0 {
		if f1[n] != -h1[n] {
			t.Errorf("tap %d: f1 = %d, -h1 = %d", n, f1[n], -h1[n])
		}
	}
}

func TestMirror_MostNegativeTapSaturates(t *testing.T) {
	h0 := []int16{-32768, -32768}
	f1 := SynthesisMirror(h0)
	if f1[0] != 32767 {
		t.Errorf("negated -32768: got %d, want 32767", f1[0])
	}
	if f1[1] != -32768 {
		t.Errorf("kept -32768: got %d, want -32768", f1[1])
	}
	h1 := AnalysisMirror(h0, ParityOdd)
	if h1[0] != -32768 || h1[1] != 32767 {
		t.Errorf("analysis mirror: got %v", h1)
	}
}

func TestMirror_Empty(t *testing.T) {
	if got := SynthesisMirror(nil); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
	AnalysisMirrorInto(nil, nil, ParityOdd)
}

func TestMirrorInto_DoesNotTouchSource(t *testing.T) {
	h0 := []int16{10, 20, 30}
	dst := make([]int16, 3)
	SynthesisMirrorInto(dst, h0)
	if h0[0] != 10 || h0[1] != 20 || h0[2] != 30 {
		t.Fatalf("source modified: %v", h0)
	}
}

func TestParityString(t *testing.T) {
	if ParityOdd.String() != "odd" || ParityEven.String() != "even" || Parity(9).String() != "unknown" {
		t.Fatal("unexpected parity names")
	}
}
