package testutil

import (
	"fmt"
	"testing"
)

// RequireSliceWithin fails t if got and want differ in length or if any
// element pair differs by more than tol.
func RequireSliceWithin(t *testing.T, got, want []int16, tol int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := abs(int(got[i]) - int(want[i]))
		if diff > tol {
			t.Fatalf("index %d: got %d, want %d (diff %d > tol %d)", i, got[i], want[i], diff, tol)
		}
	}
}

// RequireWordsEqual fails t at the first differing stereo word.
func RequireWordsEqual(t *testing.T, got, want []uint32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("word %d: got %#08x, want %#08x", i, got[i], want[i])
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []int16) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0
	for i := range a {
		maxDiff = max(maxDiff, abs(int(a[i])-int(b[i])))
	}
	return maxDiff, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
