package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireBounded fails t unless every estimate lies within its error bound
// of the true limit: |estimates[i] - limit| <= abserr[i].
func RequireBounded(t *testing.T, estimates, abserr []float64, limit float64) {
	t.Helper()
	if len(estimates) != len(abserr) {
		t.Fatalf("length mismatch: %d estimates, %d error bounds", len(estimates), len(abserr))
	}
	for i, v := range estimates {
		if abserr[i] < 0 {
			t.Fatalf("index %d: negative error bound %v", i, abserr[i])
		}
		if trueErr := math.Abs(v - limit); trueErr > abserr[i] {
			t.Fatalf("index %d: true error %v exceeds bound %v (estimate %v)", i, trueErr, abserr[i], v)
		}
	}
}
