package testutil

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// RequireNearlyEqual fails t if got and want differ by more than eps
// (absolute tolerance).
func RequireNearlyEqual(t *testing.T, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("got %v, want %v (diff %v > eps %v)", got, want, math.Abs(got-want), eps)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireMatNearlyEqual fails t if the two matrices differ in shape or if any
// entry pair exceeds eps (absolute tolerance). Either argument may be nil to
// assert an empty matrix.
func RequireMatNearlyEqual(t *testing.T, got, want mat.Matrix, eps float64) {
	t.Helper()
	if got == nil || want == nil {
		if got != want {
			t.Fatalf("nil mismatch: got %v, want %v", got, want)
		}
		return
	}
	gr, gc := got.Dims()
	wr, wc := want.Dims()
	if gr != wr || gc != wc {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", gr, gc, wr, wc)
	}
	for i := range gr {
		for j := range gc {
			diff := math.Abs(got.At(i, j) - want.At(i, j))
			if diff > eps {
				t.Fatalf("entry (%d,%d): got %v, want %v (diff %v > eps %v)",
					i, j, got.At(i, j), want.At(i, j), diff, eps)
			}
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

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// MaxAbsDiffMat returns the maximum absolute entry difference between two
// matrices of equal shape.
func MaxAbsDiffMat(a, b mat.Matrix) (float64, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return 0, fmt.Errorf("shape mismatch: %dx%d vs %dx%d", ar, ac, br, bc)
	}
	maxDiff := 0.0
	for i := range ar {
		for j := range ac {
			d := math.Abs(a.At(i, j) - b.At(i, j))
			if d > maxDiff {
				maxDiff = d
			}
		}
	}
	return maxDiff, nil
}
