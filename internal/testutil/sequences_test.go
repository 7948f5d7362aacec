package testutil

import (
	"math"
	"sort"
	"testing"
)

func TestSortedPointsDeterministic(t *testing.T) {
	a := SortedPoints(7, -1, 4, 20)
	b := SortedPoints(7, -1, 4, 20)

	if len(a) != 20 {
		t.Fatalf("len = %d, want 20", len(a))
	}

	if !sort.Float64sAreSorted(a) {
		t.Fatal("points are not sorted")
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: %v != %v for the same seed", i, a[i], b[i])
		}

		if a[i] < -1 || a[i] >= 4 {
			t.Fatalf("index %d: %v outside [-1, 4)", i, a[i])
		}
	}
}

func TestLinspace(t *testing.T) {
	xs := Linspace(0, 2, 5)

	want := []float64{0, 0.5, 1, 1.5, 2}
	for i := range want {
		if math.Abs(xs[i]-want[i]) > 1e-15 {
			t.Fatalf("index %d: got %v, want %v", i, xs[i], want[i])
		}
	}

	single := Linspace(3, 9, 1)
	if len(single) != 1 || single[0] != 3 {
		t.Fatalf("single-point linspace = %v, want [3]", single)
	}
}

func TestSine(t *testing.T) {
	ys := Sine([]float64{0, math.Pi / 2})

	if math.Abs(ys[0]) > 1e-15 || math.Abs(ys[1]-1) > 1e-15 {
		t.Fatalf("Sine = %v, want [0 1]", ys)
	}
}
