package testutil

import (
	"math"
	"math/rand/v2"
	"sort"
)

// SortedPoints generates n sorted sample locations drawn uniformly from
// [lo, hi) with a fixed seed for reproducibility.
func SortedPoints(seed uint64, lo, hi float64, n int) []float64 {
	rng := rand.New(rand.NewPCG(seed, 0))
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*rng.Float64()
	}
	sort.Float64s(out)
	return out
}

// Sine evaluates sin(x) at each location.
func Sine(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Sin(x)
	}
	return out
}

// Linspace generates n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}
