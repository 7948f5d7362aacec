package quasisep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gp/gp/qsm"
	"github.com/cwbudde/algo-gp/internal/linalg"
)

// checkSorted verifies that a point sequence is in ascending order.
func checkSorted(xs []float64) error {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return fmt.Errorf("index %d: %w", i, ErrUnsorted)
		}
	}

	return nil
}

// ToSymmQSM builds the symmetric quasiseparable covariance matrix of a
// kernel over an ascending point sequence. Construction is O(N): each point
// contributes the stationary variance on the diagonal and a transition from
// its predecessor; entries across wider gaps are recovered by chaining
// those per-step transitions.
func ToSymmQSM(k Kernel, xs []float64) (*qsm.SymmQSM, error) {
	if err := checkSorted(xs); err != nil {
		return nil, err
	}

	n := len(xs)
	if n == 0 {
		return qsm.New(nil, nil, nil, nil)
	}

	order := k.StateDim()
	h := k.ObservationModel()

	ph := mat.NewVecDense(order, nil)
	ph.MulVec(k.StationaryCov(), h)

	variance := mat.Dot(h, ph)

	diag := make([]float64, n)
	p := make([]*mat.VecDense, n)
	q := make([]*mat.VecDense, n)
	a := make([]*mat.Dense, n)

	for i := range n {
		diag[i] = variance
		q[i] = h

		if i == 0 {
			a[i] = linalg.Eye(order)
		} else {
			a[i] = k.TransitionMatrix(xs[i-1], xs[i])
		}

		pi := mat.NewVecDense(order, nil)
		pi.MulVec(a[i].T(), ph)
		p[i] = pi
	}

	return qsm.New(diag, p, q, a)
}

// MulVec computes K @ ys, where K is the covariance matrix of the kernel
// over the ascending points xs, in O(N) time without materializing K.
func MulVec(k Kernel, xs, ys []float64) ([]float64, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("quasisep: %d points but %d values", len(xs), len(ys))
	}

	s, err := ToSymmQSM(k, xs)
	if err != nil {
		return nil, err
	}

	return s.MulVec(ys)
}

// CrossMulVec computes K(ts, xs) @ ys, the cross-covariance between two
// ascending point sequences applied to ys, in O(N+M) time. It sweeps the
// interleaved merge of both sequences twice, propagating a single state
// vector forward for the contributions below each target point and backward
// for those above it.
func CrossMulVec(k Kernel, ts, xs, ys []float64) ([]float64, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("quasisep: %d points but %d values", len(xs), len(ys))
	}

	if err := checkSorted(ts); err != nil {
		return nil, err
	}

	if err := checkSorted(xs); err != nil {
		return nil, err
	}

	out := make([]float64, len(ts))
	if len(ts) == 0 || len(xs) == 0 {
		return out, nil
	}

	order := k.StateDim()
	h := k.ObservationModel()

	ph := mat.NewVecDense(order, nil)
	ph.MulVec(k.StationaryCov(), h)

	v := mat.NewVecDense(order, nil)
	buf := mat.NewVecDense(order, nil)

	advance := func(from, to float64) {
		if to != from {
			buf.MulVec(k.TransitionMatrix(from, to), v)
			v.CopyVec(buf)
		}
	}

	// Forward sweep: contributions from xs[j] <= ts[i]. Sources go first on
	// ties so the zero-lag term lands in this pass.
	pos := math.Min(ts[0], xs[0])
	i, j := 0, 0

	for i < len(ts) || j < len(xs) {
		if j < len(xs) && (i >= len(ts) || xs[j] <= ts[i]) {
			advance(pos, xs[j])
			pos = xs[j]
			v.AddScaledVec(v, ys[j], h)
			j++
		} else {
			advance(pos, ts[i])
			pos = ts[i]
			out[i] = mat.Dot(ph, v)
			i++
		}
	}

	// Backward sweep: contributions from xs[j] > ts[i]. Targets go first on
	// ties; the tied source was already counted above.
	v.Zero()
	pos = math.Max(ts[len(ts)-1], xs[len(xs)-1])
	i, j = len(ts)-1, len(xs)-1

	for i >= 0 || j >= 0 {
		if i >= 0 && (j < 0 || ts[i] >= xs[j]) {
			advance(ts[i], pos)
			pos = ts[i]
			out[i] += mat.Dot(ph, v)
			i--
		} else {
			advance(xs[j], pos)
			pos = xs[j]
			v.AddScaledVec(v, ys[j], h)
			j--
		}
	}

	return out, nil
}
