package kernel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidParameter reports a kernel or metric parameter outside its valid
// domain.
var ErrInvalidParameter = errors.New("kernel: invalid parameter")

// ErrNotPositiveDefinite reports a metric covariance that has no Cholesky
// factorization.
var ErrNotPositiveDefinite = errors.New("kernel: covariance is not positive definite")

// Metric maps a coordinate difference to a squared distance. Implementations
// panic when the difference length does not match their configured dimension.
type Metric func(diff []float64) float64

// UnitMetric is the squared Euclidean norm of the difference.
func UnitMetric(diff []float64) float64 {
	var r2 float64
	for _, d := range diff {
		r2 += d * d
	}

	return r2
}

// DiagonalMetric scales each dimension by its own length scale before
// applying the Euclidean norm. A single length scale broadcasts across all
// dimensions.
func DiagonalMetric(ell ...float64) (Metric, error) {
	if len(ell) == 0 {
		return nil, fmt.Errorf("%w: no length scales", ErrInvalidParameter)
	}

	for _, l := range ell {
		if !(l > 0) {
			return nil, fmt.Errorf("%w: length scale %v, want > 0", ErrInvalidParameter, l)
		}
	}

	scale := append([]float64(nil), ell...)

	return func(diff []float64) float64 {
		if len(scale) == 1 {
			var r2 float64
			for _, d := range diff {
				d /= scale[0]
				r2 += d * d
			}

			return r2
		}

		if len(diff) != len(scale) {
			panic("kernel: metric dimension mismatch")
		}

		var r2 float64
		for i, d := range diff {
			d /= scale[i]
			r2 += d * d
		}

		return r2
	}, nil
}

// CholeskyMetric builds a Mahalanobis metric from an already-factorized
// covariance: the squared distance is diff' cov^-1 diff.
func CholeskyMetric(chol *mat.Cholesky) Metric {
	return func(diff []float64) float64 {
		v := mat.NewVecDense(len(diff), diff)

		var sol mat.VecDense
		if err := chol.SolveVecTo(&sol, v); err != nil {
			panic(fmt.Sprintf("kernel: metric solve failed: %v", err))
		}

		return mat.Dot(v, &sol)
	}
}

// DenseMetric factorizes the covariance and builds the Mahalanobis metric
// from it.
func DenseMetric(cov *mat.SymDense) (Metric, error) {
	var chol mat.Cholesky
	if !chol.Factorize(cov) {
		return nil, ErrNotPositiveDefinite
	}

	return CholeskyMetric(&chol), nil
}

// radial is the shared base of metric-driven stationary kernels.
type radial struct {
	metric Metric
}

func newRadial(m Metric) radial {
	if m == nil {
		m = UnitMetric
	}

	return radial{metric: m}
}

func (r radial) dist2(x1, x2 []float64) float64 {
	if len(x1) != len(x2) {
		panic("kernel: input dimension mismatch")
	}

	diff := make([]float64, len(x1))
	for i := range diff {
		diff[i] = x1[i] - x2[i]
	}

	return r.metric(diff)
}

// dist is the metric distance, the square root of dist2.
func (r radial) dist(x1, x2 []float64) float64 {
	return math.Sqrt(r.dist2(x1, x2))
}
