package quasisep

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidParameter is returned when a kernel parameter violates the
// positivity or shape constraints stated by its constructor.
var ErrInvalidParameter = errors.New("quasisep: invalid kernel parameter")

// ErrNonStationary is returned when an autoregressive polynomial has a root
// with non-negative real part, so the corresponding process has no
// stationary distribution.
var ErrNonStationary = errors.New("quasisep: process is not stationary")

// ErrStructural is returned when a kernel combination cannot be represented
// as a valid quasiseparable generator.
var ErrStructural = errors.New("quasisep: combination is not representable")

// ErrUnsorted is returned when a point sequence is not in ascending order.
var ErrUnsorted = errors.New("quasisep: points are not in ascending order")

// Kernel is a stationary covariance function backed by a linear
// time-invariant state-space model. The covariance between two points
// x1 <= x2 is h^T Pinf expm(F^T (x2-x1)) h, where F is the transition
// generator, h the observation vector, and Pinf the stationary state
// covariance.
//
// Kernels are immutable values; the matrix accessors return fresh objects
// on every call, so callers may retain or modify the results freely.
type Kernel interface {
	// StateDim returns the dimension of the underlying state.
	StateDim() int

	// DesignMatrix returns the transition generator F.
	DesignMatrix() *mat.Dense

	// ObservationModel returns the observation vector h projecting the
	// state onto the observed process.
	ObservationModel() *mat.VecDense

	// StationaryCov returns the stationary state covariance Pinf.
	StationaryCov() *mat.SymDense

	// TransitionMatrix returns expm(F^T (x2-x1)), the state propagation
	// between two input locations. It satisfies the semigroup law
	// TransitionMatrix(x1, x3) = TransitionMatrix(x2, x3) *
	// TransitionMatrix(x1, x2) for x1 <= x2 <= x3.
	TransitionMatrix(x1, x2 float64) *mat.Dense

	// Eval returns the covariance between two points.
	Eval(x1, x2 float64) float64
}

// evalStateSpace evaluates h^T Pinf expm(F^T |x2-x1|) h, the covariance any
// state-space kernel assigns to a pair of points.
func evalStateSpace(k Kernel, x1, x2 float64) float64 {
	if x2 < x1 {
		x1, x2 = x2, x1
	}

	h := k.ObservationModel()

	ph := mat.NewVecDense(h.Len(), nil)
	ph.MulVec(k.StationaryCov(), h)

	ah := mat.NewVecDense(h.Len(), nil)
	ah.MulVec(k.TransitionMatrix(x1, x2), h)

	return mat.Dot(ph, ah)
}
