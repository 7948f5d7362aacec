package quasisep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Celerite is the rotation-decay kernel
// k(tau) = exp(-c tau) (a cos(d tau) + b sin(d tau)), the building block of
// celerite-style Gaussian process models.
type Celerite struct {
	a, b, c, d float64
}

var _ Kernel = (*Celerite)(nil)

// NewCelerite constructs a celerite kernel. The variance a and the decay
// rate c must be positive; b and d may take either sign. The stationary
// covariance of a single term is indefinite when |b| > a, which is still a
// valid component of a sum as long as the total remains positive definite.
func NewCelerite(a, b, c, d float64) (*Celerite, error) {
	if a <= 0 {
		return nil, fmt.Errorf("%w: celerite a %v, want > 0", ErrInvalidParameter, a)
	}

	if c <= 0 {
		return nil, fmt.Errorf("%w: celerite c %v, want > 0", ErrInvalidParameter, c)
	}

	return &Celerite{a: a, b: b, c: c, d: d}, nil
}

// StateDim returns 2.
func (k *Celerite) StateDim() int { return 2 }

// DesignMatrix returns the transition generator F.
func (k *Celerite) DesignMatrix() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		-k.c, -k.d,
		k.d, -k.c,
	})
}

// ObservationModel returns the observation vector h.
func (k *Celerite) ObservationModel() *mat.VecDense {
	return mat.NewVecDense(2, []float64{1, 0})
}

// StationaryCov returns the stationary state covariance Pinf.
func (k *Celerite) StationaryCov() *mat.SymDense {
	return mat.NewSymDense(2, []float64{
		k.a, -k.b,
		-k.b, k.a,
	})
}

// TransitionMatrix returns expm(F^T (x2-x1)), a decaying rotation.
func (k *Celerite) TransitionMatrix(x1, x2 float64) *mat.Dense {
	dt := x2 - x1
	e := math.Exp(-k.c * dt)
	cos, sin := math.Cos(k.d*dt), math.Sin(k.d*dt)

	return mat.NewDense(2, 2, []float64{
		e * cos, e * sin,
		-e * sin, e * cos,
	})
}

// Eval returns the covariance between two points.
func (k *Celerite) Eval(x1, x2 float64) float64 {
	return evalStateSpace(k, x1, x2)
}
