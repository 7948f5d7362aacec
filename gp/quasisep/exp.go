package quasisep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Exp is the exponential (Ornstein-Uhlenbeck) kernel
// k(tau) = sigma^2 exp(-tau / scale).
type Exp struct {
	scale float64
	sigma float64
}

var _ Kernel = (*Exp)(nil)

// NewExp constructs an exponential kernel with the given length scale and
// amplitude sigma. Both must be positive.
func NewExp(scale, sigma float64) (*Exp, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: scale %v, want > 0", ErrInvalidParameter, scale)
	}

	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma %v, want > 0", ErrInvalidParameter, sigma)
	}

	return &Exp{scale: scale, sigma: sigma}, nil
}

// StateDim returns 1.
func (k *Exp) StateDim() int { return 1 }

// DesignMatrix returns the transition generator F.
func (k *Exp) DesignMatrix() *mat.Dense {
	return mat.NewDense(1, 1, []float64{-1 / k.scale})
}

// ObservationModel returns the observation vector h.
func (k *Exp) ObservationModel() *mat.VecDense {
	return mat.NewVecDense(1, []float64{1})
}

// StationaryCov returns the stationary state covariance Pinf.
func (k *Exp) StationaryCov() *mat.SymDense {
	return mat.NewSymDense(1, []float64{k.sigma * k.sigma})
}

// TransitionMatrix returns expm(F^T (x2-x1)).
func (k *Exp) TransitionMatrix(x1, x2 float64) *mat.Dense {
	return mat.NewDense(1, 1, []float64{math.Exp(-(x2 - x1) / k.scale)})
}

// Eval returns the covariance between two points.
func (k *Exp) Eval(x1, x2 float64) float64 {
	return evalStateSpace(k, x1, x2)
}
