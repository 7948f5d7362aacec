package quasisep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Cosine is the undamped oscillation kernel
// k(tau) = sigma^2 cos(2 pi tau / scale).
type Cosine struct {
	scale float64
	sigma float64
}

var _ Kernel = (*Cosine)(nil)

// NewCosine constructs a cosine kernel with the given period scale and
// amplitude sigma. Both must be positive.
func NewCosine(scale, sigma float64) (*Cosine, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: scale %v, want > 0", ErrInvalidParameter, scale)
	}

	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma %v, want > 0", ErrInvalidParameter, sigma)
	}

	return &Cosine{scale: scale, sigma: sigma}, nil
}

// StateDim returns 2.
func (k *Cosine) StateDim() int { return 2 }

// DesignMatrix returns the transition generator F.
func (k *Cosine) DesignMatrix() *mat.Dense {
	f := 2 * math.Pi / k.scale

	return mat.NewDense(2, 2, []float64{
		0, -f,
		f, 0,
	})
}

// ObservationModel returns the observation vector h.
func (k *Cosine) ObservationModel() *mat.VecDense {
	return mat.NewVecDense(2, []float64{k.sigma, 0})
}

// StationaryCov returns the stationary state covariance Pinf.
func (k *Cosine) StationaryCov() *mat.SymDense {
	return mat.NewSymDense(2, []float64{
		1, 0,
		0, 1,
	})
}

// TransitionMatrix returns expm(F^T (x2-x1)), a pure rotation.
func (k *Cosine) TransitionMatrix(x1, x2 float64) *mat.Dense {
	ft := 2 * math.Pi * (x2 - x1) / k.scale

	return mat.NewDense(2, 2, []float64{
		math.Cos(ft), math.Sin(ft),
		-math.Sin(ft), math.Cos(ft),
	})
}

// Eval returns the covariance between two points.
func (k *Cosine) Eval(x1, x2 float64) float64 {
	return evalStateSpace(k, x1, x2)
}
