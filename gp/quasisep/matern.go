package quasisep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matern32 is the Matern-3/2 kernel
// k(tau) = sigma^2 (1 + f tau) exp(-f tau) with f = sqrt(3) / scale.
type Matern32 struct {
	scale float64
	sigma float64
}

var _ Kernel = (*Matern32)(nil)

// NewMatern32 constructs a Matern-3/2 kernel with the given length scale
// and amplitude sigma. Both must be positive.
func NewMatern32(scale, sigma float64) (*Matern32, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: scale %v, want > 0", ErrInvalidParameter, scale)
	}

	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma %v, want > 0", ErrInvalidParameter, sigma)
	}

	return &Matern32{scale: scale, sigma: sigma}, nil
}

// StateDim returns 2.
func (k *Matern32) StateDim() int { return 2 }

// DesignMatrix returns the transition generator F.
func (k *Matern32) DesignMatrix() *mat.Dense {
	f := math.Sqrt(3) / k.scale

	return mat.NewDense(2, 2, []float64{
		0, 1,
		-f * f, -2 * f,
	})
}

// ObservationModel returns the observation vector h.
func (k *Matern32) ObservationModel() *mat.VecDense {
	return mat.NewVecDense(2, []float64{k.sigma, 0})
}

// StationaryCov returns the stationary state covariance Pinf.
func (k *Matern32) StationaryCov() *mat.SymDense {
	f := math.Sqrt(3) / k.scale

	return mat.NewSymDense(2, []float64{
		1, 0,
		0, f * f,
	})
}

// TransitionMatrix returns expm(F^T (x2-x1)) in closed form.
func (k *Matern32) TransitionMatrix(x1, x2 float64) *mat.Dense {
	dt := x2 - x1
	f := math.Sqrt(3) / k.scale
	e := math.Exp(-f * dt)

	return mat.NewDense(2, 2, []float64{
		e * (1 + f*dt), -e * f * f * dt,
		e * dt, e * (1 - f*dt),
	})
}

// Eval returns the covariance between two points.
func (k *Matern32) Eval(x1, x2 float64) float64 {
	return evalStateSpace(k, x1, x2)
}

// Matern52 is the Matern-5/2 kernel
// k(tau) = sigma^2 (1 + f tau + f^2 tau^2 / 3) exp(-f tau) with
// f = sqrt(5) / scale.
type Matern52 struct {
	scale float64
	sigma float64
}

var _ Kernel = (*Matern52)(nil)

// NewMatern52 constructs a Matern-5/2 kernel with the given length scale
// and amplitude sigma. Both must be positive.
func NewMatern52(scale, sigma float64) (*Matern52, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: scale %v, want > 0", ErrInvalidParameter, scale)
	}

	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma %v, want > 0", ErrInvalidParameter, sigma)
	}

	return &Matern52{scale: scale, sigma: sigma}, nil
}

// StateDim returns 3.
func (k *Matern52) StateDim() int { return 3 }

// DesignMatrix returns the transition generator F.
func (k *Matern52) DesignMatrix() *mat.Dense {
	f := math.Sqrt(5) / k.scale

	return mat.NewDense(3, 3, []float64{
		0, 1, 0,
		0, 0, 1,
		-f * f * f, -3 * f * f, -3 * f,
	})
}

// ObservationModel returns the observation vector h.
func (k *Matern52) ObservationModel() *mat.VecDense {
	return mat.NewVecDense(3, []float64{k.sigma, 0, 0})
}

// StationaryCov returns the stationary state covariance Pinf.
func (k *Matern52) StationaryCov() *mat.SymDense {
	f := math.Sqrt(5) / k.scale
	f2 := f * f

	return mat.NewSymDense(3, []float64{
		1, 0, -f2 / 3,
		0, f2 / 3, 0,
		-f2 / 3, 0, f2 * f2,
	})
}

// TransitionMatrix returns expm(F^T (x2-x1)) in closed form.
func (k *Matern52) TransitionMatrix(x1, x2 float64) *mat.Dense {
	dt := x2 - x1
	f := math.Sqrt(5) / k.scale
	fd := f * dt
	e := math.Exp(-fd)

	return mat.NewDense(3, 3, []float64{
		e * (1 + fd + fd*fd/2), -e * f * fd * fd / 2, e * f * f * fd * (fd/2 - 1),
		e * dt * (1 + fd), e * (1 + fd - fd*fd), e * f * fd * (fd - 3),
		e * dt * dt / 2, e * dt * (1 - fd/2), e * (1 - 2*fd + fd*fd/2),
	})
}

// Eval returns the covariance between two points.
func (k *Matern52) Eval(x1, x2 float64) float64 {
	return evalStateSpace(k, x1, x2)
}
