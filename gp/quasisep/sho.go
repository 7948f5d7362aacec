package quasisep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// criticalQTol is the half-width of the quality-factor band treated as
// critically damped, where the oscillation frequency eta vanishes.
const criticalQTol = 1e-10

// SHO is the stochastically driven damped harmonic oscillator kernel with
// undamped angular frequency omega, quality factor q, and amplitude sigma.
// For q > 1/2 the kernel oscillates, for q < 1/2 it decays monotonically,
// and at q = 1/2 it degenerates to the critically damped form.
type SHO struct {
	omega float64
	q     float64
	sigma float64
}

var _ Kernel = (*SHO)(nil)

// NewSHO constructs a damped harmonic oscillator kernel. All three
// parameters must be positive.
func NewSHO(omega, q, sigma float64) (*SHO, error) {
	if omega <= 0 {
		return nil, fmt.Errorf("%w: omega %v, want > 0", ErrInvalidParameter, omega)
	}

	if q <= 0 {
		return nil, fmt.Errorf("%w: quality factor %v, want > 0", ErrInvalidParameter, q)
	}

	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma %v, want > 0", ErrInvalidParameter, sigma)
	}

	return &SHO{omega: omega, q: q, sigma: sigma}, nil
}

// StateDim returns 2.
func (k *SHO) StateDim() int { return 2 }

// DesignMatrix returns the transition generator F.
func (k *SHO) DesignMatrix() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		0, 1,
		-k.omega * k.omega, -k.omega / k.q,
	})
}

// ObservationModel returns the observation vector h.
func (k *SHO) ObservationModel() *mat.VecDense {
	return mat.NewVecDense(2, []float64{k.sigma, 0})
}

// StationaryCov returns the stationary state covariance Pinf.
func (k *SHO) StationaryCov() *mat.SymDense {
	return mat.NewSymDense(2, []float64{
		1, 0,
		0, k.omega * k.omega,
	})
}

// TransitionMatrix returns expm(F^T (x2-x1)) in closed form, switching
// between the oscillatory, critically damped, and overdamped branches.
func (k *SHO) TransitionMatrix(x1, x2 float64) *mat.Dense {
	dt := x2 - x1
	w := k.omega
	c := w / (2 * k.q)

	var cos, sin float64

	switch {
	case math.Abs(k.q-0.5) < criticalQTol:
		e := math.Exp(-w * dt)

		return mat.NewDense(2, 2, []float64{
			e * (1 + w*dt), -e * w * w * dt,
			e * dt, e * (1 - w*dt),
		})
	case k.q > 0.5:
		eta := w * math.Sqrt(1-1/(4*k.q*k.q))
		cos, sin = math.Cos(eta*dt), math.Sin(eta*dt)/eta
	default:
		eta := w * math.Sqrt(1/(4*k.q*k.q)-1)
		cos, sin = math.Cosh(eta*dt), math.Sinh(eta*dt)/eta
	}

	e := math.Exp(-c * dt)

	return mat.NewDense(2, 2, []float64{
		e * (cos + c*sin), -e * w * w * sin,
		e * sin, e * (cos - c*sin),
	})
}

// Eval returns the covariance between two points.
func (k *SHO) Eval(x1, x2 float64) float64 {
	return evalStateSpace(k, x1, x2)
}
