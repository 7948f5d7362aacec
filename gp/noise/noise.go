// Package noise provides observation noise models for Gaussian process
// regression.
//
// A model contributes its covariance to the sampled kernel matrix. Diagonal
// models additionally expose their per-point variances so that the
// structured solver can stay on the linear-time path; a full Dense model
// forces the direct solver.
package noise

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrShape reports a noise model applied to a sample count it does not
// match.
var ErrShape = errors.New("noise: dimension mismatch")

// Model is an observation noise covariance.
type Model interface {
	// Diag reports the per-point noise variances. The second result is
	// false for models with off-diagonal structure, which cannot take
	// the structured solver path.
	Diag(n int) ([]float64, bool, error)

	// Add folds the noise covariance into a dense covariance matrix in
	// place.
	Add(cov *mat.SymDense) error
}

// IID is homoskedastic noise: one shared variance for every observation.
type IID struct {
	variance float64
}

var _ Model = (*IID)(nil)

// NewIID returns an independent identically distributed noise model with
// the given variance. Zero is allowed and models noiseless observations.
func NewIID(variance float64) (*IID, error) {
	if !(variance >= 0) {
		return nil, fmt.Errorf("noise: variance %v, want >= 0", variance)
	}

	return &IID{variance: variance}, nil
}

func (m *IID) Diag(n int) ([]float64, bool, error) {
	out := make([]float64, n)
	for i := range out {
		out[i] = m.variance
	}

	return out, true, nil
}

func (m *IID) Add(cov *mat.SymDense) error {
	n, _ := cov.Dims()
	for i := range n {
		cov.SetSym(i, i, cov.At(i, i)+m.variance)
	}

	return nil
}

// Diagonal is heteroskedastic noise: an independent variance per
// observation.
type Diagonal struct {
	variances []float64
}

var _ Model = (*Diagonal)(nil)

// NewDiagonal returns a per-point noise model. All variances must be
// non-negative.
func NewDiagonal(variances []float64) (*Diagonal, error) {
	for i, v := range variances {
		if !(v >= 0) {
			return nil, fmt.Errorf("noise: variance %v at index %d, want >= 0", v, i)
		}
	}

	return &Diagonal{variances: append([]float64(nil), variances...)}, nil
}

func (m *Diagonal) Diag(n int) ([]float64, bool, error) {
	if len(m.variances) != n {
		return nil, false, fmt.Errorf("%w: %d variances for %d samples", ErrShape, len(m.variances), n)
	}

	return append([]float64(nil), m.variances...), true, nil
}

func (m *Diagonal) Add(cov *mat.SymDense) error {
	n, _ := cov.Dims()
	if len(m.variances) != n {
		return fmt.Errorf("%w: %d variances for %d samples", ErrShape, len(m.variances), n)
	}

	for i, v := range m.variances {
		cov.SetSym(i, i, cov.At(i, i)+v)
	}

	return nil
}

// Dense is fully correlated observation noise.
type Dense struct {
	cov *mat.SymDense
}

var _ Model = (*Dense)(nil)

// NewDense returns a noise model with the given covariance. The matrix is
// copied.
func NewDense(cov *mat.SymDense) (*Dense, error) {
	if cov == nil {
		return nil, fmt.Errorf("noise: nil covariance")
	}

	n, _ := cov.Dims()
	cp := mat.NewSymDense(n, nil)
	cp.CopySym(cov)

	return &Dense{cov: cp}, nil
}

// Diag always reports false: dense noise has off-diagonal structure.
func (m *Dense) Diag(int) ([]float64, bool, error) {
	return nil, false, nil
}

func (m *Dense) Add(cov *mat.SymDense) error {
	n, _ := cov.Dims()
	if cn, _ := m.cov.Dims(); cn != n {
		return fmt.Errorf("%w: %dx%d noise for %d samples", ErrShape, cn, cn, n)
	}

	cov.AddSym(cov, m.cov)

	return nil
}
