// Package solver wraps the covariance factorizations behind Gaussian
// process regression and selects between them by capability.
//
// The structured solver stays on the linear-time quasiseparable path and
// applies whenever the kernel has a state-space form and the observation
// noise is diagonal. The direct solver materializes the covariance and
// factors it with a dense Cholesky decomposition; it handles everything
// else, at quadratic storage and cubic factorization cost.
package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gp/gp/noise"
	"github.com/cwbudde/algo-gp/gp/qsm"
	"github.com/cwbudde/algo-gp/gp/quasisep"
)

// Covariance is a scalar covariance function over one-dimensional inputs.
type Covariance interface {
	Eval(x1, x2 float64) float64
}

// Solver is a factored noisy covariance over a fixed set of sample
// locations.
type Solver interface {
	// Dim returns the number of samples.
	Dim() int

	// SolveVec applies the inverse of the noisy covariance to b.
	SolveVec(b []float64) ([]float64, error)

	// LogDet returns the log-determinant of the noisy covariance.
	LogDet() float64

	// Normalization returns the Gaussian log-normalization constant: half
	// the log-determinant plus (n/2) log(2 pi).
	Normalization() float64
}

// For picks the fastest solver the kernel and noise support.
func For(cov Covariance, xs []float64, nz noise.Model) (Solver, error) {
	if k, ok := cov.(quasisep.Kernel); ok {
		diag, structured, err := nz.Diag(len(xs))
		if err != nil {
			return nil, err
		}

		if structured {
			return NewStructured(k, xs, diag)
		}
	}

	return NewDirect(cov, xs, nz)
}

// Structured factors a state-space kernel covariance in linear time.
type Structured struct {
	factor *qsm.LowerTriQSM
	dim    int
}

var _ Solver = (*Structured)(nil)

// NewStructured builds the quasiseparable representation over the sorted
// sample locations, adds the per-point noise variances to its diagonal, and
// factors it. A nil diag means noiseless observations.
func NewStructured(k quasisep.Kernel, xs, diag []float64) (*Structured, error) {
	s, err := quasisep.ToSymmQSM(k, xs)
	if err != nil {
		return nil, err
	}

	if diag != nil {
		if err := s.AddDiag(diag); err != nil {
			return nil, err
		}
	}

	factor, err := s.Cholesky()
	if err != nil {
		return nil, err
	}

	return &Structured{factor: factor, dim: len(xs)}, nil
}

func (s *Structured) Dim() int { return s.dim }

func (s *Structured) SolveVec(b []float64) ([]float64, error) {
	y, err := s.factor.SolveVec(b)
	if err != nil {
		return nil, err
	}

	return s.factor.SolveTransVec(y)
}

func (s *Structured) LogDet() float64 { return 2 * s.factor.LogDet() }

func (s *Structured) Normalization() float64 { return s.factor.Normalization() }

// Direct factors the materialized covariance with a dense Cholesky
// decomposition.
type Direct struct {
	chol mat.Cholesky
	dim  int
}

var _ Solver = (*Direct)(nil)

// NewDirect evaluates the covariance over all sample pairs, folds in the
// noise, and factors the result.
func NewDirect(cov Covariance, xs []float64, nz noise.Model) (*Direct, error) {
	n := len(xs)
	if n == 0 {
		return &Direct{}, nil
	}

	dense := mat.NewSymDense(n, nil)
	for i := range n {
		for j := 0; j <= i; j++ {
			dense.SetSym(i, j, cov.Eval(xs[i], xs[j]))
		}
	}

	if err := nz.Add(dense); err != nil {
		return nil, err
	}

	d := &Direct{dim: n}
	if !d.chol.Factorize(dense) {
		return nil, fmt.Errorf("solver: dense factorization: %w", qsm.ErrNotPositiveDefinite)
	}

	return d, nil
}

func (d *Direct) Dim() int { return d.dim }

func (d *Direct) SolveVec(b []float64) ([]float64, error) {
	if len(b) != d.dim {
		return nil, fmt.Errorf("solver: vector length %d, want %d", len(b), d.dim)
	}

	out := make([]float64, d.dim)
	if d.dim == 0 {
		return out, nil
	}

	var sol mat.VecDense
	if err := d.chol.SolveVecTo(&sol, mat.NewVecDense(len(b), b)); err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}

	copy(out, sol.RawVector().Data)

	return out, nil
}

func (d *Direct) LogDet() float64 {
	if d.dim == 0 {
		return 0
	}

	return d.chol.LogDet()
}

func (d *Direct) Normalization() float64 {
	if d.dim == 0 {
		return 0
	}

	return 0.5*d.chol.LogDet() + 0.5*float64(d.dim)*math.Log(2*math.Pi)
}
