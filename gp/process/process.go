// Package process implements Gaussian process regression over
// one-dimensional sorted inputs.
//
// A GaussianProcess pairs a state-space kernel with sample locations and an
// observation noise model, factoring the noisy covariance once at
// construction. With a diagonal noise model the factorization runs on the
// structured quasiseparable path in linear time; dense noise or the
// WithDirectSolver option switches to the dense Cholesky solver.
package process

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-gp/gp/noise"
	"github.com/cwbudde/algo-gp/gp/quasisep"
	"github.com/cwbudde/algo-gp/gp/solver"
)

// GaussianProcess is a Gaussian process prior conditioned per query on
// observations at fixed sample locations.
type GaussianProcess struct {
	kernel quasisep.Kernel
	xs     []float64
	mean   func(x float64) float64
	solver solver.Solver
}

// New builds a process over ascending sample locations. The covariance is
// factored once here; observation values are supplied per query so the same
// factorization serves many realizations.
func New(k quasisep.Kernel, xs []float64, opts ...Option) (*GaussianProcess, error) {
	cfg := ApplyOptions(opts...)

	if !sort.Float64sAreSorted(xs) {
		return nil, fmt.Errorf("process: sample locations: %w", quasisep.ErrUnsorted)
	}

	nz := cfg.Noise
	if nz == nil {
		var err error
		if nz, err = noise.NewIID(0); err != nil {
			return nil, err
		}
	}

	pts := append([]float64(nil), xs...)

	var (
		sol solver.Solver
		err error
	)

	if cfg.Direct {
		sol, err = solver.NewDirect(k, pts, nz)
	} else {
		sol, err = solver.For(k, pts, nz)
	}

	if err != nil {
		return nil, err
	}

	mean := cfg.Mean
	if mean == nil {
		mean = func(float64) float64 { return 0 }
	}

	return &GaussianProcess{kernel: k, xs: pts, mean: mean, solver: sol}, nil
}

// Dim returns the number of sample locations.
func (gp *GaussianProcess) Dim() int { return len(gp.xs) }

// residual subtracts the prior mean from the observations.
func (gp *GaussianProcess) residual(ys []float64) ([]float64, error) {
	if len(ys) != len(gp.xs) {
		return nil, fmt.Errorf("process: %d observations for %d locations", len(ys), len(gp.xs))
	}

	r := make([]float64, len(ys))
	for i, y := range ys {
		r[i] = y - gp.mean(gp.xs[i])
	}

	return r, nil
}

// LogProbability returns the marginal log-likelihood of the observations
// under the noisy prior: -(r' K^-1 r)/2 minus the Gaussian normalization
// constant.
func (gp *GaussianProcess) LogProbability(ys []float64) (float64, error) {
	r, err := gp.residual(ys)
	if err != nil {
		return 0, err
	}

	alpha, err := gp.solver.SolveVec(r)
	if err != nil {
		return 0, err
	}

	return -0.5*floats.Dot(r, alpha) - gp.solver.Normalization(), nil
}

// Predict returns the posterior mean and variance of the latent function at
// ascending target locations. The variance excludes observation noise. The
// posterior mean runs through the linear-time cross product; each variance
// entry costs one solve.
func (gp *GaussianProcess) Predict(ys, ts []float64) ([]float64, []float64, error) {
	r, err := gp.residual(ys)
	if err != nil {
		return nil, nil, err
	}

	if !sort.Float64sAreSorted(ts) {
		return nil, nil, fmt.Errorf("process: target locations: %w", quasisep.ErrUnsorted)
	}

	alpha, err := gp.solver.SolveVec(r)
	if err != nil {
		return nil, nil, err
	}

	mean, err := quasisep.CrossMulVec(gp.kernel, ts, gp.xs, alpha)
	if err != nil {
		return nil, nil, err
	}

	for i, t := range ts {
		mean[i] += gp.mean(t)
	}

	variance := make([]float64, len(ts))
	col := make([]float64, len(gp.xs))

	for i, t := range ts {
		for j, x := range gp.xs {
			col[j] = gp.kernel.Eval(x, t)
		}

		v, err := gp.solver.SolveVec(col)
		if err != nil {
			return nil, nil, err
		}

		variance[i] = gp.kernel.Eval(t, t) - floats.Dot(col, v)
	}

	return mean, variance, nil
}
