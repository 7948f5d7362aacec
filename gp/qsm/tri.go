package qsm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LowerTriQSM is the lower-triangular Cholesky factor of a SymmQSM. It
// shares the row functionals and transitions with the source matrix and
// stores its own diagonal ell and column functionals g.
type LowerTriQSM struct {
	ell   []float64
	p     []*mat.VecDense
	g     []*mat.VecDense
	a     []*mat.Dense
	order int
}

// Dim returns the number of rows (and columns).
func (t *LowerTriQSM) Dim() int { return len(t.ell) }

// SolveVec solves L y = b by forward substitution in O(N) time.
func (t *LowerTriQSM) SolveVec(b []float64) ([]float64, error) {
	n := t.Dim()
	if len(b) != n {
		return nil, fmt.Errorf("qsm: vector length %d, want %d", len(b), n)
	}

	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}

	f := mat.NewVecDense(t.order, nil)
	buf := mat.NewVecDense(t.order, nil)

	for i := range n {
		out[i] = (b[i] - mat.Dot(t.p[i], f)) / t.ell[i]
		buf.MulVec(t.a[i], f)
		f.AddScaledVec(buf, out[i], t.g[i])
	}

	return out, nil
}

// SolveTransVec solves L^T x = b by backward substitution in O(N) time.
func (t *LowerTriQSM) SolveTransVec(b []float64) ([]float64, error) {
	n := t.Dim()
	if len(b) != n {
		return nil, fmt.Errorf("qsm: vector length %d, want %d", len(b), n)
	}

	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}

	c := mat.NewVecDense(t.order, nil)
	buf := mat.NewVecDense(t.order, nil)

	for j := n - 1; j >= 0; j-- {
		out[j] = (b[j] - mat.Dot(t.g[j], c)) / t.ell[j]
		buf.MulVec(t.a[j].T(), c)
		c.AddScaledVec(buf, out[j], t.p[j])
	}

	return out, nil
}

// LogDet returns the log-determinant of the factor, which is half the
// log-determinant of the factored matrix.
func (t *LowerTriQSM) LogDet() float64 {
	sum := 0.0
	for _, ell := range t.ell {
		sum += math.Log(ell)
	}

	return sum
}

// Normalization returns the Gaussian log-normalization constant of the
// factored matrix: half its log-determinant plus (n/2) log(2 pi). It is
// zero for an empty factor.
func (t *LowerTriQSM) Normalization() float64 {
	n := t.Dim()

	return t.LogDet() + 0.5*float64(n)*math.Log(2*math.Pi)
}

// ToDense expands the factor into a dense lower-triangular matrix. It
// returns nil for an empty factor.
func (t *LowerTriQSM) ToDense() *mat.Dense {
	n := t.Dim()
	if n == 0 {
		return nil
	}

	out := mat.NewDense(n, n, nil)
	v := mat.NewVecDense(t.order, nil)
	buf := mat.NewVecDense(t.order, nil)

	for j := range n {
		out.Set(j, j, t.ell[j])
		v.CopyVec(t.g[j])

		for i := j + 1; i < n; i++ {
			out.Set(i, j, mat.Dot(t.p[i], v))
			buf.MulVec(t.a[i], v)
			v.CopyVec(buf)
		}
	}

	return out
}
