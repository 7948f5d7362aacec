package qsm

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrNotPositiveDefinite is returned when a matrix that must be positive
// definite fails its Cholesky factorization.
var ErrNotPositiveDefinite = errors.New("qsm: matrix is not positive definite")

// SymmQSM is a symmetric quasiseparable matrix. Row i, column j of the lower
// triangle (i > j) holds p[i] * a[i-1] * ... * a[j+1] * q[j]; the upper
// triangle mirrors it. The transition slot a[0] is never chained and holds
// the identity by convention.
//
// Generators are shared, not copied. Callers must not mutate them after
// construction, and factors returned by Cholesky alias the same backing
// data.
type SymmQSM struct {
	diag  []float64
	p     []*mat.VecDense
	q     []*mat.VecDense
	a     []*mat.Dense
	order int
}

// New assembles a symmetric quasiseparable matrix from its generators: the
// diagonal, the row functionals p, the column functionals q, and the
// transition matrices a. All four slices must have the same length, and
// every functional and transition must agree on the quasiseparable order.
func New(diag []float64, p, q []*mat.VecDense, a []*mat.Dense) (*SymmQSM, error) {
	n := len(diag)
	if len(p) != n || len(q) != n || len(a) != n {
		return nil, fmt.Errorf("qsm: generator lengths disagree: diag=%d p=%d q=%d a=%d",
			n, len(p), len(q), len(a))
	}

	if n == 0 {
		return &SymmQSM{}, nil
	}

	order := p[0].Len()
	if order < 1 {
		return nil, fmt.Errorf("qsm: order must be at least 1, got %d", order)
	}

	for i := range n {
		if p[i].Len() != order || q[i].Len() != order {
			return nil, fmt.Errorf("qsm: row %d: functional lengths %d and %d, want %d",
				i, p[i].Len(), q[i].Len(), order)
		}

		r, c := a[i].Dims()
		if r != order || c != order {
			return nil, fmt.Errorf("qsm: row %d: transition is %dx%d, want %dx%d",
				i, r, c, order, order)
		}
	}

	return &SymmQSM{diag: diag, p: p, q: q, a: a, order: order}, nil
}

// Dim returns the number of rows (and columns).
func (s *SymmQSM) Dim() int { return len(s.diag) }

// Order returns the quasiseparable order, the length of the row and column
// functionals.
func (s *SymmQSM) Order() int { return s.order }

// AddDiag adds vs to the diagonal in place. Adding observation noise this
// way keeps the matrix quasiseparable.
func (s *SymmQSM) AddDiag(vs []float64) error {
	if len(vs) != len(s.diag) {
		return fmt.Errorf("qsm: diagonal length %d, want %d", len(vs), len(s.diag))
	}

	floats.Add(s.diag, vs)

	return nil
}

// MulVec computes the matrix-vector product with ys in O(N) time: one
// elementwise diagonal pass plus an ascending scan for the lower triangle
// and a descending scan for the upper triangle.
func (s *SymmQSM) MulVec(ys []float64) ([]float64, error) {
	n := s.Dim()
	if len(ys) != n {
		return nil, fmt.Errorf("qsm: vector length %d, want %d", len(ys), n)
	}

	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}

	vecmath.MulBlock(out, s.diag, ys)

	f := mat.NewVecDense(s.order, nil)
	buf := mat.NewVecDense(s.order, nil)

	for i := range n {
		out[i] += mat.Dot(s.p[i], f)
		buf.MulVec(s.a[i], f)
		f.AddScaledVec(buf, ys[i], s.q[i])
	}

	f.Zero()

	for j := n - 1; j >= 0; j-- {
		out[j] += mat.Dot(s.q[j], f)
		buf.MulVec(s.a[j].T(), f)
		f.AddScaledVec(buf, ys[j], s.p[j])
	}

	return out, nil
}

// ToDense expands the matrix into a dense symmetric matrix by chaining the
// transitions down each column. It returns nil for an empty matrix.
func (s *SymmQSM) ToDense() *mat.SymDense {
	n := s.Dim()
	if n == 0 {
		return nil
	}

	out := mat.NewSymDense(n, nil)
	v := mat.NewVecDense(s.order, nil)
	buf := mat.NewVecDense(s.order, nil)

	for j := range n {
		out.SetSym(j, j, s.diag[j])
		v.CopyVec(s.q[j])

		for i := j + 1; i < n; i++ {
			out.SetSym(i, j, mat.Dot(s.p[i], v))
			buf.MulVec(s.a[i], v)
			v.CopyVec(buf)
		}
	}

	return out
}

// Cholesky computes the lower Cholesky factor in O(N) time. The factor
// reuses the row functionals and transitions of the receiver and carries its
// own diagonal and column functionals, so factoring leaves the receiver
// untouched and may be repeated. A non-positive or NaN pivot reports
// ErrNotPositiveDefinite.
func (s *SymmQSM) Cholesky() (*LowerTriQSM, error) {
	n := s.Dim()

	tri := &LowerTriQSM{
		ell:   make([]float64, n),
		p:     s.p,
		g:     make([]*mat.VecDense, n),
		a:     s.a,
		order: s.order,
	}

	if n == 0 {
		return tri, nil
	}

	order := s.order

	// gram accumulates sum_k (Phi g_k)(Phi g_k)^T, the part of L L^T already
	// determined below the current row.
	gram := mat.NewDense(order, order, nil)
	tmp := mat.NewDense(order, order, nil)
	next := mat.NewDense(order, order, nil)
	v := mat.NewVecDense(order, nil)
	av := mat.NewVecDense(order, nil)

	for i := range n {
		v.MulVec(gram, s.p[i])

		piv := s.diag[i] - mat.Dot(s.p[i], v)
		if piv <= 0 || math.IsNaN(piv) {
			return nil, fmt.Errorf("qsm: leading minor %d: %w", i, ErrNotPositiveDefinite)
		}

		ell := math.Sqrt(piv)
		tri.ell[i] = ell

		g := mat.NewVecDense(order, nil)
		av.MulVec(s.a[i], v)
		g.SubVec(s.q[i], av)
		g.ScaleVec(1/ell, g)
		tri.g[i] = g

		tmp.Mul(s.a[i], gram)
		next.Mul(tmp, s.a[i].T())

		for r := range order {
			gr := g.AtVec(r)
			for c := range order {
				next.Set(r, c, next.At(r, c)+gr*g.AtVec(c))
			}
		}

		gram, next = next, gram
	}

	return tri, nil
}
