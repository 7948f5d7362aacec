// Package linalg provides small dense-matrix assembly helpers shared by the
// kernel combinators: block-diagonal stacking, Kronecker products, and vector
// concatenation over gonum types.
package linalg

import (
	"gonum.org/v1/gonum/mat"
)

// Eye returns the n-by-n identity matrix.
func Eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := range n {
		m.Set(i, i, 1)
	}
	return m
}

// BlockDiag assembles square blocks into one block-diagonal matrix.
func BlockDiag(blocks ...*mat.Dense) *mat.Dense {
	n := 0
	for _, b := range blocks {
		r, _ := b.Dims()
		n += r
	}
	out := mat.NewDense(n, n, nil)
	off := 0
	for _, b := range blocks {
		r, c := b.Dims()
		for i := range r {
			for j := range c {
				out.Set(off+i, off+j, b.At(i, j))
			}
		}
		off += r
	}
	return out
}

// BlockDiagSym assembles symmetric blocks into one block-diagonal symmetric
// matrix.
func BlockDiagSym(blocks ...*mat.SymDense) *mat.SymDense {
	n := 0
	for _, b := range blocks {
		n += b.SymmetricDim()
	}
	out := mat.NewSymDense(n, nil)
	off := 0
	for _, b := range blocks {
		r := b.SymmetricDim()
		for i := range r {
			for j := i; j < r; j++ {
				out.SetSym(off+i, off+j, b.At(i, j))
			}
		}
		off += r
	}
	return out
}

// ConcatVecs stacks two vectors into one.
func ConcatVecs(a, b *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(a.Len()+b.Len(), nil)
	for i := range a.Len() {
		out.SetVec(i, a.AtVec(i))
	}
	for i := range b.Len() {
		out.SetVec(a.Len()+i, b.AtVec(i))
	}
	return out
}

// Kron returns the Kronecker product a ⊗ b.
func Kron(a, b *mat.Dense) *mat.Dense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	out := mat.NewDense(ar*br, ac*bc, nil)
	for i := range ar {
		for j := range ac {
			s := a.At(i, j)
			for k := range br {
				for l := range bc {
					out.Set(i*br+k, j*bc+l, s*b.At(k, l))
				}
			}
		}
	}
	return out
}

// KronSym returns the Kronecker product of two symmetric matrices, which is
// itself symmetric.
func KronSym(a, b *mat.SymDense) *mat.SymDense {
	an := a.SymmetricDim()
	bn := b.SymmetricDim()
	n := an * bn
	out := mat.NewSymDense(n, nil)
	for i := range n {
		for j := i; j < n; j++ {
			out.SetSym(i, j, a.At(i/bn, j/bn)*b.At(i%bn, j%bn))
		}
	}
	return out
}

// KronVec returns the Kronecker product of two vectors.
func KronVec(a, b *mat.VecDense) *mat.VecDense {
	an := a.Len()
	bn := b.Len()
	out := mat.NewVecDense(an*bn, nil)
	for i := range an {
		for j := range bn {
			out.SetVec(i*bn+j, a.AtVec(i)*b.AtVec(j))
		}
	}
	return out
}
