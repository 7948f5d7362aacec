package quasisep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gp/internal/linalg"
)

// maxStateDim bounds the combined state dimension of a Product kernel.
// Kronecker stacking grows multiplicatively, and beyond this size the O(N)
// scans are slower than a dense factorization would be.
const maxStateDim = 64

// Sum is the pointwise sum of two kernels, represented by block-diagonal
// state stacking.
type Sum struct {
	k1, k2 Kernel
	dim    int
}

var _ Kernel = (*Sum)(nil)

// NewSum constructs the sum of two kernels.
func NewSum(k1, k2 Kernel) (*Sum, error) {
	return &Sum{k1: k1, k2: k2, dim: k1.StateDim() + k2.StateDim()}, nil
}

// StateDim returns the summed state dimension.
func (k *Sum) StateDim() int { return k.dim }

// DesignMatrix returns the block-diagonal transition generator.
func (k *Sum) DesignMatrix() *mat.Dense {
	return linalg.BlockDiag(k.k1.DesignMatrix(), k.k2.DesignMatrix())
}

// ObservationModel returns the concatenated observation vector.
func (k *Sum) ObservationModel() *mat.VecDense {
	return linalg.ConcatVecs(k.k1.ObservationModel(), k.k2.ObservationModel())
}

// StationaryCov returns the block-diagonal stationary covariance.
func (k *Sum) StationaryCov() *mat.SymDense {
	return linalg.BlockDiagSym(k.k1.StationaryCov(), k.k2.StationaryCov())
}

// TransitionMatrix returns the block-diagonal state propagation.
func (k *Sum) TransitionMatrix(x1, x2 float64) *mat.Dense {
	return linalg.BlockDiag(k.k1.TransitionMatrix(x1, x2), k.k2.TransitionMatrix(x1, x2))
}

// Eval returns the sum of the component covariances.
func (k *Sum) Eval(x1, x2 float64) float64 {
	return k.k1.Eval(x1, x2) + k.k2.Eval(x1, x2)
}

// Product is the pointwise product of two kernels, represented by Kronecker
// state combination: the combined generator is the Kronecker sum of the
// component generators, so the combined transition is the Kronecker product
// of the component transitions.
type Product struct {
	k1, k2 Kernel
	dim    int
}

var _ Kernel = (*Product)(nil)

// NewProduct constructs the product of two kernels. It fails with
// ErrStructural when the Kronecker state dimension exceeds maxStateDim.
func NewProduct(k1, k2 Kernel) (*Product, error) {
	dim := k1.StateDim() * k2.StateDim()
	if dim > maxStateDim {
		return nil, fmt.Errorf("%w: product state dimension %d exceeds %d",
			ErrStructural, dim, maxStateDim)
	}

	return &Product{k1: k1, k2: k2, dim: dim}, nil
}

// StateDim returns the Kronecker state dimension.
func (k *Product) StateDim() int { return k.dim }

// DesignMatrix returns the Kronecker sum of the component generators.
func (k *Product) DesignMatrix() *mat.Dense {
	f1 := k.k1.DesignMatrix()
	f2 := k.k2.DesignMatrix()
	d1, _ := f1.Dims()
	d2, _ := f2.Dims()

	out := linalg.Kron(f1, linalg.Eye(d2))
	out.Add(out, linalg.Kron(linalg.Eye(d1), f2))

	return out
}

// ObservationModel returns the Kronecker product of the observation
// vectors.
func (k *Product) ObservationModel() *mat.VecDense {
	return linalg.KronVec(k.k1.ObservationModel(), k.k2.ObservationModel())
}

// StationaryCov returns the Kronecker product of the stationary
// covariances.
func (k *Product) StationaryCov() *mat.SymDense {
	return linalg.KronSym(k.k1.StationaryCov(), k.k2.StationaryCov())
}

// TransitionMatrix returns the Kronecker product of the component
// propagations.
func (k *Product) TransitionMatrix(x1, x2 float64) *mat.Dense {
	return linalg.Kron(k.k1.TransitionMatrix(x1, x2), k.k2.TransitionMatrix(x1, x2))
}

// Eval returns the product of the component covariances.
func (k *Product) Eval(x1, x2 float64) float64 {
	return k.k1.Eval(x1, x2) * k.k2.Eval(x1, x2)
}

// Scale multiplies a kernel by a non-negative factor. Only the stationary
// covariance is scaled; the dynamics are untouched.
type Scale struct {
	inner  Kernel
	factor float64
}

var _ Kernel = (*Scale)(nil)

// NewScale constructs a scaled kernel. The factor must be non-negative.
func NewScale(k Kernel, factor float64) (*Scale, error) {
	if factor < 0 || math.IsNaN(factor) {
		return nil, fmt.Errorf("%w: scale factor %v, want >= 0", ErrInvalidParameter, factor)
	}

	return &Scale{inner: k, factor: factor}, nil
}

// StateDim returns the inner state dimension.
func (k *Scale) StateDim() int { return k.inner.StateDim() }

// DesignMatrix returns the inner transition generator.
func (k *Scale) DesignMatrix() *mat.Dense { return k.inner.DesignMatrix() }

// ObservationModel returns the inner observation vector.
func (k *Scale) ObservationModel() *mat.VecDense { return k.inner.ObservationModel() }

// StationaryCov returns the scaled stationary covariance.
func (k *Scale) StationaryCov() *mat.SymDense {
	pinf := k.inner.StationaryCov()
	n := pinf.SymmetricDim()

	for i := range n {
		for j := i; j < n; j++ {
			pinf.SetSym(i, j, k.factor*pinf.At(i, j))
		}
	}

	return pinf
}

// TransitionMatrix returns the inner state propagation.
func (k *Scale) TransitionMatrix(x1, x2 float64) *mat.Dense {
	return k.inner.TransitionMatrix(x1, x2)
}

// Eval returns the scaled covariance.
func (k *Scale) Eval(x1, x2 float64) float64 {
	return k.factor * k.inner.Eval(x1, x2)
}
