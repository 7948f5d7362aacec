package kernel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Kernel is a positive semidefinite covariance function over vector inputs.
type Kernel interface {
	// Eval returns the covariance between two input locations.
	Eval(x1, x2 []float64) float64
}

// EvalMatrix evaluates the cross covariance between two input collections as
// a len(xs1) by len(xs2) matrix. Either collection being empty yields nil.
func EvalMatrix(k Kernel, xs1, xs2 [][]float64) *mat.Dense {
	if len(xs1) == 0 || len(xs2) == 0 {
		return nil
	}

	out := mat.NewDense(len(xs1), len(xs2), nil)
	for i, x1 := range xs1 {
		for j, x2 := range xs2 {
			out.Set(i, j, k.Eval(x1, x2))
		}
	}

	return out
}

// EvalDiag evaluates the marginal variance at each input location.
func EvalDiag(k Kernel, xs [][]float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = k.Eval(x, x)
	}

	return out
}

// Constant evaluates to a fixed value everywhere.
type Constant struct {
	value float64
}

// NewConstant returns the constant kernel with the given value.
func NewConstant(value float64) *Constant {
	return &Constant{value: value}
}

func (k *Constant) Eval(_, _ []float64) float64 { return k.value }

// DotProduct is the inner product of the two inputs.
type DotProduct struct{}

func (DotProduct) Eval(x1, x2 []float64) float64 {
	return floats.Dot(x1, x2)
}

// Polynomial evaluates (x1 . x2 + sigma^2)^order.
type Polynomial struct {
	order  int
	sigma2 float64
}

// NewPolynomial returns a polynomial kernel of the given non-negative order.
func NewPolynomial(order int, sigma float64) (*Polynomial, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: order %d, want >= 0", ErrInvalidParameter, order)
	}

	return &Polynomial{order: order, sigma2: sigma * sigma}, nil
}

func (k *Polynomial) Eval(x1, x2 []float64) float64 {
	return math.Pow(floats.Dot(x1, x2)+k.sigma2, float64(k.order))
}

// Linear evaluates (x1 . x2 / sigma^2)^order.
type Linear struct {
	order  int
	sigma2 float64
}

// NewLinear returns a linear kernel of the given non-negative order. The
// scale sigma must be non-zero.
func NewLinear(order int, sigma float64) (*Linear, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: order %d, want >= 0", ErrInvalidParameter, order)
	}

	if sigma == 0 || math.IsNaN(sigma) {
		return nil, fmt.Errorf("%w: sigma %v, want non-zero", ErrInvalidParameter, sigma)
	}

	return &Linear{order: order, sigma2: sigma * sigma}, nil
}

func (k *Linear) Eval(x1, x2 []float64) float64 {
	return math.Pow(floats.Dot(x1, x2)/k.sigma2, float64(k.order))
}

// Sum evaluates the pointwise sum of two kernels.
type Sum struct {
	left, right Kernel
}

// NewSum combines two kernels additively.
func NewSum(left, right Kernel) *Sum {
	return &Sum{left: left, right: right}
}

func (k *Sum) Eval(x1, x2 []float64) float64 {
	return k.left.Eval(x1, x2) + k.right.Eval(x1, x2)
}

// Product evaluates the pointwise product of two kernels.
type Product struct {
	left, right Kernel
}

// NewProduct combines two kernels multiplicatively.
func NewProduct(left, right Kernel) *Product {
	return &Product{left: left, right: right}
}

func (k *Product) Eval(x1, x2 []float64) float64 {
	return k.left.Eval(x1, x2) * k.right.Eval(x1, x2)
}
