package kernel

import (
	"fmt"
	"math"
)

// Exp is the exponential kernel exp(-r) over the metric distance r.
type Exp struct {
	radial
}

// NewExp returns an exponential kernel. A nil metric means UnitMetric.
func NewExp(m Metric) *Exp {
	return &Exp{newRadial(m)}
}

func (k *Exp) Eval(x1, x2 []float64) float64 {
	return math.Exp(-k.dist(x1, x2))
}

// ExpSquared is the squared exponential kernel exp(-r^2/2).
type ExpSquared struct {
	radial
}

// NewExpSquared returns a squared exponential kernel. A nil metric means
// UnitMetric.
func NewExpSquared(m Metric) *ExpSquared {
	return &ExpSquared{newRadial(m)}
}

func (k *ExpSquared) Eval(x1, x2 []float64) float64 {
	return math.Exp(-0.5 * k.dist2(x1, x2))
}

// Matern32 is the Matern kernel with smoothness 3/2:
//
//	(1 + sqrt(3) r) exp(-sqrt(3) r)
type Matern32 struct {
	radial
}

// NewMatern32 returns a Matern-3/2 kernel. A nil metric means UnitMetric.
func NewMatern32(m Metric) *Matern32 {
	return &Matern32{newRadial(m)}
}

func (k *Matern32) Eval(x1, x2 []float64) float64 {
	arg := math.Sqrt(3 * k.dist2(x1, x2))

	return (1 + arg) * math.Exp(-arg)
}

// Matern52 is the Matern kernel with smoothness 5/2:
//
//	(1 + sqrt(5) r + 5 r^2 / 3) exp(-sqrt(5) r)
type Matern52 struct {
	radial
}

// NewMatern52 returns a Matern-5/2 kernel. A nil metric means UnitMetric.
func NewMatern52(m Metric) *Matern52 {
	return &Matern52{newRadial(m)}
}

func (k *Matern52) Eval(x1, x2 []float64) float64 {
	arg1 := 5 * k.dist2(x1, x2)
	arg2 := math.Sqrt(arg1)

	return (1 + arg2 + arg1/3) * math.Exp(-arg2)
}

// Cosine is the periodic kernel cos(2 pi r).
type Cosine struct {
	radial
}

// NewCosine returns a cosine kernel; the period enters through the metric
// length scale. A nil metric means UnitMetric.
func NewCosine(m Metric) *Cosine {
	return &Cosine{newRadial(m)}
}

func (k *Cosine) Eval(x1, x2 []float64) float64 {
	return math.Cos(2 * math.Pi * k.dist(x1, x2))
}

// RationalQuadratic evaluates (1 - r^2 / (2 alpha))^alpha, a scale mixture
// that approaches ExpSquared as alpha grows.
type RationalQuadratic struct {
	radial
	alpha float64
}

// NewRationalQuadratic returns a rational quadratic kernel with shape
// parameter alpha > 0. A nil metric means UnitMetric.
func NewRationalQuadratic(m Metric, alpha float64) (*RationalQuadratic, error) {
	if !(alpha > 0) {
		return nil, fmt.Errorf("%w: alpha %v, want > 0", ErrInvalidParameter, alpha)
	}

	return &RationalQuadratic{radial: newRadial(m), alpha: alpha}, nil
}

func (k *RationalQuadratic) Eval(x1, x2 []float64) float64 {
	return math.Pow(1-0.5*k.dist2(x1, x2)/k.alpha, k.alpha)
}
