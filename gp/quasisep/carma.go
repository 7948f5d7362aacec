package quasisep

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gp/internal/linalg"
	"github.com/cwbudde/algo-gp/internal/polyroot"
)

// Quad is a monic real factor of a characteristic polynomial: z^2 + b z + c
// for a second-order factor, or z + c for a first-order one.
type Quad struct {
	b, c  float64
	order int
}

// NewQuad returns the quadratic factor z^2 + b z + c.
func NewQuad(b, c float64) Quad {
	return Quad{b: b, c: c, order: 2}
}

// NewLinearQuad returns the linear factor z + c.
func NewLinearQuad(c float64) Quad {
	return Quad{c: c, order: 1}
}

// Order returns 1 for a linear factor and 2 for a quadratic one.
func (q Quad) Order() int { return q.order }

// B returns the linear coefficient. It is zero for linear factors.
func (q Quad) B() float64 { return q.b }

// C returns the constant coefficient.
func (q Quad) C() float64 { return q.c }

// Roots returns the roots of the factor in closed form, the positive
// imaginary one first. Linear factors leave the second slot zero.
func (q Quad) Roots() [2]complex128 {
	if q.order == 1 {
		return [2]complex128{complex(-q.c, 0), 0}
	}

	disc := q.b*q.b - 4*q.c
	if disc < 0 {
		im := math.Sqrt(-disc) / 2

		return [2]complex128{complex(-q.b/2, im), complex(-q.b/2, -im)}
	}

	// Form the larger-magnitude root first so the division below does not
	// cancel when |b| dominates the discriminant.
	s := -0.5 * (q.b + math.Copysign(math.Sqrt(disc), q.b))
	if s == 0 {
		return [2]complex128{0, 0}
	}

	return [2]complex128{complex(s, 0), complex(q.c/s, 0)}
}

// coeffs returns the ascending coefficients of the factor including the
// leading one.
func (q Quad) coeffs() []float64 {
	if q.order == 1 {
		return []float64{q.c, 1}
	}

	return []float64{q.c, q.b, 1}
}

// PolyToQuads factors the monic real polynomial with the given ascending
// coefficients (leading one implicit) into quadratic and linear factors.
// Conjugate root pairs become one quadratic each; real roots are paired up
// in canonical order, with an odd count leaving a final linear factor. The
// result is deterministic: blocks are ordered by ascending |Re|, ties by
// ascending |Im|.
func PolyToQuads(coeffs []float64) ([]Quad, error) {
	full := make([]float64, 0, len(coeffs)+1)
	full = append(full, coeffs...)
	full = append(full, 1)

	roots, err := polyroot.Roots(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	groups, err := polyroot.GroupConjugates(roots)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	quads := make([]Quad, 0, len(groups))
	pending := 0.0
	havePending := false

	for _, g := range groups {
		if !g.Real {
			re, im := real(g.Root), imag(g.Root)
			quads = append(quads, NewQuad(-2*re, re*re+im*im))

			continue
		}

		r := real(g.Root)
		if !havePending {
			pending, havePending = r, true

			continue
		}

		quads = append(quads, NewQuad(-(pending+r), pending*r))
		havePending = false
	}

	if havePending {
		quads = append(quads, NewLinearQuad(-pending))
	}

	return quads, nil
}

// QuadsToPoly expands monic factors back into the ascending coefficients of
// their product, leading one implicit.
func QuadsToPoly(quads []Quad) []float64 {
	poly := []float64{1}
	for _, q := range quads {
		poly = polyroot.MulPoly(poly, q.coeffs())
	}

	return poly[:len(poly)-1]
}

// carmaBlock is one first- or second-order component of the CARMA state
// space: a real root with a real amplitude, or a conjugate root pair in
// rotation-decay form with cosine amplitude a and sine amplitude b.
type carmaBlock struct {
	order int
	re    float64
	im    float64
	a     float64
	b     float64
}

func (blk carmaBlock) design() *mat.Dense {
	if blk.order == 1 {
		return mat.NewDense(1, 1, []float64{blk.re})
	}

	return mat.NewDense(2, 2, []float64{
		blk.re, -blk.im,
		blk.im, blk.re,
	})
}

func (blk carmaBlock) stationaryCov() *mat.SymDense {
	if blk.order == 1 {
		return mat.NewSymDense(1, []float64{blk.a})
	}

	return mat.NewSymDense(2, []float64{
		blk.a, -blk.b,
		-blk.b, blk.a,
	})
}

func (blk carmaBlock) observation() *mat.VecDense {
	if blk.order == 1 {
		return mat.NewVecDense(1, []float64{1})
	}

	return mat.NewVecDense(2, []float64{1, 0})
}

func (blk carmaBlock) transition(dt float64) *mat.Dense {
	e := math.Exp(blk.re * dt)
	if blk.order == 1 {
		return mat.NewDense(1, 1, []float64{e})
	}

	cos, sin := math.Cos(blk.im*dt), math.Sin(blk.im*dt)

	return mat.NewDense(2, 2, []float64{
		e * cos, e * sin,
		-e * sin, e * cos,
	})
}

// CARMA is the state-space kernel of a continuous autoregressive moving
// average process CARMA(p, q). The autoregressive side is the monic
// polynomial z^p + alpha[p-1] z^(p-1) + ... + alpha[0]; the moving average
// side is beta[0] + beta[1] z + ... + beta[q] z^q with q < p. Its
// covariance is the sum over autoregressive roots r_k of acf_k exp(r_k
// tau), assembled from first- and second-order real blocks in canonical
// root order.
//
// CARMA kernels have no amplitude parameter of their own; wrap one in Scale
// to adjust the overall variance.
type CARMA struct {
	alpha  []float64
	beta   []float64
	blocks []carmaBlock
	dim    int
}

var _ Kernel = (*CARMA)(nil)

// NewCARMA constructs a CARMA kernel from ascending autoregressive
// coefficients alpha and moving average coefficients beta. It fails with
// ErrNonStationary when any autoregressive root has a non-negative real
// part.
func NewCARMA(alpha, beta []float64) (*CARMA, error) {
	if err := checkCARMAShape(len(alpha), len(beta)); err != nil {
		return nil, err
	}

	full := make([]float64, 0, len(alpha)+1)
	full = append(full, alpha...)
	full = append(full, 1)

	roots, err := polyroot.Roots(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	return newCARMAFromRoots(alpha, beta, roots)
}

// NewCARMAFromQuads constructs a CARMA kernel from pre-factored monic
// quadratic and linear factors of the autoregressive and moving average
// polynomials, skipping iterative root finding: factor roots are available
// in closed form. The moving average polynomial is betaMult times the
// product of betaQuads; betaMult must be non-zero.
func NewCARMAFromQuads(alphaQuads, betaQuads []Quad, betaMult float64) (*CARMA, error) {
	if betaMult == 0 {
		return nil, fmt.Errorf("%w: beta multiplier is zero", ErrInvalidParameter)
	}

	alpha := QuadsToPoly(alphaQuads)

	beta := append(QuadsToPoly(betaQuads), 1)
	for i := range beta {
		beta[i] *= betaMult
	}

	if err := checkCARMAShape(len(alpha), len(beta)); err != nil {
		return nil, err
	}

	roots := make([]complex128, 0, len(alpha))
	for _, q := range alphaQuads {
		r := q.Roots()
		roots = append(roots, r[0])

		if q.Order() == 2 {
			roots = append(roots, r[1])
		}
	}

	return newCARMAFromRoots(alpha, beta, roots)
}

func checkCARMAShape(p, qLen int) error {
	if p < 1 {
		return fmt.Errorf("%w: autoregressive order must be at least 1", ErrInvalidParameter)
	}

	if qLen < 1 || qLen > p {
		return fmt.Errorf("%w: moving average order %d, want 1..%d coefficients",
			ErrInvalidParameter, qLen, p)
	}

	return nil
}

// newCARMAFromRoots is the shared tail of both constructors: stationarity
// check, canonical conjugate grouping, autocovariance amplitudes, and block
// assembly.
func newCARMAFromRoots(alpha, beta []float64, roots []complex128) (*CARMA, error) {
	for _, r := range roots {
		if real(r) >= 0 {
			return nil, fmt.Errorf("root %v: %w", r, ErrNonStationary)
		}
	}

	groups, err := polyroot.GroupConjugates(roots)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	// Expand groups into the canonical root list so the amplitude products
	// run over exactly paired values.
	ordered := make([]complex128, 0, len(roots))
	for _, g := range groups {
		ordered = append(ordered, g.Root)

		if !g.Real {
			ordered = append(ordered, cmplx.Conj(g.Root))
		}
	}

	acf := carmaACF(beta, ordered)

	blocks := make([]carmaBlock, 0, len(groups))
	idx := 0

	for _, g := range groups {
		if g.Real {
			blocks = append(blocks, carmaBlock{
				order: 1,
				re:    real(g.Root),
				a:     real(acf[idx]),
			})
			idx++

			continue
		}

		v := acf[idx]
		blocks = append(blocks, carmaBlock{
			order: 2,
			re:    real(g.Root),
			im:    imag(g.Root),
			a:     2 * real(v),
			b:     -2 * imag(v),
		})
		idx += 2
	}

	k := &CARMA{
		alpha:  append([]float64(nil), alpha...),
		beta:   append([]float64(nil), beta...),
		blocks: blocks,
		dim:    len(roots),
	}

	return k, nil
}

// carmaACF computes the closed-form autocovariance amplitude for each
// autoregressive root r_k:
//
//	acf_k = beta(r_k) beta(-r_k) / (-2 Re(r_k) prod_{l != k} (r_l - r_k)(conj(r_l) + r_k))
func carmaACF(beta []float64, roots []complex128) []complex128 {
	acf := make([]complex128, len(roots))

	for k, rk := range roots {
		num := betaEval(beta, rk) * betaEval(beta, -rk)
		den := complex(-2*real(rk), 0)

		for l, rl := range roots {
			if l == k {
				continue
			}

			den *= (rl - rk) * (cmplx.Conj(rl) + rk)
		}

		acf[k] = num / den
	}

	return acf
}

// betaEval evaluates the moving average polynomial at z.
func betaEval(beta []float64, z complex128) complex128 {
	var v complex128
	for m := len(beta) - 1; m >= 0; m-- {
		v = v*z + complex(beta[m], 0)
	}

	return v
}

// StateDim returns the autoregressive order p.
func (k *CARMA) StateDim() int { return k.dim }

// DesignMatrix returns the block-diagonal transition generator.
func (k *CARMA) DesignMatrix() *mat.Dense {
	parts := make([]*mat.Dense, len(k.blocks))
	for i, blk := range k.blocks {
		parts[i] = blk.design()
	}

	return linalg.BlockDiag(parts...)
}

// ObservationModel returns the concatenated observation vector.
func (k *CARMA) ObservationModel() *mat.VecDense {
	out := mat.NewVecDense(k.dim, nil)
	off := 0

	for _, blk := range k.blocks {
		out.SetVec(off, 1)
		off += blk.order
	}

	return out
}

// StationaryCov returns the block-diagonal stationary covariance.
func (k *CARMA) StationaryCov() *mat.SymDense {
	parts := make([]*mat.SymDense, len(k.blocks))
	for i, blk := range k.blocks {
		parts[i] = blk.stationaryCov()
	}

	return linalg.BlockDiagSym(parts...)
}

// TransitionMatrix returns the block-diagonal state propagation.
func (k *CARMA) TransitionMatrix(x1, x2 float64) *mat.Dense {
	dt := x2 - x1

	parts := make([]*mat.Dense, len(k.blocks))
	for i, blk := range k.blocks {
		parts[i] = blk.transition(dt)
	}

	return linalg.BlockDiag(parts...)
}

// Eval returns the covariance between two points.
func (k *CARMA) Eval(x1, x2 float64) float64 {
	return evalStateSpace(k, x1, x2)
}

// Alpha returns a copy of the autoregressive coefficients.
func (k *CARMA) Alpha() []float64 {
	return append([]float64(nil), k.alpha...)
}

// Beta returns a copy of the moving average coefficients.
func (k *CARMA) Beta() []float64 {
	return append([]float64(nil), k.beta...)
}

// ARRoots returns the autoregressive roots in canonical block order, the
// positive imaginary member of each conjugate pair first.
func (k *CARMA) ARRoots() []complex128 {
	out := make([]complex128, 0, k.dim)

	for _, blk := range k.blocks {
		if blk.order == 1 {
			out = append(out, complex(blk.re, 0))

			continue
		}

		out = append(out, complex(blk.re, blk.im), complex(blk.re, -blk.im))
	}

	return out
}

// ACF returns the autocovariance amplitude for each root in ARRoots order.
func (k *CARMA) ACF() []complex128 {
	out := make([]complex128, 0, k.dim)

	for _, blk := range k.blocks {
		if blk.order == 1 {
			out = append(out, complex(blk.a, 0))

			continue
		}

		v := complex(blk.a/2, -blk.b/2)
		out = append(out, v, cmplx.Conj(v))
	}

	return out
}

// ObsModel returns the observation row of the paired representation, the
// product of the observation vector with the stationary covariance: per
// block, (a) for a real root and (a, -b) for a conjugate pair.
func (k *CARMA) ObsModel() *mat.VecDense {
	out := mat.NewVecDense(k.dim, nil)
	off := 0

	for _, blk := range k.blocks {
		out.SetVec(off, blk.a)

		if blk.order == 2 {
			out.SetVec(off+1, -blk.b)
		}

		off += blk.order
	}

	return out
}
