// Package polyroot provides root finding and conjugate-pair grouping for
// real-coefficient polynomials, shared by the continuous-time autoregressive
// kernel construction.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// Roots finds all roots of a real-coefficient polynomial given in ascending
// power order (c[0] + c[1]*z + ... + c[n]*z^n). Degrees one and two are
// solved in closed form; higher degrees use the Durand-Kerner iteration.
func Roots(coeffs []float64) ([]complex128, error) {
	n := len(coeffs) - 1
	if n < 1 || coeffs[n] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	switch n {
	case 1:
		return []complex128{complex(-coeffs[0]/coeffs[1], 0)}, nil
	case 2:
		return quadRoots(coeffs[2], coeffs[1], coeffs[0]), nil
	}

	coeff := make([]complex128, len(coeffs))
	for i, c := range coeffs {
		coeff[n-i] = complex(c, 0)
	}

	return DurandKerner(coeff)
}

// quadRoots solves a*z^2 + b*z + c = 0 with a != 0. The discriminant branch
// avoids cancellation between -b and the square root.
func quadRoots(a, b, c float64) []complex128 {
	disc := b*b - 4*a*c
	if disc < 0 {
		re := -b / (2 * a)
		im := math.Sqrt(-disc) / (2 * a)

		return []complex128{complex(re, im), complex(re, -im)}
	}

	q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
	if q == 0 {
		return []complex128{0, 0}
	}

	return []complex128{complex(q/a, 0), complex(c/q, 0)}
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			f := PolyEval(norm, roots[i])
			delta := f / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	maxResidual := 0.0

	for _, r := range roots {
		res := cmplx.Abs(PolyEval(norm, r))
		if res > maxResidual {
			maxResidual = res
		}
	}

	if maxResidual < 1e-6 {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// Group is one root class of a real-coefficient polynomial: either a single
// real root, or the representative of a complex-conjugate pair. Pair
// representatives carry a non-negative imaginary part.
type Group struct {
	Root complex128
	Real bool
}

// GroupConjugates partitions the roots of a real-coefficient polynomial into
// real roots and conjugate pairs. Near-real roots are snapped onto the real
// axis. Every remaining complex root must find a conjugate partner within
// ConjugateTol, otherwise the grouping fails. Groups come back sorted by
// (|Re|, |Im|), preserving input order among ties.
func GroupConjugates(roots []complex128) ([]Group, error) {
	used := make([]bool, len(roots))
	groups := make([]Group, 0, len(roots))

	for i, root := range roots {
		if isReal(root) {
			used[i] = true

			groups = append(groups, Group{Root: complex(real(root), 0), Real: true})
		}
	}

	for i := range roots {
		if used[i] {
			continue
		}

		root := roots[i]
		conj := cmplx.Conj(root)
		best := -1
		bestDist := math.MaxFloat64

		for j := i + 1; j < len(roots); j++ {
			if used[j] {
				continue
			}

			d := cmplx.Abs(roots[j] - conj)
			if d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 || !IsConjugate(root, roots[best], ConjugateTol) {
			return nil, ErrDegeneratePolynomial
		}

		used[i] = true
		used[best] = true

		re := 0.5 * (real(root) + real(roots[best]))
		im := 0.5 * (math.Abs(imag(root)) + math.Abs(imag(roots[best])))
		groups = append(groups, Group{Root: complex(re, im)})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Root, groups[j].Root
		if ra, rb := math.Abs(real(a)), math.Abs(real(b)); ra != rb {
			return ra < rb
		}

		return math.Abs(imag(a)) < math.Abs(imag(b))
	})

	return groups, nil
}

// isReal reports whether a root sits on the real axis within ConjugateTol.
func isReal(z complex128) bool {
	return math.Abs(imag(z)) <= ConjugateTol*math.Max(1, math.Abs(real(z)))
}

// MulPoly multiplies two polynomials given in ascending power order.
func MulPoly(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}

	return out
}

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}
