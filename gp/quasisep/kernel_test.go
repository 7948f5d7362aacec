package quasisep

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gp/internal/testutil"
)

// mustKernel unwraps a constructor result, failing the test on error.
func mustKernel(tb testing.TB) func(Kernel, error) Kernel {
	return func(k Kernel, err error) Kernel {
		tb.Helper()

		if err != nil {
			tb.Fatalf("kernel construction failed: %v", err)
		}

		return k
	}
}

type kernelCase struct {
	name string
	k    Kernel
}

// testKernels builds one instance of every kernel kind, including nested
// combinations, for the shared structural tests.
func testKernels(tb testing.TB) []kernelCase {
	tb.Helper()

	exp := mustKernel(tb)(NewExp(1.3, 0.8))
	m32 := mustKernel(tb)(NewMatern32(1.5, 1.1))
	m52 := mustKernel(tb)(NewMatern52(2.0, 0.9))
	shoOsc := mustKernel(tb)(NewSHO(1.8, 3.0, 1.2))
	shoOver := mustKernel(tb)(NewSHO(1.8, 0.2, 1.2))
	shoCrit := mustKernel(tb)(NewSHO(1.8, 0.5, 1.2))
	cosine := mustKernel(tb)(NewCosine(2.5, 0.7))
	cel := mustKernel(tb)(NewCelerite(1.1, 0.8, 0.9, 0.1))
	carma := mustKernel(tb)(NewCARMA([]float64{1, 1.2}, []float64{1, 3}))
	sum := mustKernel(tb)(NewSum(exp, cel))
	prod := mustKernel(tb)(NewProduct(m32, cosine))
	scaled := mustKernel(tb)(NewScale(m52, 2.5))
	nested := mustKernel(tb)(NewScale(mustKernel(tb)(NewSum(prod, m52)), 1.7))

	return []kernelCase{
		{"Exp", exp},
		{"Matern32", m32},
		{"Matern52", m52},
		{"SHOUnderdamped", shoOsc},
		{"SHOOverdamped", shoOver},
		{"SHOCritical", shoCrit},
		{"Cosine", cosine},
		{"Celerite", cel},
		{"CARMA", carma},
		{"Sum", sum},
		{"Product", prod},
		{"Scale", scaled},
		{"Nested", nested},
	}
}

func TestEval_ClosedForms(t *testing.T) {
	t.Parallel()

	f32 := math.Sqrt(3) / 1.5
	f52 := math.Sqrt(5) / 2.0

	// Underdamped SHO with omega=1.8, Q=3.
	cU := 1.8 / (2 * 3.0)
	etaU := 1.8 * math.Sqrt(1-1/(4*3.0*3.0))

	// Overdamped SHO with omega=1.8, Q=0.2.
	cO := 1.8 / (2 * 0.2)
	etaO := 1.8 * math.Sqrt(1/(4*0.2*0.2)-1)

	cases := []struct {
		name string
		k    Kernel
		form func(tau float64) float64
	}{
		{
			name: "Exp",
			k:    mustKernel(t)(NewExp(1.3, 0.8)),
			form: func(tau float64) float64 { return 0.64 * math.Exp(-tau/1.3) },
		},
		{
			name: "Matern32",
			k:    mustKernel(t)(NewMatern32(1.5, 1.1)),
			form: func(tau float64) float64 {
				return 1.21 * (1 + f32*tau) * math.Exp(-f32*tau)
			},
		},
		{
			name: "Matern52",
			k:    mustKernel(t)(NewMatern52(2.0, 0.9)),
			form: func(tau float64) float64 {
				return 0.81 * (1 + f52*tau + f52*f52*tau*tau/3) * math.Exp(-f52*tau)
			},
		},
		{
			name: "SHOUnderdamped",
			k:    mustKernel(t)(NewSHO(1.8, 3.0, 1.2)),
			form: func(tau float64) float64 {
				return 1.44 * math.Exp(-cU*tau) *
					(math.Cos(etaU*tau) + cU/etaU*math.Sin(etaU*tau))
			},
		},
		{
			name: "SHOOverdamped",
			k:    mustKernel(t)(NewSHO(1.8, 0.2, 1.2)),
			form: func(tau float64) float64 {
				return 1.44 * math.Exp(-cO*tau) *
					(math.Cosh(etaO*tau) + cO/etaO*math.Sinh(etaO*tau))
			},
		},
		{
			name: "SHOCritical",
			k:    mustKernel(t)(NewSHO(1.8, 0.5, 1.2)),
			form: func(tau float64) float64 {
				return 1.44 * math.Exp(-1.8*tau) * (1 + 1.8*tau)
			},
		},
		{
			name: "Cosine",
			k:    mustKernel(t)(NewCosine(2.5, 0.7)),
			form: func(tau float64) float64 {
				return 0.49 * math.Cos(2*math.Pi*tau/2.5)
			},
		},
		{
			name: "Celerite",
			k:    mustKernel(t)(NewCelerite(1.1, 0.8, 0.9, 0.1)),
			form: func(tau float64) float64 {
				return math.Exp(-0.9*tau) * (1.1*math.Cos(0.1*tau) + 0.8*math.Sin(0.1*tau))
			},
		},
	}

	lags := []float64{0, 0.1, 0.5, 1.0, 2.3}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			const x0 = 0.37

			for _, tau := range lags {
				got := tc.k.Eval(x0, x0+tau)
				testutil.RequireNearlyEqual(t, got, tc.form(tau), 1e-12)
			}
		})
	}
}

func TestEval_Symmetric(t *testing.T) {
	t.Parallel()

	for _, tc := range testKernels(t) {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			pairs := [][2]float64{{0.3, 1.7}, {-2.1, 0.4}, {5.0, 5.0}}
			for _, p := range pairs {
				testutil.RequireNearlyEqual(t, tc.k.Eval(p[0], p[1]), tc.k.Eval(p[1], p[0]), 0)
			}
		})
	}
}

func TestEval_StationaryShiftInvariance(t *testing.T) {
	t.Parallel()

	for _, tc := range testKernels(t) {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			const tau = 0.9

			ref := tc.k.Eval(0, tau)
			for _, shift := range []float64{-3.2, 1.0, 17.5} {
				testutil.RequireNearlyEqual(t, tc.k.Eval(shift, shift+tau), ref, 1e-12)
			}
		})
	}
}

// TestTransitionMatrix_MatchesExpm validates every closed-form transition
// against the matrix exponential of the transposed design matrix.
func TestTransitionMatrix_MatchesExpm(t *testing.T) {
	t.Parallel()

	for _, tc := range testKernels(t) {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := tc.k.DesignMatrix()
			for _, dt := range []float64{0.05, 0.35, 1.4} {
				var ftd mat.Dense
				ftd.Scale(dt, f.T())

				var want mat.Dense
				want.Exp(&ftd)

				got := tc.k.TransitionMatrix(0.2, 0.2+dt)
				testutil.RequireMatNearlyEqual(t, got, &want, 1e-9)
			}
		})
	}
}

func TestTransitionMatrix_Semigroup(t *testing.T) {
	t.Parallel()

	for _, tc := range testKernels(t) {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			const (
				t1 = 0.3
				t2 = 1.1
				t3 = 2.4
			)

			var chained mat.Dense
			chained.Mul(tc.k.TransitionMatrix(t2, t3), tc.k.TransitionMatrix(t1, t2))

			direct := tc.k.TransitionMatrix(t1, t3)
			testutil.RequireMatNearlyEqual(t, direct, &chained, 1e-10)
		})
	}
}

func TestTransitionMatrix_ZeroLagIdentity(t *testing.T) {
	t.Parallel()

	for _, tc := range testKernels(t) {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := tc.k.TransitionMatrix(1.7, 1.7)
			n := tc.k.StateDim()

			for i := range n {
				for j := range n {
					want := 0.0
					if i == j {
						want = 1.0
					}

					testutil.RequireNearlyEqual(t, got.At(i, j), want, 0)
				}
			}
		})
	}
}

func TestStateDim_MatchesShapes(t *testing.T) {
	t.Parallel()

	for _, tc := range testKernels(t) {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			n := tc.k.StateDim()
			if n < 1 {
				t.Fatalf("StateDim() = %d, want >= 1", n)
			}

			if r, c := tc.k.DesignMatrix().Dims(); r != n || c != n {
				t.Errorf("DesignMatrix dims = %dx%d, want %dx%d", r, c, n, n)
			}

			if r, c := tc.k.StationaryCov().Dims(); r != n || c != n {
				t.Errorf("StationaryCov dims = %dx%d, want %dx%d", r, c, n, n)
			}

			if l := tc.k.ObservationModel().Len(); l != n {
				t.Errorf("ObservationModel len = %d, want %d", l, n)
			}
		})
	}
}

// TestAccessors_ReturnFreshCopies confirms that mutating an accessor result
// does not corrupt subsequent evaluations.
func TestAccessors_ReturnFreshCopies(t *testing.T) {
	t.Parallel()

	for _, tc := range testKernels(t) {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ref := tc.k.Eval(0.1, 1.3)

			tc.k.DesignMatrix().Set(0, 0, math.NaN())
			tc.k.StationaryCov().SetSym(0, 0, math.NaN())
			tc.k.ObservationModel().SetVec(0, math.NaN())
			tc.k.TransitionMatrix(0.1, 1.3).Set(0, 0, math.NaN())

			testutil.RequireNearlyEqual(t, tc.k.Eval(0.1, 1.3), ref, 0)
		})
	}
}

func TestConstructors_InvalidParameters(t *testing.T) {
	t.Parallel()

	base := mustKernel(t)(NewExp(1, 1))

	cases := []struct {
		name string
		err  error
	}{
		{"ExpZeroScale", kerr(NewExp(0, 1))},
		{"ExpNegativeSigma", kerr(NewExp(1, -1))},
		{"Matern32ZeroScale", kerr(NewMatern32(0, 1))},
		{"Matern32ZeroSigma", kerr(NewMatern32(1.5, 0))},
		{"Matern52NegativeScale", kerr(NewMatern52(-2, 1))},
		{"Matern52ZeroSigma", kerr(NewMatern52(2, 0))},
		{"SHOZeroOmega", kerr(NewSHO(0, 1, 1))},
		{"SHOZeroQ", kerr(NewSHO(1, 0, 1))},
		{"SHONegativeSigma", kerr(NewSHO(1, 1, -1))},
		{"CosineZeroScale", kerr(NewCosine(0, 1))},
		{"CosineZeroSigma", kerr(NewCosine(2.5, 0))},
		{"CeleriteZeroA", kerr(NewCelerite(0, 1, 1, 1))},
		{"CeleriteZeroC", kerr(NewCelerite(1, 1, 0, 1))},
		{"ScaleNegativeFactor", kerr(NewScale(base, -0.5))},
		{"ScaleNaNFactor", kerr(NewScale(base, math.NaN()))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if !errors.Is(tc.err, ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", tc.err)
			}
		})
	}
}

// kerr discards the kernel and keeps the constructor error.
func kerr(_ Kernel, err error) error { return err }
