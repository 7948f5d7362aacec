package kernel

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gp/internal/testutil"
)

func mustMetric(tb testing.TB) func(Metric, error) Metric {
	return func(m Metric, err error) Metric {
		tb.Helper()

		if err != nil {
			tb.Fatalf("metric construction failed: %v", err)
		}

		return m
	}
}

func TestUnitMetric(t *testing.T) {
	t.Parallel()

	testutil.RequireNearlyEqual(t, UnitMetric([]float64{3, 4}), 25, 0)
	testutil.RequireNearlyEqual(t, UnitMetric([]float64{-2}), 4, 0)
	testutil.RequireNearlyEqual(t, UnitMetric(nil), 0, 0)
}

func TestDiagonalMetric_Broadcast(t *testing.T) {
	t.Parallel()

	m := mustMetric(t)(DiagonalMetric(2))

	// A single length scale applies to every dimension.
	testutil.RequireNearlyEqual(t, m([]float64{3, 4}), 6.25, 1e-15)
	testutil.RequireNearlyEqual(t, m([]float64{3}), 2.25, 1e-15)
}

func TestDiagonalMetric_PerDimension(t *testing.T) {
	t.Parallel()

	m := mustMetric(t)(DiagonalMetric(1, 2))
	testutil.RequireNearlyEqual(t, m([]float64{3, 4}), 13, 1e-15)
}

func TestDiagonalMetric_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ell  []float64
	}{
		{"Empty", nil},
		{"Zero", []float64{1, 0}},
		{"Negative", []float64{-1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := DiagonalMetric(tc.ell...); !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestDenseMetric_MatchesDiagonal(t *testing.T) {
	t.Parallel()

	dense := mustMetric(t)(DenseMetric(mat.NewSymDense(2, []float64{4, 0, 0, 1})))
	diag := mustMetric(t)(DiagonalMetric(2, 1))

	diff := []float64{2, 3}
	testutil.RequireNearlyEqual(t, dense(diff), diag(diff), 1e-12)
	testutil.RequireNearlyEqual(t, dense(diff), 10, 1e-12)
}

func TestDenseMetric_Correlated(t *testing.T) {
	t.Parallel()

	// cov = [[2, 1], [1, 2]] has inverse [[2, -1], [-1, 2]]/3, so the
	// squared distance of (1, 1) is 2/3.
	m := mustMetric(t)(DenseMetric(mat.NewSymDense(2, []float64{2, 1, 1, 2})))
	testutil.RequireNearlyEqual(t, m([]float64{1, 1}), 2.0/3, 1e-12)
}

func TestCholeskyMetric_MatchesDense(t *testing.T) {
	t.Parallel()

	cov := mat.NewSymDense(2, []float64{2, 1, 1, 2})

	var chol mat.Cholesky
	if !chol.Factorize(cov) {
		t.Fatal("factorization failed")
	}

	m := CholeskyMetric(&chol)
	dense := mustMetric(t)(DenseMetric(cov))

	diff := []float64{0.7, -1.3}
	testutil.RequireNearlyEqual(t, m(diff), dense(diff), 1e-13)
}

func TestDenseMetric_NotPositiveDefinite(t *testing.T) {
	t.Parallel()

	indefinite := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	if _, err := DenseMetric(indefinite); !errors.Is(err, ErrNotPositiveDefinite) {
		t.Fatalf("error = %v, want ErrNotPositiveDefinite", err)
	}
}
