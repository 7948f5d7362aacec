package noise

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gp/internal/testutil"
)

func TestIID(t *testing.T) {
	t.Parallel()

	m, err := NewIID(0.25)
	if err != nil {
		t.Fatalf("NewIID: %v", err)
	}

	diag, ok, err := m.Diag(3)
	if err != nil || !ok {
		t.Fatalf("Diag = (%v, %v, %v), want diagonal", diag, ok, err)
	}

	testutil.RequireSliceNearlyEqual(t, diag, []float64{0.25, 0.25, 0.25}, 0)

	cov := mat.NewSymDense(2, []float64{1, 0.5, 0.5, 2})
	if err := m.Add(cov); err != nil {
		t.Fatalf("Add: %v", err)
	}

	testutil.RequireNearlyEqual(t, cov.At(0, 0), 1.25, 0)
	testutil.RequireNearlyEqual(t, cov.At(1, 1), 2.25, 0)
	testutil.RequireNearlyEqual(t, cov.At(0, 1), 0.5, 0)
}

func TestIID_NegativeVariance(t *testing.T) {
	t.Parallel()

	if _, err := NewIID(-0.1); err == nil {
		t.Fatal("negative variance accepted")
	}
}

func TestDiagonal(t *testing.T) {
	t.Parallel()

	m, err := NewDiagonal([]float64{0.1, 0.2})
	if err != nil {
		t.Fatalf("NewDiagonal: %v", err)
	}

	diag, ok, err := m.Diag(2)
	if err != nil || !ok {
		t.Fatalf("Diag = (%v, %v, %v), want diagonal", diag, ok, err)
	}

	testutil.RequireSliceNearlyEqual(t, diag, []float64{0.1, 0.2}, 0)

	// The returned slice is a copy.
	diag[0] = 99
	again, _, _ := m.Diag(2)
	testutil.RequireNearlyEqual(t, again[0], 0.1, 0)

	if _, _, err := m.Diag(3); !errors.Is(err, ErrShape) {
		t.Fatalf("Diag(3) error = %v, want ErrShape", err)
	}

	cov := mat.NewSymDense(3, nil)
	if err := m.Add(cov); !errors.Is(err, ErrShape) {
		t.Fatalf("Add error = %v, want ErrShape", err)
	}
}

func TestDense(t *testing.T) {
	t.Parallel()

	src := mat.NewSymDense(2, []float64{0.5, 0.1, 0.1, 0.5})

	m, err := NewDense(src)
	if err != nil {
		t.Fatalf("NewDense: %v", err)
	}

	if _, ok, _ := m.Diag(2); ok {
		t.Fatal("dense noise reported as diagonal")
	}

	// Mutating the source after construction has no effect.
	src.SetSym(0, 0, 100)

	cov := mat.NewSymDense(2, []float64{1, 0, 0, 1})
	if err := m.Add(cov); err != nil {
		t.Fatalf("Add: %v", err)
	}

	testutil.RequireNearlyEqual(t, cov.At(0, 0), 1.5, 0)
	testutil.RequireNearlyEqual(t, cov.At(0, 1), 0.1, 0)

	small := mat.NewSymDense(3, nil)
	if err := m.Add(small); !errors.Is(err, ErrShape) {
		t.Fatalf("Add error = %v, want ErrShape", err)
	}
}
