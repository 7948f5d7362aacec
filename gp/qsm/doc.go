// Package qsm implements symmetric quasiseparable matrices and their lower
// Cholesky factors.
//
// A quasiseparable matrix of order m stores an N-by-N symmetric matrix in
// O(N*m) space: a diagonal, per-row and per-column functionals, and per-step
// transition matrices that chain the off-diagonal blocks together.
// Matrix-vector products, Cholesky factorization, and triangular solves all
// run in O(N) for fixed order, which is what makes Gaussian process
// likelihoods over such matrices scale to long series.
package qsm
