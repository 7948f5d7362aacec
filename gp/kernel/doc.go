// Package kernel provides dense covariance functions over vector inputs.
//
// Kernels evaluate pointwise and expand to gonum matrices via EvalMatrix and
// EvalDiag. Stationary kernels measure input separation through a pluggable
// Metric: the Euclidean UnitMetric, a per-dimension DiagonalMetric, or a
// Mahalanobis DenseMetric backed by a Cholesky factorization. Kernels compose
// with Sum and Product.
//
// For one-dimensional sorted inputs the quasisep package evaluates the
// common stationary covariances in linear time; this package is the general
// quadratic-cost path with no ordering requirement on the inputs.
package kernel
