// Package quasisep implements scalable Gaussian process kernels with linear
// time-invariant state-space representations.
//
// Every kernel exposes a state dimension, a transition generator F, an
// observation vector h, and a stationary state covariance Pinf; the
// covariance between two points x1 <= x2 is h^T Pinf expm(F^T (x2-x1)) h.
// Over an ascending sequence of points this induces a symmetric
// quasiseparable covariance matrix, so likelihood solves run in O(N) instead
// of O(N^3). Primitive kernels (exponential, Matern, damped oscillator,
// cosine, celerite) are provided alongside sum, product, and scale
// combinators and a converter from continuous autoregressive moving average
// (CARMA) processes.
package quasisep
