// Package spectral estimates power spectral densities, both from uniformly
// sampled series and from stationary covariance kernels.
//
// Periodogram tapers the input, zero-pads to a power-of-two transform size,
// and returns one-sided density bins from zero to the Nyquist frequency.
// KernelSpectrum evaluates the spectral density of a kernel numerically from
// its sampled autocovariance. Comparing the two is the usual sanity check
// that a fitted kernel captures the oscillatory content of the data.
package spectral
