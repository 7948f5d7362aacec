package spectral

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-gp/gp/quasisep"
)

// ErrShortInput reports too few samples or lags for a spectral estimate.
var ErrShortInput = errors.New("spectral: input too short")

// Spectrum is a one-sided power spectral density over uniformly spaced
// frequency bins from zero to the Nyquist frequency.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// Periodogram estimates the power spectral density of a uniformly sampled
// series.
//
// The series is tapered, zero-padded to a power-of-two transform size, and
// normalized so that the density integrates to the mean power of the input:
//
//	sum(Power) * df ~= mean(x^2)
//
// Interior bins carry the doubled two-sided density; the DC and Nyquist bins
// are not doubled.
func Periodogram(samples []float64, opts ...Option) (Spectrum, error) {
	if len(samples) < 2 {
		return Spectrum{}, fmt.Errorf("%w: %d samples", ErrShortInput, len(samples))
	}

	cfg := ApplyOptions(opts...)

	coeffs := window.Generate(cfg.Window, len(samples))

	tapered, err := window.ApplyCoefficients(samples, coeffs)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectral: taper: %w", err)
	}

	winPower := 0.0
	for _, w := range coeffs {
		winPower += w * w
	}

	if winPower == 0 {
		return Spectrum{}, errors.New("spectral: window has no energy")
	}

	fftSize := nextPowerOf2(len(samples) * cfg.PadFactor)

	bins, err := forwardReal(tapered, fftSize)
	if err != nil {
		return Spectrum{}, err
	}

	binCount := fftSize/2 + 1
	power := powerBins(bins[:binCount])

	scale := 1 / (cfg.SampleRate * winPower)
	for i := range power {
		power[i] *= scale
		if i > 0 && i < binCount-1 {
			power[i] *= 2
		}
	}

	return Spectrum{
		Freqs: binFreqs(binCount, cfg.SampleRate/float64(fftSize)),
		Power: power,
	}, nil
}

// KernelSpectrum evaluates the spectral density of a stationary kernel
// numerically. The autocovariance is sampled at n lags spaced dt apart,
// extended symmetrically, and transformed; bin k approximates
//
//	S(f_k) = integral k(tau) * exp(-2*pi*i*f_k*tau) dtau
//
// The density of a stationary kernel is even in f, so only nonnegative
// frequencies are reported, without doubling. n*dt should cover the decay of
// the autocovariance, otherwise the circular extension wraps the tail.
func KernelSpectrum(k quasisep.Kernel, n int, dt float64) (Spectrum, error) {
	if n < 2 {
		return Spectrum{}, fmt.Errorf("%w: %d lags", ErrShortInput, n)
	}

	if dt <= 0 {
		return Spectrum{}, fmt.Errorf("spectral: lag spacing %v, want > 0", dt)
	}

	acf := make([]float64, n)
	for j := range acf {
		acf[j] = k.Eval(0, float64(j)*dt)
	}

	size := nextPowerOf2(2 * (n - 1))

	in := make([]complex128, size)
	in[0] = complex(acf[0], 0)

	for j := 1; j < n; j++ {
		in[j] = complex(acf[j], 0)
		in[size-j] = complex(acf[j], 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectral: %w", err)
	}

	bins := make([]complex128, size)
	if err := plan.Forward(bins, in); err != nil {
		return Spectrum{}, fmt.Errorf("spectral: %w", err)
	}

	// The transform of an even sequence is real; rounding leaves tiny
	// imaginary parts and can push near-zero bins slightly negative.
	binCount := size/2 + 1
	power := make([]float64, binCount)

	for i := range power {
		power[i] = max(dt*real(bins[i]), 0)
	}

	return Spectrum{
		Freqs: binFreqs(binCount, 1/(float64(size)*dt)),
		Power: power,
	}, nil
}

// PeakFrequency returns the frequency of the strongest bin, refined by a
// parabolic fit through the bin and its neighbors.
func PeakFrequency(s Spectrum) float64 {
	if len(s.Power) == 0 || len(s.Freqs) != len(s.Power) {
		return 0
	}

	peak := 0
	for i, v := range s.Power {
		if v > s.Power[peak] {
			peak = i
		}
	}

	if peak == 0 || peak == len(s.Power)-1 {
		return s.Freqs[peak]
	}

	lo, mid, hi := s.Power[peak-1], s.Power[peak], s.Power[peak+1]

	denom := lo - 2*mid + hi
	if denom == 0 {
		return s.Freqs[peak]
	}

	delta := 0.5 * (lo - hi) / denom
	if delta > 0.5 {
		delta = 0.5
	} else if delta < -0.5 {
		delta = -0.5
	}

	df := s.Freqs[1] - s.Freqs[0]

	return s.Freqs[peak] + delta*df
}

func forwardReal(samples []float64, fftSize int) ([]complex128, error) {
	in := make([]complex128, fftSize)
	for i, v := range samples {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectral: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectral: %w", err)
	}

	return out, nil
}

func powerBins(bins []complex128) []float64 {
	re := make([]float64, len(bins))
	im := make([]float64, len(bins))

	for i, c := range bins {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(bins))
	vecmath.Power(out, re, im)

	return out
}

func binFreqs(binCount int, df float64) []float64 {
	freqs := make([]float64, binCount)
	for i := range freqs {
		freqs[i] = float64(i) * df
	}

	return freqs
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
