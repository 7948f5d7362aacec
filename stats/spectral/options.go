package spectral

import "github.com/cwbudde/algo-dsp/dsp/window"

// Config defines configuration for spectral estimation.
type Config struct {
	SampleRate float64
	Window     window.Type
	PadFactor  int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults: unit sample rate, Hann taper, no
// padding beyond the power-of-two transform size.
func DefaultConfig() Config {
	return Config{
		SampleRate: 1,
		Window:     window.TypeHann,
		PadFactor:  1,
	}
}

// WithSampleRate sets the sample rate of the input series in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithWindow sets the taper applied before the transform.
func WithWindow(t window.Type) Option {
	return func(cfg *Config) {
		cfg.Window = t
	}
}

// WithPadFactor zero-pads the transform by the given factor for finer bin
// spacing.
func WithPadFactor(factor int) Option {
	return func(cfg *Config) {
		if factor >= 1 {
			cfg.PadFactor = factor
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
