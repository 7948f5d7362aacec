package process

import "github.com/cwbudde/algo-gp/gp/noise"

// Config collects the optional pieces of a Gaussian process.
type Config struct {
	Noise  noise.Model
	Mean   func(x float64) float64
	Direct bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns noiseless observations, a zero prior mean, and
// automatic solver selection.
func DefaultConfig() Config {
	return Config{}
}

// WithNoise sets the observation noise model.
func WithNoise(m noise.Model) Option {
	return func(cfg *Config) {
		if m != nil {
			cfg.Noise = m
		}
	}
}

// WithMean sets the prior mean function.
func WithMean(mean func(x float64) float64) Option {
	return func(cfg *Config) {
		if mean != nil {
			cfg.Mean = mean
		}
	}
}

// WithConstantMean sets a constant prior mean.
func WithConstantMean(c float64) Option {
	return func(cfg *Config) {
		cfg.Mean = func(float64) float64 { return c }
	}
}

// WithDirectSolver forces the dense factorization even when the structured
// path applies.
func WithDirectSolver() Option {
	return func(cfg *Config) {
		cfg.Direct = true
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
