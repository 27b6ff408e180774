package core

import "log/slog"

// AnalysisConfig defines the tunables shared by the periodicity pipeline.
type AnalysisConfig struct {
	// LeafSize is the maximum number of items in a radius-index leaf.
	LeafSize int
	// QuadraturePoints is the number of evenly spaced samples used to
	// approximate the curve distance integral.
	QuadraturePoints int
	// MaxIterations bounds sequence-model training.
	MaxIterations int
	// ConvergenceTol stops training once the log-likelihood gain drops below it.
	ConvergenceTol float64
	// Logger receives diagnostics. Never nil after ApplyAnalysisOptions.
	Logger *slog.Logger
}

// AnalysisOption mutates an AnalysisConfig.
type AnalysisOption func(*AnalysisConfig)

// DefaultAnalysisConfig returns the defaults used when no option is given.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		LeafSize:         1,
		QuadraturePoints: 10,
		MaxIterations:    200,
		ConvergenceTol:   1e-9,
		Logger:           slog.New(slog.DiscardHandler),
	}
}

// WithLeafSize sets the radius-index leaf size.
func WithLeafSize(leafSize int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if leafSize > 0 {
			cfg.LeafSize = leafSize
		}
	}
}

// WithQuadraturePoints sets the number of samples of the curve distance quadrature.
func WithQuadraturePoints(points int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if points > 0 {
			cfg.QuadraturePoints = points
		}
	}
}

// WithMaxIterations bounds sequence-model training iterations.
func WithMaxIterations(n int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if n > 0 {
			cfg.MaxIterations = n
		}
	}
}

// WithConvergenceTol sets the training stop threshold.
func WithConvergenceTol(tol float64) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if tol > 0 {
			cfg.ConvergenceTol = tol
		}
	}
}

// WithLogger routes diagnostics to logger.
func WithLogger(logger *slog.Logger) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

// ApplyAnalysisOptions applies zero or more options to the default config.
func ApplyAnalysisOptions(opts ...AnalysisOption) AnalysisConfig {
	cfg := DefaultAnalysisConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
