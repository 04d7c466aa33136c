package parsely

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring a parse call.
type Option func(*runConfig)

// runConfig holds the configuration of a single Run/ParseStr call.
type runConfig struct {
	skipTrailingSpace bool
	logger            *zap.Logger
}

// defaultRunConfig returns the default run configuration.
func defaultRunConfig() *runConfig {
	return &runConfig{
		skipTrailingSpace: true,
		logger:            nil,
	}
}

// WithLogger sets the logger for the parse call.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithStrictTrailing disables skipping of trailing whitespace: the parser
// itself must consume the whole input.
// Default: trailing whitespace is skipped
func WithStrictTrailing() Option {
	return func(c *runConfig) {
		c.skipTrailingSpace = false
	}
}
