// Package failure holds the error types shared by the engine layers.
// Every fatal setup problem surfaces as a *ConfigurationError; invariant
// guards inside mutation never produce errors.
package failure

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch marks pixel buffers whose length does not match 4*w*h
	ErrDimensionMismatch = errors.New("pixel buffer dimension mismatch")

	// ErrEmptyPopulation marks a zero or negative population size
	ErrEmptyPopulation = errors.New("population size must be positive")

	// ErrInvalidLimits marks canvas or genome limits that cannot hold a valid genome
	ErrInvalidLimits = errors.New("invalid genome limits")

	// ErrInvalidRate marks a probability outside [0,1]
	ErrInvalidRate = errors.New("rate outside [0,1]")

	// ErrNoRasterizer marks an engine built without any rendering surface
	ErrNoRasterizer = errors.New("no rasterizer")

	// ErrUnknownStrategy marks a selector or combiner name absent from the registry
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// ConfigurationError reports a setting that makes a run impossible
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("configuration: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("configuration: %s: %s: %v", e.Field, e.Reason, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError builds a ConfigurationError around a sentinel
func NewConfigurationError(field string, err error, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}

// IsConfiguration reports whether err carries a ConfigurationError
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
