package failure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError_Unwrap(t *testing.T) {
	err := NewConfigurationError("population_size", ErrEmptyPopulation, "got %d", 0)

	assert.ErrorIs(t, err, ErrEmptyPopulation)
	assert.Contains(t, err.Error(), "population_size")
	assert.Contains(t, err.Error(), "got 0")
}

func TestIsConfiguration(t *testing.T) {
	wrapped := fmt.Errorf("engine: %w", NewConfigurationError("target", ErrDimensionMismatch, "len %d", 12))

	assert.True(t, IsConfiguration(wrapped))
	assert.True(t, errors.Is(wrapped, ErrDimensionMismatch))
	assert.False(t, IsConfiguration(errors.New("plain")))
}

func TestConfigurationError_NoReason(t *testing.T) {
	err := &ConfigurationError{Field: "limits", Err: ErrInvalidLimits}
	assert.Equal(t, "configuration: limits: invalid genome limits", err.Error())
}
