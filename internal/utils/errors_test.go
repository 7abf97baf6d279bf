package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoDataError(t *testing.T) {
	err := NewNoDataError("FAKESYM")
	assert.Contains(t, err.Error(), "FAKESYM")

	var target *NoDataError
	require.True(t, errors.As(fmt.Errorf("lookup: %w", err), &target))
	assert.Equal(t, "FAKESYM", target.Symbol)
}

func TestInsufficientDataErrorDeficit(t *testing.T) {
	err := NewInsufficientDataError("AAPL", 100, 50)
	assert.Equal(t, 50, err.Deficit())
	assert.Contains(t, err.Error(), "need at least 100")
	assert.Contains(t, err.Error(), "have 50")

	// Deficit never goes negative.
	assert.Equal(t, 0, NewInsufficientDataError("AAPL", 100, 150).Deficit())
}

func TestTransientFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransientFetchError("MSFT", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "MSFT")

	var target *TransientFetchError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "MSFT", target.Symbol)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("days", "must be between 7 and 90")
	assert.Contains(t, err.Error(), "days")
	assert.Contains(t, err.Error(), "between 7 and 90")
}
