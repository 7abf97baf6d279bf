package utils

import "fmt"

// NoDataError reports that the provider returned nothing for a symbol.
// It is the caller's signal to check the ticker rather than retry.
type NoDataError struct {
	Symbol string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data found for symbol %q", e.Symbol)
}

func NewNoDataError(symbol string) *NoDataError {
	return &NoDataError{Symbol: symbol}
}

// InsufficientDataError reports that a series is too short for the
// requested operation. Required and Actual are day counts.
type InsufficientDataError struct {
	Symbol   string
	Required int
	Actual   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: need at least %d points, have %d (%d short)",
		e.Symbol, e.Required, e.Actual, e.Deficit())
}

// Deficit is the number of additional points needed.
func (e *InsufficientDataError) Deficit() int {
	d := e.Required - e.Actual
	if d < 0 {
		return 0
	}
	return d
}

func NewInsufficientDataError(symbol string, required, actual int) *InsufficientDataError {
	return &InsufficientDataError{Symbol: symbol, Required: required, Actual: actual}
}

// TransientFetchError wraps a provider failure that may succeed on
// retry. Results of failed fetches are never cached.
type TransientFetchError struct {
	Symbol string
	Err    error
}

func (e *TransientFetchError) Error() string {
	return fmt.Sprintf("transient fetch failure for %s: %v", e.Symbol, e.Err)
}

func (e *TransientFetchError) Unwrap() error {
	return e.Err
}

func NewTransientFetchError(symbol string, err error) *TransientFetchError {
	return &TransientFetchError{Symbol: symbol, Err: err}
}

// ValidationError reports a caller contract violation, such as an
// out-of-range horizon or a blank symbol.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
