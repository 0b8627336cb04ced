package engine

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for footprint calculations.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrInvalidScope3Category indicates a GHG Protocol value-chain
	// category number outside 1-15.
	ErrInvalidScope3Category = constError("invalid scope 3 category")

	// ErrUnitConversionFailed indicates activity data could not be
	// converted to the emission factor's native unit. The scope
	// calculators never guess a conversion.
	ErrUnitConversionFailed = constError("unit conversion failed")
)

// ValidationError rejects malformed input before any calculation is
// attempted. It names the offending field so callers can surface a
// single actionable message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}
