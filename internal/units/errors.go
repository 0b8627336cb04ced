package units

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for unit conversion.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrUnsupportedConversion indicates no conversion path exists between
	// the two units. Units in different families (energy vs. mass) or
	// unknown unit names both produce this error.
	ErrUnsupportedConversion = constError("unsupported unit conversion")

	// ErrInvalidValue indicates a NaN or infinite input value.
	ErrInvalidValue = constError("invalid conversion value")
)
