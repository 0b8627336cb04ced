package factors

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for factor resolution.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrFactorNotFound indicates no matching reference data exists in
	// either the external store or the built-in table. There is no safe
	// default emission factor, so this is always fatal to the enclosing
	// scope calculation.
	ErrFactorNotFound = constError("emission factor not found")

	// ErrInvalidDataset indicates a factor dataset file that cannot be
	// parsed or fails schema-version validation.
	ErrInvalidDataset = constError("invalid factor dataset")
)
