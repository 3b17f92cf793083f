package seeding

import "errors"

// Error taxonomy. Both classes are raised at build time and abort the
// operation; inside the steady-state pipeline every cut is a filter,
// not an error.
var (
	// ErrConfigInvalid reports a non-finite or inconsistent
	// configuration value.
	ErrConfigInvalid = errors.New("seeding: invalid configuration")

	// ErrInputInvalid reports a space point with non-finite
	// coordinates or a negative variance.
	ErrInputInvalid = errors.New("seeding: invalid space point")
)
