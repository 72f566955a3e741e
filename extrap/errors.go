package extrap

import "errors"

// Errors returned by the extrapolators.
var (
	ErrLimexpTooSmall = errors.New("extrap: limexp is less than 3")
	ErrEmptySequence  = errors.New("extrap: empty sequence")
	ErrLengthMismatch = errors.New("extrap: length mismatch")
)
