// Package errs defines the sentinel errors returned by bootstraphist packages.
//
// Errors fall into four classes. Every specific error wraps exactly one class, so
// callers can match either the precise condition or the whole class:
//
//	if errors.Is(err, errs.ErrValidation) {
//	    // bad fill input, nothing was written
//	}
//
// Degenerate numeric results (0/0 ratios, empty reductions) are reported as NaN
// values, never as errors.
package errs

import (
	"errors"
	"fmt"
)

// Error classes.
var (
	// ErrConfiguration reports an invalid construction-time or dimensionality setting.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation reports bad input detected before any state was mutated.
	ErrValidation = errors.New("validation error")
	// ErrIncompatible reports operands whose axes or replica counts differ.
	ErrIncompatible = errors.New("incompatible operands")
	// ErrDomain reports a reduction that has nothing to reduce over.
	ErrDomain = errors.New("domain error")
)

// Configuration errors.
var (
	ErrNoAxes              = fmt.Errorf("%w: at least one axis is required", ErrConfiguration)
	ErrInvalidAxis         = fmt.Errorf("%w: invalid axis", ErrConfiguration)
	ErrDuplicateCategory   = fmt.Errorf("%w: duplicate category label", ErrConfiguration)
	ErrCategoryCollision   = fmt.Errorf("%w: category label hash collision", ErrConfiguration)
	ErrInvalidReplicaCount = fmt.Errorf("%w: replica count must be positive", ErrConfiguration)
	ErrDimensionMismatch   = fmt.Errorf("%w: coordinate dimensionality does not match axes", ErrConfiguration)
	ErrInvalidOption       = fmt.Errorf("%w: invalid option", ErrConfiguration)
	ErrInvalidShape        = fmt.Errorf("%w: invalid array shape", ErrConfiguration)
)

// Validation errors.
var (
	ErrLengthMismatch  = fmt.Errorf("%w: input length mismatch", ErrValidation)
	ErrPercentileRange = fmt.Errorf("%w: percentile must be within [0, 100]", ErrValidation)
	ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrValidation)
)

// Incompatible-operand errors.
var (
	ErrIncompatibleAxes     = fmt.Errorf("%w: axes differ", ErrIncompatible)
	ErrIncompatibleReplicas = fmt.Errorf("%w: replica counts differ", ErrIncompatible)
	ErrShapeMismatch        = fmt.Errorf("%w: array shapes differ", ErrIncompatible)
)

// Domain errors.
var (
	ErrNoEligibleReplicas = fmt.Errorf("%w: no replicas eligible for reduction", ErrDomain)
)

// Dense array encoding errors.
var (
	ErrInvalidHeaderSize  = fmt.Errorf("%w: invalid header size", ErrValidation)
	ErrInvalidHeaderFlags = fmt.Errorf("%w: invalid header flags", ErrValidation)
	ErrTruncatedPayload   = fmt.Errorf("%w: truncated payload", ErrValidation)
	ErrChecksumMismatch   = fmt.Errorf("%w: payload checksum mismatch", ErrValidation)
)
