// Package errors provides structured error types for keyforge.
//
// Errors carry a machine-readable code so callers can distinguish
// configuration mistakes (fail fast) from numeric fallbacks (recovered
// locally with a best-effort result). Codes follow a simple naming
// convention:
//
//   - INVALID_*: input validation failures
//   - GEOMETRY_*: failures of the external geometry collaborator
//   - NON_CONVERGENCE, DEGENERATE_FRAME: numeric conditions that are
//     recovered with an approximate or fallback result
//
// Usage:
//
//	err := errors.New(errors.CodeInvalidConfig, "hand radius must be positive, got %g", r)
//	if errors.Is(err, errors.CodeInvalidConfig) {
//	    // reject the configuration
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// CodeInvalidConfig marks a missing or out-of-domain configuration
	// parameter, such as a zero or negative radius.
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// CodeGeometryUnavailable marks a failed bounding-box query on an
	// external shape handle. Canonicalization cannot proceed without it.
	CodeGeometryUnavailable Code = "GEOMETRY_UNAVAILABLE"

	// CodeNonConvergence marks an arc-length solve that hit its iteration
	// cap. The accompanying result is still usable, with bounded error.
	CodeNonConvergence Code = "NON_CONVERGENCE"

	// CodeDegenerateFrame marks a frame construction whose input vectors
	// were near parallel. A fallback reference axis was substituted.
	CodeDegenerateFrame Code = "DEGENERATE_FRAME"

	// CodeInternal marks an unexpected internal error.
	CodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code. It unwraps the error
// chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available. It returns
// the empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
