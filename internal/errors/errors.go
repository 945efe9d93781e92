package errors

import (
	"errors"
	"fmt"
)

// Code classifies analysis errors into the categories the presentation
// layers are expected to distinguish.
type Code string

const (
	// CodeInvalidInput marks malformed or insufficient input. Components
	// normally answer these with a neutral result instead of an error;
	// the code exists for the few places that must report them upward.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeComputation marks numerical degeneracy (zero variance, zero
	// weight sum) that was short-circuited to a neutral value.
	CodeComputation Code = "COMPUTATION_DEGENERATE"
	// CodeConsistency marks records referencing regions absent from the
	// loaded geometry. These are logged and skipped, never fatal.
	CodeConsistency Code = "INCONSISTENT_REFERENCE"
	// CodeConfig marks caller configuration problems (bad iteration
	// count, invalid bandwidth). These are surfaced, not swallowed.
	CodeConfig Code = "INVALID_CONFIG"
	// CodeSuperseded marks a computation discarded because a newer
	// request claimed the same slot.
	CodeSuperseded Code = "SUPERSEDED"
)

// AnalysisError is the structured error type returned by the analytics
// core when a failure must reach the caller.
type AnalysisError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// New creates a new AnalysisError with the given code and message
func New(code Code, message string) *AnalysisError {
	return &AnalysisError{Code: code, Message: message}
}

// NewWithDetails creates a new AnalysisError with additional details
func NewWithDetails(code Code, message, details string) *AnalysisError {
	return &AnalysisError{Code: code, Message: message, Details: details}
}

// Wrap attaches a code and message to an underlying error
func Wrap(code Code, message string, err error) *AnalysisError {
	if err == nil {
		return New(code, message)
	}
	return NewWithDetails(code, message, err.Error())
}

// CodeOf extracts the Code from an error chain, or "" if the error is
// not an AnalysisError.
func CodeOf(err error) Code {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Code
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		return CodeConfig
	}
	return ""
}

// IsConfig reports whether the error is a configuration problem that
// the caller should fix rather than retry.
func IsConfig(err error) bool {
	return CodeOf(err) == CodeConfig
}

// ErrSuperseded is returned by slot-keyed computations when a newer
// request for the same slot cancelled this one.
var ErrSuperseded = New(CodeSuperseded, "computation superseded by a newer request")
