package model

import "fmt"

// ValidationError reports caller input that violates a record invariant.
// It is returned before any bytes are produced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// EncodingError reports a value that does not fit its on-chain width.
type EncodingError struct {
	Field string
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Field, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// DecodingError reports calldata that cannot be turned back into a record.
type DecodingError struct {
	Method string
	Err    error
}

func (e *DecodingError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("decode calldata: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Method, e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }
