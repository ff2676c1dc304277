// Package errs defines the typed failures surfaced by the ORSO file engine.
//
// Every failure carries a Code so callers can branch with errors.As (or the
// IsXxx helpers) regardless of how many layers wrapped it. No failure is
// retried anywhere: every operation is a deterministic transform or a single
// read/write.
package errs

import (
	"errors"
	"fmt"
)

// Code categorizes an Error.
type Code string

const (
	// CodeFormatMismatch indicates the magic line is absent or malformed.
	CodeFormatMismatch Code = "FORMAT_MISMATCH"

	// CodeTypeMismatch indicates a raw value could not be coerced into any
	// declared alternative of a field.
	CodeTypeMismatch Code = "TYPE_MISMATCH"

	// CodeShapeMismatch indicates a numeric row or matrix disagrees with the
	// declared column count.
	CodeShapeMismatch Code = "SHAPE_MISMATCH"

	// CodeUnitMismatch indicates a unit string is not ASCII text.
	CodeUnitMismatch Code = "UNIT_MISMATCH"

	// CodeSchemaValidation indicates the published schema rejected a document.
	CodeSchemaValidation Code = "SCHEMA_VALIDATION_FAILURE"

	// CodeDecode indicates the structured text of a header block is not valid YAML.
	CodeDecode Code = "DECODE_FAILED"
)

// Error is the single error type of the engine.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Path is the dotted field path (or "line N") the failure refers to.
	Path string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s at %s: %s", e.Code, e.Path, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error without a cause.
func New(code Code, path, message string) *Error {
	return &Error{Code: code, Path: path, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, path, format string, args ...any) *Error {
	return &Error{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around an existing cause.
func Wrap(code Code, path, message string, err error) *Error {
	return &Error{Code: code, Path: path, Message: message, Err: err}
}

// CodeOf returns the code of the outermost Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Has reports whether any Error in err's chain carries code.
// A TYPE_MISMATCH caused by a UNIT_MISMATCH matches both codes.
func Has(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Err
	}
	return false
}

// IsFormatMismatch reports whether err is (or wraps) a FORMAT_MISMATCH.
func IsFormatMismatch(err error) bool { return Has(err, CodeFormatMismatch) }

// IsTypeMismatch reports whether err is (or wraps) a TYPE_MISMATCH.
func IsTypeMismatch(err error) bool { return Has(err, CodeTypeMismatch) }

// IsShapeMismatch reports whether err is (or wraps) a SHAPE_MISMATCH.
func IsShapeMismatch(err error) bool { return Has(err, CodeShapeMismatch) }

// IsUnitMismatch reports whether err is (or wraps) a UNIT_MISMATCH.
func IsUnitMismatch(err error) bool { return Has(err, CodeUnitMismatch) }

// IsSchemaValidation reports whether err is (or wraps) a SCHEMA_VALIDATION_FAILURE.
func IsSchemaValidation(err error) bool { return Has(err, CodeSchemaValidation) }
