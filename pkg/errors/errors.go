// Package errors defines the coded error used across flowboard.
//
// Every failure a user can act on carries a [Code]: the importer reports
// UNKNOWN_NODE for a needs entry naming a missing pod and
// CYCLIC_DEPENDENCY for a needs loop, the Flow parser reports
// INVALID_YAML, file wrappers report FILE_NOT_FOUND. Sentinel errors from
// the chart and layout packages are kept as the cause, so both
//
//	errors.Is(err, errors.ErrCodeCyclicDependency) // this package
//	stderrors.Is(err, layout.ErrCycle)            // standard library
//
// hold for the same error.
//
// # Usage
//
//	return errors.New(errors.ErrCodeInvalidName, "pod name is empty")
//	return errors.Wrap(errors.ErrCodeInvalidYAML, yamlErr, "parse flow")
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// Document and input errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidYAML     Code = "INVALID_YAML"
	ErrCodeInvalidProperty Code = "INVALID_PROPERTY"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidName     Code = "INVALID_NAME"

	// Needs graph errors
	ErrCodeUnknownNode      Code = "UNKNOWN_NODE"
	ErrCodeCyclicDependency Code = "CYCLIC_DEPENDENCY"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional cause.
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

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage drops the code prefix for display. Plain errors are
// returned as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}
