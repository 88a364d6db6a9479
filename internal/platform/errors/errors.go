// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode defines supported error codes used across the explorer
// Values are stable; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeInvalidArgument is for bad input parameters (flags, malformed source rows)
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is for struct validation failures (config options)
	ErrorCodeValidation

	// ErrorCodeNotFound is for missing resources (data file, table rows)
	ErrorCodeNotFound

	// ErrorCodeSource is for failures reading from a record source
	ErrorCodeSource

	// ErrorCodeInvalidCriteria is for a city/month/day outside the known enumerations
	ErrorCodeInvalidCriteria

	// ErrorCodeEmptyDataset is for aggregation requested over zero records
	ErrorCodeEmptyDataset

	// ErrorCodeMissingField is for a field that is absent or entirely null in the view
	ErrorCodeMissingField
)

// String returns a short stable name for the code
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeInvalidArgument:
		return "invalid_argument"
	case ErrorCodeValidation:
		return "validation"
	case ErrorCodeNotFound:
		return "not_found"
	case ErrorCodeSource:
		return "source"
	case ErrorCodeInvalidCriteria:
		return "invalid_criteria"
	case ErrorCodeEmptyDataset:
		return "empty_dataset"
	case ErrorCodeMissingField:
		return "missing_field"
	default:
		return "unknown"
	}
}

// ExitCodeOf turns an ErrorCode into a process exit status
func ExitCodeOf(c ErrorCode) int {
	switch c {
	case ErrorCodeInvalidArgument, ErrorCodeValidation, ErrorCodeInvalidCriteria:
		return 2
	case ErrorCodeNotFound, ErrorCodeSource:
		return 3
	default:
		return 1
	}
}

// Error is the structured error type with wrapping and metadata
// msg is human facing; code is machine facing
// field is optional (trip field or column); op is optional operation tag
// orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// Message returns the message without the wrapped cause
func (e *Error) Message() string { return e.msg }

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// ExitCode returns the mapped exit status for any error, 0 for nil
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return ExitCodeOf(CodeOf(err))
}

// Recoverable reports whether a session can report err and carry on with the next selection
func Recoverable(err error) bool {
	switch CodeOf(err) {
	case ErrorCodeInvalidCriteria, ErrorCodeEmptyDataset, ErrorCodeMissingField, ErrorCodeNotFound:
		return true
	default:
		return false
	}
}

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is re-exports errors.Is to reduce import noise at call sites
func Is(err, target error) bool { return stderrs.Is(err, target) }

// Mutators (copy-on-write)

// WithField attaches a field to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// Sugar

// NotFoundf returns a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Sourcef returns a record source error
func Sourcef(format string, a ...any) error { return Newf(ErrorCodeSource, format, a...) }

// InvalidCriteriaf returns an invalid criteria error
func InvalidCriteriaf(format string, a ...any) error { return Newf(ErrorCodeInvalidCriteria, format, a...) }

// EmptyDatasetf returns an empty dataset error
func EmptyDatasetf(format string, a ...any) error { return Newf(ErrorCodeEmptyDataset, format, a...) }

// MissingFieldf returns a missing field error
func MissingFieldf(format string, a ...any) error { return Newf(ErrorCodeMissingField, format, a...) }

// Internalf returns a generic internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }
