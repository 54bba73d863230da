// Package errors provides coded errors for genoviz.
//
// Every failure a chart, decoder or session can report carries a [Code].
// Codes fall into a [Class], which decides how the CLI words the failure and
// which HTTP status the server answers with.
//
//	err := errors.New(errors.ErrCodeInvalidRange, "row %d: start %v is after end %v", i, s, e)
//	if errors.Is(err, errors.ErrCodeInvalidRange) {
//	    // reject the row
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidFormat, cause, "decode %s", path)
//	status := errors.HTTPStatus(err) // 400
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code. It is sent to clients verbatim.
type Code string

// Input codes.
const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidCoordinate Code = "INVALID_COORDINATE"
	ErrCodeInvalidRange      Code = "INVALID_RANGE"
	ErrCodeInvalidStrand     Code = "INVALID_STRAND"
	ErrCodeInvalidColumn     Code = "INVALID_COLUMN"
	ErrCodeInvalidStyle      Code = "INVALID_STYLE"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidKind       Code = "INVALID_KIND"
	ErrCodeInvalidEvent      Code = "INVALID_EVENT"
	ErrCodeNonFiniteTotal    Code = "NON_FINITE_TOTAL"
	ErrCodeNegativeCount     Code = "NEGATIVE_COUNT"
	ErrCodeDuplicateCategory Code = "DUPLICATE_CATEGORY"
	ErrCodeUnknownFeature    Code = "UNKNOWN_FEATURE"
)

// Lookup and server codes.
const (
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"
	ErrCodeInternal        Code = "INTERNAL_ERROR"
	ErrCodeUnsupported     Code = "UNSUPPORTED"
)

// Class groups codes by who has to act on them.
type Class int

const (
	ClassInternal    Class = iota // a bug or a failing backend
	ClassValidation               // the caller sent bad data
	ClassNotFound                 // the referenced resource is gone
	ClassUnsupported              // the build cannot do this
)

var classes = map[Code]Class{
	ErrCodeInvalidInput:      ClassValidation,
	ErrCodeInvalidCoordinate: ClassValidation,
	ErrCodeInvalidRange:      ClassValidation,
	ErrCodeInvalidStrand:     ClassValidation,
	ErrCodeInvalidColumn:     ClassValidation,
	ErrCodeInvalidStyle:      ClassValidation,
	ErrCodeInvalidFormat:     ClassValidation,
	ErrCodeInvalidKind:       ClassValidation,
	ErrCodeInvalidEvent:      ClassValidation,
	ErrCodeNonFiniteTotal:    ClassValidation,
	ErrCodeNegativeCount:     ClassValidation,
	ErrCodeDuplicateCategory: ClassValidation,
	ErrCodeUnknownFeature:    ClassValidation,
	ErrCodeNotFound:          ClassNotFound,
	ErrCodeSessionNotFound:   ClassNotFound,
	ErrCodeUnsupported:       ClassUnsupported,
}

// Class returns the class of c. Unknown codes are internal.
func (c Code) Class() Class {
	return classes[c]
}

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

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
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

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ClassOf returns the class of err's code. Uncoded errors are internal.
func ClassOf(err error) Class {
	return GetCode(err).Class()
}

// IsValidation reports whether err was caused by bad input.
func IsValidation(err error) bool { return ClassOf(err) == ClassValidation }

// IsNotFound reports whether err refers to a missing resource or session.
func IsNotFound(err error) bool { return ClassOf(err) == ClassNotFound }

// HTTPStatus maps err to a response status.
func HTTPStatus(err error) int {
	switch ClassOf(err) {
	case ClassValidation:
		return http.StatusBadRequest
	case ClassNotFound:
		return http.StatusNotFound
	case ClassUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
