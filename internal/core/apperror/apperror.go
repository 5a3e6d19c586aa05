package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for the transport layer.
type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeStateConflict Code = "STATE_CONFLICT"
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeDependency    Code = "DEPENDENCY_ERROR"
)

// GenericMessage is the only text end users see for unexpected failures.
const GenericMessage = "could not complete the operation, try again"

// Metadata describes how a code is exposed over HTTP.
type Metadata struct {
	HTTPStatus int
	// Expose reports whether the error message may be shown to the caller.
	// When false the GenericMessage is used and the error is logged instead.
	Expose bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:    {HTTPStatus: http.StatusBadRequest, Expose: true},
	CodeNotFound:      {HTTPStatus: http.StatusNotFound, Expose: true},
	CodeConflict:      {HTTPStatus: http.StatusConflict, Expose: true},
	CodeStateConflict: {HTTPStatus: http.StatusUnprocessableEntity, Expose: true},
	CodeInternal:      {HTTPStatus: http.StatusInternalServerError, Expose: false},
	CodeDependency:    {HTTPStatus: http.StatusServiceUnavailable, Expose: false},
}

// MetadataFor returns the transport metadata of a code, defaulting to internal.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// Error is a coded application error. It keeps the cause so errors.Is keeps
// matching feature sentinel errors through it.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

// New builds a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap builds a coded error around err.
func Wrap(code Code, err error, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

// Validation is shorthand for Wrap(CodeValidation, ...).
func Validation(err error, message string) *Error {
	return Wrap(CodeValidation, err, message)
}

// NotFound is shorthand for Wrap(CodeNotFound, ...).
func NotFound(err error, message string) *Error {
	return Wrap(CodeNotFound, err, message)
}

// Conflict is shorthand for Wrap(CodeConflict, ...).
func Conflict(err error, message string) *Error {
	return Wrap(CodeConflict, err, message)
}

// StateConflict is shorthand for Wrap(CodeStateConflict, ...).
func StateConflict(err error, message string) *Error {
	return Wrap(CodeStateConflict, err, message)
}

// Internal wraps an unexpected failure.
func Internal(err error, message string) *Error {
	return Wrap(CodeInternal, err, message)
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

// WithDetails attaches structured details, e.g. offending SKUs or field errors.
func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts the first *Error in err's chain.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf returns the code of err, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}
