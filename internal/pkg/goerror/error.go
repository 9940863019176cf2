package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that the requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrProviderRejected indicates the verification provider refused the
	// request for a non-retryable reason (e.g. malformed destination).
	ErrProviderRejected = errors.New("verification provider rejected the request")

	// ErrProviderUnavailable indicates a transient provider failure
	// (network error, timeout, 5xx) that the caller may retry.
	ErrProviderUnavailable = errors.New("verification provider unavailable")

	// ErrSecretMalformed indicates the status service returned a secret code
	// too short to extract a fragment from.
	ErrSecretMalformed = errors.New("secret code malformed")

	// ErrTransport indicates a network failure or non-2xx response from the
	// status service.
	ErrTransport = errors.New("status service transport failure")
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	// TypeServer represents server-side or upstream failures.
	TypeServer Type = iota
	// TypeBusiness represents ordinary domain outcomes surfaced as errors.
	TypeBusiness
	// TypeValidation represents input validation failures.
	TypeValidation
)

// String returns the string representation of the error type.
func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable machine-readable identifier propagated verbatim to API
// callers. Every component maps its local failure into exactly one code.
type Code int

const (
	// CodeInternal represents an internal or unspecified error.
	CodeInternal Code = iota
	// CodeInvalidPhone indicates the phone number could not be canonicalized.
	CodeInvalidPhone
	// CodeInvalidCodeFormat indicates the submitted OTP code is not 6 ASCII digits.
	CodeInvalidCodeFormat
	// CodeProviderRejected indicates a non-retryable provider refusal.
	CodeProviderRejected
	// CodeProviderUnavailable indicates a transient provider failure.
	CodeProviderUnavailable
	// CodeDeniedOrExpired indicates the provider reported a non-approved check.
	CodeDeniedOrExpired
	// CodeCorrelationNotFound indicates no status record exists for the phone.
	CodeCorrelationNotFound
	// CodeCorrelationMalformed indicates the status record secret is too short.
	CodeCorrelationMalformed
	// CodeCorrelationTransport indicates the status service could not be reached.
	CodeCorrelationTransport
)

// String returns the wire representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeInvalidPhone:
		return "invalid_phone"
	case CodeInvalidCodeFormat:
		return "invalid_code_format"
	case CodeProviderRejected:
		return "provider_rejected"
	case CodeProviderUnavailable:
		return "provider_unavailable"
	case CodeDeniedOrExpired:
		return "code_denied_or_expired"
	case CodeCorrelationNotFound:
		return "correlation_not_found"
	case CodeCorrelationMalformed:
		return "correlation_malformed"
	case CodeCorrelationTransport:
		return "correlation_transport_error"
	case CodeInternal:
		return "internal_error"
	default:
		return "internal_error"
	}
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a user-facing message,
// a high-level type, and a stable error code.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	return e.code.String()
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.msg,
		e.err,
	)
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
//
// CodeDeniedOrExpired maps to 200: a wrong or expired code is an ordinary
// verification outcome, distinguishable from a system failure by the caller.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidPhone, CodeInvalidCodeFormat:
		return http.StatusBadRequest
	case CodeDeniedOrExpired:
		return http.StatusOK
	case CodeCorrelationNotFound:
		return http.StatusNotFound
	case CodeCorrelationMalformed, CodeCorrelationTransport:
		return http.StatusBadGateway
	case CodeProviderRejected, CodeProviderUnavailable, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error with the provided error.
func NewServer(err error) error {
	return new(err, "Internal server error", TypeServer, CodeInternal)
}

// NewUpstream creates a server-type error for a classified collaborator failure.
func NewUpstream(err error, code Code) error {
	return new(err, "Upstream dependency failure", TypeServer, code)
}

// NewBusiness creates a business-type error with the specified message and code.
func NewBusiness(msg string, code Code) error {
	return new(nil, msg, TypeBusiness, code)
}

// NewInvalid creates a validation-type error with the specified message and code.
func NewInvalid(msg string, code Code) error {
	return new(nil, msg, TypeValidation, code)
}
