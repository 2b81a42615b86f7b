package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for transport mapping and logging
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// Code is a registered error code handle
type Code struct {
	registry   *Registry
	code       string
	errType    Type
	httpStatus int
	message    string
}

// Error is a typed application error with transport metadata
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/As
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail attaches a key/value pair to the error
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause attaches an underlying error
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// IsType reports whether the error carries the given type
func (e *Error) IsType(t Type) bool {
	return e.Type == t
}

// ToHTTPResponse renders the error as a JSON-serializable body
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"code":    e.Code,
		"type":    e.Type,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Registry namespaces error codes for one package or domain
type Registry struct {
	prefix string
}

// NewRegistry creates a registry whose codes are prefixed with the given namespace
func NewRegistry(prefix string) *Registry {
	return &Registry{prefix: prefix}
}

// Register declares an error code under the registry's namespace
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) Code {
	return Code{
		registry:   r,
		code:       r.prefix + "_" + code,
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
}

// New instantiates a fresh error for a registered code
func (r *Registry) New(c Code) *Error {
	return &Error{
		Code:       c.code,
		Type:       c.errType,
		Message:    c.message,
		HTTPStatus: c.httpStatus,
	}
}

// Wrap converts an arbitrary error into a typed Error, preserving the cause
func Wrap(err error, message string, errType Type) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{
		Code:       string(errType) + "_ERROR",
		Type:       errType,
		Message:    message,
		HTTPStatus: statusForType(errType),
		cause:      err,
	}
}

// IsType reports whether err is an *Error of the given type
func IsType(err error, t Type) bool {
	e, ok := err.(*Error)
	return ok && e.Type == t
}

func statusForType(t Type) int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
