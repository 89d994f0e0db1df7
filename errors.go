package enumprops

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// Construction-time codes.
	CodeReserved           ErrorCode = "reserved"
	CodeArity              ErrorCode = "arity"
	CodeUnhashable         ErrorCode = "unhashable"
	CodeInvalidBuiltin     ErrorCode = "invalid_builtin"
	CodeInvalidDeclaration ErrorCode = "invalid_declaration"

	// Resolution-time codes.
	CodeNotFound   ErrorCode = "not_found"
	CodeNoProperty ErrorCode = "no_property"
	CodeNoMethod   ErrorCode = "no_method"
)

var (
	// ErrValueNotFound is returned by Resolve when no member matches.
	ErrValueNotFound = &Error{Code: CodeNotFound, Message: "value not found"}

	// ErrNoProperty is returned when reading a property a member does not have.
	ErrNoProperty = &Error{Code: CodeNoProperty, Message: "no such property"}

	// ErrNoMethod is returned by Member.Call when no implementation is bound.
	ErrNoMethod = &Error{Code: CodeNoMethod, Message: "no such method"}
)

// Error is the error type returned by this package.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code, so that
// errors.Is(err, ErrValueNotFound) holds for every not-found error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// CodeOf returns the code of the first *Error found in err's chain,
// or the empty code if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func notFound(e *Enum, value any) *Error {
	return Errorf(CodeNotFound, "%#v is not a valid %s", value, e.name).
		WithDetail("enum", e.name)
}
