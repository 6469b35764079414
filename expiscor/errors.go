package expiscor

import (
	"errors"
	"fmt"
)

// Error is the single error kind surfaced by data sources. Code carries the
// numeric response code from a parsed server error envelope when one is
// available, zero otherwise.
type Error struct {
	Message string
	Code    int
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := e.Message
	if e.Code != 0 {
		base = fmt.Sprintf("%s (code=%d)", base, e.Code)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewError(msg string) *Error {
	return &Error{Message: msg}
}

func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

func WrapError(msg string, cause error) *Error {
	return &Error{Message: msg, Cause: cause}
}

// ServerError builds an error from a parsed server exception envelope.
func ServerError(msg string, code int) *Error {
	return &Error{Message: msg, Code: code}
}

// ErrUnsupportedOperation marks operations a data source chooses not to
// implement. Use IsUnsupported to test for it through wrapping.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// Unsupported reports that a data source does not implement an operation.
func Unsupported(operation string) *Error {
	return &Error{
		Message: fmt.Sprintf("%s is not supported by this data source", operation),
		Cause:   ErrUnsupportedOperation,
	}
}

// IsUnsupported reports whether err came from Unsupported.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}

// AsError extracts the data source error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
