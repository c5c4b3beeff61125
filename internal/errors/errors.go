// Package errors defines the domain error taxonomy shared by all services.
// Domain errors are recovered at the transport boundary and rendered as typed
// JSON responses; anything else is treated as an internal failure.
package errors

import "fmt"

// DomainError is a typed, user-presentable failure.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// WithMessage returns a copy of the error carrying a more specific message.
// The code is preserved so callers can still match with errors.Is.
func (e *DomainError) WithMessage(format string, args ...interface{}) *DomainError {
	return &DomainError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// Is matches any DomainError with the same code, so wrapped copies produced by
// WithMessage still satisfy errors.Is(err, ErrInsufficientFunds) etc.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}
