package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an AppError so transports can map it to a status code.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindInvalidState ErrorKind = "invalid_state"
	KindForbidden    ErrorKind = "forbidden"
)

// AppError is a domain error carrying a kind and a client-safe message.
type AppError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidationError reports input that failed a domain rule.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewConflictError reports a concurrent modification.
func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewInvalidStateError reports a disallowed state transition.
func NewInvalidStateError(from, to string) *AppError {
	return &AppError{Kind: KindInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewForbiddenError reports an operation the caller may not perform.
func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

// KindOf returns the kind of the first AppError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsNotFound reports whether err is a not-found AppError.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
