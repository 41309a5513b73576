package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a DomainError. The HTTP status is derived from it.
type Kind string

const (
	KindValidation            Kind = "VALIDATION_FAILED"
	KindInvalidRole           Kind = "INVALID_ROLE"
	KindRoleNotRegistrable    Kind = "ROLE_NOT_REGISTRABLE"
	KindLoginNotRequired      Kind = "LOGIN_NOT_REQUIRED"
	KindInvalidCredentials    Kind = "INVALID_CREDENTIALS"
	KindUnauthorized          Kind = "UNAUTHORIZED"
	KindInvalidToken          Kind = "INVALID_TOKEN"
	KindTokenExpired          Kind = "TOKEN_EXPIRED"
	KindTokenMalformed        Kind = "TOKEN_MALFORMED"
	KindTokenInvalidSignature Kind = "TOKEN_INVALID_SIGNATURE"
	KindForbidden             Kind = "FORBIDDEN"
	KindNotFound              Kind = "NOT_FOUND"
	KindConflict              Kind = "CONFLICT"
	KindRateLimited           Kind = "RATE_LIMITED"
	KindStoreUnavailable      Kind = "STORE_UNAVAILABLE"
	KindInternal              Kind = "INTERNAL_ERROR"
)

var statusByKind = map[Kind]int{
	KindValidation:            http.StatusBadRequest,
	KindInvalidRole:           http.StatusBadRequest,
	KindRoleNotRegistrable:    http.StatusBadRequest,
	KindLoginNotRequired:      http.StatusForbidden,
	KindInvalidCredentials:    http.StatusUnauthorized,
	KindUnauthorized:          http.StatusUnauthorized,
	KindInvalidToken:          http.StatusUnauthorized,
	KindTokenExpired:          http.StatusUnauthorized,
	KindTokenMalformed:        http.StatusUnauthorized,
	KindTokenInvalidSignature: http.StatusUnauthorized,
	KindForbidden:             http.StatusForbidden,
	KindNotFound:              http.StatusNotFound,
	KindConflict:              http.StatusConflict,
	KindRateLimited:           http.StatusTooManyRequests,
	KindStoreUnavailable:      http.StatusInternalServerError,
	KindInternal:              http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for a kind. Unknown kinds map to 500.
func StatusFor(kind Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// InvalidCredentialsMessage is shared by every failed login path so responses cannot be told apart.
const InvalidCredentialsMessage = "Invalid credentials"

// DomainError standardizes application errors.
type DomainError struct {
	Kind    Kind
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status the error is served with.
func (e *DomainError) HTTPStatus() int {
	return StatusFor(e.Kind)
}

// NewDomainError constructs a DomainError.
func NewDomainError(kind Kind, message string, details map[string]any) *DomainError {
	return &DomainError{Kind: kind, Message: message, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(KindValidation, message, details)
}

func NewInvalidRole(role string) error {
	return NewDomainError(KindInvalidRole, "invalid role", map[string]any{"role": role})
}

func NewRoleNotRegistrable(message string) error {
	return NewDomainError(KindRoleNotRegistrable, message, nil)
}

func NewLoginNotRequired(message string) error {
	return NewDomainError(KindLoginNotRequired, message, nil)
}

func NewInvalidCredentials() error {
	return NewDomainError(KindInvalidCredentials, InvalidCredentialsMessage, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	return NewDomainError(KindNotFound, fmt.Sprintf("%s not found", resource), details)
}

func NewUnauthorized(message string) error {
	return NewDomainError(KindUnauthorized, message, nil)
}

// NewTokenError reports a bearer token that failed verification.
func NewTokenError(kind Kind, message string) error {
	return NewDomainError(kind, message, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(KindForbidden, message, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(KindConflict, message, details)
}

func NewRateLimited(message string) error {
	return NewDomainError(KindRateLimited, message, nil)
}

// NewStoreUnavailable wraps an infrastructure failure. The cause is logged, never returned to clients.
func NewStoreUnavailable(err error) error {
	return &DomainError{
		Kind:    KindStoreUnavailable,
		Message: "internal server error",
		Err:     err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// KindOf returns the kind of err, or an empty kind when err is not a DomainError.
func KindOf(err error) Kind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}
