package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to transport behavior consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"
	KindAuth           ErrKind = "auth"
	KindNotFound       ErrKind = "not_found"
	KindConflict       ErrKind = "conflict"
	KindInfrastructure ErrKind = "infrastructure"
	KindInternal       ErrKind = "internal"
)

// Error is a structured domain error.
// - Kind: high-level category for transport mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients
// - Meta: optional details (field, reason, etc.)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors
// ----------------------

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", "missing required field"), map[string]string{
		"field": field,
	})
}

func ErrInvalidField(field, reason string) *Error {
	return WithMeta(New(KindValidation, "invalid_field", "invalid field"), map[string]string{
		"field":  field,
		"reason": reason,
	})
}

// ----------------------
// Auth errors
// ----------------------

// IMPORTANT: use this for login failures to avoid user enumeration.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "invalid username or password")
}

// ErrSessionInvalid covers missing, expired, and unknown session tokens alike.
// The web layer turns it into a redirect to the login view, never a 401 body.
func ErrSessionInvalid() *Error {
	return New(KindAuth, "session_invalid", "no active session")
}

// ----------------------
// Not found
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "user not found")
}

// ----------------------
// Conflict
// ----------------------

func ErrUsernameTaken() *Error {
	return New(KindConflict, "username_taken", "username already registered")
}

// ----------------------
// Infrastructure / internal
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrSessionStoreUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "session_store_unavailable", "session store unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrRandomFailed(cause error) *Error {
	return Wrap(KindInternal, "random_failed", "random generation failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
