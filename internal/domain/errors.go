// Package domain contains the library's catalog, borrow ledger and statistics.
//
// Expected outcomes such as "book already borrowed" are reported as booleans by
// the operations that can produce them. The errors below are reserved for
// key-based updates against the ledger, where a caller addressed something that
// does not exist or is in the wrong state.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the addressed entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the entity is in a state that forbids the update.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates the update would break a ledger invariant.
	ErrValidation = errors.New("validation failed")
)

// NotFoundError names the entity kind and key that could not be resolved.
type NotFoundError struct {
	Entity string
	Key    string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// ConflictError describes why an entity cannot take the requested transition.
type ConflictError struct {
	Entity string
	Key    string
	Reason string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q conflict: %s", e.Entity, e.Key, e.Reason)
	}

	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error with context.
func NewConflictError(entity, key, reason string) error {
	return &ConflictError{Entity: entity, Key: key, Reason: reason}
}

// ValidationError reports the offending field and, optionally, its value.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
