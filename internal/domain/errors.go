// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and are mapped to transport codes
// by the adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates user input failed a business rule.
	ErrValidation = errors.New("validation failed")

	// ErrLocked indicates the admin session is locked and the operation
	// requires an unlocked session.
	ErrLocked = errors.New("admin session locked")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")
)

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
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

// LockedError provides context for locked-session errors.
type LockedError struct {
	Operation string
}

// Error implements the error interface.
func (e *LockedError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("operation %q requires an unlocked admin session", e.Operation)
	}

	return "admin session is locked"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *LockedError) Unwrap() error {
	return ErrLocked
}

// NewLockedError creates a locked error naming the rejected operation.
func NewLockedError(operation string) error {
	return &LockedError{Operation: operation}
}

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	Index  int
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s at index %d not found", e.Entity, e.Index)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error for a positional entity.
func NewNotFoundError(entity string, index int) error {
	return &NotFoundError{Entity: entity, Index: index}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsLocked checks if an error is a locked-session error.
func IsLocked(err error) bool {
	return errors.Is(err, ErrLocked)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
