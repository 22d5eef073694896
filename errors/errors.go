/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a document is not found
	ErrNotFound = errors.New("document not found")

	// ErrAlreadyExists is returned when attempting to insert a document that already exists
	ErrAlreadyExists = errors.New("document already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidIdentity is returned when an identity value cannot be parsed
	// as the store's native identifier
	ErrInvalidIdentity = errors.New("invalid identity")

	// ErrConnection is returned when the repository connection cannot be resolved
	ErrConnection = errors.New("connection failed")

	// ErrPersistence is returned when a write could not be persisted
	ErrPersistence = errors.New("persistence failed")

	// ErrEnumerationAborted is returned when enumeration stops early because a
	// result has no resolvable identity
	ErrEnumerationAborted = errors.New("enumeration aborted")
)

// NotFoundError represents an error when a document is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when a document already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InvalidIdentityError is returned when a document identity does not parse
// as the native identifier of the store.
type InvalidIdentityError struct {
	Field string
	Value string
	cause error
}

func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf("invalid identity %q for field %q", e.Value, e.Field)
}

func (e *InvalidIdentityError) Is(target error) bool {
	return target == ErrInvalidIdentity
}

func (e *InvalidIdentityError) Unwrap() error { return e.cause }

// ConnectionError represents a failure to resolve a database handle.
// Target never contains credentials.
type ConnectionError struct {
	Target string
	cause  error
}

func (e *ConnectionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("cannot connect to %s: %v", e.Target, e.cause)
	}
	return fmt.Sprintf("cannot connect to %s", e.Target)
}

func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

func (e *ConnectionError) Unwrap() error { return e.cause }

// PersistenceError represents a failed write of a named document
type PersistenceError struct {
	Document string
	cause    error
}

func (e *PersistenceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("cannot persist document %q: %v", e.Document, e.cause)
	}
	return fmt.Sprintf("cannot persist document %q", e.Document)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error { return e.cause }

// EnumerationAbortedError reports the result position at which enumeration
// stopped and the identity field that could not be resolved.
type EnumerationAbortedError struct {
	IDField string
	Index   int64
}

func (e *EnumerationAbortedError) Error() string {
	return fmt.Sprintf("enumeration aborted at result %d: identity field %q not found", e.Index, e.IDField)
}

func (e *EnumerationAbortedError) Is(target error) bool {
	return target == ErrEnumerationAborted
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewInvalidIdentityError creates a new InvalidIdentityError
func NewInvalidIdentityError(field, value string, cause error) error {
	return &InvalidIdentityError{Field: field, Value: value, cause: cause}
}

// NewConnectionError creates a new ConnectionError
func NewConnectionError(target string, cause error) error {
	return &ConnectionError{Target: target, cause: cause}
}

// NewPersistenceError creates a new PersistenceError
func NewPersistenceError(document string, cause error) error {
	return &PersistenceError{Document: document, cause: cause}
}

// NewEnumerationAbortedError creates a new EnumerationAbortedError
func NewEnumerationAbortedError(idField string, index int64) error {
	return &EnumerationAbortedError{IDField: idField, Index: index}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvalidIdentity checks if an error is an invalid identity error
func IsInvalidIdentity(err error) bool {
	return errors.Is(err, ErrInvalidIdentity)
}

// IsConnectionError checks if an error is a connection error
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsPersistenceError checks if an error is a persistence error
func IsPersistenceError(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// IsEnumerationAborted checks if an error reports an aborted enumeration
func IsEnumerationAborted(err error) bool {
	return errors.Is(err, ErrEnumerationAborted)
}
