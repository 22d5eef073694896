/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("User", "123")

	// Test error message
	expected := `User with key "123" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	// Test Is method
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	// Test helper function
	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("Product", "ABC")

	// Test error message
	expected := `Product with key "ABC" already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	// Test Is method
	if !errors.Is(err, ErrAlreadyExists) {
		t.Error("AlreadyExistsError should match ErrAlreadyExists")
	}

	// Test helper function
	if !IsAlreadyExists(err) {
		t.Error("IsAlreadyExists should return true for AlreadyExistsError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "email",
			message:  "invalid format",
			expected: `validation failed for field "email": invalid format`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "missing required fields",
			expected: "validation failed: missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !errors.Is(err, ErrInvalidInput) {
				t.Error("ValidationError should match ErrInvalidInput")
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestInvalidIdentityError(t *testing.T) {
	cause := fmt.Errorf("the provided hex string is not a valid ObjectID")
	err := NewInvalidIdentityError("_id", "nope", cause)

	expected := `invalid identity "nope" for field "_id"`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, ErrInvalidIdentity) {
		t.Error("InvalidIdentityError should match ErrInvalidIdentity")
	}
	if !errors.Is(err, cause) {
		t.Error("InvalidIdentityError should unwrap to its cause")
	}
	if !IsInvalidIdentity(err) {
		t.Error("IsInvalidIdentity should return true for InvalidIdentityError")
	}
}

func TestConnectionError(t *testing.T) {
	cause := fmt.Errorf("server selection timeout")
	err := NewConnectionError("mongodb://h:27017/db.coll", cause)

	expected := "cannot connect to mongodb://h:27017/db.coll: server selection timeout"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, ErrConnection) || !errors.Is(err, cause) {
		t.Error("ConnectionError should match ErrConnection and its cause")
	}
	if !IsConnectionError(err) {
		t.Error("IsConnectionError should return true for ConnectionError")
	}

	bare := NewConnectionError("db.coll", nil)
	if bare.Error() != "cannot connect to db.coll" {
		t.Errorf("Unexpected message %q", bare.Error())
	}
}

func TestPersistenceError(t *testing.T) {
	cause := NewAlreadyExistsError("document", "a.txt")
	err := NewPersistenceError("a.txt", cause)

	expected := `cannot persist document "a.txt": document with key "a.txt" already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !IsPersistenceError(err) {
		t.Error("IsPersistenceError should return true for PersistenceError")
	}
	if !IsAlreadyExists(err) {
		t.Error("PersistenceError should unwrap to its cause")
	}
}

func TestEnumerationAbortedError(t *testing.T) {
	err := NewEnumerationAbortedError("docId", 7)

	expected := `enumeration aborted at result 7: identity field "docId" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, ErrEnumerationAborted) {
		t.Error("EnumerationAbortedError should match ErrEnumerationAborted")
	}

	var aborted *EnumerationAbortedError
	if !errors.As(fmt.Errorf("listing: %w", err), &aborted) || aborted.Index != 7 {
		t.Errorf("Expected to extract index 7, got %+v", aborted)
	}
	if !IsEnumerationAborted(err) {
		t.Error("IsEnumerationAborted should return true for EnumerationAbortedError")
	}
}

func TestErrorWrapping(t *testing.T) {
	// Test that wrapped errors still match
	original := NewNotFoundError("User", "123")
	wrapped := fmt.Errorf("database operation failed: %w", original)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("Wrapped NotFoundError should still match ErrNotFound")
	}

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should work with wrapped errors")
	}
}

func TestSentinelErrors(t *testing.T) {
	// Ensure sentinel errors are distinct
	sentinels := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrInvalidIdentity,
		ErrConnection,
		ErrPersistence,
		ErrEnumerationAborted,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
