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
	// ErrNotFound is returned by a back end when no entity is stored under a key
	ErrNotFound = errors.New("entity not found")

	// ErrConstruction is returned when a record type cannot be default-constructed
	ErrConstruction = errors.New("record construction failed")

	// ErrFieldAccess is returned when a declared field cannot be read or written
	ErrFieldAccess = errors.New("field access failed")

	// ErrKeyFormat is returned when a serialized key is malformed
	ErrKeyFormat = errors.New("malformed key")

	// ErrStorageUnavailable is returned when the back end could not complete an operation
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrConfiguration is returned when a record schema is ambiguous or invalid
	ErrConfiguration = errors.New("invalid schema configuration")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConstructionError reports a record type without a usable construction path
type ConstructionError struct {
	Type string
	Err  error
}

func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot construct %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("cannot construct %s", e.Type)
}

func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// FieldAccessError reports a field that could not be read from or written to a record
type FieldAccessError struct {
	Type  string
	Field string
	Err   error
}

func (e *FieldAccessError) Error() string {
	return fmt.Sprintf("field %s.%s: %v", e.Type, e.Field, e.Err)
}

func (e *FieldAccessError) Is(target error) bool {
	return target == ErrFieldAccess
}

func (e *FieldAccessError) Unwrap() error {
	return e.Err
}

// KeyFormatError represents a serialized key that could not be parsed
type KeyFormatError struct {
	Input  string
	Reason string
}

func (e *KeyFormatError) Error() string {
	return fmt.Sprintf("malformed key %q: %s", e.Input, e.Reason)
}

func (e *KeyFormatError) Is(target error) bool {
	return target == ErrKeyFormat
}

// StorageUnavailableError carries a back-end failure. Err is the original error,
// untouched, so callers can still errors.As into SDK-specific types.
type StorageUnavailableError struct {
	Op  string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable during %s: %v", e.Op, e.Err)
}

func (e *StorageUnavailableError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Err
}

// ConfigurationError represents an ambiguous or invalid record schema
type ConfigurationError struct {
	Type   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("schema for %s: %s", e.Type, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
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

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Kind: kind, Key: key}
}

// NewConstructionError creates a new ConstructionError
func NewConstructionError(typeName string, err error) error {
	return &ConstructionError{Type: typeName, Err: err}
}

// NewFieldAccessError creates a new FieldAccessError
func NewFieldAccessError(typeName, field string, err error) error {
	return &FieldAccessError{Type: typeName, Field: field, Err: err}
}

// NewKeyFormatError creates a new KeyFormatError
func NewKeyFormatError(input, reason string) error {
	return &KeyFormatError{Input: input, Reason: reason}
}

// NewStorageUnavailableError creates a new StorageUnavailableError
func NewStorageUnavailableError(op string, err error) error {
	return &StorageUnavailableError{Op: op, Err: err}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(typeName, reason string) error {
	return &ConfigurationError{Type: typeName, Reason: reason}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConstruction checks if an error is a construction error
func IsConstruction(err error) bool {
	return errors.Is(err, ErrConstruction)
}

// IsFieldAccess checks if an error is a field access error
func IsFieldAccess(err error) bool {
	return errors.Is(err, ErrFieldAccess)
}

// IsKeyFormat checks if an error is a key format error
func IsKeyFormat(err error) bool {
	return errors.Is(err, ErrKeyFormat)
}

// IsStorageUnavailable checks if an error is a storage unavailable error
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
