/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"errors"

	"github.com/suparena/entitymapper/key"
)

// ErrReadOnly is returned when writing a field declared without a setter.
var ErrReadOnly = errors.New("field is read-only")

// Field declares one field of record type T: its property name, its role and how to
// read and write it.
type Field[T any] struct {
	Name string
	Role Role

	get func(*T) (any, error)
	set func(*T, any) error
}

// Get reads the field from rec.
func (f Field[T]) Get(rec *T) (any, error) {
	if f.get == nil {
		return nil, errors.New("field has no getter")
	}
	return f.get(rec)
}

// Set writes v into the field of rec.
func (f Field[T]) Set(rec *T, v any) error {
	if f.set == nil {
		return ErrReadOnly
	}
	return f.set(rec, v)
}

// Writable reports whether the field has a setter.
func (f Field[T]) Writable() bool {
	return f.set != nil
}

// Identifier declares the field holding the entity key.
func Identifier[T any](name string, ptr func(*T) **key.Key) Field[T] {
	return keyField(name, RoleIdentifier, ptr)
}

// ParentReference declares the field holding the parent key.
func ParentReference[T any](name string, ptr func(*T) **key.Key) Field[T] {
	return keyField(name, RoleParentReference, ptr)
}

func keyField[T any](name string, role Role, ptr func(*T) **key.Key) Field[T] {
	f := Field[T]{Name: name, Role: role}
	if ptr == nil {
		return f
	}
	f.get = func(rec *T) (any, error) {
		return *ptr(rec), nil
	}
	f.set = func(rec *T, v any) error {
		switch k := v.(type) {
		case nil:
			*ptr(rec) = nil
		case *key.Key:
			*ptr(rec) = k
		default:
			return errors.New("value is not a key")
		}
		return nil
	}
	return f
}

// Property declares a persisted field addressed by ptr. Values read back from a
// back end are converted to V when they are not already of that type.
func Property[T, V any](name string, ptr func(*T) *V) Field[T] {
	f := Field[T]{Name: name, Role: RolePersisted}
	if ptr == nil {
		return f
	}
	f.get = func(rec *T) (any, error) {
		return *ptr(rec), nil
	}
	f.set = func(rec *T, v any) error {
		return assign(ptr(rec), v)
	}
	return f
}

// ReadOnly declares a persisted field that is computed from the record and cannot
// be restored. Mapping an entity that carries the property fails with a
// FieldAccessError.
func ReadOnly[T, V any](name string, get func(*T) V) Field[T] {
	return Field[T]{
		Name: name,
		Role: RolePersisted,
		get: func(rec *T) (any, error) {
			return get(rec), nil
		},
	}
}

// Excluded declares a field that is never stored. It only documents the field.
func Excluded[T any](name string) Field[T] {
	return Field[T]{Name: name, Role: RoleExcluded}
}

// Custom declares a field with hand-written accessors. A nil set makes the field
// read-only.
func Custom[T any](name string, role Role, get func(*T) (any, error), set func(*T, any) error) Field[T] {
	return Field[T]{Name: name, Role: role, get: get, set: set}
}
