/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
)

// The schema registry maps Go record types to their field-role tables.

var (
	schemaRegistry = make(map[reflect.Type]any)
	mu             sync.RWMutex
)

// RegisterSchema associates the record type T with its schema and claims the
// schema's kind for T. Registering the same type again replaces its schema; claiming
// a kind already owned by another type panics.
func RegisterSchema[T any](s *Schema[T]) {
	var zero T
	t := reflect.TypeOf(zero)

	registerKind(s.Kind(), t)

	mu.Lock()
	defer mu.Unlock()
	schemaRegistry[t] = s
}

// GetSchema retrieves the schema for type T, if any.
func GetSchema[T any]() (*Schema[T], bool) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.RLock()
	defer mu.RUnlock()
	s, ok := schemaRegistry[t]
	if !ok {
		return nil, false
	}
	return s.(*Schema[T]), true
}
