/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// kindRegistry holds the mapping from a storage kind (like "Customer") to the Go type
// that owns it.
var (
	kindRegistry = make(map[string]reflect.Type)
	kindMu       sync.RWMutex
)

// registerKind claims kind for t. If another type already owns the kind, it panics to
// prevent two record types from reading each other's entities.
func registerKind(kind string, t reflect.Type) {
	kindMu.Lock()
	defer kindMu.Unlock()

	if owner, exists := kindRegistry[kind]; exists && owner != t {
		panic(fmt.Sprintf("kind registry: kind %q already registered by %v", kind, owner))
	}
	kindRegistry[kind] = t
}

// KindType returns the Go type registered for the given kind.
// If no type is registered, it returns an error.
func KindType(kind string) (reflect.Type, error) {
	kindMu.RLock()
	defer kindMu.RUnlock()

	t, ok := kindRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("kind registry: no type registered for kind %q", kind)
	}
	return t, nil
}

// Kinds lists the registered kinds in sorted order.
func Kinds() []string {
	kindMu.RLock()
	defer kindMu.RUnlock()

	kinds := make([]string, 0, len(kindRegistry))
	for k := range kindRegistry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
