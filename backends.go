/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/entitymapper/datastore"
)

// Backends manages a collection of named storage back ends (for example "primary"
// or "archive").
type Backends interface {
	// Register registers a back end under a given name.
	Register(name string, b datastore.Backend) error
	// Get retrieves the back end registered under name.
	Get(name string) (datastore.Backend, error)
	// Names lists the registered names in sorted order.
	Names() []string
}

// backendManager is a thread-safe implementation of the Backends interface.
type backendManager struct {
	mu       sync.RWMutex
	backends map[string]datastore.Backend
}

// NewBackends creates and returns a new Backends implementation.
func NewBackends() Backends {
	return &backendManager{
		backends: make(map[string]datastore.Backend),
	}
}

// Register stores the provided back end under the given name.
func (bm *backendManager) Register(name string, b datastore.Backend) error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if _, exists := bm.backends[name]; exists {
		return fmt.Errorf("backend %q already registered", name)
	}
	bm.backends[name] = b
	return nil
}

// Get retrieves the back end associated with the given name.
func (bm *backendManager) Get(name string) (datastore.Backend, error) {
	bm.mu.RLock()
	defer bm.mu.RUnlock()

	b, exists := bm.backends[name]
	if !exists {
		return nil, fmt.Errorf("backend %q not found", name)
	}
	return b, nil
}

// Names lists the registered back end names.
func (bm *backendManager) Names() []string {
	bm.mu.RLock()
	defer bm.mu.RUnlock()

	names := make([]string, 0, len(bm.backends))
	for n := range bm.backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
