/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper

import (
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/entitymapper/datastore"
)

// Repositories hands out one Repository per record type, all sharing a back end.
// Repositories are created on first use from the registered schemas.
type Repositories struct {
	mu      sync.RWMutex
	backend datastore.Backend
	repos   map[reflect.Type]any
	kinds   map[string]reflect.Type
}

// NewRepositories creates a new Repositories over backend
func NewRepositories(backend datastore.Backend) *Repositories {
	return &Repositories{
		backend: backend,
		repos:   make(map[reflect.Type]any),
		kinds:   make(map[string]reflect.Type),
	}
}

// Backend returns the shared back end
func (rs *Repositories) Backend() datastore.Backend {
	return rs.backend
}

// Kinds returns the kinds of all repositories created so far, sorted
func (rs *Repositories) Kinds() []string {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	kinds := make([]string, 0, len(rs.kinds))
	for k := range rs.kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// For returns the repository for type T, creating it if necessary
func For[T any](rs *Repositories) (*Repository[T], error) {
	var zero T
	typ := reflect.TypeOf(zero)

	rs.mu.RLock()
	repo, exists := rs.repos[typ]
	rs.mu.RUnlock()
	if exists {
		return repo.(*Repository[T]), nil
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if repo, exists := rs.repos[typ]; exists {
		return repo.(*Repository[T]), nil
	}

	// Create new repository
	newRepo, err := NewRepository[T](rs.backend)
	if err != nil {
		return nil, err
	}
	rs.repos[typ] = newRepo
	rs.kinds[newRepo.Kind()] = typ
	return newRepo, nil
}
