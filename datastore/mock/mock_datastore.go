/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the datastore.Backend interface for testing
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/storagemodels"
)

// DataStore is an in-memory datastore.Backend
type DataStore struct {
	mu          sync.RWMutex
	data        map[string]storagemodels.Entity
	idFunc      func() string
	getError    error
	putError    error
	deleteError error
}

var _ datastore.Backend = (*DataStore)(nil)

// New creates a new mock DataStore
func New() *DataStore {
	return &DataStore{
		data: make(map[string]storagemodels.Entity),
	}
}

// WithIDFunc sets the function minting IDs for new keys. The default mints UUIDs.
func (m *DataStore) WithIDFunc(f func() string) *DataStore {
	m.idFunc = f
	return m
}

// WithGetError makes Get operations return an error
func (m *DataStore) WithGetError(err error) *DataStore {
	m.getError = err
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore) WithPutError(err error) *DataStore {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore) WithDeleteError(err error) *DataStore {
	m.deleteError = err
	return m
}

// Get retrieves an entity by key
func (m *DataStore) Get(ctx context.Context, k *key.Key) (*storagemodels.Entity, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	if k == nil {
		return nil, errors.NewValidationError("key", "must not be nil")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	e, exists := m.data[k.String()]
	if !exists {
		return nil, errors.NewNotFoundError(k.Kind(), k.String())
	}
	e.Properties = e.Properties.DeepClone()
	return &e, nil
}

// Put stores an entity, assigning a key when it has none
func (m *DataStore) Put(ctx context.Context, e *storagemodels.Entity) (*key.Key, error) {
	if m.putError != nil {
		return nil, m.putError
	}
	if e == nil {
		return nil, errors.NewValidationError("entity", "must not be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := e.Key
	if k == nil {
		if !key.ValidKind(e.Kind) {
			return nil, errors.NewValidationError("kind", "invalid kind "+e.Kind)
		}
		k = m.allocate(e.Kind, e.Parent)
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}

	m.data[k.String()] = storagemodels.Entity{
		Key:        k,
		Kind:       k.Kind(),
		Parent:     k.Parent(),
		Properties: e.Properties.DeepClone(),
	}
	return k, nil
}

// Delete removes an entity by key; absent keys are ignored
func (m *DataStore) Delete(ctx context.Context, k *key.Key) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if k == nil {
		return errors.NewValidationError("key", "must not be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, k.String())
	return nil
}

// ParseKey decodes a serialized key
func (m *DataStore) ParseKey(s string) (*key.Key, error) {
	return key.Decode(s)
}

// SerializeKey encodes a key
func (m *DataStore) SerializeKey(k *key.Key) string {
	return k.Encode()
}

func (m *DataStore) allocate(kind string, parent *key.Key) *key.Key {
	if m.idFunc == nil {
		return datastore.AllocateKey(kind, parent)
	}
	return key.New(kind, m.idFunc(), parent)
}

// Helper methods for testing

// Entities returns a copy of the stored entities keyed by canonical key path (for testing)
func (m *DataStore) Entities() map[string]storagemodels.Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]storagemodels.Entity, len(m.data))
	for k, v := range m.data {
		v.Properties = v.Properties.DeepClone()
		result[k] = v
	}
	return result
}

// Keys returns the canonical paths of all stored keys in sorted order
func (m *DataStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of stored entities
func (m *DataStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]storagemodels.Entity)
}
