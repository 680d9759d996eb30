/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper

import (
	"context"
	"fmt"

	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/registry"
)

// Repository fetches, saves and deletes records of type T through a back end.
// It keeps no entity state between calls; it is safe for concurrent use whenever
// the back end is. Back-end errors are returned unmodified and never retried.
type Repository[T any] struct {
	backend datastore.Backend
	mapper  *Mapper[T]
}

// NewRepository returns a repository for T using the schema registered for T.
func NewRepository[T any](backend datastore.Backend) (*Repository[T], error) {
	if backend == nil {
		return nil, errors.NewValidationError("backend", "must not be nil")
	}
	mapper, err := MapperFor[T]()
	if err != nil {
		return nil, err
	}
	return &Repository[T]{backend: backend, mapper: mapper}, nil
}

// NewRepositoryWithSchema returns a repository for T driven by an explicit schema,
// bypassing the registry.
func NewRepositoryWithSchema[T any](backend datastore.Backend, schema *registry.Schema[T]) *Repository[T] {
	return &Repository[T]{backend: backend, mapper: NewMapper(schema)}
}

// Mapper returns the mapper used by the repository.
func (r *Repository[T]) Mapper() *Mapper[T] {
	return r.mapper
}

// Kind returns the storage kind of T.
func (r *Repository[T]) Kind() string {
	return r.mapper.Kind()
}

// FetchByKey returns the record stored under k. An absent entity yields (nil, nil).
func (r *Repository[T]) FetchByKey(ctx context.Context, k *key.Key) (*T, error) {
	if err := r.mapper.schema.Err(); err != nil {
		return nil, err
	}
	if k == nil {
		return nil, errors.NewValidationError("key", "must not be nil")
	}

	e, err := r.backend.Get(ctx, k)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.mapper.FromEntity(e)
}

// FetchByKeyString parses a serialized key and fetches the record stored under it.
func (r *Repository[T]) FetchByKeyString(ctx context.Context, s string) (*T, error) {
	k, err := r.backend.ParseKey(s)
	if err != nil {
		return nil, err
	}
	return r.FetchByKey(ctx, k)
}

// Save stores record. A record with an identifier overwrites the entity under that
// key; otherwise a new key is assigned under the record's parent reference, if any.
// On success the assigned key is written into the identifier field of record, so
// record is modified in place.
func (r *Repository[T]) Save(ctx context.Context, record *T) error {
	m, err := r.mapper.ToEntity(record)
	if err != nil {
		return err
	}

	k, err := r.backend.Put(ctx, m.Entity())
	if err != nil {
		return err
	}
	if k == nil {
		return fmt.Errorf("back end assigned no key to %s entity", m.Kind)
	}
	return r.mapper.writeKey(record, k)
}

// Delete removes the entity stored under k. Deleting an absent key succeeds.
func (r *Repository[T]) Delete(ctx context.Context, k *key.Key) error {
	if k == nil {
		return errors.NewValidationError("key", "must not be nil")
	}
	return r.backend.Delete(ctx, k)
}

// DeleteString parses a serialized key and deletes the entity stored under it.
func (r *Repository[T]) DeleteString(ctx context.Context, s string) error {
	k, err := r.backend.ParseKey(s)
	if err != nil {
		return err
	}
	return r.Delete(ctx, k)
}

// KeyString serializes k in the back end's format, the inverse of the string
// accepted by FetchByKeyString and DeleteString.
func (r *Repository[T]) KeyString(k *key.Key) string {
	return r.backend.SerializeKey(k)
}
