/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper

import (
	"fmt"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/registry"
	"github.com/suparena/entitymapper/storagemodels"
)

// Mapping is the storage view of one record.
type Mapping struct {
	// ExistingKey is the record's identifier, nil when the record was never saved.
	ExistingKey *key.Key
	// ParentKey is the record's parent reference, nil when it has none.
	ParentKey *key.Key
	// Kind is the storage kind of the record type.
	Kind string
	// Properties holds the persisted fields.
	Properties storagemodels.PropertyMap
}

// Entity builds the entity to hand to a back end.
func (m Mapping) Entity() *storagemodels.Entity {
	return &storagemodels.Entity{
		Key:        m.ExistingKey,
		Kind:       m.Kind,
		Parent:     m.ParentKey,
		Properties: m.Properties,
	}
}

// Mapper converts records of type T to entities and back. It performs no I/O and
// keeps no state besides the schema, so it is safe for concurrent use.
type Mapper[T any] struct {
	schema *registry.Schema[T]
}

// NewMapper returns a mapper driven by schema.
func NewMapper[T any](schema *registry.Schema[T]) *Mapper[T] {
	return &Mapper[T]{schema: schema}
}

// MapperFor returns a mapper for T using the schema registered for it.
func MapperFor[T any]() (*Mapper[T], error) {
	schema, ok := registry.GetSchema[T]()
	if !ok {
		var zero T
		return nil, errors.NewConfigurationError(fmt.Sprintf("%T", zero), "no schema registered")
	}
	return NewMapper(schema), nil
}

// Kind returns the storage kind of T.
func (m *Mapper[T]) Kind() string {
	return m.schema.Kind()
}

// Schema returns the schema driving the mapper.
func (m *Mapper[T]) Schema() *registry.Schema[T] {
	return m.schema
}

// ToEntity collects the persisted fields of record and reads its identifier and
// parent reference. It does not modify record.
func (m *Mapper[T]) ToEntity(record *T) (Mapping, error) {
	if err := m.schema.Err(); err != nil {
		return Mapping{}, err
	}
	if record == nil {
		return Mapping{}, errors.NewValidationError("record", "must not be nil")
	}

	existing, err := m.readKey(record, m.schema.Identifier)
	if err != nil {
		return Mapping{}, err
	}
	parent, err := m.readKey(record, m.schema.ParentReference)
	if err != nil {
		return Mapping{}, err
	}

	fields := m.schema.Persisted()
	props := make(storagemodels.PropertyMap, len(fields))
	for _, f := range fields {
		v, err := f.Get(record)
		if err != nil {
			return Mapping{}, errors.NewFieldAccessError(m.schema.TypeName(), f.Name, err)
		}
		props[f.Name] = v
	}

	return Mapping{
		ExistingKey: existing,
		ParentKey:   parent,
		Kind:        m.schema.Kind(),
		Properties:  props,
	}, nil
}

// FromEntity constructs a fresh record from e. The identifier receives e.Key, the
// parent reference receives the parent of e.Key, and every other field receives its
// property when present. Missing properties keep the constructed default.
func (m *Mapper[T]) FromEntity(e *storagemodels.Entity) (*T, error) {
	if err := m.schema.Err(); err != nil {
		return nil, err
	}
	if e == nil || e.Key == nil {
		return nil, errors.NewValidationError("key", "entity has no key")
	}
	if e.Key.Kind() != m.schema.Kind() {
		return nil, errors.NewValidationError("key", fmt.Sprintf("kind %q does not match %q", e.Key.Kind(), m.schema.Kind()))
	}

	record, err := m.schema.New()
	if err != nil {
		return nil, err
	}

	if err := m.writeKey(record, e.Key); err != nil {
		return nil, err
	}
	if f, ok := m.schema.ParentReference(); ok && e.Key.Parent() != nil {
		if err := f.Set(record, e.Key.Parent()); err != nil {
			return nil, errors.NewFieldAccessError(m.schema.TypeName(), f.Name, err)
		}
	}

	for _, f := range m.schema.Persisted() {
		v, ok := e.Properties[f.Name]
		if !ok {
			continue
		}
		if err := f.Set(record, v); err != nil {
			return nil, errors.NewFieldAccessError(m.schema.TypeName(), f.Name, err)
		}
	}
	return record, nil
}

// FromEntities maps a batch of entities, stopping at the first failure.
func (m *Mapper[T]) FromEntities(entities []*storagemodels.Entity) ([]*T, error) {
	records := make([]*T, 0, len(entities))
	for i, e := range entities {
		record, err := m.FromEntity(e)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// writeKey stores k in the identifier field of record. Types without an identifier
// field silently skip it.
func (m *Mapper[T]) writeKey(record *T, k *key.Key) error {
	f, ok := m.schema.Identifier()
	if !ok {
		return nil
	}
	if err := f.Set(record, k); err != nil {
		return errors.NewFieldAccessError(m.schema.TypeName(), f.Name, err)
	}
	return nil
}

func (m *Mapper[T]) readKey(record *T, field func() (registry.Field[T], bool)) (*key.Key, error) {
	f, ok := field()
	if !ok {
		return nil, nil
	}
	v, err := f.Get(record)
	if err != nil {
		return nil, errors.NewFieldAccessError(m.schema.TypeName(), f.Name, err)
	}
	switch k := v.(type) {
	case nil:
		return nil, nil
	case *key.Key:
		return k, nil
	default:
		return nil, errors.NewFieldAccessError(m.schema.TypeName(), f.Name, fmt.Errorf("holds %T, not a key", v))
	}
}
