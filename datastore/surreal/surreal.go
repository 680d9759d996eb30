/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package surreal

import (
	"context"
	"fmt"

	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/storagemodels"
)

// DefaultTable is the table entities are stored in when none is configured.
const DefaultTable = "entity"

const (
	upsertQuery = "UPSERT type::thing($tb, $id) CONTENT $content"
	selectQuery = "SELECT * FROM type::thing($tb, $id)"
	deleteQuery = "DELETE type::thing($tb, $id)"
)

// Record fields
const (
	fieldPath       = "path"
	fieldKind       = "kind"
	fieldParent     = "parent"
	fieldProperties = "properties"
)

// DataStore implements datastore.Backend on a SurrealDB table. The record ID is the
// canonical key path, so one table holds every kind.
type DataStore struct {
	q     Querier
	table string
}

var _ datastore.Backend = (*DataStore)(nil)

// New returns a data store over q. An empty table selects DefaultTable.
func New(q Querier, table string) (*DataStore, error) {
	if q == nil {
		return nil, errors.NewValidationError("querier", "must not be nil")
	}
	if table == "" {
		table = DefaultTable
	}
	return &DataStore{q: q, table: table}, nil
}

// Table returns the table the data store uses.
func (s *DataStore) Table() string {
	return s.table
}

// Get selects the record stored under k.
func (s *DataStore) Get(ctx context.Context, k *key.Key) (*storagemodels.Entity, error) {
	if k == nil {
		return nil, errors.NewValidationError("key", "must not be nil")
	}

	results, err := s.q.Query(ctx, selectQuery, s.vars(k))
	if err != nil {
		return nil, errors.NewStorageUnavailableError("select", err)
	}

	record, ok := firstRecord(results)
	if !ok {
		return nil, errors.NewNotFoundError(k.Kind(), k.String())
	}

	props, err := recordProperties(record)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", k, err)
	}
	return &storagemodels.Entity{
		Key:        k,
		Kind:       k.Kind(),
		Parent:     k.Parent(),
		Properties: props,
	}, nil
}

// Put upserts e, replacing the whole record under its key. Entities without a key
// get a new one of e.Kind under e.Parent.
func (s *DataStore) Put(ctx context.Context, e *storagemodels.Entity) (*key.Key, error) {
	if e == nil {
		return nil, errors.NewValidationError("entity", "must not be nil")
	}

	k := e.Key
	if k == nil {
		if !key.ValidKind(e.Kind) {
			return nil, errors.NewValidationError("kind", "invalid kind "+e.Kind)
		}
		k = datastore.AllocateKey(e.Kind, e.Parent)
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}

	props, err := datastore.NormalizeProperties(e.Properties)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize properties: %w", err)
	}
	if props == nil {
		props = storagemodels.PropertyMap{}
	}

	content := map[string]any{
		fieldPath:       k.String(),
		fieldKind:       k.Kind(),
		fieldProperties: map[string]any(props),
	}
	if p := k.Parent(); p != nil {
		content[fieldParent] = p.String()
	}

	vars := s.vars(k)
	vars["content"] = content
	if _, err := s.q.Query(ctx, upsertQuery, vars); err != nil {
		return nil, errors.NewStorageUnavailableError("upsert", err)
	}
	return k, nil
}

// Delete removes the record under k. Deleting an absent record is not an error.
func (s *DataStore) Delete(ctx context.Context, k *key.Key) error {
	if k == nil {
		return errors.NewValidationError("key", "must not be nil")
	}
	if _, err := s.q.Query(ctx, deleteQuery, s.vars(k)); err != nil {
		return errors.NewStorageUnavailableError("delete", err)
	}
	return nil
}

// ParseKey decodes a serialized key
func (s *DataStore) ParseKey(str string) (*key.Key, error) {
	return key.Decode(str)
}

// SerializeKey encodes a key
func (s *DataStore) SerializeKey(k *key.Key) string {
	return k.Encode()
}

func (s *DataStore) vars(k *key.Key) map[string]any {
	return map[string]any{
		"tb": s.table,
		"id": k.String(),
	}
}

// firstRecord unwraps the first record of the first statement result.
func firstRecord(results []any) (any, bool) {
	if len(results) == 0 {
		return nil, false
	}
	switch r := results[0].(type) {
	case nil:
		return nil, false
	case []any:
		if len(r) == 0 {
			return nil, false
		}
		return r[0], true
	default:
		return r, true
	}
}

func recordProperties(record any) (storagemodels.PropertyMap, error) {
	fields, err := stringMap(record)
	if err != nil {
		return nil, err
	}
	raw, ok := fields[fieldProperties]
	if !ok || raw == nil {
		return storagemodels.PropertyMap{}, nil
	}
	props, err := stringMap(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldProperties, err)
	}
	out := make(storagemodels.PropertyMap, len(props))
	for name, v := range props {
		if out[name], err = plainValue(v); err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
	}
	return out, nil
}

// plainValue rewrites nested CBOR maps as map[string]any, descending into lists.
func plainValue(v any) (any, error) {
	switch t := v.(type) {
	case map[any]any, map[string]any:
		m, err := stringMap(t)
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, len(m))
		for k, e := range m {
			if out[k], err = plainValue(e); err != nil {
				return nil, err
			}
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			n, err := plainValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	return v, nil
}

// stringMap accepts both decoded map shapes: map[string]any and the map[any]any
// produced by CBOR.
func stringMap(v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string field name %v", k)
			}
			out[s] = val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected record shape %T", v)
	}
}
