/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"encoding"
	"reflect"

	"github.com/google/uuid"
	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/storagemodels"
)

// Backend is the minimal contract a storage engine offers to the mapping core.
type Backend interface {
	// Get returns the entity stored under k, or an errors.NotFoundError.
	Get(ctx context.Context, k *key.Key) (*storagemodels.Entity, error)

	// Put stores e. When e.Key is nil a new key of e.Kind under e.Parent is assigned;
	// otherwise the entity at e.Key is replaced as a whole. It returns the key used.
	Put(ctx context.Context, e *storagemodels.Entity) (*key.Key, error)

	// Delete removes the entity under k. Deleting an absent key is not an error.
	Delete(ctx context.Context, k *key.Key) error

	// ParseKey decodes a string produced by SerializeKey.
	ParseKey(s string) (*key.Key, error)

	// SerializeKey encodes k for transport outside the back end.
	SerializeKey(k *key.Key) string
}

// AllocateKey returns a new key of kind under parent with a random ID, for back ends
// without native ID allocation.
func AllocateKey(kind string, parent *key.Key) *key.Key {
	return key.New(kind, uuid.NewString(), parent)
}

// NormalizeProperties replaces values implementing encoding.TextMarshaler, such as
// time.Time or strfmt.DateTime, with their text form so that every back end encodes
// them the same way. Nil pointers are left untouched.
func NormalizeProperties(p storagemodels.PropertyMap) (storagemodels.PropertyMap, error) {
	out := make(storagemodels.PropertyMap, len(p))
	for name, v := range p {
		tm, ok := v.(encoding.TextMarshaler)
		if !ok || isNilPointer(v) {
			out[name] = v
			continue
		}
		text, err := tm.MarshalText()
		if err != nil {
			return nil, err
		}
		out[name] = string(text)
	}
	return out, nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
