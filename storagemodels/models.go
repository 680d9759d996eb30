/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"reflect"
	"sort"

	"github.com/suparena/entitymapper/key"
)

// PropertyMap maps property names to persistable values. It never carries the key
// or parent of an entity; those travel in Entity.Key and Entity.Parent.
type PropertyMap map[string]any

// DeepClone returns a copy of the map that shares no slices, maps or pointers
// with p, so neither side can change the other's values.
func (p PropertyMap) DeepClone() PropertyMap {
	if p == nil {
		return nil
	}
	out := make(PropertyMap, len(p))
	for k, v := range p {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(v any) any {
	if v == nil {
		return nil
	}
	return deepCopyValue(reflect.ValueOf(v)).Interface()
}

func deepCopyValue(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(deepCopyValue(rv.Index(i)))
		}
		return out
	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(deepCopyValue(rv.Index(i)))
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), deepCopyValue(iter.Value()))
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return rv
		}
		out := reflect.New(rv.Type().Elem())
		out.Elem().Set(deepCopyValue(rv.Elem()))
		return out
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(deepCopyValue(rv.Elem()))
		return out
	}
	// Scalars and structs are copied by value.
	return rv
}

// Names returns the property names in sorted order.
func (p PropertyMap) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Entity is the unit exchanged with a storage back end.
type Entity struct {
	// Key identifies the entity. A nil Key asks the back end to assign one.
	Key *key.Key
	// Kind is the type tag the entity is stored under.
	Kind string
	// Parent scopes a newly assigned key. It is ignored when Key is set, since the
	// key already carries its parent.
	Parent *key.Key
	// Properties holds the persisted fields.
	Properties PropertyMap
}

// Incomplete reports whether the back end still has to assign the key.
func (e *Entity) Incomplete() bool {
	return e.Key == nil
}
