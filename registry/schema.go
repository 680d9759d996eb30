/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/key"
)

// Schema is the field-role table of record type T. It is declared once, usually in an
// init function, and resolved when built: later calls never inspect T again.
type Schema[T any] struct {
	typeName  string
	kind      string
	construct func() (*T, error)
	strict    bool
	fields    []Field[T]

	// resolved view
	identifier int
	parent     int
	persisted  []int
	problems   []string
}

// NewSchema builds the schema of T from its field declarations. The kind defaults
// to the Go type name of T.
func NewSchema[T any](fields ...Field[T]) *Schema[T] {
	var zero T
	t := reflect.TypeOf(zero)
	name := "<nil>"
	if t != nil {
		name = t.Name()
		if name == "" {
			name = t.String()
		}
	}
	s := &Schema[T]{
		typeName: name,
		kind:     name,
		fields:   append([]Field[T](nil), fields...),
	}
	s.resolve()
	return s
}

// WithKind overrides the kind under which records of T are stored.
func (s *Schema[T]) WithKind(kind string) *Schema[T] {
	s.kind = kind
	s.resolve()
	return s
}

// WithConstructor sets the construction path used when restoring records. Without
// one, records are allocated with new(T).
func (s *Schema[T]) WithConstructor(fn func() (*T, error)) *Schema[T] {
	s.construct = fn
	return s
}

// Strict turns ambiguous declarations, such as two identifier fields, into a
// configuration error reported at the first use of the schema. Without it the first
// declaration wins.
func (s *Schema[T]) Strict() *Schema[T] {
	s.strict = true
	s.resolve()
	return s
}

// Kind returns the storage kind of T.
func (s *Schema[T]) Kind() string {
	return s.kind
}

// TypeName returns the Go type name of T.
func (s *Schema[T]) TypeName() string {
	return s.typeName
}

// IsStrict reports whether Strict was applied.
func (s *Schema[T]) IsStrict() bool {
	return s.strict
}

// Fields returns the declarations in declaration order.
func (s *Schema[T]) Fields() []Field[T] {
	return append([]Field[T](nil), s.fields...)
}

// Identifier returns the honored identifier field, if any.
func (s *Schema[T]) Identifier() (Field[T], bool) {
	if s.identifier < 0 {
		return Field[T]{}, false
	}
	return s.fields[s.identifier], true
}

// ParentReference returns the honored parent reference field, if any.
func (s *Schema[T]) ParentReference() (Field[T], bool) {
	if s.parent < 0 {
		return Field[T]{}, false
	}
	return s.fields[s.parent], true
}

// Persisted returns the fields stored in the property map, in declaration order.
func (s *Schema[T]) Persisted() []Field[T] {
	out := make([]Field[T], 0, len(s.persisted))
	for _, i := range s.persisted {
		out = append(out, s.fields[i])
	}
	return out
}

// Err returns the configuration error of the schema, or nil when it is usable.
func (s *Schema[T]) Err() error {
	if len(s.problems) == 0 {
		return nil
	}
	return errors.NewConfigurationError(s.typeName, strings.Join(s.problems, "; "))
}

// New constructs an empty record.
func (s *Schema[T]) New() (*T, error) {
	if s.construct == nil {
		return new(T), nil
	}
	rec, err := s.construct()
	if err != nil {
		return nil, errors.NewConstructionError(s.typeName, err)
	}
	if rec == nil {
		return nil, errors.NewConstructionError(s.typeName, fmt.Errorf("constructor returned nil"))
	}
	return rec, nil
}

func (s *Schema[T]) resolve() {
	s.identifier, s.parent = -1, -1
	s.persisted = s.persisted[:0]
	s.problems = nil

	var t T
	if reflect.TypeOf(t) == nil {
		s.problems = append(s.problems, "record type must be a concrete type")
	}
	if !key.ValidKind(s.kind) {
		s.problems = append(s.problems, fmt.Sprintf("invalid kind %q", s.kind))
	}

	var identifiers, parents []string
	seen := make(map[string]bool, len(s.fields))
	for i, f := range s.fields {
		if f.Name == "" {
			s.problems = append(s.problems, fmt.Sprintf("field %d has no name", i))
			continue
		}
		if seen[f.Name] {
			if s.strict {
				s.problems = append(s.problems, fmt.Sprintf("field %q declared more than once", f.Name))
			}
			continue
		}
		seen[f.Name] = true

		switch f.Role {
		case RoleIdentifier:
			identifiers = append(identifiers, f.Name)
			if s.identifier < 0 {
				s.identifier = i
			}
		case RoleParentReference:
			parents = append(parents, f.Name)
			if s.parent < 0 {
				s.parent = i
			}
		case RolePersisted:
			if f.get == nil {
				s.problems = append(s.problems, fmt.Sprintf("persisted field %q has no getter", f.Name))
				continue
			}
			s.persisted = append(s.persisted, i)
		case RoleExcluded:
		default:
			s.problems = append(s.problems, fmt.Sprintf("field %q has unknown role %s", f.Name, f.Role))
		}
	}

	for _, i := range []int{s.identifier, s.parent} {
		if i >= 0 && s.fields[i].get == nil {
			s.problems = append(s.problems, fmt.Sprintf("%s field %q has no accessor", s.fields[i].Role, s.fields[i].Name))
		}
	}
	if s.strict && len(identifiers) > 1 {
		s.problems = append(s.problems, "multiple identifier fields: "+strings.Join(identifiers, ", "))
	}
	if s.strict && len(parents) > 1 {
		s.problems = append(s.problems, "multiple parent reference fields: "+strings.Join(parents, ", "))
	}
}
