/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"fmt"
	"go/token"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/registry"
)

// Descriptor describes the record types of one Go package.
type Descriptor struct {
	Package string           `yaml:"package"`
	Imports []string         `yaml:"imports"`
	Types   []TypeDescriptor `yaml:"types"`
}

// TypeDescriptor describes one record type.
type TypeDescriptor struct {
	Type   string `yaml:"type"`
	Kind   string `yaml:"kind"`
	Strict bool   `yaml:"strict"`
	// Define also emits the struct declaration.
	Define bool              `yaml:"define"`
	Doc    string            `yaml:"doc"`
	Fields []FieldDescriptor `yaml:"fields"`
}

// FieldDescriptor describes one field. Identifier and parent fields are always
// *key.Key and need no go_type.
type FieldDescriptor struct {
	Name     string `yaml:"name"`
	Property string `yaml:"property"`
	Role     string `yaml:"role"`
	GoType   string `yaml:"go_type"`
	Doc      string `yaml:"doc"`
}

// ReadDescriptor reads and validates a descriptor file.
func ReadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}
	d, err := ParseDescriptor(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ParseDescriptor decodes YAML into a validated descriptor.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate reports the first problem that would make the generated code invalid.
func (d *Descriptor) Validate() error {
	if !token.IsIdentifier(d.Package) {
		return fmt.Errorf("invalid package name %q", d.Package)
	}
	if len(d.Types) == 0 {
		return fmt.Errorf("no types declared")
	}

	types := map[string]bool{}
	kinds := map[string]string{}
	for _, t := range d.Types {
		if !token.IsIdentifier(t.Type) {
			return fmt.Errorf("invalid type name %q", t.Type)
		}
		if types[t.Type] {
			return fmt.Errorf("type %s declared twice", t.Type)
		}
		types[t.Type] = true

		kind := t.kindOrDefault()
		if !key.ValidKind(kind) {
			return fmt.Errorf("type %s: invalid kind %q", t.Type, kind)
		}
		if other, ok := kinds[kind]; ok {
			return fmt.Errorf("kind %q used by %s and %s", kind, other, t.Type)
		}
		kinds[kind] = t.Type

		if err := t.validateFields(); err != nil {
			return fmt.Errorf("type %s: %w", t.Type, err)
		}
	}
	return nil
}

func (t TypeDescriptor) kindOrDefault() string {
	if t.Kind != "" {
		return t.Kind
	}
	return t.Type
}

func (t TypeDescriptor) validateFields() error {
	names := map[string]bool{}
	counts := map[registry.Role]int{}
	for _, f := range t.Fields {
		if !token.IsExported(f.Name) || !token.IsIdentifier(f.Name) {
			return fmt.Errorf("field %q must be an exported identifier", f.Name)
		}
		if names[f.Name] {
			return fmt.Errorf("field %s declared twice", f.Name)
		}
		names[f.Name] = true

		role, err := registry.ParseRole(f.Role)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		counts[role]++

		switch role {
		case registry.RoleIdentifier, registry.RoleParentReference:
			if f.GoType != "" && f.GoType != "*key.Key" {
				return fmt.Errorf("field %s: %s fields hold *key.Key, not %s", f.Name, role, f.GoType)
			}
		case registry.RolePersisted:
			if strings.TrimSpace(f.GoType) == "" {
				return fmt.Errorf("field %s: go_type is required", f.Name)
			}
		case registry.RoleExcluded:
			if t.Define && strings.TrimSpace(f.GoType) == "" {
				return fmt.Errorf("field %s: go_type is required to define the struct", f.Name)
			}
		}
	}
	if t.Strict && (counts[registry.RoleIdentifier] > 1 || counts[registry.RoleParentReference] > 1) {
		return fmt.Errorf("strict types allow one identifier and one parent field")
	}
	return nil
}
