/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const ratingDescriptor = `
package: models
imports:
  - github.com/go-openapi/strfmt
types:
  - type: RatingSystem
    strict: true
    define: true
    doc: RatingSystem groups ratings.
    fields:
      - name: ID
        role: identifier
      - name: Name
        go_type: "*string"
        doc: Name of the rating system.
      - name: SiteURL
        property: SiteUrl
        go_type: string
      - name: CreatedAt
        go_type: "*strfmt.DateTime"
  - type: Rating
    kind: PlayerRating
    fields:
      - name: ID
        role: id
      - name: System
        role: parent
      - name: Score
        go_type: int
      - name: Rank
        role: excluded
`

func TestGenerate(t *testing.T) {
	d, err := ParseDescriptor([]byte(ratingDescriptor))
	if err != nil {
		t.Fatalf("ParseDescriptor failed: %v", err)
	}

	src, err := Generate(d)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := string(src)

	if _, err := parser.ParseFile(token.NewFileSet(), "schemas.go", src, parser.AllErrors); err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, out)
	}

	expected := []string{
		"// Code generated by entitymapper gen. DO NOT EDIT.",
		"package models",
		`"github.com/go-openapi/strfmt"`,
		`"github.com/suparena/entitymapper/key"`,
		`"github.com/suparena/entitymapper/registry"`,
		"// RatingSystem groups ratings.\ntype RatingSystem struct {",
		"// Name of the rating system.",
		`registry.Identifier("ID", func(r *RatingSystem) **key.Key { return &r.ID }),`,
		`registry.Property("SiteUrl", func(r *RatingSystem) *string { return &r.SiteURL }),`,
		`registry.Property("CreatedAt", func(r *RatingSystem) **strfmt.DateTime { return &r.CreatedAt }),`,
		`).Strict())`,
		`registry.ParentReference("System", func(r *Rating) **key.Key { return &r.System }),`,
		`registry.Excluded[Rating]("Rank"),`,
		`).WithKind("PlayerRating"))`,
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("generated code lacks %q\n%s", want, out)
		}
	}

	// Rating is registered but not defined
	if strings.Contains(out, "type Rating struct") {
		t.Errorf("Rating must not be defined:\n%s", out)
	}
}

func TestGenerateWithoutKeyFields(t *testing.T) {
	d, err := ParseDescriptor([]byte(`
package: notes
types:
  - type: Note
    fields:
      - name: Text
        go_type: string
`))
	if err != nil {
		t.Fatalf("ParseDescriptor failed: %v", err)
	}
	src, err := Generate(d)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.Contains(string(src), "entitymapper/key") {
		t.Errorf("unused key import emitted:\n%s", src)
	}
}

func TestDescriptorValidation(t *testing.T) {
	cases := map[string]string{
		"bad package":      "package: 1models\ntypes: [{type: A, fields: [{name: X, go_type: int}]}]",
		"no types":         "package: models",
		"duplicate type":   "package: m\ntypes: [{type: A}, {type: A}]",
		"duplicate kind":   "package: m\ntypes: [{type: A, kind: K}, {type: B, kind: K}]",
		"invalid kind":     "package: m\ntypes: [{type: A, kind: 'a/b'}]",
		"unexported field": "package: m\ntypes: [{type: A, fields: [{name: x, go_type: int}]}]",
		"duplicate field":  "package: m\ntypes: [{type: A, fields: [{name: X, go_type: int}, {name: X, go_type: int}]}]",
		"unknown role":     "package: m\ntypes: [{type: A, fields: [{name: X, role: key}]}]",
		"missing go_type":  "package: m\ntypes: [{type: A, fields: [{name: X}]}]",
		"typed identifier": "package: m\ntypes: [{type: A, fields: [{name: ID, role: identifier, go_type: string}]}]",
		"strict twin ids":  "package: m\ntypes: [{type: A, strict: true, fields: [{name: A, role: id}, {name: B, role: id}]}]",
		"undefined type":   "package: m\ntypes: [{type: A, define: true, fields: [{name: C, role: excluded}]}]",
		"not yaml":         "package: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseDescriptor([]byte(doc)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestGenerateFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "schemas.yaml")
	out := filepath.Join(dir, "schemas_gen.go")
	if err := os.WriteFile(in, []byte(ratingDescriptor), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := GenerateFile(in, out); err != nil {
		t.Fatalf("GenerateFile failed: %v", err)
	}
	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(src), "// Code generated by entitymapper gen.") {
		t.Errorf("unexpected output:\n%s", src)
	}

	if err := GenerateFile(filepath.Join(dir, "missing.yaml"), out); err == nil {
		t.Error("expected an error for a missing descriptor")
	}
}
