/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/suparena/entitymapper/registry"
)

const (
	registryImport = "github.com/suparena/entitymapper/registry"
	keyImport      = "github.com/suparena/entitymapper/key"
)

var fileTemplate = template.Must(template.New("schemas").Funcs(template.FuncMap{
	"comment": comment,
}).Parse(`// Code generated by entitymapper gen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)
{{range .Types}}{{if .Define}}
{{comment .Doc}}type {{.Type}} struct {
{{- range .Fields}}
{{comment .Doc}}	{{.Name}} {{.GoType}}
{{- end}}
}
{{end}}{{end}}
func init() {
{{- range .Types}}
	registry.RegisterSchema(registry.NewSchema(
{{- range .Fields}}
		{{.Declaration}},
{{- end}}
	){{.Options}})
{{- end}}
}
`))

type fileData struct {
	Package string
	Imports []string
	Types   []typeData
}

type typeData struct {
	Type    string
	Doc     string
	Define  bool
	Options string
	Fields  []fieldData
}

type fieldData struct {
	Name        string
	GoType      string
	Doc         string
	Declaration string
}

// Generate renders the Go source registering the schemas of d. The output is gofmt'ed.
func Generate(d *Descriptor) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	data := fileData{Package: d.Package}
	imports := map[string]bool{registryImport: true}
	for _, imp := range d.Imports {
		imports[imp] = true
	}

	for _, t := range d.Types {
		td := typeData{Type: t.Type, Doc: t.Doc, Define: t.Define}
		if t.Kind != "" && t.Kind != t.Type {
			td.Options += fmt.Sprintf(".WithKind(%q)", t.Kind)
		}
		if t.Strict {
			td.Options += ".Strict()"
		}

		for _, f := range t.Fields {
			role, _ := registry.ParseRole(f.Role)
			fd := fieldData{Name: f.Name, GoType: f.GoType, Doc: f.Doc}
			if role == registry.RoleIdentifier || role == registry.RoleParentReference {
				fd.GoType = "*key.Key"
				imports[keyImport] = true
			}
			fd.Declaration = declaration(t.Type, f, role)
			td.Fields = append(td.Fields, fd)
		}
		data.Types = append(data.Types, td)
	}

	for imp := range imports {
		data.Imports = append(data.Imports, imp)
	}
	sort.Strings(data.Imports)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

// GenerateFile reads the descriptor at in and writes the generated source to out.
func GenerateFile(in, out string) error {
	d, err := ReadDescriptor(in)
	if err != nil {
		return err
	}
	src, err := Generate(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}

func declaration(typeName string, f FieldDescriptor, role registry.Role) string {
	accessor := func(goType string) string {
		return fmt.Sprintf("func(r *%s) *%s { return &r.%s }", typeName, goType, f.Name)
	}
	switch role {
	case registry.RoleIdentifier:
		return fmt.Sprintf("registry.Identifier(%q, %s)", f.Name, accessor("*key.Key"))
	case registry.RoleParentReference:
		return fmt.Sprintf("registry.ParentReference(%q, %s)", f.Name, accessor("*key.Key"))
	case registry.RoleExcluded:
		return fmt.Sprintf("registry.Excluded[%s](%q)", typeName, f.Name)
	default:
		property := f.Property
		if property == "" {
			property = f.Name
		}
		return fmt.Sprintf("registry.Property(%q, %s)", property, accessor(f.GoType))
	}
}

// comment renders doc as line comments, one per line of text.
func comment(doc string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(doc, "\n") {
		b.WriteString("// ")
		b.WriteString(strings.TrimSpace(line))
		b.WriteString("\n")
	}
	return b.String()
}
