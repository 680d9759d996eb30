/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/suparena/entitymapper"
	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/registry"
)

// document is a record whose properties are only known at run time.
type document struct {
	Key        *key.Key
	Parent     *key.Key
	Properties map[string]any
}

// Key fields use names that cannot clash with YAML property names.
const (
	documentKeyField    = "$key"
	documentParentField = "$parent"
)

// documentSchema declares one persisted field per property name.
func documentSchema(kind string, names []string) *registry.Schema[document] {
	fields := []registry.Field[document]{
		registry.Identifier(documentKeyField, func(d *document) **key.Key { return &d.Key }),
		registry.ParentReference(documentParentField, func(d *document) **key.Key { return &d.Parent }),
	}
	for _, name := range names {
		fields = append(fields, registry.Custom(name, registry.RolePersisted,
			func(d *document) (any, error) { return d.Properties[name], nil },
			func(d *document, v any) error {
				if d.Properties == nil {
					d.Properties = map[string]any{}
				}
				d.Properties[name] = v
				return nil
			},
		))
	}
	return registry.NewSchema(fields...).WithKind(kind)
}

func newPutCommand(rt *runtime) *cobra.Command {
	var (
		keyPath    string
		parentPath string
		file       string
	)

	cmd := &cobra.Command{
		Use:   "put <kind>",
		Short: "Save a YAML property map as an entity",
		Long: "Save a YAML property map, read from --file or stdin, as an entity of <kind>.\n" +
			"With --key the entity under that key is replaced; otherwise a new key is\n" +
			"assigned, under --parent when given. The memory store lives only for one\n" +
			"invocation.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if !key.ValidKind(kind) {
				return usageErrorf("invalid kind %q", kind)
			}

			doc := &document{}
			if keyPath != "" {
				k, err := key.ParsePath(keyPath)
				if err != nil {
					return mapCommandError(err)
				}
				if k.Kind() != kind {
					return usageErrorf("key %s is not of kind %s", keyPath, kind)
				}
				doc.Key = k
			}
			if parentPath != "" {
				p, err := key.ParsePath(parentPath)
				if err != nil {
					return mapCommandError(err)
				}
				doc.Parent = p
			}

			props, err := readProperties(cmd, file)
			if err != nil {
				return mapCommandError(err)
			}
			doc.Properties = props

			ctx := cmd.Context()
			backend, store, err := rt.backend(ctx)
			if err != nil {
				return mapCommandError(err)
			}
			repo := entitymapper.NewRepositoryWithSchema(backend, documentSchema(kind, sortedNames(props)))
			if err := repo.Save(ctx, doc); err != nil {
				return mapCommandError(err)
			}

			_, err = fmt.Fprintf(rt.out, "saved %s to %s\n%s\n", doc.Key.String(), store, repo.KeyString(doc.Key))
			return mapCommandError(err)
		},
	}

	cmd.Flags().StringVar(&keyPath, "key", "", "Existing key path to overwrite")
	cmd.Flags().StringVar(&parentPath, "parent", "", "Parent key path for a new key")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML property map (default: stdin)")
	return cmd
}

func readProperties(cmd *cobra.Command, file string) (map[string]any, error) {
	var data []byte
	var err error
	if file != "" {
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}

	props := map[string]any{}
	if err := yaml.Unmarshal(data, &props); err != nil {
		return nil, usageErrorf("properties must be a YAML mapping: %v", err)
	}
	return props, nil
}

func sortedNames(props map[string]any) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
