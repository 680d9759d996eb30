/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/key"
	"github.com/suparena/entitymapper/storagemodels"
)

type entityView struct {
	Key        keyView                    `json:"key" yaml:"key"`
	Store      string                     `json:"store" yaml:"store"`
	Properties storagemodels.PropertyMap `json:"properties" yaml:"properties"`
}

func newGetCommand(rt *runtime) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the stored entity under a key",
		Long:  "Print the stored entity under a key. The key is the encoded form or a Kind:id path.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend, store, err := rt.backend(ctx)
			if err != nil {
				return mapCommandError(err)
			}
			k, err := parseKeyArg(backend, args[0])
			if err != nil {
				return mapCommandError(err)
			}
			e, err := backend.Get(ctx, k)
			if err != nil {
				return mapCommandError(err)
			}
			props, err := datastore.NormalizeProperties(e.Properties)
			if err != nil {
				return mapCommandError(err)
			}

			view := entityView{Key: describeKey(k), Store: store, Properties: props}
			if asJSON {
				return mapCommandError(printJSON(rt.out, view))
			}
			return mapCommandError(printYAML(rt.out, view))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of YAML")
	return cmd
}

func newDeleteCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete the entity under a key",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend, store, err := rt.backend(ctx)
			if err != nil {
				return mapCommandError(err)
			}
			k, err := parseKeyArg(backend, args[0])
			if err != nil {
				return mapCommandError(err)
			}
			if err := backend.Delete(ctx, k); err != nil {
				return mapCommandError(err)
			}
			_, err = fmt.Fprintf(rt.out, "deleted %s from %s\n", k.String(), store)
			return mapCommandError(err)
		},
	}
}

// parseKeyArg accepts a path when the argument contains a kind separator, and the
// back end's serialized form otherwise.
func parseKeyArg(backend datastore.Backend, arg string) (*key.Key, error) {
	if strings.Contains(arg, ":") {
		return key.ParsePath(arg)
	}
	return backend.ParseKey(arg)
}
