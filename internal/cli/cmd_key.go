/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/key"
)

func newKeyCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Encode, decode and allocate entity keys",
	}
	cmd.AddCommand(newKeyEncodeCommand(rt))
	cmd.AddCommand(newKeyDecodeCommand(rt))
	cmd.AddCommand(newKeyNewCommand(rt))
	return cmd
}

func newKeyEncodeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <path>",
		Short: "Encode a Kind:id/Kind:id path",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := key.ParsePath(args[0])
			if err != nil {
				return mapCommandError(err)
			}
			_, err = fmt.Fprintln(rt.out, k.Encode())
			return mapCommandError(err)
		},
	}
}

func newKeyDecodeCommand(rt *runtime) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "decode <encoded>",
		Short: "Decode an encoded key into its path",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := key.Decode(args[0])
			if err != nil {
				return mapCommandError(err)
			}
			if asJSON {
				return mapCommandError(printJSON(rt.out, describeKey(k)))
			}
			_, err = fmt.Fprintln(rt.out, k.String())
			return mapCommandError(err)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the key components as JSON")
	return cmd
}

func newKeyNewCommand(rt *runtime) *cobra.Command {
	var parentPath string

	cmd := &cobra.Command{
		Use:   "new <kind>",
		Short: "Allocate a new key with a random id",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !key.ValidKind(args[0]) {
				return usageErrorf("invalid kind %q", args[0])
			}
			var parent *key.Key
			if parentPath != "" {
				p, err := key.ParsePath(parentPath)
				if err != nil {
					return mapCommandError(err)
				}
				parent = p
			}
			k := datastore.AllocateKey(args[0], parent)
			_, err := fmt.Fprintf(rt.out, "%s\n%s\n", k.String(), k.Encode())
			return mapCommandError(err)
		},
	}

	cmd.Flags().StringVar(&parentPath, "parent", "", "Parent key path")
	return cmd
}

type keyView struct {
	Path    string `json:"path" yaml:"path"`
	Encoded string `json:"encoded" yaml:"encoded"`
	Kind    string `json:"kind" yaml:"kind"`
	ID      string `json:"id" yaml:"id"`
	Parent  string `json:"parent,omitempty" yaml:"parent,omitempty"`
}

func describeKey(k *key.Key) keyView {
	v := keyView{
		Path:    k.String(),
		Encoded: k.Encode(),
		Kind:    k.Kind(),
		ID:      k.ID(),
	}
	if p := k.Parent(); p != nil {
		v.Parent = p.String()
	}
	return v
}
