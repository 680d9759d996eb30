/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStoresCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List configured stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rt.config()
			if err != nil {
				return mapCommandError(err)
			}

			tw := tabwriter.NewWriter(rt.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tBACKEND\tDEFAULT")
			for _, name := range cfg.StoreNames() {
				def := ""
				if name == cfg.DefaultStore {
					def = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, cfg.Stores[name].Backend, def)
			}
			return mapCommandError(tw.Flush())
		},
	}
}
