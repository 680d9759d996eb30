/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(rt *runtime) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return mapCommandError(printJSON(rt.out, rt.build))
			}
			_, err := fmt.Fprintf(rt.out, "version=%s commit=%s build_time=%s go=%s\n",
				rt.build.Version, rt.build.Commit, rt.build.BuildTime, rt.build.GoVersion)
			return mapCommandError(err)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version as JSON")
	return cmd
}
