/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suparena/entitymapper/processor"
)

func newGenCommand(rt *runtime) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "gen <descriptor.yaml>",
		Short: "Generate schema registrations from a type descriptor",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			out := output
			if out == "" {
				out = defaultGenOutput(in)
			}
			if err := processor.GenerateFile(in, out); err != nil {
				return mapCommandError(err)
			}
			slog.Info("schemas generated", "descriptor", in, "output", out)
			_, err := fmt.Fprintln(rt.out, out)
			return mapCommandError(err)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: <descriptor>_gen.go)")
	return cmd
}

func defaultGenOutput(in string) string {
	base := strings.TrimSuffix(in, filepath.Ext(in))
	return base + "_gen.go"
}
