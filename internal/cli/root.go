/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/suparena/entitymapper"
)

type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

func NewRootCommand(out io.Writer, build BuildInfo) *cobra.Command {
	return newRootCommand(out, build, entitymapper.NewBackends())
}

func newRootCommand(out io.Writer, build BuildInfo, backends entitymapper.Backends) *cobra.Command {
	globals := &globalOptions{}
	rt := &runtime{out: out, build: build, globals: globals, backends: backends}

	cmd := &cobra.Command{
		Use:           "entitymapper",
		Short:         "Inspect entities and generate record schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return mapCommandError(rt.setupLogging())
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&globals.ConfigPath, "config", "entitymapper.yaml", "Config file (YAML, or TOML with a .toml extension)")
	flags.StringVar(&globals.EnvFile, "env-file", ".env", "Dotenv file")
	flags.StringVar(&globals.Store, "store", "", "Configured store to use (default: the config's default store)")
	flags.StringVar(&globals.LogLevel, "log-level", "", "Override the configured log level")

	cmd.AddCommand(newVersionCommand(rt))
	cmd.AddCommand(newKeyCommand(rt))
	cmd.AddCommand(newGetCommand(rt))
	cmd.AddCommand(newPutCommand(rt))
	cmd.AddCommand(newDeleteCommand(rt))
	cmd.AddCommand(newStoresCommand(rt))
	cmd.AddCommand(newGenCommand(rt))
	closeAfterRun(rt, cmd)
	return cmd
}

// closeAfterRun releases opened stores and log files once a command returns, also
// when it fails. Cobra skips post-run hooks on error.
func closeAfterRun(rt *runtime, cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			err := run(c, args)
			if closeErr := rt.close(c.Context()); err == nil && closeErr != nil {
				err = mapCommandError(closeErr)
			}
			return err
		}
	}
	for _, sub := range cmd.Commands() {
		closeAfterRun(rt, sub)
	}
}
