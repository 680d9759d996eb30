/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"errors"
	"os"

	"github.com/suparena/entitymapper"
	"github.com/suparena/entitymapper/internal/cli"
)

func main() {
	info := entitymapper.GetVersionInfo()
	cmd := cli.NewRootCommand(os.Stdout, cli.BuildInfo{
		Version:   info.Version,
		Commit:    info.GitCommit,
		BuildTime: info.BuildDate,
		GoVersion: info.GoVersion,
	})
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString("entitymapper: " + err.Error() + "\n")
		var withExitCode interface{ ExitCode() int }
		if errors.As(err, &withExitCode) {
			os.Exit(withExitCode.ExitCode())
		}
		os.Exit(1)
	}
}
