// Package main is the entry point for the mush CLI.
package main

import (
	"os"

	"github.com/thoreinstein/mush/cmd/mush/commands"
	"github.com/thoreinstein/mush/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
