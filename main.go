package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ardnew/argot/cli"
	"github.com/ardnew/argot/cli/cmd"
	"github.com/ardnew/argot/log"
)

// exitParse is the exit status of a command line that does not parse against
// the definition. The report has already been printed.
const exitParse = 2

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)

	switch {
	case err == nil:

	case errors.Is(err, cmd.ErrParse):
		log.Debug("command line has errors", slog.Any("error", err))
		os.Exit(exitParse)

	default:
		log.Error(
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()
		os.Exit(1)
	}
}
