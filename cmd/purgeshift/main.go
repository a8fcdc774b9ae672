// Command purgeshift is a PrusaSlicer post-processing script for the Prusa
// MK4S that moves the purge line to one of five positions.
//
// Add it under Print Settings > Output options > Post-processing scripts:
//
//	/path/to/purgeshift [inclusion mask];
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/purgeshift/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(cli.ExitInterrupted)
		}
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			// Not reported by the command itself.
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
