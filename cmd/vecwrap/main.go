// Command vecwrap compiles routine catalogs and calls vectorized routines.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/vecwrap/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		// Command output already went to stdout; this line is for the shell.
		fmt.Fprintf(os.Stderr, "vecwrap: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
