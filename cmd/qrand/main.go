// Command qrand fetches quantum random values from an IDQ Quantis appliance.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run executes one qrand invocation and releases the session and metrics
// listener on every exit path.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd, app := newRootCmd(stdout, stderr)
	return app.execute(ctx, cmd, args)
}
