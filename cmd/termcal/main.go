package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"termcal/internal/cli"
	appLog "termcal/internal/log"
)

// interruptGrace is how long a canceled command gets to return on its own
// before the process exits. Commands blocked on a prompt never return.
const interruptGrace = time.Second

func main() {
	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
		time.AfterFunc(interruptGrace, func() {
			fmt.Fprintln(os.Stderr, "\nExiting application...")
			os.Exit(130)
		})
	}()

	root := cli.NewRootCommand(cli.IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	if err := root.ExecuteContext(ctx); err != nil {
		cli.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
