// Command web runs the RetailPulse analytics server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"retailpulse/internal/app"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.NewApplication()
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	if err := application.Start(ctx, cancel); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		application.Logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
	}

	return application.Stop(context.Background())
}
