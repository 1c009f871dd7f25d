package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"focus-tracker/internal/api"
	"focus-tracker/internal/cli"
	"focus-tracker/internal/config"
)

func main() {
	// Ctrl+C interrupts a running session through the context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(newApp)
	if err := root.Execute(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp opens the configured ledgers and builds the app over them
func newApp(cfg *config.Config) (*cli.App, func() error, error) {
	store, err := config.OpenStore(cfg, config.GetEnvironment())
	if err != nil {
		return nil, nil, fmt.Errorf("error opening storage: %w", err)
	}
	return cli.NewAppWithConfig(api.NewBusinessAPI(store, cfg), cfg), store.Close, nil
}
