// Package main is the entry point for the tada CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tada/internal/backend/taskapi"
	"tada/internal/cli"
	"tada/internal/commands"
	"tada/internal/config"
	"tada/internal/gateway"
	"tada/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(cfg *config.Config, gw *gateway.Gateway) (service.Service, error) {
		return taskapi.New(gw), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
