// Package main is the entry point for the taskdeck CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskdeck/internal/auth"
	"taskdeck/internal/auth/httpauth"
	"taskdeck/internal/cli"
	"taskdeck/internal/commands"
	"taskdeck/internal/config"
	"taskdeck/internal/logging"
	"taskdeck/internal/store"
	"taskdeck/internal/transport"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, buildEnv)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

// buildEnv wires the production stack: HTTP identity provider, session
// manager, authenticated transport, task store.
func buildEnv(ctx context.Context, cfg *config.Config) (*commands.Env, error) {
	provider := httpauth.New(cfg.AuthURL, cfg.TokenPath(), logging.New("auth", cfg.Debug))
	sessions := auth.NewManager(provider)
	remote := transport.New(cfg.APIURL, sessions, logging.New("transport", cfg.Debug))
	return &commands.Env{
		Sessions: sessions,
		Store:    store.New(remote, logging.New("store", cfg.Debug)),
	}, nil
}
