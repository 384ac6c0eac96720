// Package app provides the top-level application lifecycle management for
// marketdesk. It wires together all dependencies (the upstream exchange
// clients, the view stores, services, the local API server, and the optional
// Redis signal bus) and runs the feed and server goroutines.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/marketdesk/marketdesk/internal/config"
)

// App is the root application object. It owns the configuration, logger, and a
// list of cleanup functions that are called in reverse order on shutdown.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []func()
}

// New creates a new App from the given configuration and logger.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run is the main entry point. It wires all dependencies, starts the feed and
// server goroutines, and blocks until the context is cancelled or a fatal
// error occurs. On return it runs all registered cleanup functions.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "starting application",
		slog.String("exchange", a.cfg.Exchange.BaseURL),
		slog.String("log_level", a.cfg.LogLevel),
	)

	deps, cleanup, err := Wire(ctx, a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("app: wire dependencies: %w", err)
	}
	a.closers = append(a.closers, cleanup)
	defer a.Close()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return deps.Hub.Run(ctx)
	})
	g.Go(func() error {
		return deps.BookFeed.Run(ctx)
	})
	g.Go(func() error {
		return deps.TradePoller.Run(ctx)
	})
	g.Go(func() error {
		return deps.BalancePoller.Run(ctx)
	})
	g.Go(func() error {
		return deps.Server.Run(ctx)
	})

	err = g.Wait()
	if err != nil && err != context.Canceled {
		return fmt.Errorf("app: %w", err)
	}
	return nil
}

// Close tears down all resources in reverse registration order. It is safe to
// call multiple times; subsequent calls are no-ops.
func (a *App) Close() {
	a.logger.Info("shutting down application")
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
