// Package app wires the fund watcher together and drives its two operating
// modes: a single report pass (once) or a cron-scheduled loop (serve).
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/okorolev/fundwatch/internal/config"
	"github.com/okorolev/fundwatch/internal/scheduler"
)

// App is the root application object. It owns the configuration, logger, and
// a list of cleanup functions that are called in reverse order on shutdown.
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

// Run wires dependencies and executes the configured mode. In once mode it
// performs a single pass and returns; in serve mode it blocks until the
// context is cancelled. A pass failure triggers a best-effort failure notice
// through the notifier before the error is returned.
func (a *App) Run(ctx context.Context) error {
	deps, cleanup, err := Wire(ctx, a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("app: wire dependencies: %w", err)
	}
	a.closers = append(a.closers, cleanup)

	pass := NewPass(
		a.cfg.Registry(),
		deps.Fetcher,
		deps.Renderer,
		deps.Notifier,
		deps.PriceCache,
		a.cfg.Moex.FetchPause.Duration,
		a.logger,
	)

	switch strings.ToLower(a.cfg.Mode) {
	case "once":
		if err := pass.Run(ctx); err != nil {
			a.notifyFailure(deps, err)
			return err
		}
		return nil
	case "serve":
		sched := scheduler.New(a.logger)
		if err := sched.AddJob(ctx, a.cfg.Schedule.Cron, pass); err != nil {
			return fmt.Errorf("app: register schedule %q: %w", a.cfg.Schedule.Cron, err)
		}
		sched.Start(ctx)
		return ctx.Err()
	default:
		return fmt.Errorf("app: unsupported mode %q", a.cfg.Mode)
	}
}

// notifyFailure sends a short failure notice so the recipients learn that the
// report did not go out. Best effort: a fresh context is used because the
// original one may already be cancelled, and delivery errors are only logged.
func (a *App) notifyFailure(deps *Dependencies, cause error) {
	ctx := context.Background()
	text := fmt.Sprintf("⚠️ Отчёт не сформирован: %v", cause)
	if err := deps.Notifier.Broadcast(ctx, text); err != nil {
		a.logger.Error("failure notice not delivered", slog.String("error", err.Error()))
	}
}

// Close tears down all resources in reverse registration order. It is safe to
// call multiple times; subsequent calls are no-ops.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
