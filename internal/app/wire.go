package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/okorolev/fundwatch/internal/cache/redis"
	"github.com/okorolev/fundwatch/internal/config"
	"github.com/okorolev/fundwatch/internal/domain"
	"github.com/okorolev/fundwatch/internal/notify"
	"github.com/okorolev/fundwatch/internal/platform/moex"
	"github.com/okorolev/fundwatch/internal/report"
)

// Dependencies bundles everything a Pass needs. It is constructed by Wire and
// torn down by the returned cleanup function.
type Dependencies struct {
	Fetcher    Fetcher
	Renderer   *report.Renderer
	Notifier   *notify.Notifier
	PriceCache domain.PriceCache // nil when the cache is disabled
}

// Wire builds the production dependency graph from configuration: the ISS
// client, one Telegram sender per configured chat, the renderer, and, when
// enabled, the Redis price cache. The cleanup function closes whatever was
// opened; it is safe to call even after a partial failure.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	cleanup := func() {}

	loc := time.UTC
	if cfg.Report.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.Report.Timezone)
		if err != nil {
			return nil, cleanup, fmt.Errorf("app: load timezone %q: %w", cfg.Report.Timezone, err)
		}
	}

	senders := make([]notify.Sender, 0, len(cfg.Telegram.ChatIDs))
	for _, chatID := range cfg.Recipients() {
		senders = append(senders, notify.NewTelegramSender(cfg.Telegram.Token, chatID))
	}

	deps := &Dependencies{
		Fetcher:  moex.NewClient(cfg.Moex.BaseURL, cfg.Moex.Timeout.Duration),
		Renderer: report.NewRenderer(cfg.Report.Title, loc),
		Notifier: notify.NewNotifier(senders, logger),
	}

	if cfg.Redis.Enabled {
		client, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			// The cache is an optional collaborator: log and continue
			// rather than fail the whole run.
			logger.Warn("price cache unavailable", slog.String("error", err.Error()))
		} else {
			deps.PriceCache = redis.NewPriceCache(client)
			cleanup = func() {
				if err := client.Close(); err != nil {
					logger.Warn("closing redis", slog.String("error", err.Error()))
				}
			}
		}
	}

	return deps, cleanup, nil
}
