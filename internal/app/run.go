package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/okorolev/fundwatch/internal/domain"
	"github.com/okorolev/fundwatch/internal/notify"
	"github.com/okorolev/fundwatch/internal/portfolio"
	"github.com/okorolev/fundwatch/internal/reconcile"
	"github.com/okorolev/fundwatch/internal/report"
)

// Fetcher fetches one instrument's marketdata snapshot. The MOEX ISS client
// satisfies it in production; tests substitute fakes.
type Fetcher interface {
	Fetch(ctx context.Context, board, ticker string) (domain.MarketSnapshot, error)
}

// Pass is one full fetch-reconcile-render-dispatch cycle over the registry.
// It is safe to run repeatedly (serve mode reuses one Pass).
type Pass struct {
	registry []domain.Instrument
	fetcher  Fetcher
	renderer *report.Renderer
	notifier *notify.Notifier
	cache    domain.PriceCache // optional, may be nil
	pause    time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewPass assembles a Pass. cache may be nil; pause is the courtesy delay
// between consecutive fetches.
func NewPass(registry []domain.Instrument, fetcher Fetcher, renderer *report.Renderer,
	notifier *notify.Notifier, cache domain.PriceCache, pause time.Duration, logger *slog.Logger) *Pass {
	return &Pass{
		registry: registry,
		fetcher:  fetcher,
		renderer: renderer,
		notifier: notifier,
		cache:    cache,
		pause:    pause,
		logger:   logger.With(slog.String("component", "pass")),
		now:      time.Now,
	}
}

// Name implements scheduler.Job.
func (p *Pass) Name() string { return "report-pass" }

// Run executes one pass. Per-instrument and per-recipient faults are handled
// inside and never abort the pass; the returned error reflects only whole-run
// failure (context cancellation).
func (p *Pass) Run(ctx context.Context) error {
	runID := uuid.NewString()
	log := p.logger.With(slog.String("run_id", runID))
	log.InfoContext(ctx, "starting pass", slog.Int("instruments", len(p.registry)))

	results, err := p.collect(ctx, log)
	if err != nil {
		return err
	}

	_, total := portfolio.Aggregate(results)
	text := p.renderer.Render(p.now(), results, total)

	if err := p.notifier.Broadcast(ctx, text); err != nil {
		// Failed recipients were already logged individually; the pass
		// itself still counts as completed.
		log.WarnContext(ctx, "partial delivery", slog.String("error", err.Error()))
	}

	p.storePrices(ctx, log, results)

	log.InfoContext(ctx, "pass finished")
	return nil
}

// collect walks the registry in order, fetching and reconciling every
// instrument. Any fetch or reconcile fault degrades that one entry to
// "no data"; the loop always produces one result per registry entry.
func (p *Pass) collect(ctx context.Context, log *slog.Logger) ([]domain.InstrumentFacts, error) {
	lastSeen := p.loadLastSeen(ctx, log)

	results := make([]domain.InstrumentFacts, 0, len(p.registry))
	for i, inst := range p.registry {
		if i > 0 && p.pause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.pause):
			}
		}

		results = append(results, p.fetchOne(ctx, log, inst, lastSeen))
	}
	return results, nil
}

// fetchOne resolves a single instrument to its facts, mapping every fault to
// an unavailable entry.
func (p *Pass) fetchOne(ctx context.Context, log *slog.Logger, inst domain.Instrument, lastSeen map[string]float64) domain.InstrumentFacts {
	res := domain.InstrumentFacts{Instrument: inst}

	snap, err := p.fetcher.Fetch(ctx, inst.Board, inst.Ticker)
	if err != nil {
		log.WarnContext(ctx, "quote unavailable",
			slog.String("ticker", inst.Ticker),
			slog.String("error", err.Error()),
		)
		return res
	}

	facts, err := reconcile.Reconcile(snap)
	if err != nil {
		log.WarnContext(ctx, "no usable price",
			slog.String("ticker", inst.Ticker),
			slog.String("error", err.Error()),
		)
		return res
	}

	if prev, ok := lastSeen[inst.Ticker]; ok && prev != facts.Current {
		log.DebugContext(ctx, "price moved since last run",
			slog.String("ticker", inst.Ticker),
			slog.Float64("previous", prev),
			slog.Float64("current", facts.Current),
		)
	}

	res.Facts = facts
	return res
}

// loadLastSeen reads cached prices from the previous run. Cache faults are
// logged and ignored; the pass never depends on the cache.
func (p *Pass) loadLastSeen(ctx context.Context, log *slog.Logger) map[string]float64 {
	if p.cache == nil {
		return nil
	}

	tickers := make([]string, 0, len(p.registry))
	for _, inst := range p.registry {
		tickers = append(tickers, inst.Ticker)
	}

	prices, err := p.cache.GetPrices(ctx, tickers)
	if err != nil {
		log.WarnContext(ctx, "price cache read failed", slog.String("error", err.Error()))
		return nil
	}
	return prices
}

// storePrices writes the run's current prices back to the cache.
func (p *Pass) storePrices(ctx context.Context, log *slog.Logger, results []domain.InstrumentFacts) {
	if p.cache == nil {
		return
	}

	ts := p.now()
	for _, r := range results {
		if !r.Available() {
			continue
		}
		if err := p.cache.SetPrice(ctx, r.Instrument.Ticker, r.Facts.Current, ts); err != nil {
			log.WarnContext(ctx, "price cache write failed",
				slog.String("ticker", r.Instrument.Ticker),
				slog.String("error", err.Error()),
			)
		}
	}
}
