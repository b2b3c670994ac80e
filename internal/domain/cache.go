package domain

import (
	"context"
	"time"
)

// PriceCache stores the last seen price per ticker across runs. It is an
// optional collaborator: a run never depends on it for correctness, only for
// movement-since-last-run logging.
type PriceCache interface {
	// SetPrice stores the latest price and observation time for a ticker.
	SetPrice(ctx context.Context, ticker string, price float64, ts time.Time) error
	// GetPrice returns the stored price and its observation time, or
	// ErrNotFound when the ticker has no entry.
	GetPrice(ctx context.Context, ticker string) (float64, time.Time, error)
	// GetPrices returns stored prices for several tickers at once; tickers
	// without an entry are omitted from the result.
	GetPrices(ctx context.Context, tickers []string) (map[string]float64, error)
}
