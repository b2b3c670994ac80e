// Package domain holds the core data model for the fund watcher: tracked
// instruments, raw market snapshots, reconciled price facts, and the
// portfolio profit/loss aggregates derived from them.
package domain

// Instrument is one tracked registry entry. The registry is static for the
// lifetime of a run; entries come from configuration and are never mutated.
type Instrument struct {
	// Ticker is the exchange-assigned security identifier, e.g. "LQDT".
	Ticker string
	// Board is the trading board/segment code needed to address the quote,
	// e.g. "TQTF" for exchange-traded funds.
	Board string
	// Name is the human display label; may contain non-ASCII text.
	Name string
	// BuyPrice is the recorded acquisition price per unit. Zero means the
	// position is not tracked for P&L.
	BuyPrice float64
	// Quantity is the held unit count. Zero excludes the instrument from
	// portfolio totals.
	Quantity float64
}

// TracksPnL reports whether the instrument carries enough position data to
// participate in profit/loss aggregation.
func (i Instrument) TracksPnL() bool {
	return i.BuyPrice > 0 && i.Quantity > 0
}
