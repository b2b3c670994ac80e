package domain

import "github.com/shopspring/decimal"

// PortfolioLine is the per-position P&L for one instrument that qualifies for
// aggregation: positive buy price, positive quantity, and a live quote.
// Monetary values are decimals so report figures stay exact at the rendered
// precision.
type PortfolioLine struct {
	Ticker   string
	Invested decimal.Decimal // buy price * quantity
	Value    decimal.Decimal // current price * quantity
	PnL      decimal.Decimal // Value - Invested
	PnLPct   decimal.Decimal // PnL / Invested * 100, zero when Invested is zero
}

// PortfolioTotal sums every qualifying line. It is only meaningful (and only
// rendered) when Invested is positive.
type PortfolioTotal struct {
	Invested decimal.Decimal
	Value    decimal.Decimal
	PnL      decimal.Decimal
	PnLPct   decimal.Decimal
}
