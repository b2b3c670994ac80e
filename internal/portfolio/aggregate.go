// Package portfolio rolls reconciled per-instrument price facts into
// position-level and portfolio-level profit/loss figures.
package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/okorolev/fundwatch/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Aggregate folds the run's results into portfolio lines and an overall
// total. An instrument contributes iff it tracks a position (positive buy
// price and quantity) and its quote is available; everything else is shown in
// the report upstream but excluded here. The total is nil when no invested
// value was accumulated, and the report omits the summary section in that
// case.
func Aggregate(results []domain.InstrumentFacts) ([]domain.PortfolioLine, *domain.PortfolioTotal) {
	var lines []domain.PortfolioLine
	total := domain.PortfolioTotal{}

	for _, r := range results {
		if !r.Instrument.TracksPnL() || !r.Available() {
			continue
		}

		line := Line(r.Instrument, r.Facts.Current)
		lines = append(lines, line)

		total.Invested = total.Invested.Add(line.Invested)
		total.Value = total.Value.Add(line.Value)
	}

	if !total.Invested.IsPositive() {
		return lines, nil
	}

	total.PnL = total.Value.Sub(total.Invested)
	total.PnLPct = total.PnL.Div(total.Invested).Mul(hundred)
	return lines, &total
}

// Line computes the P&L for a single position at the given current price.
// The percentage is left zero when the invested value is not positive; the
// absolute figures are still meaningful in that case.
func Line(inst domain.Instrument, currentPrice float64) domain.PortfolioLine {
	qty := decimal.NewFromFloat(inst.Quantity)
	invested := decimal.NewFromFloat(inst.BuyPrice).Mul(qty)
	value := decimal.NewFromFloat(currentPrice).Mul(qty)
	pnl := value.Sub(invested)

	line := domain.PortfolioLine{
		Ticker:   inst.Ticker,
		Invested: invested,
		Value:    value,
		PnL:      pnl,
	}
	if invested.IsPositive() {
		line.PnLPct = pnl.Div(invested).Mul(hundred)
	}
	return line
}
