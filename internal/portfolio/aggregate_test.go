package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okorolev/fundwatch/internal/domain"
)

func facts(current float64) *domain.PriceFacts {
	return &domain.PriceFacts{Current: current}
}

func TestLineComputesPnL(t *testing.T) {
	inst := domain.Instrument{Ticker: "LQDT", BuyPrice: 1.8630, Quantity: 585780}

	line := Line(inst, 1.9000)

	assert.Equal(t, "1091308.14", line.Invested.StringFixed(2))
	assert.Equal(t, "1112982.00", line.Value.StringFixed(2))
	assert.Equal(t, "21673.86", line.PnL.StringFixed(2))
	assert.Equal(t, "1.99", line.PnLPct.StringFixed(2))
}

func TestLineNegativePnL(t *testing.T) {
	inst := domain.Instrument{Ticker: "OBLG", BuyPrice: 187.1, Quantity: 5335}

	line := Line(inst, 180.0)

	assert.True(t, line.PnL.IsNegative())
	assert.True(t, line.PnLPct.IsNegative())
	assert.Equal(t, line.Value.Sub(line.Invested).String(), line.PnL.String())
}

func TestAggregateQualification(t *testing.T) {
	results := []domain.InstrumentFacts{
		// Qualifies.
		{Instrument: domain.Instrument{Ticker: "A", BuyPrice: 10, Quantity: 5}, Facts: facts(12)},
		// No position tracked: shown in report, excluded here.
		{Instrument: domain.Instrument{Ticker: "B"}, Facts: facts(100)},
		// Position tracked but quote unavailable.
		{Instrument: domain.Instrument{Ticker: "C", BuyPrice: 7, Quantity: 3}, Facts: nil},
		// Zero quantity.
		{Instrument: domain.Instrument{Ticker: "D", BuyPrice: 7, Quantity: 0}, Facts: facts(8)},
	}

	lines, total := Aggregate(results)

	require.Len(t, lines, 1)
	assert.Equal(t, "A", lines[0].Ticker)
	require.NotNil(t, total)
	assert.Equal(t, "50.00", total.Invested.StringFixed(2))
	assert.Equal(t, "60.00", total.Value.StringFixed(2))
	assert.Equal(t, "10.00", total.PnL.StringFixed(2))
	assert.Equal(t, "20.00", total.PnLPct.StringFixed(2))
}

func TestAggregateNoQualifyingLines(t *testing.T) {
	results := []domain.InstrumentFacts{
		{Instrument: domain.Instrument{Ticker: "B"}, Facts: facts(100)},
		{Instrument: domain.Instrument{Ticker: "C", BuyPrice: 7, Quantity: 3}, Facts: nil},
	}

	lines, total := Aggregate(results)
	assert.Empty(t, lines)
	assert.Nil(t, total)
}

func TestAggregateTotalInvariant(t *testing.T) {
	results := []domain.InstrumentFacts{
		{Instrument: domain.Instrument{Ticker: "A", BuyPrice: 1.8630, Quantity: 585780}, Facts: facts(1.9)},
		{Instrument: domain.Instrument{Ticker: "B", BuyPrice: 153650.0, Quantity: 2}, Facts: facts(151000)},
		{Instrument: domain.Instrument{Ticker: "C", BuyPrice: 103.45, Quantity: 9660}, Facts: facts(103.45)},
	}

	lines, total := Aggregate(results)
	require.Len(t, lines, 3)
	require.NotNil(t, total)

	sumInvested := decimal.Zero
	sumValue := decimal.Zero
	sumPnL := decimal.Zero
	for _, l := range lines {
		sumInvested = sumInvested.Add(l.Invested)
		sumValue = sumValue.Add(l.Value)
		sumPnL = sumPnL.Add(l.PnL)
	}

	assert.True(t, total.Invested.Equal(sumInvested))
	assert.True(t, total.Value.Equal(sumValue))
	assert.True(t, total.PnL.Equal(sumValue.Sub(sumInvested)))
	assert.True(t, total.PnL.Equal(sumPnL))
}
