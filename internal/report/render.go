// Package report renders the reconciled run results into the final message
// text. Rendering is deterministic: identical inputs produce byte-identical
// output, instruments appear in registry order, and the portfolio summary,
// when present, comes last.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/okorolev/fundwatch/internal/domain"
	"github.com/okorolev/fundwatch/internal/portfolio"
)

// Currency sign appended to every monetary figure.
const rouble = "₽"

// Renderer holds the presentation settings that do not change between runs.
type Renderer struct {
	title string
	loc   *time.Location
}

// NewRenderer creates a Renderer with the given report title and timestamp
// location. A nil location falls back to UTC.
func NewRenderer(title string, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{title: title, loc: loc}
}

// Render produces the full report text for one run: header with timestamp,
// one block per instrument in input order, and the portfolio summary when a
// total exists. Blocks are separated by blank lines.
func (r *Renderer) Render(ts time.Time, results []domain.InstrumentFacts, total *domain.PortfolioTotal) string {
	lines := []string{
		r.title,
		ts.In(r.loc).Format("02.01.2006 15:04"),
		"",
	}

	for _, res := range results {
		lines = append(lines, r.instrumentBlock(res)...)
		lines = append(lines, "")
	}

	if total != nil {
		lines = append(lines,
			"💼 Итого по портфелю",
			fmt.Sprintf("Стоимость: %s %s", money(total.Value), rouble),
			fmt.Sprintf("Результат: %s %s %s (%s%%)",
				trend(total.PnL.IsNegative()), signedMoney(total.PnL), rouble, signedDecimalPct(total.PnLPct)),
		)
	} else {
		// Drop the trailing separator after the last instrument block.
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

// instrumentBlock renders one instrument: name and ticker, then either the
// explicit no-data line or price, quantity, day change, and position P&L.
func (r *Renderer) instrumentBlock(res domain.InstrumentFacts) []string {
	inst := res.Instrument
	lines := []string{fmt.Sprintf("*%s* (`%s`)", inst.Name, inst.Ticker)}

	if !res.Available() {
		return append(lines, "нет торговых данных")
	}

	facts := res.Facts
	lines = append(lines, fmt.Sprintf("Цена пая: %s %s", price(facts.Current), rouble))

	if inst.Quantity > 0 {
		lines = append(lines, fmt.Sprintf("Количество паёв: %s", quantity(inst.Quantity)))
	}

	if facts.HasChange() {
		lines = append(lines, fmt.Sprintf("За день: %s %s %s (%s%%)",
			trend(*facts.DayChange < 0), signedPrice(*facts.DayChange), rouble, signedPct(*facts.DayChangePct)))
	} else {
		lines = append(lines, "За день: нет данных")
	}

	if inst.TracksPnL() {
		line := portfolio.Line(inst, facts.Current)
		lines = append(lines, fmt.Sprintf("С покупки (всего): %s %s %s (%s%%)",
			trend(line.PnL.IsNegative()), signedMoney(line.PnL), rouble, signedDecimalPct(line.PnLPct)))
	}

	return lines
}
