// Package reconcile derives canonical price facts from raw market snapshots.
// Different instrument types populate different ISS fields, so both the
// current and the reference price are resolved through an ordered candidate
// table: the first present value passing its predicate wins. Keeping the
// precedence in a table rather than nested conditionals makes it auditable
// and testable in isolation.
package reconcile

import (
	"fmt"

	"github.com/okorolev/fundwatch/internal/domain"
)

// candidate is one entry of a fallback chain: a snapshot field name plus the
// predicate its value must satisfy to be usable.
type candidate struct {
	field string
	ok    func(float64) bool
}

func positive(v float64) bool { return v > 0 }

// Current-price precedence: volume-weighted average first (the natural price
// basis for funds), then last trade, then the generic market price, then the
// session close.
var currentCandidates = []candidate{
	{"WAPRICE", positive},
	{"LAST", positive},
	{"MARKETPRICE", positive},
	{"CLOSEPRICE", positive},
}

// Reference-price precedence: the official previous close, then the
// volume-weighted previous-session reference.
var referenceCandidates = []candidate{
	{"PREVPRICE", positive},
	{"PREVWAPRICE", positive},
}

// Precomputed day-delta fields. Both must be present to be used; any sign
// (including zero) is valid for a delta.
const (
	deltaAbsField = "WAPTOPREVWAPRICE"
	deltaPctField = "WAPTOPREVWAPRICEPRCNT"
)

// Reconcile turns a snapshot into canonical PriceFacts.
//
// When no usable current price exists the whole result is "no data"
// (domain.ErrNoQuote); no partial facts are produced. When the feed carries
// its own precomputed day delta, that value is used verbatim in preference to
// recomputing from current and reference, since the feed's delta basis can
// differ subtly from a plain previous-close diff. Otherwise the change is
// computed from current and reference, but only when the reference is present
// and non-zero.
func Reconcile(snap domain.MarketSnapshot) (*domain.PriceFacts, error) {
	current, ok := resolve(snap, currentCandidates)
	if !ok {
		return nil, fmt.Errorf("reconcile: no current price: %w", domain.ErrNoQuote)
	}

	facts := &domain.PriceFacts{Current: current}

	if ref, ok := resolve(snap, referenceCandidates); ok {
		facts.Reference = &ref
	}

	if abs, pct, ok := sourceDelta(snap); ok {
		facts.DayChange = &abs
		facts.DayChangePct = &pct
		facts.SourceDelta = true
		return facts, nil
	}

	if facts.Reference != nil && *facts.Reference != 0 {
		abs := current - *facts.Reference
		pct := abs / *facts.Reference * 100
		facts.DayChange = &abs
		facts.DayChangePct = &pct
	}

	return facts, nil
}

// resolve walks a candidate table and returns the first usable value.
func resolve(snap domain.MarketSnapshot, table []candidate) (float64, bool) {
	for _, c := range table {
		if v, ok := snap.Value(c.field); ok && c.ok(v) {
			return v, true
		}
	}
	return 0, false
}

// sourceDelta returns the feed's precomputed day change when both the
// absolute and the percentage field are present.
func sourceDelta(snap domain.MarketSnapshot) (abs, pct float64, ok bool) {
	abs, okAbs := snap.Value(deltaAbsField)
	pct, okPct := snap.Value(deltaPctField)
	if !okAbs || !okPct {
		return 0, 0, false
	}
	return abs, pct, true
}
