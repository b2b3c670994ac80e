package domain

// MarketSnapshot is the normalized view of one quote response: field name to
// numeric value, for the first data row only. Cells that were null or
// non-numeric in the source are simply absent, so presence in the map is the
// single "has a value" signal downstream code consults. Zero and negative
// values are kept — day-delta fields are legitimately signed.
type MarketSnapshot map[string]float64

// Value returns the snapshot value for field and whether it was present.
func (s MarketSnapshot) Value(field string) (float64, bool) {
	v, ok := s[field]
	return v, ok
}

// PriceFacts is the canonical per-instrument price tuple derived from a
// snapshot. Current is always set; a snapshot that yields no usable current
// price produces no PriceFacts at all rather than a partially filled one.
// DayChange and DayChangePct are populated together or not at all.
type PriceFacts struct {
	Current      float64
	Reference    *float64
	DayChange    *float64
	DayChangePct *float64
	// SourceDelta marks that the day change was taken verbatim from the
	// feed's precomputed delta fields instead of being recomputed from
	// current and reference.
	SourceDelta bool
}

// HasChange reports whether a day change could be established.
func (f *PriceFacts) HasChange() bool {
	return f.DayChange != nil && f.DayChangePct != nil
}
