package domain

// InstrumentFacts pairs a registry entry with its reconciled price facts for
// one run. Facts is nil when the quote was unavailable or carried no usable
// price; such entries still appear in the report but never in totals.
type InstrumentFacts struct {
	Instrument Instrument
	Facts      *PriceFacts
}

// Available reports whether a usable quote was obtained.
func (r InstrumentFacts) Available() bool {
	return r.Facts != nil
}
