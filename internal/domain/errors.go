package domain

import "errors"

var (
	// ErrNoQuote signals that the data source returned no usable quote row
	// for an instrument: market closed, unknown ticker/board pair, or an
	// empty marketdata block. Transport and decode faults collapse into it
	// too — the caller does not need to tell them apart.
	ErrNoQuote = errors.New("no trade data")

	// ErrNotFound is returned by caches when a key has no stored value.
	ErrNotFound = errors.New("not found")
)
