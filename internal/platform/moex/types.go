package moex

import (
	"encoding/json"

	"github.com/okorolev/fundwatch/internal/domain"
)

// issResponse mirrors the relevant slice of an ISS securities response when
// requested with iss.meta=off&iss.only=marketdata: a "marketdata" object
// carrying a column-name list and positional data rows.
type issResponse struct {
	MarketData issBlock `json:"marketdata"`
}

type issBlock struct {
	Columns []string            `json:"columns"`
	Data    [][]json.RawMessage `json:"data"`
}

// toSnapshot converts the first data row into a MarketSnapshot. Null and
// non-numeric cells are skipped rather than rejected; a row shorter than the
// column list simply yields fewer fields. Returns false when there is no row
// at all.
func (b issBlock) toSnapshot() (domain.MarketSnapshot, bool) {
	if len(b.Data) == 0 {
		return nil, false
	}

	row := b.Data[0]
	snap := make(domain.MarketSnapshot, len(b.Columns))
	for i, name := range b.Columns {
		if i >= len(row) {
			break
		}
		var v float64
		if err := json.Unmarshal(row[i], &v); err != nil {
			// null, string, or otherwise non-numeric: treat as absent.
			continue
		}
		snap[name] = v
	}
	return snap, true
}
