package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okorolev/fundwatch/internal/domain"
)

func TestReconcileCurrentPricePrecedence(t *testing.T) {
	tests := []struct {
		name string
		snap domain.MarketSnapshot
		want float64
	}{
		{
			name: "waprice wins over everything",
			snap: domain.MarketSnapshot{"WAPRICE": 1.9, "LAST": 1.95, "MARKETPRICE": 1.97, "CLOSEPRICE": 1.98},
			want: 1.9,
		},
		{
			name: "last used when waprice absent",
			snap: domain.MarketSnapshot{"LAST": 1.95, "MARKETPRICE": 1.97},
			want: 1.95,
		},
		{
			name: "zero waprice is skipped",
			snap: domain.MarketSnapshot{"WAPRICE": 0, "LAST": 1.95},
			want: 1.95,
		},
		{
			name: "marketprice fallback",
			snap: domain.MarketSnapshot{"MARKETPRICE": 1.97},
			want: 1.97,
		},
		{
			name: "closeprice is the last resort",
			snap: domain.MarketSnapshot{"CLOSEPRICE": 1.98},
			want: 1.98,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts, err := Reconcile(tt.snap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, facts.Current)
		})
	}
}

func TestReconcileNoCurrentPrice(t *testing.T) {
	tests := []struct {
		name string
		snap domain.MarketSnapshot
	}{
		{"empty snapshot", domain.MarketSnapshot{}},
		{"only zero prices", domain.MarketSnapshot{"WAPRICE": 0, "LAST": 0}},
		{"only reference fields", domain.MarketSnapshot{"PREVPRICE": 1.89}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts, err := Reconcile(tt.snap)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrNoQuote))
			assert.Nil(t, facts)
		})
	}
}

func TestReconcileReferencePrecedence(t *testing.T) {
	facts, err := Reconcile(domain.MarketSnapshot{"LAST": 1.9, "PREVPRICE": 1.89, "PREVWAPRICE": 1.88})
	require.NoError(t, err)
	require.NotNil(t, facts.Reference)
	assert.Equal(t, 1.89, *facts.Reference)

	facts, err = Reconcile(domain.MarketSnapshot{"LAST": 1.9, "PREVWAPRICE": 1.88})
	require.NoError(t, err)
	require.NotNil(t, facts.Reference)
	assert.Equal(t, 1.88, *facts.Reference)
}

func TestReconcileComputedChange(t *testing.T) {
	facts, err := Reconcile(domain.MarketSnapshot{"WAPRICE": 1.9, "PREVPRICE": 1.89})
	require.NoError(t, err)
	require.True(t, facts.HasChange())
	assert.False(t, facts.SourceDelta)
	assert.InDelta(t, 0.01, *facts.DayChange, 1e-9)
	assert.InDelta(t, 0.5291005291, *facts.DayChangePct, 1e-9)
}

func TestReconcileSourceDeltaPreferred(t *testing.T) {
	// Feed-provided delta wins even when a reference is present and a
	// recomputation would give a different value.
	snap := domain.MarketSnapshot{
		"WAPRICE":               1.9,
		"PREVPRICE":             1.89,
		"WAPTOPREVWAPRICE":      0.0123,
		"WAPTOPREVWAPRICEPRCNT": 0.65,
	}
	facts, err := Reconcile(snap)
	require.NoError(t, err)
	require.True(t, facts.HasChange())
	assert.True(t, facts.SourceDelta)
	assert.Equal(t, 0.0123, *facts.DayChange)
	assert.Equal(t, 0.65, *facts.DayChangePct)
}

func TestReconcileSourceDeltaZeroIsValid(t *testing.T) {
	snap := domain.MarketSnapshot{
		"WAPRICE":               1.9,
		"WAPTOPREVWAPRICE":      0,
		"WAPTOPREVWAPRICEPRCNT": 0,
	}
	facts, err := Reconcile(snap)
	require.NoError(t, err)
	require.True(t, facts.HasChange())
	assert.True(t, facts.SourceDelta)
	assert.Equal(t, 0.0, *facts.DayChange)
}

func TestReconcileIncompleteSourceDeltaRecomputes(t *testing.T) {
	// Only one of the two delta fields: fall back to current/reference.
	snap := domain.MarketSnapshot{
		"WAPRICE":          1.9,
		"PREVPRICE":        1.89,
		"WAPTOPREVWAPRICE": 0.0123,
	}
	facts, err := Reconcile(snap)
	require.NoError(t, err)
	require.True(t, facts.HasChange())
	assert.False(t, facts.SourceDelta)
	assert.InDelta(t, 0.01, *facts.DayChange, 1e-9)
}

func TestReconcileNoReferenceNoChange(t *testing.T) {
	tests := []struct {
		name string
		snap domain.MarketSnapshot
	}{
		{"reference absent", domain.MarketSnapshot{"LAST": 1.9}},
		{"reference zero is degenerate", domain.MarketSnapshot{"LAST": 1.9, "PREVPRICE": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts, err := Reconcile(tt.snap)
			require.NoError(t, err)
			assert.False(t, facts.HasChange())
			assert.Nil(t, facts.DayChange)
			assert.Nil(t, facts.DayChangePct)
		})
	}
}

func TestReconcileNegativeChange(t *testing.T) {
	facts, err := Reconcile(domain.MarketSnapshot{"WAPRICE": 1.85, "PREVPRICE": 1.9})
	require.NoError(t, err)
	require.True(t, facts.HasChange())
	assert.InDelta(t, -0.05, *facts.DayChange, 1e-9)
	assert.Negative(t, *facts.DayChangePct)
}
