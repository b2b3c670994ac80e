package moex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okorolev/fundwatch/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 0)
}

func TestFetchParsesFirstRow(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/iss/engines/stock/markets/shares/boards/TQTF/securities/LQDT.json", r.URL.Path)
		assert.Equal(t, "off", r.URL.Query().Get("iss.meta"))
		assert.Equal(t, "marketdata", r.URL.Query().Get("iss.only"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"marketdata":{
			"columns":["WAPRICE","LAST","PREVPRICE","SECID"],
			"data":[[1.9,null,1.89,"LQDT"],[9.99,9.99,9.99,"LQDT"]]
		}}`))
	})

	snap, err := client.Fetch(context.Background(), "TQTF", "LQDT")
	require.NoError(t, err)

	v, ok := snap.Value("WAPRICE")
	require.True(t, ok)
	assert.Equal(t, 1.9, v)

	v, ok = snap.Value("PREVPRICE")
	require.True(t, ok)
	assert.Equal(t, 1.89, v)

	// Null cells are absent, not zero.
	_, ok = snap.Value("LAST")
	assert.False(t, ok)

	// Non-numeric cells are absent as well.
	_, ok = snap.Value("SECID")
	assert.False(t, ok)

	// Only the first row is consulted.
	v, _ = snap.Value("WAPRICE")
	assert.NotEqual(t, 9.99, v)
}

func TestFetchEmptyDataIsNoQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"marketdata":{"columns":["WAPRICE"],"data":[]}}`))
	})

	_, err := client.Fetch(context.Background(), "TQTF", "LQDT")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoQuote))
}

func TestFetchMissingMarketdataIsNoQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.Fetch(context.Background(), "TQTF", "LQDT")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoQuote))
}

func TestFetchMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	_, err := client.Fetch(context.Background(), "TQTF", "LQDT")
	assert.Error(t, err)
}

func TestFetchHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Fetch(context.Background(), "TQTF", "LQDT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestFetchRejectsEmptyArguments(t *testing.T) {
	client := NewClient("http://unused", 0)

	_, err := client.Fetch(context.Background(), "", "LQDT")
	assert.Error(t, err)

	_, err = client.Fetch(context.Background(), "TQTF", "")
	assert.Error(t, err)
}

func TestFetchShortRow(t *testing.T) {
	// A row shorter than the column list yields only the cells it has.
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"marketdata":{"columns":["WAPRICE","LAST","PREVPRICE"],"data":[[1.9]]}}`))
	})

	snap, err := client.Fetch(context.Background(), "TQTF", "LQDT")
	require.NoError(t, err)

	_, ok := snap.Value("WAPRICE")
	assert.True(t, ok)
	_, ok = snap.Value("PREVPRICE")
	assert.False(t, ok)
}
