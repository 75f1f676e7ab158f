package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchUSD_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"result": "success",
			"time_last_update_unix": 1700000000,
			"time_last_update_utc": "Tue, 14 Nov 2023 00:00:00 +0000",
			"rates": {"USD": 1, "JPY": 151.35, "EUR": 0.93}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	rates, err := client.FetchUSD(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 151.35, rates.JPY, 0.0001)
	assert.Equal(t, int64(1700000000), rates.UpdatedUnix)
	assert.Equal(t, "Tue, 14 Nov 2023 00:00:00 +0000", rates.UpdatedUTC)
}

func TestFetchUSD_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchUSD(context.Background())
	assert.Error(t, err)
}

func TestFetchUSD_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result": "error", "error-type": "invalid-key"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchUSD(context.Background())
	assert.Error(t, err)
}

func TestFetchUSD_MissingJPY(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result": "success", "rates": {"USD": 1, "EUR": 0.93}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchUSD(context.Background())
	assert.Error(t, err)
}

func TestFetchUSD_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchUSD(context.Background())
	assert.Error(t, err)
}

func TestFetchUSD_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result": "success", "rates": {"JPY": 150}}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL)
	_, err := client.FetchUSD(ctx)
	assert.Error(t, err)
}
