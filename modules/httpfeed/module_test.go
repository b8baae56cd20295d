package httpfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tradegrid/internal/module"
	"github.com/vk/tradegrid/internal/payload"
)

const seriesBody = `[
  {"timestamp": "2026-01-02T00:00:00Z", "open": "100.5", "high": "101.2", "low": "99.8", "close": "100.9", "volume": "1500"},
  {"timestamp": "2026-01-02T01:00:00Z", "open": "100.9", "high": "102.0", "low": "100.1", "close": "101.7", "volume": "1800"}
]`

func TestConfigure(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		err := (&Feed{}).Configure(module.Config{
			"url":    "https://example.com/ohlcv",
			"symbol": "BTCUSDT",
		})
		assert.NoError(t, err)
	})

	t.Run("url is required and must be a url", func(t *testing.T) {
		err := (&Feed{}).Configure(module.Config{"symbol": "BTCUSDT"})
		assert.ErrorContains(t, err, "invalid httpfeed config")

		err = (&Feed{}).Configure(module.Config{"url": "::not-a-url", "symbol": "BTCUSDT"})
		assert.Error(t, err)
	})

	t.Run("symbol is required", func(t *testing.T) {
		err := (&Feed{}).Configure(module.Config{"url": "https://example.com"})
		assert.Error(t, err)
	})

	t.Run("bad timeout duration", func(t *testing.T) {
		err := (&Feed{}).Configure(module.Config{
			"url":     "https://example.com",
			"symbol":  "BTCUSDT",
			"timeout": "soon",
		})
		assert.ErrorContains(t, err, "invalid 'timeout'")
	})
}

func TestExecute(t *testing.T) {
	t.Run("fetches and translates the series", func(t *testing.T) {
		var gotAccept string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAccept = r.Header.Get("Accept")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(seriesBody))
		}))
		defer srv.Close()

		f := &Feed{}
		require.NoError(t, f.Configure(module.Config{
			"url":       srv.URL,
			"symbol":    "BTCUSDT",
			"timeframe": "1h",
		}))

		out, err := f.Execute(context.Background(), module.NewInput(nil))
		require.NoError(t, err)

		series, ok := out.(payload.PriceSeries)
		require.True(t, ok)
		assert.Equal(t, "application/json", gotAccept)
		assert.Equal(t, "BTCUSDT", series.Symbol)
		assert.Equal(t, "1h", series.Timeframe)
		require.Len(t, series.Bars, 2)
		assert.Equal(t, "100.5", series.Bars[0].Open.String())
		assert.Equal(t, "101.7", series.Bars[1].Close.String())
	})

	t.Run("non-200 status fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		f := &Feed{}
		require.NoError(t, f.Configure(module.Config{"url": srv.URL, "symbol": "BTCUSDT"}))

		_, err := f.Execute(context.Background(), module.NewInput(nil))
		assert.ErrorContains(t, err, "unexpected status 502")
	})

	t.Run("malformed body fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{not json"))
		}))
		defer srv.Close()

		f := &Feed{}
		require.NoError(t, f.Configure(module.Config{"url": srv.URL, "symbol": "BTCUSDT"}))

		_, err := f.Execute(context.Background(), module.NewInput(nil))
		assert.ErrorContains(t, err, "decoding series")
	})

	t.Run("unreachable endpoint fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // shut it down before executing

		f := &Feed{}
		require.NoError(t, f.Configure(module.Config{"url": srv.URL, "symbol": "BTCUSDT"}))

		_, err := f.Execute(context.Background(), module.NewInput(nil))
		assert.ErrorContains(t, err, "fetching")
	})
}
