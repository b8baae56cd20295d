package candlefeed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tradegrid/internal/module"
	"github.com/vk/tradegrid/internal/payload"
)

func baseConfig() module.Config {
	return module.Config{
		"symbol":      "BTCUSDT",
		"timeframe":   "1h",
		"bars":        50,
		"start_price": 100.0,
		"volatility":  0.02,
		"seed":        42,
	}
}

func TestConfigure(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		f := &Feed{}
		assert.NoError(t, f.Configure(baseConfig()))
	})

	t.Run("symbol is required", func(t *testing.T) {
		cfg := baseConfig()
		delete(cfg, "symbol")
		err := (&Feed{}).Configure(cfg)
		assert.ErrorContains(t, err, "invalid candlefeed config")
	})

	t.Run("timeframe must be a known label", func(t *testing.T) {
		cfg := baseConfig()
		cfg["timeframe"] = "3h"
		assert.Error(t, (&Feed{}).Configure(cfg))
	})

	t.Run("bars bounds", func(t *testing.T) {
		cfg := baseConfig()
		cfg["bars"] = 0
		assert.Error(t, (&Feed{}).Configure(cfg))

		cfg["bars"] = 10001
		assert.Error(t, (&Feed{}).Configure(cfg))
	})

	t.Run("start price must be positive", func(t *testing.T) {
		cfg := baseConfig()
		cfg["start_price"] = -1.0
		assert.Error(t, (&Feed{}).Configure(cfg))
	})
}

func TestExecute(t *testing.T) {
	series := func(t *testing.T, f *Feed) payload.PriceSeries {
		t.Helper()
		out, err := f.Execute(context.Background(), module.NewInput(nil))
		require.NoError(t, err)
		s, ok := out.(payload.PriceSeries)
		require.True(t, ok)
		return s
	}

	t.Run("produces the configured number of bars", func(t *testing.T) {
		f := &Feed{}
		require.NoError(t, f.Configure(baseConfig()))

		s := series(t, f)
		assert.Equal(t, "BTCUSDT", s.Symbol)
		assert.Equal(t, "1h", s.Timeframe)
		assert.Len(t, s.Bars, 50)

		last, ok := s.Last()
		require.True(t, ok)
		assert.Equal(t, s.Bars[49], last)
	})

	t.Run("same seed reproduces the same walk", func(t *testing.T) {
		a, b := &Feed{}, &Feed{}
		require.NoError(t, a.Configure(baseConfig()))
		require.NoError(t, b.Configure(baseConfig()))

		sa, sb := series(t, a), series(t, b)
		require.Len(t, sb.Bars, len(sa.Bars))
		for i := range sa.Bars {
			assert.True(t, sa.Bars[i].Close.Equal(sb.Bars[i].Close), "bar %d", i)
		}
	})

	t.Run("walk continues across cycles", func(t *testing.T) {
		f := &Feed{}
		require.NoError(t, f.Configure(baseConfig()))

		first := series(t, f)
		second := series(t, f)

		lastClose := first.Bars[len(first.Bars)-1].Close
		assert.True(t, second.Bars[0].Open.Equal(lastClose))
		assert.True(t, second.Bars[0].Timestamp.After(first.Bars[len(first.Bars)-1].Timestamp))
	})

	t.Run("bars are internally consistent", func(t *testing.T) {
		f := &Feed{}
		require.NoError(t, f.Configure(baseConfig()))

		for _, bar := range series(t, f).Bars {
			assert.True(t, bar.High.GreaterThanOrEqual(bar.Open))
			assert.True(t, bar.High.GreaterThanOrEqual(bar.Close))
			assert.True(t, bar.Low.LessThanOrEqual(bar.Open))
			assert.True(t, bar.Low.LessThanOrEqual(bar.Close))
			assert.True(t, bar.Volume.IsPositive())
		}
	})

	t.Run("reconfiguration resets the walk", func(t *testing.T) {
		f := &Feed{}
		require.NoError(t, f.Configure(baseConfig()))
		first := series(t, f)

		require.NoError(t, f.Configure(baseConfig()))
		again := series(t, f)

		assert.True(t, first.Bars[0].Open.Equal(again.Bars[0].Open))
	})
}
