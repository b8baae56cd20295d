package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigAccessors(t *testing.T) {
	cfg := Config{
		"symbol":   "BTCUSDT",
		"bars":     float64(500), // HCL decodes numbers as float64
		"count":    42,
		"big":      int64(9000),
		"drift":    0.25,
		"enabled":  true,
		"vars":     []any{"API_KEY", "API_SECRET"},
		"typed":    []string{"a", "b"},
		"mixed":    []any{"a", 1},
		"not_bool": "yes",
	}

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "BTCUSDT", cfg.String("symbol", ""))
		assert.Equal(t, "1m", cfg.String("timeframe", "1m"))
		assert.Equal(t, "x", cfg.String("count", "x")) // wrong type falls back
	})

	t.Run("int accepts int, int64 and float64", func(t *testing.T) {
		assert.Equal(t, 500, cfg.Int("bars", 0))
		assert.Equal(t, 42, cfg.Int("count", 0))
		assert.Equal(t, 9000, cfg.Int("big", 0))
		assert.Equal(t, 7, cfg.Int("missing", 7))
	})

	t.Run("float", func(t *testing.T) {
		assert.Equal(t, 0.25, cfg.Float("drift", 0))
		assert.Equal(t, 42.0, cfg.Float("count", 0))
		assert.Equal(t, 1.5, cfg.Float("missing", 1.5))
	})

	t.Run("bool", func(t *testing.T) {
		assert.True(t, cfg.Bool("enabled", false))
		assert.False(t, cfg.Bool("missing", false))
		assert.True(t, cfg.Bool("not_bool", true))
	})

	t.Run("strings", func(t *testing.T) {
		assert.Equal(t, []string{"API_KEY", "API_SECRET"}, cfg.Strings("vars"))
		assert.Equal(t, []string{"a", "b"}, cfg.Strings("typed"))
		assert.Nil(t, cfg.Strings("mixed"))
		assert.Nil(t, cfg.Strings("missing"))
	})

	t.Run("has", func(t *testing.T) {
		assert.True(t, cfg.Has("symbol"))
		assert.False(t, cfg.Has("missing"))
	})
}

func TestInput(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		in := NewInput(nil)
		assert.True(t, in.Empty())
		assert.Empty(t, in.Slots())
		_, ok := in.Payload("price_data")
		assert.False(t, ok)
	})

	t.Run("slots are sorted", func(t *testing.T) {
		in := NewInput(map[string]any{"signals": 1, "levels": 2, "price_data": 3})
		assert.False(t, in.Empty())
		assert.Equal(t, []string{"levels", "price_data", "signals"}, in.Slots())

		v, ok := in.Payload("levels")
		assert.True(t, ok)
		assert.Equal(t, 2, v)
	})
}
