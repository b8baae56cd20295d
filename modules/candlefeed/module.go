// Package candlefeed provides a data-collection source producing a
// deterministic synthetic OHLCV series: a seeded random walk that extends by
// a fixed number of bars each cycle. It carries no market knowledge; it
// exists so pipelines can run offline and so the runtime has a reproducible
// source in tests and demos.
package candlefeed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/vk/tradegrid/internal/module"
	"github.com/vk/tradegrid/internal/payload"
	"github.com/vk/tradegrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler factory with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("candlefeed", func() module.Handler { return &Feed{} })
}

var validate = validator.New()

// feedConfig is the validated shape of the module's config block.
type feedConfig struct {
	Symbol     string  `validate:"required"`
	Timeframe  string  `validate:"required,oneof=1m 5m 15m 1h 4h 1d"`
	Bars       int     `validate:"min=1,max=10000"`
	StartPrice float64 `validate:"gt=0"`
	Drift      float64
	Volatility float64 `validate:"gte=0"`
	Seed       int64
}

// timeframes maps the supported timeframe labels to bar durations.
var timeframes = map[string]time.Duration{
	"1m":  time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"1h":  time.Hour,
	"4h":  4 * time.Hour,
	"1d":  24 * time.Hour,
}

// Feed generates the synthetic walk. Reconfiguring resets the walk to its
// starting state.
type Feed struct {
	cfg   feedConfig
	rng   *rand.Rand
	last  float64
	clock time.Time
}

// Configure validates the config block and (re)seeds the walk.
func (f *Feed) Configure(cfg module.Config) error {
	fc := feedConfig{
		Symbol:     cfg.String("symbol", ""),
		Timeframe:  cfg.String("timeframe", "1m"),
		Bars:       cfg.Int("bars", 100),
		StartPrice: cfg.Float("start_price", 100),
		Drift:      cfg.Float("drift", 0),
		Volatility: cfg.Float("volatility", 0.01),
		Seed:       int64(cfg.Int("seed", 1)),
	}
	if err := validate.Struct(fc); err != nil {
		return fmt.Errorf("invalid candlefeed config: %w", err)
	}

	f.cfg = fc
	f.rng = rand.New(rand.NewSource(fc.Seed))
	f.last = fc.StartPrice
	f.clock = time.Now().UTC().Truncate(timeframes[fc.Timeframe])
	return nil
}

// Execute extends the walk by the configured number of bars and returns the
// resulting series.
func (f *Feed) Execute(ctx context.Context, in module.Input) (any, error) {
	step := timeframes[f.cfg.Timeframe]
	bars := make([]payload.PriceBar, 0, f.cfg.Bars)

	for i := 0; i < f.cfg.Bars; i++ {
		open := f.last
		change := f.cfg.Drift + f.cfg.Volatility*f.rng.NormFloat64()
		close := open * (1 + change)
		if close <= 0 {
			close = open
		}
		high := max(open, close) * (1 + f.cfg.Volatility*f.rng.Float64()/2)
		low := min(open, close) * (1 - f.cfg.Volatility*f.rng.Float64()/2)
		volume := 1000 * (1 + f.rng.Float64())

		bars = append(bars, payload.PriceBar{
			Timestamp: f.clock,
			Open:      decimal.NewFromFloat(open),
			High:      decimal.NewFromFloat(high),
			Low:       decimal.NewFromFloat(low),
			Close:     decimal.NewFromFloat(close),
			Volume:    decimal.NewFromFloat(volume),
		})

		f.last = close
		f.clock = f.clock.Add(step)
	}

	return payload.PriceSeries{
		Symbol:      f.cfg.Symbol,
		Timeframe:   f.cfg.Timeframe,
		Bars:        bars,
		LastUpdated: time.Now().UTC(),
	}, nil
}
