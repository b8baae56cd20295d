// Package staticlevels provides a level-identification module whose levels
// come straight from its config block rather than from any detection
// algorithm. When wired to a price source it annotates each level with how
// often the series has touched it.
package staticlevels

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vk/tradegrid/internal/module"
	"github.com/vk/tradegrid/internal/payload"
	"github.com/vk/tradegrid/internal/registry"
)

// PriceSlot is the dependency slot an instance may wire to a data-collection
// module to get touch counts.
const PriceSlot = "price_data"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler factory with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("staticlevels", func() module.Handler { return &Levels{} })
}

// Levels emits the configured level set each cycle.
type Levels struct {
	symbol    string
	timeframe string
	levels    []payload.Level
}

// Configure reads "symbol", "timeframe" and the "levels" list, each entry a
// map with "price" (required), "type" (support|resistance) and "strength".
func (l *Levels) Configure(cfg module.Config) error {
	l.symbol = cfg.String("symbol", "")
	if l.symbol == "" {
		return fmt.Errorf("'symbol' is required")
	}
	l.timeframe = cfg.String("timeframe", "1m")

	raw, ok := cfg["levels"].([]any)
	if !ok || len(raw) == 0 {
		return fmt.Errorf("'levels' must be a non-empty list")
	}

	now := time.Now().UTC()
	levels := make([]payload.Level, 0, len(raw))
	for i, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("levels[%d]: must be a mapping", i)
		}
		lc := module.Config(entry)

		price := lc.Float("price", 0)
		if price <= 0 {
			return fmt.Errorf("levels[%d]: 'price' must be positive", i)
		}
		levelType := payload.LevelType(lc.String("type", string(payload.LevelSupport)))
		if levelType != payload.LevelSupport && levelType != payload.LevelResistance {
			return fmt.Errorf("levels[%d]: 'type' must be 'support' or 'resistance'", i)
		}
		strength := lc.Float("strength", 0.5)
		if strength < 0 || strength > 1 {
			return fmt.Errorf("levels[%d]: 'strength' must be within [0, 1]", i)
		}

		levels = append(levels, payload.Level{
			Price:     decimal.NewFromFloat(price),
			Type:      levelType,
			Strength:  strength,
			CreatedAt: now,
		})
	}

	l.levels = levels
	return nil
}

// Execute returns the configured levels. When a price series is wired in,
// each level's touch count and last-tested time are refreshed from the bars
// whose range crosses the level.
func (l *Levels) Execute(ctx context.Context, in module.Input) (any, error) {
	levels := make([]payload.Level, len(l.levels))
	copy(levels, l.levels)

	if v, ok := in.Payload(PriceSlot); ok {
		if series, ok := v.(payload.PriceSeries); ok {
			annotate(levels, series)
		}
	}

	return payload.LevelSet{
		Symbol:      l.symbol,
		Timeframe:   l.timeframe,
		Levels:      levels,
		LastUpdated: time.Now().UTC(),
	}, nil
}

// annotate counts, per level, the bars whose low-high range includes the
// level price.
func annotate(levels []payload.Level, series payload.PriceSeries) {
	for i := range levels {
		price := levels[i].Price
		for _, bar := range series.Bars {
			if bar.Low.LessThanOrEqual(price) && bar.High.GreaterThanOrEqual(price) {
				levels[i].TimesTested++
				tested := bar.Timestamp
				levels[i].LastTested = &tested
			}
		}
	}
}
