package payload

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceBar is a single OHLCV candle.
type PriceBar struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

// PriceSeries is a collection of price bars with metadata, as produced by
// data-collection modules.
type PriceSeries struct {
	Symbol      string     `json:"symbol"`
	Timeframe   string     `json:"timeframe"` // e.g. "1m", "5m", "1h", "1d"
	Bars        []PriceBar `json:"bars"`
	LastUpdated time.Time  `json:"last_updated"`
}

func (PriceSeries) Kind() Kind { return KindPriceSeries }

// Last returns the most recent bar, if any.
func (s PriceSeries) Last() (PriceBar, bool) {
	if len(s.Bars) == 0 {
		return PriceBar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// LevelType classifies a price level.
type LevelType string

const (
	LevelSupport    LevelType = "support"
	LevelResistance LevelType = "resistance"
)

// Level is a support or resistance price level.
type Level struct {
	Price       decimal.Decimal `json:"price"`
	Type        LevelType       `json:"type"`
	Strength    float64         `json:"strength"` // 0.0 to 1.0
	CreatedAt   time.Time       `json:"created_at"`
	LastTested  *time.Time      `json:"last_tested,omitempty"`
	TimesTested int             `json:"times_tested"`
}

// LevelSet is a collection of identified price levels, as produced by
// level-identification modules.
type LevelSet struct {
	Symbol      string    `json:"symbol"`
	Timeframe   string    `json:"timeframe"`
	Levels      []Level   `json:"levels"`
	LastUpdated time.Time `json:"last_updated"`
}

func (LevelSet) Kind() Kind { return KindLevels }
