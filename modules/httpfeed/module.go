// Package httpfeed provides a data-collection source fetching an OHLCV
// series as JSON over HTTP. The endpoint's protocol is the module's own
// business; the pipeline only sees the resulting price series.
package httpfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/vk/tradegrid/internal/ctxlog"
	"github.com/vk/tradegrid/internal/module"
	"github.com/vk/tradegrid/internal/payload"
	"github.com/vk/tradegrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler factory with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("httpfeed", func() module.Handler { return &Feed{} })
}

var validate = validator.New()

// feedConfig is the validated shape of the module's config block.
type feedConfig struct {
	URL       string `validate:"required,url"`
	Symbol    string `validate:"required"`
	Timeframe string `validate:"required"`
	Timeout   time.Duration
}

// wireBar is the JSON shape one series element arrives in.
type wireBar struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

// Feed fetches the configured endpoint once per cycle.
type Feed struct {
	cfg    feedConfig
	client *http.Client
}

// Configure validates the config block and builds the HTTP client.
func (f *Feed) Configure(cfg module.Config) error {
	timeout, err := time.ParseDuration(cfg.String("timeout", "10s"))
	if err != nil {
		return fmt.Errorf("invalid 'timeout': %w", err)
	}

	fc := feedConfig{
		URL:       cfg.String("url", ""),
		Symbol:    cfg.String("symbol", ""),
		Timeframe: cfg.String("timeframe", "1m"),
		Timeout:   timeout,
	}
	if err := validate.Struct(fc); err != nil {
		return fmt.Errorf("invalid httpfeed config: %w", err)
	}

	f.cfg = fc
	f.client = &http.Client{Timeout: timeout}
	return nil
}

// Execute fetches the endpoint and translates the JSON bars into a price
// series.
func (f *Feed) Execute(ctx context.Context, in module.Input) (any, error) {
	logger := ctxlog.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", f.cfg.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", f.cfg.URL, resp.StatusCode)
	}

	var wire []wireBar
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decoding series: %w", err)
	}
	logger.Debug("Fetched price series.", "url", f.cfg.URL, "bars", len(wire))

	bars := make([]payload.PriceBar, 0, len(wire))
	for _, b := range wire {
		bars = append(bars, payload.PriceBar(b))
	}

	return payload.PriceSeries{
		Symbol:      f.cfg.Symbol,
		Timeframe:   f.cfg.Timeframe,
		Bars:        bars,
		LastUpdated: time.Now().UTC(),
	}, nil
}
