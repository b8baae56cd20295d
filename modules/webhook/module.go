// Package webhook provides an alerting module that POSTs the payloads it
// receives as a JSON envelope to a configured URL. Notification formatting
// belongs to the receiving service; this module only delivers.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vk/tradegrid/internal/ctxlog"
	"github.com/vk/tradegrid/internal/module"
	"github.com/vk/tradegrid/internal/payload"
	"github.com/vk/tradegrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler factory with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("webhook", func() module.Handler { return &Hook{} })
}

var validate = validator.New()

// hookConfig is the validated shape of the module's config block.
type hookConfig struct {
	URL     string `validate:"required,url"`
	Event   string `validate:"required"`
	Timeout time.Duration
}

// envelope is the JSON body delivered to the endpoint.
type envelope struct {
	Event    string         `json:"event"`
	Time     time.Time      `json:"time"`
	Payloads map[string]any `json:"payloads"`
}

// Hook delivers one envelope per cycle.
type Hook struct {
	cfg    hookConfig
	client *http.Client
}

// Configure validates the config block and builds the HTTP client.
func (h *Hook) Configure(cfg module.Config) error {
	timeout, err := time.ParseDuration(cfg.String("timeout", "10s"))
	if err != nil {
		return fmt.Errorf("invalid 'timeout': %w", err)
	}

	hc := hookConfig{
		URL:     cfg.String("url", ""),
		Event:   cfg.String("event", "pipeline_cycle"),
		Timeout: timeout,
	}
	if err := validate.Struct(hc); err != nil {
		return fmt.Errorf("invalid webhook config: %w", err)
	}

	h.cfg = hc
	h.client = &http.Client{Timeout: timeout}
	return nil
}

// Execute delivers the received payloads. Slots with no fresh payload are
// simply absent from the envelope.
func (h *Hook) Execute(ctx context.Context, in module.Input) (any, error) {
	logger := ctxlog.FromContext(ctx)

	payloads := make(map[string]any)
	for _, slot := range in.Slots() {
		v, _ := in.Payload(slot)
		payloads[slot] = v
	}

	body, err := json.Marshal(envelope{
		Event:    h.cfg.Event,
		Time:     time.Now().UTC(),
		Payloads: payloads,
	})
	if err != nil {
		return nil, fmt.Errorf("serializing envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("delivering to %s: %w", h.cfg.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("delivering to %s: unexpected status %d", h.cfg.URL, resp.StatusCode)
	}
	logger.Debug("Webhook delivered.", "url", h.cfg.URL, "status", resp.StatusCode, "slots", len(payloads))

	return payload.Values{"status": fmt.Sprint(resp.StatusCode)}, nil
}
