// Package socketemit provides an alerting/monitoring module that emits the
// payloads it receives as a Socket.IO event. Optionally it waits for an
// acknowledgement event before reporting success.
package socketemit

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/tradegrid/internal/ctxlog"
	"github.com/vk/tradegrid/internal/module"
	"github.com/vk/tradegrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler factory with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("socketemit", func() module.Handler { return &Emitter{} })
}

// Emitter connects, emits and disconnects once per cycle.
type Emitter struct {
	rawURL             string
	namespace          string
	event              string
	ackEvent           string
	timeout            time.Duration
	insecureSkipVerify bool
}

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	value any
	err   error
}

// Configure accepts "url" (required), "namespace", "event", "ack_event",
// "timeout" and "insecure_skip_verify".
func (e *Emitter) Configure(cfg module.Config) error {
	e.rawURL = cfg.String("url", "")
	if e.rawURL == "" {
		return fmt.Errorf("'url' is required")
	}
	if _, err := url.Parse(e.rawURL); err != nil {
		return fmt.Errorf("invalid 'url': %w", err)
	}
	e.namespace = cfg.String("namespace", "/")
	e.event = cfg.String("event", "pipeline_cycle")
	e.ackEvent = cfg.String("ack_event", "")
	e.insecureSkipVerify = cfg.Bool("insecure_skip_verify", false)

	timeout, err := time.ParseDuration(cfg.String("timeout", "10s"))
	if err != nil {
		return fmt.Errorf("invalid 'timeout': %w", err)
	}
	e.timeout = timeout
	return nil
}

// Execute emits one event carrying the aggregated payloads.
func (e *Emitter) Execute(ctx context.Context, in module.Input) (any, error) {
	logger := ctxlog.FromContext(ctx).With("url", e.rawURL, "event", e.event)
	logger.Debug("Handler started")
	defer logger.Debug("Handler finished")

	var isConnected atomic.Bool

	done := make(chan opResult, 1)
	opCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	parsedURL, err := url.Parse(e.rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)

	if e.insecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	data := make(map[string]any)
	for _, slot := range in.Slots() {
		v, _ := in.Payload(slot)
		data[slot] = v
	}

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(e.namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Debug("Connected, emitting event", "namespace", e.namespace, "sid", io.Id())
		io.Emit(e.event, data)
		if e.ackEvent == "" {
			done <- opResult{}
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		done <- opResult{err: errs[0].(error)}
	})

	if e.ackEvent != "" {
		io.On(types.EventName(e.ackEvent), func(resp ...any) {
			var responseData any
			if len(resp) > 0 {
				responseData = resp[0]
			}
			done <- opResult{value: responseData}
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", e.ackEvent)
		}
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case res := <-done:
		return res.value, res.err
	}
}
