// Package testutil provides scripted module handlers and a shared execution
// journal for runtime tests.
package testutil

import (
	"context"
	"sync"

	"github.com/vk/tradegrid/internal/module"
	"github.com/vk/tradegrid/internal/registry"
)

// Journal records the order in which modules executed during a cycle. It is
// safe for concurrent use by the executor's worker pool.
type Journal struct {
	mu      sync.Mutex
	entries []string
}

// Record appends a module key to the journal.
func (j *Journal) Record(key string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, key)
}

// Entries returns a copy of the recorded execution order.
func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.entries))
	copy(out, j.entries)
	return out
}

// Index returns the position of key in the journal, or -1.
func (j *Journal) Index(key string) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i, e := range j.entries {
		if e == key {
			return i
		}
	}
	return -1
}

// Handler is a fully scriptable module handler. Zero-value fields fall back
// to succeeding with a nil payload.
type Handler struct {
	ConfigureFn func(cfg module.Config) error
	ExecuteFn   func(ctx context.Context, in module.Input) (any, error)
}

func (h *Handler) Configure(cfg module.Config) error {
	if h.ConfigureFn != nil {
		return h.ConfigureFn(cfg)
	}
	return nil
}

func (h *Handler) Execute(ctx context.Context, in module.Input) (any, error) {
	if h.ExecuteFn != nil {
		return h.ExecuteFn(ctx, in)
	}
	return nil, nil
}

// RegisterScripted registers a factory returning the exact given handler
// under the implementation key. Every instance constructed from the key
// shares the handler, which keeps scripted state observable from the test.
func RegisterScripted(r *registry.Registry, impl string, h *Handler) {
	r.Register(impl, func() module.Handler { return h })
}

// RegisterRecording registers a factory whose handler records its module key
// in the journal on every execution and returns the given payload. The key
// recorded is taken from the input-independent value passed at registration,
// so each impl key should be used by exactly one descriptor.
func RegisterRecording(r *registry.Registry, impl string, j *Journal, out any) {
	r.Register(impl, func() module.Handler {
		return &Handler{
			ExecuteFn: func(ctx context.Context, in module.Input) (any, error) {
				j.Record(impl)
				return out, nil
			},
		}
	})
}
