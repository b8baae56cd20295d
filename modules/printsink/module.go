// Package printsink provides a sink module that prints every payload it
// receives. It attaches to any stage and is mostly useful for wiring checks
// and demos.
package printsink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/tradegrid/internal/ctxlog"
	"github.com/vk/tradegrid/internal/module"
	"github.com/vk/tradegrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler factory with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("printsink", func() module.Handler { return &Sink{} })
}

// Sink prints each input slot's payload as indented JSON.
type Sink struct {
	prefix string
}

// Configure accepts an optional "prefix" printed before every payload line.
func (s *Sink) Configure(cfg module.Config) error {
	s.prefix = cfg.String("prefix", "")
	return nil
}

// Execute prints all received payloads, in sorted slot order for consistent
// output, and produces no payload of its own.
func (s *Sink) Execute(ctx context.Context, in module.Input) (any, error) {
	logger := ctxlog.FromContext(ctx)

	if in.Empty() {
		fmt.Println(s.prefix + "      (no inputs)")
		return nil, nil
	}

	for _, slot := range in.Slots() {
		v, _ := in.Payload(slot)
		rendered, err := json.MarshalIndent(v, "      ", "  ")
		if err != nil {
			logger.Warn("Payload not serializable, printing raw.", "slot", slot, "error", err)
			fmt.Printf("%s      %s = %v\n", s.prefix, slot, v)
			continue
		}
		fmt.Printf("%s      %s = %s\n", s.prefix, slot, rendered)
	}

	return nil, nil
}
