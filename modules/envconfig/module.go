// Package envconfig exposes allow-listed environment values as a payload.
// Credentials stay out of pipeline documents: a module needing an API token
// declares a dependency on an envconfig instance and reads the value from the
// environment-sourced payload instead.
package envconfig

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/vk/tradegrid/internal/module"
	"github.com/vk/tradegrid/internal/payload"
	"github.com/vk/tradegrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler factory with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("envconfig", func() module.Handler { return &Source{} })
}

// Source reads a fixed allow-list of environment variables each cycle.
type Source struct {
	vars   []string
	prefix string
}

// Configure accepts "vars" (explicit variable names) and/or "prefix" (all
// variables with the prefix, exported without it). At least one must be set;
// exporting the entire environment is deliberately unsupported.
func (s *Source) Configure(cfg module.Config) error {
	s.vars = cfg.Strings("vars")
	s.prefix = cfg.String("prefix", "")
	if len(s.vars) == 0 && s.prefix == "" {
		return errors.New("either 'vars' or 'prefix' must be configured")
	}
	return nil
}

// Execute returns the current values of the allow-listed variables. Unset
// variables are simply absent from the payload.
func (s *Source) Execute(ctx context.Context, in module.Input) (any, error) {
	values := make(payload.Values)

	for _, name := range s.vars {
		if v, ok := os.LookupEnv(name); ok {
			values[name] = v
		}
	}

	if s.prefix != "" {
		for _, e := range os.Environ() {
			pair := strings.SplitN(e, "=", 2)
			if len(pair) == 2 && strings.HasPrefix(pair[0], s.prefix) {
				values[strings.TrimPrefix(pair[0], s.prefix)] = pair[1]
			}
		}
	}

	return values, nil
}
