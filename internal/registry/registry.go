package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/tradegrid/internal/module"
)

// Factory constructs a fresh, unconfigured handler for one module instance.
type Factory func() module.Handler

// Module is the interface a built-in module package implements to be
// registered with the runtime.
type Module interface {
	Register(r *Registry)
}

// ResolutionError reports an implementation reference that matches no
// registered factory. It is fatal to whole-configuration assembly.
type ResolutionError struct {
	Impl string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no module implementation registered for %q", e.Impl)
}

// Registry maps implementation keys to module factories for a single
// application instance.
type Registry struct {
	factories map[string]Factory
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given implementation key. Registering
// the same key twice is a programmer error and panics at startup.
func (r *Registry) Register(impl string, f Factory) {
	if _, exists := r.factories[impl]; exists {
		panic(fmt.Sprintf("module factory with key '%s' already registered", impl))
	}
	slog.Debug("Registering module factory.", "impl", impl)
	r.factories[impl] = f
}

// Resolve returns the factory registered under the given implementation key,
// or a ResolutionError when none exists.
func (r *Registry) Resolve(impl string) (Factory, error) {
	f, ok := r.factories[impl]
	if !ok {
		return nil, &ResolutionError{Impl: impl}
	}
	return f, nil
}

// Keys returns all registered implementation keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
