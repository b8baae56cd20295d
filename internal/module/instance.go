package module

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vk/tradegrid/internal/ctxlog"
)

// State is the lifecycle state of a module instance.
type State int32

const (
	StateCreated State = iota
	StateConfigured
	StateActive
	StateDeactivated
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateConfigured:
		return "configured"
	case StateActive:
		return "active"
	case StateDeactivated:
		return "deactivated"
	}
	return "unknown"
}

// Instance is a live module created from a descriptor. It wraps the
// implementation's Handler and owns everything the runtime needs to know
// about it: identity, lifecycle state and dependency wiring. Instances do not
// own their dependencies; the assembler does.
type Instance struct {
	id       string
	stage    Stage
	critical bool
	handler  Handler

	mu    sync.RWMutex
	state State
	cfg   Config
	deps  map[string]*Instance
}

// NewInstance wraps a handler in an unconfigured, inactive instance with an
// empty dependency map.
func NewInstance(stage Stage, id string, critical bool, handler Handler) *Instance {
	return &Instance{
		id:       id,
		stage:    stage,
		critical: critical,
		handler:  handler,
		state:    StateCreated,
		deps:     make(map[string]*Instance),
	}
}

// ID returns the module's id, unique within its stage.
func (m *Instance) ID() string { return m.id }

// Stage returns the pipeline stage hosting this module.
func (m *Instance) Stage() Stage { return m.stage }

// Key returns the stage-qualified identifier used as the module's node id in
// the wiring graph and as its key in execution results.
func (m *Instance) Key() string { return string(m.stage) + "." + m.id }

// Critical reports whether a failure of this module should abort the
// remainder of the cycle's downstream work.
func (m *Instance) Critical() bool { return m.critical }

// State returns the instance's current lifecycle state.
func (m *Instance) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Configured reports whether the instance has been configured at least once.
func (m *Instance) Configured() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateConfigured || m.state == StateActive
}

// Active reports whether the instance is activated.
func (m *Instance) Active() bool {
	return m.State() == StateActive
}

// Configure validates and applies the config block through the handler and
// transitions Created→Configured. Calling it again re-validates and
// re-applies; a failed re-configuration leaves the previous configuration in
// force and the state unchanged.
func (m *Instance) Configure(cfg Config) error {
	if err := m.handler.Configure(cfg); err != nil {
		return &ConfigurationError{Stage: m.stage, ID: m.id, Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	if m.state == StateCreated {
		m.state = StateConfigured
	}
	return nil
}

// RegisterDependency attaches another instance to the named slot. Slots are
// write-once per assembly pass: re-registration overwrites the previous
// instance with a warning rather than an error.
func (m *Instance) RegisterDependency(slot string, dep *Instance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.deps[slot]; ok && prev != dep {
		slog.Warn("Overwriting already-registered dependency slot.",
			"module", m.Key(), "slot", slot, "previous", prev.Key(), "new", dep.Key())
	}
	m.deps[slot] = dep
}

// Dependency returns the instance registered for the named slot, if any.
func (m *Instance) Dependency(slot string) (*Instance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dep, ok := m.deps[slot]
	return dep, ok
}

// Dependencies returns a copy of the slot→instance map. The returned map is
// the caller's to keep; the wiring itself stays owned by the assembler.
func (m *Instance) Dependencies() map[string]*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]*Instance, len(m.deps))
	for slot, dep := range m.deps {
		out[slot] = dep
	}
	return out
}

// Activate transitions Configured→Active. Activating a module that was never
// configured is a contract violation and fails with a LifecycleError.
func (m *Instance) Activate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateConfigured:
		m.state = StateActive
		return nil
	case StateActive:
		return nil
	default:
		return &LifecycleError{Stage: m.stage, ID: m.id, Msg: "module must be configured before activation"}
	}
}

// Deactivate transitions the instance out of Active. It is idempotent and
// always succeeds, whatever the current state.
func (m *Instance) Deactivate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateDeactivated
}

// Execute runs one cycle of the module's work. It fails with an
// InvalidStateError unless the instance is Active.
func (m *Instance) Execute(ctx context.Context, in Input) (any, error) {
	if st := m.State(); st != StateActive {
		return nil, &InvalidStateError{Stage: m.stage, ID: m.id, State: st.String(), Op: "execute"}
	}
	logger := ctxlog.FromContext(ctx).With("module", m.Key())
	logger.Debug("Module executing.", "slots", len(m.Dependencies()))
	return m.handler.Execute(ctxlog.WithLogger(ctx, logger), in)
}
