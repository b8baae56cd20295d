package module

import "fmt"

// ConfigurationError reports a bad or missing config key for one module.
// It is fatal to that module's assembly.
type ConfigurationError struct {
	Stage Stage
	ID    string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("module %s.%s: configuration invalid: %v", e.Stage, e.ID, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// LifecycleError reports a lifecycle transition attempted out of order, such
// as activating a module that was never configured. It indicates a bug in the
// driving code, not in user configuration.
type LifecycleError struct {
	Stage Stage
	ID    string
	Msg   string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("module %s.%s: %s", e.Stage, e.ID, e.Msg)
}

// InvalidStateError reports a module operation invoked in a state that does
// not permit it, such as executing a module before activation.
type InvalidStateError struct {
	Stage Stage
	ID    string
	State string
	Op    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("module %s.%s: cannot %s while %s", e.Stage, e.ID, e.Op, e.State)
}
