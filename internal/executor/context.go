package executor

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vk/tradegrid/internal/module"
)

// ExecutionError reports that a module's execute failed during a cycle. The
// failure is recovered at the per-module granularity; downstream consumers
// see the module's previous output, or none.
type ExecutionError struct {
	Stage module.Stage
	ID    string
	Cycle uint64
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("module %s.%s failed in cycle %d: %v", e.Stage, e.ID, e.Cycle, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Result is the outcome of one execution cycle, keyed by stage-qualified
// module key. Outputs holds the payload of every module that produced one
// this cycle (a successful execute that returned nil is present with a nil
// payload). Failures and Skipped name the modules that produced nothing.
type Result struct {
	Cycle    uint64
	Outputs  map[string]any
	Failures map[string]error
	Skipped  []string
}

// Failed reports whether any module failed or was skipped this cycle.
func (r *Result) Failed() bool {
	return len(r.Failures) > 0 || len(r.Skipped) > 0
}

// cycleState collects per-cycle results under a single lock shared by the
// worker pool.
type cycleState struct {
	mu       sync.Mutex
	cycle    uint64
	outputs  map[string]any
	failures map[string]error
	skipped  map[string]bool
}

func newCycleState(cycle uint64) *cycleState {
	return &cycleState{
		cycle:    cycle,
		outputs:  make(map[string]any),
		failures: make(map[string]error),
		skipped:  make(map[string]bool),
	}
}

func (s *cycleState) setOutput(key string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs[key] = payload
}

// output returns the payload the module produced this cycle, if it has
// already run.
func (s *cycleState) output(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.outputs[key]
	return v, ok
}

func (s *cycleState) setFailure(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[key] = err
}

func (s *cycleState) setSkipped(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipped[key] = true
}

// result freezes the state into an immutable Result.
func (s *cycleState) result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := &Result{
		Cycle:    s.cycle,
		Outputs:  make(map[string]any, len(s.outputs)),
		Failures: make(map[string]error, len(s.failures)),
	}
	for k, v := range s.outputs {
		res.Outputs[k] = v
	}
	for k, v := range s.failures {
		res.Failures[k] = v
	}
	for k := range s.skipped {
		res.Skipped = append(res.Skipped, k)
	}
	sort.Strings(res.Skipped)
	return res
}
