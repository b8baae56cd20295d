package executor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vk/tradegrid/internal/assembler"
	"github.com/vk/tradegrid/internal/ctxlog"
	"github.com/vk/tradegrid/internal/module"
)

// DefaultWorkerCount is used when the caller does not size the worker pool.
const DefaultWorkerCount = 4

// Executor drives execution cycles over an assembled pipeline. It borrows
// read-only references into the pipeline's graph; the graph's structure is
// never mutated at runtime.
type Executor struct {
	pipe       *assembler.Pipeline
	numWorkers int

	mu    sync.Mutex
	prev  map[string]any // most recent output per module, across cycles
	cycle uint64
}

// New creates an Executor over the given pipeline.
func New(pipe *assembler.Pipeline, workers int) *Executor {
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	return &Executor{
		pipe:       pipe,
		numWorkers: workers,
		prev:       make(map[string]any),
	}
}

// cycleNode is the per-cycle scheduling state of one module.
type cycleNode struct {
	inst       *module.Instance
	depCount   atomic.Int32
	dependents []*cycleNode
}

// RunCycle executes one cycle across all modules. Per-module failures are
// isolated into the Result; the returned error is non-nil only when the
// cycle itself was aborted, either by a critical module's failure or by
// cancellation of ctx.
func (e *Executor) RunCycle(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	e.cycle++
	cycle := e.cycle
	prev := e.prev
	e.mu.Unlock()

	logger := ctxlog.FromContext(ctx).With("cycle", cycle)
	ctx = ctxlog.WithLogger(ctx, logger)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	nodes, roots := e.buildCycleNodes()
	state := newCycleState(cycle)

	var criticalFailure atomic.Pointer[ExecutionError]

	readyChan := make(chan *cycleNode, len(nodes))
	// Seeding in pipeline order keeps independent root modules starting in
	// canonical stage order.
	for _, n := range roots {
		readyChan <- n
	}

	var wg sync.WaitGroup
	wg.Add(len(nodes))

	logger.Debug("Cycle starting.", "modules", len(nodes), "workers", e.numWorkers)
	for i := 0; i < e.numWorkers; i++ {
		go e.worker(runCtx, readyChan, &wg, state, prev, cancel, &criticalFailure)
	}

	wg.Wait()
	close(readyChan)

	res := state.result()
	e.retainOutputs(res)
	logger.Debug("Cycle finished.", "outputs", len(res.Outputs), "failures", len(res.Failures), "skipped", len(res.Skipped))

	if cf := criticalFailure.Load(); cf != nil {
		return res, fmt.Errorf("cycle %d aborted: critical %w", cycle, cf)
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// buildCycleNodes derives the per-cycle scheduling nodes from the wiring
// graph, in pipeline topological order.
func (e *Executor) buildCycleNodes() (map[string]*cycleNode, []*cycleNode) {
	graph := e.pipe.Graph()
	order := e.pipe.Order()

	nodes := make(map[string]*cycleNode, len(order))
	for _, key := range order {
		inst, _ := e.pipe.Lookup(key)
		nodes[key] = &cycleNode{inst: inst}
	}

	var roots []*cycleNode
	for _, key := range order {
		n := nodes[key]
		deps, _ := graph.Dependencies(key)
		n.depCount.Store(int32(len(deps)))
		for _, depKey := range deps {
			dep := nodes[depKey]
			dep.dependents = append(dep.dependents, n)
		}
		if len(deps) == 0 {
			roots = append(roots, n)
		}
	}
	return nodes, roots
}

// worker is the processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, readyChan chan *cycleNode, wg *sync.WaitGroup,
	state *cycleState, prev map[string]any, cancel context.CancelFunc,
	criticalFailure *atomic.Pointer[ExecutionError]) {

	logger := ctxlog.FromContext(ctx)

	for n := range readyChan {
		key := n.inst.Key()

		if ctx.Err() != nil {
			logger.Warn("Cycle cancelled, skipping module.", "module", key)
			state.setSkipped(key)
			e.release(readyChan, n)
			wg.Done()
			continue
		}

		input := e.gatherInput(n.inst, state, prev)
		out, err := n.inst.Execute(ctx, input)
		if err != nil {
			execErr := &ExecutionError{Stage: n.inst.Stage(), ID: n.inst.ID(), Cycle: state.cycle, Err: err}
			state.setFailure(key, execErr)
			logger.Error("Module execution failed.", "module", key, "error", err)
			if n.inst.Critical() {
				logger.Error("Critical module failed, aborting remainder of cycle.", "module", key)
				criticalFailure.CompareAndSwap(nil, execErr)
				cancel()
			}
		} else {
			state.setOutput(key, out)
		}

		// Dependents run regardless of this module's outcome; a failed
		// dependency just means no fresh payload in their input.
		e.release(readyChan, n)
		wg.Done()
	}
}

// release unlocks any dependents whose dependencies have all completed.
func (e *Executor) release(readyChan chan *cycleNode, n *cycleNode) {
	for _, dep := range n.dependents {
		if dep.depCount.Add(-1) == 0 {
			readyChan <- dep
		}
	}
}

// gatherInput aggregates a module's input from its registered dependencies:
// the current cycle's output when the dependency already ran, otherwise the
// most recent output of an earlier cycle, otherwise nothing for that slot.
func (e *Executor) gatherInput(inst *module.Instance, state *cycleState, prev map[string]any) module.Input {
	payloads := make(map[string]any)
	for slot, dep := range inst.Dependencies() {
		key := dep.Key()
		if v, ok := state.output(key); ok {
			payloads[slot] = v
			continue
		}
		if v, ok := prev[key]; ok {
			payloads[slot] = v
		}
	}
	return module.NewInput(payloads)
}

// retainOutputs folds this cycle's outputs into the retained most-recent
// results, keeping the previous cycle's value for modules that produced
// nothing this time.
func (e *Executor) retainOutputs(res *Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	merged := make(map[string]any, len(e.prev)+len(res.Outputs))
	for k, v := range e.prev {
		merged[k] = v
	}
	for k, v := range res.Outputs {
		merged[k] = v
	}
	e.prev = merged
}
