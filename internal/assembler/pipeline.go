package assembler

import (
	"context"

	"github.com/vk/tradegrid/internal/ctxlog"
	"github.com/vk/tradegrid/internal/dag"
	"github.com/vk/tradegrid/internal/module"
)

// Pipeline is a fully assembled, activated module graph. It exclusively owns
// every module instance and the wiring graph; the executor only borrows
// references into it for the duration of a cycle and never mutates its
// structure.
type Pipeline struct {
	instances map[string]*module.Instance
	order     []string
	graph     *dag.Graph
}

// Instance returns the module instance for the given stage and id.
func (p *Pipeline) Instance(stage module.Stage, id string) (*module.Instance, bool) {
	inst, ok := p.instances[string(stage)+"."+id]
	return inst, ok
}

// Lookup returns the instance for a stage-qualified key (stage.id).
func (p *Pipeline) Lookup(key string) (*module.Instance, bool) {
	inst, ok := p.instances[key]
	return inst, ok
}

// Order returns the stage-qualified keys of every module in topological
// activation order. The slice is shared; callers must not mutate it.
func (p *Pipeline) Order() []string {
	return p.order
}

// Graph returns the read-only wiring graph.
func (p *Pipeline) Graph() *dag.Graph {
	return p.graph
}

// Len returns the number of modules in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.instances)
}

// Teardown deactivates every module in reverse activation order, so each
// module outlives its dependents. Deactivation is idempotent, so calling
// Teardown more than once is harmless.
func (p *Pipeline) Teardown(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	for i := len(p.order) - 1; i >= 0; i-- {
		inst := p.instances[p.order[i]]
		inst.Deactivate()
		logger.Debug("Module deactivated.", "module", inst.Key())
	}
	logger.Info("Pipeline torn down.", "modules", len(p.order))
}
