package assembler

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vk/tradegrid/internal/config"
	"github.com/vk/tradegrid/internal/ctxlog"
	"github.com/vk/tradegrid/internal/dag"
	"github.com/vk/tradegrid/internal/module"
	"github.com/vk/tradegrid/internal/registry"
)

// entry pairs a descriptor with the instance constructed from it while
// assembly is in flight.
type entry struct {
	desc config.Descriptor
	inst *module.Instance
}

// Assemble builds and activates a pipeline from a document. On any failure it
// deactivates whatever it already activated and returns the error; the
// returned pipeline is either complete or nil.
func Assemble(ctx context.Context, doc *config.Document, reg *registry.Registry) (*Pipeline, error) {
	logger := ctxlog.FromContext(ctx)

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline document: %w", err)
	}

	entries, instances, err := instantiate(ctx, doc, reg)
	if err != nil {
		return nil, err
	}
	logger.Debug("All modules instantiated.", "count", len(entries))

	graph, err := buildGraph(entries, instances)
	if err != nil {
		return nil, err
	}

	order, err := graph.TopoSort(func(a, b string) bool {
		ia, ib := instances[a], instances[b]
		return module.Less(ia.Stage(), ia.ID(), ib.Stage(), ib.ID())
	})
	if err != nil {
		var cycle *dag.CycleError
		if errors.As(err, &cycle) {
			return nil, &CyclicDependencyError{Node: cycle.Node}
		}
		return nil, err
	}
	logger.Debug("Wiring graph resolved.", "order", order)

	// Configuration uses only each module's own config block, so the order
	// here is immaterial; declaration order keeps error output stable.
	for _, e := range entries {
		if err := e.inst.Configure(e.desc.Config); err != nil {
			return nil, err
		}
	}
	logger.Debug("All modules configured.")

	for _, e := range entries {
		for slot, ref := range e.desc.Dependencies {
			e.inst.RegisterDependency(slot, instances[ref.String()])
		}
	}

	// Activate strictly in topological order: a module activates only after
	// everything it depends on is active.
	var activated []*module.Instance
	for _, key := range order {
		inst := instances[key]
		if err := inst.Activate(); err != nil {
			rollback(ctx, activated)
			return nil, err
		}
		activated = append(activated, inst)
	}
	logger.Info("Pipeline assembled.", "modules", len(order))

	return &Pipeline{instances: instances, order: order, graph: graph}, nil
}

// instantiate constructs an instance per descriptor via the registry.
func instantiate(ctx context.Context, doc *config.Document, reg *registry.Registry) ([]entry, map[string]*module.Instance, error) {
	logger := ctxlog.FromContext(ctx)

	entries := make([]entry, 0, len(doc.Descriptors))
	instances := make(map[string]*module.Instance, len(doc.Descriptors))

	for _, desc := range doc.Descriptors {
		if desc.ID == "" {
			desc.ID = uuid.NewString()
			logger.Debug("Descriptor without id, generated one.", "stage", desc.Stage, "id", desc.ID)
		}
		key := string(desc.Stage) + "." + desc.ID
		if _, exists := instances[key]; exists {
			return nil, nil, &DuplicateIDError{Stage: desc.Stage, ID: desc.ID}
		}

		factory, err := reg.Resolve(desc.Impl)
		if err != nil {
			return nil, nil, fmt.Errorf("module %s: %w", key, err)
		}

		inst := module.NewInstance(desc.Stage, desc.ID, desc.Critical, factory())
		entries = append(entries, entry{desc: desc, inst: inst})
		instances[key] = inst
	}

	return entries, instances, nil
}

// buildGraph adds a node per module and an edge per dependency reference.
// Every reference must resolve to exactly one instantiated module.
func buildGraph(entries []entry, instances map[string]*module.Instance) (*dag.Graph, error) {
	graph := dag.New()
	for _, e := range entries {
		graph.AddNode(e.inst.Key())
	}

	for _, e := range entries {
		for slot, ref := range e.desc.Dependencies {
			target := ref.String()
			if _, ok := instances[target]; !ok {
				return nil, &UnresolvedDependencyError{
					Dependent: config.Ref{Stage: e.desc.Stage, ID: e.desc.ID},
					Slot:      slot,
					Missing:   ref,
				}
			}
			if err := graph.AddEdge(target, e.inst.Key()); err != nil {
				var cycle *dag.CycleError
				if errors.As(err, &cycle) {
					return nil, &CyclicDependencyError{Node: cycle.Node}
				}
				return nil, err
			}
		}
	}

	if err := graph.DetectCycles(); err != nil {
		var cycle *dag.CycleError
		if errors.As(err, &cycle) {
			return nil, &CyclicDependencyError{Node: cycle.Node}
		}
		return nil, err
	}

	return graph, nil
}

// rollback deactivates already-activated instances in reverse order,
// best-effort.
func rollback(ctx context.Context, activated []*module.Instance) {
	logger := ctxlog.FromContext(ctx)
	for i := len(activated) - 1; i >= 0; i-- {
		activated[i].Deactivate()
	}
	if len(activated) > 0 {
		logger.Warn("Assembly failed, rolled back activated modules.", "count", len(activated))
	}
}
