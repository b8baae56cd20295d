package dag

import "sort"

// TopoSort returns the node IDs in an order where every dependency precedes
// its dependents (Kahn's algorithm). Ties between nodes that become ready at
// the same time are broken by the provided comparator, or lexically when it
// is nil, so the ordering is deterministic. A *CycleError is returned when no
// valid ordering exists.
func (g *Graph) TopoSort(less func(a, b string) bool) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if less == nil {
		less = func(a, b string) bool { return a < b }
	}

	remaining := make(map[string]int, len(g.nodes))
	var ready []string
	for id, n := range g.nodes {
		remaining[id] = len(n.deps)
		if len(n.deps) == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return less(ready[i], ready[j]) })
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for depID := range g.nodes[next].dependents {
			remaining[depID]--
			if remaining[depID] == 0 {
				ready = append(ready, depID)
			}
		}
	}

	// Nodes left with unsatisfied dependencies can only be part of a cycle.
	if len(order) != len(g.nodes) {
		var stuck []string
		for id := range g.nodes {
			if remaining[id] > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return nil, &CycleError{Node: stuck[0]}
	}

	return order, nil
}
