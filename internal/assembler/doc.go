// Package assembler turns a pipeline document into a running pipeline: it
// instantiates every declared module through the registry, resolves the
// declared dependency references into a directed acyclic wiring graph,
// configures every instance, registers the resolved dependencies, and
// activates the instances strictly in topological order.
//
// Assembly is all-or-nothing. Any failure rolls back already-activated
// instances and returns an error naming the offending descriptor; a
// half-wired pipeline is never exposed to the executor.
package assembler
