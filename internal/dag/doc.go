// Package dag implements the directed acyclic wiring graph shared by the
// assembler and executor: nodes keyed by string id, edges pointing from a
// dependency to its dependents, cycle detection, and deterministic
// topological ordering. The graph is built once at assembly time and is
// read-only during execution.
package dag
