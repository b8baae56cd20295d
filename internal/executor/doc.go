// Package executor drives execution cycles over an assembled pipeline. Each
// cycle visits every module once, in an order consistent with the wiring
// graph: independent modules run concurrently on a worker pool while
// dependent modules run strictly after their dependencies complete. A
// module's input always reflects the most recently completed output of each
// of its declared dependencies.
//
// A failing module does not abort the cycle: its output is withheld for the
// cycle, the failure is recorded, and unrelated modules keep running. The
// exception is a module marked critical, whose failure cancels the remainder
// of the cycle. Failed modules are retried only on the next natural cycle.
package executor
