// Package app wires the runtime together: it builds the logger, loads the
// pipeline document through a format-specific loader, registers the built-in
// modules, assembles the pipeline and drives the executor.
package app
