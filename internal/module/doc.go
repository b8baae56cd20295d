// Package module defines the contract every pluggable pipeline module
// satisfies, and the runtime wrapper that enforces it.
//
// Plug-in code implements the small Handler interface (configure + execute).
// The runtime wraps each Handler in an Instance, which owns the module's
// identity, its lifecycle state, and its dependency slots. The lifecycle is
// Created → Configured → Active → Deactivated, and the ordering rules
// (configure before activate, activate before execute) are enforced by the
// Instance itself rather than by caller discipline.
//
// Payloads exchanged between modules are opaque to this package: it routes
// them, never inspects them.
package module
