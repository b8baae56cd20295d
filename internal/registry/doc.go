// Package registry provides the central "glue" for the module system.
//
// The Registry stores mappings between the implementation keys used in
// pipeline documents (e.g., "candlefeed") and the compiled Go factories that
// construct the matching module handler. It is populated by explicit
// registration at application startup, never by runtime introspection, so an
// implementation reference that cannot be resolved is caught before any
// module is instantiated.
package registry
