// Package hcl loads pipeline documents written in HCL. A document is a set
// of `module "<stage>" "<id>"` blocks carrying the implementation reference,
// an opaque config object, and `dependency "<slot>"` blocks referencing other
// modules by stage and id. The loader translates everything into the
// format-agnostic config model; nothing outside this package touches HCL
// types.
package hcl
