// Package config defines the format-agnostic pipeline document model: an
// ordered sequence of module descriptors, each naming its stage,
// implementation reference, opaque config block and dependency references,
// plus the Loader interface a format-specific loader (HCL, YAML) implements
// to produce it. Everything downstream of the loaders works only with this
// model.
package config
