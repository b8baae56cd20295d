package module

import "context"

// Handler is the behavior a pluggable module contributes to the pipeline.
// Implementations are constructed by registry factories and driven
// exclusively through an Instance.
type Handler interface {
	// Configure validates and applies the module's own config block. It may
	// be called more than once; each call re-validates and re-applies the
	// configuration.
	Configure(cfg Config) error

	// Execute runs one cycle of the module's work. The input aggregates the
	// most recent payloads of the module's registered dependencies; source
	// modules receive an empty input. The returned payload is routed to
	// downstream modules opaquely.
	Execute(ctx context.Context, in Input) (any, error)
}

// Config is the opaque key-value configuration block of a single module
// descriptor. Typed accessors tolerate the loose typing that survives
// YAML/HCL decoding; handlers that need stricter validation decode into their
// own struct and fail Configure.
type Config map[string]any

// String returns the string value for key, or def when absent or not a string.
func (c Config) String(key, def string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return def
}

// Int returns the integer value for key, or def when absent. YAML and HCL
// decoders deliver numbers as int, int64 or float64 depending on the source
// form; all three are accepted.
func (c Config) Int(key string, def int) int {
	switch v := c[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Float returns the float value for key, or def when absent.
func (c Config) Float(key string, def float64) float64 {
	switch v := c[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// Bool returns the boolean value for key, or def when absent or not a bool.
func (c Config) Bool(key string, def bool) bool {
	if v, ok := c[key].(bool); ok {
		return v
	}
	return def
}

// Strings returns the string-slice value for key, or nil when absent. Both
// []string and []any of strings are accepted.
func (c Config) Strings(key string) []string {
	switch v := c[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	}
	return nil
}

// Has reports whether key is present in the config block.
func (c Config) Has(key string) bool {
	_, ok := c[key]
	return ok
}
