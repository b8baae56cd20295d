// Package payload defines the closed set of payload kinds modules exchange
// along the pipeline. The runtime routes these values opaquely; only the
// producing and consuming modules look inside. External collaborators are
// free to exchange their own types instead — anything serializable satisfies
// the runtime — but the kinds here cover the canonical stages.
package payload

// Kind discriminates the payload variants.
type Kind string

const (
	KindPriceSeries Kind = "price_series"
	KindLevels      Kind = "levels"
	KindSignals     Kind = "signals"
	KindRisk        Kind = "risk"
	KindOrders      Kind = "orders"
	KindTrades      Kind = "trades"
	KindMetrics     Kind = "metrics"
	KindValues      Kind = "values"
)

// Payload is implemented by every payload variant.
type Payload interface {
	Kind() Kind
}

// Values is a flat string map payload, used for environment-sourced
// configuration values and other loosely structured data.
type Values map[string]string

func (Values) Kind() Kind { return KindValues }
