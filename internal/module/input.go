package module

import "sort"

// Input aggregates the most recent payloads of a module's dependencies,
// keyed by dependency slot name. A slot may be absent when its upstream
// module has not produced output yet (or failed this cycle); whether that is
// a soft no-op or a hard error is each handler's own contractual choice.
type Input struct {
	payloads map[string]any
}

// NewInput builds an Input from a slot→payload map. The map is taken over by
// the Input and must not be mutated afterwards.
func NewInput(payloads map[string]any) Input {
	return Input{payloads: payloads}
}

// Payload returns the payload registered for the given slot, and whether a
// fresh-or-stale value was available at all.
func (in Input) Payload(slot string) (any, bool) {
	v, ok := in.payloads[slot]
	return v, ok
}

// Slots returns the names of all slots that carry a payload, sorted.
func (in Input) Slots() []string {
	slots := make([]string, 0, len(in.payloads))
	for s := range in.payloads {
		slots = append(slots, s)
	}
	sort.Strings(slots)
	return slots
}

// Empty reports whether no slot carries a payload. Source modules always see
// an empty input.
func (in Input) Empty() bool {
	return len(in.payloads) == 0
}
