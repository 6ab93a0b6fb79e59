package system

import (
	"testing"

	"github.com/milk9111/brawler/component"
)

// recorder collects emitted events in order.
type recorder struct {
	events []component.CombatEvent
}

func newRecorder() (*recorder, *component.CombatEventEmitter) {
	r := &recorder{}
	e := &component.CombatEventEmitter{}
	e.Subscribe(func(evt component.CombatEvent) { r.events = append(r.events, evt) })
	return r, e
}

func (r *recorder) types() []component.CombatEventType {
	out := make([]component.CombatEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) ofType(t component.CombatEventType) []component.CombatEvent {
	var out []component.CombatEvent
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
