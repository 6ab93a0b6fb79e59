package component

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventHazardHit       CombatEventType = "hazard_hit"
	EventDamageApplied   CombatEventType = "damage_applied"
	EventKO              CombatEventType = "ko"
	EventHazardExpired   CombatEventType = "hazard_expired"
	EventModifierExpired CombatEventType = "modifier_expired"
)

// CombatEvent is emitted by the simulation systems. Fields that do not apply
// to an event type are left zero.
type CombatEvent struct {
	Type     CombatEventType
	Frame    int
	Player   int
	HazardID int
	Kind     int
	Damage   int
	PosX     int
	PosY     int
	ImpactX  int
	ImpactY  int
	Modifier ModifierKind
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter fans events out to handlers in registration order.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Subscribe registers a handler.
func (e *CombatEventEmitter) Subscribe(h CombatEventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}
