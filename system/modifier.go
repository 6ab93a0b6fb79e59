package system

import (
	"fmt"

	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/component"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/prefabs"
)

type modifierEntry struct {
	target ecs.Entity
	mod    *component.Modifier
	// fresh marks a modifier added since the last Update. Construction has
	// already applied it for this frame.
	fresh bool
}

// ModifierSystem sustains modifiers against characters in the arena.
// Modifiers run in the order they were added, so stacked position effects
// on one character always resolve the same way.
type ModifierSystem struct {
	Emitter *component.CombatEventEmitter

	characters *ecs.Registry[component.Character]
	entries    []modifierEntry
}

func NewModifierSystem(characters *ecs.Registry[component.Character]) *ModifierSystem {
	return &ModifierSystem{characters: characters}
}

// Add tracks an already constructed modifier for target.
func (s *ModifierSystem) Add(target ecs.Entity, m *component.Modifier) {
	if m == nil {
		return
	}
	s.entries = append(s.entries, modifierEntry{target: target, mod: m, fresh: true})
}

func (s *ModifierSystem) body(target ecs.Entity) (*component.Character, bool) {
	return s.characters.Get(target)
}

// Push starts a push on target. Returns nil if the handle is stale.
func (s *ModifierSystem) Push(target ecs.Entity, strength, duration int) *component.Modifier {
	c, ok := s.body(target)
	if !ok {
		return nil
	}
	m := component.NewPush(c, strength, duration)
	s.Add(target, m)
	return m
}

func (s *ModifierSystem) BoostDamage(target ecs.Entity, multiplier float64, duration int) *component.Modifier {
	c, ok := s.body(target)
	if !ok {
		return nil
	}
	m := component.NewDamageBoost(c, multiplier, duration)
	s.Add(target, m)
	return m
}

func (s *ModifierSystem) ChangeGravity(target ecs.Entity, multiplier, duration int) *component.Modifier {
	c, ok := s.body(target)
	if !ok {
		return nil
	}
	m := component.NewGravityChange(c, multiplier, duration)
	s.Add(target, m)
	return m
}

func (s *ModifierSystem) Restrain(target ecs.Entity, strength float64, anchorX, duration int) *component.Modifier {
	c, ok := s.body(target)
	if !ok {
		return nil
	}
	m := component.NewPositionRestrain(c, strength, anchorX, duration)
	s.Add(target, m)
	return m
}

// ApplyPreset builds the modifier a prefab preset describes and adds it.
func (s *ModifierSystem) ApplyPreset(target ecs.Entity, spec prefabs.ModifierSpec) (*component.Modifier, error) {
	c, ok := s.body(target)
	if !ok {
		return nil, fmt.Errorf("modifier %q: target %s is gone", spec.Name, target)
	}
	m, err := NewModifier(c, spec)
	if err != nil {
		return nil, err
	}
	s.Add(target, m)
	return m, nil
}

// NewModifier constructs (and so first applies) the modifier for a preset.
func NewModifier(body component.Body, spec prefabs.ModifierSpec) (*component.Modifier, error) {
	kind, err := component.ParseModifierKind(spec.Kind)
	if err != nil {
		return nil, fmt.Errorf("modifier %q: %w", spec.Name, err)
	}
	switch kind {
	case component.ModifierDamageBoost:
		return component.NewDamageBoost(body, spec.Multiplier, spec.Duration), nil
	case component.ModifierGravityChange:
		return component.NewGravityChange(body, spec.Gravity, spec.Duration), nil
	case component.ModifierPositionRestrain:
		return component.NewPositionRestrain(body, spec.Strength, spec.Anchor, spec.Duration), nil
	case component.ModifierPush:
		return component.NewPush(body, spec.Push, spec.Duration), nil
	}
	return nil, fmt.Errorf("modifier %q: unhandled kind %s", spec.Name, kind)
}

// Update sustains every modifier once, in add order, and drops the expired
// ones. Modifiers added since the previous Update are skipped this time, so
// each frame sees exactly one apply per modifier. Returns the number dropped.
func (s *ModifierSystem) Update() int {
	kept := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		c, ok := s.characters.Get(e.target)
		if !ok {
			common.Assert(false, "%s modifier targets missing character %s", e.mod.Kind(), e.target)
			removed++
			continue
		}
		if e.fresh {
			e.fresh = false
			kept = append(kept, e)
			continue
		}
		if e.mod.Sustain(c) {
			kept = append(kept, e)
			continue
		}
		removed++
		s.Emitter.Emit(component.CombatEvent{
			Type:     component.EventModifierExpired,
			Player:   c.Player,
			Modifier: e.mod.Kind(),
		})
	}
	clear(s.entries[len(kept):])
	s.entries = kept
	return removed
}

// Active lists the live modifiers on target in application order.
func (s *ModifierSystem) Active(target ecs.Entity) []*component.Modifier {
	var out []*component.Modifier
	for _, e := range s.entries {
		if e.target == target {
			out = append(out, e.mod)
		}
	}
	return out
}

func (s *ModifierSystem) Len() int {
	return len(s.entries)
}

// Clear forgets every modifier without resetting its effect.
func (s *ModifierSystem) Clear() {
	s.entries = nil
}
