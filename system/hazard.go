package system

import (
	"github.com/milk9111/brawler/component"
)

// HazardSystem owns the live hazards and a per-kind pool of dead ones.
// Pointers returned by Spawn and Hazards are only valid until the hazard
// dies; a dead hazard is recycled by a later Spawn of the same kind.
type HazardSystem struct {
	Emitter *component.CombatEventEmitter

	frames component.FrameProvider
	live   []*component.Hazard
	pool   map[int][]*component.Hazard
	nextID int
}

func NewHazardSystem(frames component.FrameProvider) *HazardSystem {
	return &HazardSystem{
		frames: frames,
		pool:   map[int][]*component.Hazard{},
	}
}

// Spawn brings a hazard of the given kind to life. Every spawn gets a fresh
// id, including recycled instances.
func (s *HazardSystem) Spawn(kind int, cfg component.HazardConfig) *component.Hazard {
	s.nextID++
	id := s.nextID

	if free := s.pool[kind]; len(free) > 0 {
		h := free[len(free)-1]
		s.pool[kind] = free[:len(free)-1]
		h.Reuse(id, cfg)
		s.live = append(s.live, h)
		return h
	}

	h := component.NewHazard(id, kind, s.frames)
	h.Initialize(cfg)
	s.live = append(s.live, h)
	return h
}

// Update ticks every live hazard once and drops the ones that died.
// Returns the number removed.
func (s *HazardSystem) Update() int {
	kept := s.live[:0]
	removed := 0
	for _, h := range s.live {
		if h.Tick() {
			kept = append(kept, h)
			continue
		}
		removed++
		s.Emitter.Emit(component.CombatEvent{
			Type:     component.EventHazardExpired,
			HazardID: h.ID(),
			Kind:     h.Kind(),
			PosX:     h.X(),
			PosY:     h.Y(),
		})
		s.pool[h.Kind()] = append(s.pool[h.Kind()], h)
	}
	clear(s.live[len(kept):])
	s.live = kept
	return removed
}

// Hazards returns the live hazards in spawn order. The slice is reused by
// the next Update.
func (s *HazardSystem) Hazards() []*component.Hazard {
	return s.live
}

func (s *HazardSystem) Len() int {
	return len(s.live)
}

// Pooled returns how many dead hazards of kind are waiting for reuse.
func (s *HazardSystem) Pooled(kind int) int {
	return len(s.pool[kind])
}

// Clear kills nothing; it just forgets every live and pooled hazard.
func (s *HazardSystem) Clear() {
	s.live = nil
	s.pool = map[int][]*component.Hazard{}
}
