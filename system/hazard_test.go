package system

import (
	"testing"

	"github.com/milk9111/brawler/component"
	"github.com/milk9111/brawler/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHazardSystemExpires(t *testing.T) {
	rec, em := newRecorder()
	s := NewHazardSystem(nil)
	s.Emitter = em

	h := s.Spawn(0, component.HazardConfig{X: 10, Y: 20, Duration: 3})
	assert.Equal(t, 1, h.ID())

	assert.Zero(t, s.Update())
	assert.Zero(t, s.Update())
	assert.Equal(t, 1, s.Update())
	assert.Zero(t, s.Len())
	assert.Equal(t, 1, s.Pooled(0))

	require.Len(t, rec.events, 1)
	evt := rec.events[0]
	assert.Equal(t, component.EventHazardExpired, evt.Type)
	assert.Equal(t, 1, evt.HazardID)
	assert.Equal(t, 10, evt.PosX)
	assert.Equal(t, 20, evt.PosY)
}

func TestHazardSystemRecyclesPerKind(t *testing.T) {
	s := NewHazardSystem(nil)
	first := s.Spawn(2, component.HazardConfig{Duration: 1})
	require.Equal(t, 1, s.Update())

	other := s.Spawn(3, component.HazardConfig{Duration: 5})
	assert.NotSame(t, first, other)

	again := s.Spawn(2, component.HazardConfig{Duration: 5, Damage: 7})
	assert.Same(t, first, again)
	assert.Equal(t, 3, again.ID())
	assert.Equal(t, component.HazardAlive, again.Phase())
	assert.Equal(t, 7, again.Damage())
	assert.Zero(t, s.Pooled(2))
	assert.Equal(t, 2, s.Len())
}

func TestHazardSystemKeepsSpawnOrder(t *testing.T) {
	s := NewHazardSystem(nil)
	for _, d := range []int{1, 3, 1, 3, 1} {
		s.Spawn(0, component.HazardConfig{Duration: d})
	}

	assert.Equal(t, 3, s.Update())

	ids := []int{}
	for _, h := range s.Hazards() {
		ids = append(ids, h.ID())
	}
	assert.Equal(t, []int{2, 4}, ids)
}

func TestHazardSystemTicksStruckHazards(t *testing.T) {
	s := NewHazardSystem(nil)
	h := s.Spawn(0, component.HazardConfig{Duration: 100, HitCountdown: 2})
	h.MarkHit(1)

	assert.Zero(t, s.Update())
	assert.Equal(t, 1, s.Update())
	assert.Zero(t, s.Len())
}

func TestSpawnSpec(t *testing.T) {
	s := NewHazardSystem(nil)
	spec := prefabs.HazardSpec{
		Name:         "bolt",
		Kind:         1,
		Position:     prefabs.VectorSpec{X: 5, Y: 6},
		Velocity:     prefabs.VectorSpec{X: 2, Y: -1},
		Duration:     9,
		HitCountdown: 4,
		Hitbox:       prefabs.SizeSpec{W: 10, H: 12},
		Impact:       prefabs.VectorSpec{X: 3, Y: 1},
		Damage:       11,
	}

	h := s.SpawnSpec(spec)
	assert.Equal(t, 1, h.Kind())
	assert.Equal(t, 5, h.X())
	assert.Equal(t, 6, h.Y())
	assert.Equal(t, 2, h.VX())
	assert.Equal(t, -1, h.VY())
	assert.Equal(t, 9, h.Duration())
	assert.Equal(t, 4, h.HitCountdown())
	assert.Equal(t, 10, h.HitX())
	assert.Equal(t, 12, h.HitY())
	assert.Equal(t, 3, h.ImpactX())
	assert.Equal(t, 1, h.ImpactY())
	assert.Equal(t, 11, h.Damage())
	assert.InDelta(t, component.DefaultHazardScale, h.Scale(), 1e-9)

	spec.Scale = 2
	at := s.SpawnSpecAt(spec, 100, 200, -3, 0)
	assert.Equal(t, 100, at.X())
	assert.Equal(t, 200, at.Y())
	assert.Equal(t, -3, at.VX())
	assert.Zero(t, at.VY())
	assert.InDelta(t, 2.0, at.Scale(), 1e-9)
}
