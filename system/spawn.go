package system

import (
	"github.com/milk9111/brawler/component"
	"github.com/milk9111/brawler/prefabs"
)

// HazardConfig converts a prefab spec into the values Initialize expects.
func HazardConfig(spec prefabs.HazardSpec) component.HazardConfig {
	return component.HazardConfig{
		X:            spec.Position.X,
		Y:            spec.Position.Y,
		VX:           spec.Velocity.X,
		VY:           spec.Velocity.Y,
		Duration:     spec.Duration,
		HitX:         spec.Hitbox.W,
		HitY:         spec.Hitbox.H,
		ImpactX:      spec.Impact.X,
		ImpactY:      spec.Impact.Y,
		Damage:       spec.Damage,
		HitCountdown: spec.HitCountdown,
	}
}

// SpawnSpec spawns a hazard described by a prefab spec.
func (s *HazardSystem) SpawnSpec(spec prefabs.HazardSpec) *component.Hazard {
	h := s.Spawn(spec.Kind, HazardConfig(spec))
	scale := spec.Scale
	if scale <= 0 {
		scale = component.DefaultHazardScale
	}
	h.SetScale(scale)
	return h
}

// SpawnSpecAt spawns a spec with its position and velocity replaced.
func (s *HazardSystem) SpawnSpecAt(spec prefabs.HazardSpec, x, y, vx, vy int) *component.Hazard {
	spec.Position = prefabs.VectorSpec{X: x, Y: y}
	spec.Velocity = prefabs.VectorSpec{X: vx, Y: vy}
	return s.SpawnSpec(spec)
}
