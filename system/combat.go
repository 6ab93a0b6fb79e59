package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/component"
	"github.com/milk9111/brawler/ecs"
)

// hazardBox is the hazard hitbox centred on its position. Boxes are in
// screen space, so B holds the smaller y.
func hazardBox(h *component.Hazard) cp.BB {
	return cp.NewBBForExtents(
		cp.Vector{X: float64(h.X()), Y: float64(h.Y())},
		float64(h.HitX())/2,
		float64(h.HitY())/2,
	)
}

func hurtBox(c *component.Character) cp.BB {
	l, t, r, b := c.Hurtbox()
	return cp.BB{L: float64(l), B: float64(t), R: float64(r), T: float64(b)}
}

// knockDirection points from the hazard to the character. A character
// standing exactly on the hazard is carried along its travel direction.
func knockDirection(h *component.Hazard, c *component.Character) int {
	if d := common.Sign(c.X() - h.X()); d != 0 {
		return d
	}
	if d := common.Sign(h.VX()); d != 0 {
		return d
	}
	return 1
}

// ResolveHits checks every live hazard against every character. A hazard
// strikes each player at most once: the hit is recorded with MarkHit, the
// hazard damage is taken from the character's health and the character is
// knocked ImpactX away from the hazard. Hazards without a hitbox never hit.
// Returns the number of new hits.
func ResolveHits(hazards []*component.Hazard, characters *ecs.Registry[component.Character], emitter *component.CombatEventEmitter) int {
	hits := 0
	for _, h := range hazards {
		if !h.Alive() || h.HitX() <= 0 || h.HitY() <= 0 {
			continue
		}
		box := hazardBox(h)
		characters.Each(func(_ ecs.Entity, c *component.Character) {
			if h.IsHitBy(c.Player) || !box.Intersects(hurtBox(c)) {
				return
			}
			h.MarkHit(c.Player)
			if !h.IsHitBy(c.Player) {
				return
			}
			hits++

			evt := component.CombatEvent{
				Type:     component.EventHazardHit,
				Player:   c.Player,
				HazardID: h.ID(),
				Kind:     h.Kind(),
				Damage:   h.Damage(),
				PosX:     h.X(),
				PosY:     h.Y(),
				ImpactX:  h.ImpactX(),
				ImpactY:  h.ImpactY(),
			}
			emitter.Emit(evt)

			c.SetX(c.X() + knockDirection(h, c)*h.ImpactX())

			wasAlive := c.Health.IsAlive()
			evt.Type = component.EventDamageApplied
			if c.Health.ApplyDamage(h.Damage(), evt) {
				emitter.Emit(evt)
			}
			if wasAlive && !c.Health.IsAlive() {
				evt.Type = component.EventKO
				emitter.Emit(evt)
			}
		})
	}
	return hits
}
