package component

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/brawler/common"
)

// Default values for a freshly constructed hazard. Spawners are expected to
// call Initialize with real values right after NewHazard.
const (
	DefaultHazardX        = 400
	DefaultHazardY        = 300
	DefaultHazardDuration = 60
	DefaultHazardImpact   = 5
	DefaultHazardScale    = 0.5

	// hazardFrameHold is how many ticks each hazard animation frame is shown.
	hazardFrameHold = 2
)

// FrameProvider supplies the animation frames for each hazard kind.
type FrameProvider interface {
	HazardFrames(kind int) []*ebiten.Image
}

// FrameTable is a FrameProvider backed by a slice indexed by kind. Missing or
// out-of-range kinds resolve to no frames.
type FrameTable [][]*ebiten.Image

func (t FrameTable) HazardFrames(kind int) []*ebiten.Image {
	if kind < 0 || kind >= len(t) {
		return nil
	}
	return t[kind]
}

// HazardPhase is the lifecycle state of a hazard.
type HazardPhase uint8

const (
	// HazardAlive counts down the natural duration.
	HazardAlive HazardPhase = iota
	// HazardStruck counts down the post-hit countdown.
	HazardStruck
	// HazardDead means Tick has reported false. The hazard must be dropped.
	HazardDead
)

func (p HazardPhase) String() string {
	switch p {
	case HazardAlive:
		return "alive"
	case HazardStruck:
		return "struck"
	case HazardDead:
		return "dead"
	}
	return "unknown"
}

// HazardConfig carries everything Initialize overwrites.
type HazardConfig struct {
	X, Y   int
	VX, VY int
	// Duration is the life in ticks if the hazard never hits anyone.
	Duration int
	// HitX/HitY is the hitbox size read by the collision system.
	HitX, HitY int
	// ImpactX/ImpactY is the knockback applied to whoever gets hit.
	ImpactX, ImpactY int
	Damage           int
	// HitCountdown is the life in ticks after the first hit.
	HitCountdown int
}

// Hazard is a transient projectile or effect that can strike either player.
//
// The clock is a small state machine: while alive, `remaining` counts the
// natural duration down; the first MarkHit switches to the struck phase and
// `remaining` becomes the post-hit countdown. The duration value is frozen
// from that point on.
type Hazard struct {
	id   int
	kind int

	x, y   int
	vx, vy int
	scale  float64

	phase        HazardPhase
	remaining    int
	duration     int
	hitCountdown int

	hit       bool
	hitStatus [common.Players]bool

	hitX, hitY       int
	impactX, impactY int
	damage           int

	anim *AnimationCycle
}

// NewHazard creates a hazard with default placement and timing. The frames
// for `kind` are looked up once; a nil provider or unknown kind gives an
// empty animation.
func NewHazard(id, kind int, frames FrameProvider) *Hazard {
	var imgs []*ebiten.Image
	if frames != nil {
		imgs = frames.HazardFrames(kind)
	}
	h := &Hazard{
		id:    id,
		kind:  kind,
		scale: DefaultHazardScale,
		anim:  NewAnimationCycle(imgs, hazardFrameHold),
	}
	h.Initialize(HazardConfig{
		X:        DefaultHazardX,
		Y:        DefaultHazardY,
		Duration: DefaultHazardDuration,
		ImpactX:  DefaultHazardImpact,
		ImpactY:  DefaultHazardImpact,
	})
	return h
}

// Initialize overwrites placement, timing and damage and clears every hit
// flag. It is used at spawn time and to recycle a pooled hazard.
func (h *Hazard) Initialize(cfg HazardConfig) {
	h.x, h.y = cfg.X, cfg.Y
	h.vx, h.vy = cfg.VX, cfg.VY
	h.hitX, h.hitY = cfg.HitX, cfg.HitY
	h.impactX, h.impactY = cfg.ImpactX, cfg.ImpactY
	h.damage = cfg.Damage

	h.duration = cfg.Duration
	h.hitCountdown = cfg.HitCountdown
	h.phase = HazardAlive
	h.remaining = cfg.Duration

	h.hit = false
	h.hitStatus = [common.Players]bool{}
	h.anim.Reset()
}

// Reuse gives a pooled hazard a new identity. The kind, and so the
// animation frames, stay the same.
func (h *Hazard) Reuse(id int, cfg HazardConfig) {
	h.id = id
	h.Initialize(cfg)
}

// Tick advances the hazard one frame and reports whether it is still alive.
// The terminal tick does not move or animate. Calling Tick again after it
// returned false is a caller bug.
func (h *Hazard) Tick() bool {
	common.Assert(h.phase != HazardDead, "hazard %d ticked after death", h.id)

	h.remaining--
	if h.phase == HazardAlive {
		h.duration = h.remaining
	}
	if h.remaining <= 0 {
		h.phase = HazardDead
		return false
	}

	h.x += h.vx
	h.y += h.vy
	h.anim.Advance()
	return true
}

// MarkHit records that `player` (0 or 1) was struck. The first hit switches
// the hazard to its post-hit countdown from the next tick on. Unknown
// players and repeated hits are ignored. The hazard must not be dead.
func (h *Hazard) MarkHit(player int) {
	if player < 0 || player >= common.Players || h.hitStatus[player] {
		return
	}
	common.Assert(h.phase != HazardDead, "hazard %d marked hit after death", h.id)

	h.hitStatus[player] = true
	h.hit = true
	if h.phase == HazardAlive {
		h.phase = HazardStruck
		h.remaining = h.hitCountdown
	}
}

// IsHitBy reports whether `player` has been struck. Unknown players report false.
func (h *Hazard) IsHitBy(player int) bool {
	if player < 0 || player >= common.Players {
		return false
	}
	return h.hitStatus[player]
}

// Hit reports whether any player has been struck.
func (h *Hazard) Hit() bool { return h.hit }

// Phase returns the lifecycle phase.
func (h *Hazard) Phase() HazardPhase { return h.phase }

// Alive reports whether the hazard has not yet expired.
func (h *Hazard) Alive() bool { return h.phase != HazardDead }

func (h *Hazard) ID() int   { return h.id }
func (h *Hazard) Kind() int { return h.kind }
func (h *Hazard) X() int    { return h.x }
func (h *Hazard) Y() int    { return h.y }
func (h *Hazard) VX() int   { return h.vx }
func (h *Hazard) VY() int   { return h.vy }

// Duration returns the ticks of natural life left. It stops changing once
// the hazard has been hit.
func (h *Hazard) Duration() int { return h.duration }

// HitCountdown returns the post-hit ticks left, or the configured post-hit
// life if nobody has been hit yet.
func (h *Hazard) HitCountdown() int {
	if !h.hit {
		return h.hitCountdown
	}
	return h.remaining
}

func (h *Hazard) HitX() int    { return h.hitX }
func (h *Hazard) HitY() int    { return h.hitY }
func (h *Hazard) ImpactX() int { return h.impactX }
func (h *Hazard) ImpactY() int { return h.impactY }
func (h *Hazard) Damage() int  { return h.damage }

func (h *Hazard) Scale() float64 { return h.scale }

// SetScale changes the render scale. It has no effect on the simulation.
func (h *Hazard) SetScale(s float64) { h.scale = s }

// Frame returns the current animation frame, nil if the kind had none.
func (h *Hazard) Frame() *ebiten.Image { return h.anim.Frame() }

// Animation exposes the hazard's frame cycle for drawing.
func (h *Hazard) Animation() *AnimationCycle { return h.anim }
