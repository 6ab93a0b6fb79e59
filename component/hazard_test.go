package component

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/brawler/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHazard(cfg HazardConfig) *Hazard {
	h := NewHazard(1, 0, nil)
	h.Initialize(cfg)
	return h
}

func TestNewHazardDefaults(t *testing.T) {
	h := NewHazard(7, 2, nil)
	assert.Equal(t, 7, h.ID())
	assert.Equal(t, 2, h.Kind())
	assert.Equal(t, DefaultHazardX, h.X())
	assert.Equal(t, DefaultHazardY, h.Y())
	assert.Zero(t, h.VX())
	assert.Zero(t, h.VY())
	assert.Equal(t, DefaultHazardDuration, h.Duration())
	assert.Zero(t, h.Damage())
	assert.Equal(t, DefaultHazardImpact, h.ImpactX())
	assert.Equal(t, DefaultHazardImpact, h.ImpactY())
	assert.InDelta(t, DefaultHazardScale, h.Scale(), 1e-9)
	assert.Equal(t, HazardAlive, h.Phase())
	assert.False(t, h.Hit())
	assert.Nil(t, h.Frame())
}

func TestNewHazardResolvesFrames(t *testing.T) {
	frames := testFrames(3)
	table := FrameTable{nil, frames}

	cases := []struct {
		name   string
		kind   int
		frames FrameProvider
		want   *ebiten.Image
	}{
		{"known_kind", 1, table, frames[0]},
		{"nil_entry", 0, table, nil},
		{"out_of_range", 5, table, nil},
		{"negative", -1, table, nil},
		{"nil_provider", 1, nil, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewHazard(1, c.kind, c.frames)
			assert.Same(t, c.want, h.Frame())
			assert.NotPanics(t, func() { h.Tick() })
		})
	}
}

func TestHazardExpiresNaturally(t *testing.T) {
	h := newTestHazard(HazardConfig{Duration: 3, HitCountdown: 5})

	assert.True(t, h.Tick())
	assert.True(t, h.Tick())
	assert.False(t, h.Tick())
	assert.Equal(t, HazardDead, h.Phase())
	assert.False(t, h.Alive())
}

func TestHazardStruckCountdown(t *testing.T) {
	h := newTestHazard(HazardConfig{Duration: 60, HitCountdown: 5})

	for frame := 1; frame <= 10; frame++ {
		require.True(t, h.Tick(), "frame %d", frame)
	}
	// collision runs after the tick of frame 10
	h.MarkHit(0)
	frozen := h.Duration()
	require.Equal(t, 50, frozen)

	for frame := 11; frame <= 14; frame++ {
		assert.True(t, h.Tick(), "frame %d", frame)
		assert.True(t, h.IsHitBy(0))
		assert.False(t, h.IsHitBy(1))
	}
	assert.False(t, h.Tick(), "frame 15")
	assert.True(t, h.IsHitBy(0))
	assert.False(t, h.IsHitBy(1))
	assert.Equal(t, frozen, h.Duration())
}

func TestHazardMarkHitSwitchesClockNextTick(t *testing.T) {
	h := newTestHazard(HazardConfig{Duration: 60, HitCountdown: 5})
	require.True(t, h.Tick())

	h.MarkHit(1)
	assert.Equal(t, HazardStruck, h.Phase())
	assert.Equal(t, 59, h.Duration())
	assert.Equal(t, 5, h.HitCountdown())

	assert.True(t, h.Tick())
	assert.Equal(t, 59, h.Duration())
	assert.Equal(t, 4, h.HitCountdown())
}

func TestHazardMarkHitIdempotent(t *testing.T) {
	h := newTestHazard(HazardConfig{Duration: 60, HitCountdown: 3})

	h.MarkHit(0)
	require.True(t, h.Tick())
	countdown := h.HitCountdown()

	// a repeated hit must not restart the countdown or touch player 1
	h.MarkHit(0)
	assert.Equal(t, countdown, h.HitCountdown())
	assert.True(t, h.IsHitBy(0))
	assert.False(t, h.IsHitBy(1))

	h.MarkHit(1)
	assert.Equal(t, countdown, h.HitCountdown())
	assert.True(t, h.IsHitBy(0))
	assert.True(t, h.IsHitBy(1))
	assert.True(t, h.Hit())
}

func TestHazardBadPlayerIndex(t *testing.T) {
	h := newTestHazard(HazardConfig{Duration: 10, HitCountdown: 3})

	for _, p := range []int{-1, 2, 99} {
		h.MarkHit(p)
		assert.False(t, h.IsHitBy(p))
	}
	assert.False(t, h.Hit())
	assert.Equal(t, HazardAlive, h.Phase())
}

func TestHazardBothPlayersSameFrame(t *testing.T) {
	h := newTestHazard(HazardConfig{Duration: 10, HitCountdown: 2})
	h.MarkHit(0)
	h.MarkHit(1)

	assert.True(t, h.Tick())
	assert.False(t, h.Tick())
}

func TestHazardMovesAndAnimatesWhileStruck(t *testing.T) {
	frames := testFrames(2)
	h := NewHazard(1, 0, FrameTable{frames})
	h.Initialize(HazardConfig{X: 10, Y: 20, VX: 3, VY: -1, Duration: 30, HitCountdown: 4})

	h.MarkHit(0)
	require.True(t, h.Tick())
	require.True(t, h.Tick())
	assert.Equal(t, 16, h.X())
	assert.Equal(t, 18, h.Y())
	assert.Same(t, frames[1], h.Frame())
}

func TestHazardFrozenAfterDeath(t *testing.T) {
	frames := testFrames(3)
	h := NewHazard(1, 0, FrameTable{frames})
	h.Initialize(HazardConfig{X: 0, Y: 0, VX: 2, VY: 1, Duration: 4, HitCountdown: 2})

	ticks := 0
	falses := 0
	for h.Alive() {
		if !h.Tick() {
			falses++
		}
		ticks++
	}
	assert.Equal(t, 4, ticks)
	assert.Equal(t, 1, falses)
	// the terminal tick does not move
	assert.Equal(t, 6, h.X())
	assert.Equal(t, 3, h.Y())
	assert.Same(t, frames[1], h.Frame())
}

func TestHazardTickAfterDeathPanics(t *testing.T) {
	if !common.AssertionsEnabled() {
		t.Skip("assertions compiled out")
	}
	h := newTestHazard(HazardConfig{Duration: 1})
	require.False(t, h.Tick())
	assert.Panics(t, func() { h.Tick() })
}

func TestHazardInitializeRecycles(t *testing.T) {
	h := newTestHazard(HazardConfig{Duration: 5, HitCountdown: 1})
	h.MarkHit(0)
	h.MarkHit(1)
	require.False(t, h.Tick())

	h.Reuse(42, HazardConfig{X: 1, Y: 2, VX: 3, VY: 4, Duration: 2, HitX: 5, HitY: 6, ImpactX: 7, ImpactY: 8, Damage: 9, HitCountdown: 10})
	assert.Equal(t, 42, h.ID())
	assert.Equal(t, HazardAlive, h.Phase())
	assert.False(t, h.Hit())
	assert.False(t, h.IsHitBy(0))
	assert.False(t, h.IsHitBy(1))
	assert.Equal(t, 2, h.Duration())
	assert.Equal(t, 10, h.HitCountdown())
	assert.Equal(t, 5, h.HitX())
	assert.Equal(t, 6, h.HitY())
	assert.Equal(t, 7, h.ImpactX())
	assert.Equal(t, 8, h.ImpactY())
	assert.Equal(t, 9, h.Damage())

	assert.True(t, h.Tick())
	assert.Equal(t, 4, h.X())
	assert.False(t, h.Tick())
}

func TestHazardSetScale(t *testing.T) {
	h := NewHazard(1, 0, nil)
	h.SetScale(1.5)
	assert.InDelta(t, 1.5, h.Scale(), 1e-9)
}
