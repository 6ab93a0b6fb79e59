package component

import (
	"testing"

	"github.com/milk9111/brawler/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyBody records every write a modifier makes.
type spyBody struct {
	x       int
	gravity int
	damage  float64
	writes  []string
}

func newSpyBody(x int) *spyBody {
	return &spyBody{x: x, gravity: NeutralGravityMultiplier, damage: NeutralAttackDamageMultiplier}
}

func (b *spyBody) X() int { return b.x }

func (b *spyBody) SetX(x int) {
	b.x = x
	b.writes = append(b.writes, "x")
}

func (b *spyBody) SetGravityMultiplier(m int) {
	b.gravity = m
	if m == NeutralGravityMultiplier {
		b.writes = append(b.writes, "gravity_reset")
		return
	}
	b.writes = append(b.writes, "gravity")
}

func (b *spyBody) SetAttackDamageMultiplier(m float64) {
	b.damage = m
	if m == NeutralAttackDamageMultiplier {
		b.writes = append(b.writes, "damage_reset")
		return
	}
	b.writes = append(b.writes, "damage")
}

func count(writes []string, op string) int {
	n := 0
	for _, w := range writes {
		if w == op {
			n++
		}
	}
	return n
}

func TestDamageBoostLifecycle(t *testing.T) {
	body := newSpyBody(0)
	m := NewDamageBoost(body, 2.0, 2)
	assert.InDelta(t, 2.0, body.damage, 1e-9, "applied at construction")

	assert.True(t, m.Sustain(body))
	assert.InDelta(t, 2.0, body.damage, 1e-9)
	assert.True(t, m.Sustain(body))
	assert.InDelta(t, 2.0, body.damage, 1e-9)
	assert.False(t, m.Sustain(body))
	assert.InDelta(t, 1.0, body.damage, 1e-9)
	assert.True(t, m.Expired())
}

func TestPushLifecycle(t *testing.T) {
	body := newSpyBody(100)
	m := NewPush(body, 5, 3)
	assert.Equal(t, 105, body.x)

	for _, want := range []int{110, 115, 120} {
		require.True(t, m.Sustain(body))
		assert.Equal(t, want, body.x)
	}
	assert.False(t, m.Sustain(body))
	assert.Equal(t, 120, body.x, "push is not undone")
}

func TestGravityChangeLifecycle(t *testing.T) {
	body := newSpyBody(0)
	m := NewGravityChange(body, 3, 1)
	assert.Equal(t, 3, body.gravity)
	assert.True(t, m.Sustain(body))
	assert.Equal(t, 3, body.gravity)
	assert.False(t, m.Sustain(body))
	assert.Equal(t, NeutralGravityMultiplier, body.gravity)
}

func TestSustainCallCounts(t *testing.T) {
	cases := []struct {
		name  string
		build func(b *spyBody, d int) *Modifier
		apply string
		reset string
	}{
		{"damage_boost", func(b *spyBody, d int) *Modifier { return NewDamageBoost(b, 1.5, d) }, "damage", "damage_reset"},
		{"gravity_change", func(b *spyBody, d int) *Modifier { return NewGravityChange(b, 2, d) }, "gravity", "gravity_reset"},
		{"push", func(b *spyBody, d int) *Modifier { return NewPush(b, -4, d) }, "x", ""},
	}
	for _, c := range cases {
		for _, duration := range []int{0, 1, 5, 30} {
			t.Run(c.name, func(t *testing.T) {
				body := newSpyBody(500)
				m := c.build(body, duration)
				require.Equal(t, 1, count(body.writes, c.apply), "construction applies once")

				trues := 0
				for m.Sustain(body) {
					trues++
					assert.Equal(t, 1+trues, count(body.writes, c.apply))
				}
				assert.Equal(t, duration, trues)
				assert.Equal(t, duration+1, count(body.writes, c.apply))
				if c.reset != "" {
					assert.Equal(t, 1, count(body.writes, c.reset))
					assert.Equal(t, c.reset, body.writes[len(body.writes)-1])
				}
				if common.AssertionsEnabled() {
					assert.Panics(t, func() { m.Sustain(body) })
				}
			})
		}
	}
}

func TestPositionRestrainConverges(t *testing.T) {
	cases := []struct {
		name     string
		start    int
		anchor   int
		strength float64
	}{
		{"from_left", 0, 300, 0.25},
		{"from_right", 700, 100, 0.5},
		{"weak_pull", -50, 50, 0.05},
		{"already_there", 200, 200, 0.3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			body := newSpyBody(c.start)
			m := NewPositionRestrain(body, c.strength, c.anchor, 40)
			prevDist := common.Abs(c.anchor - c.start)
			side := common.Sign(c.start - c.anchor)
			for {
				dist := common.Abs(c.anchor - body.x)
				assert.LessOrEqual(t, dist, prevDist, "moved away from anchor")
				if dist != 0 {
					assert.Equal(t, side, common.Sign(body.x-c.anchor), "overshot anchor")
				}
				prevDist = dist
				if !m.Sustain(body) {
					break
				}
			}
			if c.start != c.anchor {
				assert.Less(t, common.Abs(c.anchor-body.x), common.Abs(c.anchor-c.start))
			}
		})
	}
}

func TestPositionRestrainStep(t *testing.T) {
	body := newSpyBody(0)
	NewPositionRestrain(body, 0.5, 100, 3)
	assert.Equal(t, 50, body.x)
}

func TestPositionRestrainResetIsNoop(t *testing.T) {
	body := newSpyBody(0)
	m := NewPositionRestrain(body, 0.5, 100, 0)
	require.Equal(t, 50, body.x)
	writes := len(body.writes)
	assert.False(t, m.Sustain(body))
	assert.Equal(t, 50, body.x)
	assert.Equal(t, writes, len(body.writes))
}

func TestParseModifierKind(t *testing.T) {
	for _, k := range []ModifierKind{ModifierDamageBoost, ModifierGravityChange, ModifierPositionRestrain, ModifierPush} {
		got, err := ParseModifierKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseModifierKind("levitate")
	assert.Error(t, err)
}
