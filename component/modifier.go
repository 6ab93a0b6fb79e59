package component

import (
	"fmt"

	"github.com/milk9111/brawler/common"
)

// ModifierKind selects the effect a Modifier applies.
type ModifierKind uint8

const (
	// ModifierDamageBoost sets the attack damage multiplier.
	ModifierDamageBoost ModifierKind = iota
	// ModifierGravityChange sets the gravity multiplier. Gravity is an integer
	// with a neutral value of 1, so it can only be made heavier.
	ModifierGravityChange
	// ModifierPositionRestrain pulls X toward an anchor by a fraction of the
	// remaining distance each tick.
	ModifierPositionRestrain
	// ModifierPush adds a constant offset to X each tick.
	ModifierPush
)

var modifierKindNames = [...]string{
	ModifierDamageBoost:      "damage_boost",
	ModifierGravityChange:    "gravity_change",
	ModifierPositionRestrain: "position_restrain",
	ModifierPush:             "push",
}

func (k ModifierKind) String() string {
	if int(k) < len(modifierKindNames) {
		return modifierKindNames[k]
	}
	return fmt.Sprintf("ModifierKind(%d)", uint8(k))
}

// ParseModifierKind maps a name as used in prefab files and scripts to a kind.
func ParseModifierKind(name string) (ModifierKind, error) {
	for i, n := range modifierKindNames {
		if n == name {
			return ModifierKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown modifier kind %q", name)
}

// Modifier is a timed effect on one character. It is re-applied every tick
// by Sustain until its duration runs out, then reset exactly once.
//
// The set of effects is closed, so Modifier is a tagged struct: `kind`
// decides which of the parameter fields are meaningful.
type Modifier struct {
	kind     ModifierKind
	duration int
	expired  bool

	damageMultiplier  float64
	gravityMultiplier int
	anchorX           int
	pullStrength      float64
	pushStrength      int
}

// NewDamageBoost multiplies all damage the character inflicts for
// `duration` ticks. The effect is applied immediately.
func NewDamageBoost(body Body, multiplier float64, duration int) *Modifier {
	return start(body, &Modifier{kind: ModifierDamageBoost, duration: duration, damageMultiplier: multiplier})
}

// NewGravityChange sets the character's gravity multiplier for `duration`
// ticks. The effect is applied immediately.
func NewGravityChange(body Body, multiplier, duration int) *Modifier {
	return start(body, &Modifier{kind: ModifierGravityChange, duration: duration, gravityMultiplier: multiplier})
}

// NewPositionRestrain holds the character near anchorX. `strength` in (0, 1)
// is the fraction of the distance closed per tick. The effect is applied
// immediately.
func NewPositionRestrain(body Body, strength float64, anchorX, duration int) *Modifier {
	return start(body, &Modifier{kind: ModifierPositionRestrain, duration: duration, anchorX: anchorX, pullStrength: strength})
}

// NewPush moves the character by `strength` every tick. The effect is
// applied immediately.
func NewPush(body Body, strength, duration int) *Modifier {
	return start(body, &Modifier{kind: ModifierPush, duration: duration, pushStrength: strength})
}

func start(body Body, m *Modifier) *Modifier {
	m.Apply(body)
	return m
}

// Apply asserts the effect on body.
func (m *Modifier) Apply(body Body) {
	switch m.kind {
	case ModifierDamageBoost:
		body.SetAttackDamageMultiplier(m.damageMultiplier)
	case ModifierGravityChange:
		body.SetGravityMultiplier(m.gravityMultiplier)
	case ModifierPositionRestrain:
		x := body.X()
		body.SetX(x + int(float64(m.anchorX-x)*m.pullStrength))
	case ModifierPush:
		body.SetX(body.X() + m.pushStrength)
	default:
		panic(fmt.Sprintf("component: apply of unknown modifier kind %d", m.kind))
	}
}

// Reset puts body back to the neutral value of the effect. Position effects
// are not undone; they simply stop recurring.
func (m *Modifier) Reset(body Body) {
	switch m.kind {
	case ModifierDamageBoost:
		body.SetAttackDamageMultiplier(NeutralAttackDamageMultiplier)
	case ModifierGravityChange:
		body.SetGravityMultiplier(NeutralGravityMultiplier)
	case ModifierPositionRestrain, ModifierPush:
	default:
		panic(fmt.Sprintf("component: reset of unknown modifier kind %d", m.kind))
	}
}

// Sustain runs one tick. While duration is positive it applies the effect,
// counts down and returns true. Once the duration is spent it resets the
// effect and returns false; the modifier must then be dropped.
func (m *Modifier) Sustain(body Body) bool {
	common.Assert(!m.expired, "%s modifier sustained after expiry", m.kind)

	if m.duration > 0 {
		m.Apply(body)
		m.duration--
		return true
	}
	m.Reset(body)
	m.expired = true
	return false
}

// Kind returns the effect kind.
func (m *Modifier) Kind() ModifierKind { return m.kind }

// Duration returns the ticks of effect left.
func (m *Modifier) Duration() int { return m.duration }

// Expired reports whether Sustain has returned false.
func (m *Modifier) Expired() bool { return m.expired }

// String describes the modifier for logs and the debug overlay.
func (m *Modifier) String() string {
	switch m.kind {
	case ModifierDamageBoost:
		return fmt.Sprintf("%s x%.2f (%d)", m.kind, m.damageMultiplier, m.duration)
	case ModifierGravityChange:
		return fmt.Sprintf("%s x%d (%d)", m.kind, m.gravityMultiplier, m.duration)
	case ModifierPositionRestrain:
		return fmt.Sprintf("%s @%d %.2f (%d)", m.kind, m.anchorX, m.pullStrength, m.duration)
	case ModifierPush:
		return fmt.Sprintf("%s %+d (%d)", m.kind, m.pushStrength, m.duration)
	}
	return m.kind.String()
}
