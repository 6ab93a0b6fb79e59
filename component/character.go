package component

// Body is the part of a character that modifiers read and write.
type Body interface {
	X() int
	SetX(x int)
	SetGravityMultiplier(m int)
	SetAttackDamageMultiplier(m float64)
}

// Neutral multiplier values restored when a modifier resets.
const (
	NeutralGravityMultiplier      = 1
	NeutralAttackDamageMultiplier = 1.0
)

// Character is one combatant. Only the fields hazards and modifiers touch
// live here; motion physics and the action state machine are elsewhere.
type Character struct {
	Player int

	x, y          int
	Width, Height int

	gravityMultiplier      int
	attackDamageMultiplier float64

	Health *Health
}

// NewCharacter creates a character for player slot `player` with neutral
// multipliers.
func NewCharacter(player, x, y, width, height, hp int) Character {
	return Character{
		Player:                 player,
		x:                      x,
		y:                      y,
		Width:                  width,
		Height:                 height,
		gravityMultiplier:      NeutralGravityMultiplier,
		attackDamageMultiplier: NeutralAttackDamageMultiplier,
		Health:                 NewHealth(hp),
	}
}

func (c *Character) X() int     { return c.x }
func (c *Character) SetX(x int) { c.x = x }
func (c *Character) Y() int     { return c.y }
func (c *Character) SetY(y int) { c.y = y }

func (c *Character) GravityMultiplier() int     { return c.gravityMultiplier }
func (c *Character) SetGravityMultiplier(m int) { c.gravityMultiplier = m }

func (c *Character) AttackDamageMultiplier() float64     { return c.attackDamageMultiplier }
func (c *Character) SetAttackDamageMultiplier(m float64) { c.attackDamageMultiplier = m }

// Hurtbox returns the character's axis-aligned box as left, top, right, bottom.
// X is the horizontal centre and Y the top edge.
func (c *Character) Hurtbox() (l, t, r, b int) {
	half := c.Width / 2
	return c.x - half, c.y, c.x + half, c.y + c.Height
}
