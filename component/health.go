package component

// Health tracks a character's hit points.
type Health struct {
	Max     int
	Current int
	KO      bool

	OnDamage func(h *Health, evt CombatEvent)
	OnKO     func(h *Health, evt CombatEvent)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the character can still fight.
func (h *Health) IsAlive() bool {
	return h != nil && !h.KO && h.Current > 0
}

// ApplyDamage subtracts amount and fires the callbacks. Returns true if any
// damage was applied.
func (h *Health) ApplyDamage(amount int, evt CombatEvent) bool {
	if h == nil || h.KO || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.OnDamage != nil {
		h.OnDamage(h, evt)
	}
	if h.Current == 0 {
		h.KO = true
		if h.OnKO != nil {
			h.OnKO(h, evt)
		}
	}
	return true
}

// Heal restores health up to Max.
func (h *Health) Heal(amount int) {
	if h == nil || h.KO || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Ratio returns Current/Max in [0, 1] for health bars.
func (h *Health) Ratio() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}
