package system

import (
	"fmt"
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/component"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/prefabs"
)

// World owns one round: both characters, the hazard and modifier systems and
// the round script. Step advances it by one frame.
type World struct {
	Match      *prefabs.Match
	Characters *ecs.Registry[component.Character]
	Hazards    *HazardSystem
	Modifiers  *ModifierSystem
	Script     *ScriptSystem

	// Events receives every combat event, stamped with the frame it
	// happened on. Subscribers survive Reload.
	Events *component.CombatEventEmitter

	players [common.Players]ecs.Entity
	frames  component.FrameProvider
	engine  *tengo.ImmutableMap
	frame   int
	log     *slog.Logger
}

// NewWorld sets up a round from a loaded match. frames may be nil for
// headless runs.
func NewWorld(match *prefabs.Match, frames component.FrameProvider) (*World, error) {
	w := &World{
		Events: &component.CombatEventEmitter{},
		log:    slog.Default().With("component", "world"),
	}
	w.Events.Subscribe(w.logEvent)
	w.engine = BuildScriptEngine(scriptHost{w}, w.log)
	if err := w.Reload(match, frames); err != nil {
		return nil, err
	}
	return w, nil
}

// Reload restarts the round from match. On error the world is unchanged.
func (w *World) Reload(match *prefabs.Match, frames component.FrameProvider) error {
	if match == nil {
		return fmt.Errorf("world: nil match")
	}
	if len(match.Spec.Players) != common.Players {
		return fmt.Errorf("world: need %d players, got %d", common.Players, len(match.Spec.Players))
	}

	if match.Hazards == nil {
		match.Hazards = &prefabs.HazardCatalog{}
	}
	if match.Modifiers == nil {
		match.Modifiers = &prefabs.ModifierCatalog{}
	}

	script, err := loadRoundScript(match.Spec.Script, w.log)
	if err != nil {
		return err
	}

	inner := &component.CombatEventEmitter{}
	inner.Subscribe(func(evt component.CombatEvent) {
		evt.Frame = w.frame
		w.Events.Emit(evt)
	})

	characters := ecs.NewRegistry[component.Character]()
	var players [common.Players]ecs.Entity
	for i, spec := range match.Spec.Players {
		players[i] = characters.Create(component.NewCharacter(i, spec.X, spec.Y, spec.Width, spec.Height, spec.Health))
	}

	hazards := NewHazardSystem(frames)
	hazards.Emitter = inner
	modifiers := NewModifierSystem(characters)
	modifiers.Emitter = inner

	w.Match = match
	w.frames = frames
	w.Characters = characters
	w.players = players
	w.Hazards = hazards
	w.Modifiers = modifiers
	w.Script = script
	w.frame = 0

	w.log.Info("round loaded", "match", match.Spec.Name, "hazards", len(match.Hazards.Hazards), "modifiers", len(match.Modifiers.Modifiers), "script", match.Spec.Script)
	return nil
}

// ReloadScript swaps the round script without restarting the round. The
// script state starts empty.
func (w *World) ReloadScript() error {
	script, err := loadRoundScript(w.Match.Spec.Script, w.log)
	if err != nil {
		return err
	}
	w.Script = script
	w.log.Info("round script reloaded", "script", w.Match.Spec.Script, "frame", w.frame)
	return nil
}

func loadRoundScript(path string, logger *slog.Logger) (*ScriptSystem, error) {
	if path == "" {
		return nil, nil
	}
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("world: load script %s: %w", path, err)
	}
	return NewScriptSystem(path, src, logger)
}

// Step runs one frame: script, modifiers, hazards, hits.
func (w *World) Step() {
	if w.Script != nil {
		_ = w.Script.Update(w.engine, w.frame)
	}
	w.Modifiers.Update()
	w.Hazards.Update()
	ResolveHits(w.Hazards.Hazards(), w.Characters, w.Hazards.Emitter)
	w.keepOnStage()
	w.frame++
}

// keepOnStage clamps characters to the stage width after knockback.
func (w *World) keepOnStage() {
	width := w.Match.Spec.Stage.Width
	if width <= 0 {
		return
	}
	w.Characters.Each(func(_ ecs.Entity, c *component.Character) {
		half := c.Width / 2
		switch {
		case c.X()-half < 0:
			c.SetX(half)
		case c.X()+half > width:
			c.SetX(width - half)
		}
	})
}

// Frame returns the number of completed steps.
func (w *World) Frame() int {
	return w.frame
}

// Player returns the character in slot i, or nil.
func (w *World) Player(i int) *component.Character {
	if i < 0 || i >= common.Players {
		return nil
	}
	c, _ := w.Characters.Get(w.players[i])
	return c
}

// PlayerHandle returns the arena handle of slot i.
func (w *World) PlayerHandle(i int) (ecs.Entity, bool) {
	if i < 0 || i >= common.Players {
		return ecs.Entity{}, false
	}
	return w.players[i], w.Characters.IsAlive(w.players[i])
}

// Winner reports the surviving player once the other one is KO'd. Both
// down at once is a draw (-1, true).
func (w *World) Winner() (int, bool) {
	down := 0
	winner := -1
	for i := range common.Players {
		c := w.Player(i)
		if c == nil || !c.Health.IsAlive() {
			down++
			continue
		}
		winner = i
	}
	switch down {
	case 0:
		return -1, false
	case common.Players:
		return -1, true
	}
	return winner, true
}

// SpawnHazard spawns the named hazard at its catalog position.
func (w *World) SpawnHazard(name string) (*component.Hazard, error) {
	spec, err := w.Match.Hazards.Lookup(name)
	if err != nil {
		return nil, err
	}
	h := w.Hazards.SpawnSpec(spec)
	w.log.Debug("hazard spawned", "hazard", name, "id", h.ID(), "x", h.X(), "y", h.Y(), "frame", w.frame)
	return h, nil
}

// SpawnHazardFrom spawns the named hazard with its position and velocity
// replaced.
func (w *World) SpawnHazardFrom(name string, x, y, vx, vy int) (*component.Hazard, error) {
	spec, err := w.Match.Hazards.Lookup(name)
	if err != nil {
		return nil, err
	}
	h := w.Hazards.SpawnSpecAt(spec, x, y, vx, vy)
	w.log.Debug("hazard spawned", "hazard", name, "id", h.ID(), "x", x, "y", y, "frame", w.frame)
	return h, nil
}

// ApplyModifier applies the named preset to player.
func (w *World) ApplyModifier(name string, player int) (*component.Modifier, error) {
	spec, err := w.Match.Modifiers.Lookup(name)
	if err != nil {
		return nil, err
	}
	target, ok := w.PlayerHandle(player)
	if !ok {
		return nil, fmt.Errorf("world: no player %d", player)
	}
	m, err := w.Modifiers.ApplyPreset(target, spec)
	if err != nil {
		return nil, err
	}
	w.log.Debug("modifier applied", "modifier", name, "player", player, "effect", m.String(), "frame", w.frame)
	return m, nil
}

func (w *World) logEvent(evt component.CombatEvent) {
	switch evt.Type {
	case component.EventHazardHit:
		w.log.Debug("hazard hit", "frame", evt.Frame, "player", evt.Player, "hazard", evt.HazardID, "damage", evt.Damage)
	case component.EventKO:
		w.log.Info("player down", "frame", evt.Frame, "player", evt.Player)
	case component.EventModifierExpired:
		w.log.Debug("modifier expired", "frame", evt.Frame, "player", evt.Player, "modifier", evt.Modifier)
	case component.EventHazardExpired:
		w.log.Debug("hazard expired", "frame", evt.Frame, "hazard", evt.HazardID)
	}
}

// scriptHost adapts World to the round script engine.
type scriptHost struct {
	w *World
}

func (h scriptHost) SpawnHazard(name string) (int, error) {
	hz, err := h.w.SpawnHazard(name)
	if err != nil {
		return 0, err
	}
	return hz.ID(), nil
}

func (h scriptHost) SpawnHazardAt(name string, x, y, vx, vy int) (int, error) {
	hz, err := h.w.SpawnHazardFrom(name, x, y, vx, vy)
	if err != nil {
		return 0, err
	}
	return hz.ID(), nil
}

func (h scriptHost) ApplyPreset(name string, player int) error {
	_, err := h.w.ApplyModifier(name, player)
	return err
}

func (h scriptHost) Push(player, strength, duration int) bool {
	target, ok := h.w.PlayerHandle(player)
	return ok && h.w.Modifiers.Push(target, strength, duration) != nil
}

func (h scriptHost) BoostDamage(player int, multiplier float64, duration int) bool {
	target, ok := h.w.PlayerHandle(player)
	return ok && h.w.Modifiers.BoostDamage(target, multiplier, duration) != nil
}

func (h scriptHost) ChangeGravity(player, multiplier, duration int) bool {
	target, ok := h.w.PlayerHandle(player)
	return ok && h.w.Modifiers.ChangeGravity(target, multiplier, duration) != nil
}

func (h scriptHost) Restrain(player int, strength float64, anchorX, duration int) bool {
	target, ok := h.w.PlayerHandle(player)
	return ok && h.w.Modifiers.Restrain(target, strength, anchorX, duration) != nil
}

func (h scriptHost) PlayerX(player int) int {
	if c := h.w.Player(player); c != nil {
		return c.X()
	}
	return 0
}

func (h scriptHost) PlayerHP(player int) int {
	if c := h.w.Player(player); c != nil {
		return c.Health.Current
	}
	return 0
}

func (h scriptHost) HazardCount() int {
	return h.w.Hazards.Len()
}
