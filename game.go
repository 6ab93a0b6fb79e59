package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/brawler/assets"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/component"
	"github.com/milk9111/brawler/prefabs"
	"github.com/milk9111/brawler/system"
	"golang.org/x/image/colornames"
)

const hitFlashFrames = 8

var (
	hazardKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6}
	presetKeys = []ebiten.Key{ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6}

	playerColors = [common.Players]color.Color{colornames.Steelblue, colornames.Indianred}
)

type Game struct {
	matchName string
	debug     bool
	paused    bool
	quit      bool

	world   *system.World
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher

	hitSound *audio.Player
	flash    [common.Players]int
	log      *slog.Logger
}

func NewGame(matchName string, debug, watch bool) (*Game, error) {
	g := &Game{
		matchName: matchName,
		debug:     debug,
		log:       slog.Default().With("component", "game"),
	}

	match, frames, err := loadMatch(matchName)
	if err != nil {
		return nil, err
	}
	world, err := system.NewWorld(match, frames)
	if err != nil {
		return nil, err
	}
	g.world = world
	world.Events.Subscribe(g.onCombatEvent)

	if p, err := assets.LoadAudioPlayer("sounds/hit.wav"); err == nil {
		g.hitSound = p
	} else {
		g.log.Warn("hit sound unavailable", "err", err)
	}

	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			g.log.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func loadMatch(name string) (*prefabs.Match, component.FrameTable, error) {
	match, err := prefabs.LoadMatch(name)
	if err != nil {
		return nil, nil, err
	}
	frames, err := assets.BuildFrameTable(match.Hazards)
	if err != nil {
		return nil, nil, err
	}
	return match, frames, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// restart reloads the match from disk and starts a fresh round. The running
// round is kept if anything fails to load.
func (g *Game) restart() {
	assets.ForgetImages()
	match, frames, err := loadMatch(g.matchName)
	if err != nil {
		g.log.Error("reload failed", "match", g.matchName, "err", err)
		return
	}
	if err := g.world.Reload(match, frames); err != nil {
		g.log.Error("reload failed", "match", g.matchName, "err", err)
		return
	}
	g.flash = [common.Players]int{}
}

func (g *Game) onCombatEvent(evt component.CombatEvent) {
	if evt.Type != component.EventHazardHit {
		return
	}
	if evt.Player >= 0 && evt.Player < common.Players {
		g.flash[evt.Player] = hitFlashFrames
	}
	if g.hitSound != nil {
		g.hitSound.Rewind()
		g.hitSound.Play()
	}
}

func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	restart := false
	for _, c := range g.watcher.Drain() {
		g.log.Info("prefab changed", "path", c.Path)
		switch c.Kind {
		case prefabs.ChangeSpec:
			restart = true
		case prefabs.ChangeScript:
			if err := g.world.ReloadScript(); err != nil {
				g.log.Error("script reload failed", "err", err)
			}
		}
	}
	if restart {
		g.restart()
	}
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}

	for i, key := range hazardKeys {
		if i >= len(g.world.Match.Hazards.Hazards) || !inpututil.IsKeyJustPressed(key) {
			continue
		}
		name := g.world.Match.Hazards.Hazards[i].Name
		if _, err := g.world.SpawnHazard(name); err != nil {
			g.log.Warn("spawn failed", "hazard", name, "err", err)
		}
	}

	target := 0
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		target = 1
	}
	for i, key := range presetKeys {
		if i >= len(g.world.Match.Modifiers.Modifiers) || !inpututil.IsKeyJustPressed(key) {
			continue
		}
		name := g.world.Match.Modifiers.Modifiers[i].Name
		if _, err := g.world.ApplyModifier(name, target); err != nil {
			g.log.Warn("apply failed", "modifier", name, "err", err)
		}
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.applyChanges()
	g.handleInput()

	if _, over := g.world.Winner(); over {
		return nil
	}

	g.world.Step()
	for i := range g.flash {
		if g.flash[i] > 0 {
			g.flash[i]--
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	stage := g.world.Match.Spec.Stage
	if stage.Floor > 0 {
		vector.FillRect(screen, 0, float32(stage.Floor), float32(common.BaseWidth), float32(common.BaseHeight-stage.Floor), colornames.Darkslategray, false)
	}

	for i := range common.Players {
		g.drawCharacter(screen, i)
	}
	for _, h := range g.world.Hazards.Hazards() {
		g.drawHazard(screen, h)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frame: %d    FPS: %.2f    Hazards: %d", g.world.Frame(), ebiten.ActualFPS(), g.world.Hazards.Len()))
	if g.debug {
		g.drawDebug(screen)
	}
	if winner, over := g.world.Winner(); over {
		msg := "Draw! Press R"
		if winner >= 0 {
			msg = fmt.Sprintf("Player %d wins! Press R", winner+1)
		}
		ebitenutil.DebugPrintAt(screen, msg, common.BaseWidth/2-60, common.BaseHeight/2)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawCharacter(screen *ebiten.Image, i int) {
	c := g.world.Player(i)
	if c == nil {
		return
	}
	l, t, r, b := c.Hurtbox()
	clr := playerColors[i]
	if g.flash[i] > 0 {
		clr = colornames.White
	}
	vector.FillRect(screen, float32(l), float32(t), float32(r-l), float32(b-t), clr, false)

	const barW, barH = 60, 6
	x := float32(c.X() - barW/2)
	y := float32(t - 14)
	vector.FillRect(screen, x, y, barW, barH, colornames.Dimgray, false)
	vector.FillRect(screen, x, y, float32(barW*c.Health.Ratio()), barH, colornames.Limegreen, false)
}

func (g *Game) drawHazard(screen *ebiten.Image, h *component.Hazard) {
	frame := h.Frame()
	if frame == nil {
		half := float32(8)
		vector.FillRect(screen, float32(h.X())-half, float32(h.Y())-half, half*2, half*2, colornames.Magenta, false)
		return
	}
	bounds := frame.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(bounds.Dx())/2, -float64(bounds.Dy())/2)
	op.GeoM.Scale(h.Scale(), h.Scale())
	op.GeoM.Translate(float64(h.X()), float64(h.Y()))
	if h.Phase() == component.HazardStruck {
		op.ColorScale.ScaleAlpha(0.5)
	}
	h.Animation().Draw(screen, op)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	for _, h := range g.world.Hazards.Hazards() {
		x := float32(h.X() - h.HitX()/2)
		y := float32(h.Y() - h.HitY()/2)
		vector.FillRect(screen, x, y, float32(h.HitX()), float32(h.HitY()), color.RGBA{R: 255, G: 0, B: 0, A: 48}, false)
		vector.StrokeRect(screen, x, y, float32(h.HitX()), float32(h.HitY()), 1.0, color.RGBA{R: 255, G: 0, B: 0, A: 200}, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("#%d %s", h.ID(), h.Phase()), int(x), int(y)-16)
	}

	for i := range common.Players {
		c := g.world.Player(i)
		handle, ok := g.world.PlayerHandle(i)
		if c == nil || !ok {
			continue
		}
		var lines []string
		lines = append(lines, fmt.Sprintf("P%d hp=%d x=%d grav=%d dmg=%.2f", i+1, c.Health.Current, c.X(), c.GravityMultiplier(), c.AttackDamageMultiplier()))
		for _, m := range g.world.Modifiers.Active(handle) {
			lines = append(lines, "  "+m.String())
		}
		ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 10+i*(common.BaseWidth/2), 24)
	}
	ebitenutil.DebugPrintAt(screen, "1-6 spawn  F1-F6 modifier (shift: P2)  R restart  F12 debug  Esc pause", 10, common.BaseHeight-20)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
