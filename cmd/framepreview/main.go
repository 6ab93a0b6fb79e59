package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/brawler/assets"
	"github.com/milk9111/brawler/component"
	"github.com/milk9111/brawler/prefabs"
)

const previewSize = 512

// previewGame cycles one hazard kind's frames at the in-game hold rate.
// Left and right switch between catalog entries.
type previewGame struct {
	catalog *prefabs.HazardCatalog
	frames  component.FrameTable
	index   int
	hold    int
	scale   float64
	anim    *component.AnimationCycle
}

func (g *previewGame) selectHazard(i int) {
	n := len(g.catalog.Hazards)
	g.index = (i%n + n) % n
	spec := g.catalog.Hazards[g.index]
	g.anim = component.NewAnimationCycle(g.frames.HazardFrames(spec.Kind), g.hold)
}

func (g *previewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.selectHazard(g.index + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.selectHazard(g.index - 1)
	}
	g.anim.Advance()
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	spec := g.catalog.Hazards[g.index]
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s (kind %d)  frame %d/%d  hold %d", spec.Name, spec.Kind, g.anim.Index()+1, g.anim.Len(), g.anim.Hold()))

	frame := g.anim.Frame()
	if frame == nil {
		return
	}
	fw := float64(frame.Bounds().Dx()) * g.scale
	fh := float64(frame.Bounds().Dy()) * g.scale
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.scale, g.scale)
	op.GeoM.Translate((previewSize-fw)/2, (previewSize-fh)/2)
	g.anim.Draw(screen, op)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewSize, previewSize
}

func main() {
	catalogName := flag.String("catalog", "hazards.yaml", "hazard catalog in prefabs/")
	hazard := flag.String("hazard", "", "hazard to show first")
	hold := flag.Int("hold", 2, "ticks each frame is held")
	scale := flag.Float64("scale", 4, "zoom")
	flag.Parse()

	catalog, err := prefabs.LoadHazardCatalog(*catalogName)
	if err != nil {
		log.Fatal(err)
	}
	if len(catalog.Hazards) == 0 {
		log.Fatalf("%s has no hazards", *catalogName)
	}
	frames, err := assets.BuildFrameTable(catalog)
	if err != nil {
		log.Fatal(err)
	}

	g := &previewGame{catalog: catalog, frames: frames, hold: *hold, scale: *scale}
	g.selectHazard(0)
	for i, h := range catalog.Hazards {
		if h.Name == *hazard {
			g.selectHazard(i)
		}
	}

	ebiten.SetWindowSize(previewSize, previewSize)
	ebiten.SetWindowTitle("Hazard Frame Preview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
