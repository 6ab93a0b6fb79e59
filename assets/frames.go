package assets

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/brawler/component"
	"github.com/milk9111/brawler/prefabs"
	"golang.org/x/image/colornames"
)

const (
	placeholderSize   = 32
	placeholderFrames = 4
)

// BuildFrameTable builds the per-kind frame table for a hazard catalog.
// Kinds with a loadable sheet are sliced from it; every other kind gets
// generated placeholder frames in the sprite colour. When several specs
// share a kind the first one wins.
func BuildFrameTable(cat *prefabs.HazardCatalog) (component.FrameTable, error) {
	if cat == nil {
		return nil, fmt.Errorf("assets: nil hazard catalog")
	}

	table := make(component.FrameTable, cat.Kinds())
	for _, spec := range cat.Hazards {
		if table[spec.Kind] != nil {
			continue
		}
		table[spec.Kind] = hazardFrames(spec)
	}
	return table, nil
}

func hazardFrames(spec prefabs.HazardSpec) []*ebiten.Image {
	s := spec.Sprite
	if s.Sheet != "" {
		sheet, err := LoadImage(s.Sheet)
		if err == nil {
			if frames := component.SliceSheet(sheet, s.FrameW, s.FrameH, s.Frames); len(frames) > 0 {
				return frames
			}
		}
		slog.Warn("hazard sheet unusable, using placeholder", "hazard", spec.Name, "sheet", s.Sheet, "err", err)
	}

	w, h := s.FrameW, s.FrameH
	if w <= 0 {
		w = placeholderSize
	}
	if h <= 0 {
		h = placeholderSize
	}
	n := s.Frames
	if n <= 0 {
		n = placeholderFrames
	}
	return PlaceholderFrames(w, h, n, s.Color.Color)
}

// PlaceholderFrames generates n solid frames that pulse in brightness, so a
// running animation is visible without art.
func PlaceholderFrames(w, h, n int, base color.Color) []*ebiten.Image {
	if base == nil {
		base = colornames.Magenta
	}
	frames := make([]*ebiten.Image, n)
	for i := range frames {
		img := ebiten.NewImage(w, h)
		img.Fill(shade(base, i, n))
		frames[i] = img
	}
	return frames
}

// shade scales the colour from 60% to 100% brightness across the cycle.
func shade(base color.Color, i, n int) color.NRGBA {
	c := color.NRGBAModel.Convert(base).(color.NRGBA)
	if n <= 1 {
		return c
	}
	f := 0.6 + 0.4*float64(i)/float64(n-1)
	return color.NRGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
