package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// AnimationCycle is a looping frame animator. Each frame is held for a fixed
// number of ticks, after which the cursor moves on and wraps back to the
// first frame forever. A cycle without frames is valid and does nothing.
type AnimationCycle struct {
	frames []*ebiten.Image
	hold   int

	current int
	tick    int
}

// NewAnimationCycle creates a cycle over frames. `hold` is how many ticks each
// frame stays on screen (values below 1 are treated as 1). The slice is copied.
func NewAnimationCycle(frames []*ebiten.Image, hold int) *AnimationCycle {
	if hold < 1 {
		hold = 1
	}
	c := &AnimationCycle{hold: hold}
	if len(frames) > 0 {
		c.frames = make([]*ebiten.Image, len(frames))
		copy(c.frames, frames)
	}
	return c
}

// NewAnimationCycleFromSheet slices `sheet` into frameW x frameH frames read
// left-to-right, top-to-bottom. `frameCount` of 0 (or more than fit) reads
// every frame on the sheet.
func NewAnimationCycleFromSheet(sheet *ebiten.Image, frameW, frameH, frameCount, hold int) *AnimationCycle {
	return NewAnimationCycle(SliceSheet(sheet, frameW, frameH, frameCount), hold)
}

// SliceSheet cuts a sprite sheet into individual frame images.
func SliceSheet(sheet *ebiten.Image, frameW, frameH, frameCount int) []*ebiten.Image {
	if sheet == nil || frameW <= 0 || frameH <= 0 {
		return nil
	}
	bounds := sheet.Bounds()
	cols := bounds.Dx() / frameW
	rows := bounds.Dy() / frameH
	maxFrames := cols * rows
	if maxFrames == 0 {
		return nil
	}
	if frameCount <= 0 || frameCount > maxFrames {
		frameCount = maxFrames
	}
	frames := make([]*ebiten.Image, frameCount)
	for i := range frames {
		sx := bounds.Min.X + (i%cols)*frameW
		sy := bounds.Min.Y + (i/cols)*frameH
		frames[i] = sheet.SubImage(image.Rect(sx, sy, sx+frameW, sy+frameH)).(*ebiten.Image)
	}
	return frames
}

// Advance counts one tick and steps to the next frame once the current one
// has been held long enough. Call once per simulation tick.
func (c *AnimationCycle) Advance() {
	if c == nil || len(c.frames) == 0 {
		return
	}
	c.tick++
	if c.tick < c.hold {
		return
	}
	c.tick = 0
	c.current++
	if c.current >= len(c.frames) {
		c.current = 0
	}
}

// Frame returns the frame under the cursor, or nil for an empty cycle.
func (c *AnimationCycle) Frame() *ebiten.Image {
	if c == nil || len(c.frames) == 0 {
		return nil
	}
	return c.frames[c.current]
}

// Index returns the cursor position.
func (c *AnimationCycle) Index() int {
	if c == nil {
		return 0
	}
	return c.current
}

// Len returns the number of frames in the cycle.
func (c *AnimationCycle) Len() int {
	if c == nil {
		return 0
	}
	return len(c.frames)
}

// Hold returns the number of ticks each frame is shown for.
func (c *AnimationCycle) Hold() int {
	if c == nil {
		return 0
	}
	return c.hold
}

// Reset sets the cycle back to the first frame.
func (c *AnimationCycle) Reset() {
	if c == nil {
		return
	}
	c.current = 0
	c.tick = 0
}

// Draw draws the current frame with the given options. A nil `op` draws at
// the origin.
func (c *AnimationCycle) Draw(screen *ebiten.Image, op *ebiten.DrawImageOptions) {
	frm := c.Frame()
	if screen == nil || frm == nil {
		return
	}
	var dop ebiten.DrawImageOptions
	if op != nil {
		dop = *op
	}
	dop.Filter = ebiten.FilterNearest
	screen.DrawImage(frm, &dop)
}
