package sparks

import (
	"math"

	"github.com/gogpu/gg"
)

// Radius multiplier at end of life: sparks shrink to 60% before expiring.
const endOfLifeScale = 0.6

// Compositor repaints the overlay surface from the live particle list. Each
// frame is a full repaint: clear to transparent, then one additive circle
// per particle, fading out and shrinking over its lifetime. Additive
// blending makes overlapping sparks brighten rather than occlude, and
// leaves no drawing state behind between frames.
type Compositor struct {
	surface *gg.Pixmap
}

// NewCompositor creates a compositor drawing onto the given surface.
// The compositor is the sole writer of the surface's backing store.
func NewCompositor(surface *gg.Pixmap) *Compositor {
	return &Compositor{surface: surface}
}

// Surface returns the overlay surface this compositor paints.
func (c *Compositor) Surface() *gg.Pixmap {
	return c.surface
}

// Frame repaints the surface from the given particle list.
func (c *Compositor) Frame(particles []particle) {
	c.surface.Clear(gg.Transparent)
	for i := range particles {
		c.blit(&particles[i])
	}
}

// blit draws one particle as an antialiased additive circle. Opacity fades
// linearly from 1 at spawn to 0 at expiry; the radius interpolates from the
// spawn radius down to endOfLifeScale of it.
func (c *Compositor) blit(p *particle) {
	t := p.fade()
	alpha := 1 - t
	if alpha <= 0 {
		return
	}
	r := p.radius * (1 - (1-endOfLifeScale)*t)
	if r <= 0 {
		return
	}

	w, h := c.surface.Width(), c.surface.Height()
	x0 := int(math.Floor(p.pos.X - r))
	x1 := int(math.Ceil(p.pos.X + r))
	y0 := int(math.Floor(p.pos.Y - r))
	y1 := int(math.Ceil(p.pos.Y + r))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= w {
		x1 = w - 1
	}
	if y1 >= h {
		y1 = h - 1
	}

	data := c.surface.Data()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) - p.pos.X
			dy := float64(y) - p.pos.Y
			dist := math.Sqrt(dx*dx + dy*dy)

			// One-pixel antialiased rim.
			cov := r - dist + 0.5
			if cov <= 0 {
				continue
			}
			if cov > 1 {
				cov = 1
			}

			a := alpha * cov
			i := (y*w + x) * 4
			data[i+0] = addByte(data[i+0], p.color.R*a)
			data[i+1] = addByte(data[i+1], p.color.G*a)
			data[i+2] = addByte(data[i+2], p.color.B*a)
			data[i+3] = addByte(data[i+3], a)
		}
	}
}

// addByte adds a [0, 1] contribution onto a byte channel, clamping at white.
func addByte(dst uint8, add float64) uint8 {
	v := int(dst) + int(add*255+0.5)
	if v > 255 {
		return 255
	}
	return uint8(v)
}
