package sparks

import (
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// palette resolves per-particle colors from the configured color strings.
// With no usable entries it derives a random fully saturated hue per pick.
type palette struct {
	colors []gg.RGBA
}

// newPalette parses hex color strings ("#rgb" or "#rrggbb"). Unparseable
// entries are dropped with a warning; an empty result falls back to random
// hues, never to an error.
func newPalette(specs []string) palette {
	var p palette
	for _, s := range specs {
		c, err := colorful.Hex(s)
		if err != nil {
			Logger().Warn("sparks: dropping unparseable palette color",
				"color", s, "error", err)
			continue
		}
		p.colors = append(p.colors, gg.RGBA{R: c.R, G: c.G, B: c.B, A: 1})
	}
	return p
}

// pick returns a color for a newly spawned particle.
func (p palette) pick(rng *rand.Rand) gg.RGBA {
	if len(p.colors) == 0 {
		c := colorful.Hsv(rng.Float64()*360, 1, 1)
		return gg.RGBA{R: c.R, G: c.G, B: c.B, A: 1}
	}
	return p.colors[rng.IntN(len(p.colors))]
}
