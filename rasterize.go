package sparks

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Alpha values at or below this threshold are antialiasing speckle, not ink.
const alphaThreshold = 8

// Pixel ratio clamp range. Anything above 2 doubles memory and classification
// cost for no visible gain in a particle overlay.
const (
	minPixelRatio = 1.0
	maxPixelRatio = 2.0
)

// Geometry describes the content box of the host's text element, in logical
// (unscaled) pixels, plus the device pixel ratio of the surface it is
// presented on.
type Geometry struct {
	// Width and Height are the content-box dimensions of the live text.
	Width, Height float64

	// LeftInset is the horizontal offset of the first glyph from the left
	// edge of the content box.
	LeftInset float64

	// PixelRatio is the device pixel ratio. Values outside [1, 2] are
	// clamped; zero means 1.
	PixelRatio float64
}

// Field is one immutable generation of rasterization output: the ink mask,
// its region labels, and the edge point set, built together and published to
// the simulation as a single snapshot. A rebuild never mutates a previous
// Field, so a tick always observes a consistent mask/labels/edges triple.
type Field struct {
	mask   *Mask
	labels *Regions
	edges  []EdgePoint
	scale  float64
}

// Mask returns the ink mask of this generation.
func (f *Field) Mask() *Mask { return f.mask }

// Labels returns the region labels of this generation.
func (f *Field) Labels() *Regions { return f.labels }

// Edges returns the edge point set of this generation.
// The returned slice is shared and must be treated as read-only.
func (f *Field) Edges() []EdgePoint { return f.edges }

// Scale returns the clamped device pixel ratio the mask was built at.
func (f *Field) Scale() float64 { return f.scale }

// clampPixelRatio resolves the effective device pixel ratio for a rebuild.
// Computed once per rebuild and carried in the Field, never read from any
// global, so each effect instance stays independently testable.
func clampPixelRatio(ratio float64) float64 {
	if ratio == 0 {
		return minPixelRatio
	}
	return math.Min(maxPixelRatio, math.Max(minPixelRatio, ratio))
}

// BuildField rasterizes the text and derives the full edge field from it.
//
// The mask grid measures (Width + 2*bleed) x (Height + 2*bleed) logical
// pixels scaled by the clamped pixel ratio, matching the overlay surface
// exactly.
// Glyphs are drawn through the regular gg text pipeline with a face derived
// at fontSize x scale: the baseline sits at ascent plus half the leading gap
// below the top of the content box, and the first glyph starts at the
// geometry's left inset, so the mask aligns pixel-for-pixel with text the
// host renders with the same face.
//
// BuildField is a pure function of its arguments: identical inputs produce
// identical masks, labels, and edges. Zero or negative box dimensions clamp
// to a 1-pixel grid and yield a dormant (all outside, no edges) field.
func BuildField(source *text.FontSource, fontSize float64, s string, geom Geometry, bleed float64) *Field {
	scale := clampPixelRatio(geom.PixelRatio)
	boxW, boxH := geom.Width, geom.Height
	if boxW < 1 || boxH < 1 {
		// A zero-value Geometry is the documented not-yet-laid-out state
		// (the provisional build at creation), not a host mistake.
		if geom != (Geometry{}) {
			Logger().Warn("sparks: degenerate geometry clamped",
				"width", boxW, "height", boxH)
		}
		boxW = math.Max(boxW, 1)
		boxH = math.Max(boxH, 1)
	}
	w := int(math.Ceil((boxW + 2*bleed) * scale))
	h := int(math.Ceil((boxH + 2*bleed) * scale))

	pm := gg.NewPixmap(w, h)
	dc := gg.NewContext(w, h, gg.WithPixmap(pm))
	dc.ClearWithColor(gg.Transparent)

	if s != "" && source != nil {
		face := source.Face(fontSize * scale)
		dc.SetFont(face)

		// Vertical centering mirrors inline text layout: the leading gap
		// (box height minus ascent+descent) splits evenly above and below
		// the line, and the baseline hangs ascent below the half gap.
		met := face.Metrics()
		leading := boxH*scale - met.Ascent - met.Descent
		baseline := bleed*scale + leading/2 + met.Ascent
		left := (bleed + geom.LeftInset) * scale

		// Only the alpha channel is sampled; the color is irrelevant.
		dc.SetRGB(1, 1, 1)
		dc.DrawString(s, left, baseline)
	}

	mask := maskFromAlpha(pm)
	labels := Classify(mask)
	edges := ExtractEdges(mask, labels)

	Logger().Debug("sparks: field rebuilt",
		"width", w, "height", h, "scale", scale,
		"fill", mask.FillCount(), "edges", len(edges))

	return &Field{
		mask:   mask,
		labels: labels,
		edges:  edges,
		scale:  scale,
	}
}

// maskFromAlpha thresholds the alpha channel of a rendered pixmap into an
// ink mask. The threshold is small but nonzero to reject antialiasing
// speckle at glyph boundaries.
func maskFromAlpha(pm *gg.Pixmap) *Mask {
	w, h := pm.Width(), pm.Height()
	m := NewMask(w, h)
	data := pm.Data() // RGBA, 4 bytes per pixel
	for i := 0; i < w*h; i++ {
		if data[i*4+3] > alphaThreshold {
			m.fill[i] = true
		}
	}
	return m
}
