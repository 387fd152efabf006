package sparks

// Mask is a binary ink-coverage grid over the overlay surface, one cell per
// backing-store pixel. A true cell means the rendered glyphs cover that pixel.
//
// Cells are stored row-major (y*width + x) in a flat slice, so a rebuild can
// construct a fresh grid off to the side and publish it with a single pointer
// swap.
type Mask struct {
	width  int
	height int
	fill   []bool
}

// NewMask creates an empty (all background) mask with the given dimensions.
// Dimensions are clamped to a minimum of 1 pixel.
func NewMask(width, height int) *Mask {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Mask{
		width:  width,
		height: height,
		fill:   make([]bool, width*height),
	}
}

// Width returns the width of the mask in pixels.
func (m *Mask) Width() int {
	return m.width
}

// Height returns the height of the mask in pixels.
func (m *Mask) Height() int {
	return m.height
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (m *Mask) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Fill reports whether the cell at (x, y) is glyph ink.
// Out-of-bounds cells are background.
func (m *Mask) Fill(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.fill[y*m.width+x]
}

// setFill marks the cell at (x, y) as glyph ink. The caller guarantees bounds.
func (m *Mask) setFill(x, y int) {
	m.fill[y*m.width+x] = true
}

// FillCount returns the number of ink cells.
func (m *Mask) FillCount() int {
	n := 0
	for _, f := range m.fill {
		if f {
			n++
		}
	}
	return n
}
