package sparks

// Region classifies a single mask cell.
type Region uint8

// Region values. Every cell of a classified mask is exactly one of these.
const (
	// RegionFill is a cell covered by glyph ink.
	RegionFill Region = iota

	// RegionOutside is a background cell reachable from the bitmap border
	// without crossing ink.
	RegionOutside

	// RegionHole is a background cell enclosed by ink and unreachable from
	// the border, such as the counter of an "O".
	RegionHole
)

// String returns the name of the region.
func (r Region) String() string {
	switch r {
	case RegionFill:
		return "Fill"
	case RegionOutside:
		return "Outside"
	case RegionHole:
		return "Hole"
	}
	return "Unknown"
}

// Regions labels every cell of a mask as fill, outside, or hole.
// The grid is parallel to the mask it was derived from and immutable once
// built.
type Regions struct {
	width  int
	height int
	cells  []Region
}

// At returns the region of the cell at (x, y).
// Out-of-bounds coordinates are background beyond the bitmap, so they read
// as RegionOutside.
func (r *Regions) At(x, y int) Region {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return RegionOutside
	}
	return r.cells[y*r.width+x]
}

// Width returns the width of the label grid in cells.
func (r *Regions) Width() int {
	return r.width
}

// Height returns the height of the label grid in cells.
func (r *Regions) Height() int {
	return r.height
}

// Count returns the number of cells labeled with the given region.
func (r *Regions) Count(region Region) int {
	n := 0
	for _, c := range r.cells {
		if c == region {
			n++
		}
	}
	return n
}

// Classify partitions every cell of the mask into fill, outside, and hole.
//
// Background cells are flood-filled from the bitmap border over 8-connected
// non-ink neighbors; anything reached is outside, any background cell never
// reached is an enclosed hole. The traversal uses an explicit FIFO queue
// preallocated to the pixel count, so arbitrarily large bitmaps cannot
// overflow the stack. Runs in O(pixels) and visits each cell at most once.
//
// A mask with no ink at all classifies as all outside.
func Classify(m *Mask) *Regions {
	w, h := m.width, m.height
	r := &Regions{
		width:  w,
		height: h,
		cells:  make([]Region, w*h),
	}

	// Unvisited background starts as hole; the flood fill promotes every
	// border-reachable cell to outside. Visited state lives in the grid
	// itself: a cell already labeled outside is never enqueued twice.
	for i, f := range m.fill {
		if f {
			r.cells[i] = RegionFill
		} else {
			r.cells[i] = RegionHole
		}
	}

	queue := make([]int32, 0, w*h)

	// Seeding on an ink border cell is a no-op, so a fully inked border
	// row or column is handled without special casing.
	seed := func(x, y int) {
		i := y*w + x
		if r.cells[i] == RegionHole {
			r.cells[i] = RegionOutside
			queue = append(queue, int32(i))
		}
	}
	for x := 0; x < w; x++ {
		seed(x, 0)
		seed(x, h-1)
	}
	for y := 1; y < h-1; y++ {
		seed(0, y)
		seed(w-1, y)
	}

	for head := 0; head < len(queue); head++ {
		i := int(queue[head])
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			ny := y + dy
			if ny < 0 || ny >= h {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx := x + dx
				if nx < 0 || nx >= w {
					continue
				}
				j := ny*w + nx
				if r.cells[j] == RegionHole {
					r.cells[j] = RegionOutside
					queue = append(queue, int32(j))
				}
			}
		}
	}

	return r
}
