package sparks

import (
	"math"

	"github.com/gogpu/gg"
)

// probeDistance is how far along a candidate normal the extractor samples to
// verify which region the normal points into.
const probeDistance = 2.0

// EdgePoint is an ink cell on the glyph boundary, carrying a unit normal that
// points into the background region it borders.
//
// A single cell bordering both the outside and a hole contributes two edge
// points, one per region, with independently oriented normals.
type EdgePoint struct {
	// Pos is the cell center in mask-pixel coordinates.
	Pos gg.Point

	// Normal is the outward unit direction. Probing probeDistance pixels
	// along it from Pos is guaranteed to land in a cell of region Target.
	Normal gg.Vec2

	// Target is the background region the normal points into:
	// RegionOutside or RegionHole.
	Target Region
}

// ExtractEdges walks the interior of the mask and emits one EdgePoint for
// every ink cell adjacent to outside background and one for every ink cell
// adjacent to a hole. The border ring is excluded so neighbor lookups stay
// in bounds; border-touching ink cannot border a hole anyway.
//
// The normal is the central difference of the ink indicator, normalized to
// unit length. The raw gradient is sign-ambiguous on thin strokes and
// concave corners, so each candidate is probe-verified: if a short step
// along it does not land in the target region the normal is negated, and if
// neither direction lands there the point is dropped. Cells whose gradient
// vanishes in both axes (rare single-pixel diagonal configurations)
// contribute nothing rather than a guessed direction.
func ExtractEdges(m *Mask, labels *Regions) []EdgePoint {
	w, h := m.width, m.height
	var points []EdgePoint

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if !m.fill[y*w+x] {
				continue
			}

			hasOutside := false
			hasHole := false
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					switch labels.cells[(y+dy)*w+x+dx] {
					case RegionOutside:
						hasOutside = true
					case RegionHole:
						hasHole = true
					}
				}
			}
			if !hasOutside && !hasHole {
				continue
			}

			gx := inkDelta(m.fill[y*w+x+1], m.fill[y*w+x-1])
			gy := inkDelta(m.fill[(y+1)*w+x], m.fill[(y-1)*w+x])
			if gx == 0 && gy == 0 {
				// Flat gradient: no reliable direction for this cell.
				continue
			}
			grad := gg.V2(gx, gy).Normalize()

			if hasOutside {
				if ep, ok := orientToward(labels, x, y, grad, RegionOutside); ok {
					points = append(points, ep)
				}
			}
			if hasHole {
				if ep, ok := orientToward(labels, x, y, grad, RegionHole); ok {
					points = append(points, ep)
				}
			}
		}
	}

	return points
}

// inkDelta is the central-difference contribution of a neighbor pair.
func inkDelta(pos, neg bool) float64 {
	d := 0.0
	if pos {
		d++
	}
	if neg {
		d--
	}
	return d
}

// orientToward flips the candidate normal so that it points into the target
// region, verified by sampling probeDistance pixels along it. Returns false
// when neither direction reaches the target, which keeps the probe guarantee
// on every emitted point.
func orientToward(labels *Regions, x, y int, n gg.Vec2, target Region) (EdgePoint, bool) {
	if !probeHits(labels, x, y, n, target) {
		n = n.Neg()
		if !probeHits(labels, x, y, n, target) {
			return EdgePoint{}, false
		}
	}
	return EdgePoint{
		Pos:    gg.Pt(float64(x), float64(y)),
		Normal: n,
		Target: target,
	}, true
}

// probeHits samples the label grid a short step along n from (x, y).
func probeHits(labels *Regions, x, y int, n gg.Vec2, target Region) bool {
	px := int(math.Round(float64(x) + n.X*probeDistance))
	py := int(math.Round(float64(y) + n.Y*probeDistance))
	return labels.At(px, py) == target
}
