package sparks

import (
	"testing"

	"github.com/gogpu/gg"
)

func surfaceAlphaAt(pm *gg.Pixmap, x, y int) uint8 {
	return pm.Data()[(y*pm.Width()+x)*4+3]
}

func TestCompositorFullRepaintEachFrame(t *testing.T) {
	pm := gg.NewPixmap(20, 20)
	c := NewCompositor(pm)

	p := particle{pos: gg.Pt(10, 10), radius: 2, ttl: 1, color: gg.RGBA{R: 1, G: 1, B: 1, A: 1}}
	c.Frame([]particle{p})
	if got := surfaceAlphaAt(pm, 10, 10); got == 0 {
		t.Fatal("particle center left transparent")
	}

	// Next frame with no particles: previous frame must be fully gone.
	c.Frame(nil)
	for i, b := range pm.Data() {
		if b != 0 {
			t.Fatalf("byte %d = %d after empty frame, want 0", i, b)
		}
	}
}

func TestCompositorAdditiveBrightening(t *testing.T) {
	dim := gg.RGBA{R: 0.3, G: 0.3, B: 0.3, A: 1}
	one := particle{pos: gg.Pt(8, 8), radius: 2, ttl: 1, color: dim}

	single := gg.NewPixmap(16, 16)
	NewCompositor(single).Frame([]particle{one})

	double := gg.NewPixmap(16, 16)
	NewCompositor(double).Frame([]particle{one, one})

	s := single.Data()[(8*16+8)*4]
	d := double.Data()[(8*16+8)*4]
	if d <= s {
		t.Errorf("overlapping sparks red = %d, want brighter than single %d", d, s)
	}
}

func TestCompositorAdditiveClampsAtWhite(t *testing.T) {
	bright := particle{pos: gg.Pt(8, 8), radius: 3, ttl: 1, color: gg.RGBA{R: 1, G: 1, B: 1, A: 1}}
	pm := gg.NewPixmap(16, 16)
	NewCompositor(pm).Frame([]particle{bright, bright, bright})

	if got := pm.Data()[(8*16+8)*4]; got != 255 {
		t.Errorf("stacked sparks red = %d, want clamped at 255", got)
	}
}

func TestCompositorFadesWithAge(t *testing.T) {
	white := gg.RGBA{R: 1, G: 1, B: 1, A: 1}
	fresh := particle{pos: gg.Pt(8, 8), radius: 2, ttl: 1, age: 0, color: white}
	aged := particle{pos: gg.Pt(8, 8), radius: 2, ttl: 1, age: 0.8, color: white}

	a := gg.NewPixmap(16, 16)
	NewCompositor(a).Frame([]particle{fresh})
	b := gg.NewPixmap(16, 16)
	NewCompositor(b).Frame([]particle{aged})

	if fa, ba := surfaceAlphaAt(a, 8, 8), surfaceAlphaAt(b, 8, 8); ba >= fa {
		t.Errorf("aged particle alpha %d, want dimmer than fresh %d", ba, fa)
	}
}

func TestCompositorShrinksWithAge(t *testing.T) {
	white := gg.RGBA{R: 1, G: 1, B: 1, A: 1}
	// A pixel on the fresh rim goes dark once the radius has shrunk.
	fresh := particle{pos: gg.Pt(8, 8), radius: 4, ttl: 1, age: 0, color: white}
	aged := fresh
	aged.age = 0.99

	a := gg.NewPixmap(16, 16)
	NewCompositor(a).Frame([]particle{fresh})
	b := gg.NewPixmap(16, 16)
	NewCompositor(b).Frame([]particle{aged})

	rimFresh := surfaceAlphaAt(a, 8+3, 8)
	rimAged := surfaceAlphaAt(b, 8+3, 8)
	if rimFresh == 0 {
		t.Fatal("fresh rim pixel unexpectedly dark")
	}
	if rimAged >= rimFresh {
		t.Errorf("aged rim alpha %d, want below fresh rim %d", rimAged, rimFresh)
	}
}

func TestCompositorExpiredParticleInvisible(t *testing.T) {
	done := particle{pos: gg.Pt(8, 8), radius: 2, ttl: 1, age: 1, color: gg.RGBA{R: 1, A: 1}}
	pm := gg.NewPixmap(16, 16)
	NewCompositor(pm).Frame([]particle{done})

	for i, b := range pm.Data() {
		if b != 0 {
			t.Fatalf("byte %d = %d for expired particle, want 0", i, b)
		}
	}
}

func TestCompositorClipsAtSurfaceEdge(t *testing.T) {
	// A particle straddling the corner must not write out of bounds.
	corner := particle{pos: gg.Pt(0, 0), radius: 3, ttl: 1, color: gg.RGBA{R: 1, A: 1}}
	outside := particle{pos: gg.Pt(-10, -10), radius: 2, ttl: 1, color: gg.RGBA{R: 1, A: 1}}
	pm := gg.NewPixmap(8, 8)
	NewCompositor(pm).Frame([]particle{corner, outside})

	if got := surfaceAlphaAt(pm, 0, 0); got == 0 {
		t.Error("corner particle left no mark at (0, 0)")
	}
}
