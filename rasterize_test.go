package sparks

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// testFontSource loads the Go regular font for tests that need real glyphs.
func testFontSource(t *testing.T) *text.FontSource {
	t.Helper()
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("failed to create font source: %v", err)
	}
	t.Cleanup(func() {
		_ = source.Close()
	})
	return source
}

var testGeometry = Geometry{Width: 120, Height: 80, PixelRatio: 1}

func TestBuildFieldLetterO(t *testing.T) {
	source := testFontSource(t)
	f := BuildField(source, 64, "O", testGeometry, 10)

	m, r, edges := f.Mask(), f.Labels(), f.Edges()
	if m.FillCount() == 0 {
		t.Fatal("rasterized 'O' produced no ink")
	}
	if r.Count(RegionHole) == 0 {
		t.Fatal("the counter of 'O' was not classified as a hole")
	}

	var outward, inward int
	for _, ep := range edges {
		switch ep.Target {
		case RegionOutside:
			outward++
		case RegionHole:
			inward++
		}
		// No outward probe may land in ink.
		px := int(math.Round(ep.Pos.X + ep.Normal.X*probeDistance))
		py := int(math.Round(ep.Pos.Y + ep.Normal.Y*probeDistance))
		if got := r.At(px, py); got != ep.Target {
			t.Errorf("edge (%v, %v): probe landed in %v, want %v",
				ep.Pos.X, ep.Pos.Y, got, ep.Target)
		}
	}
	if outward == 0 || inward == 0 {
		t.Errorf("edge orientations outward=%d inward=%d, want both nonzero", outward, inward)
	}
}

func TestBuildFieldEmptyString(t *testing.T) {
	source := testFontSource(t)
	f := BuildField(source, 64, "", testGeometry, 10)

	if got := f.Mask().FillCount(); got != 0 {
		t.Errorf("empty string mask has %d ink cells, want 0", got)
	}
	total := f.Mask().Width() * f.Mask().Height()
	if got := f.Labels().Count(RegionOutside); got != total {
		t.Errorf("outside count = %d, want %d (all cells)", got, total)
	}
	if got := len(f.Edges()); got != 0 {
		t.Errorf("edge count = %d, want 0", got)
	}
}

func TestBuildFieldIdempotent(t *testing.T) {
	source := testFontSource(t)
	a := BuildField(source, 48, "Og", testGeometry, 8)
	b := BuildField(source, 48, "Og", testGeometry, 8)

	if a.Mask().Width() != b.Mask().Width() || a.Mask().Height() != b.Mask().Height() {
		t.Fatalf("mask dimensions differ: %dx%d vs %dx%d",
			a.Mask().Width(), a.Mask().Height(), b.Mask().Width(), b.Mask().Height())
	}
	for y := 0; y < a.Mask().Height(); y++ {
		for x := 0; x < a.Mask().Width(); x++ {
			if a.Labels().At(x, y) != b.Labels().At(x, y) {
				t.Fatalf("labels differ at (%d, %d)", x, y)
			}
		}
	}
	if len(a.Edges()) != len(b.Edges()) {
		t.Fatalf("edge counts differ: %d vs %d", len(a.Edges()), len(b.Edges()))
	}
	for i := range a.Edges() {
		ea, eb := a.Edges()[i], b.Edges()[i]
		if ea.Pos != eb.Pos || ea.Target != eb.Target {
			t.Fatalf("edge %d differs: %+v vs %+v", i, ea, eb)
		}
		if !ea.Normal.Approx(eb.Normal, 1e-12) {
			t.Fatalf("edge %d normal differs: %+v vs %+v", i, ea.Normal, eb.Normal)
		}
	}
}

func TestBuildFieldSurfaceDimensions(t *testing.T) {
	source := testFontSource(t)
	tests := []struct {
		name         string
		geom         Geometry
		bleed        float64
		wantW, wantH int
	}{
		{"ratio 1", Geometry{Width: 100, Height: 50, PixelRatio: 1}, 10, 120, 70},
		{"ratio 2", Geometry{Width: 100, Height: 50, PixelRatio: 2}, 10, 240, 140},
		{"ratio clamped high", Geometry{Width: 100, Height: 50, PixelRatio: 3}, 10, 240, 140},
		{"ratio clamped low", Geometry{Width: 100, Height: 50, PixelRatio: 0.5}, 10, 120, 70},
		{"ratio zero means 1", Geometry{Width: 100, Height: 50}, 10, 120, 70},
		{"no bleed", Geometry{Width: 100, Height: 50, PixelRatio: 1}, 0, 100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := BuildField(source, 24, "x", tt.geom, tt.bleed)
			if f.Mask().Width() != tt.wantW || f.Mask().Height() != tt.wantH {
				t.Errorf("mask = %dx%d, want %dx%d",
					f.Mask().Width(), f.Mask().Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestBuildFieldDegenerateGeometry(t *testing.T) {
	source := testFontSource(t)
	// Zero-size box: clamps to one pixel plus bleed and stays dormant
	// rather than failing.
	f := BuildField(source, 24, "x", Geometry{PixelRatio: 1}, 0)
	if f.Mask().Width() < 1 || f.Mask().Height() < 1 {
		t.Errorf("mask = %dx%d, want at least 1x1", f.Mask().Width(), f.Mask().Height())
	}
}

func TestBuildFieldDegenerateGeometryWarning(t *testing.T) {
	source := testFontSource(t)
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	// The zero-value Geometry is the documented not-yet-laid-out state and
	// clamps silently; only a host-supplied degenerate box warns.
	BuildField(source, 24, "x", Geometry{}, 10)
	if s := buf.String(); strings.Contains(s, "degenerate") {
		t.Errorf("zero-value geometry logged a warning: %q", s)
	}

	buf.Reset()
	BuildField(source, 24, "x", Geometry{Width: 120, PixelRatio: 1}, 10)
	if !strings.Contains(buf.String(), "degenerate") {
		t.Error("host-supplied degenerate geometry did not warn")
	}
}

func TestClampPixelRatio(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 1},
		{1, 1},
		{1.5, 1.5},
		{2, 2},
		{2.5, 2},
		{0.25, 1},
	}
	for _, tt := range tests {
		if got := clampPixelRatio(tt.in); got != tt.want {
			t.Errorf("clampPixelRatio(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
