// Package sparks renders an outward-emitting particle effect anchored to the
// true rendered edges of text glyphs.
//
// # Overview
//
// sparks is a Pure Go effect library for the GoGPU ecosystem, built on top of
// gogpu/gg. Given a font and a text string, it rasterizes the glyphs to an
// off-screen mask, classifies every background pixel as either outside the
// letterforms or enclosed inside them (the hole of an "O"), extracts the glyph
// boundary with outward unit normals, and runs a real-time particle simulation
// that launches short-lived sparks from those edges. Each frame the live
// particles are composited with additive blending onto a transparent overlay
// surface that the host presents above its own text rendering.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gg/text"
//	    "github.com/gogpu/sparks"
//	)
//
//	source, _ := text.NewFontSourceFromFile("font.ttf")
//	effect, _ := sparks.New(source, 96, "Hello",
//	    sparks.WithEmissionRate(200),
//	    sparks.WithColors("#ffd166", "#ef476f"),
//	)
//	effect.SetGeometry(sparks.Geometry{Width: 480, Height: 120, PixelRatio: 2})
//	effect.Start(ctx)        // internal scheduler, one tick per frame
//	defer effect.Close()
//
//	// ... or drive it from your own frame loop:
//	effect.Tick(1.0 / 60)
//	overlay := effect.Surface() // *gg.Pixmap, transparent background
//
// # Architecture
//
// The pipeline is rebuilt wholesale on every geometry or text change and
// published as a single immutable Field snapshot:
//
//	rasterize.go  glyphs -> binary ink mask (gg.Context + gg/text)
//	regions.go    mask -> {fill, outside, hole} labels (border flood fill)
//	edges.go      labels -> edge points with outward unit normals
//	simulator.go  edge points + clock -> bounded particle pool
//	compositor.go particle pool -> additive circles on the overlay surface
//
// # Coordinate System
//
// All mask and particle coordinates are in overlay backing-store pixels:
// origin at the top-left of the bleed margin, X right, Y down, scaled by the
// clamped device pixel ratio.
//
// # Concurrency
//
// A single cooperative tick drives simulation and drawing; rebuild requests
// from any goroutine are coalesced and applied at the next tick entry. Every
// Effect instance is fully isolated: no shared pools, masks, or clocks.
package sparks

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"
)
