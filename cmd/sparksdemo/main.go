// Command sparksdemo renders the text spark effect to a sequence of PNG
// frames using the Go regular font.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/sparks"
)

func main() {
	var (
		msg      = flag.String("text", "SPARKS", "text to render")
		fontSize = flag.Float64("size", 96, "font size in points")
		width    = flag.Float64("width", 640, "text box width")
		height   = flag.Float64("height", 160, "text box height")
		frames   = flag.Int("frames", 120, "number of frames to render")
		fps      = flag.Float64("fps", 60, "simulated frame rate")
		outDir   = flag.String("out", "frames", "output directory")
		seed     = flag.Uint64("seed", 1, "random seed")
	)
	flag.Parse()

	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	defer func() {
		_ = source.Close()
	}()

	effect, err := sparks.New(source, *fontSize, *msg,
		sparks.WithEmissionRate(400),
		sparks.WithColors("#ffd166", "#ef476f", "#06d6a0"),
		sparks.WithRandSeed(*seed),
	)
	if err != nil {
		log.Fatalf("Failed to create effect: %v", err)
	}
	effect.SetGeometry(sparks.Geometry{
		Width:      *width,
		Height:     *height,
		PixelRatio: 1,
	})

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	bleed := effect.Config().CanvasBleed
	dt := 1.0 / *fps

	for i := 0; i < *frames; i++ {
		effect.Tick(dt)
		frame := renderFrame(*msg, source, *fontSize, *width, *height, bleed, effect.Surface())

		name := filepath.Join(*outDir, fmt.Sprintf("frame_%04d.png", i))
		if err := savePNG(name, frame); err != nil {
			log.Fatalf("Failed to save %s: %v", name, err)
		}
	}

	log.Printf("Rendered %d frames to %s (%d live particles at end)\n",
		*frames, *outDir, effect.ParticleCount())
}

// renderFrame composes one output image: dark background, the live text,
// and the spark overlay on top.
func renderFrame(msg string, source *text.FontSource, fontSize, width, height, bleed float64, overlay *gg.Pixmap) image.Image {
	w := int(width + 2*bleed)
	h := int(height + 2*bleed)

	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.RGB(0.05, 0.05, 0.08))

	// The text sits inside the bleed margin, vertically centered the same
	// way the effect's rasterizer places it.
	face := source.Face(fontSize)
	dc.SetFont(face)
	met := face.Metrics()
	baseline := bleed + (height-met.Ascent-met.Descent)/2 + met.Ascent
	dc.SetRGB(0.9, 0.9, 0.95)
	dc.DrawString(msg, bleed, baseline)

	base, ok := dc.Image().(draw.Image)
	if !ok {
		base = cloneToRGBA(dc.Image())
	}
	if overlay != nil {
		draw.Draw(base, overlay.Bounds(), overlay, image.Point{}, draw.Over)
	}
	return base
}

func cloneToRGBA(src image.Image) draw.Image {
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, src.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}
