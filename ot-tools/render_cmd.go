package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/ttf"
	"github.com/npillmayer/ttf/otquery"
	"github.com/npillmayer/ttf/raster"
	"github.com/thatisuday/commando"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const padding = 8

func runRenderCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	sf := mustLoadFont(args["font"].Value)
	input, err := parseInput(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	if len(input) == 0 {
		fatalf("input text is empty")
	}
	outPath, err := flags["output"].GetString()
	if err != nil {
		fatalf("invalid --output flag: %v", err)
	}
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		fatalf("output path is empty")
	}
	ppem := mustFlagInt(flags["ppem"], "ppem")
	if ppem <= 0 {
		fatalf("--ppem must be > 0")
	}
	run := glyphRun{
		font:    sf,
		ppem:    ppem,
		invert:  mustFlagBool(flags["invert"], "invert"),
		compare: mustFlagBool(flags["compare"], "compare"),
	}
	img, err := run.render(input)
	if err != nil {
		fatalf("render failed: %v", err)
	}
	if err := writePNG(img, outPath); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("wrote %s (glyphs=%d)\n", outPath, len(input))
}

// glyphRun renders a sequence of characters on a common baseline, advancing by the
// horizontal metrics of the glyphs. Glyph bitmaps are rendered by package ttf; the
// optional second row is rendered by golang.org/x/image/vector for comparison.
type glyphRun struct {
	font    *ttf.ScalableFont
	ppem    int
	invert  bool
	compare bool
}

func (run glyphRun) render(text []rune) (*image.RGBA, error) {
	otf := run.font.Font
	fm := otquery.FontMetrics(otf)
	if fm.UnitsPerEm <= 0 {
		return nil, fmt.Errorf("invalid units-per-em")
	}
	scale := float64(run.ppem) / float64(fm.UnitsPerEm)
	ascent := int(math.Ceil(float64(fm.Ascent) * scale))
	lineHeight := ascent + int(math.Ceil(-float64(fm.Descent)*scale))
	width := 2 * padding
	for _, r := range text {
		pm, ok := otquery.PlacementMetrics(otf, r, float64(run.ppem))
		if !ok {
			return nil, fmt.Errorf("%w %#U", ttf.ErrNoGlyph, r)
		}
		width += int(math.Ceil(pm.Pixels(pm.HAdvance)))
	}
	rows := 1
	if run.compare {
		rows = 2
	}
	height := rows*(lineHeight+padding) + padding
	ink, paper := color.RGBA{0, 0, 0, 255}, color.RGBA{255, 255, 255, 255}
	if run.invert {
		ink, paper = paper, ink
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)

	baseline := padding + ascent
	penX := float64(padding)
	for _, r := range text {
		pm, _ := otquery.PlacementMetrics(otf, r, float64(run.ppem))
		bm, err := ttf.RenderGlyph(otf, pm.Glyph, float64(run.ppem))
		if err != nil {
			return nil, err
		}
		gm := otquery.GlyphMetrics(otf, pm.Glyph)
		left := int(math.Round(penX - pm.Pixels(pm.ShiftX)))
		top := baseline - int(math.Ceil(pm.Pixels(gm.BBox.MaxY)))
		blit(img, bm, image.Pt(left, top), ink)
		penX += pm.Pixels(pm.HAdvance)
	}
	if run.compare {
		baseline += lineHeight + padding
		if err := run.renderWithVector(img, text, baseline, ink); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// blit sets the pixels of dst to ink where the glyph bitmap has ink.
func blit(dst *image.RGBA, bm *image.Gray, at image.Point, ink color.RGBA) {
	b := bm.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if bm.GrayAt(x, y).Y != raster.Ink {
				continue
			}
			p := at.Add(image.Pt(x-b.Min.X, y-b.Min.Y))
			if p.In(dst.Bounds()) {
				dst.SetRGBA(p.X, p.Y, ink)
			}
		}
	}
}

func (run glyphRun) renderWithVector(img *image.RGBA, text []rune, baseline int, ink color.RGBA) error {
	sf, err := sfnt.Parse(run.font.Binary())
	if err != nil {
		return fmt.Errorf("cannot parse sfnt font for rasterization: %w", err)
	}
	var buf sfnt.Buffer
	ppem := fixed.I(run.ppem)
	b := img.Bounds()
	rast := vector.NewRasterizer(b.Dx(), b.Dy())
	rast.DrawOp = draw.Over
	penX := float32(padding)
	ty := float32(baseline)
	for _, r := range text {
		g, ok := ttf.GlyphIndex(run.font.Font, r)
		if !ok {
			return fmt.Errorf("%w %#U", ttf.ErrNoGlyph, r)
		}
		segs, err := sf.LoadGlyph(&buf, sfnt.GlyphIndex(g), ppem, nil)
		if err != nil {
			return fmt.Errorf("cannot load glyph %d: %w", g, err)
		}
		for _, seg := range segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				rast.ClosePath()
				rast.MoveTo(penX+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64)
			case sfnt.SegmentOpLineTo:
				rast.LineTo(penX+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64)
			case sfnt.SegmentOpQuadTo:
				rast.QuadTo(
					penX+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64,
					penX+float32(seg.Args[1].X)/64, ty+float32(seg.Args[1].Y)/64,
				)
			}
		}
		rast.ClosePath()
		adv, err := sf.GlyphAdvance(&buf, sfnt.GlyphIndex(g), ppem, font.HintingNone)
		if err == nil {
			penX += float32(adv) / 64
		}
	}
	rast.Draw(img, b, image.NewUniform(ink), image.Point{})
	return nil
}

func writePNG(img image.Image, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}
