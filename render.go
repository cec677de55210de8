package ttf

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/npillmayer/ttf/ot"
	"github.com/npillmayer/ttf/raster"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// ErrNoGlyph is returned when a font does not map a code point to a glyph.
var ErrNoGlyph = errors.New("no glyph for code point")

// RenderOptions control rendering of glyphs.
type RenderOptions struct {
	Size   float64 // pixels per em
	Invert bool    // white ink on black background
}

// RenderGlyph renders a glyph with size pixels per em. See Render.
func RenderGlyph(otf *ot.Font, g ot.GlyphIndex, size float64) (*image.Gray, error) {
	return Render(otf, g, RenderOptions{Size: size})
}

// RenderRune renders the glyph of a code point with size pixels per em. If the font
// does not map r, an error wrapping ErrNoGlyph is returned.
func RenderRune(otf *ot.Font, r rune, size float64) (*image.Gray, error) {
	g, ok := GlyphIndex(otf, r)
	if !ok {
		return nil, fmt.Errorf("%w %#U", ErrNoGlyph, r)
	}
	return RenderGlyph(otf, g, size)
}

// Render renders a glyph into a monochrome image.
//
// The image covers the glyph's bounding box, scaled to opts.Size pixels per em,
// with row 0 at the top. Components of composite glyphs are placed by their
// transforms. A glyph without an outline, e.g. a space, renders as an empty image.
func Render(otf *ot.Font, g ot.GlyphIndex, opts RenderOptions) (*image.Gray, error) {
	if opts.Size <= 0 || math.IsNaN(opts.Size) || math.IsInf(opts.Size, 0) {
		return nil, fmt.Errorf("invalid render size %g", opts.Size)
	}
	head, err := otf.Head()
	if err != nil {
		return nil, err
	}
	glyph, err := otf.Glyph(g)
	if err != nil {
		return nil, err
	}
	gl, ok := glyph.Unwrap()
	if !ok {
		tracer().Debugf("glyph %d has no outline", g)
		return image.NewGray(image.Rectangle{}), nil
	}
	m, w, h := GlyphTransform(gl.GlyphHeader, head.UnitsPerEm, opts.Size)
	parts, err := otf.Outline(g)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("render glyph %d from %d parts into %d×%d pixels", g, len(parts), w, h)
	fr := raster.NewFillRaster(w, h)
	for _, part := range parts {
		pm := part.Transform.Mul(m) // part to glyph units first, then to pixels
		for contour := range part.Simple.Contours() {
			fr.AddContour(raster.TransformPoints(Points(contour), pm))
		}
	}
	img := fr.Fill()
	if opts.Invert {
		for i, p := range img.Pix {
			img.Pix[i] = 0xFF - p
		}
	}
	return img, nil
}

// GlyphTransform returns the transform from font units to raster space for a glyph
// with bounding box taken from its header, together with the raster's size.
//
// The transform moves the lower left corner of the bounding box to the origin,
// scales by size/upem and flips the y-axis, so that the top of the bounding box
// maps to row 0.
func GlyphTransform(h ot.GlyphHeader, upem uint16, size float64) (matrix.Matrix, int, int) {
	width := ot.FontUnit(int32(h.XMax) - int32(h.XMin))
	height := ot.FontUnit(int32(h.YMax) - int32(h.YMin))
	w := int(math.Ceil(max(width.Pixels(size, upem), 0)))
	ht := int(math.Ceil(max(height.Pixels(size, upem), 0)))
	s := ot.FontUnit(1).Pixels(size, upem)
	m := matrix.Translate(-float64(h.XMin), -float64(h.YMin)).
		Mul(matrix.Matrix{s, 0, 0, -s, 0, float64(ht)})
	return m, w, ht
}

// Points converts the points of a glyph contour into raster points in font units.
func Points(contour []ot.Coordinate) []raster.Point {
	pts := make([]raster.Point, len(contour))
	for i, c := range contour {
		pts[i] = raster.Point{On: c.OnCurve, P: vec.Vec2{X: float64(c.X), Y: float64(c.Y)}}
	}
	return pts
}

// Outline returns the draw commands of a glyph's contours in font units. Components
// of composite glyphs are transformed into the glyph's coordinate space.
func Outline(otf *ot.Font, g ot.GlyphIndex) ([][]raster.DrawCommand, error) {
	parts, err := otf.Outline(g)
	if err != nil {
		return nil, err
	}
	var contours [][]raster.DrawCommand
	for _, part := range parts {
		for contour := range part.Simple.Contours() {
			pts := raster.TransformPoints(Points(contour), part.Transform)
			contours = append(contours, raster.Commands(pts))
		}
	}
	return contours, nil
}
