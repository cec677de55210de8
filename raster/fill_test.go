package raster

import (
	"image"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/ttf/ot"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
)

// picture draws an image as text, with '#' for ink and '.' for background.
func picture(img *image.Gray) string {
	var sb strings.Builder
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.GrayAt(x, y).Y == Ink {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func rect(x0, y0, x1, y1 float64) []Point {
	return []Point{on(x0, y0), on(x0, y1), on(x1, y1), on(x1, y0)}
}

func reversed(contour []Point) []Point {
	r := make([]Point, len(contour))
	for i, p := range contour {
		r[len(contour)-1-i] = p
	}
	return r
}

func TestFillSquare(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.raster")
	defer teardown()
	//
	want := "" +
		"......\n" +
		".####.\n" +
		".####.\n" +
		".####.\n" +
		"......\n"
	for _, contour := range [][]Point{rect(1, 1, 5, 4), reversed(rect(1, 1, 5, 4))} {
		fr := NewFillRaster(6, 5)
		fr.AddContour(contour)
		if got := picture(fr.Fill()); got != want {
			t.Errorf("expected square\n%s\nhave\n%s", want, got)
		}
	}
}

func TestFillWindingRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.raster")
	defer teardown()
	//
	// an inner contour of opposite direction cuts a hole
	fr := NewFillRaster(10, 10)
	fr.AddContour(rect(0, 0, 10, 10))
	fr.AddContour(reversed(rect(3, 3, 7, 7)))
	img := fr.Fill()
	if img.GrayAt(5, 5).Y != Background || img.GrayAt(1, 5).Y != Ink || img.GrayAt(8, 5).Y != Ink {
		t.Errorf("expected a hole in the middle\n%s", picture(img))
	}
	if w := fr.Winding(v(5.5, 5.5)); w != 0 {
		t.Errorf("expected winding number 0 in the hole, have %d", w)
	}
	// an inner contour of the same direction does not
	fr = NewFillRaster(10, 10)
	fr.AddContour(rect(0, 0, 10, 10))
	fr.AddContour(rect(3, 3, 7, 7))
	img = fr.Fill()
	if img.GrayAt(5, 5).Y != Ink {
		t.Errorf("expected nonzero winding to fill the middle\n%s", picture(img))
	}
	if w := fr.Winding(v(5.5, 5.5)); w != 2 && w != -2 {
		t.Errorf("expected winding number ±2 in the middle, have %d", w)
	}
}

func TestFillHalfOpenScanlines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.raster")
	defer teardown()
	//
	// scanlines at y = 0.5 and 1.5 lie within [0.5, 2.5), y = 2.5 does not
	fr := NewFillRaster(3, 4)
	fr.AddContour(rect(0, 0.5, 3, 2.5))
	want := "" +
		"###\n" +
		"###\n" +
		"...\n" +
		"...\n"
	if got := picture(fr.Fill()); got != want {
		t.Errorf("expected\n%s\nhave\n%s", want, got)
	}
}

func TestFillClipping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.raster")
	defer teardown()
	//
	// lines left of the raster count for column 0, lines right of it are dropped
	fr := NewFillRaster(4, 2)
	fr.AddContour(rect(-10, 0, 2, 2))
	fr.AddContour(rect(3, 0, 20, 1))
	want := "" +
		"##.#\n" +
		"##..\n"
	if got := picture(fr.Fill()); got != want {
		t.Errorf("expected\n%s\nhave\n%s", want, got)
	}
}

func TestFillHorizontalLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.raster")
	defer teardown()
	//
	fr := NewFillRaster(6, 5)
	fr.AddLine(v(0, 1), v(5, 1))
	if fr.LineCount() != 0 {
		t.Errorf("expected horizontal line to be dropped")
	}
	fr.AddContour(rect(1, 1, 5, 4))
	if fr.LineCount() != 2 {
		t.Errorf("expected 2 vertical lines of the square, have %d", fr.LineCount())
	}
	empty := NewFillRaster(0, 0).Fill()
	if !empty.Bounds().Empty() {
		t.Errorf("expected empty image, have %v", empty.Bounds())
	}
	if NewFillRaster(-1, 3).Bounds().Dx() != 0 {
		t.Errorf("expected negative width to be treated as 0")
	}
}

// TestFillAgainstVector compares the fill of a glyph with the anti-aliased
// rasterizer of package vector. Pixels which vector covers almost completely
// must be ink, pixels it hardly touches must be background.
func TestFillAgainstVector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.raster")
	defer teardown()
	//
	otf, err := ot.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range []ot.GlyphIndex{36, 54, 68} {
		glyph, err := otf.Glyph(g)
		if err != nil {
			t.Fatal(err)
		}
		gl := glyph.MustUnwrap()
		s := 64.0 / 2048
		w := int(math.Ceil(float64(gl.XMax-gl.XMin) * s))
		h := int(math.Ceil(float64(gl.YMax-gl.YMin) * s))
		m := matrix.Matrix{s, 0, 0, -s, -float64(gl.XMin) * s, float64(h) + float64(gl.YMin)*s}
		fr := NewFillRaster(w, h)
		oracle := vector.NewRasterizer(w, h)
		for _, contour := range glyphContours(t, otf, g) {
			pts := TransformPoints(contour, m)
			fr.AddContour(pts)
			for i, cmd := range Commands(pts) {
				if i == 0 {
					oracle.MoveTo(float32(cmd.P0.X), float32(cmd.P0.Y))
				}
				if cmd.Kind == Line {
					oracle.LineTo(float32(cmd.P1.X), float32(cmd.P1.Y))
				} else {
					oracle.QuadTo(float32(cmd.Ctrl.X), float32(cmd.Ctrl.Y), float32(cmd.P1.X), float32(cmd.P1.Y))
				}
			}
			oracle.ClosePath()
		}
		img := fr.Fill()
		alpha := image.NewAlpha(image.Rect(0, 0, w, h))
		oracle.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})
		ink, mismatches := 0, 0
		for y := range h {
			for x := range w {
				a, isInk := alpha.AlphaAt(x, y).A, img.GrayAt(x, y).Y == Ink
				if isInk {
					ink++
				}
				if (a > 230 && !isInk) || (a < 25 && isInk) {
					mismatches++
				}
			}
		}
		if ink == 0 {
			t.Errorf("glyph %d: expected ink", g)
		}
		if mismatches > w*h/100 {
			t.Errorf("glyph %d: %d of %d pixels differ from package vector\n%s", g, mismatches, w*h, picture(img))
		}
	}
}
