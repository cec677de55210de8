package ttf

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/ttf/ot"
	"github.com/npillmayer/ttf/raster"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/vec"
)

// --- Test Suite Preparation ------------------------------------------------

type RenderTestEnviron struct {
	suite.Suite
	otf *ot.Font
}

// listen for 'go test' command --> run test methods
func TestRenderFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	suite.Run(t, new(RenderTestEnviron))
}

// run once, before test suite methods
func (env *RenderTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.ttf").SetTraceLevel(tracing.LevelError)
	otf, err := FromBinary(goregular.TTF)
	env.Require().NoError(err, "expected Go Regular to parse")
	env.otf = otf
}

// --- Tests -----------------------------------------------------------------

func (env *RenderTestEnviron) TestGlyphIndex() {
	g, ok := GlyphIndex(env.otf, 'A')
	env.True(ok)
	env.Equal(ot.GlyphIndex(36), g, "expected 'A' to map to glyph 36")
	_, ok = GlyphIndex(env.otf, 0x1F600)
	env.False(ok, "expected no glyph for emoji")
}

func (env *RenderTestEnviron) TestGlyphTransform() {
	h := ot.GlyphHeader{NumberOfContours: 1, XMin: -100, YMin: -50, XMax: 900, YMax: 450}
	m, w, ht := GlyphTransform(h, 1000, 10)
	env.Equal(10, w)
	env.Equal(5, ht)
	env.Equal(vec.Vec2{X: 0, Y: 5}, raster.Transform(vec.Vec2{X: -100, Y: -50}, m), "lower left to bottom row")
	env.Equal(vec.Vec2{X: 10, Y: 0}, raster.Transform(vec.Vec2{X: 900, Y: 450}, m), "upper right to top row")
	_, w, ht = GlyphTransform(h, 1000, 9.5)
	env.Equal(10, w, "expected width 9.5 to round up")
	env.Equal(5, ht, "expected height 4.75 to round up")
}

func (env *RenderTestEnviron) TestRenderSize() {
	img, err := RenderRune(env.otf, 'S', 64)
	env.Require().NoError(err)
	// 'S' spans 1123 × 1554 font units, at 2048 units per em
	env.Equal(image.Rect(0, 0, 36, 49), img.Bounds())
	ink := 0
	for _, p := range img.Pix {
		if p == raster.Ink {
			ink++
		} else {
			env.Equal(uint8(raster.Background), p, "expected monochrome image")
		}
	}
	env.Greater(ink, 36*49/5, "expected 'S' to cover a fair share of its bounding box")
}

func (env *RenderTestEnviron) TestRenderEmptyGlyph() {
	img, err := RenderRune(env.otf, ' ', 64)
	env.Require().NoError(err, "expected space to render without error")
	env.True(img.Bounds().Empty(), "expected empty image for space")
	img, err = RenderGlyph(env.otf, 5000, 64)
	env.Require().NoError(err, "expected glyph out of range to render without error")
	env.True(img.Bounds().Empty())
}

func (env *RenderTestEnviron) TestRenderErrors() {
	_, err := RenderRune(env.otf, 0x1F600, 64)
	env.True(errors.Is(err, ErrNoGlyph), "expected ErrNoGlyph, got %v", err)
	_, err = RenderGlyph(env.otf, 36, 0)
	env.Error(err, "expected size 0 to be rejected")
	_, err = RenderGlyph(env.otf, 36, -3)
	env.Error(err, "expected negative size to be rejected")
}

func (env *RenderTestEnviron) TestRenderInvert() {
	plain, err := Render(env.otf, 68, RenderOptions{Size: 40})
	env.Require().NoError(err)
	inverted, err := Render(env.otf, 68, RenderOptions{Size: 40, Invert: true})
	env.Require().NoError(err)
	env.Require().Equal(plain.Bounds(), inverted.Bounds())
	for i := range plain.Pix {
		if plain.Pix[i]+inverted.Pix[i] != 0xFF {
			env.Failf("pixels not inverted", "pixel %d: %x vs %x", i, plain.Pix[i], inverted.Pix[i])
			break
		}
	}
}

func (env *RenderTestEnviron) TestOutline() {
	contours, err := Outline(env.otf, 54)
	env.Require().NoError(err)
	env.Require().Len(contours, 1)
	env.Len(contours[0], 20, "expected 20 draw commands for 'S'")
	first := contours[0][0]
	env.Equal(raster.Line, first.Kind)
	env.Equal(vec.Vec2{X: 120, Y: 52}, first.P0)
	env.Equal(vec.Vec2{X: 120, Y: 260}, first.P1)
	last := contours[0][len(contours[0])-1]
	env.Equal(first.P0, last.P1, "expected contour to be closed")
	contours, err = Outline(env.otf, 3)
	env.NoError(err)
	env.Empty(contours, "expected no contours for space")
}

// TestRenderAgainstSFNT renders glyphs with package sfnt and the anti-aliased
// rasterizer of package vector, and compares the result with RenderRune.
func (env *RenderTestEnviron) TestRenderAgainstSFNT() {
	sf, err := sfnt.Parse(goregular.TTF)
	env.Require().NoError(err)
	var buf sfnt.Buffer
	const size = 64
	for _, r := range "ASag&@8Ж" {
		img, err := RenderRune(env.otf, r, size)
		env.Require().NoError(err, "rune %c", r)
		g, _ := GlyphIndex(env.otf, r)
		glyph, err := env.otf.Glyph(g)
		env.Require().NoError(err)
		h := glyph.MustUnwrap().GlyphHeader
		segs, err := sf.LoadGlyph(&buf, sfnt.GlyphIndex(g), fixed.I(size), nil)
		env.Require().NoError(err, "sfnt cannot load glyph for %c", r)
		w, ht := img.Bounds().Dx(), img.Bounds().Dy()
		s := float32(size) / 2048
		tx := -float32(h.XMin) * s
		ty := float32(ht) + float32(h.YMin)*s
		oracle := vector.NewRasterizer(w, ht)
		pt := func(p fixed.Point26_6) (float32, float32) {
			return tx + float32(p.X)/64, ty + float32(p.Y)/64
		}
		for _, seg := range segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				oracle.ClosePath()
				oracle.MoveTo(pt(seg.Args[0]))
			case sfnt.SegmentOpLineTo:
				oracle.LineTo(pt(seg.Args[0]))
			case sfnt.SegmentOpQuadTo:
				x0, y0 := pt(seg.Args[0])
				x1, y1 := pt(seg.Args[1])
				oracle.QuadTo(x0, y0, x1, y1)
			}
		}
		oracle.ClosePath()
		alpha := image.NewAlpha(image.Rect(0, 0, w, ht))
		oracle.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})
		mismatches := 0
		for y := range ht {
			for x := range w {
				a, isInk := alpha.AlphaAt(x, y).A, img.GrayAt(x, y).Y == raster.Ink
				if (a > 230 && !isInk) || (a < 25 && isInk) {
					mismatches++
				}
			}
		}
		env.LessOrEqual(mismatches, w*ht/100, "rune %c: too many pixels differ from package sfnt", r)
	}
}

func (env *RenderTestEnviron) TestLoadFont() {
	path := filepath.Join(env.T().TempDir(), "GoRegular.ttf")
	env.Require().NoError(os.WriteFile(path, goregular.TTF, 0o644))
	f, err := LoadFont(path)
	env.Require().NoError(err)
	env.Equal("Go Regular", f.Fontname)
	env.Equal(path, f.Filepath)
	env.Equal(ot.TrueTypeScaler, f.ScalerKind(), "expected methods of ot.Font to be promoted")
	_, err = LoadFont(filepath.Join(env.T().TempDir(), "missing.ttf"))
	env.Error(err, "expected error for missing file")
}
