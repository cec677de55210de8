package otquery

import (
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/ttf/ot"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	otf *ot.Font
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.ttf").SetTraceLevel(tracing.LevelError)
	otf, err := ot.Parse(goregular.TTF)
	env.Require().NoError(err, "expected Go Regular to parse")
	env.otf = otf
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontTypeInfo() {
	fti := FontType(env.otf)
	env.Equal("TrueType", fti, "expected font type of test font to be TrueType")
	env.Equal("unknown", FontType(nil))
}

func (env *InfoTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'head'")
	env.Equal("1.0", h.Version)
	env.InDelta(2.01, h.FontRevision, 0.001)
	env.Equal(uint32(0x5F0F3CF5), h.MagicNumber, "expected OpenType head magic number")
	env.Equal(uint16(2048), h.UnitsPerEm)
	env.Equal(ot.ShortLocaFormat, h.IndexToLocFormat)
	env.Equal(BoundingBox{MinX: -440, MinY: -543, MaxX: 2160, MaxY: 2291}, h.BBox)
	env.Equal(time.Date(2016, time.November, 10, 0, 0, 0, 0, time.UTC), h.Created)
	env.True(h.Modified.After(h.Created), "expected modification after creation")
	_, ok = HeadInfo(nil)
	env.False(ok)
}

func (env *InfoTestEnviron) TestMaxPInfo() {
	m, ok := MaxPInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'maxp'")
	env.Equal(uint32(0x00010000), m.VersionFixed)
	env.Equal(uint16(712), m.NumGlyphs, "expected matching numGlyphs")
	env.True(m.HasExtendedProfile, "expected TrueType profile")
	env.Equal(uint16(317), m.MaxPoints)
	env.Equal(uint16(36), m.MaxContours)
}

func (env *InfoTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.otf)
	env.Equal(sfnt.Units(2048), m.UnitsPerEm)
	env.Equal(sfnt.Units(1935), m.Ascent)
	env.Equal(sfnt.Units(-432), m.Descent)
	env.Equal(sfnt.Units(0), m.LineGap)
	env.Equal(sfnt.Units(2240), m.MaxAdvance)
}

func (env *InfoTestEnviron) TestTextRenderMetrics() {
	trm, ok := TextRenderMetrics(env.otf)
	env.Require().True(ok, "expected to decode table 'OS/2'")
	env.Equal(TextRenderMetricsInfo{Ascent: 1579, Descent: -395, LineGap: 393}, trm)
	env.Equal(sfnt.Units(2367), trm.LineHeight())
}

func (env *InfoTestEnviron) TestGlyphIndex() {
	env.Equal(ot.GlyphIndex(36), GlyphIndex(env.otf, 'A'))
	env.Equal(ot.GlyphIndex(0), GlyphIndex(env.otf, 0x1F600), "expected .notdef for unmapped code point")
}

func (env *InfoTestEnviron) TestReverseLookup() {
	r := CodePointForGlyph(env.otf, 36)
	env.Equal('A', r, "expected code-point to be %#U, is %#U", 'A', r)
	env.Equal(rune(0), CodePointForGlyph(env.otf, 0))
}

func (env *InfoTestEnviron) TestGlyphMetrics() {
	m := GlyphMetrics(env.otf, 54) // 'S'
	env.Equal(sfnt.Units(1366), m.Advance)
	env.Equal(sfnt.Units(120), m.LSB)
	env.Equal(BoundingBox{MinX: 120, MinY: -37, MaxX: 1243, MaxY: 1517}, m.BBox)
	env.Equal(sfnt.Units(123), m.RSB, "expected rsb = advance - (lsb + width)")
	space := GlyphMetrics(env.otf, 3)
	env.Equal(sfnt.Units(569), space.Advance)
	env.True(space.BBox.Empty(), "expected empty bounding box for space")
	env.Equal(sfnt.Units(0), space.RSB)
}

func (env *InfoTestEnviron) TestPlacementMetrics() {
	pm, ok := PlacementMetrics(env.otf, 'S', 64)
	env.Require().True(ok)
	env.Equal(ot.GlyphIndex(54), pm.Glyph)
	env.Equal(sfnt.Units(-120), pm.ShiftX)
	env.Equal(sfnt.Units(37), pm.ShiftY)
	env.Equal(sfnt.Units(120), pm.LeftBearing)
	env.Equal(sfnt.Units(1366), pm.HAdvance)
	env.Equal(sfnt.Units(0), pm.TopBearing)
	env.True(pm.VAdvance.IsNone(), "expected no vertical metrics")
	env.InDelta(42.6875, pm.Pixels(pm.HAdvance), 1e-9)
	space, ok := PlacementMetrics(env.otf, ' ', 64)
	env.Require().True(ok)
	env.Equal(sfnt.Units(0), space.ShiftX, "expected no shift for a glyph without outline")
	_, ok = PlacementMetrics(env.otf, 0x1F600, 64)
	env.False(ok)
}
