package otquery

import (
	"github.com/npillmayer/ttf/ot"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information -------------------------------------------------

// FontMetrics retrieves selected metrics of a font.
//
// Ascent, descent and line gap are taken from table 'hhea'. Fonts which leave
// ascent and descent at 0 in 'hhea' get them from the typographic metrics of
// table 'OS/2'.
func FontMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if hhea, err := otf.HHea(); err == nil {
		metrics.Ascent = sfnt.Units(hhea.Ascender)
		metrics.Descent = sfnt.Units(hhea.Descender)
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceMax)
	} else {
		tracer().Infof("font metrics: %v", err)
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if os2, err := otf.OS2(); err == nil {
			tracer().Debugf("OS/2")
			a := sfnt.Units(os2.TypoAscender)
			if a > metrics.Ascent {
				tracer().Debugf("override of ascent: %d -> %d", metrics.Ascent, a)
				metrics.Ascent = a
			}
			d := sfnt.Units(os2.TypoDescender)
			if d < metrics.Descent {
				tracer().Debugf("override of descent: %d -> %d", metrics.Descent, d)
				metrics.Descent = d
			}
		}
	}
	if head, err := otf.Head(); err == nil { // head is a required table
		metrics.UnitsPerEm = sfnt.Units(head.UnitsPerEm)
	}
	return metrics
}

// TextRenderMetrics returns the typographic ascender, descender and line gap from
// table 'OS/2'. It returns false if the font has no usable 'OS/2' table.
func TextRenderMetrics(otf *ot.Font) (TextRenderMetricsInfo, bool) {
	os2, err := otf.OS2()
	if err != nil {
		tracer().Infof("text render metrics: %v", err)
		return TextRenderMetricsInfo{}, false
	}
	return TextRenderMetricsInfo{
		Ascent:  sfnt.Units(os2.TypoAscender),
		Descent: sfnt.Units(os2.TypoDescender),
		LineGap: sfnt.Units(os2.TypoLineGap),
	}, true
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a give code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(otf *ot.Font, codepoint rune) ot.GlyphIndex {
	cmap, err := otf.CMap()
	if err != nil {
		tracer().Errorf("glyph index: %v", err)
		return 0
	}
	return cmap.GlyphIndex(codepoint).Or(0)
}

// CodePointForGlyph returns the code-point for a given glyph index.
//
// This is an inefficient operation: All code-points contained in the font's CMap
// are checked sequentially if they produce the given glyph.
// If the glyph index does not correspond to a code-point, 0 is returned.
func CodePointForGlyph(otf *ot.Font, gid ot.GlyphIndex) rune {
	if gid == 0 {
		return 0
	}
	cmap, err := otf.CMap()
	if err != nil {
		return 0
	}
	for _, format := range []uint16{4, 12} {
		sub, err := cmap.Format(format)
		if err != nil {
			continue
		}
		for rng := range sub.Ranges() {
			for r := rng.First; r <= rng.Last; r++ {
				if g, ok := sub.Lookup(r).Unwrap(); ok && g == gid {
					return r
				}
			}
		}
	}
	return 0
}

// GlyphMetrics retrieves metrics for a given glyph.
func GlyphMetrics(otf *ot.Font, gid ot.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	//
	// table HMtx: advance width and left side bearing
	if hmtx, err := otf.HMtx(); err == nil { // required table in OpenType
		if aw, lsb, ok := hmtx.HMetrics(gid); ok {
			metrics.Advance = sfnt.Units(aw)
			metrics.LSB = sfnt.Units(lsb)
		}
	}
	//
	// table glyf: bounding box
	if h, ok := glyphHeader(otf, gid); ok {
		metrics.BBox = bbox(h.XMin, h.YMin, h.XMax, h.YMax)
	}
	// RSB calculation: rsb = aw - (lsb + xMax - xMin)
	// From the OpenType specification:
	// If a glyph has no contours, xMax/xMin are not defined. The left side bearing indicated
	// in the 'hmtx' table for such glyphs should be zero.
	if !metrics.BBox.Empty() { // leave RSB for empty bboxes
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}

// PlacementMetrics returns metrics to place the rendered bitmap of the glyph for
// a code point, rendered at size pixels per em. It returns false if the font does
// not map the code point or lacks horizontal metrics.
//
// Glyphs without an outline have no bitmap to shift, and get a shift of 0.
func PlacementMetrics(otf *ot.Font, r rune, size float64) (PlacementMetricsInfo, bool) {
	var pm PlacementMetricsInfo
	cmap, err := otf.CMap()
	if err != nil {
		tracer().Errorf("placement metrics: %v", err)
		return pm, false
	}
	gid, ok := cmap.GlyphIndex(r).Unwrap()
	if !ok {
		return pm, false
	}
	hmtx, err := otf.HMtx()
	if err != nil {
		tracer().Errorf("placement metrics: %v", err)
		return pm, false
	}
	aw, lsb, ok := hmtx.HMetrics(gid)
	if !ok {
		return pm, false
	}
	pm.Glyph = gid
	pm.HAdvance = sfnt.Units(aw)
	pm.LeftBearing = sfnt.Units(lsb)
	pm.Size = size
	if head, err := otf.Head(); err == nil {
		pm.UnitsPerEm = head.UnitsPerEm
	}
	if h, ok := glyphHeader(otf, gid); ok {
		pm.ShiftX = -sfnt.Units(h.XMin)
		pm.ShiftY = -sfnt.Units(h.YMin)
	}
	pm.VAdvance = ot.None[sfnt.Units]()
	if vmtx, err := otf.VMtx(); err == nil {
		if ah, tsb, ok := vmtx.VMetrics(gid); ok {
			pm.TopBearing = sfnt.Units(tsb)
			pm.VAdvance = ot.Some(sfnt.Units(ah))
		}
	}
	return pm, true
}

// --- Helpers ----------------------------------------------------------

func glyphHeader(otf *ot.Font, gid ot.GlyphIndex) (ot.GlyphHeader, bool) {
	glyph, err := otf.Glyph(gid)
	if err != nil {
		tracer().Infof("glyph %d: %v", gid, err)
		return ot.GlyphHeader{}, false
	}
	g, ok := glyph.Unwrap()
	return g.GlyphHeader, ok
}

func bbox(xmin, ymin, xmax, ymax int16) BoundingBox {
	return BoundingBox{
		MinX: sfnt.Units(xmin),
		MinY: sfnt.Units(ymin),
		MaxX: sfnt.Units(xmax),
		MaxY: sfnt.Units(ymax),
	}
}
