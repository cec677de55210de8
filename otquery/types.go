package otquery

import (
	"github.com/npillmayer/ttf/ot"
	"golang.org/x/image/font/sfnt"
)

// FontMetricsInfo contains selected metric information for a font.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units // ad-hoc units per em
	Ascent, Descent sfnt.Units // ascender and descender
	MaxAdvance      sfnt.Units // maximum advance width value in 'hmtx' table
	LineGap         sfnt.Units // typographic line gap
}

// GlyphMetricsInfo contains all metric information for a glyph.
type GlyphMetricsInfo struct {
	Advance  sfnt.Units  // advance width
	LSB, RSB sfnt.Units  // side bearings
	BBox     BoundingBox // bounding box
}

// BoundingBox describes the bounding box of a glyph.
type BoundingBox struct {
	MinX, MinY sfnt.Units
	MaxX, MaxY sfnt.Units
}

// Empty reports whether this box has zero area.
func (bbox BoundingBox) Empty() bool {
	return bbox.MaxX <= bbox.MinX || bbox.MaxY <= bbox.MinY
}

// Dx returns the horizontal extent of this box.
func (bbox BoundingBox) Dx() sfnt.Units {
	return bbox.MaxX - bbox.MinX
}

// Dy returns the vertical extent of this box.
func (bbox BoundingBox) Dy() sfnt.Units {
	return bbox.MaxY - bbox.MinY
}

// PlacementMetricsInfo describes how to place the bitmap of a rendered glyph
// relative to the pen position. Values are in font units; Pixels converts them
// for the size the metrics were requested for.
type PlacementMetricsInfo struct {
	Glyph       ot.GlyphIndex
	ShiftX      sfnt.Units // moves the glyph's bounding box to the origin
	ShiftY      sfnt.Units
	LeftBearing sfnt.Units
	TopBearing  sfnt.Units // 0 if the font has no vertical metrics
	HAdvance    sfnt.Units
	VAdvance    ot.Option[sfnt.Units] // None if the font has no vertical metrics
	UnitsPerEm  uint16
	Size        float64 // pixels per em
}

// Pixels converts a distance of these metrics into pixels.
func (pm PlacementMetricsInfo) Pixels(u sfnt.Units) float64 {
	return ot.FontUnit(u).Pixels(pm.Size, pm.UnitsPerEm)
}

// TextRenderMetricsInfo contains the typographic line metrics of a font from
// table 'OS/2'.
type TextRenderMetricsInfo struct {
	Ascent  sfnt.Units
	Descent sfnt.Units // usually negative
	LineGap sfnt.Units
}

// LineHeight returns the distance between two consecutive baselines.
func (trm TextRenderMetricsInfo) LineHeight() sfnt.Units {
	return trm.Ascent - trm.Descent + trm.LineGap
}
