/*
Package ttf reads TrueType fonts and renders their glyphs.

Fonts are parsed by package ot, which interprets the font's tables directly from
its binary data, without copying. Package raster turns glyph outlines into
bitmaps. This package ties the two together:

	otf, err := ttf.FromBinary(data)
	…
	img, err := ttf.RenderRune(otf, 'S', 64)

The result is a monochrome *image.Gray with the glyph's bounding box scaled to
size pixels per em, row 0 at the top.

# Status

Only glyphs with TrueType outlines ('glyf' table) can be rendered. There is no
hinting and no anti-aliasing.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ttf

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/ttf/internal/fontload"
	"github.com/npillmayer/ttf/ot"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// ScalableFont is a parsed font loaded from a file.
type ScalableFont struct {
	*ot.Font
	Fontname string // full name from table 'name', if present
	Filepath string
}

// LoadFont loads and parses a TrueType font from a file.
func LoadFont(fontfile string) (*ScalableFont, error) {
	ff, err := fontload.Load(fontfile)
	if err != nil {
		return nil, err
	}
	otf, err := FromBinary(ff.Binary)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loaded font %q from %s", ff.Fontname, fontfile)
	return &ScalableFont{Font: otf, Fontname: ff.Fontname, Filepath: ff.Filepath}, nil
}

// FromBinary parses a font from its binary data.
//
// The font keeps a reference to data, which must not change as long as the font
// is in use.
func FromBinary(data []byte) (*ot.Font, error) {
	otf, err := ot.Parse(data)
	if err != nil {
		return nil, err
	}
	if otf.HasCriticalErrors() {
		tracer().Infof("font has %d critical errors", len(otf.CriticalErrors()))
	}
	return otf, nil
}

// GlyphIndex returns the glyph for a code point, as mapped by the font's 'cmap'
// table. It returns false if the font does not map r, or if it has no usable
// 'cmap' table.
func GlyphIndex(otf *ot.Font, r rune) (ot.GlyphIndex, bool) {
	cmap, err := otf.CMap()
	if err != nil {
		tracer().Errorf("cannot look up glyph for %#U: %v", r, err)
		return 0, false
	}
	return cmap.GlyphIndex(r).Unwrap()
}
