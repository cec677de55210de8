package ot

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"seehuhn.de/go/geom/matrix"
)

// Glyph decodes a glyph by its index, locating it with table 'loca'.
// Glyphs without an outline (e.g., the space character) and glyph indices out of
// range result in None. An error is returned if tables 'loca' or 'glyf' cannot
// be decoded, or if the glyph's data is malformed.
func (otf *Font) Glyph(g GlyphIndex) (Option[Glyph], error) {
	loca, err := otf.Loca()
	if err != nil {
		return None[Glyph](), err
	}
	glyf, err := otf.Glyf()
	if err != nil {
		return None[Glyph](), err
	}
	return glyphFrom(loca, glyf, g)
}

func glyphFrom(loca *LocaTable, glyf *GlyfTable, g GlyphIndex) (Option[Glyph], error) {
	start, end, ok := loca.Range(g)
	if !ok || start == end {
		return None[Glyph](), nil
	}
	glyph, err := glyf.glyphAt(start, end)
	if err != nil {
		return None[Glyph](), err
	}
	return Some(glyph), nil
}

// Part is a simple glyph outline, placed by an affine transform. A simple glyph
// consists of a single part with the identity transform; a composite glyph
// resolves to the parts of its components.
type Part struct {
	Glyph     GlyphIndex
	Simple    *SimpleGlyph
	Transform matrix.Matrix // from the part's font units to the outer glyph's font units
}

// Outline resolves a glyph into simple outline parts. Components of composite
// glyphs are resolved recursively, and each part carries the transform of its
// component combined with the transforms of all enclosing components.
//
// A glyph without an outline resolves to no parts. Component references nesting
// deeper than MaxComponentDepth, and components referencing a glyph which is
// currently being resolved, result in an error wrapping ErrMalformed.
func (otf *Font) Outline(g GlyphIndex) ([]Part, error) {
	loca, err := otf.Loca()
	if err != nil {
		return nil, err
	}
	glyf, err := otf.Glyf()
	if err != nil {
		return nil, err
	}
	o := outliner{loca: loca, glyf: glyf}
	if err := o.resolve(g, matrix.Identity, 0); err != nil {
		return nil, err
	}
	return o.parts, nil
}

type outliner struct {
	loca  *LocaTable
	glyf  *GlyfTable
	path  bitset.BitSet // glyphs on the current resolution path
	parts []Part
}

func (o *outliner) resolve(g GlyphIndex, m matrix.Matrix, depth int) error {
	if depth > MaxComponentDepth {
		return errTable(T("glyf"), "Composite", ErrMalformed,
			"component nesting exceeds depth %d at glyph %d", MaxComponentDepth, g)
	}
	if o.path.Test(uint(g)) {
		return errTable(T("glyf"), "Composite", ErrMalformed, "glyph %d references itself", g)
	}
	glyph, err := glyphFrom(o.loca, o.glyf, g)
	if err != nil {
		return err
	}
	gl, ok := glyph.Unwrap()
	if !ok {
		return nil
	}
	switch d := gl.Description.(type) {
	case *SimpleGlyph:
		o.parts = append(o.parts, Part{Glyph: g, Simple: d, Transform: m})
	case *CompositeGlyph:
		comps, err := d.Components()
		if err != nil {
			return fmt.Errorf("composite glyph %d: %w", g, err)
		}
		tracer().Debugf("glyph %d has %d components", g, len(comps))
		o.path.Set(uint(g))
		defer o.path.Clear(uint(g))
		for _, c := range comps {
			// component transform first, then the enclosing ones
			if err := o.resolve(c.Glyph, c.Transform.Mul(m), depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
