package ot

import "fmt"

// --- Loca table ------------------------------------------------------------

// LocaTable stores the offsets to the locations of the glyphs in the font,
// relative to the beginning of the 'glyf' table.
//
// By definition, index zero points to the “missing character”, which is the character
// that is displayed if a character is not found in the font. The missing character
// is commonly represented by a blank box or a space. If the font does not contain an
// outline for the missing character, then the first and second offsets should have
// the same value. This also applies to any other characters without an outline, such
// as the space character.
type LocaTable struct {
	tableBase
	Format    LocaFormat
	short     DynArr[uint16] // offsets divided by 2
	long      DynArr[uint32]
	numGlyphs int
}

// Loca decodes table 'loca'. The offset format is taken from table 'head' and the
// number of glyphs from table 'maxp'.
func (otf *Font) Loca() (*LocaTable, error) {
	base, err := otf.tableBase(T("loca"))
	if err != nil {
		return nil, err
	}
	head, err := otf.Head()
	if err != nil {
		return nil, fmt.Errorf("table loca depends on head: %w", err)
	}
	maxp, err := otf.MaxP()
	if err != nil {
		return nil, fmt.Errorf("table loca depends on maxp: %w", err)
	}
	return parseLoca(base, head.IndexToLocFormat, int(maxp.NumGlyphs))
}

func parseLoca(base tableBase, format LocaFormat, numGlyphs int) (*LocaTable, error) {
	t := &LocaTable{tableBase: base, Format: format, numGlyphs: numGlyphs}
	r := reader{base.data}
	n := numGlyphs + 1 // "loca[n] = length of glyph data"
	switch format {
	case ShortLocaFormat:
		if !r.has(2 * n) {
			return nil, base.sectionError("Size", ErrMalformed,
				"table size %d insufficient for %d short offsets", len(base.data), n)
		}
		t.short = readArray(&r, U16, n)
	case LongLocaFormat:
		if !r.has(4 * n) {
			return nil, base.sectionError("Size", ErrMalformed,
				"table size %d insufficient for %d long offsets", len(base.data), n)
		}
		t.long = readArray(&r, U32, n)
	default:
		return nil, base.sectionError("Format", ErrMalformed, "invalid index-to-loc format %d", format)
	}
	tracer().Debugf("loca: %d glyphs, %s offsets", numGlyphs, format)
	return t, nil
}

// Len returns the number of glyphs the table locates.
func (t *LocaTable) Len() int {
	return t.numGlyphs
}

// Offset returns entry i of the table, as an offset into 'glyf'. Short entries
// are scaled by 2. Valid indices are 0 … Len(), where entry Len() is the end
// of the last glyph.
func (t *LocaTable) Offset(i int) (uint32, bool) {
	if i < 0 || i > t.numGlyphs {
		return 0, false
	}
	if t.Format == ShortLocaFormat {
		return 2 * uint32(t.short.At(i)), true
	}
	return t.long.At(i), true
}

// Range returns the byte range [start, end) of a glyph within 'glyf'.
// ok is false for glyph indices out of range and for decreasing offsets.
func (t *LocaTable) Range(g GlyphIndex) (start, end uint32, ok bool) {
	start, ok = t.Offset(int(g))
	if !ok {
		return
	}
	end, ok = t.Offset(int(g) + 1)
	if !ok || end < start {
		return 0, 0, false
	}
	return
}

// At returns the offset of a glyph's data within 'glyf'. A glyph without an
// outline, i.e. one with the same offset as its successor, results in None,
// as does a glyph index out of range.
func (t *LocaTable) At(g GlyphIndex) Option[uint32] {
	start, end, ok := t.Range(g)
	if !ok || start == end {
		return None[uint32]()
	}
	return Some(start)
}
