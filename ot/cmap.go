package ot

import (
	"fmt"
	"iter"
)

// --- CMap table ------------------------------------------------------------

// This table defines mapping of character codes to a default glyph index. Different
// subtables may be defined that each contain mappings for different character encoding
// schemes. The table header indicates the character encodings for which subtables are
// present.
//
// From the OpenType specification: “If a font includes Unicode subtables for both 16-bit encoding
// (typically, format 4) and also 32-bit encoding (formats 10 or 12), then the characters
// supported by the subtable for 32-bit encoding should be a superset of the characters
// supported by the subtable for 16-bit encoding […]”
//
// We interpret subtable formats 4 (Unicode BMP) and 12 (Unicode full repertoire) only.

// CMapTable is the character to glyph index mapping table 'cmap'.
type CMapTable struct {
	tableBase
	Version    uint16
	NumRecords uint16
	Records    DynArr[EncodingRecord]
}

// EncodingRecord locates a subtable of 'cmap' for a platform and encoding.
type EncodingRecord struct {
	PlatformID uint16
	EncodingID uint16
	Offset     uint32 // from the beginning of table 'cmap'
}

const (
	cmapHeaderSize     = 4
	encodingRecordSize = 8
)

var encodingRecordCodec = MakeCodec(encodingRecordSize, func(b []byte) EncodingRecord {
	r := reader{b}
	return EncodingRecord{
		PlatformID: read(&r, U16),
		EncodingID: read(&r, U16),
		Offset:     read(&r, U32),
	}
})

// CMapSubtable is an interpreted subtable of 'cmap'.
type CMapSubtable interface {
	Format() uint16
	Lookup(cp rune) Option[GlyphIndex]
	Ranges() iter.Seq[CodeRange]
}

// CodeRange is an inclusive range of code points covered by a cmap subtable.
// Not every code point of a range has to map to a glyph.
type CodeRange struct {
	First, Last rune
}

// CMap decodes table 'cmap'. Subtables are decoded on request.
func (otf *Font) CMap() (*CMapTable, error) {
	base, err := otf.tableBase(T("cmap"))
	if err != nil {
		return nil, err
	}
	return parseCMap(base)
}

func parseCMap(base tableBase) (*CMapTable, error) {
	r := reader{base.data}
	if !r.has(cmapHeaderSize) {
		return nil, base.sectionError("Header", ErrMalformed, "cmap table too small: %d bytes", r.len())
	}
	t := &CMapTable{
		tableBase:  base,
		Version:    read(&r, U16),
		NumRecords: read(&r, U16),
	}
	n := int(t.NumRecords)
	if n > MaxEncodingCount {
		return nil, base.sectionError("Header", ErrMalformed, "encoding record count too large: %d", n)
	}
	if !r.has(n * encodingRecordSize) {
		return nil, base.sectionError("Header", ErrMalformed,
			"table size %d < required %d", len(base.data), cmapHeaderSize+n*encodingRecordSize)
	}
	t.Records = readArray(&r, encodingRecordCodec, n)
	tracer().Debugf("font cmap has %d sub-tables in %d bytes", n, len(base.data))
	return t, nil
}

// subtableFormat returns the format of the subtable a record points to.
func (t *CMapTable) subtableFormat(rec EncodingRecord) (uint16, bool) {
	off := int(rec.Offset)
	if rec.Offset > uint32(len(t.data)) || off+2 > len(t.data) {
		return 0, false
	}
	return u16(t.data[off:]), true
}

// Format returns the subtable of the first encoding record pointing to a subtable
// of format `format`. If no such subtable exists, an error wrapping ErrTableNotFound
// is returned. Formats other than 4 and 12 are not interpreted and result in an
// error wrapping ErrUnsupported.
func (t *CMapTable) Format(format uint16) (CMapSubtable, error) {
	switch format {
	case 4:
		return t.Format4()
	case 12:
		return t.Format12()
	}
	return nil, t.sectionError("Format", ErrUnsupported, "cmap subtable format %d not supported", format)
}

func (t *CMapTable) findFormat(format uint16) (EncodingRecord, bool) {
	for rec := range t.Records.Values() {
		if f, ok := t.subtableFormat(rec); ok && f == format {
			return rec, true
		}
	}
	return EncodingRecord{}, false
}

// GlyphIndex maps a code point to a glyph index. Code points of the BMP are looked up
// in the format 4 subtable, if present, otherwise in the format 12 subtable. Code points
// beyond the BMP are looked up in the format 12 subtable only.
//
// Code points without a glyph, including the ones a font maps to glyph 0, result in None.
func (t *CMapTable) GlyphIndex(cp rune) Option[GlyphIndex] {
	if cp < 0 {
		return None[GlyphIndex]()
	}
	if cp < 0x10000 {
		if f4, err := t.Format4(); err == nil {
			return f4.Lookup(cp)
		}
	}
	f12, err := t.Format12()
	if err != nil {
		return None[GlyphIndex]()
	}
	return f12.Lookup(cp)
}

// --- Format 4 --------------------------------------------------------------

// CMapFormat4 is a segment mapping to delta values, for code points of the BMP.
//
// Each segment is described by a startCode and endCode, along with an idDelta and an
// idRangeOffset. If the idRangeOffset value for the segment is not 0, the mapping of
// character codes relies on glyphIdArray. The glyph index array is addressed relative
// to the position of the idRangeOffset entry of the segment, which is why its length
// is not known up front.
type CMapFormat4 struct {
	Length         uint16
	Language       uint16
	SegCount       int
	EndCodes       DynArr[uint16]
	StartCodes     DynArr[uint16]
	IDDeltas       DynArr[int16]
	IDRangeOffsets DynArr[uint16]
	GlyphIDs       BufView[uint16]
}

const cmap4HeaderSize = 14

// Format4 decodes the first subtable of format 4.
func (t *CMapTable) Format4() (*CMapFormat4, error) {
	rec, ok := t.findFormat(4)
	if !ok {
		return nil, t.sectionError("Format4", ErrTableNotFound, "no cmap subtable of format 4")
	}
	sub := t.data[rec.Offset:]
	if len(sub) < cmap4HeaderSize {
		return nil, t.sectionError("Format4", ErrMalformed, "subtable header exceeds table")
	}
	r := reader{sub}
	r.skip(2) // format
	f := &CMapFormat4{
		Length:   read(&r, U16),
		Language: read(&r, U16),
	}
	segCountX2 := int(read(&r, U16))
	if segCountX2%2 != 0 {
		return nil, t.sectionError("Format4", ErrMalformed, "odd segCountX2 %d", segCountX2)
	}
	f.SegCount = segCountX2 / 2
	r.skip(6) // searchRange, entrySelector, rangeShift
	if int(f.Length) >= cmap4HeaderSize && int(f.Length) <= len(sub) {
		r.b = sub[cmap4HeaderSize:f.Length]
	}
	// endCode, reservedPad, startCode, idDelta, idRangeOffset
	if !r.has(4*segCountX2 + 2) {
		return nil, t.sectionError("Format4", ErrMalformed,
			"%d segments exceed subtable of %d bytes", f.SegCount, len(sub))
	}
	f.EndCodes = readArray(&r, U16, f.SegCount)
	r.skip(2)
	f.StartCodes = readArray(&r, U16, f.SegCount)
	f.IDDeltas = readArray(&r, I16, f.SegCount)
	f.IDRangeOffsets = readArray(&r, U16, f.SegCount)
	f.GlyphIDs = NewBufView(r.rest(), U16)
	return f, nil
}

// Format returns 4.
func (f *CMapFormat4) Format() uint16 { return 4 }

// Lookup finds the glyph for a code point.
//
// Segments are searched in ascending order for the first one with endCode ≥ cp.
// If idRangeOffset is 0, the delta is added to the code point. Otherwise the glyph
// is read from the glyph index array and, if non-zero, the delta is added to it.
// All arithmetic is modulo 65536.
func (f *CMapFormat4) Lookup(cp rune) Option[GlyphIndex] {
	if cp < 0 || cp > 0xFFFF {
		return None[GlyphIndex]()
	}
	c := uint16(cp)
	for seg, end := range f.EndCodes.All() {
		if end < c {
			continue
		}
		start := f.StartCodes.At(seg)
		if start > c {
			return None[GlyphIndex]()
		}
		delta := uint16(f.IDDeltas.At(seg))
		ro := f.IDRangeOffsets.At(seg)
		if ro == 0 {
			return nonZeroGlyph(c + delta)
		}
		inx := int(ro)/2 + int(c-start) - (f.SegCount - seg)
		g, ok := f.GlyphIDs.Get(inx).Unwrap()
		if !ok || g == 0 {
			return None[GlyphIndex]()
		}
		return nonZeroGlyph(g + delta)
	}
	return None[GlyphIndex]()
}

func nonZeroGlyph(g uint16) Option[GlyphIndex] {
	if g == 0 {
		return None[GlyphIndex]()
	}
	return Some(GlyphIndex(g))
}

// Ranges iterates over the segments of the subtable, omitting the final 0xFFFF
// segment.
func (f *CMapFormat4) Ranges() iter.Seq[CodeRange] {
	return func(yield func(CodeRange) bool) {
		for seg, end := range f.EndCodes.All() {
			start := f.StartCodes.At(seg)
			if start == 0xFFFF && end == 0xFFFF {
				continue
			}
			if start > end {
				continue
			}
			if !yield(CodeRange{First: rune(start), Last: rune(end)}) {
				return
			}
		}
	}
}

// --- Format 12 -------------------------------------------------------------

// CMapFormat12 is a segmented coverage of the full Unicode repertoire.
// Groups are sorted by start code and do not overlap.
type CMapFormat12 struct {
	Length   uint32
	Language uint32
	Groups   DynArr[SequentialMapGroup]
}

// SequentialMapGroup maps the code points [StartCode … EndCode] to consecutive
// glyphs, beginning with StartGlyph.
type SequentialMapGroup struct {
	StartCode  uint32
	EndCode    uint32
	StartGlyph uint32
}

const (
	cmap12HeaderSize = 16
	mapGroupSize     = 12
)

var mapGroupCodec = MakeCodec(mapGroupSize, func(b []byte) SequentialMapGroup {
	r := reader{b}
	return SequentialMapGroup{
		StartCode:  read(&r, U32),
		EndCode:    read(&r, U32),
		StartGlyph: read(&r, U32),
	}
})

// Format12 decodes the first subtable of format 12.
func (t *CMapTable) Format12() (*CMapFormat12, error) {
	rec, ok := t.findFormat(12)
	if !ok {
		return nil, t.sectionError("Format12", ErrTableNotFound, "no cmap subtable of format 12")
	}
	sub := t.data[rec.Offset:]
	if len(sub) < cmap12HeaderSize {
		return nil, t.sectionError("Format12", ErrMalformed, "subtable header exceeds table")
	}
	r := reader{sub}
	r.skip(4) // format, reserved
	f := &CMapFormat12{
		Length:   read(&r, U32),
		Language: read(&r, U32),
	}
	n := read(&r, U32)
	size, err := checkedMulInt(int(n), mapGroupSize)
	if err != nil || n > uint32(len(sub)) || !r.has(size) {
		return nil, t.sectionError("Format12", ErrMalformed,
			"%d groups exceed subtable of %d bytes", n, len(sub))
	}
	f.Groups = readArray(&r, mapGroupCodec, int(n))
	return f, nil
}

// Format returns 12.
func (f *CMapFormat12) Format() uint16 { return 12 }

// Lookup finds the group containing cp by binary search.
func (f *CMapFormat12) Lookup(cp rune) Option[GlyphIndex] {
	if cp < 0 {
		return None[GlyphIndex]()
	}
	c := uint32(cp)
	i, found := f.Groups.BinarySearchFunc(func(g SequentialMapGroup) int {
		switch {
		case c < g.StartCode:
			return 1
		case c > g.EndCode:
			return -1
		}
		return 0
	})
	if !found {
		return None[GlyphIndex]()
	}
	g := f.Groups.At(i)
	gid := uint64(g.StartGlyph) + uint64(c-g.StartCode)
	if gid == 0 || gid > 0xFFFF {
		return None[GlyphIndex]()
	}
	return Some(GlyphIndex(gid))
}

// Ranges iterates over the groups of the subtable.
func (f *CMapFormat12) Ranges() iter.Seq[CodeRange] {
	return func(yield func(CodeRange) bool) {
		for g := range f.Groups.Values() {
			if !yield(CodeRange{First: rune(g.StartCode), Last: rune(g.EndCode)}) {
				return
			}
		}
	}
}

func (r CodeRange) String() string {
	return fmt.Sprintf("U+%04X…U+%04X", r.First, r.Last)
}
