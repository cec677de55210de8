package ot

import (
	"fmt"
	"math"
)

// Code comments often cite passages from the OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Maximum reasonable counts for font structures.
// These limits prevent malicious fonts from claiming unreasonably large counts
// that could lead to excessive memory allocation or out-of-bounds reads.
const (
	MaxTableCount     = 512   // Tables in the directory: typically < 30
	MaxGlyphCount     = 65536 // Maximum glyph index (uint16)
	MaxEncodingCount  = 256   // cmap encoding records: typically < 10
	MaxComponentCount = 1024  // components of a single composite glyph
)

// Maximum recursion/nesting depth to prevent stack overflow and cycles
// in composite glyphs.
const (
	MaxComponentDepth = 16 // Maximum nesting of composite glyph components
)

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if a < 0 && b < 0 && a < math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if (a < 0 && b > 0 && a < math.MinInt/b) || (a > 0 && b < 0 && b < math.MinInt/a) {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddInt checks for overflow in addition of two integers
func checkedAddInt(a, b int) (int, error) {
	if b > 0 && a > math.MaxInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	if b < 0 && a < math.MinInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// Parse parses the table directory of a TrueType/OpenType font from a byte slice.
// A Font needs ongoing access to the font's byte-data after the Parse function returns.
// Its elements are assumed immutable while the Font remains in use.
//
// Parse fails only if the data is not a font file at all, i.e. if the offset
// subtable or the table directory cannot be decoded. Problems with single tables are
// recorded (see Font.Errors) and surface as errors of the table accessors.
func Parse(font []byte) (*Font, error) {
	if len(font) < offsetSubtableSize {
		return nil, errFontFormat(fmt.Sprintf("font data too short: %d bytes", len(font)))
	}
	r := reader{font}
	h := read(&r, offsetSubtableCodec)
	tracer().Debugf("header = %v, tag = %x|%s", h, h.ScalerType, Tag(h.ScalerType).String())
	if ScalerKindOf(h.ScalerType) == UnknownScaler {
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", h.ScalerType))
	}
	if int(h.NumTables) > MaxTableCount {
		return nil, errFontFormat(fmt.Sprintf("table count too large: %d", h.NumTables))
	}
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	recordsSize, err := checkedMulInt(tableRecordSize, int(h.NumTables))
	if err != nil || !r.has(recordsSize) {
		return nil, errFontFormat("table record entries exceed font data")
	}
	otf := &Font{
		binary: font,
		Directory: FontDirectory{
			Offsets: h,
			Tables:  readArray(&r, tableRecordCodec, int(h.NumTables)),
		},
		sorted: true,
	}
	ec := &errorCollector{}
	prevTag := Tag(0)
	for i, rec := range otf.Directory.Tables.All() {
		at := uint32(offsetSubtableSize + i*tableRecordSize)
		if rec.Tag < prevTag {
			otf.sorted = false
			ec.addWarning(rec.Tag, "table directory not sorted by tag", at)
		}
		prevTag = rec.Tag
		if rec.Offset&3 != 0 { // "all tables must begin on four byte boundaries"
			ec.addWarning(rec.Tag, fmt.Sprintf("table offset %d not 4-byte aligned", rec.Offset), at)
		}
		if _, err := rec.end(len(font)); err != nil {
			tracer().Errorf("table %s: %v", rec.Tag, err)
			ec.addError(rec.Tag, "Bounds", err.Error(), SeverityCritical, rec.Offset)
		}
	}
	if ec.hasErrors() {
		tracer().Infof("font directory has %d invalid table record(s)", len(ec.errors))
	}
	otf.parseErrors = ec.errors
	otf.parseWarnings = ec.warnings
	return otf, nil
}

// --- Dispatch --------------------------------------------------------------

// Decode decodes the table for a given tag. For tags of tables this package
// interprets, the concrete table type is returned (e.g. *HeadTable for 'head');
// for all others, a generic table. Decode resolves cross-table dependencies
// (e.g., 'loca' depends on 'head' and 'maxp').
//
// Decode returns an error wrapping ErrTableNotFound if the font does not contain
// the table, and an error wrapping ErrMalformed if the table cannot be decoded.
func (otf *Font) Decode(tag Tag) (Table, error) {
	switch tag {
	case T("head"):
		return orNil(otf.Head())
	case T("maxp"):
		return orNil(otf.MaxP())
	case T("hhea"):
		return orNil(otf.HHea())
	case T("hmtx"):
		return orNil(otf.HMtx())
	case T("vhea"):
		return orNil(otf.VHea())
	case T("vmtx"):
		return orNil(otf.VMtx())
	case T("OS/2"):
		return orNil(otf.OS2())
	case T("cmap"):
		return orNil(otf.CMap())
	case T("loca"):
		return orNil(otf.Loca())
	case T("glyf"):
		return orNil(otf.Glyf())
	}
	base, err := otf.tableBase(tag)
	if err != nil {
		return nil, err
	}
	tracer().Infof("font contains table (%s), will not be interpreted", tag)
	return &genericTable{base}, nil
}

func orNil[T Table](t T, err error) (Table, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}

// KnownTable is the set of table types this package interprets.
type KnownTable interface {
	*HeadTable | *MaxPTable | *HHeaTable | *HMtxTable | *VHeaTable | *VMtxTable |
		*OS2Table | *CMapTable | *LocaTable | *GlyfTable
	Table
}

// GetTable decodes a table of type T from a font, e.g.
//
//	head, err := ot.GetTable[*ot.HeadTable](otf)
func GetTable[T KnownTable](otf *Font) (T, error) {
	var zero T
	var t Table
	var err error
	switch any(zero).(type) {
	case *HeadTable:
		t, err = orNil(otf.Head())
	case *MaxPTable:
		t, err = orNil(otf.MaxP())
	case *HHeaTable:
		t, err = orNil(otf.HHea())
	case *HMtxTable:
		t, err = orNil(otf.HMtx())
	case *VHeaTable:
		t, err = orNil(otf.VHea())
	case *VMtxTable:
		t, err = orNil(otf.VMtx())
	case *OS2Table:
		t, err = orNil(otf.OS2())
	case *CMapTable:
		t, err = orNil(otf.CMap())
	case *LocaTable:
		t, err = orNil(otf.Loca())
	case *GlyfTable:
		t, err = orNil(otf.Glyf())
	}
	if err != nil {
		return zero, err
	}
	return t.(T), nil
}
