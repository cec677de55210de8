package ot

import (
	"fmt"
)

// Font represents the internal structure of a TrueType or OpenType font.
//
// A Font holds on to the font's binary data and its table directory. Tables are
// decoded on demand by the typed accessors (Head, CMap, Glyf, …) and are not cached:
// decoding is the construction of views onto the binary data and never copies it.
// As all operations only read the binary data, a Font may be used concurrently.
type Font struct {
	binary        []byte
	Directory     FontDirectory
	sorted        bool          // table records are sorted by tag
	parseErrors   []FontError   // Errors accumulated during parsing
	parseWarnings []FontWarning // Warnings accumulated during parsing
}

// OffsetSubtable is the header of the table directory of a font. If the font file
// contains only one font, the table directory will begin at byte 0 of the file.
//
// Fonts that contain TrueType outlines should use the value of 0x00010000
// (or 'true') for the ScalerType. Fonts containing CFF data use 0x4F54544F ('OTTO').
// The Apple specification for TrueType fonts allows for 'typ1' as well.
type OffsetSubtable struct {
	ScalerType    uint32
	NumTables     uint16
	SearchRange   uint16 // binary search hints, not needed for correctness
	EntrySelector uint16
	RangeShift    uint16
}

const offsetSubtableSize = 12

var offsetSubtableCodec = MakeCodec(offsetSubtableSize, func(b []byte) OffsetSubtable {
	r := reader{b}
	return OffsetSubtable{
		ScalerType:    read(&r, U32),
		NumTables:     read(&r, U16),
		SearchRange:   read(&r, U16),
		EntrySelector: read(&r, U16),
		RangeShift:    read(&r, U16),
	}
})

// TableRecord is an entry of the table directory.
type TableRecord struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32 // from the beginning of the font file
	Length   uint32
}

const tableRecordSize = 16

var tableRecordCodec = MakeCodec(tableRecordSize, func(b []byte) TableRecord {
	r := reader{b}
	return TableRecord{
		Tag:      read(&r, TagCodec),
		Checksum: read(&r, U32),
		Offset:   read(&r, U32),
		Length:   read(&r, U32),
	}
})

// end returns the end offset of the table, if it lies within a font of size fontsize.
func (rec TableRecord) end(fontsize int) (uint32, error) {
	end, err := checkedAddUint32(rec.Offset, rec.Length)
	if err != nil {
		return 0, err
	}
	if end > uint32(fontsize) {
		return 0, fmt.Errorf("bounds [%d:%d] exceed font size %d", rec.Offset, end, fontsize)
	}
	return end, nil
}

// FontDirectory is the directory of the top-level tables in a font.
type FontDirectory struct {
	Offsets OffsetSubtable
	Tables  DynArr[TableRecord]
}

// ScalerKind classifies the outline technology of a font, as declared by the
// scaler type of its directory.
type ScalerKind int

const (
	UnknownScaler    ScalerKind = iota
	TrueTypeScaler              // 0x00010000 or 'true'
	PostScriptScaler            // 'typ1'
	OpenTypeScaler              // 'OTTO', i.e. CFF outlines
)

// ScalerKindOf classifies a scaler type value from a font's offset subtable.
func ScalerKindOf(scalerType uint32) ScalerKind {
	switch scalerType {
	case 0x74727565, 0x00010000:
		return TrueTypeScaler
	case 0x74797031:
		return PostScriptScaler
	case 0x4F54544F:
		return OpenTypeScaler
	}
	return UnknownScaler
}

func (k ScalerKind) String() string {
	switch k {
	case TrueTypeScaler:
		return "TrueType"
	case PostScriptScaler:
		return "PostScript"
	case OpenTypeScaler:
		return "OpenType"
	}
	return "unknown"
}

// ScalerKind returns the kind of outlines the font declares.
func (otf *Font) ScalerKind() ScalerKind {
	return ScalerKindOf(otf.Directory.Offsets.ScalerType)
}

// Binary returns the font's binary data. Clients must treat it as read-only.
func (otf *Font) Binary() []byte {
	return otf.binary
}

// Record returns the directory record for a table. Records for tables which
// exceed the font's binary data are treated as absent.
func (otf *Font) Record(tag Tag) (TableRecord, bool) {
	tables := otf.Directory.Tables
	var rec TableRecord
	found := false
	if otf.sorted {
		if i, ok := tables.BinarySearchFunc(func(r TableRecord) int {
			return compareTags(r.Tag, tag)
		}); ok {
			rec, found = tables.At(i), true
		}
	} else {
		for r := range tables.Values() {
			if r.Tag == tag {
				rec, found = r, true
				break
			}
		}
	}
	if !found {
		return rec, false
	}
	if _, err := rec.end(len(otf.binary)); err != nil {
		return rec, false
	}
	return rec, true
}

func compareTags(a, b Tag) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Table returns a generic view of the font table for a given tag. If a table for
// a tag cannot be found in the font, nil is returned.
//
// For example to receive the bytes of the `OS/2` table, clients may call
//
//	os2 := otf.Table(ot.T("OS/2")).Binary()
//
// Table tag names are case-sensitive, following the names in the OpenType specification.
// For interpreted tables, see the typed accessors (Head, MaxP, CMap, …) and Decode.
func (otf *Font) Table(tag Tag) Table {
	base, err := otf.tableBase(tag)
	if err != nil {
		return nil
	}
	return &genericTable{base}
}

// TableTags returns a list of tags, one for each table contained in the font,
// in directory order.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, otf.Directory.Tables.Len())
	for rec := range otf.Directory.Tables.Values() {
		tags = append(tags, rec.Tag)
	}
	return tags
}

func (otf *Font) tableBase(tag Tag) (tableBase, error) {
	rec, ok := otf.Record(tag)
	if !ok {
		return tableBase{}, errTable(tag, "Directory", ErrTableNotFound, "font has no table '%s'", tag)
	}
	return tableBase{
		data:   otf.binary[rec.Offset : rec.Offset+rec.Length],
		name:   tag,
		offset: rec.Offset,
		length: rec.Length,
	}, nil
}

// Errors returns all errors encountered during font parsing.
// These errors represent issues that were found but did not prevent parsing from completing.
// Clients can inspect these errors to determine if the font is suitable for their use case.
// Errors of table accessors, e.g. CMap, are returned by the accessor and not recorded.
func (otf *Font) Errors() []FontError {
	if otf.parseErrors == nil {
		return []FontError{}
	}
	return otf.parseErrors
}

// Warnings returns all warnings encountered during font parsing.
// Warnings indicate potential issues that are generally safe to ignore.
func (otf *Font) Warnings() []FontWarning {
	if otf.parseWarnings == nil {
		return []FontWarning{}
	}
	return otf.parseWarnings
}

// CriticalErrors returns all errors with critical severity.
// Critical errors indicate severe problems that may make the font unreliable.
func (otf *Font) CriticalErrors() []FontError {
	critical := make([]FontError, 0)
	for _, err := range otf.parseErrors {
		if err.Severity == SeverityCritical {
			critical = append(critical, err)
		}
	}
	return critical
}

// HasCriticalErrors reports if parsing the font produced critical errors.
func (otf *Font) HasCriticalErrors() bool {
	return len(otf.CriticalErrors()) > 0
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the OpenType specification as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table represents one of the font tables.
//
// Tables interpreted by this package are 'head', 'maxp', 'hhea', 'hmtx', 'vhea',
// 'vmtx', 'OS/2', 'cmap', 'loca' and 'glyf'. Every other table is available as a
// generic table, i.e. as a byte range of the font's binary data.
type Table interface {
	Tag() Tag                 // 4-byte name of the table
	Extent() (uint32, uint32) // offset and byte size within the font's binary data
	Binary() []byte           // the bytes of this table; should be treated as read-only by clients
}

// tableBase is a common parent for all kinds of tables.
type tableBase struct {
	data   []byte // a table is a slice of font data
	name   Tag    // 4-byte name as an integer
	offset uint32 // from offset
	length uint32 // to offset + length
}

// Tag returns the name of the table.
func (tb *tableBase) Tag() Tag {
	return tb.name
}

// Extent returns offset and byte size of this table within the font.
func (tb *tableBase) Extent() (uint32, uint32) {
	return tb.offset, tb.length
}

// Binary returns the bytes of this table. Should be treated as read-only by
// clients, as it is a view into the original data.
func (tb *tableBase) Binary() []byte {
	return tb.data
}

// sectionError creates a table-level error located within this table.
func (tb *tableBase) sectionError(section string, err error, format string, args ...any) error {
	e := errTable(tb.name, section, err, format, args...).(FontError)
	e.Offset = tb.offset
	return e
}

type genericTable struct {
	tableBase
}
