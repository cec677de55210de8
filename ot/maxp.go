package ot

// --- MaxP table ------------------------------------------------------------

// MaxPTable establishes the memory requirements for this font.
// The 'maxp' table contains a count for the number of glyphs in the font.
//
// Fonts with CFF data must use Version 0.5 of this table, specifying only the
// numGlyphs field. Fonts with TrueType outlines must use Version 1.0 of this table,
// where all data is required.
type MaxPTable struct {
	tableBase
	Version   Fixed
	NumGlyphs uint16
	V1        Option[MaxPV1] // present for version 1.0 tables
}

// MaxPV1 holds the TrueType profile fields of a version 1.0 'maxp' table.
type MaxPV1 struct {
	MaxPoints             uint16 // points in a non-composite glyph
	MaxContours           uint16 // contours in a non-composite glyph
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16 // 1 if instructions do not use the twilight zone, 2 otherwise
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16 // top-level components of a composite glyph
	MaxComponentDepth     uint16 // levels of recursion; 1 for simple components
}

const (
	maxpV05Size = 6
	maxpV10Size = 32
)

var maxpV1Codec = MakeCodec(maxpV10Size-maxpV05Size, func(b []byte) MaxPV1 {
	r := reader{b}
	return MaxPV1{
		MaxPoints:             read(&r, U16),
		MaxContours:           read(&r, U16),
		MaxCompositePoints:    read(&r, U16),
		MaxCompositeContours:  read(&r, U16),
		MaxZones:              read(&r, U16),
		MaxTwilightPoints:     read(&r, U16),
		MaxStorage:            read(&r, U16),
		MaxFunctionDefs:       read(&r, U16),
		MaxInstructionDefs:    read(&r, U16),
		MaxStackElements:      read(&r, U16),
		MaxSizeOfInstructions: read(&r, U16),
		MaxComponentElements:  read(&r, U16),
		MaxComponentDepth:     read(&r, U16),
	}
})

// MaxP decodes table 'maxp'.
func (otf *Font) MaxP() (*MaxPTable, error) {
	base, err := otf.tableBase(T("maxp"))
	if err != nil {
		return nil, err
	}
	return parseMaxP(base)
}

func parseMaxP(base tableBase) (*MaxPTable, error) {
	if len(base.data) < maxpV05Size {
		return nil, base.sectionError("Size", ErrMalformed,
			"maxp table too small: %d bytes (need %d)", len(base.data), maxpV05Size)
	}
	r := reader{base.data}
	t := &MaxPTable{
		tableBase: base,
		Version:   read(&r, FixedCodec),
		NumGlyphs: read(&r, U16),
	}
	if t.Version.Raw() == 0x00010000 {
		if !r.has(maxpV1Codec.Size()) {
			return nil, base.sectionError("Version", ErrMalformed,
				"maxp version 1.0 table too small: %d bytes (need %d)", len(base.data), maxpV10Size)
		}
		t.V1 = Some(read(&r, maxpV1Codec))
	}
	return t, nil
}
