package ot

// --- Head table ------------------------------------------------------------

// LocaFormat is the format of offsets in table 'loca', as declared by field
// indexToLocFormat of table 'head'.
type LocaFormat int16

const (
	ShortLocaFormat LocaFormat = 0 // offsets are uint16, holding the actual offset divided by 2
	LongLocaFormat  LocaFormat = 1 // offsets are uint32
)

func (f LocaFormat) String() string {
	switch f {
	case ShortLocaFormat:
		return "short"
	case LongLocaFormat:
		return "long"
	}
	return "invalid"
}

// HeadTable gives global information about the font.
type HeadTable struct {
	tableBase
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       Fixed
	CheckSumAdjustment uint32
	MagicNumber        uint32 // 0x5F0F3CF5
	Flags              uint16 // see https://docs.microsoft.com/en-us/typography/opentype/spec/head
	UnitsPerEm         uint16 // values 16 … 16384 are valid
	Created            int64  // seconds since 1904-01-01
	Modified           int64
	XMin, YMin         int16 // bounding box for all glyphs
	XMax, YMax         int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   LocaFormat // needed to interpret loca table
	GlyphDataFormat    int16
}

const headTableSize = 54

// Head decodes table 'head'. A font with an unknown index-to-loc format is
// considered malformed.
func (otf *Font) Head() (*HeadTable, error) {
	base, err := otf.tableBase(T("head"))
	if err != nil {
		return nil, err
	}
	return parseHead(base)
}

func parseHead(base tableBase) (*HeadTable, error) {
	if len(base.data) < headTableSize {
		return nil, base.sectionError("Size", ErrMalformed,
			"head table too small: %d bytes (need %d)", len(base.data), headTableSize)
	}
	r := reader{base.data}
	t := &HeadTable{
		tableBase:          base,
		MajorVersion:       read(&r, U16),
		MinorVersion:       read(&r, U16),
		FontRevision:       read(&r, FixedCodec),
		CheckSumAdjustment: read(&r, U32),
		MagicNumber:        read(&r, U32),
		Flags:              read(&r, U16),
		UnitsPerEm:         read(&r, U16),
		Created:            read(&r, I64),
		Modified:           read(&r, I64),
		XMin:               read(&r, I16),
		YMin:               read(&r, I16),
		XMax:               read(&r, I16),
		YMax:               read(&r, I16),
		MacStyle:           read(&r, U16),
		LowestRecPPEM:      read(&r, U16),
		FontDirectionHint:  read(&r, I16),
		IndexToLocFormat:   LocaFormat(read(&r, I16)),
		GlyphDataFormat:    read(&r, I16),
	}
	if t.IndexToLocFormat != ShortLocaFormat && t.IndexToLocFormat != LongLocaFormat {
		return nil, base.sectionError("IndexToLocFormat", ErrMalformed,
			"invalid value: %d (must be 0 or 1)", t.IndexToLocFormat)
	}
	if t.UnitsPerEm == 0 {
		return nil, base.sectionError("UnitsPerEm", ErrMalformed, "units per em is 0")
	}
	tracer().Debugf("head: units per em = %d, loca format = %s", t.UnitsPerEm, t.IndexToLocFormat)
	return t, nil
}
