package ot

// --- OS/2 table ------------------------------------------------------------

// OS2Table holds the metrics and classification data of table 'OS/2'.
// The table has grown over versions 0 to 5; fields of later versions are
// optional.
type OS2Table struct {
	tableBase
	OS2V0
	CodePageRange Option[[2]uint32] // version 1 and later
	V2            Option[OS2V2]     // version 2 and later
	V5            Option[OS2V5]     // version 5
}

// OS2V0 contains the fields every version of table 'OS/2' contains.
type OS2V0 struct {
	Version            uint16
	XAvgCharWidth      int16
	WeightClass        uint16
	WidthClass         uint16
	FsType             uint16
	SubscriptXSize     int16
	SubscriptYSize     int16
	SubscriptXOffset   int16
	SubscriptYOffset   int16
	SuperscriptXSize   int16
	SuperscriptYSize   int16
	SuperscriptXOffset int16
	SuperscriptYOffset int16
	StrikeoutSize      int16
	StrikeoutPosition  int16
	FamilyClass        int16
	Panose             [10]byte
	UnicodeRange       [4]uint32
	VendorID           Tag
	FsSelection        uint16
	FirstCharIndex     uint16
	LastCharIndex      uint16
	TypoAscender       int16
	TypoDescender      int16
	TypoLineGap        int16
	WinAscent          uint16
	WinDescent         uint16
}

// OS2V2 contains the fields added with version 2 of table 'OS/2'.
type OS2V2 struct {
	XHeight     int16
	CapHeight   int16
	DefaultChar uint16
	BreakChar   uint16
	MaxContext  uint16
}

// OS2V5 contains the fields added with version 5 of table 'OS/2'.
type OS2V5 struct {
	LowerOpticalPointSize uint16 // in TWIPs
	UpperOpticalPointSize uint16
}

const (
	os2V0Size = 78
	os2V1Size = 86
	os2V2Size = 96
	os2V5Size = 100
)

var os2V0Codec = MakeCodec(os2V0Size, func(b []byte) OS2V0 {
	r := reader{b}
	t := OS2V0{
		Version:            read(&r, U16),
		XAvgCharWidth:      read(&r, I16),
		WeightClass:        read(&r, U16),
		WidthClass:         read(&r, U16),
		FsType:             read(&r, U16),
		SubscriptXSize:     read(&r, I16),
		SubscriptYSize:     read(&r, I16),
		SubscriptXOffset:   read(&r, I16),
		SubscriptYOffset:   read(&r, I16),
		SuperscriptXSize:   read(&r, I16),
		SuperscriptYSize:   read(&r, I16),
		SuperscriptXOffset: read(&r, I16),
		SuperscriptYOffset: read(&r, I16),
		StrikeoutSize:      read(&r, I16),
		StrikeoutPosition:  read(&r, I16),
		FamilyClass:        read(&r, I16),
	}
	copy(t.Panose[:], r.b[:10])
	r.skip(10)
	for i := range t.UnicodeRange {
		t.UnicodeRange[i] = read(&r, U32)
	}
	t.VendorID = read(&r, TagCodec)
	t.FsSelection = read(&r, U16)
	t.FirstCharIndex = read(&r, U16)
	t.LastCharIndex = read(&r, U16)
	t.TypoAscender = read(&r, I16)
	t.TypoDescender = read(&r, I16)
	t.TypoLineGap = read(&r, I16)
	t.WinAscent = read(&r, U16)
	t.WinDescent = read(&r, U16)
	return t
})

var os2V2Codec = MakeCodec(os2V2Size-os2V1Size, func(b []byte) OS2V2 {
	r := reader{b}
	return OS2V2{
		XHeight:     read(&r, I16),
		CapHeight:   read(&r, I16),
		DefaultChar: read(&r, U16),
		BreakChar:   read(&r, U16),
		MaxContext:  read(&r, U16),
	}
})

// OS2 decodes table 'OS/2'. Extensions of later table versions are decoded if the
// version field announces them and the table is large enough; otherwise they are
// left empty and a warning is traced.
func (otf *Font) OS2() (*OS2Table, error) {
	base, err := otf.tableBase(T("OS/2"))
	if err != nil {
		return nil, err
	}
	return parseOS2(base)
}

func parseOS2(base tableBase) (*OS2Table, error) {
	if len(base.data) < os2V0Size {
		return nil, base.sectionError("Size", ErrMalformed,
			"OS/2 table too small: %d bytes (need %d)", len(base.data), os2V0Size)
	}
	r := reader{base.data}
	t := &OS2Table{tableBase: base, OS2V0: read(&r, os2V0Codec)}
	v := t.Version
	if v >= 1 && r.has(os2V1Size-os2V0Size) {
		t.CodePageRange = Some([2]uint32{read(&r, U32), read(&r, U32)})
	}
	if v >= 2 && r.has(os2V2Codec.Size()) {
		t.V2 = Some(read(&r, os2V2Codec))
	}
	if v >= 5 && r.has(os2V5Size-os2V2Size) {
		t.V5 = Some(OS2V5{
			LowerOpticalPointSize: read(&r, U16),
			UpperOpticalPointSize: read(&r, U16),
		})
	}
	if v >= 1 && len(base.data) < os2MinSize(v) {
		tracer().Infof("OS/2 table version %d truncated to %d bytes", v, len(base.data))
	}
	return t, nil
}

func os2MinSize(version uint16) int {
	switch {
	case version >= 5:
		return os2V5Size
	case version >= 2:
		return os2V2Size
	case version == 1:
		return os2V1Size
	}
	return os2V0Size
}
