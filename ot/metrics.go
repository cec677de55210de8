package ot

import "fmt"

// --- HHea and VHea tables --------------------------------------------------

// MetricsHeader is the common layout of tables 'hhea' and 'vhea'. Field names
// follow 'hhea'; for 'vhea', Ascender is the distance from the centerline to the
// previous line's descent, Descender the distance to the next line's ascent,
// and the bearings are top and bottom side bearings.
type MetricsHeader struct {
	Version            Fixed
	Ascender           int16
	Descender          int16
	LineGap            int16
	AdvanceMax         uint16 // maximum advance width/height in 'hmtx'/'vmtx'
	MinLeadingBearing  int16  // minimum left/top side bearing
	MinTrailingBearing int16  // minimum right/bottom side bearing
	MaxExtent          int16
	CaretSlopeRise     int16
	CaretSlopeRun      int16
	CaretOffset        int16
	MetricDataFormat   int16 // 0 for current format
	NumberOfMetrics    uint16
}

const metricsHeaderSize = 36

var metricsHeaderCodec = MakeCodec(metricsHeaderSize, func(b []byte) MetricsHeader {
	r := reader{b}
	h := MetricsHeader{
		Version:            read(&r, FixedCodec),
		Ascender:           read(&r, I16),
		Descender:          read(&r, I16),
		LineGap:            read(&r, I16),
		AdvanceMax:         read(&r, U16),
		MinLeadingBearing:  read(&r, I16),
		MinTrailingBearing: read(&r, I16),
		MaxExtent:          read(&r, I16),
		CaretSlopeRise:     read(&r, I16),
		CaretSlopeRun:      read(&r, I16),
		CaretOffset:        read(&r, I16),
	}
	r.skip(8) // reserved
	h.MetricDataFormat = read(&r, I16)
	h.NumberOfMetrics = read(&r, U16)
	return h
})

// HHeaTable contains information for horizontal layout.
type HHeaTable struct {
	tableBase
	MetricsHeader
}

// VHeaTable contains information for vertical layout.
type VHeaTable struct {
	tableBase
	MetricsHeader
}

func parseMetricsHeader(base tableBase) (MetricsHeader, error) {
	if len(base.data) < metricsHeaderSize {
		return MetricsHeader{}, base.sectionError("Size", ErrMalformed,
			"%s table too small: %d bytes (need %d)", base.name, len(base.data), metricsHeaderSize)
	}
	h, _ := metricsHeaderCodec.Decode(base.data)
	return h, nil
}

// HHea decodes table 'hhea'.
func (otf *Font) HHea() (*HHeaTable, error) {
	base, err := otf.tableBase(T("hhea"))
	if err != nil {
		return nil, err
	}
	h, err := parseMetricsHeader(base)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("hhea: %d long horizontal metrics", h.NumberOfMetrics)
	return &HHeaTable{tableBase: base, MetricsHeader: h}, nil
}

// VHea decodes table 'vhea'. Fonts for horizontal scripts usually do not contain it.
func (otf *Font) VHea() (*VHeaTable, error) {
	base, err := otf.tableBase(T("vhea"))
	if err != nil {
		return nil, err
	}
	h, err := parseMetricsHeader(base)
	if err != nil {
		return nil, err
	}
	return &VHeaTable{tableBase: base, MetricsHeader: h}, nil
}

// --- HMtx and VMtx tables --------------------------------------------------

// LongMetric is one long metric record of tables 'hmtx' or 'vmtx'.
type LongMetric struct {
	Advance uint16 // advance width or height
	Bearing int16  // left or top side bearing
}

var longMetricCodec = MakeCodec(4, func(b []byte) LongMetric {
	return LongMetric{Advance: u16(b), Bearing: int16(u16(b[2:]))}
})

// MetricsTable is the common layout of tables 'hmtx' and 'vmtx': an array of long
// metric records, followed by an array of bare side bearings.
//
// The number of long metrics is taken from the 'hhea' or 'vhea' table respectively.
// In a monospaced font, only one entry is required but that entry may not be omitted.
// Glyphs past the long metrics are assumed to have the same advance as the last
// long metric record. Since there must be a side bearing and an advance associated
// with each glyph in the font, the number of bare bearings is derived from the total
// number of glyphs in the font minus the number of long metrics.
type MetricsTable struct {
	Long     DynArr[LongMetric]
	Bearings DynArr[int16]
}

// HMtxTable contains metric information for the horizontal layout of each of the
// glyphs in the font.
type HMtxTable struct {
	tableBase
	MetricsTable
}

// VMtxTable contains metric information for the vertical layout of each of the
// glyphs in the font.
type VMtxTable struct {
	tableBase
	MetricsTable
}

func parseMetricsTable(base tableBase, numberOfMetrics, numGlyphs int) (MetricsTable, error) {
	if numberOfMetrics > numGlyphs {
		return MetricsTable{}, base.sectionError("NumberOfMetrics", ErrMalformed,
			"value %d exceeds maxp.NumGlyphs %d", numberOfMetrics, numGlyphs)
	}
	if numberOfMetrics == 0 && numGlyphs > 0 {
		return MetricsTable{}, base.sectionError("NumberOfMetrics", ErrMalformed,
			"no long metrics for %d glyphs", numGlyphs)
	}
	longSize, err := checkedMulInt(numberOfMetrics, longMetricCodec.Size())
	if err != nil {
		return MetricsTable{}, base.sectionError("Size", ErrMalformed, "long metrics size: %v", err)
	}
	bearingsCount := numGlyphs - numberOfMetrics
	required, err := checkedAddInt(longSize, 2*bearingsCount)
	if err != nil {
		return MetricsTable{}, base.sectionError("Size", ErrMalformed, "total size: %v", err)
	}
	r := reader{base.data}
	if !r.has(required) {
		return MetricsTable{}, base.sectionError("Size", ErrMalformed,
			"table size %d insufficient for %d glyphs (need %d)", len(base.data), numGlyphs, required)
	}
	return MetricsTable{
		Long:     readArray(&r, longMetricCodec, numberOfMetrics),
		Bearings: readArray(&r, I16, bearingsCount),
	}, nil
}

// GlyphCount returns the number of glyphs covered by this table.
func (t MetricsTable) GlyphCount() int {
	return t.Long.Len() + t.Bearings.Len()
}

// Metrics returns the advance and the side bearing of a glyph.
func (t MetricsTable) Metrics(g GlyphIndex) (uint16, int16, bool) {
	n := t.Long.Len()
	if n == 0 || int(g) >= t.GlyphCount() {
		return 0, 0, false
	}
	if int(g) < n {
		m := t.Long.At(int(g))
		return m.Advance, m.Bearing, true
	}
	return t.Long.At(n - 1).Advance, t.Bearings.At(int(g) - n), true
}

// HMetrics returns the advance width and left side bearing for a glyph.
func (t *HMtxTable) HMetrics(g GlyphIndex) (uint16, int16, bool) {
	return t.Metrics(g)
}

// VMetrics returns the advance height and top side bearing for a glyph.
func (t *VMtxTable) VMetrics(g GlyphIndex) (uint16, int16, bool) {
	return t.Metrics(g)
}

// HMtx decodes table 'hmtx'. This requires tables 'hhea' and 'maxp' to be present.
func (otf *Font) HMtx() (*HMtxTable, error) {
	base, err := otf.tableBase(T("hmtx"))
	if err != nil {
		return nil, err
	}
	hhea, err := otf.HHea()
	if err != nil {
		return nil, fmt.Errorf("table hmtx depends on hhea: %w", err)
	}
	maxp, err := otf.MaxP()
	if err != nil {
		return nil, fmt.Errorf("table hmtx depends on maxp: %w", err)
	}
	m, err := parseMetricsTable(base, int(hhea.NumberOfMetrics), int(maxp.NumGlyphs))
	if err != nil {
		return nil, err
	}
	return &HMtxTable{tableBase: base, MetricsTable: m}, nil
}

// VMtx decodes table 'vmtx'. This requires tables 'vhea' and 'maxp' to be present.
func (otf *Font) VMtx() (*VMtxTable, error) {
	base, err := otf.tableBase(T("vmtx"))
	if err != nil {
		return nil, err
	}
	vhea, err := otf.VHea()
	if err != nil {
		return nil, fmt.Errorf("table vmtx depends on vhea: %w", err)
	}
	maxp, err := otf.MaxP()
	if err != nil {
		return nil, fmt.Errorf("table vmtx depends on maxp: %w", err)
	}
	m, err := parseMetricsTable(base, int(vhea.NumberOfMetrics), int(maxp.NumGlyphs))
	if err != nil {
		return nil, err
	}
	return &VMtxTable{tableBase: base, MetricsTable: m}, nil
}
