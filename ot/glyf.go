package ot

import (
	"fmt"
	"iter"

	"seehuhn.de/go/geom/matrix"
)

// --- Glyf table ------------------------------------------------------------

// GlyfTable contains the outline data of glyphs with TrueType outlines.
// Glyphs are located by the offsets of table 'loca'.
type GlyfTable struct {
	tableBase
}

// Glyf returns table 'glyf'. As glyphs are decoded individually, this does
// not decode any glyph data yet.
func (otf *Font) Glyf() (*GlyfTable, error) {
	base, err := otf.tableBase(T("glyf"))
	if err != nil {
		return nil, err
	}
	return &GlyfTable{tableBase: base}, nil
}

// GlyphHeader starts every glyph description in 'glyf'.
type GlyphHeader struct {
	NumberOfContours int16 // > 0 for simple glyphs, ≤ 0 for composite glyphs
	XMin, YMin       int16
	XMax, YMax       int16
}

const glyphHeaderSize = 10

var glyphHeaderCodec = MakeCodec(glyphHeaderSize, func(b []byte) GlyphHeader {
	r := reader{b}
	return GlyphHeader{
		NumberOfContours: read(&r, I16),
		XMin:             read(&r, I16),
		YMin:             read(&r, I16),
		XMax:             read(&r, I16),
		YMax:             read(&r, I16),
	}
})

// Glyph is a glyph decoded from table 'glyf'.
type Glyph struct {
	GlyphHeader
	Description GlyphDescription // either *SimpleGlyph or *CompositeGlyph
}

// GlyphDescription is the outline part of a glyph, either a *SimpleGlyph or a
// *CompositeGlyph.
type GlyphDescription interface {
	IsComposite() bool
}

// AtOffset decodes the glyph starting at byte offset `off` of the table.
// If the header does not fit into the table, or if the glyph data is malformed,
// None is returned.
func (t *GlyfTable) AtOffset(off uint32) Option[Glyph] {
	if uint64(off)+glyphHeaderSize > uint64(len(t.data)) {
		return None[Glyph]()
	}
	g, err := decodeGlyph(t.data[off:])
	if err != nil {
		tracer().Errorf("glyph at offset %d: %v", off, err)
		return None[Glyph]()
	}
	return Some(g)
}

// glyphAt decodes the glyph in byte range [start, end) of the table.
func (t *GlyfTable) glyphAt(start, end uint32) (Glyph, error) {
	if start > end || end > uint32(len(t.data)) || end-start < glyphHeaderSize {
		return Glyph{}, t.sectionError("Glyph", ErrMalformed,
			"glyph range [%d:%d] invalid for table of %d bytes", start, end, len(t.data))
	}
	g, err := decodeGlyph(t.data[start:end])
	if err != nil {
		return Glyph{}, t.sectionError("Glyph", err, "glyph at offset %d: %v", start, err)
	}
	return g, nil
}

func decodeGlyph(b []byte) (Glyph, error) {
	h, rest := glyphHeaderCodec.Decode(b)
	g := Glyph{GlyphHeader: h}
	switch {
	case h.NumberOfContours == 0: // no contours and no components
		g.Description = &CompositeGlyph{}
		return g, nil
	case h.NumberOfContours < 0:
		g.Description = &CompositeGlyph{data: rest}
		return g, nil
	}
	s, err := decodeSimpleGlyph(rest, int(h.NumberOfContours))
	if err != nil {
		return Glyph{}, err
	}
	g.Description = s
	return g, nil
}

// --- Simple glyphs ---------------------------------------------------------

// Flags of points of simple glyphs.
const (
	OnCurvePoint      = 0x01
	XShortVector      = 0x02 // x delta is 1 byte
	YShortVector      = 0x04 // y delta is 1 byte
	RepeatFlag        = 0x08 // next byte is the number of additional repetitions
	XIsSameOrPositive = 0x10
	YIsSameOrPositive = 0x20
)

// SimpleGlyph is a glyph outline made from contours of on-curve and off-curve points.
//
// Coordinates are stored as compressed deltas in three streams: flags, x deltas and
// y deltas. Decoding locates the streams; points are decoded lazily by Coordinates.
type SimpleGlyph struct {
	EndPoints    DynArr[uint16] // last point index of each contour
	Instructions []byte         // hinting instructions, not interpreted
	flags        []byte
	xs, ys       []byte
	numPoints    int
}

// Coordinate is a point of a simple glyph, in font units.
type Coordinate struct {
	OnCurve bool
	X, Y    int16
}

// IsComposite returns false.
func (s *SimpleGlyph) IsComposite() bool { return false }

// NumContours returns the number of contours of the glyph.
func (s *SimpleGlyph) NumContours() int { return s.EndPoints.Len() }

// NumPoints returns the number of points of all contours of the glyph.
func (s *SimpleGlyph) NumPoints() int { return s.numPoints }

func decodeSimpleGlyph(b []byte, numContours int) (*SimpleGlyph, error) {
	r := reader{b}
	if numContours == 0 {
		return &SimpleGlyph{EndPoints: readArray(&r, U16, 0)}, nil
	}
	if !r.has(2*numContours + 2) {
		return nil, fmt.Errorf("%w: %d contour end points exceed glyph data", ErrMalformed, numContours)
	}
	s := &SimpleGlyph{EndPoints: readArray(&r, U16, numContours)}
	prev := -1
	for i, e := range s.EndPoints.All() {
		if int(e) < prev {
			return nil, fmt.Errorf("%w: end point %d of contour %d decreases", ErrMalformed, e, i)
		}
		prev = int(e)
	}
	s.numPoints = prev + 1
	ilen := int(read(&r, U16))
	if !r.has(ilen) {
		return nil, fmt.Errorf("%w: %d bytes of instructions exceed glyph data", ErrMalformed, ilen)
	}
	s.Instructions = r.b[:ilen]
	r.skip(ilen)
	// First pass: walk the flags, expanding repeat runs, to find out where the
	// flags end and how many bytes the x and y deltas occupy.
	flags := r.b
	var i, xlen, ylen int
	for n := 0; n < s.numPoints; {
		if i >= len(flags) {
			return nil, fmt.Errorf("%w: flags exhausted at point %d of %d", ErrMalformed, n, s.numPoints)
		}
		f := flags[i]
		i++
		count := 1
		if f&RepeatFlag != 0 {
			if i >= len(flags) {
				return nil, fmt.Errorf("%w: missing repeat count at point %d", ErrMalformed, n)
			}
			count += int(flags[i])
			i++
		}
		if n+count > s.numPoints {
			return nil, fmt.Errorf("%w: flag repetition beyond %d points", ErrMalformed, s.numPoints)
		}
		xlen += count * deltaSize(f, XShortVector, XIsSameOrPositive)
		ylen += count * deltaSize(f, YShortVector, YIsSameOrPositive)
		n += count
	}
	if i+xlen+ylen > len(flags) {
		return nil, fmt.Errorf("%w: coordinates need %d bytes, have %d", ErrMalformed, xlen+ylen, len(flags)-i)
	}
	s.flags = flags[:i]
	s.xs = flags[i : i+xlen]
	s.ys = flags[i+xlen : i+xlen+ylen]
	return s, nil
}

func deltaSize(flag byte, short, same byte) int {
	switch {
	case flag&short != 0:
		return 1
	case flag&same != 0:
		return 0
	}
	return 2
}

// Coordinates iterates over the points of all contours, in absolute coordinates.
// The first point is relative to (0, 0).
func (s *SimpleGlyph) Coordinates() iter.Seq[Coordinate] {
	return func(yield func(Coordinate) bool) {
		var x, y int16
		xs, ys := s.xs, s.ys
		i := 0
		for n := 0; n < s.numPoints; {
			f := s.flags[i]
			i++
			count := 1
			if f&RepeatFlag != 0 {
				count += int(s.flags[i])
				i++
			}
			for ; count > 0; count-- {
				var dx, dy int16
				dx, xs = nextDelta(f, XShortVector, XIsSameOrPositive, xs)
				dy, ys = nextDelta(f, YShortVector, YIsSameOrPositive, ys)
				x += dx
				y += dy
				if !yield(Coordinate{OnCurve: f&OnCurvePoint != 0, X: x, Y: y}) {
					return
				}
				n++
			}
		}
	}
}

func nextDelta(flag byte, short, same byte, b []byte) (int16, []byte) {
	switch {
	case flag&short != 0:
		d := int16(b[0])
		if flag&same == 0 {
			d = -d
		}
		return d, b[1:]
	case flag&same != 0:
		return 0, b
	}
	return int16(u16(b)), b[2:]
}

// Points decodes all points of the glyph.
func (s *SimpleGlyph) Points() []Coordinate {
	pts := make([]Coordinate, 0, s.numPoints)
	for c := range s.Coordinates() {
		pts = append(pts, c)
	}
	return pts
}

// Contours iterates over the contours of the glyph, each one as a slice of points.
// Contours without points are skipped.
func (s *SimpleGlyph) Contours() iter.Seq[[]Coordinate] {
	return func(yield func([]Coordinate) bool) {
		pts := s.Points()
		start := 0
		for e := range s.EndPoints.Values() {
			end := int(e) + 1
			if end <= start {
				continue
			}
			if !yield(pts[start:end]) {
				return
			}
			start = end
		}
	}
}

// --- Composite glyphs ------------------------------------------------------

// ComponentFlags are the flags of a component of a composite glyph.
type ComponentFlags uint16

const (
	Arg1And2AreWords        ComponentFlags = 0x0001
	ArgsAreXYValues         ComponentFlags = 0x0002
	RoundXYToGrid           ComponentFlags = 0x0004
	WeHaveAScale            ComponentFlags = 0x0008
	MoreComponents          ComponentFlags = 0x0020
	WeHaveAnXAndYScale      ComponentFlags = 0x0040
	WeHaveATwoByTwo         ComponentFlags = 0x0080
	WeHaveInstructions      ComponentFlags = 0x0100
	UseMyMetrics            ComponentFlags = 0x0200
	OverlapCompound         ComponentFlags = 0x0400
	ScaledComponentOffset   ComponentFlags = 0x0800
	UnscaledComponentOffset ComponentFlags = 0x1000
)

// CompositeGlyph is a glyph assembled from transformed component glyphs.
// Glyphs with zero contours are composites without components.
type CompositeGlyph struct {
	data []byte
}

// IsComposite returns true.
func (c *CompositeGlyph) IsComposite() bool { return true }

// Component is a reference to another glyph within a composite glyph.
type Component struct {
	Flags     ComponentFlags
	Glyph     GlyphIndex
	Arg1      int32 // x offset, if ArgsAreXYValues is set
	Arg2      int32 // y offset, if ArgsAreXYValues is set
	Transform matrix.Matrix
}

// Components decodes the component records of the glyph.
//
// Components which are positioned by matching points instead of by x and y offsets
// are not supported; for these, an error wrapping ErrUnsupported is returned.
func (c *CompositeGlyph) Components() ([]Component, error) {
	comps, _, err := c.decode()
	return comps, err
}

// Instructions returns the hinting instructions following the components, if any.
func (c *CompositeGlyph) Instructions() ([]byte, error) {
	_, instr, err := c.decode()
	return instr, err
}

func (c *CompositeGlyph) decode() ([]Component, []byte, error) {
	if len(c.data) == 0 {
		return nil, nil, nil
	}
	r := reader{c.data}
	var comps []Component
	var flags ComponentFlags = MoreComponents
	for flags&MoreComponents != 0 {
		if len(comps) >= MaxComponentCount {
			return nil, nil, fmt.Errorf("%w: more than %d components", ErrMalformed, MaxComponentCount)
		}
		if !r.has(4) {
			return nil, nil, fmt.Errorf("%w: component %d exceeds glyph data", ErrMalformed, len(comps))
		}
		flags = ComponentFlags(read(&r, U16))
		comp := Component{Flags: flags, Glyph: read(&r, GlyphCodec)}
		if flags&Arg1And2AreWords != 0 {
			if !r.has(4) {
				return nil, nil, fmt.Errorf("%w: component %d arguments exceed glyph data", ErrMalformed, len(comps))
			}
			comp.Arg1, comp.Arg2 = int32(read(&r, I16)), int32(read(&r, I16))
		} else {
			if !r.has(2) {
				return nil, nil, fmt.Errorf("%w: component %d arguments exceed glyph data", ErrMalformed, len(comps))
			}
			comp.Arg1, comp.Arg2 = int32(read(&r, I8)), int32(read(&r, I8))
		}
		if flags&ArgsAreXYValues == 0 {
			return nil, nil, fmt.Errorf("%w: component %d (glyph %d) is positioned by point numbers",
				ErrUnsupported, len(comps), comp.Glyph)
		}
		// x' = xscale·x + scale10·y + dx, y' = scale01·x + yscale·y + dy
		var xscale, scale01, scale10, yscale F2Dot14 = 1 << 14, 0, 0, 1 << 14
		switch {
		case flags&WeHaveAScale != 0:
			if !r.has(2) {
				return nil, nil, fmt.Errorf("%w: component %d scale exceeds glyph data", ErrMalformed, len(comps))
			}
			xscale = read(&r, F2Dot14Codec)
			yscale = xscale
		case flags&WeHaveAnXAndYScale != 0:
			if !r.has(4) {
				return nil, nil, fmt.Errorf("%w: component %d scale exceeds glyph data", ErrMalformed, len(comps))
			}
			xscale = read(&r, F2Dot14Codec)
			yscale = read(&r, F2Dot14Codec)
		case flags&WeHaveATwoByTwo != 0:
			if !r.has(8) {
				return nil, nil, fmt.Errorf("%w: component %d matrix exceeds glyph data", ErrMalformed, len(comps))
			}
			xscale = read(&r, F2Dot14Codec)
			scale01 = read(&r, F2Dot14Codec)
			scale10 = read(&r, F2Dot14Codec)
			yscale = read(&r, F2Dot14Codec)
		}
		comp.Transform = matrix.Matrix{
			xscale.Float(), scale01.Float(),
			scale10.Float(), yscale.Float(),
			float64(comp.Arg1), float64(comp.Arg2),
		}
		comps = append(comps, comp)
	}
	var instr []byte
	if flags&WeHaveInstructions != 0 && r.has(2) {
		n := int(read(&r, U16))
		if !r.has(n) {
			return nil, nil, fmt.Errorf("%w: %d bytes of instructions exceed glyph data", ErrMalformed, n)
		}
		instr = r.b[:n]
	}
	return comps, instr, nil
}
