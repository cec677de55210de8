package ot

import (
	"encoding/binary"
	"slices"
	"testing"
)

// Helpers to assemble synthetic fonts for tests.

// words encodes values as big-endian 16-bit words. Negative values are
// encoded as two's complement.
func words(v ...int) []byte {
	b := make([]byte, 0, 2*len(v))
	for _, x := range v {
		b = binary.BigEndian.AppendUint16(b, uint16(int16(x)))
	}
	return b
}

func longs(v ...uint32) []byte {
	b := make([]byte, 0, 4*len(v))
	for _, x := range v {
		b = binary.BigEndian.AppendUint32(b, x)
	}
	return b
}

func concat(parts ...[]byte) []byte {
	return slices.Concat(parts...)
}

// buildFont assembles a TrueType font from table data. Tables are sorted by tag
// and aligned to 4 bytes.
func buildFont(t testing.TB, tables map[string][]byte) []byte {
	t.Helper()
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	n := len(tags)
	header := concat(longs(0x00010000), words(n, 0, 0, 0))
	offset := uint32(12 + 16*n)
	var records, data []byte
	for _, tag := range tags {
		tb := tables[tag]
		records = concat(records, []byte((tag + "    ")[:4]), longs(0, offset, uint32(len(tb))))
		data = concat(data, tb)
		for len(data)%4 != 0 {
			data = append(data, 0)
		}
		offset = uint32(12+16*n) + uint32(len(data))
	}
	return concat(header, records, data)
}

func headTable(upem int, locaFormat int) []byte {
	return concat(
		words(1, 0), longs(0x00010000, 0, 0x5F0F3CF5),
		words(0, upem), make([]byte, 16), // flags, upem, created, modified
		words(0, 0, 100, 100), // bbox
		words(0, 8, 2, locaFormat, 0),
	)
}

func maxpTable(numGlyphs int) []byte {
	return concat(longs(0x00005000), words(numGlyphs))
}

// squareGlyph is a simple glyph with one contour of four on-curve points,
// (0,0) (0,100) (100,100) (100,0). All flags are compressed into a single
// repeated flag.
func squareGlyph() []byte {
	return concat(
		words(1, 0, 0, 100, 100),
		words(3, 0),     // end point, instruction length
		[]byte{0x09, 3}, // on-curve | repeat, 3 more
		words(0, 0, 100, 0),
		words(0, 100, 0, -100),
	)
}

// shortGlyph is a simple triangle using 1-byte deltas and a final off-curve
// point: (10,0) (10,20) off (5,25).
func shortGlyph() []byte {
	return concat(
		words(1, 5, 0, 10, 25),
		words(2, 0),
		[]byte{
			0x01 | XShortVector | XIsSameOrPositive | YIsSameOrPositive, // x +10, y same
			0x01 | YShortVector | XIsSameOrPositive | YIsSameOrPositive, // x same, y +20
			XShortVector | YShortVector | YIsSameOrPositive,             // x -5, y +5
		},
		[]byte{10, 5}, // x deltas
		[]byte{20, 5}, // y deltas
	)
}

// compositeGlyph references glyph `g` twice: once with word args and a scale of
// 0.5, once with byte args (-5, 7).
func compositeGlyph(g int) []byte {
	return concat(
		words(-1, 0, 0, 100, 100),
		words(int(Arg1And2AreWords|ArgsAreXYValues|WeHaveAScale|MoreComponents), g, 10, 20, 0x2000),
		words(int(ArgsAreXYValues), g), []byte{0xfb, 7},
	)
}

// refGlyph references glyph `g` once, unshifted.
func refGlyph(g int) []byte {
	return concat(
		words(-1, 0, 0, 100, 100),
		words(int(ArgsAreXYValues), g), []byte{0, 0},
	)
}

// pointMatchingGlyph references glyph `g` positioned by point numbers.
func pointMatchingGlyph(g int) []byte {
	return concat(
		words(-1, 0, 0, 100, 100),
		words(0, g), []byte{1, 2},
	)
}

// glyphFont assembles a font from glyph data, with long 'loca' offsets.
func glyphFont(t testing.TB, glyphs ...[]byte) []byte {
	t.Helper()
	var glyf []byte
	loca := []uint32{0}
	for _, g := range glyphs {
		glyf = concat(glyf, g)
		loca = append(loca, uint32(len(glyf)))
	}
	return buildFont(t, map[string][]byte{
		"head": headTable(1000, 1),
		"maxp": maxpTable(len(glyphs)),
		"loca": longs(loca...),
		"glyf": glyf,
	})
}
