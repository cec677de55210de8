/*
Package ot provides zero-copy access to the tables of TrueType and OpenType fonts.

A font is kept in memory as a single byte slice. Every table type of this package
is a typed overlay on a sub-slice of that buffer: fixed-size records are decoded
on access through a Codec, and runs of records are exposed as DynArr or BufView
views. Nothing is copied out of the font binary, and nothing is cached: decoding
a table means constructing a handful of views, which is cheap enough to be repeated
on every lookup.

Clients start with

	otf, err := ot.Parse(fontbytes)

and then request tables by their typed accessors, e.g.

	cmap, err := otf.CMap()
	gid := cmap.GlyphIndex('A')

Some tables cannot be interpreted on their own. 'loca' needs the index format from
table 'head' and the glyph count from 'maxp', and 'hmtx'/'vmtx' need the number of
long metrics from 'hhea'/'vhea'. The accessors of package ot resolve these dependencies
transparently.

Glyph outlines are decoded from 'glyf' lazily: a simple glyph exposes its points as an
iterator over absolute coordinates, a composite glyph exposes its components with
their affine transforms. Font.Outline resolves composites recursively, with guards
against cyclic or overly deep component references.

# Status

Supported are single fonts with TrueType outlines. Font collections and variable
fonts are not supported. From table 'cmap' only subtable formats 4 and 12 are
interpreted.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

// Code comments often cite passages from the
// OpenType specification version 1.8.4,
// see https://docs.microsoft.com/en-us/typography/opentype/spec/,
// and from Apple's TrueType Reference Manual,
// see https://developer.apple.com/fonts/TrueType-Reference-Manual/.

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.ttf'
func tracer() tracing.Trace {
	return tracing.Select("font.ttf")
}
