/*
Package otquery answers questions about a font, e.g., about metrics of the font or
of its glyphs.

All functions accept a parsed font of package ot and read its tables. Missing or
malformed tables do not produce errors; functions rather return zero values or
report false, and trace the cause.

Metrics are returned in font units (sfnt.Units). Clients convert them to pixels
with the font's units per em, see ot.FontUnit.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/ttf/ot"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// FontType returns the kind of outlines a font contains, as declared by its
// table directory: "TrueType", "PostScript" or "OpenType".
func FontType(otf *ot.Font) string {
	if otf == nil {
		return ot.UnknownScaler.String()
	}
	return otf.ScalerKind().String()
}
