/*
Package raster converts TrueType glyph outlines into bitmaps.

A contour of a TrueType glyph is a closed sequence of on-curve and off-curve points.
Between two on-curve points runs a straight line; an off-curve point is the control
point of a quadratic Bézier curve. Two consecutive off-curve points imply an on-curve
point at their midpoint. Commands translates a contour into a sequence of draw
commands (lines and curves), Flatten splits curves into line segments, and FillRaster
fills the area enclosed by the segments using the nonzero winding rule.

Rendering is monochrome: every pixel is either ink or background, decided by sampling
the outline at the pixel's center. There is no anti-aliasing.

# Coordinates

Points are given in raster coordinates: x grows to the right and y grows with the
row index, i.e. row r covers the interval [r, r+1) of y-values. Clients are
responsible for mapping font units into raster space, usually by scaling and
flipping the y-axis; see Transform.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package raster

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.raster'
func tracer() tracing.Trace {
	return tracing.Select("font.raster")
}
