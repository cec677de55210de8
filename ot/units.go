package ot

import (
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontUnit is a distance in the font's design grid. The grid has
// head.UnitsPerEm units per em.
type FontUnit int32

// Pixels converts f to pixels for a font size in points, at 72 dpi.
func (f FontUnit) Pixels(size float64, upem uint16) float64 {
	if upem == 0 {
		return 0
	}
	const dpi = 72
	return float64(f) * (size * dpi) / (72 * float64(upem))
}

// Fixed26_6 converts f to pixels for a font size in points, at 72 dpi, rounded
// to a 26.6 fixed point number.
func (f FontUnit) Fixed26_6(size float64, upem uint16) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(f.Pixels(size, upem) * 64))
}

// Units returns f as a distance for package sfnt.
func (f FontUnit) Units() sfnt.Units {
	return sfnt.Units(f)
}
