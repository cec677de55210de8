package raster

import (
	"image"
	"iter"
	"math"

	"seehuhn.de/go/geom/vec"
)

const (
	Ink        = 0x00 // gray value of filled pixels
	Background = 0xFF // gray value of empty pixels
)

// FillRaster collects the line segments of an outline and fills the enclosed
// area with the nonzero winding rule.
//
// The fill samples each pixel at its center. For row r the scanline y = r + 0.5
// intersects every line whose y-range [ymin, ymax) contains it; an upward line
// (y increasing) contributes +1 to the winding number of every pixel right of the
// intersection, a downward line contributes -1. Pixels with a nonzero winding
// number are ink.
//
// A FillRaster is not safe for concurrent use.
type FillRaster struct {
	width, height int
	lines         []edge
}

type edge struct {
	x0, y0 float64 // lower end point
	x1, y1 float64 // upper end point
	dir    int     // +1 for upward lines, -1 for downward lines
}

// NewFillRaster creates an empty raster of w × h pixels. Negative sizes are
// treated as 0.
func NewFillRaster(w, h int) *FillRaster {
	return &FillRaster{width: max(w, 0), height: max(h, 0)}
}

// Bounds returns the raster's size as an image rectangle.
func (fr *FillRaster) Bounds() image.Rectangle {
	return image.Rect(0, 0, fr.width, fr.height)
}

// AddLine adds a line from p0 to p1. Horizontal lines never cross a scanline and
// are dropped.
func (fr *FillRaster) AddLine(p0, p1 vec.Vec2) {
	if p0.Y == p1.Y || math.IsNaN(p0.Y) || math.IsNaN(p1.Y) {
		return
	}
	if p0.Y < p1.Y {
		fr.lines = append(fr.lines, edge{p0.X, p0.Y, p1.X, p1.Y, +1})
	} else {
		fr.lines = append(fr.lines, edge{p1.X, p1.Y, p0.X, p0.Y, -1})
	}
}

// AddSegments adds a sequence of line segments.
func (fr *FillRaster) AddSegments(segs iter.Seq[Segment]) {
	for s := range segs {
		fr.AddLine(s.P0, s.P1)
	}
}

// AddCommands flattens draw commands and adds the resulting segments.
func (fr *FillRaster) AddCommands(cmds iter.Seq[DrawCommand]) {
	fr.AddSegments(FlattenAll(cmds))
}

// AddContour adds the outline of a closed contour.
func (fr *FillRaster) AddContour(contour []Point) {
	fr.AddCommands(CommandSeq(contour))
}

// LineCount returns the number of (non-horizontal) lines added so far.
func (fr *FillRaster) LineCount() int {
	return len(fr.lines)
}

// Fill renders the raster into a new gray image. Row r of the image covers the
// y-interval [r, r+1) of raster space. Filled pixels are set to Ink, all others
// to Background.
func (fr *FillRaster) Fill() *image.Gray {
	img := image.NewGray(fr.Bounds())
	for i := range img.Pix {
		img.Pix[i] = Background
	}
	if fr.width == 0 || fr.height == 0 {
		return img
	}
	tracer().Debugf("fill %d lines into %d×%d raster", len(fr.lines), fr.width, fr.height)
	acc := make([]int, fr.width)
	for r := range fr.height {
		clear(acc)
		y := float64(r) + 0.5
		for _, e := range fr.lines {
			if y < e.y0 || y >= e.y1 {
				continue
			}
			x := e.x0 + (y-e.y0)*(e.x1-e.x0)/(e.y1-e.y0)
			col := max(0, int(math.Ceil(x-0.5)))
			if col >= fr.width {
				continue
			}
			acc[col] += e.dir
		}
		row := img.Pix[r*img.Stride : r*img.Stride+fr.width]
		winding := 0
		for c, d := range acc {
			winding += d
			if winding != 0 {
				row[c] = Ink
			}
		}
	}
	return img
}

// Winding returns the winding number of the outline at a point in raster space.
// Fill uses the same computation at pixel centers.
func (fr *FillRaster) Winding(p vec.Vec2) int {
	w := 0
	for _, e := range fr.lines {
		if p.Y < e.y0 || p.Y >= e.y1 {
			continue
		}
		x := e.x0 + (p.Y-e.y0)*(e.x1-e.x0)/(e.y1-e.y0)
		if x <= p.X {
			w += e.dir
		}
	}
	return w
}
