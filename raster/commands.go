package raster

import (
	"fmt"
	"iter"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Point is a point of a glyph contour.
type Point struct {
	On bool // on-curve point
	P  vec.Vec2
}

// Kind is the kind of a draw command.
type Kind uint8

const (
	Line  Kind = iota // straight line from P0 to P1
	Curve             // quadratic Bézier curve from P0 to P1 with control point Ctrl
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "Line"
	case Curve:
		return "Curve"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// DrawCommand is a single piece of a contour's path. For lines, Ctrl is unused
// and left zero.
type DrawCommand struct {
	Kind Kind
	P0   vec.Vec2
	Ctrl vec.Vec2
	P1   vec.Vec2
}

func (c DrawCommand) String() string {
	if c.Kind == Line {
		return fmt.Sprintf("Line(%v → %v)", c.P0, c.P1)
	}
	return fmt.Sprintf("Curve(%v ~%v → %v)", c.P0, c.Ctrl, c.P1)
}

// Transform maps the command's points through an affine transform.
func (c DrawCommand) Transform(m matrix.Matrix) DrawCommand {
	c.P0 = Transform(c.P0, m)
	c.P1 = Transform(c.P1, m)
	if c.Kind == Curve {
		c.Ctrl = Transform(c.Ctrl, m)
	}
	return c
}

// Transform maps a point through an affine transform m, i.e.
//
//	x' = m[0]·x + m[2]·y + m[4]
//	y' = m[1]·x + m[3]·y + m[5]
func Transform(p vec.Vec2, m matrix.Matrix) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformPoints maps the points of a contour through an affine transform.
// The input is not modified.
func TransformPoints(contour []Point, m matrix.Matrix) []Point {
	out := make([]Point, len(contour))
	for i, p := range contour {
		out[i] = Point{On: p.On, P: Transform(p.P, m)}
	}
	return out
}

// Commands returns the draw commands of a closed contour, see CommandSeq.
func Commands(contour []Point) []DrawCommand {
	return slices.Collect(CommandSeq(contour))
}

// CommandSeq iterates over the draw commands of a closed contour.
//
// The path starts at the first point if it is on-curve. Otherwise it starts at the
// last point, if that one is on-curve, or else at the midpoint between the last and
// the first point. Two consecutive off-curve points imply an on-curve point at their
// midpoint. The path is closed by a final command back to the start point; a closing
// line of length zero is omitted.
func CommandSeq(contour []Point) iter.Seq[DrawCommand] {
	return func(yield func(DrawCommand) bool) {
		n := len(contour)
		if n == 0 {
			return
		}
		var start vec.Vec2
		var rest []Point
		switch {
		case contour[0].On:
			start, rest = contour[0].P, contour[1:]
		case contour[n-1].On:
			start, rest = contour[n-1].P, contour[:n-1]
		default:
			start, rest = midpoint(contour[n-1].P, contour[0].P), contour
		}
		cur := start
		var ctrl vec.Vec2
		pending := false // ctrl holds an off-curve point
		for _, p := range rest {
			switch {
			case p.On && pending:
				if !yield(DrawCommand{Kind: Curve, P0: cur, Ctrl: ctrl, P1: p.P}) {
					return
				}
				cur, pending = p.P, false
			case p.On:
				if !yield(DrawCommand{Kind: Line, P0: cur, P1: p.P}) {
					return
				}
				cur = p.P
			case pending:
				m := midpoint(ctrl, p.P)
				if !yield(DrawCommand{Kind: Curve, P0: cur, Ctrl: ctrl, P1: m}) {
					return
				}
				cur, ctrl = m, p.P
			default:
				ctrl, pending = p.P, true
			}
		}
		if pending {
			yield(DrawCommand{Kind: Curve, P0: cur, Ctrl: ctrl, P1: start})
		} else if cur != start {
			yield(DrawCommand{Kind: Line, P0: cur, P1: start})
		}
	}
}

func midpoint(a, b vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
