package raster

import (
	"iter"
	"math"

	"seehuhn.de/go/geom/vec"
)

// Segment is a straight line from P0 to P1.
type Segment struct {
	P0, P1 vec.Vec2
}

// Flatten splits a draw command into straight line segments. A line yields a single
// segment. A curve is split into ceil(|P0-Ctrl| + |Ctrl-P1| + 2) segments, with
// points computed by De Casteljau's algorithm. The length of the control polygon
// bounds the curve's length, so in raster space segments are no longer than a pixel.
//
// The segments are connected, and the last segment ends exactly at P1.
func Flatten(cmd DrawCommand) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		if cmd.Kind == Line {
			yield(Segment{cmd.P0, cmd.P1})
			return
		}
		n := SegmentCount(cmd)
		prev := cmd.P0
		for i := 1; i <= n; i++ {
			var p vec.Vec2
			if i == n {
				p = cmd.P1
			} else {
				t := float64(i) / float64(n)
				p = lerp(lerp(cmd.P0, cmd.Ctrl, t), lerp(cmd.Ctrl, cmd.P1, t), t)
			}
			if !yield(Segment{prev, p}) {
				return
			}
			prev = p
		}
	}
}

// SegmentCount returns the number of segments Flatten produces for a command.
func SegmentCount(cmd DrawCommand) int {
	if cmd.Kind == Line {
		return 1
	}
	l := cmd.Ctrl.Sub(cmd.P0).Length() + cmd.P1.Sub(cmd.Ctrl).Length()
	if math.IsNaN(l) || math.IsInf(l, 0) {
		return 2
	}
	return int(math.Ceil(l + 2))
}

// FlattenAll flattens a sequence of draw commands.
func FlattenAll(cmds iter.Seq[DrawCommand]) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for cmd := range cmds {
			for s := range Flatten(cmd) {
				if !yield(s) {
					return
				}
			}
		}
	}
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return vec.Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
