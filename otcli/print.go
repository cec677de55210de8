package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/ttf"
	"github.com/npillmayer/ttf/ot"
	"github.com/npillmayer/ttf/raster"
	"github.com/pterm/pterm"
)

// glyphOp prints the header of a glyph from table 'glyf', followed by either
// its contours or its components.
func glyphOp(intp *Intp, op *Op) (error, bool) {
	r, g, err := glyphFor(intp, op)
	if err != nil {
		return err, false
	}
	glyph, err := intp.font.Glyph(g)
	if err != nil {
		return err, false
	}
	gl, ok := glyph.Unwrap()
	if !ok {
		pterm.Printf("%#U → glyph %d has no outline\n", r, g)
		return nil, false
	}
	h := gl.GlyphHeader
	pterm.Printf("%#U → glyph %d, contours = %d, bbox = (%d, %d) – (%d, %d)\n",
		r, g, h.NumberOfContours, h.XMin, h.YMin, h.XMax, h.YMax)
	switch desc := gl.Description.(type) {
	case *ot.SimpleGlyph:
		pterm.Printf("%d points, %d bytes of instructions\n", desc.NumPoints(), len(desc.Instructions))
		i := 0
		for contour := range desc.Contours() {
			sb := strings.Builder{}
			for _, c := range contour {
				if c.OnCurve {
					fmt.Fprintf(&sb, " (%d,%d)", c.X, c.Y)
				} else {
					fmt.Fprintf(&sb, " [%d,%d]", c.X, c.Y)
				}
			}
			pterm.Printf("contour %d:%s\n", i, sb.String())
			i++
		}
	case *ot.CompositeGlyph:
		comps, err := desc.Components()
		if err != nil {
			return err, false
		}
		data := [][]string{
			{"Glyph", "Flags", "Offset", "Transform"},
		}
		for _, c := range comps {
			data = append(data, []string{
				strconv.Itoa(int(c.Glyph)),
				fmt.Sprintf("%#04x", uint16(c.Flags)),
				fmt.Sprintf("(%d, %d)", c.Arg1, c.Arg2),
				fmt.Sprintf("%v", c.Transform),
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
	return nil, false
}

// outlineOp prints the draw commands of a glyph's contours, in font units.
func outlineOp(intp *Intp, op *Op) (error, bool) {
	r, g, err := glyphFor(intp, op)
	if err != nil {
		return err, false
	}
	contours, err := ttf.Outline(intp.font.Font, g)
	if err != nil {
		return err, false
	}
	pterm.Printf("%#U → glyph %d with %d contours\n", r, g, len(contours))
	for i, cmds := range contours {
		pterm.Printf("contour %d:\n", i)
		for _, cmd := range cmds {
			pterm.Println("    " + cmd.String())
		}
	}
	return nil, false
}

// renderOp renders a glyph and prints the bitmap, one character per pixel.
// An optional format sets the size, e.g. "render:S:64".
func renderOp(intp *Intp, op *Op) (error, bool) {
	r, g, err := glyphFor(intp, op)
	if err != nil {
		return err, false
	}
	size := intp.conf.GetInt("render.size")
	if op.format != "" {
		if size, err = strconv.Atoi(op.format); err != nil {
			return fmt.Errorf("invalid render size: %q", op.format), false
		}
	}
	opts := ttf.RenderOptions{
		Size:   float64(size),
		Invert: intp.conf.GetBool("render.invert"),
	}
	img, err := ttf.Render(intp.font.Font, g, opts)
	if err != nil {
		return err, false
	}
	b := img.Bounds()
	pterm.Printf("%#U → glyph %d, %d × %d pixels\n", r, g, b.Dx(), b.Dy())
	ink := uint8(raster.Ink)
	if opts.Invert {
		ink = raster.Background
	}
	sb := strings.Builder{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.GrayAt(x, y).Y == ink {
				sb.WriteString("██")
			} else {
				sb.WriteString("··")
			}
		}
		sb.WriteByte('\n')
	}
	pterm.Print(sb.String())
	return nil, false
}
