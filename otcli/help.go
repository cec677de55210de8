package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "glyph", "glyphs", "outline":
		pterm.Info.Println("Glyphs / Outlines")
		pterm.Println(`
	Characters are mapped to glyphs by table 'cmap'. A character may be given
	literally ("glyph:A") or as a code point ("glyph:U+0041"). Typed text is
	normalized to NFC, i.e. a base character followed by combining marks is
	composed into a single character if possible.

	A simple glyph consists of closed contours of on-curve and off-curve points.
	"outline" lists the contours as draw commands:
	+-------+-------------+------------------------+
	| Line  | P0 -> P1    | straight line          |
	+-------+-------------+------------------------+
	| Curve | P0 ~C -> P1 | quadratic Bézier curve |
	+-------+-------------+------------------------+
	A composite glyph places other glyphs by affine transforms.
	`)
	case "render", "set":
		pterm.Info.Println("Rendering")
		pterm.Println(`
	render:<char>[:<size>]   renders a glyph with size pixels per em
	set:size:<n>             sets the default render size
	set:invert:<true|false>  renders white on black
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	tables            list the font's tables
	head              show table 'head'
	metrics[:<char>]  show font metrics, or metrics of a glyph
	cmap[:ranges]     show the character map
	glyph:<char>      show a glyph's header and points
	outline:<char>    show a glyph's draw commands
	render:<char>     render a glyph to the terminal
	set:<key>:<val>   change a render setting
	help[:<topic>]    topics: glyph, render
	quit              leave
	Multiple commands may be given on a line, separated by spaces.
	`)
	}
}
