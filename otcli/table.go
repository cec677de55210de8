package main

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/ttf/ot"
	"github.com/npillmayer/ttf/otquery"
	"github.com/pterm/pterm"
)

func tablesOp(intp *Intp, op *Op) (error, bool) {
	otf := intp.font.Font
	data := [][]string{
		{"Tag", "Offset", "Length"},
	}
	for _, tag := range otf.TableTags() {
		rec, ok := otf.Record(tag)
		if !ok {
			data = append(data, []string{tag.String(), "-", "out of bounds"})
			continue
		}
		data = append(data, []string{
			tag.String(),
			fmt.Sprintf("%d", rec.Offset),
			fmt.Sprintf("%d", rec.Length),
		})
	}
	pterm.Printf("%s font with %d tables\n", otquery.FontType(otf), len(data)-1)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func headOp(intp *Intp, op *Op) (error, bool) {
	h, ok := otquery.HeadInfo(intp.font.Font)
	if !ok {
		return fmt.Errorf("cannot decode table 'head'"), false
	}
	data := [][]string{
		{"Field", "Value"},
		{"Version", h.Version},
		{"Revision", fmt.Sprintf("%.3f", h.FontRevision)},
		{"Units per em", fmt.Sprintf("%d", h.UnitsPerEm)},
		{"Bounding box", fmt.Sprintf("(%d, %d) – (%d, %d)", h.BBox.MinX, h.BBox.MinY, h.BBox.MaxX, h.BBox.MaxY)},
		{"Created", h.Created.Format("2006-01-02")},
		{"Modified", h.Modified.Format("2006-01-02")},
		{"Flags", fmt.Sprintf("%016b", h.Flags)},
		{"Loca format", h.IndexToLocFormat.String()},
	}
	if m, ok := otquery.MaxPInfo(intp.font.Font); ok {
		data = append(data, []string{"Glyphs", fmt.Sprintf("%d", m.NumGlyphs)})
		if m.HasExtendedProfile {
			data = append(data,
				[]string{"Max points", fmt.Sprintf("%d", m.MaxPoints)},
				[]string{"Max contours", fmt.Sprintf("%d", m.MaxContours)},
				[]string{"Max component depth", fmt.Sprintf("%d", m.MaxComponentDepth)},
			)
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func metricsOp(intp *Intp, op *Op) (error, bool) {
	otf := intp.font.Font
	if op.noArg() {
		m := otquery.FontMetrics(otf)
		pterm.Printf("units per em = %d, ascent = %d, descent = %d, line gap = %d, max advance = %d\n",
			m.UnitsPerEm, m.Ascent, m.Descent, m.LineGap, m.MaxAdvance)
		if trm, ok := otquery.TextRenderMetrics(otf); ok {
			pterm.Printf("OS/2 typo: ascent = %d, descent = %d, line gap = %d, line height = %d\n",
				trm.Ascent, trm.Descent, trm.LineGap, trm.LineHeight())
		}
		return nil, false
	}
	r, err := op.char()
	if err != nil {
		return err, false
	}
	size := float64(intp.conf.GetInt("render.size"))
	pm, ok := otquery.PlacementMetrics(otf, r, size)
	if !ok {
		return fmt.Errorf("no glyph for %#U", r), false
	}
	gm := otquery.GlyphMetrics(otf, pm.Glyph)
	data := [][]string{
		{"Metric", "Units", "Pixels"},
		{"Advance", fmt.Sprintf("%d", gm.Advance), fmt.Sprintf("%.2f", pm.Pixels(gm.Advance))},
		{"Left bearing", fmt.Sprintf("%d", gm.LSB), fmt.Sprintf("%.2f", pm.Pixels(gm.LSB))},
		{"Right bearing", fmt.Sprintf("%d", gm.RSB), fmt.Sprintf("%.2f", pm.Pixels(gm.RSB))},
		{"Width", fmt.Sprintf("%d", gm.BBox.Dx()), fmt.Sprintf("%.2f", pm.Pixels(gm.BBox.Dx()))},
		{"Height", fmt.Sprintf("%d", gm.BBox.Dy()), fmt.Sprintf("%.2f", pm.Pixels(gm.BBox.Dy()))},
		{"Shift", fmt.Sprintf("(%d, %d)", pm.ShiftX, pm.ShiftY), ""},
	}
	if va, ok := pm.VAdvance.Unwrap(); ok {
		data = append(data, []string{"Vertical advance", fmt.Sprintf("%d", va), fmt.Sprintf("%.2f", pm.Pixels(va))})
	}
	pterm.Printf("%#U → glyph %d at %.0f pixels per em\n", r, pm.Glyph, size)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// cmapOp lists the encoding records of table 'cmap' and the coverage of the
// font's glyphs by the supported subtables.
func cmapOp(intp *Intp, op *Op) (error, bool) {
	otf := intp.font.Font
	cmap, err := otf.CMap()
	if err != nil {
		return err, false
	}
	data := [][]string{
		{"Platform", "Encoding", "Offset"},
	}
	for rec := range cmap.Records.Values() {
		data = append(data, []string{
			fmt.Sprintf("%d", rec.PlatformID),
			fmt.Sprintf("%d", rec.EncodingID),
			fmt.Sprintf("%d", rec.Offset),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	numGlyphs := 0
	if maxp, err := otf.MaxP(); err == nil {
		numGlyphs = int(maxp.NumGlyphs)
	}
	for _, format := range []uint16{4, 12} {
		sub, err := cmap.Format(format)
		if err != nil {
			tracer().Debugf("cmap format %d: %v", format, err)
			continue
		}
		var covered bitset.BitSet
		ranges, codepoints := 0, 0
		for rng := range sub.Ranges() {
			ranges++
			for r := rng.First; r <= rng.Last; r++ {
				if g, ok := sub.Lookup(r).Unwrap(); ok {
					codepoints++
					covered.Set(uint(g))
				}
			}
			if op.arg == "ranges" {
				pterm.Println(rng.String())
			}
		}
		pterm.Printf("format %d: %d ranges, %d code points mapped to %d of %d glyphs\n",
			format, ranges, codepoints, covered.Count(), numGlyphs)
	}
	return nil, false
}

func glyphFor(intp *Intp, op *Op) (rune, ot.GlyphIndex, error) {
	r, err := op.char()
	if err != nil {
		return 0, 0, err
	}
	g := otquery.GlyphIndex(intp.font.Font, r)
	if g == 0 {
		pterm.Warning.Printf("no glyph for %#U, using .notdef\n", r)
	}
	return r, g, nil
}
