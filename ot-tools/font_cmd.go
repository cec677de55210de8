package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/npillmayer/ttf/ot"
	"github.com/npillmayer/ttf/otquery"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	sf := mustLoadFont(fontPath)
	otf := sf.Font

	fmt.Printf("Path: %s\n", sf.Filepath)
	fmt.Printf("Type: %s\n", otquery.FontType(otf))
	if sf.Fontname != "" {
		fmt.Printf("Name: %s\n", sf.Fontname)
	}
	if h, ok := otquery.HeadInfo(otf); ok {
		fmt.Printf("Revision: %.3f\n", h.FontRevision)
		fmt.Printf("Units per em: %d\n", h.UnitsPerEm)
		fmt.Printf("Loca format: %s\n", h.IndexToLocFormat)
	}
	if m, ok := otquery.MaxPInfo(otf); ok {
		fmt.Printf("Glyphs: %d\n", m.NumGlyphs)
	}

	tags := otf.TableTags()
	slices.Sort(tags)
	fmt.Printf("Tables (%d):", len(tags))
	for _, tag := range tags {
		fmt.Printf(" %s", tag.String())
	}
	fmt.Println()

	errs := otf.Errors()
	warns := otf.Warnings()
	crit := otf.CriticalErrors()
	fmt.Printf("Issues: errors=%d warnings=%d critical=%d\n", len(errs), len(warns), len(crit))

	if len(args["tables"].Value) > 0 {
		printSelectedTables(otf, args["tables"].Value)
	}
	if mustFlagBool(flags["errors"], "errors") {
		for _, e := range errs {
			fmt.Printf("error: %s\n", e.Error())
		}
		for _, w := range warns {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}

func printSelectedTables(otf *ot.Font, raw string) {
	for _, t := range splitCSVSpace(raw) {
		tagName := strings.TrimSpace(t)
		if tagName == "" {
			continue
		}
		tag := ot.T(tagName)
		table := otf.Table(tag)
		if table == nil {
			fmt.Printf("table %s: missing\n", tagName)
			continue
		}
		off, size := table.Extent()
		fmt.Printf("table %s: offset=%d size=%d\n", tagName, off, size)
	}
}
