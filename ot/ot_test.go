package ot

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goregular"
)

func parseGoRegular(t *testing.T) *Font {
	t.Helper()
	otf, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("cannot parse Go Regular: %v", err)
	}
	return otf
}

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ttf")
	defer teardown()
	//
	tag := Tag(0x636d6170)
	if tag.String() != "cmap" {
		t.Errorf("expected tag 0x636d6170 to be 'cmap', is %s", tag.String())
	}
	tag = MakeTag([]byte("cmap"))
	if tag.String() != "cmap" {
		t.Errorf("expected tag MakeTag(cmap) to be 'cmap', is %s", tag.String())
	}
	tag = T("cvt")
	if tag.String() != "cvt " {
		t.Errorf("expected tag T(cvt) to be padded to 'cvt ', is %q", tag.String())
	}
}

func TestParseDirectory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ttf")
	defer teardown()
	//
	otf := parseGoRegular(t)
	if otf.ScalerKind() != TrueTypeScaler {
		t.Errorf("expected Go Regular to be TrueType, is %s", otf.ScalerKind())
	}
	if n := otf.Directory.Tables.Len(); n != 14 {
		t.Errorf("expected 14 tables, have %d", n)
	}
	tags := otf.TableTags()
	if len(tags) != 14 || tags[0] != T("OS/2") {
		t.Errorf("unexpected table tags %v", tags)
	}
	if len(otf.Errors()) != 0 || len(otf.Warnings()) != 0 {
		t.Errorf("expected no errors or warnings, have %v / %v", otf.Errors(), otf.Warnings())
	}
	rec, ok := otf.Record(T("glyf"))
	if !ok || rec.Length != 126326 {
		t.Errorf("expected glyf record of 126326 bytes, have %v", rec)
	}
	if _, ok := otf.Record(T("GSUB")); ok {
		t.Errorf("expected no GSUB record")
	}
	if tbl := otf.Table(T("name")); tbl == nil || tbl.Tag() != T("name") {
		t.Errorf("expected generic table for 'name'")
	}
	if otf.Table(T("GPOS")) != nil {
		t.Errorf("expected nil for missing table")
	}
}

func TestParseScalerTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ttf")
	defer teardown()
	//
	for _, tc := range []struct {
		scaler uint32
		kind   ScalerKind
	}{
		{0x00010000, TrueTypeScaler},
		{0x74727565, TrueTypeScaler},
		{0x74797031, PostScriptScaler},
		{0x4F54544F, OpenTypeScaler},
	} {
		otf, err := Parse(concat(longs(tc.scaler), words(0, 0, 0, 0)))
		if err != nil {
			t.Errorf("scaler %x: %v", tc.scaler, err)
			continue
		}
		if otf.ScalerKind() != tc.kind {
			t.Errorf("scaler %x: expected %s, is %s", tc.scaler, tc.kind, otf.ScalerKind())
		}
	}
	_, err := Parse(concat(longs(0xdeadbeef), words(0, 0, 0, 0)))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected unknown scaler type to be malformed, got %v", err)
	}
	if _, err = Parse([]byte{0, 1, 0}); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected truncated header to be malformed, got %v", err)
	}
	_, err = Parse(concat(longs(0x00010000), words(2, 0, 0, 0), make([]byte, 16)))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected truncated directory to be malformed, got %v", err)
	}
}

func TestParseRecordOutOfBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ttf")
	defer teardown()
	//
	font := buildFont(t, map[string][]byte{
		"head": headTable(1000, 0),
		"maxp": maxpTable(3),
	})
	// enlarge length of 'maxp', the second record, beyond the font's end
	copy(font[12+16+12:], longs(1000))
	otf, err := Parse(font)
	if err != nil {
		t.Fatalf("expected font with bad record to parse, got %v", err)
	}
	if len(otf.Errors()) != 1 || otf.Errors()[0].Table != T("maxp") {
		t.Errorf("expected one error for maxp, have %v", otf.Errors())
	}
	if !otf.HasCriticalErrors() {
		t.Errorf("expected out-of-bounds record to be critical")
	}
	if _, err := otf.MaxP(); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected maxp to be unavailable, got %v", err)
	}
	if _, err := otf.Head(); err != nil {
		t.Errorf("expected head to be unaffected, got %v", err)
	}
}

func TestParseUnsortedDirectory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ttf")
	defer teardown()
	//
	font := buildFont(t, map[string][]byte{
		"head": headTable(1000, 0),
		"maxp": maxpTable(3),
	})
	// swap the two records
	recs := font[12 : 12+32]
	swapped := concat(recs[16:32], recs[0:16])
	copy(recs, swapped)
	otf, err := Parse(font)
	if err != nil {
		t.Fatal(err)
	}
	if len(otf.Warnings()) != 1 {
		t.Errorf("expected a warning for unsorted tags, have %v", otf.Warnings())
	}
	head, err := otf.Head()
	if err != nil || head.UnitsPerEm != 1000 {
		t.Errorf("expected head to be found by linear search, got %v", err)
	}
}

func TestDecodeDispatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ttf")
	defer teardown()
	//
	otf := parseGoRegular(t)
	for _, tag := range []string{"head", "maxp", "hhea", "hmtx", "OS/2", "cmap", "loca", "glyf"} {
		tbl, err := otf.Decode(T(tag))
		if err != nil {
			t.Errorf("decode %s: %v", tag, err)
			continue
		}
		var ok bool
		switch tag {
		case "head":
			_, ok = tbl.(*HeadTable)
		case "maxp":
			_, ok = tbl.(*MaxPTable)
		case "hhea":
			_, ok = tbl.(*HHeaTable)
		case "hmtx":
			_, ok = tbl.(*HMtxTable)
		case "OS/2":
			_, ok = tbl.(*OS2Table)
		case "cmap":
			_, ok = tbl.(*CMapTable)
		case "loca":
			_, ok = tbl.(*LocaTable)
		case "glyf":
			_, ok = tbl.(*GlyfTable)
		}
		if !ok {
			t.Errorf("decode %s: unexpected type %T", tag, tbl)
		}
		if tbl.Tag() != T(tag) {
			t.Errorf("decode %s: table has tag %s", tag, tbl.Tag())
		}
	}
	tbl, err := otf.Decode(T("post"))
	if err != nil || tbl == nil || len(tbl.Binary()) == 0 {
		t.Errorf("expected generic table for 'post', got %v", err)
	}
	tbl, err = otf.Decode(T("vhea"))
	if !errors.Is(err, ErrTableNotFound) || tbl != nil {
		t.Errorf("expected vhea to be not found, got %v", err)
	}
	if _, err := otf.VMtx(); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected vmtx to be not found, got %v", err)
	}
}

func TestGetTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ttf")
	defer teardown()
	//
	otf := parseGoRegular(t)
	head, err := GetTable[*HeadTable](otf)
	if err != nil || head.UnitsPerEm != 2048 {
		t.Errorf("expected head with 2048 units per em, got %v", err)
	}
	hmtx, err := GetTable[*HMtxTable](otf)
	if err != nil || hmtx.GlyphCount() != 712 {
		t.Errorf("expected hmtx for 712 glyphs, got %v", err)
	}
	vhea, err := GetTable[*VHeaTable](otf)
	if !errors.Is(err, ErrTableNotFound) || vhea != nil {
		t.Errorf("expected missing vhea to be not found, got %v", err)
	}
}
