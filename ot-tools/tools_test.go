package main

import (
	"image/color"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/ttf"
	"github.com/npillmayer/ttf/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseCodepoints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	runes, err := parseCodepoints("U+0041, 0x42 u+1F600\t43")
	require.NoError(t, err)
	assert.Equal(t, []rune{'A', 'B', 0x1F600, 'C'}, runes)
	_, err = parseCodepoints("U+ZZ")
	assert.Error(t, err)
	_, err = parseCodepointToken("110000")
	assert.Error(t, err, "expected code points beyond U+10FFFF to be rejected")
}

func TestGlyphRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	otf, err := ot.Parse(goregular.TTF)
	require.NoError(t, err)
	run := glyphRun{
		font:    &ttf.ScalableFont{Font: otf, Fontname: "Go Regular"},
		ppem:    32,
		compare: true,
	}
	img, err := run.render([]rune("Sa"))
	require.NoError(t, err)
	// advances of 'S' and 'a' are 1366 and 1139 units at 32/2048
	assert.Equal(t, 2*padding+22+18, img.Bounds().Dx())
	black := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{0, 0, 0, 255}) {
				black++
			}
		}
	}
	assert.Greater(t, black, 100, "expected inked pixels in both rows")
	_, err = run.render([]rune{0x1F600})
	assert.ErrorIs(t, err, ttf.ErrNoGlyph)
}
