package ttf

import (
	"encoding/binary"
	"image"
	"slices"
	"strings"

	"github.com/npillmayer/ttf/ot"
	"github.com/npillmayer/ttf/raster"
)

// Synthetic fonts with composite glyphs. Go Regular has none.

func be16(v ...int) []byte {
	b := make([]byte, 0, 2*len(v))
	for _, x := range v {
		b = binary.BigEndian.AppendUint16(b, uint16(int16(x)))
	}
	return b
}

func be32(v ...uint32) []byte {
	b := make([]byte, 0, 4*len(v))
	for _, x := range v {
		b = binary.BigEndian.AppendUint32(b, x)
	}
	return b
}

// glyphFont assembles a font with tables 'head', 'maxp', 'loca' (long offsets)
// and 'glyf' from glyph data.
func glyphFont(upem int, glyphs ...[]byte) []byte {
	var glyf []byte
	loca := []uint32{0}
	for _, g := range glyphs {
		glyf = slices.Concat(glyf, g)
		loca = append(loca, uint32(len(glyf)))
	}
	tables := map[string][]byte{
		"glyf": glyf,
		"head": slices.Concat(
			be16(1, 0), be32(0x00010000, 0, 0x5F0F3CF5),
			be16(0, upem), make([]byte, 16),
			be16(0, 0, 100, 100),
			be16(0, 8, 2, 1, 0), // long loca
		),
		"loca": be32(loca...),
		"maxp": slices.Concat(be32(0x00005000), be16(len(glyphs))),
	}
	tags := []string{"glyf", "head", "loca", "maxp"}
	n := len(tags)
	font := slices.Concat(be32(0x00010000), be16(n, 0, 0, 0))
	offset := uint32(12 + 16*n)
	var records, data []byte
	for _, tag := range tags {
		tb := tables[tag]
		records = slices.Concat(records, []byte(tag), be32(0, offset, uint32(len(tb))))
		data = slices.Concat(data, tb)
		for len(data)%4 != 0 {
			data = append(data, 0)
		}
		offset = uint32(12+16*n) + uint32(len(data))
	}
	return slices.Concat(font, records, data)
}

// square is a simple glyph (0,0) (0,100) (100,100) (100,0).
func square() []byte {
	return slices.Concat(
		be16(1, 0, 0, 100, 100),
		be16(3, 0),
		[]byte{0x09, 3}, // on-curve, repeated
		be16(0, 0, 100, 0),
		be16(0, 100, 0, -100),
	)
}

// halfOf references glyph g once, scaled by 0.5 and shifted by (dx, dy).
func halfOf(g, dx, dy int, xmin, ymin, xmax, ymax int) []byte {
	flags := ot.Arg1And2AreWords | ot.ArgsAreXYValues | ot.WeHaveAScale
	return slices.Concat(
		be16(-1, xmin, ymin, xmax, ymax),
		be16(int(flags), g, dx, dy, 0x2000),
	)
}

func drawing(img *image.Gray) string {
	var sb strings.Builder
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.GrayAt(x, y).Y == raster.Ink {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (env *RenderTestEnviron) TestRenderComposite() {
	otf, err := FromBinary(glyphFont(100,
		square(),
		halfOf(0, 50, 20, 50, 20, 100, 70), // exactly covers its bounding box
		halfOf(0, 50, 0, 0, 0, 100, 100),   // lower right quadrant
		halfOf(2, 0, 50, 0, 0, 100, 100),   // glyph 2, halved again and raised
		be16(0, 0, 0, 0, 0),                // no contours
	))
	env.Require().NoError(err)
	//
	img, err := RenderGlyph(otf, 1, 10)
	env.Require().NoError(err)
	env.Equal(image.Rect(0, 0, 5, 5), img.Bounds())
	env.Equal("#####\n#####\n#####\n#####\n#####\n", drawing(img))
	//
	img, err = RenderGlyph(otf, 2, 4)
	env.Require().NoError(err)
	env.Equal("....\n....\n..##\n..##\n", drawing(img), "expected component placed in lower right quadrant")
	//
	// the component of glyph 3 spans [25,50] × [50,75]
	img, err = RenderGlyph(otf, 3, 8)
	env.Require().NoError(err)
	env.Equal(
		"........\n"+
			"........\n"+
			"..##....\n"+
			"..##....\n"+
			"........\n"+
			"........\n"+
			"........\n"+
			"........\n",
		drawing(img), "expected nested transforms to accumulate")
	//
	img, err = RenderGlyph(otf, 4, 10)
	env.NoError(err)
	env.Equal(0, img.Bounds().Dx(), "expected glyph without contours to render empty")
}
