package parser

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/bmp"

	"github.com/ryanlewis/bmpkit/internal/common"
)

// atlasThreshold is the channel value a pixel must exceed to count as on
const atlasThreshold = 128

// AtlasOptions configures ParseAtlas.
type AtlasOptions struct {
	// Remap maps a code point to the atlas cell holding its glyph.
	// A negative cell leaves the glyph blank. Unmapped codes use cell == code.
	Remap map[int]int
}

// ParseAtlas decodes a glyph atlas stored as a BMP image. The atlas is cut
// into 8×8 cells, numbered left to right then top to bottom; a pixel is on
// when any of its channels is brighter than mid-grey.
func ParseAtlas(r io.Reader, opts *AtlasOptions) (*Font, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding atlas: %w", common.ErrBadFontFormat, err)
	}
	return atlasFromImage(img, opts)
}

// atlasFromImage slices an already decoded atlas image into glyphs.
func atlasFromImage(img image.Image, opts *AtlasOptions) (*Font, error) {
	bounds := img.Bounds()
	cellsPerRow := bounds.Dx() / common.GlyphWidth
	cellRows := bounds.Dy() / common.GlyphHeight
	cellCount := cellsPerRow * cellRows
	if cellCount == 0 {
		return nil, fmt.Errorf("%w: atlas %dx%d is smaller than one %dx%d cell",
			common.ErrBadFontFormat, bounds.Dx(), bounds.Dy(), common.GlyphWidth, common.GlyphHeight)
	}

	var raw [common.GlyphCount][common.GlyphHeight]byte
	missing := 0
	for code := 0; code < common.GlyphCount; code++ {
		cell := code
		if opts != nil {
			if mapped, ok := opts.Remap[code]; ok {
				cell = mapped
			}
		}
		if cell < 0 {
			continue
		}
		if cell >= cellCount {
			missing++
			continue
		}

		originX := bounds.Min.X + (cell%cellsPerRow)*common.GlyphWidth
		originY := bounds.Min.Y + (cell/cellsPerRow)*common.GlyphHeight
		for y := 0; y < common.GlyphHeight; y++ {
			var row byte
			for x := 0; x < common.GlyphWidth; x++ {
				if pixelOn(img.At(originX+x, originY+y)) {
					row |= 1 << (common.GlyphWidth - 1 - x)
				}
			}
			raw[code][y] = row
		}
	}

	f := New(raw)
	if missing > 0 {
		f.Warnings = append(f.Warnings,
			fmt.Sprintf("atlas has %d cells; %d glyphs left blank", cellCount, missing))
	}
	return f, nil
}

func pixelOn(c color.Color) bool {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return rgba.R > atlasThreshold || rgba.G > atlasThreshold || rgba.B > atlasThreshold
}
