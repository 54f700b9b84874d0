package renderer

import (
	"github.com/ryanlewis/bmpkit/internal/common"
	"github.com/ryanlewis/bmpkit/internal/parser"
	"github.com/ryanlewis/bmpkit/internal/raster"
)

var ink = raster.RGB{R: 0, G: 0, B: 0}

// rows converts '#'/'.' strings into raw glyph rows, bit 7 = column 0.
func rows(lines ...string) [common.GlyphHeight]byte {
	var raw [common.GlyphHeight]byte
	for y, line := range lines {
		for x, ch := range line {
			if ch == '#' && x < common.GlyphWidth {
				raw[y] |= 1 << (common.GlyphWidth - 1 - x)
			}
		}
	}
	return raw
}

// testFont has a 5-wide 'W' (advance 6), a 1-wide 'I' (advance 2), the
// fixed 3-wide space (advance 4) and blank glyphs everywhere else
// (advance 1).
func testFont() *parser.Font {
	var raw [common.GlyphCount][common.GlyphHeight]byte
	raw['W'] = rows(
		"#...#...",
		"#...#...",
		"#...#...",
		"#.#.#...",
		"#.#.#...",
		"##.##...",
		"#...#...",
	)
	raw['I'] = rows(
		"#.......",
		"#.......",
		"#.......",
		"#.......",
		"#.......",
		"#.......",
		"#.......",
	)
	return parser.New(raw)
}

// inked reports whether (x, y) holds the test ink colour.
func inked(c *raster.Canvas, x, y int) bool {
	got, ok := c.At(x, y)
	return ok && got == ink
}
