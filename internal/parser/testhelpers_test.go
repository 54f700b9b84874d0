package parser

import (
	"strings"

	"github.com/ryanlewis/bmpkit/internal/common"
)

// glyphRows converts eight strings of '#' and '.' into raw row bytes.
// Rows shorter than eight columns are padded with blanks.
func glyphRows(rows ...string) [common.GlyphHeight]byte {
	var raw [common.GlyphHeight]byte
	for y, row := range rows {
		if y >= common.GlyphHeight {
			break
		}
		for x, ch := range row {
			if x < common.GlyphWidth && ch == '#' {
				raw[y] |= 1 << (common.GlyphWidth - 1 - x)
			}
		}
	}
	return raw
}

// rowsString renders raw rows back into '#'/'.' art, one line per row.
func rowsString(raw [common.GlyphHeight]byte) string {
	var b strings.Builder
	for _, row := range raw {
		for x := 0; x < common.GlyphWidth; x++ {
			if row&(1<<(common.GlyphWidth-1-x)) != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// testRaw returns a table where 'A' is a 5-wide block letter, 'i' is a
// single column, '!' has an interior gap and everything else is blank.
func testRaw() [common.GlyphCount][common.GlyphHeight]byte {
	var raw [common.GlyphCount][common.GlyphHeight]byte
	raw['A'] = glyphRows(
		".###....",
		"#...#...",
		"#...#...",
		"#####...",
		"#...#...",
		"#...#...",
		"#...#...",
		"........",
	)
	raw['i'] = glyphRows(
		"...#....",
		"........",
		"...#....",
		"...#....",
		"...#....",
		"...#....",
		"...#....",
		"........",
	)
	raw['!'] = glyphRows(
		"#.#.....",
		"#.#.....",
		"#.#.....",
		"........",
		"#.#.....",
	)
	return raw
}

// testBlob packs testRaw into the on-disk format.
func testBlob() []byte {
	raw := testRaw()
	blob := make([]byte, 0, common.FontDataSize)
	for code := range raw {
		blob = append(blob, raw[code][:]...)
	}
	return blob
}
