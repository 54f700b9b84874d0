package parser

import "github.com/ryanlewis/bmpkit/internal/common"

// column extracts column cx of a raw glyph as a byte where bit r is row r.
func column(raw [common.GlyphHeight]byte, cx int) byte {
	var col byte
	for row := 0; row < common.GlyphHeight; row++ {
		if (raw[row]>>(common.GlyphWidth-1-cx))&1 == 1 {
			col |= 1 << row
		}
	}
	return col
}

// Crop returns the columns of a raw glyph with every fully blank column
// removed. The space glyph instead always drops its first SpaceBlankColumns
// columns and keeps the rest, blank or not, giving it a fixed advance.
func Crop(code int, raw [common.GlyphHeight]byte) []byte {
	cols := make([]byte, common.GlyphWidth)
	for cx := range cols {
		cols[cx] = column(raw, cx)
	}
	if code == common.SpaceCode {
		return cols[common.SpaceBlankColumns:]
	}
	return CropColumns(cols)
}

// CropColumns removes blank columns from an already decoded column sequence.
// Applied to the output of Crop for any glyph other than space it removes
// nothing.
func CropColumns(cols []byte) []byte {
	out := make([]byte, 0, len(cols))
	for _, col := range cols {
		if col != 0 {
			out = append(out, col)
		}
	}
	return out
}
