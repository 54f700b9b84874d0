// Package parser decodes 8×8 bitmap fonts and derives the cropped,
// variable-width glyph columns used for text layout.
//
// The canonical source is a packed blob: 128 glyphs × 8 row bytes, where bit 7
// of each row byte is the leftmost column. A BMP glyph atlas can be decoded as
// an alternative (see ParseAtlas).
package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/ryanlewis/bmpkit/internal/common"
)

// Glyph is one code point of the font.
type Glyph struct {
	// Raw holds one byte per row; bit 7 is column 0
	Raw [common.GlyphHeight]byte

	// Columns holds the cropped columns left to right; bit r is row r
	Columns []byte
}

// Width returns the cropped width of the glyph in pixels.
func (g *Glyph) Width() int {
	return len(g.Columns)
}

// On reports whether the cropped glyph has a pixel at (col, row).
func (g *Glyph) On(col, row int) bool {
	if col < 0 || col >= len(g.Columns) || row < 0 || row >= common.GlyphHeight {
		return false
	}
	return g.Columns[col]&(1<<row) != 0
}

// Font is a decoded 128-glyph bitmap font. It is immutable after
// construction and safe for concurrent use.
type Font struct {
	// Glyphs is indexed by code point
	Glyphs [common.GlyphCount]Glyph

	// Warnings contains any non-fatal issues encountered during decoding
	Warnings []string
}

// New builds a font from raw row bytes and crops every glyph.
func New(raw [common.GlyphCount][common.GlyphHeight]byte) *Font {
	f := &Font{}
	for code := range raw {
		f.Glyphs[code] = Glyph{
			Raw:     raw[code],
			Columns: Crop(code, raw[code]),
		}
	}
	return f
}

// Glyph returns the glyph for code, or false if code is outside the table.
func (f *Font) Glyph(code int) (*Glyph, bool) {
	if code < 0 || code >= common.GlyphCount {
		return nil, false
	}
	return &f.Glyphs[code], true
}

// Width returns the cropped width of code, or 0 if code is outside the table.
func (f *Font) Width(code int) int {
	g, ok := f.Glyph(code)
	if !ok {
		return 0
	}
	return g.Width()
}

// Parse reads a packed font blob. Short input is an error; bytes past the
// table are reported as a warning.
func Parse(r io.Reader) (*Font, error) {
	buf := acquireBlob()
	defer releaseBlob(buf)

	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("error reading font data: %w", err)
		}
		return nil, fmt.Errorf("%w: got %d of %d bytes: %w",
			common.ErrBadFontFormat, n, common.FontDataSize, err)
	}

	var raw [common.GlyphCount][common.GlyphHeight]byte
	for code := 0; code < common.GlyphCount; code++ {
		copy(raw[code][:], buf[code*common.GlyphHeight:])
	}
	f := New(raw)

	var extra [1]byte
	if m, _ := r.Read(extra[:]); m > 0 {
		f.Warnings = append(f.Warnings,
			fmt.Sprintf("trailing data after %d-byte glyph table ignored", common.FontDataSize))
	}

	return f, nil
}

// Pack encodes the raw glyph rows back into the packed blob format.
func (f *Font) Pack() []byte {
	out := make([]byte, 0, common.FontDataSize)
	for code := range f.Glyphs {
		out = append(out, f.Glyphs[code].Raw[:]...)
	}
	return out
}
