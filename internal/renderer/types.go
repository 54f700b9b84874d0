package renderer

import (
	"errors"

	"github.com/ryanlewis/bmpkit/internal/debug"
	"github.com/ryanlewis/bmpkit/internal/raster"
)

// ErrNilFont is returned when a nil font is provided to Render
var ErrNilFont = errors.New("font cannot be nil")

// Options contains text rendering options passed from the bmpkit package
type Options struct {
	// X and Y are the top-left corner of the first line; X is also the
	// left margin every new line returns to
	X, Y int
	// Color is the ink colour
	Color raster.RGB
	// Scale is the pixel block size per glyph cell; values below 1 mean 1
	Scale int
	// Wrap moves a word that would cross the right canvas edge to a new line
	Wrap bool
	// Debug receives render events when non-nil
	Debug *debug.Session
}

// Stats summarises one Render call.
type Stats struct {
	Tokens  int // tokens produced from the input
	Glyphs  int // glyphs painted
	Skipped int // bytes skipped (out of range or wrapped leading space)
	Lines   int // lines touched, counting the first
	Wraps   int // width-triggered line breaks
	EndX    int // cursor after the last glyph
	EndY    int
}

// TokenKind classifies a token.
type TokenKind uint8

const (
	// Word is a maximal run of bytes other than space and newline
	Word TokenKind = iota
	// Space is a single space byte
	Space
	// Newline is a single newline byte
	Newline
)

// String returns the token kind as used in debug events.
func (k TokenKind) String() string {
	switch k {
	case Space:
		return debug.KindSpace
	case Newline:
		return debug.KindNewline
	default:
		return debug.KindWord
	}
}

// Token is one unit of text layout. Text aliases the input string.
type Token struct {
	Kind TokenKind
	Text string
}
