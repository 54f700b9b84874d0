// Package common provides shared constants and errors for internal packages.
// The errors are re-exported by the bmpkit package and must stay identical.
package common

import "errors"

// Glyph table geometry
const (
	// GlyphWidth is the raw width of every glyph cell in pixels
	GlyphWidth = 8
	// GlyphHeight is the height of every glyph cell in pixels
	GlyphHeight = 8
	// GlyphCount is the number of code points in the table (7-bit ASCII)
	GlyphCount = 128
	// FontDataSize is the size of a packed font blob in bytes
	FontDataSize = GlyphCount * GlyphHeight

	// SpaceCode is the code point that receives a fixed advance
	SpaceCode = 32
	// SpaceBlankColumns is the number of leading columns always dropped from the space glyph
	SpaceBlankColumns = 5

	// LineLeading is the gap in pixels between text lines before scaling
	LineLeading = 1
	// GlyphSpacing is the gap in pixels after every glyph before scaling
	GlyphSpacing = 1
)

// Canvas defaults
const (
	// FallbackWidth is used when a canvas is requested with a non-positive size
	FallbackWidth = 10
	// FallbackHeight is used when a canvas is requested with a non-positive size
	FallbackHeight = 5
)

// Common errors (must match public API in bmpkit package)
var (
	// ErrBadFontFormat is returned when font data is truncated or malformed
	ErrBadFontFormat = errors.New("bad font format")
	// ErrNoFont is returned when no font source is available
	ErrNoFont = errors.New("no font available")
	// ErrInvalidScene is returned when a scene description cannot be applied
	ErrInvalidScene = errors.New("invalid scene")
	// ErrBadColor is returned when a colour string cannot be parsed
	ErrBadColor = errors.New("bad color")
)
