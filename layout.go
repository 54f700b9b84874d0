package bmpkit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ryanlewis/bmpkit/internal/renderer"
)

// TextMetrics describes the unwrapped extent of a piece of text.
type TextMetrics struct {
	// Lines holds the width in pixels of every newline-separated line,
	// including the trailing spacing column of the last glyph
	Lines []int

	// Width is the widest line
	Width int

	// Height is the number of lines times the line advance
	Height int
}

// MeasureText measures text as DrawText would lay it out without wrapping.
// A nil font measures every line as zero wide.
func MeasureText(text string, f *Font, scale int) TextMetrics {
	var lines []int
	if f == nil {
		lines = renderer.Measure(text, nil, scale)
	} else {
		lines = renderer.Measure(text, f.font, scale)
	}

	m := TextMetrics{
		Lines:  lines,
		Height: len(lines) * renderer.LineAdvance(scale),
	}
	for _, w := range lines {
		m.Width = max(m.Width, w)
	}
	return m
}

// replacementByte stands in for runes the font cannot show.
const replacementByte = '?'

// FoldASCII rewrites s for a 7-bit font: accents are stripped ("café" becomes
// "cafe") and any other non-ASCII rune becomes '?'. ASCII input is returned
// unchanged.
func FoldASCII(s string) string {
	if isASCII(s) {
		return s
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < utf8.RuneSelf {
			b.WriteByte(byte(r))
			continue
		}
		b.WriteByte(replacementByte)
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
