// Package renderer lays out and paints bitmap text onto a raster canvas.
//
// Text is split into words, spaces and newlines. Each glyph advances the
// cursor by its cropped width plus one spacing column, all multiplied by the
// scale. With wrapping on, a word that would cross the right canvas edge
// starts a new line, unless it is wider than the canvas.
package renderer

import (
	"time"

	"github.com/ryanlewis/bmpkit/internal/common"
	"github.com/ryanlewis/bmpkit/internal/debug"
	"github.com/ryanlewis/bmpkit/internal/parser"
	"github.com/ryanlewis/bmpkit/internal/raster"
)

// LineAdvance returns the vertical distance between two text lines.
func LineAdvance(scale int) int {
	return (common.GlyphHeight + common.LineLeading) * normalizeScale(scale)
}

// Advance returns how far the cursor moves after drawing code. Codes outside
// the font do not move it.
func Advance(font *parser.Font, code, scale int) int {
	g, ok := font.Glyph(code)
	if !ok {
		return 0
	}
	return (g.Width() + common.GlyphSpacing) * normalizeScale(scale)
}

// TokenWidth returns the horizontal extent of s, the sum of its advances.
func TokenWidth(font *parser.Font, s string, scale int) int {
	w := 0
	for i := 0; i < len(s); i++ {
		w += Advance(font, int(s[i]), scale)
	}
	return w
}

// Measure returns the unwrapped width of every newline-separated line of
// text. The result always has at least one entry.
func Measure(text string, font *parser.Font, scale int) []int {
	widths := []int{0}
	if font == nil {
		return widths
	}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			widths = append(widths, 0)
			continue
		}
		widths[len(widths)-1] += Advance(font, int(text[i]), scale)
	}
	return widths
}

// Render paints text onto dst. Pixels falling outside the canvas are dropped
// by the canvas; Render itself never fails for a non-nil font.
func Render(dst *raster.Canvas, text string, font *parser.Font, opts Options) (Stats, error) {
	if font == nil {
		return Stats{}, ErrNilFont
	}

	scale := normalizeScale(opts.Scale)
	lineAdvance := LineAdvance(scale)
	canvasWidth := dst.Width()
	session := opts.Debug

	var startTime time.Time
	if session != nil {
		startTime = time.Now()
		session.Emit("render", "Start", debug.RenderStartData{
			Text:        text,
			TextLength:  len(text),
			X:           opts.X,
			Y:           opts.Y,
			Scale:       scale,
			Wrap:        opts.Wrap,
			Color:       debug.FormatColor(opts.Color.R, opts.Color.G, opts.Color.B),
			CanvasWidth: canvasWidth,
		})
	}

	tokens := appendTokens(acquireTokens(), text)
	defer func() { releaseTokens(tokens) }()

	st := Stats{Tokens: len(tokens), Lines: 1}
	curX, curY := opts.X, opts.Y
	glyphIdx := 0

	for i, tok := range tokens {
		if tok.Kind == Newline {
			if session != nil {
				session.Emit("render", "Wrap", debug.WrapData{
					Reason:     "newline",
					TokenIndex: i,
					FromX:      curX,
					FromY:      curY,
					ToY:        curY + lineAdvance,
				})
			}
			curX = opts.X
			curY += lineAdvance
			st.Lines++
			continue
		}

		width := TokenWidth(font, tok.Text, scale)
		if session != nil {
			session.Emit("render", "Token", debug.TokenData{
				Index: i,
				Kind:  tok.Kind.String(),
				Text:  tok.Text,
				Width: width,
				CurX:  curX,
				CurY:  curY,
			})
		}

		wrapped := false
		if opts.Wrap && width > 0 && width <= canvasWidth && curX+width > canvasWidth {
			if session != nil {
				session.Emit("render", "Wrap", debug.WrapData{
					Reason:     "width",
					TokenIndex: i,
					FromX:      curX,
					FromY:      curY,
					ToY:        curY + lineAdvance,
					TokenWidth: width,
				})
			}
			curX = opts.X
			curY += lineAdvance
			st.Lines++
			st.Wraps++
			wrapped = true
		}

		for j := 0; j < len(tok.Text); j++ {
			code := int(tok.Text[j])
			g, ok := font.Glyph(code)

			skipped := ""
			switch {
			case !ok:
				skipped = "out_of_range"
			case wrapped && code == common.SpaceCode && curX == opts.X:
				skipped = "leading_space"
			}

			if session != nil {
				gd := debug.GlyphData{Index: glyphIdx, Code: code, X: curX, Y: curY, Skipped: skipped}
				if ok {
					gd.Width = g.Width()
				}
				session.Emit("render", "Glyph", gd)
			}
			glyphIdx++

			if skipped != "" {
				st.Skipped++
				continue
			}

			drawGlyph(dst, g, curX, curY, scale, opts.Color)
			curX += (g.Width() + common.GlyphSpacing) * scale
			st.Glyphs++
		}
	}

	st.EndX, st.EndY = curX, curY

	if session != nil {
		session.Emit("render", "End", debug.RenderEndData{
			Tokens:    st.Tokens,
			Glyphs:    st.Glyphs,
			Skipped:   st.Skipped,
			Lines:     st.Lines,
			Wraps:     st.Wraps,
			EndX:      st.EndX,
			EndY:      st.EndY,
			ElapsedUs: time.Since(startTime).Microseconds(),
		})
	}

	return st, nil
}

// drawGlyph paints every on cell of g as a scale×scale block with its
// top-left corner at (x, y).
func drawGlyph(dst *raster.Canvas, g *parser.Glyph, x, y, scale int, col raster.RGB) {
	for cx, column := range g.Columns {
		if column == 0 {
			continue
		}
		for row := 0; row < common.GlyphHeight; row++ {
			if column&(1<<row) == 0 {
				continue
			}
			px := x + cx*scale
			py := y + row*scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					dst.Set(px+dx, py+dy, col)
				}
			}
		}
	}
}

func normalizeScale(scale int) int {
	if scale < 1 {
		return 1
	}
	return scale
}
