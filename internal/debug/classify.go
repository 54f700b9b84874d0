package debug

import "fmt"

// Token kinds reported in TokenData.
const (
	KindWord    = "word"
	KindSpace   = "space"
	KindNewline = "newline"
)

// FormatColor renders a colour as #rrggbb.
func FormatColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// codeStr formats a glyph code for display: 'X' (0x58) or NUL for 0.
func codeStr(c int) string {
	if c == 0 {
		return "NUL"
	}
	if c >= 32 && c < 127 {
		return fmt.Sprintf("'%c' (0x%02X)", c, c)
	}
	return fmt.Sprintf("0x%02X", c)
}
