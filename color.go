package bmpkit

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Named colours used by the examples and tests.
var (
	Black  = Color{0, 0, 0}
	White  = Color{255, 255, 255}
	Red    = Color{255, 0, 0}
	Green  = Color{0, 255, 0}
	Blue   = Color{0, 0, 255}
	Yellow = Color{255, 255, 0}
)

// ParseColor parses a colour given as an SVG 1.1 colour name ("red",
// "cornflowerblue"), "#rgb", "#rrggbb" or "r,g,b" with decimal channels.
// Decimal channels are clamped like SetPixelRGB.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty string", ErrBadColor)
	}

	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("%w: %q needs three channels", ErrBadColor, s)
		}
		var ch [3]int
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return Color{}, fmt.Errorf("%w: %q: %w", ErrBadColor, s, err)
			}
			ch[i] = v
		}
		return RGB(ch[0], ch[1], ch[2]), nil
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{R: c.R, G: c.G, B: c.B}, nil
	}
	return Color{}, fmt.Errorf("%w: unknown colour name %q", ErrBadColor, s)
}

func parseHexColor(s string) (Color, error) {
	hex := s[1:]
	switch len(hex) {
	case 3:
		// #rgb expands each digit: #f80 == #ff8800
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("%w: %q is not #rgb or #rrggbb", ErrBadColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %w", ErrBadColor, s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
