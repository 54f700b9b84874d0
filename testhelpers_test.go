package bmpkit

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"testing"

	xbmp "golang.org/x/image/bmp"
)

const testFontPath = "testdata/font.fnt"

// loadTestFont loads the bundled 8×8 font.
func loadTestFont(tb testing.TB) *Font {
	tb.Helper()
	font, err := LoadFont(testFontPath)
	if err != nil {
		tb.Fatalf("LoadFont(%s) error = %v", testFontPath, err)
	}
	return font
}

// readTestFont returns the raw bytes of the bundled font.
func readTestFont(tb testing.TB) []byte {
	tb.Helper()
	data, err := os.ReadFile(testFontPath)
	if err != nil {
		tb.Fatalf("ReadFile(%s) error = %v", testFontPath, err)
	}
	return data
}

// decodeBMP decodes data with an independent BMP decoder.
func decodeBMP(tb testing.TB, data []byte) image.Image {
	tb.Helper()
	img, err := xbmp.Decode(bytes.NewReader(data))
	if err != nil {
		tb.Fatalf("bmp.Decode() error = %v", err)
	}
	return img
}

// hexOf formats any colour as #rrggbb.
func hexOf(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// probe is an expected colour at one pixel.
type probe struct {
	At    []int  `yaml:"at"`
	Color string `yaml:"color"`
}

// checkProbes compares the colour of img at every probe.
func checkProbes(t *testing.T, img image.Image, probes []probe) {
	t.Helper()
	for _, p := range probes {
		if got := hexOf(img.At(p.At[0], p.At[1])); got != p.Color {
			t.Errorf("pixel (%d, %d) = %s, want %s", p.At[0], p.At[1], got, p.Color)
		}
	}
}
