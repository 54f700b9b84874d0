package bmpkit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ryanlewis/bmpkit/internal/debug"
)

// drawExample draws the sample picture through the public API.
func drawExample(img *Image) {
	img.SetDefaultPixelRGB(255, 0, 0)
	img.DrawRectangle(10, 10, 90, 90, Green, true)
	img.DrawLine(10, 10, 90, 90, Blue)
	img.DrawCircle(50, 50, 30, Yellow, false)
	img.DrawText(10, 10, "Hello,\nBMP world!", Black, 1, true)
}

var exampleProbes = []probe{
	{At: []int{0, 0}, Color: "#ff0000"},
	{At: []int{99, 99}, Color: "#ff0000"},
	{At: []int{10, 10}, Color: "#000000"},
	{At: []int{12, 10}, Color: "#00ff00"},
	{At: []int{50, 50}, Color: "#0000ff"},
	{At: []int{50, 20}, Color: "#ffff00"},
	{At: []int{80, 50}, Color: "#ffff00"},
	{At: []int{30, 60}, Color: "#00ff00"},
	{At: []int{90, 90}, Color: "#0000ff"},
	{At: []int{10, 19}, Color: "#000000"},
}

func TestExample(t *testing.T) {
	img := New(100, 100, WithFontFile(testFontPath))
	drawExample(img)

	data := img.Bytes()
	if len(data) != 30054 {
		t.Fatalf("len(Bytes()) = %d, want 30054", len(data))
	}

	t.Run("image", func(t *testing.T) {
		checkProbes(t, img, exampleProbes)
	})
	t.Run("decoded", func(t *testing.T) {
		checkProbes(t, decodeBMP(t, data), exampleProbes)
	})
}

func TestNewFallbackSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"regular", 7, 3, 7, 3},
		{"zero width", 0, 3, 10, 5},
		{"zero height", 7, 0, 10, 5},
		{"negative", -4, -4, 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := New(tt.width, tt.height)
			if img.Width() != tt.wantW || img.Height() != tt.wantH {
				t.Errorf("New(%d, %d) size = %dx%d, want %dx%d",
					tt.width, tt.height, img.Width(), img.Height(), tt.wantW, tt.wantH)
			}
			if got := hexOf(img.At(0, 0)); got != "#ffffff" {
				t.Errorf("initial pixel = %s, want #ffffff", got)
			}
		})
	}
}

func TestRoundTripPadding(t *testing.T) {
	fill := RGB(12, 200, 77)

	for width := 1; width <= 4; width++ {
		t.Run(fmt.Sprintf("width=%d", width), func(t *testing.T) {
			img := New(width, 3)
			img.SetDefaultPixel(fill)

			data := img.Bytes()
			wantSize := 54 + ((width*3+3)/4*4)*3
			if len(data) != wantSize {
				t.Errorf("len(Bytes()) = %d, want %d", len(data), wantSize)
			}

			decoded := decodeBMP(t, data)
			if got := decoded.Bounds(); got != image.Rect(0, 0, width, 3) {
				t.Fatalf("decoded bounds = %v", got)
			}
			for y := 0; y < 3; y++ {
				for x := 0; x < width; x++ {
					if got := hexOf(decoded.At(x, y)); got != fill.String() {
						t.Errorf("pixel (%d, %d) = %s, want %s", x, y, got, fill)
					}
				}
			}
		})
	}
}

func TestRowOrder(t *testing.T) {
	img := New(2, 2)
	img.SetPixel(0, 0, Red)
	img.SetPixel(1, 1, Blue)

	decoded := decodeBMP(t, img.Bytes())
	want := map[[2]int]string{
		{0, 0}: "#ff0000",
		{1, 0}: "#ffffff",
		{0, 1}: "#ffffff",
		{1, 1}: "#0000ff",
	}
	for p, c := range want {
		if got := hexOf(decoded.At(p[0], p[1])); got != c {
			t.Errorf("pixel %v = %s, want %s", p, got, c)
		}
	}
}

func TestSetPixelOutside(t *testing.T) {
	img := New(4, 4)
	before := img.Bytes()

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		img.SetPixelRGB(p[0], p[1], 0, 0, 0)
	}

	if diff := cmp.Diff(before, img.Bytes()); diff != "" {
		t.Errorf("out of bounds writes changed the image (-before +after):\n%s", diff)
	}
}

func TestSetPixelRGBClamps(t *testing.T) {
	img := New(1, 1)
	img.SetPixelRGB(0, 0, -20, 300, 128)
	if got := img.RGBAt(0, 0); got != (Color{0, 255, 128}) {
		t.Errorf("RGBAt = %v, want #00ff80", got)
	}
}

func TestSingleDotLine(t *testing.T) {
	img := New(5, 5)
	img.DrawLine(2, 3, 2, 3, Black)

	count := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if img.RGBAt(x, y) == Black {
				count++
			}
		}
	}
	if count != 1 || img.RGBAt(2, 3) != Black {
		t.Errorf("degenerate line painted %d pixels, want exactly (2, 3)", count)
	}
}

func TestRectangleCornerOrder(t *testing.T) {
	for _, filled := range []bool{false, true} {
		a := New(12, 12)
		a.DrawRectangle(2, 3, 9, 8, Blue, filled)
		b := New(12, 12)
		b.DrawRectangle(9, 8, 2, 3, Blue, filled)

		if !bytes.Equal(a.Bytes(), b.Bytes()) {
			t.Errorf("filled=%t: swapped corners draw a different rectangle", filled)
		}
	}
}

func TestWriteTo(t *testing.T) {
	img := New(5, 3)
	img.DrawLine(0, 0, 4, 2, Red)

	var buf bytes.Buffer
	n, err := img.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, wrote %d bytes", n, buf.Len())
	}
	if !bytes.Equal(buf.Bytes(), img.Bytes()) {
		t.Error("WriteTo() and Bytes() disagree")
	}
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("appends extension", func(t *testing.T) {
		img := New(3, 3)
		img.SetPixel(1, 1, Green)

		name := filepath.Join(dir, "output_image")
		if err := img.SaveFile(name); err != nil {
			t.Fatalf("SaveFile() error = %v", err)
		}

		data, err := os.ReadFile(name + ".bmp")
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !bytes.Equal(data, img.Bytes()) {
			t.Error("saved file differs from Bytes()")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		var logs bytes.Buffer
		img := New(3, 3, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

		name := filepath.Join(dir, "missing", "out")
		err := img.SaveFile(name)
		if err == nil {
			t.Fatal("SaveFile() into a missing directory succeeded")
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("SaveFile() error = %v, want os.ErrNotExist", err)
		}
		if _, statErr := os.Stat(name + ".bmp"); !errors.Is(statErr, os.ErrNotExist) {
			t.Errorf("a file was created: %v", statErr)
		}
		if !strings.Contains(logs.String(), "save failed") {
			t.Errorf("failure was not logged: %q", logs.String())
		}

		// The image remains usable
		img.SetPixel(0, 0, Red)
		if err := img.SaveFile(filepath.Join(dir, "retry")); err != nil {
			t.Errorf("SaveFile() after failure error = %v", err)
		}
	})
}

func TestDrawTextWithoutFont(t *testing.T) {
	var logs bytes.Buffer
	img := New(40, 12,
		WithFontFile(filepath.Join(t.TempDir(), "absent.fnt")),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)
	before := img.Bytes()

	img.DrawText(0, 0, "Hi", Black, 1, false)

	if !bytes.Equal(before, img.Bytes()) {
		t.Error("DrawText without a font changed the image")
	}
	if !strings.Contains(logs.String(), "font load failed") {
		t.Errorf("font failure was not logged: %q", logs.String())
	}
	if _, err := img.Font(); err == nil {
		t.Error("Font() succeeded without a font file")
	}

	// A later load recovers
	if err := img.LoadFont(testFontPath); err != nil {
		t.Fatalf("LoadFont() error = %v", err)
	}
	img.DrawText(0, 0, "Hi", Black, 1, false)
	if bytes.Equal(before, img.Bytes()) {
		t.Error("DrawText after LoadFont drew nothing")
	}
}

func TestLoadFontKeepsCurrentOnError(t *testing.T) {
	font := loadTestFont(t)
	img := New(10, 10, WithFont(font))

	if err := img.LoadFont(filepath.Join(t.TempDir(), "absent.fnt")); err == nil {
		t.Fatal("LoadFont() of a missing file succeeded")
	}
	got, err := img.Font()
	if err != nil || got != font {
		t.Errorf("Font() = %p, %v; want the original font", got, err)
	}
}

func TestLazyFontLoad(t *testing.T) {
	img := New(10, 10, WithFontFile(testFontPath))
	if img.font != nil {
		t.Fatal("font loaded before first use")
	}

	font, err := img.Font()
	if err != nil {
		t.Fatalf("Font() error = %v", err)
	}
	if font.Name != "font" {
		t.Errorf("Font().Name = %q, want %q", font.Name, "font")
	}

	again, _ := img.Font()
	if again != font {
		t.Error("Font() loaded the font twice")
	}
}

func TestEmptyFontPath(t *testing.T) {
	img := New(10, 10, WithFontFile(""))
	if _, err := img.Font(); !errors.Is(err, ErrNoFont) {
		t.Errorf("Font() error = %v, want ErrNoFont", err)
	}
}

func TestMeasureTextMethod(t *testing.T) {
	img := New(10, 10, WithFont(loadTestFont(t)))
	m, err := img.MeasureText("Hello,\nBMP world!", 1)
	if err != nil {
		t.Fatalf("MeasureText() error = %v", err)
	}
	want := TextMetrics{Lines: []int{35, 69}, Width: 69, Height: 18}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("MeasureText() mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapAtImageEdge(t *testing.T) {
	font := loadTestFont(t)

	// "Hello" is 31px wide: from x=10 it fits a 50px image, from x=20 it
	// moves down one line
	tests := []struct {
		name         string
		x            int
		inkY, blankY int
	}{
		{"fits", 10, 0, 9},
		{"wraps", 20, 9, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := New(50, 20, WithFont(font))
			img.DrawText(tt.x, 0, "Hello", Black, 1, true)

			// 'H' has ink in its top-left cell
			if img.RGBAt(tt.x, tt.inkY) != Black {
				t.Errorf("no ink at (%d, %d)", tt.x, tt.inkY)
			}
			if img.RGBAt(tt.x, tt.blankY) != White {
				t.Errorf("unexpected ink at (%d, %d)", tt.x, tt.blankY)
			}
		})
	}
}

func TestImageInterface(t *testing.T) {
	img := New(4, 2)
	img.SetPixel(3, 1, Yellow)

	if got := img.Bounds(); got != image.Rect(0, 0, 4, 2) {
		t.Errorf("Bounds() = %v", got)
	}
	if got := hexOf(img.At(3, 1)); got != "#ffff00" {
		t.Errorf("At(3, 1) = %s, want #ffff00", got)
	}
	if got := hexOf(img.At(4, 0)); got != "#000000" {
		t.Errorf("At outside = %s, want #000000", got)
	}

	converted := img.ColorModel().Convert(color.RGBA{R: 1, G: 2, B: 3, A: 255})
	if converted != (Color{1, 2, 3}) {
		t.Errorf("ColorModel().Convert() = %v", converted)
	}
}

func TestDebugTrace(t *testing.T) {
	debug.SetEnabled(true)
	defer debug.SetEnabled(false)

	var buf bytes.Buffer
	sink := debug.NewJSONSink(&buf)
	session := debug.NewSession(sink)
	if session == nil {
		t.Fatal("NewSession() = nil with debugging enabled")
	}

	img := New(100, 100, WithFontFile(testFontPath), WithDebug(session))
	drawExample(img)
	_ = img.Bytes()

	if err := session.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	counts := map[string]int{}
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var ev struct {
			Phase string `json:"phase"`
			Event string `json:"event"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("invalid JSON line %q: %v", scanner.Text(), err)
		}
		counts[ev.Phase+"/"+ev.Event]++
	}

	want := map[string]int{
		"session/Start": 1,
		"session/End":   1,
		"draw/Shape":    4,
		"font/Load":     1,
		"render/Start":  1,
		"render/End":    1,
		"encode/Header": 1,
		"encode/Done":   1,
	}
	for key, n := range want {
		if counts[key] != n {
			t.Errorf("%s events = %d, want %d", key, counts[key], n)
		}
	}
	if counts["render/Glyph"] != len("Hello,BMP world!") {
		t.Errorf("render/Glyph events = %d, want %d", counts["render/Glyph"], len("Hello,BMP world!"))
	}
}
