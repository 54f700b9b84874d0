// Package bmpkit builds 24-bit BMP images in memory.
//
// An Image is an RGB pixel grid with a top-left origin. Pixels, rectangles,
// lines, circles and word-wrapped bitmap text are drawn onto it and the
// result is written as an uncompressed BMP. Drawing never fails: channels are
// clamped and pixels outside the canvas are skipped. Only font loading and
// saving report errors.
//
// Text uses an 8×8 bitmap font covering 7-bit ASCII. Each glyph is cropped to
// its non-blank columns, giving proportional spacing. The font is loaded
// lazily on the first DrawText, from DefaultFontPath unless an option says
// otherwise.
//
// An Image is not safe for concurrent use; use one image per goroutine.
// Fonts and FontCache are safe to share.
package bmpkit

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/ryanlewis/bmpkit/internal/bmp"
	"github.com/ryanlewis/bmpkit/internal/debug"
	"github.com/ryanlewis/bmpkit/internal/raster"
	"github.com/ryanlewis/bmpkit/internal/renderer"
)

// Image is an in-memory RGB canvas plus the font used for its text.
type Image struct {
	canvas *raster.Canvas
	font   *Font
	opts   *options
}

// New creates a white width×height image. A non-positive width or height
// yields a 10×5 image instead of an error.
func New(width, height int, opts ...Option) *Image {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Image{
		canvas: raster.New(width, height),
		font:   o.font,
		opts:   o,
	}
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.canvas.Width() }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.canvas.Height() }

// SetDefaultPixel fills the whole image with c.
func (img *Image) SetDefaultPixel(c Color) {
	img.canvas.Fill(c.raster())
	img.shape("fill", c, false)
}

// SetDefaultPixelRGB fills the whole image with the clamped colour (r, g, b).
func (img *Image) SetDefaultPixelRGB(r, g, b int) {
	img.SetDefaultPixel(RGB(r, g, b))
}

// SetPixel sets the pixel at (x, y). Points outside the image are ignored.
func (img *Image) SetPixel(x, y int, c Color) {
	img.canvas.Set(x, y, c.raster())
	img.shape("pixel", c, false, x, y)
}

// SetPixelRGB sets the pixel at (x, y) to the clamped colour (r, g, b).
func (img *Image) SetPixelRGB(x, y, r, g, b int) {
	img.SetPixel(x, y, RGB(r, g, b))
}

// DrawRectangle draws the axis-aligned rectangle with corners (x0, y0) and
// (x1, y1), both inclusive and in any order. An outline is one pixel wide.
func (img *Image) DrawRectangle(x0, y0, x1, y1 int, c Color, filled bool) {
	img.canvas.Rect(x0, y0, x1, y1, c.raster(), filled)
	img.shape("rect", c, filled, x0, y0, x1, y1)
}

// DrawLine draws a one pixel wide line from (x0, y0) to (x1, y1), both
// endpoints included.
func (img *Image) DrawLine(x0, y0, x1, y1 int, c Color) {
	img.canvas.Line(x0, y0, x1, y1, c.raster())
	img.shape("line", c, false, x0, y0, x1, y1)
}

// DrawCircle draws a circle of the given radius centred on (cx, cy). A
// radius of zero or less draws nothing.
func (img *Image) DrawCircle(cx, cy, radius int, c Color, filled bool) {
	img.canvas.Circle(cx, cy, radius, c.raster(), filled)
	img.shape("circle", c, filled, cx, cy, radius)
}

// DrawText draws text with its top-left corner at (x, y). Every glyph cell
// becomes a scale×scale block; a scale below 1 is treated as 1. Newlines
// return to x one line down. With wrap set, a word that would cross the
// right edge of the image moves to the next line unless it is wider than the
// image. Bytes outside 7-bit ASCII are skipped.
//
// If the font cannot be loaded nothing is drawn; the failure is logged and a
// later call tries again. Use LoadFont to observe the error.
func (img *Image) DrawText(x, y int, text string, c Color, scale int, wrap bool) {
	font, err := img.ensureFont()
	if err != nil {
		return
	}

	//nolint:errcheck // font is non-nil
	renderer.Render(img.canvas, text, font.font, renderer.Options{
		X:     x,
		Y:     y,
		Color: c.raster(),
		Scale: scale,
		Wrap:  wrap,
		Debug: img.opts.debug,
	})
}

// LoadFont loads the font at path and uses it for subsequent text, replacing
// any current font. Paths are resolved against the image's font filesystem
// when WithFontFS was given. On error the current font is kept.
func (img *Image) LoadFont(path string) error {
	font, err := img.loadFont(path)
	if err != nil {
		return err
	}
	img.font = font
	return nil
}

// Font returns the image's font, loading it if needed.
func (img *Image) Font() (*Font, error) {
	return img.ensureFont()
}

// MeasureText measures text in the image's font without drawing it.
func (img *Image) MeasureText(text string, scale int) (TextMetrics, error) {
	font, err := img.ensureFont()
	if err != nil {
		return TextMetrics{}, err
	}
	return MeasureText(text, font, scale), nil
}

func (img *Image) ensureFont() (*Font, error) {
	if img.font != nil {
		return img.font, nil
	}
	font, err := img.loadFont(img.opts.fontPath)
	if err != nil {
		return nil, err
	}
	img.font = font
	return font, nil
}

// loadFont reads a font from the configured source without touching the
// image's current font.
func (img *Image) loadFont(path string) (*Font, error) {
	var (
		font   *Font
		cached bool
		err    error
	)
	switch {
	case path == "":
		err = ErrNoFont
	case img.opts.fontFS != nil:
		font, err = LoadFontFS(img.opts.fontFS, path)
	case img.opts.cache != nil:
		font, cached, err = img.opts.cache.load(path)
	default:
		font, err = LoadFont(path)
	}

	if err != nil {
		img.opts.logger.Warn("font load failed", "path", path, "err", err)
		img.opts.debug.Emit("font", "Error", debug.ErrorData{
			Type:    "font",
			Message: err.Error(),
			Context: map[string]interface{}{"path": path},
		})
		return nil, err
	}

	img.opts.logger.Debug("font loaded", "path", path, "cached", cached, "warnings", len(font.Warnings))
	img.opts.debug.Emit("font", "Load", debug.FontLoadData{
		Source:   path,
		Format:   font.Format,
		Glyphs:   len(font.font.Glyphs),
		Cached:   cached,
		Warnings: font.Warnings,
	})
	return font, nil
}

// shape traces a drawing call.
func (img *Image) shape(kind string, c Color, filled bool, points ...int) {
	if img.opts.debug == nil {
		return
	}
	img.opts.debug.Emit("draw", "Shape", debug.ShapeData{
		Kind:   kind,
		Points: points,
		Color:  c.String(),
		Filled: filled,
	})
}

// WriteTo writes the image as a BMP file to w.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	return img.encode(w, "writer")
}

// Bytes returns the image encoded as a BMP file.
func (img *Image) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(bmp.NewLayout(img.Width(), img.Height()).FileSize)
	//nolint:errcheck // bytes.Buffer writes do not fail
	img.encode(&buf, "memory")
	return buf.Bytes()
}

// SaveFile writes the image to name with ".bmp" appended. If the file cannot
// be created nothing is written and the error is returned; the image stays
// usable either way.
func (img *Image) SaveFile(name string) error {
	filename := name + ".bmp"
	file, err := os.Create(filename)
	if err != nil {
		img.opts.logger.Warn("save failed", "file", filename, "err", err)
		return fmt.Errorf("failed to create image file: %w", err)
	}

	_, err = img.encode(file, filename)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		img.opts.logger.Warn("save failed", "file", filename, "err", err)
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

func (img *Image) encode(w io.Writer, target string) (int64, error) {
	layout := bmp.NewLayout(img.Width(), img.Height())
	session := img.opts.debug

	var start time.Time
	if session != nil {
		start = time.Now()
		session.Emit("encode", "Header", debug.EncodeHeaderData{
			Width:         layout.Width,
			Height:        layout.Height,
			Padding:       layout.Padding,
			Stride:        layout.Stride,
			PixelDataSize: layout.PixelDataSize,
			FileSize:      layout.FileSize,
		})
	}

	cw := &countingWriter{w: w}
	err := bmp.Encode(cw, img.canvas)

	if session != nil {
		session.Emit("encode", "Done", debug.EncodeDoneData{
			Target:       target,
			BytesWritten: cw.n,
			ElapsedUs:    time.Since(start).Microseconds(),
		})
	}
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// ColorModel implements image.Image.
func (img *Image) ColorModel() color.Model {
	return ColorModel
}

// Bounds implements image.Image.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width(), img.Height())
}

// At implements image.Image. Points outside the image are black.
func (img *Image) At(x, y int) color.Color {
	return img.RGBAt(x, y)
}

// RGBAt returns the colour at (x, y), or black outside the image.
func (img *Image) RGBAt(x, y int) Color {
	c, _ := img.canvas.At(x, y)
	return Color{R: c.R, G: c.G, B: c.B}
}

var (
	_ image.Image = (*Image)(nil)
	_ io.WriterTo = (*Image)(nil)
)
