package bmpkit

import (
	"image/color"
	"io/fs"
	"log/slog"

	"github.com/ryanlewis/bmpkit/internal/common"
	"github.com/ryanlewis/bmpkit/internal/debug"
	"github.com/ryanlewis/bmpkit/internal/raster"
)

// Color is a 24-bit RGB colour. It implements color.Color as a fully opaque
// colour.
type Color struct {
	R, G, B uint8
}

// RGB returns the colour with each channel clamped to [0, 255].
func RGB(r, g, b int) Color {
	return Color{R: raster.Clamp(r), G: raster.Clamp(g), B: raster.Clamp(b)}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// String returns the colour as #rrggbb.
func (c Color) String() string {
	return debug.FormatColor(c.R, c.G, c.B)
}

func (c Color) raster() raster.RGB {
	return raster.RGB{R: c.R, G: c.G, B: c.B}
}

// ColorModel converts any colour to a Color. Alpha is dropped and
// translucent colours keep their premultiplied channels.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
})

// Common errors returned by the bmpkit package
var (
	// ErrBadFontFormat is returned when font data is truncated or malformed
	ErrBadFontFormat = common.ErrBadFontFormat

	// ErrNoFont is returned when an image has no usable font source
	ErrNoFont = common.ErrNoFont

	// ErrInvalidScene is returned when a scene description cannot be applied
	ErrInvalidScene = common.ErrInvalidScene

	// ErrBadColor is returned when a colour string cannot be parsed
	ErrBadColor = common.ErrBadColor
)

// DefaultFontPath is the font file an image loads on its first DrawText when
// no other font source was configured.
const DefaultFontPath = "font.fnt"

// Option configures an Image.
type Option func(*options)

type options struct {
	font     *Font
	fontPath string
	fontFS   fs.FS
	cache    *FontCache
	logger   *slog.Logger
	debug    *debug.Session
}

func defaultOptions() *options {
	return &options{
		fontPath: DefaultFontPath,
		logger:   newNopLogger(),
	}
}

// WithFont uses an already decoded font. No font file is read.
func WithFont(f *Font) Option {
	return func(opts *options) {
		opts.font = f
	}
}

// WithFontFile sets the path the font is lazily loaded from on the first
// DrawText. The default is DefaultFontPath in the working directory.
func WithFontFile(path string) Option {
	return func(opts *options) {
		opts.fontPath = path
	}
}

// WithFontFS loads the font from fsys instead of the operating system's
// filesystem. The path follows fs.ValidPath rules; traversal is rejected.
//
// Example with embed.FS:
//
//	//go:embed fonts/*.fnt
//	var fonts embed.FS
//
//	img := bmpkit.New(100, 100, bmpkit.WithFontFS(fonts, "fonts/basic.fnt"))
func WithFontFS(fsys fs.FS, path string) Option {
	return func(opts *options) {
		opts.fontFS = fsys
		opts.fontPath = path
	}
}

// WithFontCache shares decoded fonts loaded from disk through c. Images
// created with the same cache decode each font file once.
func WithFontCache(c *FontCache) Option {
	return func(opts *options) {
		opts.cache = c
	}
}

// WithLogger sets the logger used for font and save failures. By default an
// image logs nothing. Pass nil to keep the silent default.
//
// Log levels used by bmpkit:
//   - [slog.LevelDebug]: font loads
//   - [slog.LevelWarn]: font load and save failures
func WithLogger(l *slog.Logger) Option {
	return func(opts *options) {
		if l != nil {
			opts.logger = l
		}
	}
}

// WithDebug attaches a debug session. Every drawing, layout and encoding step
// of the image is traced to it. A nil session disables tracing.
func WithDebug(s *debug.Session) Option {
	return func(opts *options) {
		opts.debug = s
	}
}
