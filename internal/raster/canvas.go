// Package raster implements the RGB pixel buffer and the integer
// rasterization primitives drawn onto it.
package raster

import "github.com/ryanlewis/bmpkit/internal/common"

// bytesPerPixel is the stored size of one pixel (R, G, B)
const bytesPerPixel = 3

// RGB is a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// White is the initial colour of every canvas pixel.
var White = RGB{R: 255, G: 255, B: 255}

// Canvas is a fixed-size RGB pixel grid with a top-left origin.
// Pixels are stored row-major, 3 bytes per pixel.
type Canvas struct {
	width  int
	height int
	pix    []uint8
}

// New creates a canvas filled with white. A non-positive width or height
// yields the fallback canvas size instead of an error.
func New(width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		width = common.FallbackWidth
		height = common.FallbackHeight
	}

	c := &Canvas{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*bytesPerPixel),
	}
	c.Fill(White)
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// inBounds reports whether (x, y) addresses a pixel of the canvas.
func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Set writes one pixel. Coordinates outside the canvas are ignored.
func (c *Canvas) Set(x, y int, col RGB) {
	if !c.inBounds(x, y) {
		return
	}
	i := (y*c.width + x) * bytesPerPixel
	c.pix[i+0] = col.R
	c.pix[i+1] = col.G
	c.pix[i+2] = col.B
}

// At returns the pixel at (x, y) and whether the point lies on the canvas.
func (c *Canvas) At(x, y int) (RGB, bool) {
	if !c.inBounds(x, y) {
		return RGB{}, false
	}
	i := (y*c.width + x) * bytesPerPixel
	return RGB{R: c.pix[i+0], G: c.pix[i+1], B: c.pix[i+2]}, true
}

// Fill overwrites every pixel with col.
func (c *Canvas) Fill(col RGB) {
	for i := 0; i < len(c.pix); i += bytesPerPixel {
		c.pix[i+0] = col.R
		c.pix[i+1] = col.G
		c.pix[i+2] = col.B
	}
}

// Row returns the RGB bytes of row y, top row first.
// The returned slice aliases the canvas and must not be retained.
func (c *Canvas) Row(y int) []uint8 {
	stride := c.width * bytesPerPixel
	return c.pix[y*stride : (y+1)*stride]
}

// Clamp converts an integer channel value to a byte, clamping to [0, 255].
func Clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
