// Package bmp encodes RGB pixel rows as an uncompressed 24-bit Windows bitmap
// (BITMAPFILEHEADER + BITMAPINFOHEADER, bottom-up BGR rows padded to 4 bytes).
package bmp

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// FileHeaderSize is the size of BITMAPFILEHEADER
	FileHeaderSize = 14
	// InfoHeaderSize is the size of BITMAPINFOHEADER
	InfoHeaderSize = 40
	// PixelDataOffset is where pixel data starts in the file
	PixelDataOffset = FileHeaderSize + InfoHeaderSize

	bitsPerPixel  = 24
	bytesPerPixel = bitsPerPixel / 8
	colorPlanes   = 1
	compression   = 0 // BI_RGB
	// resolution is 72 DPI expressed in pixels per metre
	resolution      = 2835
	colorsUsed      = 0
	importantColors = 0
)

// Source is a top-down RGB pixel source. Row(y) must return Width()*3 bytes.
type Source interface {
	Width() int
	Height() int
	Row(y int) []byte
}

// Layout holds the size arithmetic of a 24-bit bitmap of a given size.
type Layout struct {
	Width         int
	Height        int
	Padding       int // zero bytes appended to every row
	Stride        int // bytes per row including padding
	PixelDataSize int
	FileSize      int
}

// NewLayout derives the row padding, stride and file sizes for width×height.
func NewLayout(width, height int) Layout {
	padding := (4 - (width*bytesPerPixel)%4) % 4
	stride := width*bytesPerPixel + padding
	dataSize := stride * height
	return Layout{
		Width:         width,
		Height:        height,
		Padding:       padding,
		Stride:        stride,
		PixelDataSize: dataSize,
		FileSize:      PixelDataOffset + dataSize,
	}
}

// PutUint32LE writes v at b[off:off+4] in little-endian order.
func PutUint32LE(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// putUint16LE writes v at b[off:off+2] in little-endian order.
func putUint16LE(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

// Header returns the file header followed by the info header.
func (l Layout) Header() [PixelDataOffset]byte {
	var h [PixelDataOffset]byte

	// BITMAPFILEHEADER
	h[0] = 'B'
	h[1] = 'M'
	PutUint32LE(h[:], 2, uint32(l.FileSize))
	PutUint32LE(h[:], 10, PixelDataOffset)

	// BITMAPINFOHEADER
	info := h[FileHeaderSize:]
	PutUint32LE(info, 0, InfoHeaderSize)
	PutUint32LE(info, 4, uint32(l.Width))
	PutUint32LE(info, 8, uint32(l.Height))
	putUint16LE(info, 12, colorPlanes)
	putUint16LE(info, 14, bitsPerPixel)
	PutUint32LE(info, 16, compression)
	PutUint32LE(info, 20, uint32(l.PixelDataSize))
	PutUint32LE(info, 24, resolution)
	PutUint32LE(info, 28, resolution)
	PutUint32LE(info, 32, colorsUsed)
	PutUint32LE(info, 36, importantColors)

	return h
}

// Encode writes src to w as a 24-bit bitmap: headers, then rows from the
// bottom of the image up, with channels swapped to BGR.
func Encode(w io.Writer, src Source) error {
	l := NewLayout(src.Width(), src.Height())
	bw := bufio.NewWriter(w)

	h := l.Header()
	if _, err := bw.Write(h[:]); err != nil {
		return fmt.Errorf("writing bitmap header: %w", err)
	}

	row := acquireRow(l.Stride)
	defer releaseRow(row)

	for y := l.Height - 1; y >= 0; y-- {
		encodeRow(row, src.Row(y), l.Width)
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("writing bitmap row %d: %w", y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing bitmap: %w", err)
	}
	return nil
}

// encodeRow converts one RGB row into a BGR row. Padding bytes in dst are
// left zero.
func encodeRow(dst, rgb []byte, width int) {
	for x := 0; x < width; x++ {
		i := x * bytesPerPixel
		dst[i+0] = rgb[i+2]
		dst[i+1] = rgb[i+1]
		dst[i+2] = rgb[i+0]
	}
}
