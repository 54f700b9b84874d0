package bmpkit

import (
	"archive/zip"
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ryanlewis/bmpkit/internal/parser"
)

// Font formats reported by Font.Format.
const (
	FormatPacked = "packed"
	FormatAtlas  = "atlas"
)

// ZIP signatures: a local file header, or the end of central directory
// record that starts an archive with no entries.
var (
	zipMagic      = []byte("PK\x03\x04")
	zipEmptyMagic = []byte("PK\x05\x06")
)

// maxArchiveSize bounds how much of a compressed font is read into memory.
const maxArchiveSize = 1 << 20

// Font is an immutable decoded 8×8 bitmap font. It is safe to share between
// images and goroutines.
type Font struct {
	font *parser.Font

	// Name is the file name without extension, or empty for fonts parsed
	// from a reader
	Name string

	// Format is FormatPacked or FormatAtlas
	Format string

	// Warnings lists non-fatal issues found while decoding
	Warnings []string
}

func newFont(pf *parser.Font, format string) *Font {
	return &Font{font: pf, Format: format, Warnings: pf.Warnings}
}

// Width returns the cropped width in pixels of the glyph for code, or 0 for
// codes outside 0–127.
func (f *Font) Width(code int) int {
	if f == nil || f.font == nil {
		return 0
	}
	return f.font.Width(code)
}

// Glyph returns the cropped columns of code, left to right, where bit r of a
// column is row r. The returned slice must not be modified.
func (f *Font) Glyph(code int) ([]byte, bool) {
	if f == nil || f.font == nil {
		return nil, false
	}
	g, ok := f.font.Glyph(code)
	if !ok {
		return nil, false
	}
	return g.Columns, true
}

// Pack returns the font in the packed 1024-byte format.
func (f *Font) Pack() []byte {
	return f.font.Pack()
}

// ParseFont reads a packed font: 128 glyphs of 8 row bytes each, bit 7 of a
// row being the leftmost column. A ZIP archive is also accepted, in which
// case its first file entry is decoded.
//
// Example:
//
//	file, err := os.Open("font.fnt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	font, err := bmpkit.ParseFont(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
func ParseFont(r io.Reader) (*Font, error) {
	br := bufio.NewReader(r)
	if isZip(br) {
		return parseZipFont(br)
	}

	pf, err := parser.Parse(br)
	if err != nil {
		return nil, err
	}
	return newFont(pf, FormatPacked), nil
}

// ParseFontBytes is ParseFont over an in-memory font.
func ParseFontBytes(data []byte) (*Font, error) {
	return ParseFont(bytes.NewReader(data))
}

// isZip reports whether br starts with the ZIP magic without consuming it.
func isZip(br *bufio.Reader) bool {
	magic, err := br.Peek(len(zipMagic))
	if err != nil {
		return false
	}
	return bytes.Equal(magic, zipMagic) || bytes.Equal(magic, zipEmptyMagic)
}

// parseZipFont decodes the first file entry of a ZIP archive as a packed
// font. Directory entries are skipped.
func parseZipFont(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxArchiveSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading font archive: %w", err)
	}
	if len(data) > maxArchiveSize {
		return nil, fmt.Errorf("%w: archive larger than %d bytes", ErrBadFontFormat, maxArchiveSize)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadFontFormat, err)
	}

	var entry *zip.File
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() {
			entry = f
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: empty archive", ErrBadFontFormat)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrBadFontFormat, entry.Name, err)
	}
	defer rc.Close()

	pf, err := parser.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("archive entry %s: %w", entry.Name, err)
	}
	return newFont(pf, FormatPacked), nil
}

// LoadFont loads a packed font from the operating system's filesystem.
func LoadFont(path string) (*Font, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w", err)
	}
	defer file.Close()

	font, err := ParseFont(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}

	base := filepath.Base(path)
	font.Name = strings.TrimSuffix(base, filepath.Ext(base))
	return font, nil
}

// cleanFSPath validates and cleans a path for use with fs.FS.
// It ensures the path is valid according to fs.ValidPath rules and
// prevents directory traversal.
func cleanFSPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	if strings.HasPrefix(p, "/") {
		return "", errors.New("absolute paths not allowed")
	}
	if strings.ContainsRune(p, '\\') {
		return "", errors.New("backslashes not allowed in fs paths")
	}
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid fs path: %s", p)
	}
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", errors.New("path traversal not allowed")
	}
	return clean, nil
}

// LoadFontFS loads a packed font from fsys. Path traversal (e.g. "../") is
// rejected.
//
// Example with os.DirFS:
//
//	fontsDir := os.DirFS("/usr/share/bmpkit")
//	font, err := bmpkit.LoadFontFS(fontsDir, "basic.fnt")
//	if err != nil {
//	    log.Fatal(err)
//	}
func LoadFontFS(fsys fs.FS, fontPath string) (*Font, error) {
	if fsys == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}

	clean, err := cleanFSPath(fontPath)
	if err != nil {
		return nil, err
	}

	file, err := fsys.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w", err)
	}
	defer file.Close()

	if info, err := file.Stat(); err == nil && info.IsDir() {
		return nil, fmt.Errorf("failed to open font file: %s is a directory", clean)
	}

	font, err := ParseFont(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", clean, err)
	}

	font.Name = strings.TrimSuffix(path.Base(clean), path.Ext(clean))
	return font, nil
}

// ParseAtlas decodes a font drawn as a BMP glyph atlas: 8×8 cells numbered
// left to right then top to bottom, cell n holding code n. remap overrides
// the cell of individual codes; a negative cell leaves the glyph blank.
func ParseAtlas(r io.Reader, remap map[int]int) (*Font, error) {
	pf, err := parser.ParseAtlas(r, &parser.AtlasOptions{Remap: remap})
	if err != nil {
		return nil, err
	}
	return newFont(pf, FormatAtlas), nil
}

// LoadAtlas loads a BMP glyph atlas from the operating system's filesystem.
func LoadAtlas(path string, remap map[int]int) (*Font, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open atlas: %w", err)
	}
	defer file.Close()

	font, err := ParseAtlas(file, remap)
	if err != nil {
		return nil, fmt.Errorf("failed to parse atlas %s: %w", path, err)
	}

	base := filepath.Base(path)
	font.Name = strings.TrimSuffix(base, filepath.Ext(base))
	return font, nil
}
