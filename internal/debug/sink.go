package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	fmt.Fprintf(s.w, "[%s] #%d [%s/%s] session=%s\n",
		event.Timestamp, event.Seq, event.Phase, event.Event, event.SessionID)

	switch d := event.Data.(type) {
	case FontLoadData:
		s.writeFontLoad(d)
	case ErrorData:
		s.writeError(d)
	case RenderStartData:
		s.writeRenderStart(d)
	case TokenData:
		s.writeToken(d)
	case WrapData:
		s.writeWrap(d)
	case GlyphData:
		s.writeGlyph(d)
	case RenderEndData:
		s.writeRenderEnd(d)
	case ShapeData:
		s.writeShape(d)
	case EncodeHeaderData:
		s.writeEncodeHeader(d)
	case EncodeDoneData:
		fmt.Fprintf(s.w, "  target: %s, bytes: %d, elapsed_us: %d\n", d.Target, d.BytesWritten, d.ElapsedUs)
	case SceneOpData:
		fmt.Fprintf(s.w, "  op %d: %s %s\n", d.Index, d.Op, d.Color)
	case map[string]interface{}:
		s.writeMap(d)
	case map[string]int64:
		s.writeMapInt64(d)
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeFontLoad(d FontLoadData) {
	fmt.Fprintf(s.w, "  source: %s (%s), glyphs: %d, cached: %t\n", d.Source, d.Format, d.Glyphs, d.Cached)
	for _, w := range d.Warnings {
		fmt.Fprintf(s.w, "  warning: %s\n", w)
	}
}

func (s *PrettySink) writeError(d ErrorData) {
	fmt.Fprintf(s.w, "  %s: %s\n", d.Type, d.Message)
	if len(d.Context) > 0 {
		s.writeMap(d.Context)
	}
}

func (s *PrettySink) writeRenderStart(d RenderStartData) {
	fmt.Fprintf(s.w, "  text: %q (length: %d)\n", d.Text, d.TextLength)
	fmt.Fprintf(s.w, "  origin: (%d,%d), scale: %d, wrap: %t\n", d.X, d.Y, d.Scale, d.Wrap)
	fmt.Fprintf(s.w, "  color: %s, canvas_width: %d\n", d.Color, d.CanvasWidth)
}

func (s *PrettySink) writeToken(d TokenData) {
	fmt.Fprintf(s.w, "  token %d: %s %q width=%d at (%d,%d)\n",
		d.Index, d.Kind, d.Text, d.Width, d.CurX, d.CurY)
}

func (s *PrettySink) writeWrap(d WrapData) {
	fmt.Fprintf(s.w, "  reason: %s, token: %d\n", d.Reason, d.TokenIndex)
	fmt.Fprintf(s.w, "  cursor: (%d,%d) → y=%d\n", d.FromX, d.FromY, d.ToY)
	if d.TokenWidth > 0 {
		fmt.Fprintf(s.w, "  token_width: %d\n", d.TokenWidth)
	}
}

func (s *PrettySink) writeGlyph(d GlyphData) {
	fmt.Fprintf(s.w, "  index: %d, code: %s, width: %d, at: (%d,%d)\n",
		d.Index, codeStr(d.Code), d.Width, d.X, d.Y)
	if d.Skipped != "" {
		fmt.Fprintf(s.w, "  skipped: %s\n", d.Skipped)
	}
}

func (s *PrettySink) writeRenderEnd(d RenderEndData) {
	fmt.Fprintf(s.w, "  tokens: %d, glyphs: %d, skipped: %d\n", d.Tokens, d.Glyphs, d.Skipped)
	fmt.Fprintf(s.w, "  lines: %d, wraps: %d, end: (%d,%d)\n", d.Lines, d.Wraps, d.EndX, d.EndY)
	fmt.Fprintf(s.w, "  elapsed_us: %d\n", d.ElapsedUs)
}

func (s *PrettySink) writeShape(d ShapeData) {
	fmt.Fprintf(s.w, "  %s %v color=%s", d.Kind, d.Points, d.Color)
	if d.Filled {
		fmt.Fprint(s.w, " filled")
	}
	fmt.Fprintln(s.w)
}

func (s *PrettySink) writeEncodeHeader(d EncodeHeaderData) {
	fmt.Fprintf(s.w, "  size: %dx%d, padding: %d, stride: %d\n", d.Width, d.Height, d.Padding, d.Stride)
	fmt.Fprintf(s.w, "  pixel_data: %d, file_size: %d\n", d.PixelDataSize, d.FileSize)
}

func (s *PrettySink) writeMap(d map[string]interface{}) {
	for _, k := range sortedKeys(d) {
		fmt.Fprintf(s.w, "  %s: %v\n", k, d[k])
	}
}

func (s *PrettySink) writeMapInt64(d map[string]int64) {
	for _, k := range sortedKeys(d) {
		fmt.Fprintf(s.w, "  %s: %d\n", k, d[k])
	}
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
