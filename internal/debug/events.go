package debug

// FontLoadData describes a font that was decoded for an image.
type FontLoadData struct {
	Source   string   `json:"source"`
	Format   string   `json:"format"` // "packed", "atlas"
	Glyphs   int      `json:"glyphs"`
	Cached   bool     `json:"cached"`
	Warnings []string `json:"warnings,omitempty"`
}

// ErrorData contains error information.
type ErrorData struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// RenderStartData contains information about the start of a text render.
type RenderStartData struct {
	Text        string `json:"text"`
	TextLength  int    `json:"text_length"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Scale       int    `json:"scale"`
	Wrap        bool   `json:"wrap"`
	Color       string `json:"color"`
	CanvasWidth int    `json:"canvas_width"`
}

// TokenData describes one token before it is placed.
type TokenData struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"` // "word", "space", "newline"
	Text  string `json:"text"`
	Width int    `json:"width"`
	CurX  int    `json:"cur_x"`
	CurY  int    `json:"cur_y"`
}

// WrapData contains information about a line break.
type WrapData struct {
	Reason     string `json:"reason"` // "width", "newline"
	TokenIndex int    `json:"token_index"`
	FromX      int    `json:"from_x"`
	FromY      int    `json:"from_y"`
	ToY        int    `json:"to_y"`
	TokenWidth int    `json:"token_width,omitempty"`
}

// GlyphData contains information about a placed or skipped glyph.
type GlyphData struct {
	Index   int    `json:"index"`
	Code    int    `json:"code"`
	Width   int    `json:"width"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Skipped string `json:"skipped,omitempty"` // "out_of_range", "leading_space"
}

// RenderEndData contains information about the end of a text render.
type RenderEndData struct {
	Tokens    int   `json:"tokens"`
	Glyphs    int   `json:"glyphs"`
	Skipped   int   `json:"skipped"`
	Lines     int   `json:"lines"`
	Wraps     int   `json:"wraps"`
	EndX      int   `json:"end_x"`
	EndY      int   `json:"end_y"`
	ElapsedUs int64 `json:"elapsed_us"`
}

// ShapeData describes a drawn primitive.
type ShapeData struct {
	Kind   string `json:"kind"` // "pixel", "rect", "line", "circle", "fill"
	Points []int  `json:"points"`
	Color  string `json:"color"`
	Filled bool   `json:"filled,omitempty"`
}

// EncodeHeaderData contains the derived BMP layout.
type EncodeHeaderData struct {
	Width         int `json:"width"`
	Height        int `json:"height"`
	Padding       int `json:"padding"`
	Stride        int `json:"stride"`
	PixelDataSize int `json:"pixel_data_size"`
	FileSize      int `json:"file_size"`
}

// EncodeDoneData contains information about a completed encode.
type EncodeDoneData struct {
	Target       string `json:"target"`
	BytesWritten int64  `json:"bytes_written"`
	ElapsedUs    int64  `json:"elapsed_us"`
}

// SceneOpData describes one operation of a scene file.
type SceneOpData struct {
	Index int    `json:"index"`
	Op    string `json:"op"`
	Color string `json:"color,omitempty"`
}
