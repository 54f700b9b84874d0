package bmpkit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/bmpkit/internal/debug"
)

// Scene operation names.
const (
	OpPixel  = "pixel"
	OpRect   = "rect"
	OpLine   = "line"
	OpCircle = "circle"
	OpText   = "text"
)

// opPoints is the number of coordinates each operation takes.
var opPoints = map[string]int{
	OpPixel:  2, // x, y
	OpRect:   4, // x0, y0, x1, y1
	OpLine:   4, // x0, y0, x1, y1
	OpCircle: 3, // cx, cy, radius
	OpText:   2, // x, y
}

// Scene is a declarative image: a canvas size, an optional background and an
// ordered list of drawing operations. Scenes are usually read from YAML:
//
//	name: example
//	width: 100
//	height: 100
//	background: red
//	font: font.fnt
//	ops:
//	  - op: rect
//	    points: [10, 10, 90, 90]
//	    color: [0, 255, 0]
//	    filled: true
//	  - op: text
//	    points: [10, 10]
//	    text: "Hello,\nBMP world!"
//	    color: black
//	    wrap: true
//
// Unknown keys are ignored.
type Scene struct {
	Name       string      `yaml:"name,omitempty"`
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	Background *Color      `yaml:"background,omitempty"`
	Font       string      `yaml:"font,omitempty"`
	Atlas      string      `yaml:"atlas,omitempty"`
	Remap      map[int]int `yaml:"remap,omitempty"`
	Ops        []Op        `yaml:"ops"`

	// dir resolves relative font paths; set by LoadScene
	dir string
}

// Op is one drawing operation of a scene.
type Op struct {
	Op     string `yaml:"op"`
	Points []int  `yaml:"points,flow"`
	Color  Color  `yaml:"color"`
	Filled bool   `yaml:"filled,omitempty"`
	Text   string `yaml:"text,omitempty"`
	Scale  int    `yaml:"scale,omitempty"`
	Wrap   bool   `yaml:"wrap,omitempty"`

	// Fold passes the text through FoldASCII before drawing
	Fold bool `yaml:"fold,omitempty"`
}

// UnmarshalYAML accepts any form ParseColor does, or a sequence of three
// channel values which are clamped to [0, 255].
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseColor(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*c = parsed
		return nil
	case yaml.SequenceNode:
		var ch []int
		if err := value.Decode(&ch); err != nil {
			return fmt.Errorf("line %d: %w: %w", value.Line, ErrBadColor, err)
		}
		if len(ch) != 3 {
			return fmt.Errorf("line %d: %w: want 3 channels, got %d", value.Line, ErrBadColor, len(ch))
		}
		*c = RGB(ch[0], ch[1], ch[2])
		return nil
	default:
		return fmt.Errorf("line %d: %w: expected a string or a sequence", value.Line, ErrBadColor)
	}
}

// MarshalYAML writes the colour as #rrggbb.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// ParseScene decodes and validates a YAML scene.
func ParseScene(r io.Reader) (*Scene, error) {
	var s Scene
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty scene", ErrInvalidScene)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScene reads a scene file. Relative font and atlas paths in the scene
// are resolved against the file's directory.
func LoadScene(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return s, nil
}

// Validate checks every operation's name and coordinate count.
func (s *Scene) Validate() error {
	for i, op := range s.Ops {
		want, ok := opPoints[op.Op]
		if !ok {
			return fmt.Errorf("%w: op %d: unknown operation %q", ErrInvalidScene, i, op.Op)
		}
		if len(op.Points) != want {
			return fmt.Errorf("%w: op %d (%s): want %d points, got %d", ErrInvalidScene, i, op.Op, want, len(op.Points))
		}
	}
	if s.Font != "" && s.Atlas != "" {
		return fmt.Errorf("%w: font and atlas are mutually exclusive", ErrInvalidScene)
	}
	return nil
}

// hasText reports whether any operation draws text.
func (s *Scene) hasText() bool {
	for _, op := range s.Ops {
		if op.Op == OpText {
			return true
		}
	}
	return false
}

func (s *Scene) resolve(p string) string {
	if s.dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.dir, p)
}

// Render draws the scene onto a new image. The scene's font settings are
// applied first, so caller options such as WithFont take precedence. Unlike
// Image.DrawText, a scene with text fails when its font cannot be loaded.
func (s *Scene) Render(opts ...Option) (*Image, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var base []Option
	switch {
	case s.Atlas != "":
		font, err := LoadAtlas(s.resolve(s.Atlas), s.Remap)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", s.Name, err)
		}
		base = append(base, WithFont(font))
	case s.Font != "":
		base = append(base, WithFontFile(s.resolve(s.Font)))
	}

	img := New(s.Width, s.Height, append(base, opts...)...)

	if s.hasText() {
		if _, err := img.Font(); err != nil {
			return nil, fmt.Errorf("scene %s: %w", s.Name, err)
		}
	}

	if s.Background != nil {
		img.SetDefaultPixel(*s.Background)
	}

	for i, op := range s.Ops {
		if session := img.opts.debug; session != nil {
			session.Emit("scene", "Op", debug.SceneOpData{
				Index: i,
				Op:    op.Op,
				Color: op.Color.String(),
			})
		}
		img.apply(op)
	}
	return img, nil
}

// apply draws one validated operation.
func (img *Image) apply(op Op) {
	p := op.Points
	switch op.Op {
	case OpPixel:
		img.SetPixel(p[0], p[1], op.Color)
	case OpRect:
		img.DrawRectangle(p[0], p[1], p[2], p[3], op.Color, op.Filled)
	case OpLine:
		img.DrawLine(p[0], p[1], p[2], p[3], op.Color)
	case OpCircle:
		img.DrawCircle(p[0], p[1], p[2], op.Color, op.Filled)
	case OpText:
		text := op.Text
		if op.Fold {
			text = FoldASCII(text)
		}
		img.DrawText(p[0], p[1], text, op.Color, op.Scale, op.Wrap)
	}
}
