// Command bmpkit draws text or a YAML scene into a 24-bit BMP file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/ryanlewis/bmpkit"
	"github.com/ryanlewis/bmpkit/internal/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// stdoutName selects standard output as the destination.
const stdoutName = "-"

var errTerminal = errors.New("refusing to write a binary image to a terminal; use -o to name a file")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// colorValue adapts a bmpkit.Color to pflag.Value.
type colorValue struct {
	c *bmpkit.Color
}

func (v colorValue) String() string {
	if v.c == nil {
		return ""
	}
	return v.c.String()
}

func (v colorValue) Set(s string) error {
	c, err := bmpkit.ParseColor(s)
	if err != nil {
		return err
	}
	*v.c = c
	return nil
}

func (v colorValue) Type() string {
	return "color"
}

type config struct {
	width, height int
	fontPath      string
	atlasPath     string
	output        string
	background    bmpkit.Color
	color         bmpkit.Color
	x, y          int
	scale         int
	wrap          bool
	fold          bool
	scenePath     string
	debugMode     bool
	debugFile     string
	debugPretty   bool
	verbose       bool
	showVersion   bool
	showHelp      bool
}

func newFlagSet(cfg *config) *pflag.FlagSet {
	cfg.background = bmpkit.White
	cfg.color = bmpkit.Black

	fs := pflag.NewFlagSet("bmpkit", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.IntVarP(&cfg.width, "width", "W", 100, "Image width in pixels")
	fs.IntVarP(&cfg.height, "height", "H", 100, "Image height in pixels")
	fs.StringVarP(&cfg.fontPath, "font", "f", bmpkit.DefaultFontPath, "Path to a packed 8x8 font (.fnt, optionally zipped)")
	fs.StringVar(&cfg.atlasPath, "atlas", "", "Path to a BMP glyph atlas used instead of --font")
	fs.StringVarP(&cfg.output, "output", "o", "output_image", `Output name, ".bmp" is appended; "-" writes to stdout`)
	fs.VarP(colorValue{&cfg.background}, "background", "b", "Background colour (name, #rrggbb or r,g,b)")
	fs.VarP(colorValue{&cfg.color}, "color", "c", "Text colour")
	fs.IntVar(&cfg.x, "x", 0, "Left edge of the text")
	fs.IntVar(&cfg.y, "y", 0, "Top edge of the text")
	fs.IntVarP(&cfg.scale, "scale", "s", 1, "Pixel size of one glyph cell")
	fs.BoolVar(&cfg.wrap, "wrap", true, "Wrap words at the right edge of the image")
	fs.BoolVar(&cfg.fold, "fold", false, "Strip accents and replace other non-ASCII characters with '?'")
	fs.StringVar(&cfg.scenePath, "scene", "", "Draw a YAML scene file; text arguments are drawn on top")
	fs.BoolVar(&cfg.debugMode, "debug", false, "Enable debug mode (outputs to stderr)")
	fs.StringVar(&cfg.debugFile, "debug-file", "", "Write debug output to file instead of stderr")
	fs.BoolVar(&cfg.debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON)")
	fs.BoolVar(&cfg.verbose, "verbose", false, "Log font loading and saving to stderr")
	fs.BoolVarP(&cfg.showVersion, "version", "v", false, "Show version information")
	fs.BoolVarP(&cfg.showHelp, "help", "h", false, "Show help message")
	return fs
}

func run(args []string, stdout, stderr io.Writer) int {
	var cfg config
	fs := newFlagSet(&cfg)
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if cfg.showHelp {
		printHelp(stdout, fs)
		return 0
	}

	if cfg.showVersion {
		fmt.Fprintf(stdout, "bmpkit version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	text := strings.Join(fs.Args(), " ")
	if text == "" && cfg.scenePath == "" {
		fmt.Fprintln(stderr, "Error: no text or scene provided")
		printHelp(stderr, fs)
		return 1
	}

	var opts []bmpkit.Option
	if cfg.verbose {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, bmpkit.WithLogger(logger))
	}

	// Setup debug if enabled
	pretty := debug.InitFromEnv()
	if cfg.debugMode || cfg.debugFile != "" {
		debug.SetEnabled(true)
	}
	if debug.Enabled() {
		var output io.Writer = stderr
		if cfg.debugFile != "" {
			file, err := os.Create(cfg.debugFile)
			if err != nil {
				fmt.Fprintf(stderr, "Error creating debug file: %v\n", err)
				return 1
			}
			defer file.Close()
			output = file
		}

		var sink debug.Sink
		if cfg.debugPretty || pretty {
			sink = debug.NewPrettySink(output)
		} else {
			sink = debug.NewJSONSink(output)
		}

		if session := debug.NewSession(sink); session != nil {
			defer session.Close()
			opts = append(opts, bmpkit.WithDebug(session))
		}
	}

	fontOpt, err := fontOption(&cfg, fs)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading font: %v\n", err)
		return 1
	}
	if fontOpt != nil {
		opts = append(opts, fontOpt)
	}

	img, err := build(&cfg, text, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := write(img, cfg.output, stdout); err != nil {
		fmt.Fprintf(stderr, "Error writing image: %v\n", err)
		return 1
	}
	return 0
}

// fontOption turns the font flags into an image option. In scene mode the
// scene's own font is kept unless a font flag was given explicitly.
func fontOption(cfg *config, fs *pflag.FlagSet) (bmpkit.Option, error) {
	if cfg.atlasPath != "" {
		font, err := bmpkit.LoadAtlas(cfg.atlasPath, nil)
		if err != nil {
			return nil, err
		}
		return bmpkit.WithFont(font), nil
	}
	if cfg.scenePath != "" && !fs.Changed("font") {
		return nil, nil
	}
	return bmpkit.WithFontFile(cfg.fontPath), nil
}

// build draws the scene, if any, then the text.
func build(cfg *config, text string, opts []bmpkit.Option) (*bmpkit.Image, error) {
	var img *bmpkit.Image
	if cfg.scenePath != "" {
		scene, err := bmpkit.LoadScene(cfg.scenePath)
		if err != nil {
			return nil, err
		}
		img, err = scene.Render(opts...)
		if err != nil {
			return nil, err
		}
	} else {
		img = bmpkit.New(cfg.width, cfg.height, opts...)
		img.SetDefaultPixel(cfg.background)
	}

	if text == "" {
		return img, nil
	}

	// Surface font errors here; DrawText itself would skip silently
	if _, err := img.Font(); err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	if cfg.fold {
		text = bmpkit.FoldASCII(text)
	}
	img.DrawText(cfg.x, cfg.y, unescape(text), cfg.color, cfg.scale, cfg.wrap)
	return img, nil
}

// unescape turns the two-character sequence \n into a newline so multi-line
// text can be passed as one argument.
func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func write(img *bmpkit.Image, output string, stdout io.Writer) error {
	if output != stdoutName {
		return img.SaveFile(strings.TrimSuffix(output, ".bmp"))
	}

	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return errTerminal
	}
	_, err := img.WriteTo(stdout)
	return err
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "bmpkit - bitmap text and shapes to BMP")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  bmpkit [flags] <text>")
	fmt.Fprintln(w, "  bmpkit --scene scene.yaml [flags] [text]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Colours:")
	fmt.Fprintln(w, "  Name:    -c cornflowerblue")
	fmt.Fprintln(w, "  Hex:     -c '#f80' or -c '#ff8800'")
	fmt.Fprintln(w, "  Decimal: -c 255,136,0")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Text may contain \n for a line break.`)
}
