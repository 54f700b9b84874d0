// Command generate-goldens renders every scene under testdata/scenes and
// records its size and checksum, with a palette preview, as a markdown golden
// file.
package main

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/bmpkit"
)

// GoldenMetadata represents the YAML front matter in golden files
// This should match the struct in golden_test.go
type GoldenMetadata struct {
	Scene          string `yaml:"scene"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	Size           int    `yaml:"size"`
	Generated      string `yaml:"generated"`
	Generator      string `yaml:"generator"`
	ChecksumSHA256 string `yaml:"checksum_sha256"`
}

// previewSymbols are handed out to colours in order of first appearance.
// Colours beyond the last symbol share '?'.
const previewSymbols = ".#abcdefghijklmnopqrstuvwxyz0123456789"

var (
	sceneDir = pflag.String("scenes", "testdata/scenes", "Directory of scene files")
	outDir   = pflag.String("out", "testdata/goldens", "Output directory")
	strict   = pflag.Bool("strict", false, "Exit on any warning")
)

func main() {
	pflag.Parse()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	scenes, err := filepath.Glob(filepath.Join(*sceneDir, "*.yaml"))
	if err != nil {
		logger.Error("listing scenes failed", "dir", *sceneDir, "error", err)
		os.Exit(1)
	}
	if len(scenes) == 0 {
		logger.Error("no scenes found", "dir", *sceneDir)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("creating output directory failed", "dir", *outDir, "error", err)
		os.Exit(1)
	}

	for _, path := range scenes {
		outFile, err := generateGoldenFile(path)
		if err != nil {
			if *strict {
				logger.Error("golden generation failed", "scene", path, "error", err)
				os.Exit(1)
			}
			logger.Warn("skipping scene", "scene", path, "error", err)
			continue
		}
		logger.Info("generated", "file", outFile)
	}

	logger.Info("golden file generation complete", "scenes", len(scenes))
}

func generateGoldenFile(path string) (string, error) {
	scene, err := bmpkit.LoadScene(path)
	if err != nil {
		return "", err
	}
	img, err := scene.Render()
	if err != nil {
		return "", err
	}
	data := img.Bytes()

	metadata := GoldenMetadata{
		Scene:          scene.Name,
		Width:          img.Width(),
		Height:         img.Height(),
		Size:           len(data),
		Generated:      time.Now().UTC().Format("2006-01-02"),
		Generator:      "generate-goldens",
		ChecksumSHA256: fmt.Sprintf("%x", sha256.Sum256(data)),
	}

	yamlData, err := yaml.Marshal(&metadata)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlData)
	buf.WriteString("---\n\n")
	writePreview(&buf, img)

	outFile := filepath.Join(*outDir, scene.Name+".md")
	if err := os.WriteFile(outFile, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", outFile, err)
	}
	return outFile, nil
}

// writePreview draws the image one character per pixel followed by a table
// of which colour each character stands for.
func writePreview(buf *bytes.Buffer, img *bmpkit.Image) {
	symbols := make(map[bmpkit.Color]byte)
	var order []bmpkit.Color

	var art strings.Builder
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.RGBAt(x, y)
			sym, ok := symbols[c]
			if !ok {
				sym = '?'
				if len(order) < len(previewSymbols) {
					sym = previewSymbols[len(order)]
				}
				symbols[c] = sym
				order = append(order, c)
			}
			art.WriteByte(sym)
		}
		art.WriteByte('\n')
	}

	buf.WriteString("```text\n")
	buf.WriteString(art.String())
	buf.WriteString("```\n\n")
	buf.WriteString("| symbol | colour |\n")
	buf.WriteString("|---|---|\n")
	for _, c := range order {
		fmt.Fprintf(buf, "| `%c` | %s |\n", symbols[c], c)
	}
}
