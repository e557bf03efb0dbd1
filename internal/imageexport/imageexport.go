// Package imageexport renders a diagram to PNG, JPEG or SVG.
package imageexport

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/nhath/ezchart/internal/diagram"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpg"
	SVG  Format = "svg"
)

// Formats lists the formats in menu order
var Formats = []Format{PNG, JPEG, SVG}

func (f Format) Label() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPG"
	case SVG:
		return "SVG"
	}
	return string(f)
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("unsupported image format: %s", s)
}

// Palette holds hex colors used for drawing
type Palette struct {
	Background string
	Card       string
	Header     string
	Border     string
	Text       string
	Line       string
}

func DefaultPalette() Palette {
	return Palette{
		Background: "#2E3440",
		Card:       "#3B4252",
		Header:     "#5E81AC",
		Border:     "#4C566A",
		Text:       "#ECEFF4",
		Line:       "#88C0D0",
	}
}

type rgbaPalette struct {
	background, card, header, border, text, line color.Color
}

func (p Palette) resolve() (rgbaPalette, error) {
	var out rgbaPalette
	for _, c := range []struct {
		hex string
		dst *color.Color
	}{
		{p.Background, &out.background},
		{p.Card, &out.card},
		{p.Header, &out.header},
		{p.Border, &out.border},
		{p.Text, &out.text},
		{p.Line, &out.line},
	} {
		parsed, err := colorful.Hex(c.hex)
		if err != nil {
			return out, fmt.Errorf("invalid color %q: %w", c.hex, err)
		}
		*c.dst = parsed
	}
	return out, nil
}

// Export writes d to w in the given format
func Export(w io.Writer, d *diagram.Diagram, f Format, p Palette) error {
	l := computeLayout(d)
	switch f {
	case SVG:
		return writeSVG(w, d, l, p)
	case PNG, JPEG:
		rp, err := p.resolve()
		if err != nil {
			return err
		}
		return writeRaster(w, d, l, f, rp)
	}
	return fmt.Errorf("unsupported image format: %s", f)
}

// ExportFile writes d into dir as <name>.<ext> and returns the path
func ExportFile(dir string, d *diagram.Diagram, f Format, p Palette) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, diagram.FileName(d.Name, string(f)))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Export(file, d, f, p); err != nil {
		file.Close()
		return "", err
	}
	return path, file.Close()
}
