// Package render turns a QR module matrix into image bytes. Rendering is a
// pure function of the matrix and the config: the same inputs always produce
// byte-identical output.
package render

import (
	"fmt"
	"strings"

	"github.com/flarebyte/seshat-glyphs/internal/encode"
)

// Format selects the output image encoding.
type Format int

const (
	SVG Format = iota
	PNG
)

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(s) {
	case "SVG":
		return SVG, nil
	case "PNG":
		return PNG, nil
	}
	return SVG, fmt.Errorf("format must be either SVG or PNG, got %q", s)
}

// String returns the canonical format name.
func (f Format) String() string {
	if f == PNG {
		return "PNG"
	}
	return "SVG"
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == PNG {
		return "png"
	}
	return "svg"
}

// Config is the styling surface shared read-only by all workers.
type Config struct {
	Format     Format
	Border     int // quiet zone width in modules, each edge
	Foreground RGB // dark modules
	Background RGB // light modules and quiet zone
	Scale      int // pixels per module, PNG only
	Flatten    bool // SVG only: one combined path instead of per-module rects
}

// Validate reports configuration bounds violations. These are fatal and
// checked once before the pipeline runs, never per row.
func (c Config) Validate() error {
	if c.Border < 0 {
		return fmt.Errorf("border %d must not be negative", c.Border)
	}
	if c.Format == PNG && (c.Scale < 1 || c.Scale > 255) {
		return fmt.Errorf("module scale %d outside [1,255]", c.Scale)
	}
	return nil
}

// Render encodes the matrix in the configured format.
func Render(m encode.Matrix, cfg Config) ([]byte, error) {
	if cfg.Format == PNG {
		return renderPNG(m, cfg)
	}
	return renderSVG(m, cfg), nil
}
