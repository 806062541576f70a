// Package config holds the process-wide options for a generation run.
// Options are constructed once, validated eagerly before any input file is
// opened, and read-only afterward.
package config

import (
	"fmt"

	"github.com/flarebyte/seshat-glyphs/internal/encode"
	"github.com/flarebyte/seshat-glyphs/internal/render"
)

// MaskUnset selects automatic mask choice.
const MaskUnset = -1

// Options is the raw configuration surface: flag values, possibly overlaid
// on values from a CUE config file.
type Options struct {
	Output          string
	VersionMin      int
	VersionMax      int
	ErrorCorrection string
	Mask            int // 0..7, or MaskUnset
	Border          int
	Format          string
	Scale           int
	Foreground      string
	Background      string
	Flatten         bool
	ChunkSize       int
	SkipHeader      bool
	MapScript       string
}

// Default mirrors the CLI flag defaults.
func Default() Options {
	return Options{
		Output:          "-",
		VersionMin:      encode.VersionMin,
		VersionMax:      encode.VersionMax,
		ErrorCorrection: "High",
		Mask:            MaskUnset,
		Border:          4,
		Format:          "SVG",
		Scale:           8,
		Foreground:      "000000",
		Background:      "ffffff",
		ChunkSize:       1,
	}
}

// Resolved is the typed, validated form consumed by the pipeline.
type Resolved struct {
	Encoding   encode.Config
	Render     render.Config
	Output     string
	ChunkSize  int
	SkipHeader bool
	MapScript  string
}

// Resolve validates every option and parses the enums and colors. Any error
// here is fatal and reported before chunk scheduling begins.
func (o Options) Resolve() (Resolved, error) {
	level, err := encode.ParseLevel(o.ErrorCorrection)
	if err != nil {
		return Resolved{}, err
	}
	mask := o.Mask
	if mask == MaskUnset {
		mask = encode.MaskAuto
	} else if mask < 0 || mask > 7 {
		return Resolved{}, fmt.Errorf("mask %d outside [0,7]", mask)
	}
	enc := encode.Config{
		VersionMin: o.VersionMin,
		VersionMax: o.VersionMax,
		Level:      level,
		Mask:       mask,
	}
	if err := enc.Validate(); err != nil {
		return Resolved{}, err
	}

	format, err := render.ParseFormat(o.Format)
	if err != nil {
		return Resolved{}, err
	}
	fg, err := render.ParseRGB(o.Foreground)
	if err != nil {
		return Resolved{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := render.ParseRGB(o.Background)
	if err != nil {
		return Resolved{}, fmt.Errorf("background: %w", err)
	}
	rc := render.Config{
		Format:     format,
		Border:     o.Border,
		Foreground: fg,
		Background: bg,
		Scale:      o.Scale,
		Flatten:    o.Flatten,
	}
	if err := rc.Validate(); err != nil {
		return Resolved{}, err
	}

	if o.ChunkSize < 1 {
		return Resolved{}, fmt.Errorf("chunk size %d must be at least 1", o.ChunkSize)
	}
	if o.Output == "" {
		return Resolved{}, fmt.Errorf("output directory must not be empty")
	}

	return Resolved{
		Encoding:   enc,
		Render:     rc,
		Output:     o.Output,
		ChunkSize:  o.ChunkSize,
		SkipHeader: o.SkipHeader,
		MapScript:  o.MapScript,
	}, nil
}
