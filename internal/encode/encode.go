// Package encode wraps a QR Code Model 2 encoder behind a small capability
// interface so the rest of the pipeline never touches the symbol standard
// directly and any standards-conformant implementation can be swapped in.
package encode

import (
	"fmt"
	"strings"

	go_qr "github.com/piglig/go-qr"
)

// Version bounds defined by the QR Code Model 2 standard.
const (
	VersionMin = 1
	VersionMax = 40
)

// MaskAuto lets the encoder pick a mask by the standard's penalty heuristic.
const MaskAuto = -1

// Level is one of the four standard error correction tiers.
type Level int

const (
	Low Level = iota
	Medium
	Quartile
	High
)

// ParseLevel parses a case-insensitive error correction level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "LOW":
		return Low, nil
	case "MEDIUM":
		return Medium, nil
	case "QUARTILE":
		return Quartile, nil
	case "HIGH":
		return High, nil
	}
	return High, fmt.Errorf("error correction level must be Low, Medium, Quartile or High, got %q", s)
}

// String returns the canonical spelling of the level.
func (l Level) String() string {
	switch l {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case Quartile:
		return "Quartile"
	case High:
		return "High"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) ecc() go_qr.Ecc {
	switch l {
	case Low:
		return go_qr.Low
	case Medium:
		return go_qr.Medium
	case Quartile:
		return go_qr.Quartile
	}
	return go_qr.High
}

// Config bounds the symbol search space. It is constructed once from
// validated input and shared read-only by all workers.
type Config struct {
	VersionMin int
	VersionMax int
	Level      Level
	Mask       int // 0..7, or MaskAuto
}

// Validate reports the first structural problem with the config.
func (c Config) Validate() error {
	if c.VersionMin < VersionMin || c.VersionMin > VersionMax {
		return fmt.Errorf("version min %d outside [%d,%d]", c.VersionMin, VersionMin, VersionMax)
	}
	if c.VersionMax < VersionMin || c.VersionMax > VersionMax {
		return fmt.Errorf("version max %d outside [%d,%d]", c.VersionMax, VersionMin, VersionMax)
	}
	if c.VersionMin > c.VersionMax {
		return fmt.Errorf("version min %d greater than version max %d", c.VersionMin, c.VersionMax)
	}
	if c.Mask != MaskAuto && (c.Mask < 0 || c.Mask > 7) {
		return fmt.Errorf("mask %d outside [0,7]", c.Mask)
	}
	if c.Level < Low || c.Level > High {
		return fmt.Errorf("unknown error correction level %d", int(c.Level))
	}
	return nil
}

// Matrix is a square module grid. Coordinates are (x, y) from the top-left
// corner; Module reports whether that module is dark.
type Matrix interface {
	Size() int
	Module(x, y int) bool
}

// Encoder turns one payload into a matrix under a fixed Config. Failures are
// per-payload (capacity exceeded, infeasible version range) and safe to
// report row by row.
type Encoder interface {
	Encode(payload string) (Matrix, error)
}

// New returns an encoder backed by the Nayuki QR generator port. The config
// must already be validated.
func New(cfg Config) Encoder {
	return generator{cfg: cfg}
}

type generator struct {
	cfg Config
}

func (g generator) Encode(payload string) (Matrix, error) {
	segs, err := go_qr.MakeSegments(payload)
	if err != nil {
		return nil, fmt.Errorf("segment payload: %w", err)
	}
	code, err := go_qr.EncodeSegments(segs, g.cfg.Level.ecc(),
		g.cfg.VersionMin, g.cfg.VersionMax, g.cfg.Mask, true)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return codeMatrix{code: code}, nil
}

type codeMatrix struct {
	code *go_qr.QrCode
}

func (m codeMatrix) Size() int            { return m.code.GetSize() }
func (m codeMatrix) Module(x, y int) bool { return m.code.GetModule(x, y) }
