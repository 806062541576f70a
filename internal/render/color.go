package render

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a 24-bit color parsed from a 6-hex-digit string.
type RGB struct {
	R, G, B uint8
}

// ParseRGB parses "rrggbb" with an optional leading '#'.
func ParseRGB(s string) (RGB, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("color %q must be 6 hex digits", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("color %q must be 6 hex digits", s)
	}
	return RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}

// Hex returns the CSS "#rrggbb" form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
