package render

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"
	"testing"
)

// gridMatrix is a hand-built matrix for exercising the renderer without a
// real symbol encoder.
type gridMatrix [][]bool

func (g gridMatrix) Size() int            { return len(g) }
func (g gridMatrix) Module(x, y int) bool { return g[y][x] }

func checkerboard(n int) gridMatrix {
	g := make(gridMatrix, n)
	for y := range g {
		g[y] = make([]bool, n)
		for x := range g[y] {
			g[y][x] = (x+y)%2 == 0
		}
	}
	return g
}

func TestRenderIsDeterministic(t *testing.T) {
	m := checkerboard(5)
	for _, cfg := range []Config{
		{Format: SVG, Border: 2, Foreground: RGB{}, Background: RGB{0xff, 0xff, 0xff}},
		{Format: PNG, Border: 2, Scale: 3, Foreground: RGB{}, Background: RGB{0xff, 0xff, 0xff}},
	} {
		a, err := Render(m, cfg)
		if err != nil {
			t.Fatalf("%s render: %v", cfg.Format, err)
		}
		b, err := Render(m, cfg)
		if err != nil {
			t.Fatalf("%s render: %v", cfg.Format, err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("%s output differs between identical renders", cfg.Format)
		}
	}
}

func TestRenderPNGGeometryAndColors(t *testing.T) {
	m := checkerboard(4)
	cfg := Config{
		Format:     PNG,
		Border:     1,
		Scale:      3,
		Foreground: RGB{0x11, 0x22, 0x33},
		Background: RGB{0xee, 0xdd, 0xcc},
	}
	data, err := Render(m, cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := (4 + 2) * 3
	if img.Bounds().Dx() != want || img.Bounds().Dy() != want {
		t.Fatalf("dimensions %dx%d, want %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), want, want)
	}

	// Sample the center pixel of every module block and compare on/off state.
	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			px := (x+cfg.Border)*cfg.Scale + cfg.Scale/2
			py := (y+cfg.Border)*cfg.Scale + cfg.Scale/2
			r, g, b, _ := img.At(px, py).RGBA()
			dark := r>>8 == uint32(cfg.Foreground.R) && g>>8 == uint32(cfg.Foreground.G) && b>>8 == uint32(cfg.Foreground.B)
			light := r>>8 == uint32(cfg.Background.R) && g>>8 == uint32(cfg.Background.G) && b>>8 == uint32(cfg.Background.B)
			if m.Module(x, y) && !dark {
				t.Fatalf("module (%d,%d) not foreground", x, y)
			}
			if !m.Module(x, y) && !light {
				t.Fatalf("module (%d,%d) not background", x, y)
			}
		}
	}

	// Quiet zone stays background.
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != uint32(cfg.Background.R) || g>>8 != uint32(cfg.Background.G) || b>>8 != uint32(cfg.Background.B) {
		t.Fatal("border pixel is not background")
	}
}

func TestRenderSVGEmitsRectPerModule(t *testing.T) {
	m := checkerboard(3)
	cfg := Config{Format: SVG, Border: 2, Foreground: RGB{}, Background: RGB{0xff, 0xff, 0xff}}
	data, err := Render(m, cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(data)

	on := 0
	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			if m.Module(x, y) {
				on++
				probe := fmt.Sprintf(`<rect x="%d" y="%d" width="1" height="1"`, x+cfg.Border, y+cfg.Border)
				if !strings.Contains(out, probe) {
					t.Fatalf("missing rect for module (%d,%d)", x, y)
				}
			}
		}
	}
	if got := strings.Count(out, `style="fill:#000000"`); got != on {
		t.Fatalf("%d foreground rects, want %d", got, on)
	}
	if !strings.Contains(out, `viewBox="0 0 7 7"`) {
		t.Fatalf("unexpected viewBox in %q", out)
	}
}

func TestRenderSVGFlattenSinglePath(t *testing.T) {
	m := checkerboard(3)
	cfg := Config{Format: SVG, Border: 0, Flatten: true, Foreground: RGB{}, Background: RGB{0xff, 0xff, 0xff}}
	data, err := Render(m, cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(data)
	if got := strings.Count(out, "<path"); got != 1 {
		t.Fatalf("%d path elements, want 1", got)
	}
	// One background rect only, no per-module rects.
	if got := strings.Count(out, "<rect"); got != 1 {
		t.Fatalf("%d rect elements, want 1", got)
	}
	if !strings.Contains(out, "M0,0h1v1h-1z") {
		t.Fatal("path missing first module")
	}
}

func TestConfigValidateBounds(t *testing.T) {
	if err := (Config{Format: PNG, Scale: 0}).Validate(); err == nil {
		t.Fatal("scale 0 accepted for PNG")
	}
	if err := (Config{Format: PNG, Scale: 256}).Validate(); err == nil {
		t.Fatal("scale 256 accepted for PNG")
	}
	if err := (Config{Format: SVG, Border: -1}).Validate(); err == nil {
		t.Fatal("negative border accepted")
	}
	if err := (Config{Format: SVG}).Validate(); err != nil {
		t.Fatalf("scale is PNG-only but SVG config rejected: %v", err)
	}
}

func TestParseRGB(t *testing.T) {
	c, err := ParseRGB("1a2B3c")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c != (RGB{0x1a, 0x2b, 0x3c}) {
		t.Fatalf("unexpected color %+v", c)
	}
	if c.Hex() != "#1a2b3c" {
		t.Fatalf("hex = %q", c.Hex())
	}
	if _, err := ParseRGB("#ffffff"); err != nil {
		t.Fatalf("hash prefix rejected: %v", err)
	}
	for _, bad := range []string{"", "fff", "ggg000", "1234567"} {
		if _, err := ParseRGB(bad); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"svg": SVG, "SVG": SVG, "png": PNG, "Png": PNG} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Fatal("gif accepted")
	}
}
