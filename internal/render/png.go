package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/flarebyte/seshat-glyphs/internal/encode"
)

// renderPNG paints each module as a Scale x Scale pixel block, giving a final
// image of (size + 2*border) * scale pixels per axis.
func renderPNG(m encode.Matrix, cfg Config) ([]byte, error) {
	side := (m.Size() + 2*cfg.Border) * cfg.Scale
	img := image.NewRGBA(image.Rect(0, 0, side, side))

	bg := color.RGBA{R: cfg.Background.R, G: cfg.Background.G, B: cfg.Background.B, A: 0xff}
	fg := color.RGBA{R: cfg.Foreground.R, G: cfg.Foreground.G, B: cfg.Foreground.B, A: 0xff}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			if !m.Module(x, y) {
				continue
			}
			x0 := (x + cfg.Border) * cfg.Scale
			y0 := (y + cfg.Border) * cfg.Scale
			block := image.Rect(x0, y0, x0+cfg.Scale, y0+cfg.Scale)
			draw.Draw(img, block, image.NewUniform(fg), image.Point{}, draw.Src)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
