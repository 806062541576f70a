package render

import (
	"bytes"
	"fmt"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/flarebyte/seshat-glyphs/internal/encode"
)

// renderSVG emits one 1x1 rect per dark module in a viewBox sized in module
// units, or a single combined path when Flatten is set.
func renderSVG(m encode.Matrix, cfg Config) []byte {
	var buf bytes.Buffer
	total := m.Size() + 2*cfg.Border
	canvas := svg.New(&buf)
	canvas.Startview(total, total, 0, 0, total, total)
	canvas.Rect(0, 0, total, total, "fill:"+cfg.Background.Hex())
	fill := "fill:" + cfg.Foreground.Hex()
	if cfg.Flatten {
		canvas.Path(modulePath(m, cfg.Border), fill)
	} else {
		for y := 0; y < m.Size(); y++ {
			for x := 0; x < m.Size(); x++ {
				if m.Module(x, y) {
					canvas.Rect(x+cfg.Border, y+cfg.Border, 1, 1, fill)
				}
			}
		}
	}
	canvas.End()
	return buf.Bytes()
}

// modulePath builds a single path drawing every dark module.
func modulePath(m encode.Matrix, border int) string {
	var b strings.Builder
	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			if !m.Module(x, y) {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "M%d,%dh1v1h-1z", x+border, y+border)
		}
	}
	return b.String()
}
