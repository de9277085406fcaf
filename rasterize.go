package main

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	halfBlock    = "▀"
	maxCellCache = 8192
	quantizeMask = 0xF8 // keep 5 bits per channel
)

// cellCache memoizes styled half-block cells by their color pair.
type cellCache struct {
	cells map[uint64]string
}

func newCellCache() *cellCache {
	return &cellCache{cells: make(map[uint64]string)}
}

func (c *cellCache) cell(top, bottom RGB) string {
	key := uint64(top.R)<<40 | uint64(top.G)<<32 | uint64(top.B)<<24 |
		uint64(bottom.R)<<16 | uint64(bottom.G)<<8 | uint64(bottom.B)
	if s, ok := c.cells[key]; ok {
		return s
	}
	if len(c.cells) >= maxCellCache {
		c.cells = make(map[uint64]string)
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor(top))).
		Background(lipgloss.Color(hexColor(bottom))).
		Render(halfBlock)
	c.cells[key] = s
	return s
}

func hexColor(c RGB) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// rasterize turns img into rows of terminal cells. Each cell covers a
// scale-wide, 2*scale-tall block whose halves are averaged into the
// foreground and background colors of a half-block glyph. A nil image
// yields blank rows.
func rasterize(img image.Image, cols, rows, scale int, cache *cellCache) []string {
	lines := make([]string, rows)
	if cols <= 0 || rows <= 0 {
		return lines
	}
	if img == nil || scale <= 0 {
		blank := strings.Repeat(" ", cols)
		for i := range lines {
			lines[i] = blank
		}
		return lines
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		b.Reset()
		y := row * 2 * scale
		for col := 0; col < cols; col++ {
			x := col * scale
			top := quantize(averageBlock(img, x, y, x+scale, y+scale))
			bottom := quantize(averageBlock(img, x, y+scale, x+scale, y+2*scale))
			b.WriteString(cache.cell(top, bottom))
		}
		lines[row] = b.String()
	}
	return lines
}

func quantize(c RGB) RGB {
	return RGB{R: c.R & quantizeMask, G: c.G & quantizeMask, B: c.B & quantizeMask}
}

// averageBlock is the mean color of the pixels in [x0,x1)×[y0,y1) that lie
// inside the image bounds.
func averageBlock(img image.Image, x0, y0, x1, y1 int) RGB {
	bounds := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	if bounds.Empty() {
		return RGB{}
	}
	var r, g, b, n uint64
	if rgba, ok := img.(*image.RGBA); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := rgba.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r += uint64(rgba.Pix[i])
				g += uint64(rgba.Pix[i+1])
				b += uint64(rgba.Pix[i+2])
				i += 4
				n++
			}
		}
	} else {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				cr, cg, cb, _ := img.At(x, y).RGBA()
				r += uint64(cr >> 8)
				g += uint64(cg >> 8)
				b += uint64(cb >> 8)
				n++
			}
		}
	}
	return RGB{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}
