package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Surface is the drawing capability the renderer needs. It is draw-only:
// nothing in the renderer reads pixels back.
type Surface interface {
	Size() (width, height int)
	Resize(width, height int)
	Clear(background color.Color)
	FillDisc(x, y, radius float64, c color.Color)
	FillRadialDisc(x, y, radius float64, inner, outer color.Color)
	StrokeLine(x1, y1, x2, y2, lineWidth float64, c color.Color)
}

// CanvasSurface is a Surface backed by a gg context. A zero-sized canvas
// holds no context and ignores draw calls.
type CanvasSurface struct {
	dc *gg.Context
}

func NewCanvasSurface(width, height int) *CanvasSurface {
	s := &CanvasSurface{}
	s.Resize(width, height)
	return s
}

func (s *CanvasSurface) Size() (int, int) {
	if s.dc == nil {
		return 0, 0
	}
	return s.dc.Width(), s.dc.Height()
}

func (s *CanvasSurface) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		s.dc = nil
		return
	}
	if w, h := s.Size(); w == width && h == height {
		return
	}
	s.dc = gg.NewContext(width, height)
}

func (s *CanvasSurface) Clear(background color.Color) {
	if s.dc == nil {
		return
	}
	s.dc.SetColor(background)
	s.dc.Clear()
}

func (s *CanvasSurface) FillDisc(x, y, radius float64, c color.Color) {
	if s.dc == nil || radius <= 0 {
		return
	}
	s.dc.SetColor(c)
	s.dc.DrawCircle(x, y, radius)
	s.dc.Fill()
}

func (s *CanvasSurface) FillRadialDisc(x, y, radius float64, inner, outer color.Color) {
	if s.dc == nil || radius <= 0 {
		return
	}
	grad := gg.NewRadialGradient(x, y, 0, x, y, radius)
	grad.AddColorStop(0, inner)
	grad.AddColorStop(1, outer)
	s.dc.SetFillStyle(grad)
	s.dc.DrawCircle(x, y, radius)
	s.dc.Fill()
}

func (s *CanvasSurface) StrokeLine(x1, y1, x2, y2, lineWidth float64, c color.Color) {
	if s.dc == nil {
		return
	}
	s.dc.SetLineWidth(lineWidth)
	s.dc.SetColor(c)
	s.dc.DrawLine(x1, y1, x2, y2)
	s.dc.Stroke()
}

// Image returns the current frame, or nil when the canvas is detached.
func (s *CanvasSurface) Image() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

// Caption draws text in the top-left corner with the Go mono face.
func (s *CanvasSurface) Caption(text string, face font.Face, c color.Color) {
	if s.dc == nil || face == nil {
		return
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(c)
	_, h := s.dc.MeasureString(text)
	s.dc.DrawString(text, 8, 8+h)
}

func (s *CanvasSurface) SavePNG(filename string) error {
	if s.dc == nil {
		return fmt.Errorf("save %s: %w", filename, ErrDetached)
	}
	return s.dc.SavePNG(filename)
}

func loadCaptionFace(size float64) (font.Face, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
