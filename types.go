package main

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type RGB struct {
	R, G, B uint8
}

// WithAlpha converts the triplet to a non-premultiplied color. Alpha is
// clamped to [0,1].
func (c RGB) WithAlpha(alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp01(alpha)*255 + 0.5)}
}

// HSL describes a nebula hue in degrees with saturation and lightness in [0,1].
type HSL struct {
	H, S, L float64
}

func (h HSL) RGB() RGB {
	r, g, b := colorful.Hsl(h.H, h.S, h.L).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

type Point struct {
	X, Y float64
}

type Star struct {
	X, Y         float64
	Size         float64
	Speed        float64
	Opacity      float64
	Color        RGB
	Pulse        float64
	PulseSpeed   float64
	Twinkle      float64
	TwinkleSpeed float64
	Trail        float64 // zero when the star draws no trail
}

type Nebula struct {
	X, Y    float64
	Radius  float64
	Color   HSL
	Opacity float64
	Layer   float64 // 0..1, scales drift and opacity
}

// paletteEntry is one weighted color choice. Weights are cumulative.
type paletteEntry struct {
	upTo  float64
	color RGB
}

var starPalettes = map[Theme][]paletteEntry{
	ThemeDark: {
		{0.7, RGB{255, 255, 255}},
		{0.85, RGB{200, 220, 255}},
		{0.95, RGB{255, 220, 220}},
		{1, RGB{255, 240, 220}},
	},
	ThemeLight: {
		{0.7, RGB{30, 30, 60}},
		{0.85, RGB{60, 30, 60}},
		{0.95, RGB{60, 40, 30}},
		{1, RGB{30, 60, 60}},
	},
}

// backgrounds are the colors a surface is cleared to before compositing.
var backgrounds = map[Theme]RGB{
	ThemeDark:  {5, 6, 18},
	ThemeLight: {246, 244, 238},
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
