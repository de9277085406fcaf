package main

import (
	"math/rand/v2"
)

// Field owns one generation of stars and nebulae. It is not safe for
// concurrent use; the frame loop serializes access.
type Field struct {
	rng     *rand.Rand
	width   float64
	height  float64
	reduced bool
	theme   Theme
	stars   []Star
	nebulae []Nebula
}

// NewField returns an empty field drawing from rng. Passing nil seeds
// from the runtime's random source.
func NewField(rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Field{rng: rng}
}

// NewSeededField returns a field whose generations are reproducible.
func NewSeededField(seed uint64) *Field {
	return NewField(seededSource(seed))
}

// SetSeed replaces the random source; the next Reseed draws from it.
func (f *Field) SetSeed(seed uint64) {
	f.rng = seededSource(seed)
}

func seededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Ready reports whether the field has positive dimensions.
func (f *Field) Ready() bool {
	return f.width > 0 && f.height > 0
}

func (f *Field) Size() (int, int) { return int(f.width), int(f.height) }
func (f *Field) Theme() Theme { return f.theme }
func (f *Field) Reduced() bool { return f.reduced }
func (f *Field) StarCount() int { return len(f.stars) }
func (f *Field) NebulaCount() int { return len(f.nebulae) }
func (f *Field) Stars() []Star { return append([]Star(nil), f.stars...) }
func (f *Field) Nebulae() []Nebula { return append([]Nebula(nil), f.nebulae...) }

// Reseed discards every entity and generates a fresh collection for the
// given surface. Non-positive dimensions leave the field empty.
func (f *Field) Reseed(width, height int, reduced bool, theme Theme) {
	f.width = float64(width)
	f.height = float64(height)
	f.reduced = reduced
	f.theme = theme
	f.stars = nil
	f.nebulae = nil
	if !f.Ready() {
		return
	}

	f.stars = make([]Star, starCount(reduced))
	for i := range f.stars {
		f.stars[i] = f.newStar()
	}

	base := nebulaMinFull
	if reduced {
		base = nebulaMinReduced
	}
	f.nebulae = make([]Nebula, base+f.rng.IntN(nebulaCountSpread))
	for i := range f.nebulae {
		f.nebulae[i] = f.newNebula()
	}
}

func starCount(reduced bool) int {
	if reduced {
		return starCountReduced
	}
	return starCountFull
}

func (f *Field) newStar() Star {
	r := f.rng
	star := Star{
		X:            r.Float64() * f.width,
		Y:            r.Float64() * f.height,
		Size:         starSize(r),
		Speed:        starSpeedMin + r.Float64()*starSpeedSpread,
		Color:        pickColor(starPalettes[f.theme], r.Float64()),
		Pulse:        r.Float64() * fullTurn,
		PulseSpeed:   pulseSpeedMin + r.Float64()*pulseSpeedSpread,
		Twinkle:      r.Float64() * fullTurn,
		TwinkleSpeed: twinkleSpeedMin + r.Float64()*twinkleSpeedSpread,
	}
	peak := starOpacityDark
	if f.theme == ThemeLight {
		peak = starOpacityLight
	}
	star.Opacity = starOpacityMin + r.Float64()*peak
	if !f.reduced && star.Size > trailMinSize {
		star.Trail = trailLengthMin + r.Float64()*trailLengthSpread
	}
	return star
}

// starSize draws from three buckets: 70% small, 20% medium, 10% large.
func starSize(r *rand.Rand) float64 {
	bucket := r.Float64()
	switch {
	case bucket < 0.7:
		return 0.3 + r.Float64()*0.7
	case bucket < 0.9:
		return 1.0 + r.Float64()*0.8
	default:
		return 1.8 + r.Float64()*1.0
	}
}

func pickColor(palette []paletteEntry, v float64) RGB {
	for _, entry := range palette {
		if v < entry.upTo {
			return entry.color
		}
	}
	return palette[len(palette)-1].color
}

func (f *Field) newNebula() Nebula {
	r := f.rng
	layer := nebulaLayerMin + r.Float64()*nebulaLayerSpread
	n := Nebula{
		X:      r.Float64() * f.width,
		Y:      r.Float64() * f.height,
		Radius: nebulaRadiusMin + r.Float64()*nebulaRadiusSpread,
		Layer:  layer,
	}
	hue := r.Float64() * 360
	if f.theme == ThemeLight {
		n.Color = HSL{H: hue, S: nebulaSatLight, L: nebulaLightLight}
		n.Opacity = (nebulaOpacityLight + r.Float64()*nebulaSpreadLight) * layer
	} else {
		n.Color = HSL{H: hue, S: nebulaSatDark, L: nebulaLightDark}
		n.Opacity = (nebulaOpacityDark + r.Float64()*nebulaSpreadDark) * layer
	}
	return n
}
