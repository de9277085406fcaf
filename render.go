package main

import (
	"math"
	"time"
)

// Center is the pointer position that produces no parallax.
func (f *Field) Center() Point {
	return Point{X: f.width / 2, Y: f.height / 2}
}

// Tick draws one frame onto s and advances every entity by one step.
// A nil or zero-sized surface, or an empty field, makes Tick a no-op.
func (f *Field) Tick(s Surface, now time.Time, pointer Point) {
	if s == nil || !f.Ready() {
		return
	}
	if w, h := s.Size(); w <= 0 || h <= 0 {
		return
	}

	s.Clear(backgrounds[f.theme].WithAlpha(1))
	f.drawNebulae(s)
	f.driftNebulae(float64(now.UnixNano()) / 1e6)
	if !f.reduced {
		f.drawConstellations(s)
	}
	f.drawStars(s)
	f.moveStars(pointer)
}

func (f *Field) drawNebulae(s Surface) {
	for _, n := range f.nebulae {
		rgb := n.Color.RGB()
		inner := rgb.WithAlpha(n.Opacity * nebulaCenterAlpha)
		outer := rgb.WithAlpha(0)
		// Discs straddling an edge are drawn again on the far side.
		for _, dx := range ghostOffsets(n.X, n.Radius, f.width) {
			for _, dy := range ghostOffsets(n.Y, n.Radius, f.height) {
				s.FillRadialDisc(n.X+dx, n.Y+dy, n.Radius, inner, outer)
			}
		}
	}
}

func ghostOffsets(pos, radius, size float64) []float64 {
	offsets := []float64{0}
	if pos-radius < 0 {
		offsets = append(offsets, size)
	}
	if pos+radius > size {
		offsets = append(offsets, -size)
	}
	return offsets
}

func (f *Field) driftNebulae(nowMillis float64) {
	dx := math.Sin(nowMillis*nebulaDriftFreq) * nebulaDriftStep
	dy := math.Cos(nowMillis*nebulaDriftFreq) * nebulaDriftStep
	for i := range f.nebulae {
		n := &f.nebulae[i]
		n.X = wrap(n.X+dx*n.Layer, f.width)
		n.Y = wrap(n.Y+dy*n.Layer, f.height)
	}
}

// drawConstellations links nearby large stars. The pass is quadratic in
// the number of candidates; the size filter keeps that small.
func (f *Field) drawConstellations(s Surface) {
	var candidates []int
	for i, st := range f.stars {
		if st.Size > constellationSize {
			candidates = append(candidates, i)
		}
	}
	lineColor := starPalettes[f.theme][0].color
	for a := 0; a < len(candidates); a++ {
		p := f.stars[candidates[a]]
		for b := a + 1; b < len(candidates); b++ {
			q := f.stars[candidates[b]]
			d := math.Hypot(p.X-q.X, p.Y-q.Y)
			if d >= constellationRange {
				continue
			}
			alpha := (1 - d/constellationRange) * constellationAlpha
			s.StrokeLine(p.X, p.Y, q.X, q.Y, constellationStroke, lineColor.WithAlpha(alpha))
		}
	}
}

func (f *Field) drawStars(s Surface) {
	for i := range f.stars {
		st := &f.stars[i]
		st.Pulse = math.Mod(st.Pulse+st.PulseSpeed, fullTurn)
		st.Twinkle = math.Mod(st.Twinkle+st.TwinkleSpeed, fullTurn)
		intensity := starIntensity(st)

		if !f.reduced && st.Size > glowMinSize {
			s.FillRadialDisc(st.X, st.Y, st.Size*glowRadiusScale,
				st.Color.WithAlpha(st.Opacity*glowOpacityScale), st.Color.WithAlpha(0))
		}
		if !f.reduced && st.Trail > 0 {
			length := st.Trail * st.Speed * trailSpeedScale
			s.StrokeLine(st.X, st.Y-length, st.X, st.Y, st.Size/2, st.Color.WithAlpha(st.Opacity*0.3))
		}
		s.FillDisc(st.X, st.Y, st.Size*intensity, st.Color.WithAlpha(st.Opacity*intensity))
	}
}

// starIntensity is the product of the pulse and twinkle envelopes.
func starIntensity(st *Star) float64 {
	pulse := 1 + pulseAmplitude*math.Sin(st.Pulse)
	twinkle := 1 - twinkleAmplitude + twinkleAmplitude*math.Sin(st.Twinkle)
	return pulse * twinkle
}

func (f *Field) moveStars(pointer Point) {
	influenceX := (pointer.X - f.width/2) * parallaxFactor
	influenceY := (pointer.Y - f.height/2) * parallaxFactor
	for i := range f.stars {
		st := &f.stars[i]
		st.Y += st.Speed + influenceY*st.Size*parallaxScale
		st.X += influenceX * st.Size * parallaxScale

		switch {
		case st.Y >= f.height:
			st.Y = 0
			f.respawnAlongX(st)
		case st.Y < 0:
			st.Y = lastInside(f.height)
			f.respawnAlongX(st)
		}
		switch {
		case st.X >= f.width:
			st.X = 0
			f.respawnAlongY(st)
		case st.X < 0:
			st.X = lastInside(f.width)
			f.respawnAlongY(st)
		}
	}
}

func (f *Field) respawnAlongX(st *Star) {
	st.X = f.rng.Float64() * f.width
	st.Twinkle = f.rng.Float64() * fullTurn
}

func (f *Field) respawnAlongY(st *Star) {
	st.Y = f.rng.Float64() * f.height
	st.Twinkle = f.rng.Float64() * fullTurn
}

// wrap folds v into [0,size).
func wrap(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	if v >= size {
		v = 0
	}
	return v
}

// lastInside is the largest coordinate strictly below size.
func lastInside(size float64) float64 {
	return math.Nextafter(size, 0)
}
