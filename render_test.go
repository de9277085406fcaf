package main

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSurface counts draw calls without rasterizing anything.
type recordingSurface struct {
	w, h    int
	clears  int
	discs   int
	radials int
	lines   int
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{w: w, h: h}
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }
func (s *recordingSurface) Resize(w, h int) { s.w, s.h = w, h }
func (s *recordingSurface) Clear(color.Color) { s.clears++ }
func (s *recordingSurface) FillDisc(_, _, _ float64, _ color.Color) {
	s.discs++
}
func (s *recordingSurface) FillRadialDisc(_, _, _ float64, _, _ color.Color) {
	s.radials++
}
func (s *recordingSurface) StrokeLine(_, _, _, _, _ float64, _ color.Color) {
	s.lines++
}

func (s *recordingSurface) reset() {
	s.clears, s.discs, s.radials, s.lines = 0, 0, 0, 0
}

func assertInside(t *testing.T, f *Field, width, height float64) {
	t.Helper()
	for i, st := range f.stars {
		require.True(t, st.X >= 0 && st.X < width, "star %d x=%f", i, st.X)
		require.True(t, st.Y >= 0 && st.Y < height, "star %d y=%f", i, st.Y)
	}
	for i, n := range f.nebulae {
		require.True(t, n.X >= 0 && n.X < width, "nebula %d x=%f", i, n.X)
		require.True(t, n.Y >= 0 && n.Y < height, "nebula %d y=%f", i, n.Y)
	}
}

func TestTick_WraparoundProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	start := time.UnixMilli(1_700_000_000_000)

	for trial := 0; trial < 20; trial++ {
		width := 50 + rng.IntN(900)
		height := 50 + rng.IntN(700)
		reduced := rng.IntN(2) == 0
		f := NewSeededField(rng.Uint64())
		f.Reseed(width, height, reduced, Theme(rng.IntN(2)))
		s := newRecordingSurface(width, height)

		ticks := 1 + rng.IntN(300)
		for i := 0; i < ticks; i++ {
			// Pointers far outside the surface exaggerate parallax.
			pointer := Point{
				X: (rng.Float64()*3 - 1) * float64(width),
				Y: (rng.Float64()*3 - 1) * float64(height),
			}
			f.Tick(s, start.Add(time.Duration(i)*33*time.Millisecond), pointer)
		}
		assertInside(t, f, float64(width), float64(height))
	}
}

func TestTick_DesktopScenario(t *testing.T) {
	f := NewSeededField(2024)
	f.Reseed(800, 600, false, ThemeDark)
	require.Equal(t, 250, f.StarCount())
	require.GreaterOrEqual(t, f.NebulaCount(), 5)
	require.LessOrEqual(t, f.NebulaCount(), 7)

	before := f.Stars()
	s := newRecordingSurface(800, 600)
	f.Tick(s, time.UnixMilli(0), f.Center())

	for i, st := range f.Stars() {
		prev := before[i]
		if prev.Y+prev.Speed >= 600 {
			assert.Zero(t, st.Y, "star %d should wrap to the top", i)
			continue
		}
		assert.InDelta(t, prev.Y+prev.Speed, st.Y, 1e-9, "star %d", i)
		assert.InDelta(t, prev.X, st.X, 1e-9, "star %d", i)
	}
}

func TestTick_ParallaxScalesWithSize(t *testing.T) {
	f := NewSeededField(1)
	f.Reseed(800, 600, true, ThemeDark)
	f.stars = []Star{
		{X: 400, Y: 300, Size: 1, Speed: 0.05, Opacity: 0.5},
		{X: 400, Y: 300, Size: 2, Speed: 0.05, Opacity: 0.5},
	}

	pointer := Point{X: 800, Y: 600}
	f.Tick(newRecordingSurface(800, 600), time.UnixMilli(0), pointer)

	step := 400 * parallaxFactor * parallaxScale
	assert.InDelta(t, 400+step, f.stars[0].X, 1e-9)
	assert.InDelta(t, 400+2*step, f.stars[1].X, 1e-9)
	assert.InDelta(t, 300+0.05+300*parallaxFactor*parallaxScale, f.stars[0].Y, 1e-9)
}

func TestTick_ResizeKeepsNewBounds(t *testing.T) {
	f := NewSeededField(8)
	s := newRecordingSurface(800, 600)
	f.Reseed(800, 600, false, ThemeDark)
	now := time.UnixMilli(0)
	for i := 0; i < 10; i++ {
		f.Tick(s, now, f.Center())
	}

	s.Resize(400, 300)
	f.Reseed(400, 300, false, ThemeDark)
	f.Tick(s, now, Point{X: 0, Y: 0})

	assertInside(t, f, 400, 300)
}

func TestTick_StarWrapsAtBottom(t *testing.T) {
	f := NewSeededField(4)
	f.Reseed(200, 100, true, ThemeDark)
	f.stars = []Star{{X: 50, Y: 99.99, Size: 1, Speed: 0.05, Opacity: 1, Twinkle: 1}}

	f.Tick(newRecordingSurface(200, 100), time.UnixMilli(0), f.Center())

	st := f.stars[0]
	assert.Zero(t, st.Y)
	assert.True(t, st.X >= 0 && st.X < 200)
}

func TestTick_StarWrapsAtTop(t *testing.T) {
	f := NewSeededField(4)
	f.Reseed(200, 100, true, ThemeDark)
	f.stars = []Star{{X: 50, Y: 0.001, Size: 2.5, Speed: 0.02, Opacity: 1}}

	// A pointer far above the center pulls large stars upward.
	f.Tick(newRecordingSurface(200, 100), time.UnixMilli(0), Point{X: 100, Y: -20000})

	st := f.stars[0]
	assert.Less(t, st.Y, 100.0)
	assert.Greater(t, st.Y, 99.0)
}

func TestTick_NebulaWrapsAcrossEdge(t *testing.T) {
	f := NewSeededField(4)
	f.Reseed(200, 100, true, ThemeDark)
	f.nebulae = []Nebula{{X: 199.99, Y: 50, Radius: 20, Layer: 1, Opacity: 0.05}}

	// sin(t*5e-5) == 1 drifts the nebula right by its full step.
	peakMillis := math.Pi / 2 / nebulaDriftFreq
	peak := time.UnixMilli(int64(peakMillis))
	s := newRecordingSurface(200, 100)
	f.Tick(s, peak, f.Center())

	n := f.nebulae[0]
	assert.Less(t, n.X, 1.0)
	assert.InDelta(t, 50, n.Y, 0.01)
}

func TestTick_NebulaGhostsAcrossEdges(t *testing.T) {
	f := NewSeededField(4)
	f.Reseed(200, 100, true, ThemeDark)
	f.stars = nil
	f.nebulae = []Nebula{{X: 5, Y: 5, Radius: 20, Layer: 0.5, Opacity: 0.05}}

	s := newRecordingSurface(200, 100)
	f.Tick(s, time.UnixMilli(0), f.Center())

	// Corner disc straddles two edges: drawn at 2×2 offsets.
	assert.Equal(t, 4, s.radials)
}

func TestTick_DetailGating(t *testing.T) {
	stars := []Star{
		{X: 10, Y: 10, Size: 2.5, Speed: 0.05, Opacity: 0.8, Trail: 20},
		{X: 40, Y: 10, Size: 2.0, Speed: 0.05, Opacity: 0.8},
	}

	full := NewSeededField(1)
	full.Reseed(200, 100, false, ThemeDark)
	full.nebulae = nil
	full.stars = append([]Star(nil), stars...)
	sf := newRecordingSurface(200, 100)
	full.Tick(sf, time.UnixMilli(0), full.Center())

	assert.Equal(t, 1, sf.clears)
	assert.Equal(t, 2, sf.discs)
	assert.Equal(t, 2, sf.radials, "both stars glow")
	assert.Equal(t, 2, sf.lines, "one constellation line and one trail")

	reduced := NewSeededField(1)
	reduced.Reseed(200, 100, true, ThemeDark)
	reduced.nebulae = nil
	reduced.stars = append([]Star(nil), stars...)
	sr := newRecordingSurface(200, 100)
	reduced.Tick(sr, time.UnixMilli(0), reduced.Center())

	assert.Equal(t, 2, sr.discs)
	assert.Zero(t, sr.radials)
	assert.Zero(t, sr.lines)
}

func TestTick_ConstellationRange(t *testing.T) {
	f := NewSeededField(1)
	f.Reseed(400, 100, false, ThemeDark)
	f.nebulae = nil
	f.stars = []Star{
		{X: 10, Y: 50, Size: 1.5, Opacity: 0.5},
		{X: 150, Y: 50, Size: 1.5, Opacity: 0.5},
		{X: 200, Y: 50, Size: 0.5, Opacity: 0.5},
	}
	s := newRecordingSurface(400, 100)
	f.Tick(s, time.UnixMilli(0), f.Center())

	assert.Zero(t, s.lines, "pairs are too far apart or too small")
}

func TestTick_NoSurfaceIsNoop(t *testing.T) {
	f := NewSeededField(1)
	f.Reseed(100, 100, false, ThemeDark)
	before := f.Stars()

	assert.NotPanics(t, func() { f.Tick(nil, time.Now(), f.Center()) })
	f.Tick(newRecordingSurface(0, 0), time.Now(), f.Center())
	assert.Equal(t, before, f.Stars())

	empty := NewSeededField(1)
	s := newRecordingSurface(100, 100)
	empty.Tick(s, time.Now(), Point{})
	assert.Zero(t, s.clears)
}

func TestTick_IntensityEnvelope(t *testing.T) {
	for _, phase := range []float64{0, 1, 2, 3, 4, 5, 6} {
		v := starIntensity(&Star{Pulse: phase, Twinkle: phase * 1.7})
		assert.True(t, v >= (1-pulseAmplitude)*(1-2*twinkleAmplitude)-1e-9)
		assert.True(t, v <= 1+pulseAmplitude+1e-9)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, size, want float64
	}{
		{5, 10, 5},
		{10, 10, 0},
		{12.5, 10, 2.5},
		{-2.5, 10, 7.5},
		{-1e-18, 10, 0},
	}
	for _, tt := range tests {
		got := wrap(tt.in, tt.size)
		assert.InDelta(t, tt.want, got, 1e-9, "wrap(%v, %v)", tt.in, tt.size)
		assert.True(t, got >= 0 && got < tt.size)
	}
}

func TestCanvasSurface_DrawsPixels(t *testing.T) {
	s := NewCanvasSurface(20, 20)
	s.Clear(color.Black)
	s.FillDisc(10, 10, 4, color.White)
	s.FillRadialDisc(3, 3, 3, color.NRGBA{255, 0, 0, 255}, color.NRGBA{255, 0, 0, 0})
	s.StrokeLine(0, 19, 19, 19, 1, color.White)

	img := s.Image()
	require.NotNil(t, img)
	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)

	r, _, _, _ = img.At(18, 2).RGBA()
	assert.Zero(t, r)

	s.Resize(0, 0)
	assert.Nil(t, s.Image())
	assert.NotPanics(t, func() { s.FillDisc(1, 1, 1, color.White) })
	assert.ErrorIs(t, s.SavePNG("unused.png"), ErrDetached)
}
