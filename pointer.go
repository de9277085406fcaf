package main

import (
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	"golang.org/x/time/rate"
)

// PointerSampler keeps the latest pointer position, accepting at most one
// sample per debounce interval. Writers and the frame loop may run on
// different goroutines.
type PointerSampler struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	latest  Point
	has     bool

	spring   *harmonica.Spring
	pos, vel Point
	primed   bool
}

func NewPointerSampler(interval time.Duration) *PointerSampler {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &PointerSampler{limiter: rate.NewLimiter(limit, 1)}
}

// EnableSpring eases the position returned by Read toward the latest
// sample instead of jumping to it.
func (p *PointerSampler) EnableSpring(fps int, frequency, damping float64) {
	spring := harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)
	p.mu.Lock()
	p.spring = &spring
	p.mu.Unlock()
}

// Offer records pt if the debounce window allows it at the given time.
func (p *PointerSampler) Offer(at time.Time, pt Point) bool {
	if !p.limiter.AllowN(at, 1) {
		return false
	}
	p.mu.Lock()
	p.latest = pt
	p.has = true
	p.mu.Unlock()
	return true
}

// Latest returns the last accepted sample.
func (p *PointerSampler) Latest() (Point, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest, p.has
}

// Read returns the position a frame should use, or fallback when no
// sample has been accepted yet. With a spring enabled every call advances
// the spring by one frame.
func (p *PointerSampler) Read(fallback Point) Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	target := fallback
	if p.has {
		target = p.latest
	}
	if p.spring == nil {
		return target
	}
	if !p.primed {
		p.pos, p.vel, p.primed = fallback, Point{}, true
	}
	p.pos.X, p.vel.X = p.spring.Update(p.pos.X, p.vel.X, target.X)
	p.pos.Y, p.vel.Y = p.spring.Update(p.pos.Y, p.vel.Y, target.Y)
	return p.pos
}

// Reset forgets the sample history, e.g. after the surface changes size.
func (p *PointerSampler) Reset() {
	p.mu.Lock()
	p.has = false
	p.primed = false
	p.latest, p.pos, p.vel = Point{}, Point{}, Point{}
	p.mu.Unlock()
}
