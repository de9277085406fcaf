package main

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Animator binds a Field to a host and a frame scheduler. Between Start
// and Stop it renders one frame per scheduler callback and reseeds the
// field whenever the host reports a resize or a theme change.
type Animator struct {
	field   *Field
	host    Host
	frames  FrameScheduler
	surface Surface
	pointer *PointerSampler
	log     *zap.Logger
	now     func() time.Time
	onFrame func(now time.Time)

	mu       sync.Mutex
	running  bool
	token    uint64
	frame    FrameID
	hasFrame bool
	cancels  []func()
	rendered uint64
}

type AnimatorOption func(*Animator)

func WithLogger(log *zap.Logger) AnimatorOption {
	return func(a *Animator) { a.log = log }
}

func WithPointerSampler(p *PointerSampler) AnimatorOption {
	return func(a *Animator) { a.pointer = p }
}

// WithFrameHook runs fn after every rendered frame, outside the animator
// lock.
func WithFrameHook(fn func(now time.Time)) AnimatorOption {
	return func(a *Animator) { a.onFrame = fn }
}

// WithClock sets the time source used to debounce pointer samples.
func WithClock(now func() time.Time) AnimatorOption {
	return func(a *Animator) { a.now = now }
}

func NewAnimator(field *Field, host Host, frames FrameScheduler, surface Surface, opts ...AnimatorOption) *Animator {
	a := &Animator{
		field:   field,
		host:    host,
		frames:  frames,
		surface: surface,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.pointer == nil {
		a.pointer = NewPointerSampler(pointerDebounce)
	}
	a.log = a.log.With(zap.String("component", "animator"))
	return a
}

// Start seeds the field from the host viewport, subscribes to host events
// and requests the first frame.
func (a *Animator) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return ErrRunning
	}
	a.running = true
	a.token++

	width, height := a.host.Viewport()
	a.reseedLocked(width, height, a.host.Theme())
	a.cancels = append(a.cancels,
		a.host.OnResize(a.handleResize),
		a.host.OnPointer(a.handlePointer),
		a.host.OnTheme(a.handleTheme),
	)
	a.scheduleLocked()
	a.log.Info("animation started",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Stringer("theme", a.field.Theme()),
	)
	return nil
}

// Stop cancels the pending frame and removes every host listener. It is
// safe to call more than once.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return
	}
	a.running = false
	a.token++
	if a.hasFrame {
		a.frames.CancelFrame(a.frame)
		a.hasFrame = false
	}
	for _, cancel := range a.cancels {
		cancel()
	}
	a.cancels = nil
	a.pointer.Reset()
	a.log.Info("animation stopped", zap.Uint64("frames", a.rendered))
}

func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Reshuffle switches the field to a new random seed and reseeds it.
func (a *Animator) Reshuffle(seed uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.field.SetSeed(seed)
	width, height := a.host.Viewport()
	a.reseedLocked(width, height, a.host.Theme())
}

type AnimatorStats struct {
	Width, Height int
	Stars         int
	Nebulae       int
	Theme         Theme
	Reduced       bool
	Frames        uint64
}

func (a *Animator) Stats() AnimatorStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	w, h := a.field.Size()
	return AnimatorStats{
		Width:   w,
		Height:  h,
		Stars:   a.field.StarCount(),
		Nebulae: a.field.NebulaCount(),
		Theme:   a.field.Theme(),
		Reduced: a.field.Reduced(),
		Frames:  a.rendered,
	}
}

func (a *Animator) scheduleLocked() {
	token := a.token
	a.frame = a.frames.RequestFrame(func(now time.Time) {
		a.runFrame(token, now)
	})
	a.hasFrame = true
}

func (a *Animator) runFrame(token uint64, now time.Time) {
	a.mu.Lock()
	if !a.running || token != a.token {
		a.mu.Unlock()
		return
	}
	a.hasFrame = false
	a.renderLocked(now)
	a.rendered++
	a.scheduleLocked()
	hook := a.onFrame
	a.mu.Unlock()

	if hook != nil {
		hook(now)
	}
}

// renderLocked draws one frame. A panic drops the frame without ending
// the loop.
func (a *Animator) renderLocked(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Warn("frame dropped", zap.Any("panic", r), zap.Uint64("frame", a.rendered))
		}
	}()
	a.field.Tick(a.surface, now, a.pointer.Read(a.field.Center()))
}

func (a *Animator) reseedLocked(width, height int, theme Theme) {
	if a.surface != nil {
		a.surface.Resize(width, height)
	}
	a.field.Reseed(width, height, a.host.Reduced(), theme)
	a.log.Debug("field reseeded",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("reduced", a.field.Reduced()),
		zap.Stringer("theme", theme),
		zap.Int("stars", a.field.StarCount()),
		zap.Int("nebulae", a.field.NebulaCount()),
	)
}

func (a *Animator) handleResize(width, height int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return
	}
	a.reseedLocked(width, height, a.host.Theme())
}

func (a *Animator) handleTheme(theme Theme) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return
	}
	width, height := a.host.Viewport()
	a.reseedLocked(width, height, theme)
}

func (a *Animator) handlePointer(p Point) {
	a.pointer.Offer(a.now(), p)
}
