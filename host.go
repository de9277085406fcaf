package main

import "sync"

// Host is the environment an Animator runs in: it reports the viewport,
// classifies the device and notifies about resize, pointer and theme
// changes. Every On* call returns a func that removes the listener.
type Host interface {
	Viewport() (width, height int)
	Reduced() bool
	Theme() Theme
	OnResize(fn func(width, height int)) (cancel func())
	OnPointer(fn func(p Point)) (cancel func())
	OnTheme(fn func(t Theme)) (cancel func())
}

type listeners[T any] struct {
	next int
	fns  map[int]func(T)
}

func (l *listeners[T]) add(fn func(T)) int {
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	l.next++
	l.fns[l.next] = fn
	return l.next
}

func (l *listeners[T]) snapshot() []func(T) {
	fns := make([]func(T), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	return fns
}

type dims struct{ width, height int }

// EventHost is a Host driven by explicit calls. The terminal viewer feeds
// it from bubbletea messages; the exporter and tests drive it directly.
type EventHost struct {
	mu       sync.Mutex
	width    int
	height   int
	theme    Theme
	classify func(width, height int) bool
	resize   listeners[dims]
	pointer  listeners[Point]
	themes   listeners[Theme]
}

// NewEventHost returns a host with the given viewport. classify decides
// reduced detail from the viewport; nil means always full detail.
func NewEventHost(width, height int, theme Theme, classify func(width, height int) bool) *EventHost {
	return &EventHost{width: width, height: height, theme: theme, classify: classify}
}

func (h *EventHost) Viewport() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *EventHost) Reduced() bool {
	w, ht := h.Viewport()
	if h.classify == nil {
		return false
	}
	return h.classify(w, ht)
}

func (h *EventHost) Theme() Theme {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.theme
}

func (h *EventHost) OnResize(fn func(width, height int)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.resize.add(func(s dims) { fn(s.width, s.height) })
	return h.remover(func() { delete(h.resize.fns, id) })
}

func (h *EventHost) OnPointer(fn func(p Point)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.pointer.add(fn)
	return h.remover(func() { delete(h.pointer.fns, id) })
}

func (h *EventHost) OnTheme(fn func(t Theme)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.themes.add(fn)
	return h.remover(func() { delete(h.themes.fns, id) })
}

func (h *EventHost) remover(del func()) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			del()
			h.mu.Unlock()
		})
	}
}

// Resize updates the viewport and notifies listeners. Listeners run
// outside the host lock.
func (h *EventHost) Resize(width, height int) {
	h.mu.Lock()
	h.width, h.height = width, height
	fns := h.resize.snapshot()
	h.mu.Unlock()
	for _, fn := range fns {
		fn(dims{width, height})
	}
}

func (h *EventHost) MovePointer(p Point) {
	h.mu.Lock()
	fns := h.pointer.snapshot()
	h.mu.Unlock()
	for _, fn := range fns {
		fn(p)
	}
}

func (h *EventHost) SetTheme(t Theme) {
	h.mu.Lock()
	changed := h.theme != t
	h.theme = t
	fns := h.themes.snapshot()
	h.mu.Unlock()
	if !changed {
		return
	}
	for _, fn := range fns {
		fn(t)
	}
}

// Listeners is the number of registered callbacks across all streams.
func (h *EventHost) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.resize.fns) + len(h.pointer.fns) + len(h.themes.fns)
}

// reducedBelow returns a classifier that reports reduced detail when the
// viewport is narrower than limit.
func reducedBelow(limit int) func(width, height int) bool {
	return func(width, _ int) bool { return width < limit }
}

// forcedDetail wraps classify so that an explicit detail setting wins.
func forcedDetail(d Detail, classify func(width, height int) bool) func(width, height int) bool {
	switch d {
	case DetailFull:
		return func(int, int) bool { return false }
	case DetailReduced:
		return func(int, int) bool { return true }
	default:
		return classify
	}
}
