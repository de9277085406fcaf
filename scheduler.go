package main

import (
	"sort"
	"sync"
	"time"
)

type FrameID uint64

// FrameScheduler runs a callback at the next display frame. Cancelling an
// id that already ran or was never issued is a no-op.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

// ManualScheduler holds requested frames until Advance is called.
type ManualScheduler struct {
	mu      sync.Mutex
	next    FrameID
	pending map[FrameID]func(time.Time)
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[FrameID]func(time.Time))}
}

func (s *ManualScheduler) RequestFrame(fn func(now time.Time)) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending[s.next] = fn
	return s.next
}

func (s *ManualScheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// Advance runs every frame requested before the call, in request order,
// and returns how many ran. Frames requested by those callbacks wait for
// the next Advance.
func (s *ManualScheduler) Advance(now time.Time) int {
	s.mu.Lock()
	ids := make([]FrameID, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(time.Time), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.pending[id])
		delete(s.pending, id)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(now)
	}
	return len(fns)
}

func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
