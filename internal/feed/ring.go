// Package feed keeps the bounded list of most recent live events.
package feed

import (
	"context"
	"sync"

	"github.com/couchcryptid/nyc-live-events/internal/domain"
)

// DefaultCapacity is the number of events the live feed keeps.
const DefaultCapacity = 50

// Ring is a fixed-capacity event buffer. When full, pushing drops the oldest
// entry. It is safe for concurrent use.
type Ring struct {
	mu    sync.RWMutex
	buf   []domain.Event
	start int // index of the oldest event
	n     int
}

// NewRing returns an empty Ring. A non-positive capacity uses
// DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{buf: make([]domain.Event, capacity)}
}

// Push appends e as the newest event.
func (r *Ring) Push(e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.push(e)
}

func (r *Ring) push(e domain.Event) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = e
		r.n++
		return
	}
	r.buf[r.start] = e
	r.start = (r.start + 1) % len(r.buf)
}

// LoadBatch pushes events in order. It never fails; the error return lets the
// ring act as a feed sink.
func (r *Ring) LoadBatch(_ context.Context, events []domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range events {
		r.push(e)
	}
	return nil
}

// Snapshot returns a copy of the buffered events, newest first.
func (r *Ring) Snapshot() []domain.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Event, r.n)
	for i := range r.n {
		out[i] = r.buf[(r.start+r.n-1-i)%len(r.buf)]
	}
	return out
}

// Chronological returns a copy of the buffered events, oldest first.
func (r *Ring) Chronological() []domain.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Event, r.n)
	for i := range r.n {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// Len returns the number of buffered events.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.n
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}
