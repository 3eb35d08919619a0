package sighting

import (
	"sync"
	"sync/atomic"
)

// DefaultEventBuffer is how many events a Tracker holds for a slow consumer
// before dropping the oldest.
const DefaultEventBuffer = 256

// Event reports a device that was newly seen or updated.
type Event struct {
	Type     EventType
	Sighting Sighting
}

// EventStats counts events published by a Tracker.
type EventStats struct {
	Written int64
	Dropped int64
}

// eventRing is a bounded event queue. Publishing never blocks: when the queue
// is full the oldest event is discarded. Publishing after close is a no-op.
type eventRing struct {
	ch      chan Event
	written atomic.Int64
	dropped atomic.Int64

	mu     sync.Mutex
	closed bool
}

func newEventRing(capacity int) *eventRing {
	if capacity <= 0 {
		capacity = DefaultEventBuffer
	}
	return &eventRing{ch: make(chan Event, capacity)}
}

func (r *eventRing) publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	for {
		select {
		case r.ch <- e:
			r.written.Add(1)
			return
		default:
		}

		select {
		case <-r.ch:
			r.dropped.Add(1)
		default:
		}
	}
}

func (r *eventRing) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.closed = true
		close(r.ch)
	}
}

func (r *eventRing) stats() EventStats {
	return EventStats{
		Written: r.written.Load(),
		Dropped: r.dropped.Load(),
	}
}
