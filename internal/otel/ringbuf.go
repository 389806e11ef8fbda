package otel

import "sync"

// DefaultRingSize is used when NewRingBuffer gets a non-positive size.
const DefaultRingSize = 256

// RingBuffer keeps the newest events. Safe for concurrent use.
type RingBuffer struct {
	mu    sync.Mutex
	buf   []Event
	next  int
	full  bool
	total uint64
}

// NewRingBuffer creates a ring holding up to size events.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{buf: make([]Event, size)}
}

// Push stores e, evicting the oldest event when full.
func (r *RingBuffer) Push(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.next] = e
	r.next++
	r.total++
	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

// Last returns up to n of the newest events, oldest first.
func (r *RingBuffer) Last(n int) []Event {
	if n <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.lenLocked()
	if count == 0 {
		return nil
	}
	n = min(n, count)

	out := make([]Event, 0, n)
	start := r.next - n
	if start < 0 {
		start += len(r.buf)
	}
	for i := range n {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

// Snapshot returns every buffered event, oldest first.
func (r *RingBuffer) Snapshot() []Event {
	return r.Last(r.Cap())
}

// Errors returns up to n of the newest error-level events, oldest first.
func (r *RingBuffer) Errors(n int) []Event {
	if n <= 0 {
		return nil
	}
	var out []Event
	for _, e := range r.Snapshot() {
		if e.Level == LevelError {
			out = append(out, e)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

// Len is the number of buffered events.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lenLocked()
}

func (r *RingBuffer) lenLocked() int {
	if r.full {
		return len(r.buf)
	}
	return r.next
}

// Cap is the ring size.
func (r *RingBuffer) Cap() int { return len(r.buf) }

// Total counts every event ever pushed, including evicted ones.
func (r *RingBuffer) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Stats counts buffered events by kind.
func (r *RingBuffer) Stats() map[EventKind]int {
	counts := make(map[EventKind]int)
	for _, e := range r.Snapshot() {
		counts[e.Kind]++
	}
	return counts
}
