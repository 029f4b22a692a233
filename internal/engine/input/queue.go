package input

import "sync/atomic"

// DefaultQueueSize is the queue capacity used when none is configured.
const DefaultQueueSize = 256

// Queue is a bounded FIFO of events. The event source pushes between
// ticks and the frame loop drains it once at the start of each tick.
type Queue struct {
	events  chan Event
	dropped atomic.Uint64
}

// NewQueue returns a queue holding at most size events.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{events: make(chan Event, size)}
}

// Push enqueues e without blocking. It returns false and counts the event
// as dropped when the queue is full.
func (q *Queue) Push(e Event) bool {
	select {
	case q.events <- e:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Drain calls fn for every queued event in arrival order and returns how
// many were handled. Events pushed by fn itself are left for the next
// drain.
func (q *Queue) Drain(fn func(Event)) int {
	n := len(q.events)
	for i := 0; i < n; i++ {
		fn(<-q.events)
	}
	return n
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Dropped returns how many events were discarded because the queue was
// full.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
