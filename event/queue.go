package event

import (
	"errors"
	"sync/atomic"

	"github.com/wszqkzqk/gametick/parameter"
)

var (
	// ErrTypeRange reports an event type id outside [0, MaxEventTypes)
	ErrTypeRange = errors.New("event type out of range")

	// ErrQueueFull reports a rejected post on a full ring
	ErrQueueFull = errors.New("event queue full")
)

// Queue is a lock-free MPSC ring buffer for events
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (game loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Push rejects when full. Overwriting unread events would
// strand the queue reference of any payload proxy they carry
type Queue struct {
	events    [parameter.EventQueueSize]Event
	published [parameter.EventQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                         // Read index
	tail      atomic.Uint64                         // Write index
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push adds an event using lock-free CAS with published flags.
// Safe for concurrent producers. Returns false when the ring is full
func (q *Queue) Push(ev Event) bool {
	for {
		currentTail := q.tail.Load()
		if currentTail-q.head.Load() >= parameter.EventQueueSize {
			return false
		}

		if q.tail.CompareAndSwap(currentTail, currentTail+1) {
			idx := currentTail & parameter.EventBufferMask

			q.events[idx] = ev
			q.published[idx].Store(true) // MUST be after write
			return true
		}
	}
}

// Consume returns all pending events in FIFO order and advances head.
// Single-consumer design; checks published flags for safety
func (q *Queue) Consume() []Event {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		result := make([]Event, 0, currentTail-currentHead)
		for i := currentHead; i < currentTail; i++ {
			idx := i & parameter.EventBufferMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.events[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns the approximate pending event count
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	return int(tail - head)
}

// Post enqueues an event of type t carrying proxy (nil for none). The
// proxy's queue reference is taken before the push and rolled back if
// the ring is full, so a dropped event never leaks a reference
func Post(q *Queue, t Type, proxy *Proxy) error {
	if t < 0 || t >= parameter.MaxEventTypes {
		return ErrTypeRange
	}

	if proxy != nil {
		proxy.attachToQueue()
	}
	if !q.Push(Event{Type: t, Proxy: proxy}) {
		if proxy != nil {
			proxy.DetachFromQueue()
		}
		return ErrQueueFull
	}
	return nil
}
