package timer

import (
	"sync"
	"sync/atomic"

	"github.com/wszqkzqk/gametick/event"
	"github.com/wszqkzqk/gametick/parameter"
	"github.com/wszqkzqk/gametick/status"
)

// entry is one live timer. Mutated only under the registry mutex
type entry struct {
	id        int64
	eventType event.Type
	proxy     *event.Proxy
	repeat    int // > 0 firings left, < 0 unlimited
}

// Registry is the concurrent catalogue of live timers. It is written
// by the caller thread through Set/Quit and by service goroutines
// through the dispatch callback; one mutex covers all access. At most
// one timer exists per event type
type Registry struct {
	mu     sync.Mutex
	timers map[int64]*entry
	lastID int64

	svc   *Service
	queue *event.Queue
	ready func() bool // Gates posting; nil = always ready

	stats       *status.Registry
	statSet     *atomic.Int64
	statPosted  *atomic.Int64
	statDropped *atomic.Int64
	statExpired *atomic.Int64
}

// NewRegistry creates a registry dispatching through svc into q.
// ready gates event posting the way an uninitialized video subsystem
// does: while it returns false, firings suppress themselves and the
// timer self-terminates. stats may be nil
func NewRegistry(svc *Service, q *event.Queue, ready func() bool, stats *status.Registry) *Registry {
	if stats == nil {
		stats = status.NewRegistry()
	}
	return &Registry{
		timers:      make(map[int64]*entry),
		svc:         svc,
		queue:       q,
		ready:       ready,
		stats:       stats,
		statSet:     stats.Ints.Get("timer.set"),
		statPosted:  stats.Ints.Get("timer.posted"),
		statDropped: stats.Ints.Get("timer.dropped"),
		statExpired: stats.Ints.Get("timer.expired"),
	}
}

// Status returns the metrics registry the timers report into
func (r *Registry) Status() *status.Registry {
	return r.stats
}

// Set installs, replaces or cancels the repeating timer for an event
// type. source is either a bare type id (event.Type or int) or an
// event.Event whose payload rides along on every firing. Any existing
// timer for the same type is removed first. millis <= 0 cancels
// without installing. loops <= 0 repeats without limit; loops = N
// posts exactly N events
func (r *Registry) Set(source any, millis int, loops int) error {
	var (
		evType  event.Type
		payload any
	)
	switch v := source.(type) {
	case event.Type:
		evType = v
	case int:
		evType = event.Type(v)
	case event.Event:
		evType = v.Type
		payload = v.Payload()
	case *event.Event:
		evType = v.Type
		payload = v.Payload()
	default:
		return ErrEventSource
	}
	if evType < 0 || evType >= parameter.MaxEventTypes {
		return event.ErrTypeRange
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearType(evType)

	// Pure cancellation
	if millis <= 0 {
		return nil
	}

	r.lastID++
	e := &entry{
		id:        r.lastID,
		eventType: evType,
		proxy:     event.NewProxy(payload),
		repeat:    loops,
	}
	if loops <= 0 {
		e.repeat = -1
	}
	r.timers[e.id] = e

	if err := r.svc.Add(uint32(millis), r.fire, e.id); err != nil {
		r.freeEntry(e)
		return err
	}
	r.statSet.Add(1)
	return nil
}

// Quit destroys every live timer. In-flight callbacks find no entry on
// their next firing and terminate their service timer
func (r *Registry) Quit() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.timers {
		r.freeEntry(e)
	}
}

// Active returns the number of live timers
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// fire is the service dispatch callback. Lookup is by timer id, not
// event type, so a stale callback racing a replacement Set finds no
// entry and terminates without touching the new timer
func (r *Registry) fire(interval uint32, id int64) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.timers[id]
	if !ok {
		return 0
	}

	if r.ready == nil || r.ready() {
		// Callback errors have no reporting path; a full queue only
		// shows up in the drop counter
		if err := event.Post(r.queue, e.eventType, e.proxy); err != nil {
			r.statDropped.Add(1)
		} else {
			r.statPosted.Add(1)
		}
	} else {
		e.repeat = 0
	}

	if e.repeat > 0 {
		e.repeat--
	}
	if e.repeat == 0 {
		r.freeEntry(e)
		r.statExpired.Add(1)
		return 0
	}
	return interval
}

// clearType removes the timer for an event type if one exists.
// Caller holds the mutex
func (r *Registry) clearType(t event.Type) {
	for _, e := range r.timers {
		if e.eventType == t {
			r.freeEntry(e)
			return
		}
	}
}

// freeEntry removes e and drops the registry's payload reference. The
// payload is destroyed here only when no queue references remain;
// otherwise the consumer side finishes it. Caller holds the mutex
func (r *Registry) freeEntry(e *entry) {
	delete(r.timers, e.id)
	if e.proxy != nil {
		e.proxy.ReleaseOwner()
	}
}
