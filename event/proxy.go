package event

import (
	"runtime"
	"sync/atomic"
)

// Releaser is implemented by payloads that must be told when the last
// shared reference to them is dropped
type Releaser interface {
	Release()
}

// spinLock is a short-held atomic lock guarding the proxy counters.
// Never acquire a registry mutex while holding it
type spinLock struct {
	held atomic.Bool
}

func (l *spinLock) lock() {
	for !l.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (l *spinLock) unlock() {
	l.held.Store(false)
}

// Proxy is a shared holder for a user-supplied event payload. It has
// two independent owners: the timer registry entry that created it and
// the event queue holding posted-but-unconsumed events referencing it.
// Whichever owner observes, under the spin lock, that the other side is
// finished performs the destruction, exactly once
type Proxy struct {
	payload any

	lock          spinLock
	numOnQueue    int
	ownerReleased bool
	destroyed     bool
}

// NewProxy wraps payload for shared ownership. Returns nil for a nil
// payload
func NewProxy(payload any) *Proxy {
	if payload == nil {
		return nil
	}
	return &Proxy{payload: payload}
}

// Payload returns the held payload
func (p *Proxy) Payload() any {
	return p.payload
}

// attachToQueue records one more event-queue reference. Called by Post
// before the event becomes visible to the consumer
func (p *Proxy) attachToQueue() {
	p.lock.lock()
	p.numOnQueue++
	p.lock.unlock()
}

// DetachFromQueue drops one event-queue reference and destroys the
// payload if the registry side has already released ownership
func (p *Proxy) DetachFromQueue() {
	p.lock.lock()
	p.numOnQueue--
	destroy := p.numOnQueue <= 0 && p.ownerReleased && !p.destroyed
	if destroy {
		p.destroyed = true
	}
	p.lock.unlock()

	if destroy {
		p.destroy()
	}
}

// ReleaseOwner marks the registry side finished with the proxy and
// destroys the payload if no queue references remain
func (p *Proxy) ReleaseOwner() {
	p.lock.lock()
	p.ownerReleased = true
	destroy := p.numOnQueue <= 0 && !p.destroyed
	if destroy {
		p.destroyed = true
	}
	p.lock.unlock()

	if destroy {
		p.destroy()
	}
}

// destroy runs outside the spin lock; the destroyed latch guarantees
// at most one run even against surplus Done or ReleaseOwner calls
func (p *Proxy) destroy() {
	if r, ok := p.payload.(Releaser); ok {
		r.Release()
	}
}
