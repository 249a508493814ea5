package event

import "sync"

// Type identifies a category of event in the host queue.
// Valid ids lie in [0, parameter.MaxEventTypes)
type Type int32

// Event is one queue entry. Events posted by the timer registry share
// their payload through a reference-counted proxy
type Event struct {
	Type  Type
	Proxy *Proxy
}

// New builds an event carrying payload. A nil payload produces an
// event without a proxy
func New(t Type, payload any) Event {
	return Event{Type: t, Proxy: NewProxy(payload)}
}

// Payload returns the payload carried by the event, nil when absent
func (ev Event) Payload() any {
	if ev.Proxy == nil {
		return nil
	}
	return ev.Proxy.Payload()
}

// Done releases the queue-side reference to the payload. Consumers
// call it once per delivered event, after the payload is no longer
// needed
func (ev Event) Done() {
	if ev.Proxy != nil {
		ev.Proxy.DetachFromQueue()
	}
}

var (
	regMu      sync.RWMutex
	nameToType = make(map[string]Type)
	typeToName = make(map[Type]string)
)

// RegisterType maps a diagnostic name to an event type id
func RegisterType(name string, t Type) {
	regMu.Lock()
	defer regMu.Unlock()
	nameToType[name] = t
	typeToName[t] = name
}

// TypeName returns the registered name for t, empty if unknown
func TypeName(t Type) string {
	regMu.RLock()
	defer regMu.RUnlock()
	return typeToName[t]
}

// TypeByName returns the event type registered under name
func TypeByName(name string) (Type, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	t, ok := nameToType[name]
	return t, ok
}
