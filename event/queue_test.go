package event

import (
	"errors"
	"sync"
	"testing"

	"github.com/wszqkzqk/gametick/parameter"
)

func TestQueueBasic(t *testing.T) {
	q := NewQueue()

	q.Push(Event{Type: 10})
	q.Push(Event{Type: 11})
	q.Push(Event{Type: 12})

	events := q.Consume()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	for i, want := range []Type{10, 11, 12} {
		if events[i].Type != want {
			t.Errorf("Event %d out of order: got type %d, want %d", i, events[i].Type, want)
		}
	}

	if again := q.Consume(); len(again) != 0 {
		t.Errorf("Expected empty queue on second consume, got %d events", len(again))
	}
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue()
	const producers = 10
	const perProducer = 10

	var wg sync.WaitGroup
	wg.Add(producers)
	for i := 0; i < producers; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				if !q.Push(Event{Type: Type(id)}) {
					t.Errorf("Unexpected full queue")
					return
				}
			}
		}(i)
	}
	wg.Wait()

	events := q.Consume()
	if len(events) != producers*perProducer {
		t.Errorf("Expected %d events, got %d", producers*perProducer, len(events))
	}
}

func TestQueueRejectsWhenFull(t *testing.T) {
	q := NewQueue()

	for i := 0; i < parameter.EventQueueSize; i++ {
		if !q.Push(Event{Type: 1}) {
			t.Fatalf("Queue full after %d events, capacity is %d", i, parameter.EventQueueSize)
		}
	}
	if q.Push(Event{Type: 1}) {
		t.Errorf("Expected push rejection on full queue")
	}

	// Consuming frees the ring again
	if got := len(q.Consume()); got != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, got)
	}
	if !q.Push(Event{Type: 2}) {
		t.Errorf("Expected push to succeed after drain")
	}
}

func TestPostTypeRange(t *testing.T) {
	q := NewQueue()

	if err := Post(q, -1, nil); !errors.Is(err, ErrTypeRange) {
		t.Errorf("Expected ErrTypeRange for negative type, got %v", err)
	}
	if err := Post(q, parameter.MaxEventTypes, nil); !errors.Is(err, ErrTypeRange) {
		t.Errorf("Expected ErrTypeRange for type past range, got %v", err)
	}
	if q.Len() != 0 {
		t.Errorf("Expected no events after rejected posts, got %d", q.Len())
	}
}

func TestPostCarriesProxy(t *testing.T) {
	q := NewQueue()
	payload := &countingPayload{}
	proxy := NewProxy(payload)

	if err := Post(q, 24, proxy); err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	events := q.Consume()
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Payload() != payload {
		t.Errorf("Expected event to carry the payload")
	}

	// Owner done first, queue reference keeps the payload alive
	proxy.ReleaseOwner()
	if payload.released.Load() != 0 {
		t.Errorf("Payload released while still on queue")
	}
	events[0].Done()
	if got := payload.released.Load(); got != 1 {
		t.Errorf("Expected exactly one release after Done, got %d", got)
	}
}

func TestPostFullQueueRollsBackProxy(t *testing.T) {
	q := NewQueue()
	for i := 0; i < parameter.EventQueueSize; i++ {
		q.Push(Event{Type: 1})
	}

	payload := &countingPayload{}
	proxy := NewProxy(payload)

	if err := Post(q, 24, proxy); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Expected ErrQueueFull, got %v", err)
	}

	// The rolled-back queue reference must not block destruction
	proxy.ReleaseOwner()
	if got := payload.released.Load(); got != 1 {
		t.Errorf("Expected exactly one release, got %d", got)
	}
}

func TestTypeRegistry(t *testing.T) {
	RegisterType("DemoTick", 301)

	if name := TypeName(301); name != "DemoTick" {
		t.Errorf("Expected DemoTick, got %q", name)
	}
	if _, ok := TypeByName("Missing"); ok {
		t.Errorf("Expected lookup miss for unregistered name")
	}
	if tp, ok := TypeByName("DemoTick"); !ok || tp != 301 {
		t.Errorf("Expected type 301, got %d (ok=%v)", tp, ok)
	}
}
