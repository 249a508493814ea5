package timer

import (
	"testing"
	"time"

	"github.com/wszqkzqk/gametick/event"
)

func drainByType(q *event.Queue, counts map[event.Type]int) {
	for _, ev := range q.Consume() {
		counts[ev.Type]++
		ev.Done()
	}
}

// TestFiniteTimerEndToEnd runs a real 3-shot timer through the service
// and the queue: exactly 3 events arrive, then the registry is empty
func TestFiniteTimerEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("real-time timer test")
	}

	reg, q := newTestRegistry(t, nil)
	if err := reg.Set(24, 30, 3); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(300 * time.Millisecond)

	counts := make(map[event.Type]int)
	drainByType(q, counts)
	if counts[24] != 3 {
		t.Errorf("Expected exactly 3 events of type 24, got %d", counts[24])
	}
	if reg.Active() != 0 {
		t.Errorf("Expected registry empty after finite timer, got %d", reg.Active())
	}
}

// TestUnlimitedTimerCancellation checks an unlimited timer keeps
// posting until cancelled, then goes quiet
func TestUnlimitedTimerCancellation(t *testing.T) {
	if testing.Short() {
		t.Skip("real-time timer test")
	}

	reg, q := newTestRegistry(t, nil)
	if err := reg.Set(25, 30, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	counts := make(map[event.Type]int)
	drainByType(q, counts)
	if counts[25] < 4 {
		t.Errorf("Expected at least 4 events before cancel, got %d", counts[25])
	}

	if err := reg.Set(25, 0, 0); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	// Let any in-flight callback finish, then drain
	time.Sleep(60 * time.Millisecond)
	drainByType(q, counts)

	quiet := make(map[event.Type]int)
	time.Sleep(150 * time.Millisecond)
	drainByType(q, quiet)
	if quiet[25] != 0 {
		t.Errorf("Expected no events after cancellation drain, got %d", quiet[25])
	}
}

// TestReplacementEndToEnd bounds the event count when a timer is
// replaced shortly after creation: at most 1 from the old timer plus
// exactly 2 from its finite replacement
func TestReplacementEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("real-time timer test")
	}

	reg, q := newTestRegistry(t, nil)
	if err := reg.Set(26, 100, 5); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if err := reg.Set(26, 100, 2); err != nil {
		t.Fatalf("Replacement Set failed: %v", err)
	}

	time.Sleep(500 * time.Millisecond)

	counts := make(map[event.Type]int)
	drainByType(q, counts)
	if counts[26] < 2 || counts[26] > 3 {
		t.Errorf("Expected 2-3 events across replacement, got %d", counts[26])
	}
	if reg.Active() != 0 {
		t.Errorf("Expected registry empty after replacement expired, got %d", reg.Active())
	}
}
