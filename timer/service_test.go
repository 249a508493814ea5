package timer

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestServiceFiresAndRearms(t *testing.T) {
	svc := NewService()
	defer svc.Close()

	var fired atomic.Int32
	done := make(chan struct{})

	err := svc.Add(10, func(interval uint32, id int64) uint32 {
		if fired.Add(1) == 3 {
			close(done)
			return 0
		}
		return interval
	}, 1)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Timer did not reach 3 firings, got %d", fired.Load())
	}

	// Terminated timers must not fire again
	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 3 {
		t.Errorf("Expected exactly 3 firings after termination, got %d", got)
	}
}

func TestServiceCloseStopsTimers(t *testing.T) {
	svc := NewService()

	var fired atomic.Int32
	if err := svc.Add(5, func(interval uint32, id int64) uint32 {
		fired.Add(1)
		return interval
	}, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	svc.Close()

	after := fired.Load()
	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != after {
		t.Errorf("Timer fired after Close: %d then %d", after, got)
	}
}

func TestServiceAddAfterClose(t *testing.T) {
	svc := NewService()
	svc.Close()

	err := svc.Add(10, func(uint32, int64) uint32 { return 0 }, 1)
	if !errors.Is(err, ErrServiceClosed) {
		t.Errorf("Expected ErrServiceClosed, got %v", err)
	}
}
