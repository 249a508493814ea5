package timer

import (
	"sync"
	"time"
)

// Callback runs on a service goroutine with the interval that just
// elapsed and the opaque id supplied at Add. The returned value is the
// next interval in milliseconds; 0 terminates the timer
type Callback func(interval uint32, id int64) uint32

// Service arms repeating timers the platform way: one goroutine per
// armed timer, each re-arming a single time.Timer between firings.
// Callbacks of different timers may run concurrently
type Service struct {
	mu       sync.Mutex
	closed   bool
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewService creates a timer service
func NewService() *Service {
	return &Service{
		stopChan: make(chan struct{}),
	}
}

// Add arms a timer that first fires after interval milliseconds.
// Returns ErrServiceClosed after Close
func (s *Service) Add(interval uint32, cb Callback, id int64) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrServiceClosed
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(interval, cb, id)
	return nil
}

func (s *Service) run(interval uint32, cb Callback, id int64) {
	defer s.wg.Done()

	timer := time.NewTimer(time.Duration(interval) * time.Millisecond)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
		case <-s.stopChan:
			return
		}

		next := cb(interval, id)
		if next == 0 {
			return
		}
		interval = next
		timer.Reset(time.Duration(interval) * time.Millisecond)
	}
}

// Close stops every armed timer and waits for the goroutines to exit.
// A callback already past its stop check completes its firing first
func (s *Service) Close() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		close(s.stopChan)
		s.wg.Wait()
	})
}
