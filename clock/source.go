package clock

import (
	"sync"
	"time"
)

// Source provides a millisecond tick counter and a coarse blocking
// sleep. Ticks is monotonically non-decreasing within a process; Sleep
// blocks for approximately ms milliseconds with worst-case overshoot of
// parameter.WorstClockAccuracy
type Source interface {
	Ticks() uint32
	Sleep(ms uint32)
}

// systemSource counts milliseconds since its creation using the process
// monotonic clock
type systemSource struct {
	epoch time.Time
}

func (s *systemSource) Ticks() uint32 {
	return uint32(time.Since(s.epoch) / time.Millisecond)
}

func (s *systemSource) Sleep(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

var (
	sysMu  sync.Mutex
	sysSrc *systemSource
)

// System returns the shared wall-clock source, starting its epoch on
// first use
func System() Source {
	sysMu.Lock()
	defer sysMu.Unlock()
	if sysSrc == nil {
		sysSrc = &systemSource{epoch: time.Now()}
	}
	return sysSrc
}

// GetTicks returns milliseconds since the timing subsystem started, or
// 0 if no timing call has started it yet
func GetTicks() uint32 {
	sysMu.Lock()
	src := sysSrc
	sysMu.Unlock()
	if src == nil {
		return 0
	}
	return src.Ticks()
}
