package timer

import (
	"sync"

	"github.com/wszqkzqk/gametick/event"
)

// Package-level registry mirroring the process-wide timer table of the
// host. The mutex value itself is immortal; only the registry behind
// it is created and torn down
var (
	defaultMu  sync.Mutex
	defaultReg *Registry
	defaultSvc *Service
)

// Init prepares the package-level registry used by Set and Quit.
// ready gates event posting; nil means always ready. Repeated calls
// are no-ops until Quit
func Init(q *event.Queue, ready func() bool) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultReg != nil {
		return
	}
	defaultSvc = NewService()
	defaultReg = NewRegistry(defaultSvc, q, ready, nil)
}

// Set installs, replaces or cancels a repeating event timer on the
// package-level registry. Returns ErrNotInitialized before Init
func Set(source any, millis, loops int) error {
	defaultMu.Lock()
	r := defaultReg
	defaultMu.Unlock()

	if r == nil {
		return ErrNotInitialized
	}
	return r.Set(source, millis, loops)
}

// Quit destroys all package-level timers and stops their service,
// waiting for in-flight callbacks to finish
func Quit() {
	defaultMu.Lock()
	r, s := defaultReg, defaultSvc
	defaultReg, defaultSvc = nil, nil
	defaultMu.Unlock()

	if r != nil {
		r.Quit()
	}
	if s != nil {
		s.Close()
	}
}
