package clock

import "sync"

// MockSource provides a controllable millisecond source for testing.
// Sleep advances virtual time instead of blocking, optionally
// overshooting to model a coarse sleep primitive
type MockSource struct {
	mu        sync.Mutex
	now       uint32
	autoTick  uint32 // Ticks per poll, lets busy-wait loops make progress
	overshoot uint32 // Extra ms added to every Sleep
	slept     []uint32
}

// NewMockSource creates a mock source starting at the given tick count
func NewMockSource(start uint32) *MockSource {
	return &MockSource{now: start}
}

// Ticks returns the current virtual time, advancing it by the
// configured auto-tick amount per call
func (m *MockSource) Ticks() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.now
	m.now += m.autoTick
	return t
}

// Sleep advances virtual time by ms plus the configured overshoot and
// records the requested duration
func (m *MockSource) Sleep(ms uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += ms + m.overshoot
	m.slept = append(m.slept, ms)
}

// Advance moves virtual time forward by ms
func (m *MockSource) Advance(ms uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += ms
}

// SetAutoTick makes every Ticks call advance time by ms, so busy-wait
// polling terminates under the mock
func (m *MockSource) SetAutoTick(ms uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoTick = ms
}

// SetOvershoot adds a fixed per-Sleep overshoot, modeling jitter
func (m *MockSource) SetOvershoot(ms uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overshoot = ms
}

// Slept returns the coarse sleep durations requested so far
func (m *MockSource) Slept() []uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uint32, len(m.slept))
	copy(out, m.slept)
	return out
}
