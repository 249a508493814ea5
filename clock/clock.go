package clock

import (
	"fmt"

	"github.com/wszqkzqk/gametick/parameter"
)

// Clock measures time between successive frames and optionally blocks
// the caller to cap the frame rate. Single-threaded per instance
type Clock struct {
	src      Source
	lastTick uint32

	fpsCount int
	fpsTick  uint32
	fps      float64

	timePassed int
	rawPassed  int
}

// New creates a frame clock on the shared wall-clock source
func New() *Clock {
	return NewWithSource(System())
}

// NewWithSource creates a frame clock on an explicit source, used by
// tests to drive virtual time
func NewWithSource(src Source) *Clock {
	return &Clock{
		src:      src,
		lastTick: src.Ticks(),
	}
}

// Tick ends the current frame. With framerate > 0 it first sleeps off
// the remaining frame budget using the coarse sleep. Returns
// milliseconds since the previous Tick
func (c *Clock) Tick(framerate float64) int {
	return c.tick(framerate, false)
}

// TickBusyLoop is Tick with accurate pacing: the frame budget is
// enforced with AccurateDelay at the cost of a short busy-wait
func (c *Clock) TickBusyLoop(framerate float64) int {
	return c.tick(framerate, true)
}

func (c *Clock) tick(framerate float64, useAccurate bool) int {
	if framerate > 0 {
		frameBudget := int((1.0 / framerate) * parameter.MillisPerSecond)
		c.rawPassed = int(c.src.Ticks() - c.lastTick)
		delay := frameBudget - c.rawPassed

		if useAccurate {
			AccurateDelay(c.src, delay)
		} else {
			if delay < 0 {
				delay = 0
			}
			c.src.Sleep(uint32(delay))
		}
	}

	now := c.src.Ticks()
	c.timePassed = int(now - c.lastTick)
	c.fpsCount++
	c.lastTick = now
	if framerate <= 0 {
		c.rawPassed = c.timePassed
	}

	if c.fpsTick == 0 {
		// First tick primes the measurement window
		c.fpsCount = 0
		c.fpsTick = now
	} else if c.fpsCount >= parameter.FPSWindowFrames && now > c.fpsTick {
		c.fps = float64(c.fpsCount) / (float64(now-c.fpsTick) / parameter.MillisPerSecond)
		c.fpsCount = 0
		c.fpsTick = now
	}

	return c.timePassed
}

// GetFPS returns the smoothed frame rate, recomputed every
// parameter.FPSWindowFrames ticks. 0 until the first window completes
func (c *Clock) GetFPS() float64 {
	return c.fps
}

// GetTime returns milliseconds used by the previous frame, including
// any time Tick spent sleeping
func (c *Clock) GetTime() int {
	return c.timePassed
}

// GetRawtime returns milliseconds the previous frame spent outside
// Tick. Equal to GetTime when no frame cap was requested
func (c *Clock) GetRawtime() int {
	return c.rawPassed
}

func (c *Clock) String() string {
	return fmt.Sprintf("<Clock(fps=%.2f)>", c.fps)
}
