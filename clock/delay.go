package clock

import "github.com/wszqkzqk/gametick/parameter"

// AccurateDelay blocks for approximately ms milliseconds on src and
// returns the measured elapsed time. The bulk of the interval is burned
// with the coarse sleep, held short of the target so it cannot
// overshoot; the remainder is busy-waited to absorb sleep jitter.
// Non-positive ms returns 0 immediately
func AccurateDelay(src Source, ms int) int {
	if ms <= 0 {
		return 0
	}

	start := src.Ticks()
	if ms >= parameter.WorstClockAccuracy {
		coarse := (ms - parameter.AccurateDelayMargin) - (ms % parameter.WorstClockAccuracy)
		if coarse >= parameter.WorstClockAccuracy {
			src.Sleep(uint32(coarse))
		}
	}
	for int(src.Ticks()-start) < ms {
	}

	return int(src.Ticks() - start)
}

// Delay blocks accurately for ms milliseconds of wall time and returns
// the elapsed time. Negative values clamp to 0
func Delay(ms int) int {
	if ms < 0 {
		ms = 0
	}
	return AccurateDelay(System(), ms)
}

// Wait blocks with the coarse sleep primitive and returns the elapsed
// time. Cheaper than Delay but subject to the sleep's accuracy.
// Negative values clamp to 0
func Wait(ms int) int {
	if ms < 0 {
		ms = 0
	}
	src := System()
	start := src.Ticks()
	src.Sleep(uint32(ms))
	return int(src.Ticks() - start)
}
