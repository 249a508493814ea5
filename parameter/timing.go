package parameter

// Coarse Sleep Accuracy
const (
	// WorstClockAccuracy is the worst-case overshoot of the coarse sleep
	// primitive in milliseconds. AccurateDelay burns interval below this
	// threshold with a busy-wait
	WorstClockAccuracy = 12

	// AccurateDelayMargin is subtracted from the coarse sleep portion so
	// the sleep cannot overshoot the requested delay
	AccurateDelayMargin = 2
)

// Frame Pacing
const (
	// FPSWindowFrames is the tick count per smoothed FPS recomputation
	FPSWindowFrames = 10

	// MillisPerSecond for frame budget math
	MillisPerSecond = 1000
)
