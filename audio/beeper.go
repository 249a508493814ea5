package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	blipDuration = 60 * time.Millisecond
	blipAttack   = 5 * time.Millisecond
	blipRelease  = 25 * time.Millisecond
)

// Beeper plays short blips for timer events through the system speaker
type Beeper struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewBeeper creates an unopened beeper
func NewBeeper() *Beeper {
	return &Beeper{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
func (b *Beeper) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Blip plays a short tone at freq Hz. Silently ignored before
// Initialize, so callers need no audio-availability branching
func (b *Beeper) Blip(freq float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	osc := newOscillator(freq, blipDuration, WaveSine, sampleRate)
	speaker.Lock()
	b.mixer.Add(newEnvelope(osc, blipDuration, blipAttack, blipRelease, sampleRate))
	speaker.Unlock()
}

// Cleanup silences the mixer. beep has no speaker Close; clearing the
// mixer is enough to stop artifacts on exit
func (b *Beeper) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}
