package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/wszqkzqk/gametick/audio"
	"github.com/wszqkzqk/gametick/clock"
	"github.com/wszqkzqk/gametick/event"
	"github.com/wszqkzqk/gametick/parameter"
	"github.com/wszqkzqk/gametick/timer"
)

// Demo event types
const (
	eventColorCycle = event.Type(parameter.UserEventBase)
	eventBeep       = event.Type(parameter.UserEventBase + 1)
	eventOneShot    = event.Type(parameter.UserEventBase + 2)
)

// beepPayload rides the timer registry's payload proxy into the queue
type beepPayload struct {
	Freq float64
}

var (
	fpsFlag  = flag.Float64("fps", 60, "Target frame rate, 0 = uncapped")
	busyFlag = flag.Bool("busy", false, "Use busy-loop pacing for exact frame budget")
	muteFlag = flag.Bool("mute", false, "Disable timer beeps")
)

var palette = []tcell.Color{
	tcell.ColorTeal,
	tcell.ColorGreen,
	tcell.ColorOlive,
	tcell.ColorMaroon,
	tcell.ColorPurple,
}

func main() {
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// Restore the terminal before the stack trace is printed
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "tickdemo crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	event.RegisterType("ColorCycle", eventColorCycle)
	event.RegisterType("Beep", eventBeep)
	event.RegisterType("OneShot", eventOneShot)

	beeper := audio.NewBeeper()
	if !*muteFlag {
		// Run silent when no audio device is available
		_ = beeper.Initialize()
	}
	defer beeper.Cleanup()

	var screenReady atomic.Bool
	screenReady.Store(true)

	queue := event.NewQueue()
	svc := timer.NewService()
	defer svc.Close()
	reg := timer.NewRegistry(svc, queue, screenReady.Load, nil)
	defer reg.Quit()

	// Color rotation forever, beeps forever, and a burst of five
	// one-shot markers to show finite repetition
	if err := reg.Set(eventColorCycle, 700, 0); err != nil {
		panic(err)
	}
	if err := reg.Set(event.New(eventBeep, &beepPayload{Freq: 660}), 1500, 0); err != nil {
		panic(err)
	}
	if err := reg.Set(eventOneShot, 400, 5); err != nil {
		panic(err)
	}

	// Dedicated input goroutine
	keyCh := make(chan *tcell.EventKey, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			switch tev := ev.(type) {
			case *tcell.EventKey:
				keyCh <- tev
			case nil:
				return
			}
		}
	}()

	statPosted := reg.Status().Ints.Get("timer.posted")
	statExpired := reg.Status().Ints.Get("timer.expired")
	statFPS := reg.Status().Floats.Get("clock.fps")

	clk := clock.New()
	colorIdx := 0
	oneShots := 0
	running := true

	for running {
		select {
		case key := <-keyCh:
			switch {
			case key.Key() == tcell.KeyEscape, key.Key() == tcell.KeyCtrlC:
				running = false
			case key.Rune() == 'q':
				running = false
			}
		default:
		}

		for _, ev := range queue.Consume() {
			switch ev.Type {
			case eventColorCycle:
				colorIdx = (colorIdx + 1) % len(palette)
			case eventBeep:
				if p, ok := ev.Payload().(*beepPayload); ok {
					beeper.Blip(p.Freq)
				}
			case eventOneShot:
				oneShots++
			}
			ev.Done()
		}

		if *busyFlag {
			clk.TickBusyLoop(*fpsFlag)
		} else {
			clk.Tick(*fpsFlag)
		}
		statFPS.Set(clk.GetFPS())

		draw(screen, clk, palette[colorIdx], oneShots,
			statPosted.Load(), statExpired.Load())
	}
}

func draw(screen tcell.Screen, clk *clock.Clock, accent tcell.Color, oneShots int, posted, expired int64) {
	screen.Clear()

	style := tcell.StyleDefault.Foreground(accent)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	puts(screen, 2, 1, style, clk.String())
	puts(screen, 2, 2, dim, fmt.Sprintf("frame time %3d ms  raw %3d ms", clk.GetTime(), clk.GetRawtime()))
	puts(screen, 2, 3, dim, fmt.Sprintf("events posted %d  timers expired %d", posted, expired))
	puts(screen, 2, 4, dim, fmt.Sprintf("one-shot burst %d/5", oneShots))
	puts(screen, 2, 6, dim, "q / ESC to quit")

	screen.Show()
}

func puts(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
