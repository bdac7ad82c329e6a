// Package terminal turns tcell terminal events into input snapshots.
//
// Terminals report key presses and auto-repeats but never releases, so the
// Adapter treats a key as held until HoldFor elapses without another event
// for it. Modifier keys are only seen alongside another key and share its
// hold. Mouse buttons are tracked from the button mask tcell reports with
// every mouse event. Wheel ticks and pointer motion are accumulated between
// snapshots and reported for one frame.
package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ineffable/internal/input/source"
)

// DefaultHoldFor covers the usual delay before terminal auto-repeat starts.
const DefaultHoldFor = 300 * time.Millisecond

// Adapter accumulates tcell events and produces one snapshot per frame.
// It is safe to feed events from the goroutine polling the screen while
// another goroutine takes snapshots.
type Adapter struct {
	mu      sync.Mutex
	holdFor time.Duration
	now     func() time.Time

	keys    map[source.Source]time.Time
	buttons tcell.ButtonMask

	wheelX, wheelY   float64
	motionX, motionY float64
	lastX, lastY     int
	havePos          bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithHoldFor sets how long a key stays held after its last event.
func WithHoldFor(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.holdFor = d
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		holdFor: DefaultHoldFor,
		now:     time.Now,
		keys:    make(map[source.Source]time.Time),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HandleEvent records ev. It reports whether the event carried input.
func (a *Adapter) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		sources := Translate(e)
		if len(sources) == 0 {
			return false
		}
		a.mu.Lock()
		defer a.mu.Unlock()
		at := a.now()
		for _, s := range sources {
			a.keys[s] = at
		}
		return true

	case *tcell.EventMouse:
		a.handleMouse(e)
		return true

	case *tcell.EventFocus:
		if !e.Focused {
			a.Reset()
		}
		return false

	default:
		return false
	}
}

func (a *Adapter) handleMouse(e *tcell.EventMouse) {
	a.mu.Lock()
	defer a.mu.Unlock()

	btn := e.Buttons()
	a.buttons = btn & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle)

	if btn&tcell.WheelUp != 0 {
		a.wheelY++
	}
	if btn&tcell.WheelDown != 0 {
		a.wheelY--
	}
	if btn&tcell.WheelRight != 0 {
		a.wheelX++
	}
	if btn&tcell.WheelLeft != 0 {
		a.wheelX--
	}

	x, y := e.Position()
	if a.havePos {
		a.motionX += float64(x - a.lastX)
		// Terminal rows grow downward; motion up is positive.
		a.motionY += float64(a.lastY - y)
	}
	a.lastX, a.lastY, a.havePos = x, y, true
}

// Snapshot returns the input state for the current frame and clears the
// one-frame wheel and motion values.
func (a *Adapter) Snapshot() *source.Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	f := source.NewFrame()
	now := a.now()
	for s, seen := range a.keys {
		if now.Sub(seen) >= a.holdFor {
			delete(a.keys, s)
			continue
		}
		f.Press(s)
	}

	if a.buttons&tcell.ButtonPrimary != 0 {
		f.Press(source.MouseLeft)
	}
	if a.buttons&tcell.ButtonSecondary != 0 {
		f.Press(source.MouseRight)
	}
	if a.buttons&tcell.ButtonMiddle != 0 {
		f.Press(source.MouseMiddle)
	}

	f.Set(source.AxisScrollWheelX, a.wheelX)
	f.Set(source.AxisScrollWheelY, a.wheelY)
	f.Set(source.AxisMouseMotionX, a.motionX)
	f.Set(source.AxisMouseMotionY, a.motionY)
	a.wheelX, a.wheelY, a.motionX, a.motionY = 0, 0, 0, 0
	return f
}

// Reset releases every key and button.
func (a *Adapter) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.keys)
	a.buttons = 0
	a.wheelX, a.wheelY, a.motionX, a.motionY = 0, 0, 0, 0
	a.havePos = false
}
