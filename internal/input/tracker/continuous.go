package tracker

import (
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/input/source"
)

// Continuous tracks a Continuous action.
//
// Hold bindings make the action active while held. Toggle bindings flip a
// latch each time their pulse is accepted by the gate. Starting a new hold
// clears the latch, so releasing a held control always stops the action.
type Continuous struct {
	holds   []inputsState
	toggles []*pulseState
	gate    Gate

	latch     bool
	active    bool
	prev      bool
	activeFor time.Duration
}

// NewContinuous builds a continuous tracker. Bindings of other kinds are
// ignored.
func NewContinuous(bindings []binding.Binding, opts Options) *Continuous {
	c := &Continuous{gate: NewGate(opts.AcceptanceDelay)}
	for _, b := range bindings {
		cb, ok := b.(binding.ContinuousBinding)
		if !ok {
			continue
		}
		switch cb.Mode {
		case binding.ContinuousHold:
			c.holds = append(c.holds, newInputs(cb.Inputs, opts.Blockers))
		case binding.ContinuousToggle:
			c.toggles = append(c.toggles, newPulseState(cb.Toggle, opts))
		}
	}
	return c
}

// Kind implements Tracker.
func (c *Continuous) Kind() action.Kind { return action.KindContinuous }

// Update implements Tracker.
func (c *Continuous) Update(snap source.Snapshot, dt time.Duration) {
	c.gate.Advance(dt)
	c.prev = c.active

	held, newlyHeld := false, false
	for _, h := range c.holds {
		h.update(snap)
		held = held || h.active()
		newlyHeld = newlyHeld || h.justPressed()
	}

	toggled := false
	for _, t := range c.toggles {
		if t.update(snap, dt) {
			toggled = true
		}
	}

	if toggled {
		if c.gate.Admit() {
			c.latch = !c.latch
		}
	} else if newlyHeld {
		c.latch = false
	}

	c.active = held || c.latch
	if c.active {
		if dt > 0 {
			c.activeFor += dt
		}
	} else {
		c.activeFor = 0
	}
}

// Active reports whether the action is active this frame.
func (c *Continuous) Active() bool {
	return c.active
}

// JustActivated reports whether the action became active this frame.
func (c *Continuous) JustActivated() bool {
	return c.active && !c.prev
}

// JustDeactivated reports whether the action stopped being active this
// frame.
func (c *Continuous) JustDeactivated() bool {
	return !c.active && c.prev
}

// ActiveDuration returns how long the action has been continuously active,
// including this frame. It is 0 while inactive.
func (c *Continuous) ActiveDuration() time.Duration {
	return c.activeFor
}

// Toggled reports the state of the toggle latch.
func (c *Continuous) Toggled() bool {
	return c.latch
}

// Suppressed implements Tracker.
func (c *Continuous) Suppressed() uint64 {
	return c.gate.Suppressed()
}

// Reset implements Tracker.
func (c *Continuous) Reset() {
	for _, h := range c.holds {
		h.reset()
	}
	for _, t := range c.toggles {
		t.reset()
	}
	c.gate.Reset()
	c.latch = false
	c.active = false
	c.prev = false
	c.activeFor = 0
}
