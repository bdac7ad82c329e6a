package tracker

import (
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/input/source"
)

// pulseState is the progress of one PulseBinding.
type pulseState struct {
	trigger binding.PulseTrigger
	inputs  inputsState
	steps   []inputsState
	window  time.Duration
	timer   time.Duration
	index   int
}

func newPulseState(b binding.PulseBinding, opts Options) *pulseState {
	p := &pulseState{trigger: b.Trigger}
	switch b.Trigger {
	case binding.PulseJustPressed, binding.PulseJustReleased:
		p.inputs = newInputs(b.Inputs, opts.Blockers)
	case binding.PulseDoubleClick:
		p.inputs = newInputs(b.Inputs, opts.Blockers)
		p.window = opts.DoubleClick
	case binding.PulseSequence:
		for _, step := range b.Steps {
			p.steps = append(p.steps, newInputs(step, opts.Blockers))
		}
		p.window = b.Timeout
		if b.IsDummy() {
			p.trigger = binding.PulseDummy
		}
	}
	return p
}

// update advances the binding by one frame and reports whether it fired.
func (p *pulseState) update(snap source.Snapshot, dt time.Duration) bool {
	switch p.trigger {
	case binding.PulseJustPressed:
		p.inputs.update(snap)
		return p.inputs.justPressed()

	case binding.PulseJustReleased:
		p.inputs.update(snap)
		return p.inputs.justReleased()

	case binding.PulseDoubleClick:
		p.inputs.update(snap)
		return p.advance(p.inputs.justPressed(), 2, dt)

	case binding.PulseSequence:
		for _, s := range p.steps {
			s.update(snap)
		}
		return p.advance(p.steps[p.index].justPressed(), len(p.steps), dt)

	default:
		return false
	}
}

// advance moves a multi-step pulse forward. Time only runs while an
// attempt is in progress; when more than window passes between two steps
// the attempt is abandoned, and a step arriving in that same frame starts
// a new attempt.
func (p *pulseState) advance(step bool, total int, dt time.Duration) bool {
	if p.index > 0 {
		if dt > 0 {
			p.timer += dt
		}
		if p.timer > p.window {
			p.index = 0
			p.timer = 0
			if p.trigger == binding.PulseSequence {
				return p.advance(p.steps[0].justPressed(), total, 0)
			}
		}
	}
	if !step {
		return false
	}
	p.timer = 0
	if p.index+1 >= total {
		p.index = 0
		return true
	}
	p.index++
	return false
}

func (p *pulseState) reset() {
	p.inputs.reset()
	for _, s := range p.steps {
		s.reset()
	}
	p.timer = 0
	p.index = 0
}

// Pulse tracks a Pulse action.
type Pulse struct {
	bindings []*pulseState
	gate     Gate
	pulsed   bool
}

// NewPulse builds a pulse tracker. Bindings of other kinds are ignored.
func NewPulse(bindings []binding.Binding, opts Options) *Pulse {
	p := &Pulse{gate: NewGate(opts.AcceptanceDelay)}
	for _, b := range bindings {
		if pb, ok := b.(binding.PulseBinding); ok {
			p.bindings = append(p.bindings, newPulseState(pb, opts))
		}
	}
	return p
}

// Kind implements Tracker.
func (p *Pulse) Kind() action.Kind { return action.KindPulse }

// Update implements Tracker.
func (p *Pulse) Update(snap source.Snapshot, dt time.Duration) {
	p.gate.Advance(dt)
	fired := false
	for _, b := range p.bindings {
		if b.update(snap, dt) {
			fired = true
		}
	}
	p.pulsed = fired && p.gate.Admit()
}

// JustPulsed reports whether the action fired this frame.
func (p *Pulse) JustPulsed() bool {
	return p.pulsed
}

// Suppressed implements Tracker.
func (p *Pulse) Suppressed() uint64 {
	return p.gate.Suppressed()
}

// Reset implements Tracker.
func (p *Pulse) Reset() {
	for _, b := range p.bindings {
		b.reset()
	}
	p.gate.Reset()
	p.pulsed = false
}
