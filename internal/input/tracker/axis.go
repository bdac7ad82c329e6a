package tracker

import (
	"math"
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/input/source"
)

type axisState struct {
	b binding.AxisBinding

	negative inputsState
	positive inputsState

	toggleNegative *pulseState
	togglePositive *pulseState

	analogActive bool
}

func newAxisState(b binding.AxisBinding, opts Options) *axisState {
	s := &axisState{b: b}
	switch b.Mode {
	case binding.AxisHold:
		s.negative = newInputs(b.Negative, opts.Blockers)
		s.positive = newInputs(b.Positive, opts.Blockers)
	case binding.AxisToggle:
		s.toggleNegative = newPulseState(b.ToggleNegative, opts)
		s.togglePositive = newPulseState(b.TogglePositive, opts)
	}
	return s
}

// update returns the binding's value this frame, whether it was newly
// engaged, and which toggle directions fired.
func (s *axisState) update(snap source.Snapshot, dt time.Duration) (v float64, engaged, toggleNeg, togglePos bool) {
	switch s.b.Mode {
	case binding.AxisHold:
		s.negative.update(snap)
		s.positive.update(snap)
		v = binding.Direction(s.negative.active(), s.positive.active())
		engaged = s.negative.justPressed() || s.positive.justPressed()
	case binding.AxisAnalog:
		v = binding.EvaluateAxis(s.b, snap)
		wasActive := s.analogActive
		s.analogActive = math.Abs(source.Read(snap, s.b.Source)) > binding.Deadzone
		engaged = s.analogActive && !wasActive
	case binding.AxisToggle:
		toggleNeg = s.toggleNegative.update(snap, dt)
		togglePos = s.togglePositive.update(snap, dt)
	}
	return v, engaged, toggleNeg, togglePos
}

func (s *axisState) reset() {
	s.negative.reset()
	s.positive.reset()
	if s.toggleNegative != nil {
		s.toggleNegative.reset()
		s.togglePositive.reset()
	}
	s.analogActive = false
}

// Axis tracks a SingleAxis action, or one axis of a DualAxis action.
//
// The value is that of the binding with the largest magnitude this frame,
// the first listed binding winning exact ties. Toggle bindings latch a
// direction that overrides the other bindings until it is toggled off or
// a hold or analog binding is newly engaged.
type Axis struct {
	bindings  []*axisState
	gate      Gate
	direction float64
	value     float64
}

// NewAxis builds a single-axis tracker from AxisBinding values. Bindings
// of other kinds are ignored.
func NewAxis(bindings []binding.Binding, opts Options) *Axis {
	a := &Axis{gate: NewGate(opts.AcceptanceDelay)}
	for _, b := range bindings {
		if ab, ok := b.(binding.AxisBinding); ok {
			a.add(ab, opts)
		}
	}
	return a
}

func (a *Axis) add(b binding.AxisBinding, opts Options) {
	a.bindings = append(a.bindings, newAxisState(b, opts))
}

// Kind implements Tracker.
func (a *Axis) Kind() action.Kind { return action.KindSingleAxis }

// Update implements Tracker.
func (a *Axis) Update(snap source.Snapshot, dt time.Duration) {
	a.gate.Advance(dt)

	var best float64
	engaged, toggleNeg, togglePos := false, false, false
	for _, s := range a.bindings {
		v, e, tn, tp := s.update(snap, dt)
		if math.Abs(v) > math.Abs(best) {
			best = v
		}
		engaged = engaged || e
		toggleNeg = toggleNeg || tn
		togglePos = togglePos || tp
	}

	if toggle := binding.Direction(toggleNeg, togglePos); toggle != 0 {
		if a.gate.Admit() {
			a.direction = flip(a.direction, toggle)
		}
	} else if engaged {
		a.direction = 0
	}

	if a.direction != 0 {
		a.value = a.direction
	} else {
		a.value = best
	}
}

// flip applies a toggle in direction t to the latched direction d:
// toggling the latched direction releases it, anything else latches t.
func flip(d, t float64) float64 {
	if d == t {
		return 0
	}
	return t
}

// Value returns the axis value this frame.
func (a *Axis) Value() float64 {
	return a.value
}

// Latched returns the toggled direction, or 0.
func (a *Axis) Latched() float64 {
	return a.direction
}

// Suppressed implements Tracker.
func (a *Axis) Suppressed() uint64 {
	return a.gate.Suppressed()
}

// Reset implements Tracker.
func (a *Axis) Reset() {
	for _, s := range a.bindings {
		s.reset()
	}
	a.gate.Reset()
	a.direction = 0
	a.value = 0
}

// DualAxis tracks a DualAxis action as two independent axes.
type DualAxis struct {
	x, y *Axis
}

// NewDualAxis builds a dual-axis tracker from DualAxisBinding values.
// Bindings of other kinds are ignored.
func NewDualAxis(bindings []binding.Binding, opts Options) *DualAxis {
	d := &DualAxis{
		x: &Axis{gate: NewGate(opts.AcceptanceDelay)},
		y: &Axis{gate: NewGate(opts.AcceptanceDelay)},
	}
	for _, b := range bindings {
		if db, ok := b.(binding.DualAxisBinding); ok {
			d.x.add(db.X, opts)
			d.y.add(db.Y, opts)
		}
	}
	return d
}

// Kind implements Tracker.
func (d *DualAxis) Kind() action.Kind { return action.KindDualAxis }

// Update implements Tracker.
func (d *DualAxis) Update(snap source.Snapshot, dt time.Duration) {
	d.x.Update(snap, dt)
	d.y.Update(snap, dt)
}

// Value returns the 2-vector this frame.
func (d *DualAxis) Value() binding.Vec2 {
	return binding.Vec2{X: d.x.Value(), Y: d.y.Value()}
}

// X returns the horizontal axis tracker.
func (d *DualAxis) X() *Axis { return d.x }

// Y returns the vertical axis tracker.
func (d *DualAxis) Y() *Axis { return d.y }

// Suppressed implements Tracker.
func (d *DualAxis) Suppressed() uint64 {
	return d.x.Suppressed() + d.y.Suppressed()
}

// Reset implements Tracker.
func (d *DualAxis) Reset() {
	d.x.Reset()
	d.y.Reset()
}
