package tracker

import (
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/input/source"
)

// Tracker is the state of one action.
type Tracker interface {
	// Kind returns the kind of the tracked action.
	Kind() action.Kind
	// Update advances the state by one frame.
	Update(snap source.Snapshot, dt time.Duration)
	// Reset returns the tracker to its initial state.
	Reset()
	// Suppressed returns how many activations the acceptance delay dropped.
	Suppressed() uint64
}

// Options carries configuration shared by every tracker.
type Options struct {
	// DoubleClick is the window between the two presses of a DoubleClick.
	DoubleClick time.Duration
	// AcceptanceDelay is the minimum interval between accepted activations.
	AcceptanceDelay time.Duration
	// Blockers suppresses chords while a containing chord is active.
	Blockers *binding.Blockers
}

// New builds the tracker for an action of the given kind.
func New(kind action.Kind, bindings []binding.Binding, opts Options) Tracker {
	switch kind {
	case action.KindPulse:
		return NewPulse(bindings, opts)
	case action.KindContinuous:
		return NewContinuous(bindings, opts)
	case action.KindSingleAxis:
		return NewAxis(bindings, opts)
	default:
		return NewDualAxis(bindings, opts)
	}
}
