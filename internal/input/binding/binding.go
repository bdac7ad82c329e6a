package binding

import (
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/input/source"
)

// Binding is one configured way of driving an action. The concrete types
// are PulseBinding, ContinuousBinding, AxisBinding and DualAxisBinding.
type Binding interface {
	// Kind returns the action kind this binding can drive.
	Kind() action.Kind
	// IsDummy reports whether the binding can never produce a value.
	IsDummy() bool

	sealed()
}

// PulseTrigger selects how a PulseBinding fires.
type PulseTrigger uint8

const (
	// PulseDummy never fires.
	PulseDummy PulseTrigger = iota
	// PulseJustPressed fires when any chord becomes active.
	PulseJustPressed
	// PulseJustReleased fires when any chord stops being active.
	PulseJustReleased
	// PulseDoubleClick fires on the second press within the double-click timing.
	PulseDoubleClick
	// PulseSequence fires when the steps are pressed in order.
	PulseSequence
)

// String returns the descriptor tag of the trigger.
func (t PulseTrigger) String() string {
	switch t {
	case PulseJustPressed:
		return "JustPressed"
	case PulseJustReleased:
		return "JustReleased"
	case PulseDoubleClick:
		return "DoubleClick"
	case PulseSequence:
		return "Sequence"
	default:
		return "Dummy"
	}
}

// PulseBinding drives a Pulse action.
type PulseBinding struct {
	Trigger PulseTrigger
	// Inputs is used by JustPressed, JustReleased and DoubleClick.
	Inputs Inputs
	// Steps and Timeout are used by Sequence. Timeout bounds the time
	// between two consecutive steps.
	Steps   []Inputs
	Timeout time.Duration
}

// JustPressed fires when any of in becomes active.
func JustPressed(in Inputs) PulseBinding {
	return PulseBinding{Trigger: PulseJustPressed, Inputs: in}
}

// JustReleased fires when any of in stops being active.
func JustReleased(in Inputs) PulseBinding {
	return PulseBinding{Trigger: PulseJustReleased, Inputs: in}
}

// DoubleClick fires on the second activation of in within the configured
// double-click timing.
func DoubleClick(in Inputs) PulseBinding {
	return PulseBinding{Trigger: PulseDoubleClick, Inputs: in}
}

// Sequence fires when steps are activated in order with at most timeout
// between consecutive steps.
func Sequence(timeout time.Duration, steps ...Inputs) PulseBinding {
	return PulseBinding{Trigger: PulseSequence, Steps: steps, Timeout: timeout}
}

// Kind implements Binding.
func (PulseBinding) Kind() action.Kind { return action.KindPulse }

// IsDummy implements Binding.
func (b PulseBinding) IsDummy() bool {
	switch b.Trigger {
	case PulseDummy:
		return true
	case PulseSequence:
		if len(b.Steps) == 0 {
			return true
		}
		for _, s := range b.Steps {
			if s.IsDummy() {
				return true
			}
		}
		return false
	default:
		return b.Inputs.IsDummy()
	}
}

func (PulseBinding) sealed() {}

// ContinuousMode selects how a ContinuousBinding behaves.
type ContinuousMode uint8

const (
	// ContinuousDummy is never active.
	ContinuousDummy ContinuousMode = iota
	// ContinuousHold is active while its inputs are held.
	ContinuousHold
	// ContinuousToggle flips on each pulse of its toggle binding.
	ContinuousToggle
)

// String returns the descriptor tag of the mode.
func (m ContinuousMode) String() string {
	switch m {
	case ContinuousHold:
		return "Hold"
	case ContinuousToggle:
		return "Toggle"
	default:
		return "Dummy"
	}
}

// ContinuousBinding drives a Continuous action.
type ContinuousBinding struct {
	Mode ContinuousMode
	// Inputs is used by Hold.
	Inputs Inputs
	// Toggle is used by Toggle.
	Toggle PulseBinding
}

// Hold is active while any of in is active.
func Hold(in Inputs) ContinuousBinding {
	return ContinuousBinding{Mode: ContinuousHold, Inputs: in}
}

// Toggle latches on and off each time p fires.
func Toggle(p PulseBinding) ContinuousBinding {
	return ContinuousBinding{Mode: ContinuousToggle, Toggle: p}
}

// Kind implements Binding.
func (ContinuousBinding) Kind() action.Kind { return action.KindContinuous }

// IsDummy implements Binding.
func (b ContinuousBinding) IsDummy() bool {
	switch b.Mode {
	case ContinuousHold:
		return b.Inputs.IsDummy()
	case ContinuousToggle:
		return b.Toggle.IsDummy()
	default:
		return true
	}
}

func (ContinuousBinding) sealed() {}

// AxisMode selects how an AxisBinding produces its value.
type AxisMode uint8

const (
	// AxisDummy always reads 0.
	AxisDummy AxisMode = iota
	// AxisHold reads -1, 0 or +1 from two groups of inputs.
	AxisHold
	// AxisAnalog reads a scaled analog source.
	AxisAnalog
	// AxisToggle latches a direction from two pulse bindings.
	AxisToggle
)

// String returns the descriptor tag of the mode.
func (m AxisMode) String() string {
	switch m {
	case AxisHold:
		return "Hold"
	case AxisAnalog:
		return "Analog"
	case AxisToggle:
		return "Toggle"
	default:
		return "Dummy"
	}
}

// Inversion flips the sign of an analog axis.
type Inversion uint8

const (
	NotInverted Inversion = iota
	Inverted
)

// Sign returns -1 when inverted and 1 otherwise.
func (i Inversion) Sign() float64 {
	if i == Inverted {
		return -1
	}
	return 1
}

// AxisBinding drives a SingleAxis action, or one axis of a DualAxis action.
type AxisBinding struct {
	Mode AxisMode

	// Negative and Positive are used by Hold.
	Negative Inputs
	Positive Inputs

	// Source, Inversion and Sensitivity are used by Analog.
	Source      source.Source
	Inversion   Inversion
	Sensitivity float64

	// ToggleNegative and TogglePositive are used by Toggle.
	ToggleNegative PulseBinding
	TogglePositive PulseBinding
}

// AxisHoldOf reads -1 while negative is held, +1 while positive is held,
// and 0 when both or neither are held.
func AxisHoldOf(negative, positive Inputs) AxisBinding {
	return AxisBinding{Mode: AxisHold, Negative: negative, Positive: positive}
}

// Analog reads src with sensitivity 1, not inverted.
func Analog(src source.Source) AxisBinding {
	return AxisBinding{Mode: AxisAnalog, Source: src, Sensitivity: 1}
}

// AxisToggleOf latches -1 when negative fires and +1 when positive fires.
// Firing the latched direction again returns the axis to 0.
func AxisToggleOf(negative, positive PulseBinding) AxisBinding {
	return AxisBinding{Mode: AxisToggle, ToggleNegative: negative, TogglePositive: positive}
}

// WithInversion returns a copy with the given inversion.
func (b AxisBinding) WithInversion(inv Inversion) AxisBinding {
	b.Inversion = inv
	return b
}

// WithSensitivity returns a copy with the given sensitivity.
func (b AxisBinding) WithSensitivity(s float64) AxisBinding {
	b.Sensitivity = s
	return b
}

// Kind implements Binding.
func (AxisBinding) Kind() action.Kind { return action.KindSingleAxis }

// IsDummy implements Binding.
func (b AxisBinding) IsDummy() bool {
	switch b.Mode {
	case AxisHold:
		return b.Negative.IsDummy() && b.Positive.IsDummy()
	case AxisAnalog:
		return b.Source == source.None
	case AxisToggle:
		return b.ToggleNegative.IsDummy() && b.TogglePositive.IsDummy()
	default:
		return true
	}
}

func (AxisBinding) sealed() {}

// DualAxisBinding drives a DualAxis action with one AxisBinding per axis.
type DualAxisBinding struct {
	X AxisBinding
	Y AxisBinding
}

// Dual pairs two axis bindings.
func Dual(x, y AxisBinding) DualAxisBinding {
	return DualAxisBinding{X: x, Y: y}
}

// Kind implements Binding.
func (DualAxisBinding) Kind() action.Kind { return action.KindDualAxis }

// IsDummy implements Binding.
func (b DualAxisBinding) IsDummy() bool {
	return b.X.IsDummy() && b.Y.IsDummy()
}

func (DualAxisBinding) sealed() {}
