package binding

import (
	"math"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/input/source"
)

// Vec2 is the value of a DualAxis action.
type Vec2 struct {
	X, Y float64
}

// IsZero reports whether both components are 0.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Length returns the Euclidean length.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Value is the shaped result of one binding for one frame. Only the field
// matching Kind is meaningful.
type Value struct {
	Kind action.Kind
	Bool bool
	Axis float64
	Vec  Vec2
}

// EvaluateAxis returns the value of an axis binding. Toggle bindings read
// 0 here because their latch is kept by the tracker.
func EvaluateAxis(b AxisBinding, snap source.Snapshot) float64 {
	switch b.Mode {
	case AxisHold:
		return Direction(b.Negative.Active(snap), b.Positive.Active(snap))
	case AxisAnalog:
		return source.Read(snap, b.Source) * b.Sensitivity * b.Inversion.Sign()
	default:
		return 0
	}
}

// Direction composes two boolean groups into -1, 0 or +1. Both or
// neither active yields 0.
func Direction(neg, pos bool) float64 {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	default:
		return 0
	}
}

// EvaluateDual evaluates both axes independently. No diagonal
// normalization is applied.
func EvaluateDual(b DualAxisBinding, snap source.Snapshot) Vec2 {
	return Vec2{X: EvaluateAxis(b.X, snap), Y: EvaluateAxis(b.Y, snap)}
}

// Level returns the instantaneous boolean level of a pulse binding's
// inputs. Sequences have no single level and read false.
func Level(b PulseBinding, snap source.Snapshot) bool {
	switch b.Trigger {
	case PulseJustPressed, PulseJustReleased, PulseDoubleClick:
		return b.Inputs.Active(snap)
	default:
		return false
	}
}

// Held reports whether a continuous binding's inputs are active this
// frame. For toggle bindings it is the level of the toggle's inputs.
func Held(b ContinuousBinding, snap source.Snapshot) bool {
	switch b.Mode {
	case ContinuousHold:
		return b.Inputs.Active(snap)
	case ContinuousToggle:
		return Level(b.Toggle, snap)
	default:
		return false
	}
}

// Evaluate projects any binding onto a Value for this frame.
func Evaluate(b Binding, snap source.Snapshot) Value {
	switch b := b.(type) {
	case PulseBinding:
		return Value{Kind: action.KindPulse, Bool: Level(b, snap)}
	case ContinuousBinding:
		return Value{Kind: action.KindContinuous, Bool: Held(b, snap)}
	case AxisBinding:
		return Value{Kind: action.KindSingleAxis, Axis: EvaluateAxis(b, snap)}
	case DualAxisBinding:
		return Value{Kind: action.KindDualAxis, Vec: EvaluateDual(b, snap)}
	default:
		return Value{}
	}
}

// Combine picks the value with the largest magnitude. On an exact
// magnitude tie the earlier value wins. An empty list yields 0.
func Combine(values ...float64) float64 {
	var best float64
	for _, v := range values {
		if math.Abs(v) > math.Abs(best) {
			best = v
		}
	}
	return best
}
