package action

import (
	"fmt"
	"strings"
)

// Kind is the fixed category of an action. It determines which bindings
// are legal for the action and which queries are valid.
type Kind uint8

const (
	// KindDualAxis is a direction along two axes.
	KindDualAxis Kind = iota
	// KindSingleAxis is a direction along one axis.
	KindSingleAxis
	// KindContinuous is a binary signal that can stay active.
	KindContinuous
	// KindPulse is an instantaneous event.
	KindPulse
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{KindDualAxis, KindSingleAxis, KindContinuous, KindPulse}

// String returns the kind name as used in configuration documents.
func (k Kind) String() string {
	switch k {
	case KindDualAxis:
		return "DualAxis"
	case KindSingleAxis:
		return "SingleAxis"
	case KindContinuous:
		return "Continuous"
	case KindPulse:
		return "Pulse"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k <= KindPulse
}

// IsAxis reports whether k is queried as a direction.
func (k Kind) IsAxis() bool {
	return k == KindDualAxis || k == KindSingleAxis
}

// ParseKind parses a kind name. Matching ignores case, underscores and
// dashes, so "dual_axis" and "DualAxis" are equivalent.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	switch norm {
	case "dualaxis":
		return KindDualAxis, nil
	case "singleaxis":
		return KindSingleAxis, nil
	case "continuous":
		return KindContinuous, nil
	case "pulse":
		return KindPulse, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Explain returns a short description of the kind, suitable for showing to
// players who edit their own bindings.
func (k Kind) Explain() string {
	switch k {
	case KindDualAxis:
		return "Indicates a direction along two axes. Example: joystick."
	case KindSingleAxis:
		return "Indicates a direction along a single axis. Example: mouse wheel."
	case KindContinuous:
		return "Binary signal, either on or off. Example: holding down the sprint button."
	case KindPulse:
		return "An instantaneous event. Example: clicking the mouse button to shoot."
	default:
		return "Unknown kind."
	}
}

// Example returns a binding descriptor of this kind in configuration
// syntax. It is offered as a suggestion when a binding has the wrong kind.
func (k Kind) Example() string {
	switch k {
	case KindDualAxis:
		return `{ DualAxis = { x = { Hold = { negative = ["Key.A"], positive = ["Key.D"] } }, y = { Hold = { negative = ["Key.S"], positive = ["Key.W"] } } } }`
	case KindSingleAxis:
		return `{ SingleAxis = { Hold = { negative = ["Key.PageDown"], positive = ["Key.PageUp"] } } }`
	case KindContinuous:
		return `{ Continuous = { Hold = ["Key.ShiftLeft"] } }`
	case KindPulse:
		return `{ Pulse = { JustPressed = ["Key.E"] } }`
	default:
		return ""
	}
}
