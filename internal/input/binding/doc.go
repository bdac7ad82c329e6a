// Package binding describes how raw input sources feed actions and
// evaluates those descriptions against a snapshot.
//
// A binding belongs to exactly one action kind:
//
//	PulseBinding       JustPressed, JustReleased, DoubleClick, Sequence
//	ContinuousBinding  Hold, or Toggle wrapping a pulse
//	AxisBinding        Hold(negative, positive), Analog(source), Toggle
//	DualAxisBinding    an AxisBinding per axis
//
// Boolean inputs are expressed as Inputs: a list of alternative Chords,
// each Chord a list of Inputs that must all be active together. A plain
// key is a one-element chord; "Ctrl+S" is a two-element chord.
//
// The evaluation functions in this package are pure. Anything that needs
// memory across frames (edges, latches, timers) lives in the tracker.
package binding
