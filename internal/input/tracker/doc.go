// Package tracker keeps the per-action state that evaluation alone cannot
// provide: previous levels for edge detection, toggle latches, double-click
// and sequence progress, and the acceptance-delay gate.
//
// One Tracker exists per bound action. The context calls Update exactly
// once per frame with that frame's snapshot and the elapsed time supplied
// by the host; trackers never read the wall clock.
//
// Multiple bindings of the same action are combined as follows:
//
//	Pulse       fires if any binding fires this frame
//	Continuous  active if any hold is held or the toggle latch is set
//	SingleAxis  the largest magnitude wins; the first binding wins ties
//	DualAxis    each axis resolves its own winner
package tracker
