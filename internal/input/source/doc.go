// Package source identifies physical input sources and the per-frame
// snapshot of their values.
//
// A Source is a compact, comparable identifier: a device tag in the high
// bits and a device-specific code in the low bits. Sources are grouped by
// device:
//
//	Key.Space, Key.ShiftLeft, ...        keyboard keys
//	Mouse.Left, Mouse.Back, ...          mouse buttons
//	Gamepad.South, Gamepad.DPadUp, ...   gamepad buttons
//	Axis.LeftStickX, Axis.ScrollWheelY   analog axes
//	KeyGroup.Shift, KeyGroup.Number1     any of several equivalent keys
//
// A Snapshot answers the value of a source for one frame. Digital sources
// read 0 or 1, analog axes read a signed value in the device's native
// range, and sources the snapshot knows nothing about read 0. Use Read
// rather than calling Value directly so that key groups resolve through
// their member keys.
package source
