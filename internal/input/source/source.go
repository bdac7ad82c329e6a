package source

import (
	"errors"
	"fmt"
	"strings"
)

// Device is the kind of physical device a Source belongs to.
type Device uint8

const (
	// DeviceNone marks the zero Source.
	DeviceNone Device = iota
	// DeviceKeyboard is a keyboard key.
	DeviceKeyboard
	// DeviceMouse is a mouse button.
	DeviceMouse
	// DeviceGamepad is a gamepad button.
	DeviceGamepad
	// DeviceAxis is an analog axis of a mouse or gamepad.
	DeviceAxis
	// DeviceKeyGroup is a set of equivalent keyboard keys.
	DeviceKeyGroup
)

const deviceShift = 16

// String returns the device prefix used in source names.
func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "Key"
	case DeviceMouse:
		return "Mouse"
	case DeviceGamepad:
		return "Gamepad"
	case DeviceAxis:
		return "Axis"
	case DeviceKeyGroup:
		return "KeyGroup"
	default:
		return "None"
	}
}

func (d Device) names() []string {
	switch d {
	case DeviceKeyboard:
		return keyNames
	case DeviceMouse:
		return mouseNames
	case DeviceGamepad:
		return gamepadNames
	case DeviceAxis:
		return axisNames
	case DeviceKeyGroup:
		return groupNames
	default:
		return nil
	}
}

// Source identifies one physical input.
type Source uint32

// None is the zero Source. It is never valid.
const None Source = 0

// Make builds a Source from a device and a code. The result may be
// invalid; check Valid.
func Make(d Device, code uint16) Source {
	return Source(d)<<deviceShift | Source(code)
}

// Device returns the device the source belongs to.
func (s Source) Device() Device {
	return Device(s >> deviceShift)
}

// Code returns the device-specific code.
func (s Source) Code() uint16 {
	return uint16(s & (1<<deviceShift - 1))
}

// Valid reports whether the source names a known input.
func (s Source) Valid() bool {
	names := s.Device().names()
	return names != nil && int(s.Code()) < len(names)
}

// Analog reports whether the source yields a continuous signed value.
func (s Source) Analog() bool {
	return s.Device() == DeviceAxis
}

// Name returns the source name without its device prefix.
func (s Source) Name() string {
	if !s.Valid() {
		return fmt.Sprintf("%d", s.Code())
	}
	return s.Device().names()[s.Code()]
}

// String returns the qualified name, e.g. "Key.Space". Valid sources
// round-trip through Parse.
func (s Source) String() string {
	if s == None {
		return "None"
	}
	return s.Device().String() + "." + s.Name()
}

// Members returns the keys of a key group, or nil for any other source.
func (s Source) Members() []Source {
	m := groupMembers[s]
	if m == nil {
		return nil
	}
	out := make([]Source, len(m))
	copy(out, m)
	return out
}

// ErrUnknownSource indicates a source name did not resolve.
var ErrUnknownSource = errors.New("unknown input source")

// UnknownSourceError reports the name that failed to parse.
type UnknownSourceError struct {
	Name   string
	Reason string
}

func (e *UnknownSourceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unknown input source %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("unknown input source %q", e.Name)
}

func (e *UnknownSourceError) Unwrap() error {
	return ErrUnknownSource
}

var devicesByName = map[string]Device{
	"key":      DeviceKeyboard,
	"keyboard": DeviceKeyboard,
	"mouse":    DeviceMouse,
	"gamepad":  DeviceGamepad,
	"pad":      DeviceGamepad,
	"axis":     DeviceAxis,
	"keygroup": DeviceKeyGroup,
	"group":    DeviceKeyGroup,
}

var byName = func() map[string]Source {
	m := make(map[string]Source)
	for _, d := range []Device{DeviceKeyboard, DeviceMouse, DeviceGamepad, DeviceAxis, DeviceKeyGroup} {
		for code, name := range d.names() {
			m[d.String()+"."+strings.ToLower(name)] = Make(d, uint16(code))
		}
	}
	return m
}()

// Parse resolves a qualified source name such as "Key.Space" or
// "Axis.LeftStickX". Device and source names are matched without regard
// to case.
func Parse(name string) (Source, error) {
	trimmed := strings.TrimSpace(name)
	dev, rest, ok := strings.Cut(trimmed, ".")
	if !ok || rest == "" {
		return None, &UnknownSourceError{Name: name, Reason: "expected Device.Name"}
	}
	d, ok := devicesByName[strings.ToLower(dev)]
	if !ok {
		return None, &UnknownSourceError{Name: name, Reason: fmt.Sprintf("unknown device %q", dev)}
	}
	s, ok := byName[d.String()+"."+strings.ToLower(rest)]
	if !ok {
		return None, &UnknownSourceError{Name: name}
	}
	return s, nil
}

// MustParse is like Parse but panics on error.
func MustParse(name string) Source {
	s, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return s
}

// All returns every valid source of a device in code order.
func All(d Device) []Source {
	names := d.names()
	out := make([]Source, len(names))
	for i := range names {
		out[i] = Make(d, uint16(i))
	}
	return out
}
