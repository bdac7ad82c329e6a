package source

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Source
	}{
		{"Key.Space", KeySpace},
		{"key.space", KeySpace},
		{"Key.A", KeyA},
		{"Keyboard.ShiftLeft", KeyShiftLeft},
		{"Mouse.Left", MouseLeft},
		{"Gamepad.South", GamepadSouth},
		{"Pad.DPadUp", GamepadDPadUp},
		{"Axis.LeftStickX", AxisLeftStickX},
		{"Axis.ScrollWheelY", AxisScrollWheelY},
		{"KeyGroup.Shift", GroupShift},
		{" Group.Number1 ", GroupNumber1},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{"", "Space", "Key.", "Joystick.A", "Key.NotAKey"} {
		_, err := Parse(input)
		if !errors.Is(err, ErrUnknownSource) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownSource", input, err)
		}
		var use *UnknownSourceError
		if !errors.As(err, &use) || use.Name != input {
			t.Errorf("Parse(%q) did not return *UnknownSourceError with the name", input)
		}
	}
}

func TestSource_RoundTrip(t *testing.T) {
	for _, d := range []Device{DeviceKeyboard, DeviceMouse, DeviceGamepad, DeviceAxis, DeviceKeyGroup} {
		for _, s := range All(d) {
			if !s.Valid() {
				t.Errorf("%s reported invalid", s)
			}
			got, err := Parse(s.String())
			if err != nil || got != s {
				t.Errorf("Parse(%q) = %v, %v", s.String(), got, err)
			}
		}
	}
}

func TestSource_Properties(t *testing.T) {
	if !AxisLeftStickX.Analog() || KeySpace.Analog() {
		t.Error("Analog mismatch")
	}
	if None.Valid() || Make(DeviceKeyboard, 9999).Valid() || Make(Device(77), 0).Valid() {
		t.Error("invalid sources reported valid")
	}
	if KeySpace.Device() != DeviceKeyboard || GamepadStart.Device() != DeviceGamepad {
		t.Error("Device mismatch")
	}
	if got := GroupEnter.Members(); len(got) != 2 || got[0] != KeyReturn || got[1] != KeyNumpadEnter {
		t.Errorf("GroupEnter.Members() = %v", got)
	}
	if KeySpace.Members() != nil {
		t.Error("plain key should have no members")
	}
	if GamepadLeftTrigger2 == AxisLeftTrigger2 {
		t.Error("digital and analog triggers must be distinct sources")
	}
}

func TestRead(t *testing.T) {
	f := NewFrame().Press(KeyNumpad3).Set(AxisLeftStickX, -0.4)

	tests := []struct {
		name string
		src  Source
		want float64
	}{
		{"pressed key", KeyNumpad3, 1},
		{"absent key", KeyDigit3, 0},
		{"group via numpad", GroupNumber3, 1},
		{"group nothing held", GroupShift, 0},
		{"axis", AxisLeftStickX, -0.4},
		{"absent axis", AxisRightStickY, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Read(f, tt.src); got != tt.want {
				t.Errorf("Read(%s) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}

	if Read(nil, KeyA) != 0 {
		t.Error("nil snapshot should read 0")
	}
}

func TestFrame(t *testing.T) {
	f := NewFrame()
	f.Add(AxisScrollWheelY, 1).Add(AxisScrollWheelY, 2)
	if f.Value(AxisScrollWheelY) != 3 {
		t.Errorf("accumulated wheel = %v", f.Value(AxisScrollWheelY))
	}

	f.Press(KeyA, KeyB, MouseLeft)
	clone := f.Clone()
	f.Release(KeyA)
	if f.Value(KeyA) != 0 || clone.Value(KeyA) != 1 {
		t.Error("Clone is not independent")
	}

	f.ClearDevice(DeviceKeyboard)
	if f.Value(KeyB) != 0 || f.Value(MouseLeft) != 1 {
		t.Error("ClearDevice removed the wrong sources")
	}

	f.Set(MouseLeft, 0)
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}

	f.Reset()
	if f.Len() != 0 {
		t.Error("Reset left values behind")
	}

	var nilFrame *Frame
	if nilFrame.Value(KeyA) != 0 || nilFrame.Len() != 0 {
		t.Error("nil frame should read empty")
	}
}

func TestSnapshotFunc(t *testing.T) {
	snap := SnapshotFunc(func(s Source) float64 {
		if s == KeyShiftRight {
			return 1
		}
		return 0
	})
	if Read(snap, GroupShift) != 1 {
		t.Error("group should resolve through SnapshotFunc")
	}
}
