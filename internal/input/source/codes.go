package source

// Keyboard keys.
const (
	KeyA Source = Source(DeviceKeyboard)<<deviceShift + iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyDigit0
	KeyDigit1
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyDigit5
	KeyDigit6
	KeyDigit7
	KeyDigit8
	KeyDigit9
	KeySpace
	KeyReturn
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyShiftLeft
	KeyShiftRight
	KeyControlLeft
	KeyControlRight
	KeyAltLeft
	KeyAltRight
	KeySuperLeft
	KeySuperRight
	KeyCapsLock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadEnter
	KeyNumpadAdd
	KeyNumpadSubtract
	KeyNumpadMultiply
	KeyNumpadDivide
	KeyNumpadDecimal
	KeyMinus
	KeyEqual
	KeyComma
	KeyPeriod
	KeySlash
	KeySemicolon
	KeyQuote
	KeyBracketLeft
	KeyBracketRight
	KeyBackslash
	KeyBackquote
)

// Mouse buttons.
const (
	MouseLeft Source = Source(DeviceMouse)<<deviceShift + iota
	MouseRight
	MouseMiddle
	MouseBack
	MouseForward
)

// Gamepad buttons.
const (
	GamepadSouth Source = Source(DeviceGamepad)<<deviceShift + iota
	GamepadEast
	GamepadNorth
	GamepadWest
	GamepadC
	GamepadZ
	GamepadLeftTrigger
	GamepadLeftTrigger2
	GamepadRightTrigger
	GamepadRightTrigger2
	GamepadSelect
	GamepadStart
	GamepadMode
	GamepadLeftThumb
	GamepadRightThumb
	GamepadDPadUp
	GamepadDPadDown
	GamepadDPadLeft
	GamepadDPadRight
)

// Analog axes.
const (
	AxisScrollWheelX Source = Source(DeviceAxis)<<deviceShift + iota
	AxisScrollWheelY
	AxisMouseMotionX
	AxisMouseMotionY
	AxisLeftStickX
	AxisLeftStickY
	AxisLeftZ
	AxisRightStickX
	AxisRightStickY
	AxisRightZ
	AxisLeftTrigger2
	AxisRightTrigger2
)

// Key groups.
const (
	GroupEnter Source = Source(DeviceKeyGroup)<<deviceShift + iota
	GroupControl
	GroupShift
	GroupAlt
	GroupSuper
	GroupNumber0
	GroupNumber1
	GroupNumber2
	GroupNumber3
	GroupNumber4
	GroupNumber5
	GroupNumber6
	GroupNumber7
	GroupNumber8
	GroupNumber9
)

var keyNames = []string{
	"A",
	"B",
	"C",
	"D",
	"E",
	"F",
	"G",
	"H",
	"I",
	"J",
	"K",
	"L",
	"M",
	"N",
	"O",
	"P",
	"Q",
	"R",
	"S",
	"T",
	"U",
	"V",
	"W",
	"X",
	"Y",
	"Z",
	"Digit0",
	"Digit1",
	"Digit2",
	"Digit3",
	"Digit4",
	"Digit5",
	"Digit6",
	"Digit7",
	"Digit8",
	"Digit9",
	"Space",
	"Return",
	"Escape",
	"Tab",
	"Backspace",
	"Delete",
	"Insert",
	"Home",
	"End",
	"PageUp",
	"PageDown",
	"Up",
	"Down",
	"Left",
	"Right",
	"ShiftLeft",
	"ShiftRight",
	"ControlLeft",
	"ControlRight",
	"AltLeft",
	"AltRight",
	"SuperLeft",
	"SuperRight",
	"CapsLock",
	"F1",
	"F2",
	"F3",
	"F4",
	"F5",
	"F6",
	"F7",
	"F8",
	"F9",
	"F10",
	"F11",
	"F12",
	"Numpad0",
	"Numpad1",
	"Numpad2",
	"Numpad3",
	"Numpad4",
	"Numpad5",
	"Numpad6",
	"Numpad7",
	"Numpad8",
	"Numpad9",
	"NumpadEnter",
	"NumpadAdd",
	"NumpadSubtract",
	"NumpadMultiply",
	"NumpadDivide",
	"NumpadDecimal",
	"Minus",
	"Equal",
	"Comma",
	"Period",
	"Slash",
	"Semicolon",
	"Quote",
	"BracketLeft",
	"BracketRight",
	"Backslash",
	"Backquote",
}

var mouseNames = []string{
	"Left",
	"Right",
	"Middle",
	"Back",
	"Forward",
}

var gamepadNames = []string{
	"South",
	"East",
	"North",
	"West",
	"C",
	"Z",
	"LeftTrigger",
	"LeftTrigger2",
	"RightTrigger",
	"RightTrigger2",
	"Select",
	"Start",
	"Mode",
	"LeftThumb",
	"RightThumb",
	"DPadUp",
	"DPadDown",
	"DPadLeft",
	"DPadRight",
}

var axisNames = []string{
	"ScrollWheelX",
	"ScrollWheelY",
	"MouseMotionX",
	"MouseMotionY",
	"LeftStickX",
	"LeftStickY",
	"LeftZ",
	"RightStickX",
	"RightStickY",
	"RightZ",
	"LeftTrigger2",
	"RightTrigger2",
}

var groupNames = []string{
	"Enter",
	"Control",
	"Shift",
	"Alt",
	"Super",
	"Number0",
	"Number1",
	"Number2",
	"Number3",
	"Number4",
	"Number5",
	"Number6",
	"Number7",
	"Number8",
	"Number9",
}

var groupMembers = map[Source][]Source{
	GroupEnter:   {KeyReturn, KeyNumpadEnter},
	GroupControl: {KeyControlLeft, KeyControlRight},
	GroupShift:   {KeyShiftLeft, KeyShiftRight},
	GroupAlt:     {KeyAltLeft, KeyAltRight},
	GroupSuper:   {KeySuperLeft, KeySuperRight},
	GroupNumber0: {KeyDigit0, KeyNumpad0},
	GroupNumber1: {KeyDigit1, KeyNumpad1},
	GroupNumber2: {KeyDigit2, KeyNumpad2},
	GroupNumber3: {KeyDigit3, KeyNumpad3},
	GroupNumber4: {KeyDigit4, KeyNumpad4},
	GroupNumber5: {KeyDigit5, KeyNumpad5},
	GroupNumber6: {KeyDigit6, KeyNumpad6},
	GroupNumber7: {KeyDigit7, KeyNumpad7},
	GroupNumber8: {KeyDigit8, KeyNumpad8},
	GroupNumber9: {KeyDigit9, KeyNumpad9},
}
