// Package ebiten samples keyboard, mouse and gamepad state from an ebiten
// game loop into input snapshots.
//
// Call Poller.Snapshot once per Update, before the context's Update:
//
//	func (g *Game) Update() error {
//		g.ctx.Update(g.poller.Snapshot(), time.Second/time.Duration(ebiten.TPS()))
//		...
//	}
package ebiten

import (
	eb "github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/ineffable/internal/input/source"
)

var keys = []struct {
	key eb.Key
	src source.Source
}{
	{eb.KeyA, source.KeyA}, {eb.KeyB, source.KeyB}, {eb.KeyC, source.KeyC},
	{eb.KeyD, source.KeyD}, {eb.KeyE, source.KeyE}, {eb.KeyF, source.KeyF},
	{eb.KeyG, source.KeyG}, {eb.KeyH, source.KeyH}, {eb.KeyI, source.KeyI},
	{eb.KeyJ, source.KeyJ}, {eb.KeyK, source.KeyK}, {eb.KeyL, source.KeyL},
	{eb.KeyM, source.KeyM}, {eb.KeyN, source.KeyN}, {eb.KeyO, source.KeyO},
	{eb.KeyP, source.KeyP}, {eb.KeyQ, source.KeyQ}, {eb.KeyR, source.KeyR},
	{eb.KeyS, source.KeyS}, {eb.KeyT, source.KeyT}, {eb.KeyU, source.KeyU},
	{eb.KeyV, source.KeyV}, {eb.KeyW, source.KeyW}, {eb.KeyX, source.KeyX},
	{eb.KeyY, source.KeyY}, {eb.KeyZ, source.KeyZ},

	{eb.KeyDigit0, source.KeyDigit0}, {eb.KeyDigit1, source.KeyDigit1},
	{eb.KeyDigit2, source.KeyDigit2}, {eb.KeyDigit3, source.KeyDigit3},
	{eb.KeyDigit4, source.KeyDigit4}, {eb.KeyDigit5, source.KeyDigit5},
	{eb.KeyDigit6, source.KeyDigit6}, {eb.KeyDigit7, source.KeyDigit7},
	{eb.KeyDigit8, source.KeyDigit8}, {eb.KeyDigit9, source.KeyDigit9},

	{eb.KeySpace, source.KeySpace},
	{eb.KeyEnter, source.KeyReturn},
	{eb.KeyEscape, source.KeyEscape},
	{eb.KeyTab, source.KeyTab},
	{eb.KeyBackspace, source.KeyBackspace},
	{eb.KeyDelete, source.KeyDelete},
	{eb.KeyInsert, source.KeyInsert},
	{eb.KeyHome, source.KeyHome},
	{eb.KeyEnd, source.KeyEnd},
	{eb.KeyPageUp, source.KeyPageUp},
	{eb.KeyPageDown, source.KeyPageDown},
	{eb.KeyArrowUp, source.KeyUp},
	{eb.KeyArrowDown, source.KeyDown},
	{eb.KeyArrowLeft, source.KeyLeft},
	{eb.KeyArrowRight, source.KeyRight},

	{eb.KeyShiftLeft, source.KeyShiftLeft},
	{eb.KeyShiftRight, source.KeyShiftRight},
	{eb.KeyControlLeft, source.KeyControlLeft},
	{eb.KeyControlRight, source.KeyControlRight},
	{eb.KeyAltLeft, source.KeyAltLeft},
	{eb.KeyAltRight, source.KeyAltRight},
	{eb.KeyMetaLeft, source.KeySuperLeft},
	{eb.KeyMetaRight, source.KeySuperRight},
	{eb.KeyCapsLock, source.KeyCapsLock},

	{eb.KeyF1, source.KeyF1}, {eb.KeyF2, source.KeyF2}, {eb.KeyF3, source.KeyF3},
	{eb.KeyF4, source.KeyF4}, {eb.KeyF5, source.KeyF5}, {eb.KeyF6, source.KeyF6},
	{eb.KeyF7, source.KeyF7}, {eb.KeyF8, source.KeyF8}, {eb.KeyF9, source.KeyF9},
	{eb.KeyF10, source.KeyF10}, {eb.KeyF11, source.KeyF11}, {eb.KeyF12, source.KeyF12},

	{eb.KeyNumpad0, source.KeyNumpad0}, {eb.KeyNumpad1, source.KeyNumpad1},
	{eb.KeyNumpad2, source.KeyNumpad2}, {eb.KeyNumpad3, source.KeyNumpad3},
	{eb.KeyNumpad4, source.KeyNumpad4}, {eb.KeyNumpad5, source.KeyNumpad5},
	{eb.KeyNumpad6, source.KeyNumpad6}, {eb.KeyNumpad7, source.KeyNumpad7},
	{eb.KeyNumpad8, source.KeyNumpad8}, {eb.KeyNumpad9, source.KeyNumpad9},
	{eb.KeyNumpadEnter, source.KeyNumpadEnter},
	{eb.KeyNumpadAdd, source.KeyNumpadAdd},
	{eb.KeyNumpadSubtract, source.KeyNumpadSubtract},
	{eb.KeyNumpadMultiply, source.KeyNumpadMultiply},
	{eb.KeyNumpadDivide, source.KeyNumpadDivide},
	{eb.KeyNumpadDecimal, source.KeyNumpadDecimal},

	{eb.KeyMinus, source.KeyMinus},
	{eb.KeyEqual, source.KeyEqual},
	{eb.KeyComma, source.KeyComma},
	{eb.KeyPeriod, source.KeyPeriod},
	{eb.KeySlash, source.KeySlash},
	{eb.KeySemicolon, source.KeySemicolon},
	{eb.KeyQuote, source.KeyQuote},
	{eb.KeyBracketLeft, source.KeyBracketLeft},
	{eb.KeyBracketRight, source.KeyBracketRight},
	{eb.KeyBackslash, source.KeyBackslash},
	{eb.KeyBackquote, source.KeyBackquote},
}

var mouseButtons = []struct {
	btn eb.MouseButton
	src source.Source
}{
	{eb.MouseButtonLeft, source.MouseLeft},
	{eb.MouseButtonRight, source.MouseRight},
	{eb.MouseButtonMiddle, source.MouseMiddle},
	{eb.MouseButton3, source.MouseBack},
	{eb.MouseButton4, source.MouseForward},
}

var padButtons = []struct {
	btn eb.StandardGamepadButton
	src source.Source
}{
	{eb.StandardGamepadButtonRightBottom, source.GamepadSouth},
	{eb.StandardGamepadButtonRightRight, source.GamepadEast},
	{eb.StandardGamepadButtonRightTop, source.GamepadNorth},
	{eb.StandardGamepadButtonRightLeft, source.GamepadWest},
	{eb.StandardGamepadButtonFrontTopLeft, source.GamepadLeftTrigger},
	{eb.StandardGamepadButtonFrontBottomLeft, source.GamepadLeftTrigger2},
	{eb.StandardGamepadButtonFrontTopRight, source.GamepadRightTrigger},
	{eb.StandardGamepadButtonFrontBottomRight, source.GamepadRightTrigger2},
	{eb.StandardGamepadButtonCenterLeft, source.GamepadSelect},
	{eb.StandardGamepadButtonCenterRight, source.GamepadStart},
	{eb.StandardGamepadButtonCenterCenter, source.GamepadMode},
	{eb.StandardGamepadButtonLeftStick, source.GamepadLeftThumb},
	{eb.StandardGamepadButtonRightStick, source.GamepadRightThumb},
	{eb.StandardGamepadButtonLeftTop, source.GamepadDPadUp},
	{eb.StandardGamepadButtonLeftBottom, source.GamepadDPadDown},
	{eb.StandardGamepadButtonLeftLeft, source.GamepadDPadLeft},
	{eb.StandardGamepadButtonLeftRight, source.GamepadDPadRight},
}

// Vertical axes are negated so that up is positive.
var padAxes = []struct {
	axis   eb.StandardGamepadAxis
	src    source.Source
	invert bool
}{
	{eb.StandardGamepadAxisLeftStickHorizontal, source.AxisLeftStickX, false},
	{eb.StandardGamepadAxisLeftStickVertical, source.AxisLeftStickY, true},
	{eb.StandardGamepadAxisRightStickHorizontal, source.AxisRightStickX, false},
	{eb.StandardGamepadAxisRightStickVertical, source.AxisRightStickY, true},
}

// Poller reads ebiten's input state. It must be used from the game's
// Update goroutine.
type Poller struct {
	frame   *source.Frame
	pads    []eb.GamepadID
	lastX   int
	lastY   int
	havePos bool
}

// New creates a poller.
func New() *Poller {
	return &Poller{frame: source.NewFrame()}
}

// Snapshot samples every device. The returned frame is reused by the next
// call.
func (p *Poller) Snapshot() *source.Frame {
	f := p.frame
	f.Reset()

	for _, k := range keys {
		if eb.IsKeyPressed(k.key) {
			f.Press(k.src)
		}
	}
	p.pollMouse(f)
	p.pollGamepad(f)
	return f
}

func (p *Poller) pollMouse(f *source.Frame) {
	for _, b := range mouseButtons {
		if eb.IsMouseButtonPressed(b.btn) {
			f.Press(b.src)
		}
	}

	wx, wy := eb.Wheel()
	f.Set(source.AxisScrollWheelX, wx)
	f.Set(source.AxisScrollWheelY, wy)

	x, y := eb.CursorPosition()
	if p.havePos {
		f.Set(source.AxisMouseMotionX, float64(x-p.lastX))
		f.Set(source.AxisMouseMotionY, float64(p.lastY-y))
	}
	p.lastX, p.lastY, p.havePos = x, y, true
}

// pollGamepad reads the first connected gamepad with a standard layout.
func (p *Poller) pollGamepad(f *source.Frame) {
	p.pads = eb.AppendGamepadIDs(p.pads[:0])
	for _, id := range p.pads {
		if !eb.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range padButtons {
			if eb.IsStandardGamepadButtonPressed(id, b.btn) {
				f.Press(b.src)
			}
		}
		for _, a := range padAxes {
			v := eb.StandardGamepadAxisValue(id, a.axis)
			if a.invert {
				v = -v
			}
			f.Set(a.src, v)
		}
		f.Set(source.AxisLeftTrigger2, eb.StandardGamepadButtonValue(id, eb.StandardGamepadButtonFrontBottomLeft))
		f.Set(source.AxisRightTrigger2, eb.StandardGamepadButtonValue(id, eb.StandardGamepadButtonFrontBottomRight))
		return
	}
}
