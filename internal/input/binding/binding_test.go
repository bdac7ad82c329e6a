package binding

import (
	"math"
	"testing"
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/input/source"
)

func frame(pressed ...source.Source) *source.Frame {
	return source.NewFrame().Press(pressed...)
}

func TestInput_Active(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		value float64
		want  bool
	}{
		{"digital pressed", In(source.KeySpace), 1, true},
		{"digital released", In(source.KeySpace), 0, false},
		{"digital half", In(source.KeySpace), 0.5, false},
		{"axis inside deadzone", In(source.AxisLeftStickX), 0.05, false},
		{"axis past deadzone", In(source.AxisLeftStickX), -0.2, true},
		{"positive threshold reached", AtLeast(source.AxisLeftStickX, 0.75), 0.75, true},
		{"positive threshold not reached", AtLeast(source.AxisLeftStickX, 0.75), 0.7, false},
		{"positive threshold wrong sign", AtLeast(source.AxisLeftStickX, 0.75), -0.9, false},
		{"negative threshold reached", AtMost(source.AxisLeftStickX, 0.5), -0.5, true},
		{"negative threshold not reached", AtMost(source.AxisLeftStickX, 0.5), -0.4, false},
		{"threshold ignored on digital", Input{Source: source.KeyA, Threshold: -0.5}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := source.NewFrame().Set(tt.input.Source, tt.value)
			if got := tt.input.Active(snap); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInput_String(t *testing.T) {
	tests := []struct {
		input Input
		want  string
	}{
		{In(source.KeySpace), "Key.Space"},
		{AtLeast(source.AxisLeftStickY, 0.75), "Axis.LeftStickY>0.75"},
		{AtMost(source.AxisLeftStickY, 0.5), "Axis.LeftStickY<-0.5"},
		{Input{Source: source.KeyA, Threshold: 3}, "Key.A"},
	}
	for _, tt := range tests {
		if got := tt.input.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestChordAndInputs(t *testing.T) {
	ctrlS := All(source.KeyControlLeft, source.KeyS)

	if ctrlS.Active(frame(source.KeyS)) {
		t.Error("chord active with one of two keys")
	}
	if !ctrlS.Active(frame(source.KeyS, source.KeyControlLeft)) {
		t.Error("chord inactive with both keys")
	}
	if (Chord{}).Active(frame(source.KeyS)) {
		t.Error("empty chord must never activate")
	}
	if ctrlS.String() != "Key.ControlLeft+Key.S" {
		t.Errorf("String() = %q", ctrlS.String())
	}
	if !All(source.KeyA, source.KeyA).HasDuplicates() || ctrlS.HasDuplicates() {
		t.Error("HasDuplicates mismatch")
	}

	in := Any(source.KeySpace, source.GamepadSouth)
	if !in.Active(frame(source.GamepadSouth)) {
		t.Error("alternatives should activate on any source")
	}
	if in.Active(frame()) {
		t.Error("alternatives active with nothing held")
	}
	if !(Inputs{}).IsDummy() || !(Inputs{Chord{}}).IsDummy() || in.IsDummy() {
		t.Error("Inputs.IsDummy mismatch")
	}
}

func TestEvaluateAxis_HoldCancellation(t *testing.T) {
	b := AxisHoldOf(Any(source.KeyA), Any(source.KeyD))

	tests := []struct {
		name    string
		pressed []source.Source
		want    float64
	}{
		{"neither", nil, 0},
		{"negative only", []source.Source{source.KeyA}, -1},
		{"positive only", []source.Source{source.KeyD}, 1},
		{"both", []source.Source{source.KeyA, source.KeyD}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluateAxis(b, frame(tt.pressed...)); got != tt.want {
				t.Errorf("EvaluateAxis() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateAxis_Analog(t *testing.T) {
	tests := []struct {
		name string
		inv  Inversion
		sens float64
		raw  float64
		want float64
	}{
		{"not inverted", NotInverted, 2, 0.5, 1},
		{"inverted", Inverted, 2, 0.5, -1},
		{"inverted negative raw", Inverted, 0.5, -0.8, 0.4},
		{"zero raw", Inverted, 3, 0, 0},
		{"zero sensitivity", NotInverted, 0, 0.9, 0},
		{"negative sensitivity", NotInverted, -1, 0.25, -0.25},
		{"no clamping", NotInverted, 10, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Analog(source.AxisRightStickY).WithInversion(tt.inv).WithSensitivity(tt.sens)
			snap := source.NewFrame().Set(source.AxisRightStickY, tt.raw)
			got := EvaluateAxis(b, snap)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EvaluateAxis() = %v, want %v", got, tt.want)
			}
		})
	}

	if Analog(source.AxisLeftStickX).Sensitivity != 1 {
		t.Error("Analog should default sensitivity to 1")
	}
}

func TestEvaluateAxis_ToggleAndDummyReadZero(t *testing.T) {
	toggle := AxisToggleOf(JustPressed(Any(source.KeyQ)), JustPressed(Any(source.KeyE)))
	if EvaluateAxis(toggle, frame(source.KeyE)) != 0 {
		t.Error("toggle axis must read 0 without tracker state")
	}
	if EvaluateAxis(AxisBinding{}, frame(source.KeyE)) != 0 {
		t.Error("dummy axis must read 0")
	}
}

func TestEvaluateDual_WASD(t *testing.T) {
	b := Dual(
		AxisHoldOf(Any(source.KeyA), Any(source.KeyD)),
		AxisHoldOf(Any(source.KeyS), Any(source.KeyW)),
	)

	if got := EvaluateDual(b, frame(source.KeyA, source.KeyD)); got.X != 0 {
		t.Errorf("A+D x = %v, want 0", got.X)
	}
	if got := EvaluateDual(b, frame(source.KeyD)); got != (Vec2{X: 1}) {
		t.Errorf("D = %+v, want x=1", got)
	}
	got := EvaluateDual(b, frame(source.KeyD, source.KeyW))
	if got != (Vec2{X: 1, Y: 1}) {
		t.Errorf("D+W = %+v, want (1,1) without normalization", got)
	}
	if math.Abs(got.Length()-math.Sqrt2) > 1e-9 {
		t.Errorf("Length() = %v", got.Length())
	}
}

func TestEvaluate(t *testing.T) {
	snap := frame(source.KeySpace, source.KeyShiftLeft)

	tests := []struct {
		name string
		b    Binding
		want Value
	}{
		{"pulse level", JustPressed(Any(source.KeySpace)), Value{Kind: action.KindPulse, Bool: true}},
		{"sequence level", Sequence(time.Second, Any(source.KeySpace)), Value{Kind: action.KindPulse}},
		{"hold", Hold(Any(source.KeyShiftLeft)), Value{Kind: action.KindContinuous, Bool: true}},
		{"toggle level", Toggle(JustPressed(Any(source.KeyCapsLock))), Value{Kind: action.KindContinuous}},
		{"axis", AxisHoldOf(nil, Any(source.KeySpace)), Value{Kind: action.KindSingleAxis, Axis: 1}},
		{"dual", Dual(AxisBinding{}, AxisHoldOf(Any(source.KeySpace), nil)), Value{Kind: action.KindDualAxis, Vec: Vec2{Y: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.b, snap); got != tt.want {
				t.Errorf("Evaluate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{-0.3}, -0.3},
		{"largest magnitude", []float64{0.2, -0.9, 0.5}, -0.9},
		{"first wins opposite tie", []float64{-1, 1}, -1},
		{"first wins opposite tie reversed", []float64{1, -1}, 1},
		{"zeros do not override", []float64{0.4, 0, 0}, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.values...); got != tt.want {
				t.Errorf("Combine(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestIsDummy(t *testing.T) {
	tests := []struct {
		name string
		b    Binding
		want bool
	}{
		{"zero pulse", PulseBinding{}, true},
		{"pulse without inputs", JustPressed(nil), true},
		{"pulse", JustPressed(Any(source.KeyE)), false},
		{"empty sequence", Sequence(time.Second), true},
		{"sequence with dummy step", Sequence(time.Second, Any(source.KeyA), nil), true},
		{"zero continuous", ContinuousBinding{}, true},
		{"toggle of dummy", Toggle(PulseBinding{}), true},
		{"hold", Hold(Any(source.KeyShiftLeft)), false},
		{"zero axis", AxisBinding{}, true},
		{"analog without source", Analog(source.None), true},
		{"one-sided hold", AxisHoldOf(nil, Any(source.KeyW)), false},
		{"dual of dummies", DualAxisBinding{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.IsDummy(); got != tt.want {
				t.Errorf("IsDummy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSources(t *testing.T) {
	b := Dual(
		Analog(source.AxisLeftStickX),
		AxisToggleOf(JustPressed(Any(source.KeyS)), JustPressed(Chords(All(source.KeyShiftLeft, source.KeyW)))),
	)
	got := Sources(b)
	want := []source.Source{source.KeyS, source.KeyShiftLeft, source.KeyW, source.AxisLeftStickX}
	if len(got) != len(want) {
		t.Fatalf("Sources() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sources()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestBlockers(t *testing.T) {
	s := All(source.KeyS)
	ctrlS := All(source.KeyControlLeft, source.KeyS)
	ctrlShiftS := All(source.KeyControlLeft, source.KeyShiftLeft, source.KeyS)
	sCtrl := All(source.KeyS, source.KeyControlLeft)

	blockers := BlockersOf([]Binding{
		JustPressed(Chords(s)),
		JustPressed(Chords(ctrlS)),
		Hold(Chords(sCtrl, ctrlShiftS)),
	})

	if got := blockers.For(s); len(got) != 2 {
		t.Errorf("S should be blocked by two chords, got %v", got)
	}
	if got := blockers.For(sCtrl); len(got) != 1 {
		t.Errorf("S+Ctrl is the same set as Ctrl+S and should have one blocker, got %v", got)
	}
	if got := blockers.For(ctrlShiftS); len(got) != 0 {
		t.Errorf("largest chord should not be blocked, got %v", got)
	}

	snap := frame(source.KeyControlLeft, source.KeyS)
	if ActiveUnblocked(s, blockers.For(s), snap) {
		t.Error("S should be suppressed while Ctrl+S is held")
	}
	if !ActiveUnblocked(ctrlS, blockers.For(ctrlS), snap) {
		t.Error("Ctrl+S should be active")
	}
	if !ActiveUnblocked(s, blockers.For(s), frame(source.KeyS)) {
		t.Error("S alone should be active")
	}

	var none *Blockers
	if none.For(s) != nil || none.Len() != 0 {
		t.Error("nil Blockers should be empty")
	}
}
