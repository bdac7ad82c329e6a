package config

import (
	"testing"
	"time"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/input/source"
)

var (
	jumpSpace = binding.JustPressed(binding.Any(source.KeySpace))
	jumpPad   = binding.JustPressed(binding.Any(source.GamepadSouth))
	sprint    = binding.Hold(binding.Any(source.KeyShiftLeft))
	zoom      = binding.Analog(source.AxisScrollWheelY)
)

func TestInputConfig_NilAndEmpty(t *testing.T) {
	var nilCfg *InputConfig
	for name, c := range map[string]*InputConfig{"nil": nilCfg, "empty": Empty()} {
		if c.Len() != 0 || len(c.Groups()) != 0 {
			t.Errorf("%s: unexpected entries", name)
		}
		if c.Bindings("Player", "Jump") != nil {
			t.Errorf("%s: Bindings should be nil", name)
		}
		if _, ok := c.DoubleClickTiming(); ok {
			t.Errorf("%s: DoubleClickTiming should be unset", name)
		}
		s := c.Resolved()
		if s.DoubleClickTiming != DefaultDoubleClickTiming || s.PostAcceptanceDelay != 0 {
			t.Errorf("%s: Resolved() = %+v", name, s)
		}
	}
	if !nilCfg.Equal(Empty()) {
		t.Error("nil and empty configs should be equal")
	}
}

func TestBuilder(t *testing.T) {
	cfg := NewBuilder().
		DoubleClickTiming(300*time.Millisecond).
		PostAcceptanceDelay(100*time.Millisecond).
		Bind("Player", "Jump", jumpSpace).
		Bind("Player", "Jump", jumpPad).
		Bind("Player", "Sprint", sprint).
		Bind("Camera", "Zoom").
		Build()

	if cfg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cfg.Len())
	}
	if got := cfg.Bindings("Player", "Jump"); len(got) != 2 {
		t.Errorf("Jump bindings = %d, want 2", len(got))
	}
	if !cfg.Has("Camera", "Zoom") || len(cfg.Bindings("Camera", "Zoom")) != 0 {
		t.Error("empty entry should exist")
	}
	if d, ok := cfg.DoubleClickTiming(); !ok || d != 300*time.Millisecond {
		t.Errorf("DoubleClickTiming() = %v, %v", d, ok)
	}
	if got := cfg.Groups(); len(got) != 2 || got[0] != "Camera" || got[1] != "Player" {
		t.Errorf("Groups() = %v", got)
	}
	if got := cfg.Actions("Player"); len(got) != 2 || got[0] != "Jump" || got[1] != "Sprint" {
		t.Errorf("Actions() = %v", got)
	}
}

func TestBuilder_ReusableAfterBuild(t *testing.T) {
	b := NewBuilder().Bind("Player", "Jump", jumpSpace)
	first := b.Build()

	b.Bind("Player", "Jump", jumpPad).
		Bind("Player", "Sprint", sprint).
		DoubleClickTiming(250 * time.Millisecond)
	second := b.Build()

	if got := first.Bindings("Player", "Jump"); len(got) != 1 {
		t.Errorf("first Jump bindings = %d, want 1", len(got))
	}
	if first.Has("Player", "Sprint") {
		t.Error("first config gained an entry bound after Build")
	}
	if _, ok := first.DoubleClickTiming(); ok {
		t.Error("first config gained a setting changed after Build")
	}
	if got := second.Bindings("Player", "Jump"); len(got) != 2 {
		t.Errorf("second Jump bindings = %d, want 2", len(got))
	}
	if !second.Has("Player", "Sprint") {
		t.Error("second config missing Sprint")
	}
	if d, ok := second.DoubleClickTiming(); !ok || d != 250*time.Millisecond {
		t.Errorf("second DoubleClickTiming() = %v, %v", d, ok)
	}
}

func TestBindingsReturnsCopy(t *testing.T) {
	cfg := NewBuilder().Bind("Player", "Jump", jumpSpace).Build()
	got := cfg.Bindings("Player", "Jump")
	got[0] = jumpPad

	again := cfg.Bindings("Player", "Jump")
	if again[0].(binding.PulseBinding).Inputs[0][0].Source != source.KeySpace {
		t.Error("mutating the returned slice changed the configuration")
	}
}

func TestBuilder_Typed(t *testing.T) {
	reg := action.NewRegistry()
	jump := action.MustDefine[action.Pulse](reg, "Player", "Jump")
	move := action.MustDefine[action.DualAxis](reg, "Player", "Movement")
	run := action.MustDefine[action.Continuous](reg, "Player", "Sprint")
	zoomH := action.MustDefine[action.SingleAxis](reg, "Camera", "Zoom")

	cfg := NewBuilder().
		Pulse(jump, jumpSpace).
		DualAxis(move).
		Continuous(run, sprint).
		SingleAxis(zoomH, zoom).
		Build()

	if cfg.Len() != 4 {
		t.Errorf("Len() = %d, want 4", cfg.Len())
	}
	if got := cfg.BindingsFor(run.ID()); len(got) != 1 || got[0].Kind() != action.KindContinuous {
		t.Errorf("Sprint bindings = %v", got)
	}
	if !cfg.Has("Player", "Movement") {
		t.Error("typed bind with no bindings should still create the entry")
	}
}

func TestEach_SortedOrder(t *testing.T) {
	cfg := NewBuilder().
		Bind("B", "y", sprint).
		Bind("A", "z", sprint).
		Bind("B", "x", sprint).
		Build()

	var got []string
	cfg.Each(func(g, a string, _ []binding.Binding) {
		got = append(got, g+"."+a)
	})
	want := []string{"A.z", "B.x", "B.y"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("Each order = %v, want %v", got, want)
		}
	}
	if len(cfg.AllBindings()) != 3 {
		t.Error("AllBindings length mismatch")
	}
}

func TestEqual(t *testing.T) {
	a := NewBuilder().Bind("Player", "Jump", jumpSpace).Build()
	b := NewBuilder().Bind("Player", "Jump", jumpSpace).Build()
	c := NewBuilder().Bind("Player", "Jump", jumpPad).Build()
	d := NewBuilder().Bind("Player", "Jump", jumpSpace).PostAcceptanceDelay(time.Second).Build()

	if !a.Equal(b) {
		t.Error("identical configs should be equal")
	}
	if a.Equal(c) {
		t.Error("different bindings should not be equal")
	}
	if a.Equal(d) {
		t.Error("different settings should not be equal")
	}
}
