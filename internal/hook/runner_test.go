package hook

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ineffable/internal/action"
	"github.com/dshills/ineffable/internal/config"
	"github.com/dshills/ineffable/internal/ineffable"
	"github.com/dshills/ineffable/internal/input/binding"
	"github.com/dshills/ineffable/internal/input/source"
	"github.com/dshills/ineffable/internal/logging"
)

const dt = 16 * time.Millisecond

func newContext(t *testing.T) *ineffable.Context {
	t.Helper()
	reg := action.NewRegistry()
	teleport := action.MustDefine[action.Pulse](reg, "Player", "Teleport")
	sprint := action.MustDefine[action.Continuous](reg, "Player", "Sprint")
	zoom := action.MustDefine[action.SingleAxis](reg, "Player", "Zoom")
	movement := action.MustDefine[action.DualAxis](reg, "Player", "Movement")

	cfg := config.NewBuilder().
		Pulse(teleport, binding.JustPressed(binding.Any(source.KeySpace))).
		Continuous(sprint, binding.Hold(binding.Any(source.KeyShiftLeft))).
		SingleAxis(zoom, binding.Analog(source.AxisScrollWheelY)).
		DualAxis(movement, binding.Dual(
			binding.AxisHoldOf(binding.Any(source.KeyA), binding.Any(source.KeyD)),
			binding.AxisHoldOf(binding.Any(source.KeyS), binding.Any(source.KeyW)),
		)).
		Build()

	ctx := ineffable.New(reg, ineffable.WithLogger(logging.Null))
	if _, err := ctx.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	return ctx
}

func newRunner(t *testing.T, ctx *ineffable.Context, code string, opts ...Option) (*Runner, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})
	opts = append([]Option{WithLogger(log)}, opts...)
	r := NewRunner(ctx, opts...)
	t.Cleanup(func() { _ = r.Close() })
	if err := r.LoadString("test", code); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	return r, &buf
}

func global(r *Runner, name string) lua.LValue {
	return r.state.L.GetGlobal(name)
}

func TestRunner_PulseReachesScript(t *testing.T) {
	ctx := newContext(t)
	r, _ := newRunner(t, ctx, `
count = 0
function on_pulse(group, action)
  count = count + 1
  last = group .. "." .. action
  x, y = ineffable.value("Player", "Movement")
  at = ineffable.frame()
end
`)

	ctx.Update(source.NewFrame().Press(source.KeySpace, source.KeyD, source.KeyW), dt)
	if n := r.Dispatch(); n != 1 {
		t.Fatalf("Dispatch() = %d, want 1", n)
	}
	if got := global(r, "last").String(); got != "Player.Teleport" {
		t.Errorf("last = %q, want Player.Teleport", got)
	}
	if x, y := global(r, "x"), global(r, "y"); x != lua.LNumber(1) || y != lua.LNumber(1) {
		t.Errorf("movement = %v,%v, want 1,1", x, y)
	}
	if got := global(r, "at"); got != lua.LNumber(1) {
		t.Errorf("frame = %v, want 1", got)
	}

	ctx.Update(source.NewFrame().Press(source.KeySpace), dt)
	if n := r.Dispatch(); n != 0 {
		t.Errorf("held key dispatched %d calls, want 0", n)
	}
	if got := global(r, "count"); got != lua.LNumber(1) {
		t.Errorf("count = %v, want 1", got)
	}
}

func TestRunner_ActivateAndDeactivate(t *testing.T) {
	ctx := newContext(t)
	r, _ := newRunner(t, ctx, `
events = ""
function on_activate(group, action)
  events = events .. "+" .. action
  held = ineffable.value(group, action)
end
function on_deactivate(group, action)
  events = events .. "-" .. action
  charged = ineffable.charge(group, action)
  still = ineffable.active(group, action)
end
`)

	ctx.Update(source.NewFrame().Press(source.KeyShiftLeft), dt)
	r.Dispatch()
	ctx.Update(source.NewFrame().Press(source.KeyShiftLeft), dt)
	r.Dispatch()
	ctx.Update(source.NewFrame(), dt)
	r.Dispatch()

	if got := global(r, "events").String(); got != "+Sprint-Sprint" {
		t.Errorf("events = %q, want +Sprint-Sprint", got)
	}
	if global(r, "held") != lua.LTrue {
		t.Error("value() of an active continuous action should be true")
	}
	if global(r, "still") != lua.LFalse {
		t.Error("active() after release should be false")
	}
	if got, ok := global(r, "charged").(lua.LNumber); !ok || got < 0 {
		t.Errorf("charge = %v, want a non-negative number", global(r, "charged"))
	}
	if r.Calls() != 2 || r.Failures() != 0 {
		t.Errorf("calls/failures = %d/%d, want 2/0", r.Calls(), r.Failures())
	}
}

func TestRunner_ErrorsAreLogged(t *testing.T) {
	ctx := newContext(t)
	r, buf := newRunner(t, ctx, `
function on_pulse(group, action)
  error("boom")
end
function on_activate(group, action)
  reached = true
end
`)

	ctx.Update(source.NewFrame().Press(source.KeySpace, source.KeyShiftLeft), dt)
	if n := r.Dispatch(); n != 2 {
		t.Fatalf("Dispatch() = %d, want 2", n)
	}
	if global(r, "reached") != lua.LTrue {
		t.Error("a failing hook stopped the remaining calls")
	}
	if r.Failures() != 1 {
		t.Errorf("Failures() = %d, want 1", r.Failures())
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("log does not mention the script error: %q", buf.String())
	}
}

func TestRunner_UnknownActionRaises(t *testing.T) {
	ctx := newContext(t)
	r, buf := newRunner(t, ctx, `
function on_pulse(group, action)
  ineffable.value("Player", "Fly")
end
`)

	ctx.Update(source.NewFrame().Press(source.KeySpace), dt)
	r.Dispatch()
	if r.Failures() != 1 {
		t.Errorf("Failures() = %d, want 1", r.Failures())
	}
	if !strings.Contains(buf.String(), "unknown action Player.Fly") {
		t.Errorf("log = %q, want unknown action message", buf.String())
	}
}

func TestRunner_TimeoutStopsRunawayScript(t *testing.T) {
	ctx := newContext(t)
	r, _ := newRunner(t, ctx, `
function on_pulse(group, action)
  while true do end
end
`, WithTimeout(20*time.Millisecond))

	ctx.Update(source.NewFrame().Press(source.KeySpace), dt)
	done := make(chan struct{})
	go func() {
		r.Dispatch()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runaway script was not interrupted")
	}
	if r.Failures() != 1 {
		t.Errorf("Failures() = %d, want 1", r.Failures())
	}
}

func TestRunner_Sandbox(t *testing.T) {
	ctx := newContext(t)
	r := NewRunner(ctx, WithLogger(logging.Null))
	defer r.Close()

	for _, code := range []string{
		`os.exit(1)`,
		`io.open("/etc/passwd")`,
		`loadstring("return 1")()`,
		`require("os")`,
		`dofile("x.lua")`,
	} {
		if err := r.LoadString("sandbox", code); err == nil {
			t.Errorf("%s: expected an error", code)
		}
	}
	if err := r.LoadString("ok", `x = string.format("%d", math.floor(2.5))`); err != nil {
		t.Errorf("safe libraries unavailable: %v", err)
	}
}

func TestRunner_LoadFileAndLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hooks.lua")
	code := `function on_pulse(group, action) ineffable.log("pulse " .. action) end`
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := newContext(t)
	var buf bytes.Buffer
	r := NewRunner(ctx, WithLogger(logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})))
	defer r.Close()
	if err := r.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if err := r.LoadFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("LoadFile of a missing file should fail")
	}

	ctx.Update(source.NewFrame().Press(source.KeySpace), dt)
	r.Dispatch()
	if !strings.Contains(buf.String(), "pulse Teleport") {
		t.Errorf("log = %q, want script output", buf.String())
	}
}

func TestRunner_NoEntryPoints(t *testing.T) {
	ctx := newContext(t)
	r, _ := newRunner(t, ctx, `x = 1`)

	ctx.Update(source.NewFrame().Press(source.KeySpace, source.KeyShiftLeft), dt)
	if n := r.Dispatch(); n != 0 {
		t.Errorf("Dispatch() = %d, want 0", n)
	}
}

func TestRunner_ClosedStateFails(t *testing.T) {
	ctx := newContext(t)
	r, _ := newRunner(t, ctx, `function on_pulse() end`)
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.LoadString("late", `x = 1`); err == nil {
		t.Error("LoadString after Close should fail")
	}

	ctx.Update(source.NewFrame().Press(source.KeySpace), dt)
	r.Dispatch()
	if r.Failures() != 1 {
		t.Errorf("Failures() = %d, want 1", r.Failures())
	}
}
